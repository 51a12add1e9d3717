package cli

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile   string
	Input     string
	OutputDir string

	// Analysis flags
	TargetLevel string
	Mode        string
	Language    string
	Lookup      string

	// Vocabulary flags
	VocabDir      string
	StopwordsFile string

	// AI provider flags
	Provider string
	Model    string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		TargetLevel: "B1",
		Mode:        "leveling",
		Language:    "English",
		Provider:    "none",
		VocabDir:    "vocabulary",
	}
}
