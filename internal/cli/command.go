package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/leveltext/internal"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "leveltext [file-or-directory]",
		Short: "German CEFR text leveler and vocabulary labeler",
		Long: `leveltext analyzes German text against CEFR vocabulary lists.

In leveling mode it rewrites passages above the target level into
simpler German using an AI provider. In labeling mode it produces an
annotated vocabulary list with translations for the words a learner at
the target level would not know yet.

Examples:
  leveltext article.txt                         # Simplify to the default level (B1)
  leveltext --level A2 --mode labeling text.txt # Word list with English translations
  leveltext --lookup Atmosphäre                 # Show the CEFR level of one word
  leveltext --mode labeling --language Spanish docs/  # Process a whole directory`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.leveltext.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.OutputDir, "output", "o", ".", "Output directory for generated files")
	cmd.Flags().StringVarP(&flags.TargetLevel, "level", "l", flags.TargetLevel, "Target CEFR level (A1, A2, B1, B2, C1)")
	cmd.Flags().StringVarP(&flags.Mode, "mode", "m", flags.Mode, "Processing mode (leveling or labeling)")
	cmd.Flags().StringVar(&flags.Language, "language", flags.Language, "Translation language for labeling mode")
	cmd.Flags().StringVar(&flags.Lookup, "lookup", "", "Look up the CEFR level of a single word and exit")
	cmd.Flags().StringVar(&flags.VocabDir, "vocab-dir", flags.VocabDir, "Directory containing per-level vocabulary CSV files")
	cmd.Flags().StringVar(&flags.StopwordsFile, "stopwords", "", "Stopword file (one word per line, ';' starts a comment)")
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "AI provider (claude, gemini, openai or none)")
	cmd.Flags().StringVar(&flags.Model, "model", "", "Override the provider's default model")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("output.directory", cmd.Flags().Lookup("output"))
	viper.BindPFlag("analysis.target_level", cmd.Flags().Lookup("level"))
	viper.BindPFlag("analysis.mode", cmd.Flags().Lookup("mode"))
	viper.BindPFlag("analysis.language", cmd.Flags().Lookup("language"))
	viper.BindPFlag("vocab.directory", cmd.Flags().Lookup("vocab-dir"))
	viper.BindPFlag("vocab.stopwords", cmd.Flags().Lookup("stopwords"))
	viper.BindPFlag("ai.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("ai.model", cmd.Flags().Lookup("model"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	// Defaults for keys without a flag
	viper.SetDefault("analysis.max_text_length", 10000)
	viper.SetDefault("analysis.parallelism", 4)
	viper.SetDefault("vocab.strict", false)
	viper.SetDefault("cache.enabled", true)
	viper.SetDefault("cache.ttl_seconds", 24*60*60)
	viper.SetDefault("cache.path", "")
	viper.SetDefault("ai.retry_attempts", 3)
	viper.SetDefault("ai.retry_base_delay_ms", 500)
	viper.SetDefault("log.level", "info")

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".leveltext" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".leveltext")
	}

	// Environment variables
	viper.SetEnvPrefix("LEVELTEXT")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetAnthropicKey retrieves the Anthropic API key from environment or config
func GetAnthropicKey() string {
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("ai.anthropic_key")
}

// GetGeminiKey retrieves the Gemini API key from environment or config
func GetGeminiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("ai.gemini_key")
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("ai.openai_key")
}

// ProviderKey returns the API key for the named provider.
func ProviderKey(provider string) string {
	switch provider {
	case "claude":
		return GetAnthropicKey()
	case "gemini":
		return GetGeminiKey()
	case "openai":
		return GetOpenAIKey()
	default:
		return ""
	}
}
