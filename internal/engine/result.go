// Package engine implements the two text transformation modes: leveling
// (simplify above-target vocabulary) and labeling (annotated vocabulary
// list with translations).
package engine

import (
	"fmt"
	"strings"

	"codeberg.org/snonux/leveltext/internal/analyze"
	"codeberg.org/snonux/leveltext/internal/level"
)

// Mode selects the transformation applied to a document.
type Mode string

const (
	ModeLeveling Mode = "leveling"
	ModeLabeling Mode = "labeling"
)

// ParseMode converts a mode name, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(ModeLeveling):
		return ModeLeveling, nil
	case string(ModeLabeling):
		return ModeLabeling, nil
	default:
		return "", fmt.Errorf("unknown mode %q (expected leveling or labeling)", s)
	}
}

// VocabularyItem is one entry of a labeling result. Err is set when the
// translation failed; Translation is then empty and the failure is explicit
// rather than a silent empty string.
type VocabularyItem struct {
	Lemma        string
	Surface      string
	PartOfSpeech string
	Level        level.Level
	Known        bool
	Translation  string
	Err          error
}

// SpanError records a text span whose simplification failed. The output
// contains a placeholder for the span instead of rewritten prose.
type SpanError struct {
	Text string
	Err  error
}

// Stats summarizes one analysis pass. Entity, stopword and core-word tokens
// are not counted as words, matching what learners actually study.
type Stats struct {
	TotalWords    int
	AboveTarget   int
	NamedEntities int
}

// Result is the outcome of one Level or Label invocation for one document.
type Result struct {
	Mode       Mode
	Tokens     []analyze.AnalyzedToken
	OutputText string
	Vocabulary []VocabularyItem
	Failures   []SpanError
	Stats      Stats
}

// SupportedLanguages lists the translation target languages.
var SupportedLanguages = []string{"English", "French", "Spanish", "Italian", "Polish", "Russian"}

// ValidateLanguage resolves a case-insensitive language name to its
// canonical form.
func ValidateLanguage(s string) (string, error) {
	for _, lang := range SupportedLanguages {
		if strings.EqualFold(strings.TrimSpace(s), lang) {
			return lang, nil
		}
	}
	return "", fmt.Errorf("unsupported translation language %q (supported: %s)",
		s, strings.Join(SupportedLanguages, ", "))
}
