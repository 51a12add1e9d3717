// Package nlp defines the interface to the German NLP collaborator
// (tokenizer, lemmatizer, named-entity tagger) and ships a rule-based
// fallback for running without a full language model.
package nlp

import "context"

// Token is one word of the input text as produced by the analyzer.
// Start and End are byte offsets into the original text, so callers can
// reassemble output while preserving the original whitespace and
// punctuation between tokens.
type Token struct {
	Surface       string
	Lemma         string
	PartOfSpeech  string
	IsNamedEntity bool
	Start         int
	End           int
}

// Analyzer turns raw German text into an ordered token sequence.
// Implementations must support German morphology (lemmatization) and
// named-entity tagging; the quality of both is the collaborator's concern.
type Analyzer interface {
	Analyze(ctx context.Context, text string) ([]Token, error)
}
