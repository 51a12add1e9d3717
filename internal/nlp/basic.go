package nlp

import (
	"context"
	"unicode"
	"unicode/utf8"
)

// BasicAnalyzer is a degraded tokenizer used when no full German language
// model is available. It splits on letter runs, uses the surface form as the
// lemma, and tags mid-sentence capitalized words following another
// capitalized word as probable named entities (multi-word proper names like
// "Frau Schmidt"). German capitalizes all nouns, so a single capitalized
// word is not evidence of an entity.
type BasicAnalyzer struct{}

// NewBasicAnalyzer returns the fallback analyzer.
func NewBasicAnalyzer() *BasicAnalyzer {
	return &BasicAnalyzer{}
}

func (a *BasicAnalyzer) Analyze(_ context.Context, text string) ([]Token, error) {
	var tokens []Token

	start := -1
	sentenceStart := true
	// True when the previous word was capitalized and not the first word
	// of its sentence. A sentence-initial capital carries no signal, so
	// "Die Temperatur" never reads as a proper name while "Frau Schmidt"
	// mid-sentence does.
	prevCapMidSentence := false

	flush := func(end int) {
		if start < 0 {
			return
		}
		surface := text[start:end]
		first, _ := utf8.DecodeRuneInString(surface)
		capitalized := unicode.IsUpper(first)

		tokens = append(tokens, Token{
			Surface:       surface,
			Lemma:         surface,
			PartOfSpeech:  guessPOS(surface),
			IsNamedEntity: capitalized && prevCapMidSentence,
			Start:         start,
			End:           end,
		})
		prevCapMidSentence = capitalized && !sentenceStart
		sentenceStart = false
		start = -1
	}

	for i, r := range text {
		isWordRune := unicode.IsLetter(r) || unicode.IsDigit(r) ||
			(r == '-' && start >= 0)
		if isWordRune {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
		if r == '.' || r == '!' || r == '?' {
			sentenceStart = true
			prevCapMidSentence = false
		}
	}
	flush(len(text))

	return tokens, nil
}

func guessPOS(surface string) string {
	first, _ := utf8.DecodeRuneInString(surface)
	switch {
	case unicode.IsDigit(first):
		return "NUM"
	case unicode.IsUpper(first):
		return "NOUN"
	default:
		return "X"
	}
}
