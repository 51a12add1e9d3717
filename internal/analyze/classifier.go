// Package analyze assigns CEFR levels to tokens and decides which words are
// above a target level.
package analyze

import (
	"codeberg.org/snonux/leveltext/internal/level"
	"codeberg.org/snonux/leveltext/internal/nlp"
	"codeberg.org/snonux/leveltext/internal/vocab"
)

// AnalyzedToken is one classified token. Known is false when the lemma is
// absent from all loaded vocabulary levels; such tokens count as above any
// target level.
type AnalyzedToken struct {
	Surface       string
	Lemma         string
	PartOfSpeech  string
	Level         level.Level
	Known         bool
	IsNamedEntity bool
	Start         int
	End           int
}

// Classifier looks up token lemmas in a shared vocabulary store. Many
// classifiers may share one store; the classifier only reads it.
type Classifier struct {
	store *vocab.Store
}

// NewClassifier creates a classifier over the given store.
func NewClassifier(store *vocab.Store) *Classifier {
	return &Classifier{store: store}
}

// Classify assigns a level to each input token. The lookup never modifies
// the stored level; entity exemption is applied later, in AboveTarget.
func (c *Classifier) Classify(tokens []nlp.Token) []AnalyzedToken {
	analyzed := make([]AnalyzedToken, len(tokens))
	for i, tok := range tokens {
		lvl, known := c.store.Lookup(tok.Lemma)
		analyzed[i] = AnalyzedToken{
			Surface:       tok.Surface,
			Lemma:         tok.Lemma,
			PartOfSpeech:  tok.PartOfSpeech,
			Level:         lvl,
			Known:         known,
			IsNamedEntity: tok.IsNamedEntity,
			Start:         tok.Start,
			End:           tok.End,
		}
	}
	return analyzed
}

// AboveTarget reports whether a token is a simplification or vocabulary
// target for the given level. Named entities, stopwords and core words are
// always exempt. Unclassified lemmas are always above the target: an
// unknown word is "too hard", never silently assumed simple.
func (c *Classifier) AboveTarget(tok AnalyzedToken, target level.Level) bool {
	if tok.IsNamedEntity {
		return false
	}
	if c.store.IsExcluded(tok.Lemma) {
		return false
	}
	if !tok.Known {
		return true
	}
	return tok.Level.Above(target)
}
