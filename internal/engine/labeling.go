package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"codeberg.org/snonux/leveltext/internal/ai"
	"codeberg.org/snonux/leveltext/internal/analyze"
	"codeberg.org/snonux/leveltext/internal/cache"
	"codeberg.org/snonux/leveltext/internal/level"
	"codeberg.org/snonux/leveltext/internal/nlp"
	"codeberg.org/snonux/leveltext/internal/vocab"
)

// batchThreshold is the number of pending translations above which one
// batched provider call replaces per-word calls.
const batchThreshold = 5

// Labeler produces an annotated vocabulary list for the words of a text
// that sit above a target level.
type Labeler struct {
	analyzer      nlp.Analyzer
	classifier    *analyze.Classifier
	adapter       ai.Adapter
	cache         cache.Cache
	ttl           time.Duration
	maxTextLength int
	log           *slog.Logger
}

// NewLabeler wires a labeling engine. The cache is shared across concurrent
// analyses; the engine never holds cache entries past the call that
// retrieved them.
func NewLabeler(analyzer nlp.Analyzer, classifier *analyze.Classifier, adapter ai.Adapter,
	translationCache cache.Cache, ttl time.Duration, maxTextLength int) *Labeler {
	return &Labeler{
		analyzer:      analyzer,
		classifier:    classifier,
		adapter:       adapter,
		cache:         translationCache,
		ttl:           ttl,
		maxTextLength: maxTextLength,
		log:           slog.Default(),
	}
}

// Label collects the distinct above-target (or unclassified) lemmas of the
// text in first-occurrence order and resolves a translation for each. The
// rewritten-prose output stays empty in this mode.
func (l *Labeler) Label(ctx context.Context, text string, target level.Level, language string) (*Result, error) {
	if !target.Valid() {
		return nil, &level.UnsupportedLevelError{Input: target.String()}
	}
	if l.maxTextLength > 0 && utf8.RuneCountInString(text) > l.maxTextLength {
		return nil, fmt.Errorf("text exceeds maximum length of %d characters", l.maxTextLength)
	}

	tokens, err := l.analyzer.Analyze(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("analyze text: %w", err)
	}
	analyzed := l.classifier.Classify(tokens)

	result := &Result{
		Mode:   ModeLabeling,
		Tokens: analyzed,
	}

	// Distinct candidate lemmas, first occurrence wins.
	seen := make(map[string]struct{})
	var candidates []analyze.AnalyzedToken
	for _, tok := range analyzed {
		if tok.IsNamedEntity {
			result.Stats.NamedEntities++
			continue
		}
		result.Stats.TotalWords++
		if !l.classifier.AboveTarget(tok, target) {
			continue
		}
		result.Stats.AboveTarget++
		normalized := vocab.Normalize(tok.Lemma)
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		candidates = append(candidates, tok)
	}

	l.prefillBatch(ctx, candidates, language)

	for _, tok := range candidates {
		item := VocabularyItem{
			Lemma:        tok.Lemma,
			Surface:      tok.Surface,
			PartOfSpeech: tok.PartOfSpeech,
			Level:        tok.Level,
			Known:        tok.Known,
		}

		key := l.cacheKey(tok.Lemma, language)
		sentence := sentenceAround(text, tok.Start, tok.End)
		translation, err := l.cache.Get(ctx, key, l.ttl, func(ctx context.Context) (string, error) {
			return l.adapter.Translate(ctx, tok.Lemma, sentence, language)
		})
		if err != nil {
			l.log.Warn("translation failed",
				"lemma", tok.Lemma, "language", language, "provider", l.adapter.Name(), "error", err)
			item.Err = err
		} else {
			item.Translation = translation
		}
		result.Vocabulary = append(result.Vocabulary, item)
	}

	return result, nil
}

// prefillBatch translates uncached lemmas in one provider call when there
// are enough of them to be worth it. Failures here are not terminal: the
// per-lemma path retries individually.
func (l *Labeler) prefillBatch(ctx context.Context, candidates []analyze.AnalyzedToken, language string) {
	var pending []string
	for _, tok := range candidates {
		if _, ok := l.cache.Peek(l.cacheKey(tok.Lemma, language), l.ttl); !ok {
			pending = append(pending, tok.Lemma)
		}
	}
	if len(pending) <= batchThreshold {
		return
	}

	translations, err := l.adapter.TranslateBatch(ctx, pending, language)
	if err != nil {
		l.log.Warn("batch translation failed, falling back to per-word calls",
			"words", len(pending), "provider", l.adapter.Name(), "error", err)
		return
	}
	for lemma, translation := range translations {
		l.cache.Put(l.cacheKey(lemma, language), translation)
	}
}

func (l *Labeler) cacheKey(lemma, language string) cache.Key {
	return cache.Key{
		Lemma:          vocab.Normalize(lemma),
		TargetLanguage: language,
		Provider:       l.adapter.Name(),
	}
}

// sentenceAround returns the sentence containing the byte span [start, end).
func sentenceAround(text string, start, end int) string {
	start, end = clampSpan(text, start, end)
	from := strings.LastIndexAny(text[:start], ".!?")
	if from < 0 {
		from = 0
	} else {
		from++
	}
	to := strings.IndexAny(text[end:], ".!?")
	if to < 0 {
		to = len(text)
	} else {
		to = end + to + 1
	}
	return strings.TrimSpace(text[from:to])
}
