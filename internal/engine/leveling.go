package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"codeberg.org/snonux/leveltext/internal/ai"
	"codeberg.org/snonux/leveltext/internal/analyze"
	"codeberg.org/snonux/leveltext/internal/level"
	"codeberg.org/snonux/leveltext/internal/nlp"
)

// contextWindow is how many bytes of surrounding text accompany a span sent
// for simplification.
const contextWindow = 120

// Leveler produces a simplified rendition of a text for a target level.
type Leveler struct {
	analyzer      nlp.Analyzer
	classifier    *analyze.Classifier
	adapter       ai.Adapter
	maxTextLength int
	log           *slog.Logger
}

// NewLeveler wires a leveling engine. maxTextLength of zero disables the
// length check.
func NewLeveler(analyzer nlp.Analyzer, classifier *analyze.Classifier, adapter ai.Adapter, maxTextLength int) *Leveler {
	return &Leveler{
		analyzer:      analyzer,
		classifier:    classifier,
		adapter:       adapter,
		maxTextLength: maxTextLength,
		log:           slog.Default(),
	}
}

// Level rewrites text so all remaining vocabulary sits at or below target.
// Tokens at or below the target are kept verbatim, contiguous above-target
// runs are replaced by the adapter's simplification. If every token already
// classifies at or below target the text is returned unchanged and the
// adapter is never called. The engine does not re-validate the adapter's
// output; re-checking would invite infinite simplification loops.
func (l *Leveler) Level(ctx context.Context, text string, target level.Level) (*Result, error) {
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
		Mode:   ModeLeveling,
		Tokens: analyzed,
		Stats:  l.stats(analyzed, target),
	}

	runs := l.aboveTargetRuns(analyzed, target)
	if len(runs) == 0 {
		result.OutputText = text
		return result, nil
	}

	var out strings.Builder
	pos := 0
	for _, run := range runs {
		run.start, run.end = clampSpan(text, run.start, run.end)
		if run.start < pos {
			run.start = pos
		}
		if run.end < run.start {
			run.end = run.start
		}
		out.WriteString(text[pos:run.start])

		spanText := text[run.start:run.end]
		replacement, err := l.adapter.Simplify(ctx, spanText, target, surrounding(text, run))
		if err != nil {
			l.log.Warn("simplification failed for span",
				"span", spanText, "provider", l.adapter.Name(), "error", err)
			result.Failures = append(result.Failures, SpanError{Text: spanText, Err: err})
			replacement = "[...]"
		}
		out.WriteString(replacement)
		pos = run.end
	}
	out.WriteString(text[pos:])

	result.OutputText = out.String()
	return result, nil
}

func (l *Leveler) stats(tokens []analyze.AnalyzedToken, target level.Level) Stats {
	var s Stats
	for _, tok := range tokens {
		if tok.IsNamedEntity {
			s.NamedEntities++
			continue
		}
		if l.classifier.AboveTarget(tok, target) {
			s.AboveTarget++
		}
		s.TotalWords++
	}
	return s
}

type span struct {
	start, end int
}

// clampSpan bounds analyzer-reported byte offsets to the text. A
// misbehaving analyzer degrades the rewritten span instead of crashing
// the engine.
func clampSpan(text string, start, end int) (int, int) {
	if start < 0 {
		start = 0
	}
	if start > len(text) {
		start = len(text)
	}
	if end < start {
		end = start
	}
	if end > len(text) {
		end = len(text)
	}
	return start, end
}

// aboveTargetRuns merges consecutive above-target tokens into spans so the
// adapter rewrites each difficult passage once, with its internal
// punctuation intact.
func (l *Leveler) aboveTargetRuns(tokens []analyze.AnalyzedToken, target level.Level) []span {
	var runs []span
	open := false
	for _, tok := range tokens {
		if !l.classifier.AboveTarget(tok, target) {
			open = false
			continue
		}
		if open {
			runs[len(runs)-1].end = tok.End
			continue
		}
		runs = append(runs, span{start: tok.Start, end: tok.End})
		open = true
	}
	return runs
}

// surrounding extracts up to contextWindow bytes on each side of a span,
// snapped to rune boundaries.
func surrounding(text string, s span) string {
	before := s.start - contextWindow
	if before < 0 {
		before = 0
	}
	for before > 0 && !utf8.RuneStart(text[before]) {
		before--
	}
	after := s.end + contextWindow
	if after > len(text) {
		after = len(text)
	}
	for after < len(text) && !utf8.RuneStart(text[after]) {
		after++
	}
	return text[before:after]
}
