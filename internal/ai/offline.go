package ai

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/snonux/leveltext/internal/level"
)

// Offline is the no-provider adapter. Simplification removes hard spans with
// a placeholder instead of rewriting them, and translations are marked
// placeholders like "Haus (EN)". It lets the tool run without API keys.
type Offline struct{}

// NewOffline returns the offline adapter.
func NewOffline() *Offline { return &Offline{} }

func (Offline) Name() string { return ProviderNone }

func (Offline) Simplify(_ context.Context, _ string, _ level.Level, _ string) (string, error) {
	return "[...]", nil
}

func (Offline) Translate(_ context.Context, lemma, _, targetLanguage string) (string, error) {
	return fmt.Sprintf("%s (%s)", lemma, languageTag(targetLanguage)), nil
}

func (o Offline) TranslateBatch(ctx context.Context, lemmas []string, targetLanguage string) (map[string]string, error) {
	result := make(map[string]string, len(lemmas))
	for _, lemma := range lemmas {
		translation, _ := o.Translate(ctx, lemma, "", targetLanguage)
		result[lemma] = translation
	}
	return result, nil
}

func languageTag(language string) string {
	if len(language) < 2 {
		return strings.ToUpper(language)
	}
	return strings.ToUpper(language[:2])
}
