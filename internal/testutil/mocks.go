// Package testutil provides mocks and helpers shared by the package tests.
package testutil

import (
	"context"
	"fmt"
	"sync"

	"codeberg.org/snonux/leveltext/internal/level"
	"codeberg.org/snonux/leveltext/internal/nlp"
)

// MockAdapter is a scriptable AIAdapter that records every call.
type MockAdapter struct {
	mu sync.Mutex

	// Simplifications maps input span text to the simplified replacement.
	// Unscripted spans return "einfach".
	Simplifications map[string]string

	// Translations maps lemma to translation. Unscripted lemmas return
	// "<lemma>-translated".
	Translations map[string]string

	// Errors maps a lemma or span to a forced error.
	Errors map[string]error

	// FailBatch makes TranslateBatch fail regardless of input.
	FailBatch error

	SimplifyCalls  []string
	TranslateCalls []string
	BatchCalls     [][]string
}

// NewMockAdapter returns an empty mock.
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{
		Simplifications: make(map[string]string),
		Translations:    make(map[string]string),
		Errors:          make(map[string]error),
	}
}

func (m *MockAdapter) Name() string { return "mock" }

func (m *MockAdapter) Simplify(_ context.Context, text string, _ level.Level, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SimplifyCalls = append(m.SimplifyCalls, text)
	if err, ok := m.Errors[text]; ok {
		return "", err
	}
	if replacement, ok := m.Simplifications[text]; ok {
		return replacement, nil
	}
	return "einfach", nil
}

func (m *MockAdapter) Translate(_ context.Context, lemma, _, _ string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TranslateCalls = append(m.TranslateCalls, lemma)
	if err, ok := m.Errors[lemma]; ok {
		return "", err
	}
	if translation, ok := m.Translations[lemma]; ok {
		return translation, nil
	}
	return fmt.Sprintf("%s-translated", lemma), nil
}

func (m *MockAdapter) TranslateBatch(ctx context.Context, lemmas []string, language string) (map[string]string, error) {
	m.mu.Lock()
	m.BatchCalls = append(m.BatchCalls, lemmas)
	failBatch := m.FailBatch
	m.mu.Unlock()
	if failBatch != nil {
		return nil, failBatch
	}

	result := make(map[string]string, len(lemmas))
	for _, lemma := range lemmas {
		translation, err := m.Translate(ctx, lemma, "", language)
		if err != nil {
			continue
		}
		result[lemma] = translation
	}
	return result, nil
}

// FixedAnalyzer returns a predetermined token sequence for any input.
type FixedAnalyzer struct {
	Tokens []nlp.Token
	Err    error
}

func (f *FixedAnalyzer) Analyze(context.Context, string) ([]nlp.Token, error) {
	return f.Tokens, f.Err
}
