package ai

import (
	"context"
	"errors"
	"testing"
)

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	inner := &scriptedAdapter{
		failures: 100,
		failWith: &ServiceError{Provider: "scripted", Cause: CauseNetwork, Err: errors.New("down")},
	}
	adapter := WithBreaker(inner)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := adapter.Translate(ctx, "haus", "", "English"); err == nil {
			t.Fatal("expected failure")
		}
	}
	callsBefore := inner.calls

	// Breaker is open now; the provider must not be hit again.
	_, err := adapter.Translate(ctx, "haus", "", "English")
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("error = %v, want ServiceError", err)
	}
	if inner.calls != callsBefore {
		t.Errorf("provider called while breaker open (%d -> %d)", callsBefore, inner.calls)
	}
}

func TestBreakerIgnoresNonRetryableFailures(t *testing.T) {
	inner := &scriptedAdapter{
		failures: 100,
		failWith: &ServiceError{Provider: "scripted", Cause: CauseAuthFailure, Err: errors.New("401")},
	}
	adapter := WithBreaker(inner)
	ctx := context.Background()

	// Auth failures never trip the breaker, every call reaches the provider.
	for i := 0; i < 10; i++ {
		if _, err := adapter.Translate(ctx, "haus", "", "English"); err == nil {
			t.Fatal("expected failure")
		}
	}
	if inner.calls != 10 {
		t.Errorf("provider called %d times, want 10", inner.calls)
	}
}

func TestOfflineAdapter(t *testing.T) {
	ctx := context.Background()
	offline := NewOffline()

	simplified, err := offline.Simplify(ctx, "kompliziert", 0, "")
	if err != nil || simplified != "[...]" {
		t.Errorf("Simplify = %q, %v; want placeholder", simplified, err)
	}

	translated, err := offline.Translate(ctx, "Haus", "", "English")
	if err != nil || translated != "Haus (EN)" {
		t.Errorf("Translate = %q, %v", translated, err)
	}

	batch, err := offline.TranslateBatch(ctx, []string{"Haus", "Büro"}, "French")
	if err != nil {
		t.Fatal(err)
	}
	if batch["Büro"] != "Büro (FR)" {
		t.Errorf("batch translation = %q", batch["Büro"])
	}
}

func TestParseBatchResponse(t *testing.T) {
	lemmas := []string{"Haus", "arbeiten", "Büro"}
	response := "house\n2. to work\n\n"
	got := parseBatchResponse(lemmas, response)

	if got["Haus"] != "house" {
		t.Errorf("Haus = %q", got["Haus"])
	}
	if got["arbeiten"] != "to work" {
		t.Errorf("arbeiten = %q (list marker should be stripped)", got["arbeiten"])
	}
	if _, ok := got["Büro"]; ok {
		t.Error("blank line must leave the lemma untranslated")
	}
}
