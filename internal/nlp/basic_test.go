package nlp

import (
	"context"
	"testing"
)

func TestBasicAnalyzerTokens(t *testing.T) {
	text := "Er arbeitet im Büro."
	tokens, err := NewBasicAnalyzer().Analyze(context.Background(), text)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	want := []string{"Er", "arbeitet", "im", "Büro"}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(tokens), len(want), tokens)
	}
	for i, surface := range want {
		if tokens[i].Surface != surface {
			t.Errorf("token %d = %q, want %q", i, tokens[i].Surface, surface)
		}
		if tokens[i].Lemma != surface {
			t.Errorf("token %d lemma = %q, want surface form", i, tokens[i].Lemma)
		}
	}
}

func TestBasicAnalyzerOffsets(t *testing.T) {
	text := "Das Wetter ist schön, oder?"
	tokens, err := NewBasicAnalyzer().Analyze(context.Background(), text)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	for _, tok := range tokens {
		if text[tok.Start:tok.End] != tok.Surface {
			t.Errorf("offsets of %q slice to %q", tok.Surface, text[tok.Start:tok.End])
		}
	}
}

func TestBasicAnalyzerNamedEntityHeuristic(t *testing.T) {
	text := "Gestern traf ich Frau Schmidt. Häuser sind teuer."
	tokens, err := NewBasicAnalyzer().Analyze(context.Background(), text)
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}

	bySurface := make(map[string]Token, len(tokens))
	for _, tok := range tokens {
		bySurface[tok.Surface] = tok
	}

	if !bySurface["Schmidt"].IsNamedEntity {
		t.Error("Schmidt should be tagged as a named entity (follows capitalized Frau)")
	}
	if bySurface["Häuser"].IsNamedEntity {
		t.Error("Häuser begins a sentence and must not be tagged as an entity")
	}
	if bySurface["Gestern"].IsNamedEntity {
		t.Error("sentence-initial word must not be tagged as an entity")
	}
	if bySurface["traf"].IsNamedEntity {
		t.Error("lowercase word must never be tagged as an entity")
	}
}

func TestBasicAnalyzerArticleNounNotEntity(t *testing.T) {
	tokens, err := NewBasicAnalyzer().Analyze(context.Background(), "Die Temperatur steigt.")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	for _, tok := range tokens {
		if tok.IsNamedEntity {
			t.Errorf("%q tagged as entity after a sentence-initial article", tok.Surface)
		}
	}
}

func TestBasicAnalyzerEmptyText(t *testing.T) {
	tokens, err := NewBasicAnalyzer().Analyze(context.Background(), "")
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(tokens) != 0 {
		t.Errorf("got %d tokens for empty text", len(tokens))
	}
}
