package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/snonux/leveltext/internal/level"
	"codeberg.org/snonux/leveltext/internal/vocab"
)

// NewStore builds a vocabulary store from inline per-level CSV contents.
func NewStore(t *testing.T, levelCSVs map[level.Level]string) *vocab.Store {
	t.Helper()
	dir := t.TempDir()
	sources := make(map[level.Level]string, len(levelCSVs))
	for lvl, content := range levelCSVs {
		path := filepath.Join(dir, lvl.String()+".csv")
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write vocabulary file: %v", err)
		}
		sources[lvl] = path
	}
	store, err := vocab.Load(sources, nil)
	if err != nil {
		t.Fatalf("load vocabulary: %v", err)
	}
	return store
}

// DefaultStore returns a small store used across engine tests:
// Haus/gehen at A1, arbeiten at B1, Atmosphäre at C1.
func DefaultStore(t *testing.T) *vocab.Store {
	t.Helper()
	return NewStore(t, map[level.Level]string{
		level.A1: "Lemma\nHaus\ngehen\nWetter\nschön\n",
		level.B1: "Lemma\narbeiten\nTemperatur\n",
		level.C1: "Lemma\nAtmosphäre\naußergewöhnlich\n",
	})
}
