package cache

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("NewSQLite: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteRoundTrip(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	calls := 0
	compute := func(context.Context) (string, error) {
		calls++
		return "the office", nil
	}

	key := Key{Lemma: "büro", TargetLanguage: "English", Provider: "gemini"}
	for i := 0; i < 2; i++ {
		got, err := s.Get(ctx, key, time.Hour, compute)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got != "the office" {
			t.Fatalf("Get = %q", got)
		}
	}
	if calls != 1 {
		t.Errorf("compute called %d times, want 1", calls)
	}
}

func TestSQLiteExpiry(t *testing.T) {
	s := newTestSQLite(t)
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	key := Key{Lemma: "haus", TargetLanguage: "French", Provider: "claude"}
	s.Put(key, "maison")

	if _, ok := s.Peek(key, time.Hour); !ok {
		t.Fatal("fresh entry should be live")
	}

	clock = clock.Add(2 * time.Hour)
	if _, ok := s.Peek(key, time.Hour); ok {
		t.Error("expired entry must not be returned")
	}
}

func TestSQLiteRefreshOverwrites(t *testing.T) {
	s := newTestSQLite(t)
	key := Key{Lemma: "gehen", TargetLanguage: "Spanish", Provider: "claude"}

	s.Put(key, "andar")
	s.Put(key, "ir")

	got, ok := s.Peek(key, time.Hour)
	if !ok || got != "ir" {
		t.Errorf("Peek = %q, %v; want refreshed value", got, ok)
	}
}

func TestSQLiteSweep(t *testing.T) {
	s := newTestSQLite(t)
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	s.Put(Key{Lemma: "alt", TargetLanguage: "English", Provider: "claude"}, "old")
	clock = clock.Add(2 * time.Hour)
	s.Put(Key{Lemma: "neu", TargetLanguage: "English", Provider: "claude"}, "new")

	if n := s.Sweep(time.Hour); n != 1 {
		t.Errorf("Sweep removed %d, want 1", n)
	}
	if _, ok := s.Peek(Key{Lemma: "neu", TargetLanguage: "English", Provider: "claude"}, time.Hour); !ok {
		t.Error("recent entry must survive sweep")
	}
}
