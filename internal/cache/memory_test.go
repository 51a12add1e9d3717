package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func testKey() Key {
	return Key{Lemma: "arbeiten", TargetLanguage: "English", Provider: "claude"}
}

func TestGetComputesOncePerTTLWindow(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return clock }

	calls := 0
	compute := func(context.Context) (string, error) {
		calls++
		return "to work", nil
	}

	ttl := time.Hour
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		got, err := m.Get(ctx, testKey(), ttl, compute)
		if err != nil {
			t.Fatalf("Get: %v", err)
		}
		if got != "to work" {
			t.Fatalf("Get = %q", got)
		}
	}
	if calls != 1 {
		t.Errorf("compute called %d times within TTL, want 1", calls)
	}

	// After TTL elapses, the next Get computes again.
	clock = clock.Add(ttl)
	if _, err := m.Get(ctx, testKey(), ttl, compute); err != nil {
		t.Fatalf("Get after expiry: %v", err)
	}
	if calls != 2 {
		t.Errorf("compute called %d times after expiry, want 2", calls)
	}
}

func TestGetLiveHitIgnoresDifferentCompute(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	if _, err := m.Get(ctx, testKey(), time.Hour, func(context.Context) (string, error) {
		return "first", nil
	}); err != nil {
		t.Fatal(err)
	}

	got, err := m.Get(ctx, testKey(), time.Hour, func(context.Context) (string, error) {
		return "second", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "first" {
		t.Errorf("live hit returned %q, want stored value", got)
	}
}

func TestGetDistinctKeys(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	keys := []Key{
		{Lemma: "arbeiten", TargetLanguage: "English", Provider: "claude"},
		{Lemma: "arbeiten", TargetLanguage: "French", Provider: "claude"},
		{Lemma: "arbeiten", TargetLanguage: "English", Provider: "gemini"},
	}
	for i, key := range keys {
		value := string(rune('a' + i))
		if _, err := m.Get(ctx, key, time.Hour, func(context.Context) (string, error) {
			return value, nil
		}); err != nil {
			t.Fatal(err)
		}
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3 distinct entries", m.Len())
	}
}

func TestGetErrorNotCached(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	wantErr := errors.New("provider down")
	_, err := m.Get(ctx, testKey(), time.Hour, func(context.Context) (string, error) {
		return "", wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Get error = %v, want %v", err, wantErr)
	}

	got, err := m.Get(ctx, testKey(), time.Hour, func(context.Context) (string, error) {
		return "recovered", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "recovered" {
		t.Errorf("Get after failed compute = %q, want fresh compute", got)
	}
}

func TestConcurrentMissComputesOnce(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	var calls atomic.Int32
	compute := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(10 * time.Millisecond)
		return "shared", nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := m.Get(ctx, testKey(), time.Hour, compute)
			if err != nil || got != "shared" {
				t.Errorf("Get = %q, %v", got, err)
			}
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("compute called %d times under concurrent miss, want 1", calls.Load())
	}
}

func TestClockSkewTreatedAsExpired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory()

	// Entry written by a clock running one hour ahead.
	m.now = func() time.Time { return now.Add(time.Hour) }
	m.Put(testKey(), "future value")

	m.now = func() time.Time { return now }
	calls := 0
	got, err := m.Get(context.Background(), testKey(), 24*time.Hour, func(context.Context) (string, error) {
		calls++
		return "recomputed", nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != "recomputed" || calls != 1 {
		t.Errorf("skewed entry must be treated as expired, got %q (calls=%d)", got, calls)
	}
}

func TestSweep(t *testing.T) {
	clock := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m := NewMemory()
	m.now = func() time.Time { return clock }

	m.Put(Key{Lemma: "alt", TargetLanguage: "English", Provider: "claude"}, "old")
	clock = clock.Add(2 * time.Hour)
	m.Put(Key{Lemma: "neu", TargetLanguage: "English", Provider: "claude"}, "new")

	evicted := m.Sweep(time.Hour)
	if evicted != 1 {
		t.Errorf("Sweep evicted %d, want 1", evicted)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d after sweep, want 1", m.Len())
	}
}

func TestDisabledCacheAlwaysComputes(t *testing.T) {
	c := Disabled()
	ctx := context.Background()

	calls := 0
	for i := 0; i < 3; i++ {
		got, err := c.Get(ctx, testKey(), time.Hour, func(context.Context) (string, error) {
			calls++
			return "fresh", nil
		})
		if err != nil || got != "fresh" {
			t.Fatalf("Get = %q, %v", got, err)
		}
	}
	if calls != 3 {
		t.Errorf("disabled cache invoked compute %d times, want 3", calls)
	}
	if _, ok := c.Peek(testKey(), time.Hour); ok {
		t.Error("disabled cache must never report a hit")
	}
}

func TestPeekAndPut(t *testing.T) {
	m := NewMemory()

	if _, ok := m.Peek(testKey(), time.Hour); ok {
		t.Fatal("Peek on empty cache reported a hit")
	}
	m.Put(testKey(), "direct")
	got, ok := m.Peek(testKey(), time.Hour)
	if !ok || got != "direct" {
		t.Errorf("Peek = %q, %v after Put", got, ok)
	}
}
