// Package cache memoizes AI translation results so repeated lookups of the
// same lemma do not trigger billed provider calls.
package cache

import (
	"context"
	"time"
)

// Key identifies one cached translation. Provider identity is part of the
// key because different providers return different translations.
type Key struct {
	Lemma          string
	TargetLanguage string
	Provider       string
}

// ComputeFunc produces a translation on cache miss.
type ComputeFunc func(ctx context.Context) (string, error)

// Cache is the translation memoization contract. Get returns the stored
// value on a live hit without invoking compute; on miss or expiry it invokes
// compute exactly once for the call, stores the result and returns it.
// Expiry is relative to entry creation time, never to last access.
type Cache interface {
	Get(ctx context.Context, key Key, ttl time.Duration, compute ComputeFunc) (string, error)

	// Peek reports a live cached value without computing anything. It lets
	// callers collect pending misses for batch translation.
	Peek(key Key, ttl time.Duration) (string, bool)

	// Put stores a value directly, refreshing any existing entry.
	Put(key Key, value string)

	Close() error
}

// disabled is the degenerate cache used when caching is switched off:
// every Get invokes compute and nothing is stored.
type disabled struct{}

// Disabled returns the always-miss cache.
func Disabled() Cache { return disabled{} }

func (disabled) Get(ctx context.Context, _ Key, _ time.Duration, compute ComputeFunc) (string, error) {
	return compute(ctx)
}

func (disabled) Peek(Key, time.Duration) (string, bool) { return "", false }
func (disabled) Put(Key, string)                        {}
func (disabled) Close() error                           { return nil }
