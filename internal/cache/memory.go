package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type entry struct {
	value     string
	createdAt time.Time
}

// Memory is the in-process translation cache. A per-key lock serializes
// concurrent misses so at most one compute runs per key at a time.
type Memory struct {
	mu      sync.Mutex
	entries map[Key]entry
	locks   map[Key]*sync.Mutex

	now func() time.Time
	log *slog.Logger
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{
		entries: make(map[Key]entry),
		locks:   make(map[Key]*sync.Mutex),
		now:     time.Now,
		log:     slog.Default(),
	}
}

func (m *Memory) keyLock(key Key) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		m.locks[key] = lock
	}
	return lock
}

// live returns the entry value if it exists and its TTL has not elapsed.
// An entry with a creation time in the future indicates clock skew; it is
// logged and treated as expired, never as an error.
func (m *Memory) live(key Key, ttl time.Duration) (string, bool) {
	m.mu.Lock()
	e, ok := m.entries[key]
	m.mu.Unlock()
	if !ok {
		return "", false
	}

	now := m.now()
	if e.createdAt.After(now) {
		m.log.Warn("cache entry created in the future, treating as expired",
			"lemma", key.Lemma, "provider", key.Provider, "created_at", e.createdAt)
		return "", false
	}
	if now.Sub(e.createdAt) >= ttl {
		return "", false
	}
	return e.value, true
}

func (m *Memory) Get(ctx context.Context, key Key, ttl time.Duration, compute ComputeFunc) (string, error) {
	if value, ok := m.live(key, ttl); ok {
		return value, nil
	}

	lock := m.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	// Another caller may have filled the entry while we waited for the lock.
	if value, ok := m.live(key, ttl); ok {
		return value, nil
	}

	value, err := compute(ctx)
	if err != nil {
		return "", err
	}
	m.Put(key, value)
	return value, nil
}

func (m *Memory) Peek(key Key, ttl time.Duration) (string, bool) {
	return m.live(key, ttl)
}

func (m *Memory) Put(key Key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = entry{value: value, createdAt: m.now()}
}

// Sweep removes entries older than ttl and returns how many were evicted.
// Lazy expiry in Get makes sweeping optional; it only bounds memory growth
// for long-running processes.
func (m *Memory) Sweep(ttl time.Duration) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	evicted := 0
	for key, e := range m.entries {
		if e.createdAt.After(now) || now.Sub(e.createdAt) >= ttl {
			delete(m.entries, key)
			delete(m.locks, key)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of stored entries, including expired ones not yet
// swept.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) Close() error { return nil }
