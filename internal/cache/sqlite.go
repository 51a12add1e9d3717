package cache

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS translations (
	lemma       TEXT NOT NULL,
	language    TEXT NOT NULL,
	provider    TEXT NOT NULL,
	translation TEXT NOT NULL,
	created_at  INTEGER NOT NULL,
	PRIMARY KEY (lemma, language, provider)
);`

// SQLite is a persistent translation cache. It keeps translations across
// process restarts so re-analyzing the same documents stays cheap.
type SQLite struct {
	db *sql.DB

	mu    sync.Mutex
	locks map[Key]*sync.Mutex

	now func() time.Time
	log *slog.Logger
}

// NewSQLite opens (or creates) a cache database at path.
func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create cache schema: %w", err)
	}
	return &SQLite{
		db:    db,
		locks: make(map[Key]*sync.Mutex),
		now:   time.Now,
		log:   slog.Default(),
	}, nil
}

func (s *SQLite) keyLock(key Key) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

func (s *SQLite) live(key Key, ttl time.Duration) (string, bool) {
	var translation string
	var createdUnix int64
	err := s.db.QueryRow(
		`SELECT translation, created_at FROM translations WHERE lemma = ? AND language = ? AND provider = ?`,
		key.Lemma, key.TargetLanguage, key.Provider,
	).Scan(&translation, &createdUnix)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			s.log.Warn("cache read failed", "lemma", key.Lemma, "error", err)
		}
		return "", false
	}

	now := s.now()
	created := time.Unix(createdUnix, 0)
	if created.After(now) {
		s.log.Warn("cache entry created in the future, treating as expired",
			"lemma", key.Lemma, "provider", key.Provider, "created_at", created)
		return "", false
	}
	if now.Sub(created) >= ttl {
		return "", false
	}
	return translation, true
}

func (s *SQLite) Get(ctx context.Context, key Key, ttl time.Duration, compute ComputeFunc) (string, error) {
	if value, ok := s.live(key, ttl); ok {
		return value, nil
	}

	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	if value, ok := s.live(key, ttl); ok {
		return value, nil
	}

	value, err := compute(ctx)
	if err != nil {
		return "", err
	}
	s.Put(key, value)
	return value, nil
}

func (s *SQLite) Peek(key Key, ttl time.Duration) (string, bool) {
	return s.live(key, ttl)
}

func (s *SQLite) Put(key Key, value string) {
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO translations (lemma, language, provider, translation, created_at) VALUES (?, ?, ?, ?, ?)`,
		key.Lemma, key.TargetLanguage, key.Provider, value, s.now().Unix(),
	)
	if err != nil {
		// A failed write degrades to a miss next time, nothing more.
		s.log.Warn("cache write failed", "lemma", key.Lemma, "error", err)
	}
}

// Sweep deletes entries older than ttl and returns the number removed.
func (s *SQLite) Sweep(ttl time.Duration) int {
	cutoff := s.now().Add(-ttl).Unix()
	res, err := s.db.Exec(`DELETE FROM translations WHERE created_at <= ?`, cutoff)
	if err != nil {
		s.log.Warn("cache sweep failed", "error", err)
		return 0
	}
	n, _ := res.RowsAffected()
	return int(n)
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

var _ Cache = (*SQLite)(nil)
var _ Cache = (*Memory)(nil)
