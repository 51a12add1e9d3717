// Package vocab loads per-level German vocabulary lists and answers
// lemma-to-level lookups.
package vocab

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/snonux/leveltext/internal/level"
)

// Column headers recognized in vocabulary CSV files. Lemma is mandatory,
// the rest are optional and may appear in any order. Unknown columns are
// ignored.
const (
	columnLemma   = "Lemma"
	columnPOS     = "Wortart"
	columnGender  = "Genus"
	columnArticle = "Artikel"
)

// Entry is one vocabulary word as loaded from a level file.
type Entry struct {
	Lemma        string
	PartOfSpeech string
	Gender       string
	Article      string
	Level        level.Level
}

// LoadError describes a vocabulary source that could not be loaded.
type LoadError struct {
	Level level.Level
	Path  string
	Err   error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("vocabulary %s (%s): %v", e.Level, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Options controls store construction.
type Options struct {
	// Strict turns a missing or malformed level source into a load failure.
	// The default (lenient) records the level as absent and continues.
	Strict bool
	Logger *slog.Logger
}

// Store holds the lemma->level lookup built from the per-level word lists.
// It is immutable after Load and safe for concurrent readers.
type Store struct {
	entries   map[string]Entry
	missing   []level.Level
	stopwords map[string]struct{}
	coreWords map[string]struct{}
}

// Normalize lower-cases and trims a lemma the same way load and lookup do.
func Normalize(lemma string) string {
	return strings.ToLower(strings.TrimSpace(lemma))
}

// Load builds a Store from one CSV source per level. Absent levels contribute
// zero entries unless opts.Strict is set. If a lemma appears at several
// levels the lowest level wins.
func Load(sources map[level.Level]string, opts *Options) (*Store, error) {
	if opts == nil {
		opts = &Options{}
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	s := &Store{
		entries:   make(map[string]Entry),
		stopwords: make(map[string]struct{}),
		coreWords: coreWordSet(),
	}

	// Ascending level order so that the lowest level claims a lemma first.
	for _, lvl := range level.All() {
		path, ok := sources[lvl]
		if !ok || path == "" {
			s.missing = append(s.missing, lvl)
			continue
		}
		count, err := s.loadLevel(lvl, path)
		if err != nil {
			loadErr := &LoadError{Level: lvl, Path: path, Err: err}
			if opts.Strict {
				return nil, loadErr
			}
			log.Warn("skipping vocabulary level", "level", lvl.String(), "error", err)
			s.missing = append(s.missing, lvl)
			continue
		}
		log.Info("loaded vocabulary level", "level", lvl.String(), "words", count)
	}

	return s, nil
}

// LoadDir builds a Store from a directory holding one <level>.csv per level,
// e.g. A1.csv .. C1.csv. C1_withduplicates.csv is accepted as an alternative
// name for the C1 list.
func LoadDir(dir string, opts *Options) (*Store, error) {
	sources := make(map[level.Level]string)
	for _, lvl := range level.All() {
		candidates := []string{lvl.String() + ".csv"}
		if lvl == level.C1 {
			candidates = append(candidates, "C1_withduplicates.csv")
		}
		for _, name := range candidates {
			path := filepath.Join(dir, name)
			if _, err := os.Stat(path); err == nil {
				sources[lvl] = path
				break
			}
		}
	}
	return Load(sources, opts)
}

func (s *Store) loadLevel(lvl level.Level, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return 0, errors.New("empty file, header row required")
		}
		return 0, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int)
	for i, name := range header {
		columns[strings.TrimSpace(stripBOM(name))] = i
	}
	lemmaIdx, ok := columns[columnLemma]
	if !ok {
		return 0, fmt.Errorf("missing mandatory %q column (found: %s)", columnLemma, strings.Join(header, ", "))
	}

	count := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return count, fmt.Errorf("read row: %w", err)
		}
		if lemmaIdx >= len(record) {
			continue
		}
		lemma := Normalize(record[lemmaIdx])
		if lemma == "" {
			continue
		}
		// Lowest level wins; earlier (lower) levels were loaded first.
		if _, exists := s.entries[lemma]; exists {
			continue
		}
		s.entries[lemma] = Entry{
			Lemma:        lemma,
			PartOfSpeech: field(record, columns, columnPOS),
			Gender:       field(record, columns, columnGender),
			Article:      field(record, columns, columnArticle),
			Level:        lvl,
		}
		count++
	}
	return count, nil
}

func field(record []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func stripBOM(s string) string {
	return strings.TrimPrefix(s, "\uFEFF")
}

// Lookup returns the lowest level at which the lemma appears. The second
// return value is false when the lemma is absent from all loaded levels.
func (s *Store) Lookup(lemma string) (level.Level, bool) {
	entry, ok := s.entries[Normalize(lemma)]
	if !ok {
		return 0, false
	}
	return entry.Level, true
}

// Entry returns the full vocabulary entry for a lemma, if present.
func (s *Store) Entry(lemma string) (Entry, bool) {
	entry, ok := s.entries[Normalize(lemma)]
	return entry, ok
}

// Missing returns the levels for which no source was loaded.
func (s *Store) Missing() []level.Level {
	return s.missing
}

// Size returns the number of distinct lemmas in the store.
func (s *Store) Size() int {
	return len(s.entries)
}
