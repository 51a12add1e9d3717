// Package export writes analysis results to timestamped output files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"codeberg.org/snonux/leveltext/internal"
	"codeberg.org/snonux/leveltext/internal/engine"
	"codeberg.org/snonux/leveltext/internal/level"
)

// Options configures where and under which names results are written.
type Options struct {
	OutputDir string
	// Now supplies the timestamp for generated file names. Nil means
	// time.Now.
	Now func() time.Time
}

// Writer persists engine results. File names carry the target level,
// translation language and a timestamp so repeated runs never clobber
// each other.
type Writer struct {
	options Options
}

func NewWriter(options Options) *Writer {
	if options.OutputDir == "" {
		options.OutputDir = "."
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	return &Writer{options: options}
}

func (w *Writer) timestamp() string {
	return w.options.Now().Format("20060102_150405")
}

func (w *Writer) ensureDir() error {
	if err := os.MkdirAll(w.options.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// WriteLeveledText writes the rewritten prose of a leveling result and
// returns the created file path.
func (w *Writer) WriteLeveledText(result *engine.Result, target level.Level) (string, error) {
	if result.Mode != engine.ModeLeveling {
		return "", fmt.Errorf("cannot export %s result as leveled text", result.Mode)
	}
	if err := w.ensureDir(); err != nil {
		return "", err
	}

	name := fmt.Sprintf("leveled_text_%s_%s.txt", strings.ToLower(target.String()), w.timestamp())
	path := filepath.Join(w.options.OutputDir, name)
	if err := os.WriteFile(path, []byte(result.OutputText), 0644); err != nil {
		return "", fmt.Errorf("failed to write leveled text: %w", err)
	}
	return path, nil
}

// WriteWordList writes the vocabulary of a labeling result as a CSV file
// and returns the created file path. Entries whose translation failed are
// marked in the translation column instead of being dropped.
func (w *Writer) WriteWordList(result *engine.Result, target level.Level, language string) (string, error) {
	if result.Mode != engine.ModeLabeling {
		return "", fmt.Errorf("cannot export %s result as word list", result.Mode)
	}
	if err := w.ensureDir(); err != nil {
		return "", err
	}

	name := fmt.Sprintf("word_list_%s_%s_%s.csv",
		strings.ToLower(target.String()), internal.SanitizeFilename(strings.ToLower(language)), w.timestamp())
	path := filepath.Join(w.options.OutputDir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create word list file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	headers := []string{"German Word", "Lemma", "Part of Speech", "Level", "Translation"}
	if err := writer.Write(headers); err != nil {
		return "", fmt.Errorf("failed to write headers: %w", err)
	}

	for _, item := range result.Vocabulary {
		lvl := item.Level.String()
		if !item.Known {
			lvl = "unknown"
		}
		translation := item.Translation
		if item.Err != nil {
			translation = "[translation failed]"
		}
		record := []string{item.Surface, item.Lemma, item.PartOfSpeech, lvl, translation}
		if err := writer.Write(record); err != nil {
			return "", fmt.Errorf("failed to write word entry: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("failed to flush word list: %w", err)
	}
	return path, nil
}
