package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"codeberg.org/snonux/leveltext/internal/engine"
	"codeberg.org/snonux/leveltext/internal/level"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
}

func TestWriteLeveledText(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(Options{OutputDir: dir, Now: fixedClock})

	result := &engine.Result{
		Mode:       engine.ModeLeveling,
		OutputText: "Das Wetter ist sehr schön.",
	}
	path, err := w.WriteLeveledText(result, level.B1)
	if err != nil {
		t.Fatalf("WriteLeveledText: %v", err)
	}
	if filepath.Base(path) != "leveled_text_b1_20250314_092653.txt" {
		t.Errorf("file name = %q", filepath.Base(path))
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != result.OutputText {
		t.Errorf("content = %q", content)
	}
}

func TestWriteLeveledTextRejectsLabelingResult(t *testing.T) {
	w := NewWriter(Options{OutputDir: t.TempDir(), Now: fixedClock})
	if _, err := w.WriteLeveledText(&engine.Result{Mode: engine.ModeLabeling}, level.A1); err == nil {
		t.Error("expected mode mismatch error")
	}
}

func TestWriteWordList(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(Options{OutputDir: dir, Now: fixedClock})

	result := &engine.Result{
		Mode: engine.ModeLabeling,
		Vocabulary: []engine.VocabularyItem{
			{Lemma: "arbeiten", Surface: "arbeitet", PartOfSpeech: "VERB", Level: level.B1, Known: true, Translation: "to work"},
			{Lemma: "Büro", Surface: "Büro", PartOfSpeech: "NOUN", Translation: "office"},
			{Lemma: "Zins", Surface: "Zinsen", PartOfSpeech: "NOUN", Err: os.ErrDeadlineExceeded},
		},
	}
	path, err := w.WriteWordList(result, level.A1, "English")
	if err != nil {
		t.Fatalf("WriteWordList: %v", err)
	}
	if filepath.Base(path) != "word_list_a1_english_20250314_092653.csv" {
		t.Errorf("file name = %q", filepath.Base(path))
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 4 {
		t.Fatalf("records = %d, want header plus three rows", len(records))
	}
	if !strings.HasPrefix(strings.Join(records[0], ","), "German Word,Lemma,Part of Speech") {
		t.Errorf("header = %v", records[0])
	}
	if records[1][3] != "B1" || records[1][4] != "to work" {
		t.Errorf("row 1 = %v", records[1])
	}
	// Unclassified words carry no level, failed translations stay visible.
	if records[2][3] != "unknown" {
		t.Errorf("row 2 level = %q", records[2][3])
	}
	if records[3][4] != "[translation failed]" {
		t.Errorf("row 3 translation = %q", records[3][4])
	}
}

func TestWriterCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	w := NewWriter(Options{OutputDir: dir, Now: fixedClock})

	result := &engine.Result{Mode: engine.ModeLeveling, OutputText: "Text."}
	if _, err := w.WriteLeveledText(result, level.A1); err != nil {
		t.Fatalf("WriteLeveledText: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("output directory missing: %v", err)
	}
}
