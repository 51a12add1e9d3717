package vocab

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadStopwords reads a plain-text stopword list, one word per line. Lines
// starting with ';' are comments. Stopwords are excluded from difficulty
// filtering the same way core words are.
func (s *Store) LoadStopwords(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open stopwords: %w", err)
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		s.stopwords[strings.ToLower(line)] = struct{}{}
		count++
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("read stopwords: %w", err)
	}
	return count, nil
}

// IsExcluded reports whether a lemma is a stopword or a German core word.
// Excluded lemmas are never simplification or vocabulary-learning targets.
func (s *Store) IsExcluded(lemma string) bool {
	normalized := Normalize(lemma)
	if _, ok := s.stopwords[normalized]; ok {
		return true
	}
	_, ok := s.coreWords[normalized]
	return ok
}

// StopwordCount returns the number of loaded stopwords.
func (s *Store) StopwordCount() int {
	return len(s.stopwords)
}

// coreWordSet returns function words every German learner meets on day one:
// articles, pronouns, prepositions, conjunctions, question words, frequent
// adverbs, the auxiliary verbs and the numbers one to twenty. The auxiliaries
// are listed in their inflected forms too, because the fallback analyzer
// never lemmatizes "ist" back to "sein".
func coreWordSet() map[string]struct{} {
	words := []string{
		// Articles
		"der", "die", "das", "den", "dem", "des", "ein", "eine", "einen", "einem", "einer", "eines",
		// Personal pronouns
		"ich", "du", "er", "sie", "es", "wir", "ihr",
		"mich", "dich", "ihn", "uns", "euch",
		"mir", "dir", "ihm", "ihnen",
		// Possessive pronouns
		"mein", "dein", "sein", "unser", "euer",
		"meine", "deine", "seine", "ihre", "unsere", "eure",
		// Common prepositions
		"in", "an", "auf", "unter", "über", "vor", "hinter", "neben", "zwischen",
		"mit", "ohne", "für", "gegen", "durch", "um", "aus", "bei", "nach", "von", "zu",
		// Common conjunctions
		"und", "oder", "aber", "denn", "sondern", "sowie", "als", "wie", "wenn", "weil", "dass",
		// Question words
		"was", "wer", "wo", "wann", "warum", "welche", "welcher", "welches",
		// Common adverbs
		"nicht", "sehr", "auch", "noch", "schon", "nur", "hier", "da", "dort",
		// Auxiliary verbs sein/haben/werden, including inflected forms
		"bin", "bist", "ist", "sind", "seid", "war", "waren", "warst", "wart", "gewesen",
		"haben", "habe", "hast", "hat", "habt", "hatte", "hatten", "hattest", "hattet", "gehabt",
		"werden", "werde", "wirst", "wird", "werdet", "wurde", "wurden", "wurdest", "wurdet", "geworden",
		// Numbers 1-20
		"eins", "zwei", "drei", "vier", "fünf", "sechs", "sieben", "acht", "neun", "zehn",
		"elf", "zwölf", "dreizehn", "vierzehn", "fünfzehn", "sechzehn", "siebzehn",
		"achtzehn", "neunzehn", "zwanzig",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
