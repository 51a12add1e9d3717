package ai

import (
	"fmt"
	"strings"

	"codeberg.org/snonux/leveltext/internal/level"
)

func simplifyPrompt(text string, target level.Level, contextText string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Please simplify the following German text to %s level.\n", target)
	fmt.Fprintf(&b, "Replace all words above %s level with simpler alternatives.\n", target)
	b.WriteString("Keep the meaning as close as possible to the original.\n")
	if contextText != "" {
		fmt.Fprintf(&b, "\nSurrounding context (do not include it in the answer):\n%s\n", contextText)
	}
	fmt.Fprintf(&b, "\nOriginal text: %s\n\nSimplified text:", text)
	return b.String()
}

func translatePrompt(lemma, contextSentence, targetLanguage string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Translate the German word %q to %s.\n", lemma, targetLanguage)
	b.WriteString("Provide ONLY the translation, no explanations or additional text.\n")
	b.WriteString("If the word has multiple meanings, provide the most common one.\n")
	if contextSentence != "" {
		fmt.Fprintf(&b, "The word appears in this sentence: %s\n", contextSentence)
	}
	fmt.Fprintf(&b, "\nGerman word: %s\n%s translation:", lemma, targetLanguage)
	return b.String()
}

func batchTranslatePrompt(lemmas []string, targetLanguage string) string {
	quoted := make([]string, len(lemmas))
	for i, lemma := range lemmas {
		quoted[i] = fmt.Sprintf("%q", lemma)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Translate these German words to %s.\n", targetLanguage)
	b.WriteString("Format your response as a simple list with one translation per line,\n")
	b.WriteString("in the same order as the input words.\n\n")
	fmt.Fprintf(&b, "German words: %s\n\n", strings.Join(quoted, ", "))
	b.WriteString("Provide ONLY the translations, one per line:")
	return b.String()
}

// parseBatchResponse lines up a one-translation-per-line response with the
// requested lemmas. Missing or blank lines leave the lemma untranslated, so
// the caller can retry it individually.
func parseBatchResponse(lemmas []string, response string) map[string]string {
	lines := strings.Split(strings.TrimSpace(response), "\n")
	result := make(map[string]string, len(lemmas))
	for i, lemma := range lemmas {
		if i >= len(lines) {
			break
		}
		translation := strings.TrimSpace(lines[i])
		// Tolerate numbered lists ("1. word") some models produce.
		translation = stripListMarker(translation)
		if translation != "" {
			result[lemma] = translation
		}
	}
	return result
}

func stripListMarker(s string) string {
	trimmed := s
	i := 0
	for i < len(trimmed) && trimmed[i] >= '0' && trimmed[i] <= '9' {
		i++
	}
	if i > 0 && i < len(trimmed) && (trimmed[i] == '.' || trimmed[i] == ')') {
		return strings.TrimSpace(trimmed[i+1:])
	}
	return s
}
