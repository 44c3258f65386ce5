package narrate

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/hammamikhairi/recipex/internal/domain"
)

// Script returns the lines spoken for recipe: the title, then one line
// per step of the first instruction group.
func Script(recipe *domain.Recipe) []string {
	if recipe == nil {
		return nil
	}
	lines := make([]string, 0, len(recipe.Steps())+1)
	if title := strings.TrimSpace(recipe.Title); title != "" {
		lines = append(lines, title+".")
	}
	for i, s := range recipe.Steps() {
		text := strings.TrimSpace(s.Step)
		if text == "" {
			continue
		}
		n := s.Number
		if n == 0 {
			n = i + 1
		}
		lines = append(lines, fmt.Sprintf("Step %d. %s", n, text))
	}
	return lines
}

// splitChunks breaks text at sentence boundaries into pieces of roughly
// size characters. size <= 0 disables splitting.
func splitChunks(text string, size int) []string {
	if size <= 0 || len(text) <= size {
		if strings.TrimSpace(text) == "" {
			return nil
		}
		return []string{text}
	}

	var chunks []string
	var cur strings.Builder
	flush := func() {
		if c := strings.TrimSpace(cur.String()); c != "" {
			chunks = append(chunks, c)
		}
		cur.Reset()
	}
	for _, s := range splitSentences(text) {
		if cur.Len() > 0 && cur.Len()+len(s) > size {
			flush()
		}
		cur.WriteString(s)
	}
	flush()
	return chunks
}

// splitSentences splits at . ! ? keeping the punctuation and trailing
// whitespace with the preceding sentence.
func splitSentences(text string) []string {
	var out []string
	var cur strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		cur.WriteRune(runes[i])
		if runes[i] == '.' || runes[i] == '!' || runes[i] == '?' {
			for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				i++
				cur.WriteRune(runes[i])
			}
			out = append(out, cur.String())
			cur.Reset()
		}
	}
	if cur.Len() > 0 {
		out = append(out, cur.String())
	}
	return out
}
