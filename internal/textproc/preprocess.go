// Package textproc provides text normalization for keyword scoring.
// Digits are deliberately stripped here: numeric evidence is scored
// separately by the quantifiable-metric detector on the raw text.
package textproc

import "strings"

// Normalize lowercases text, removes every character outside [a-z] and
// whitespace, drops stopwords and returns the remaining tokens joined by
// single spaces. Empty input yields an empty string.
func Normalize(text string) string {
	return strings.Join(Tokenize(text), " ")
}

// Tokenize lowercases text, strips punctuation and digits, splits on
// whitespace and filters out stopwords. Token order and repetition are
// preserved so downstream term-frequency counts stay meaningful.
func Tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		}
		// Everything else (digits, punctuation, symbols) is dropped.
	}

	fields := strings.Fields(b.String())
	tokens := make([]string, 0, len(fields))
	for _, tok := range fields {
		if IsStopWord(tok) {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
