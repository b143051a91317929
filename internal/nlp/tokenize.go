// Package nlp provides the lexical text analysis used by the
// wrapped pipeline: tokenizing, keyword frequency extraction,
// rule-based topic classification, and lexicon sentiment scoring.
// Everything here is pure and regex/table driven; there is no
// model-based processing.
package nlp

import "strings"

// Tokenize lowercases text, strips every character outside
// [a-z0-9+#.\-], and splits on whitespace. Deterministic, no
// external state.
func Tokenize(text string) []string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		if tokenRune(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Fields(b.String())
}

func tokenRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '+' || r == '#' || r == '.' || r == '-':
		return true
	}
	return false
}
