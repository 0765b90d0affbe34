package rules

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalize prepares raw posting text for analysis. Compatibility forms
// are folded (full-width digits become ASCII), control characters other
// than line breaks and tabs are removed, and the rupee sign is rewritten
// to "Rs. " so the currency check sees a single marker.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "₹", "Rs. ")

	t := transform.Chain(norm.NFKC, runes.Remove(runes.Predicate(isStrippedControl)))
	out, _, err := transform.String(t, text)
	if err != nil {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(out)
}

func isStrippedControl(r rune) bool {
	switch r {
	case '\n', '\r', '\t':
		return false
	}
	return unicode.IsControl(r) || r == '\u200b' || r == '\ufeff'
}
