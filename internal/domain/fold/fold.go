// Package fold normalizes free text for case- and accent-insensitive comparison.
package fold

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// String case-folds s and strips combining marks, so "Société Générale"
// and "societe generale" fold to the same value.
// Transformers are stateful, so each call builds its own chain.
func String(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		stripped = strings.TrimSpace(s)
	}
	return cases.Fold().String(stripped)
}

// Equal reports whether a and b are equal after folding.
func Equal(a, b string) bool {
	return String(a) == String(b)
}

// Contains reports whether sub occurs in s after folding both.
// An empty sub never matches.
func Contains(s, sub string) bool {
	fs := String(sub)
	if fs == "" {
		return false
	}
	return strings.Contains(String(s), fs)
}
