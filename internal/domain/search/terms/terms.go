// Package terms splits free-text queries into keyword terms and knows the
// generic filler words that carry no topical signal on their own.
package terms

import (
	"strings"
	"unicode/utf8"

	"github.com/bridgeyou/search/internal/domain/fold"
)

// generic holds folded French filler words. A query made only of these
// words says "tell me about X" rather than naming a topic.
var generic = map[string]struct{}{
	"truc":        {},
	"trucs":       {},
	"info":        {},
	"infos":       {},
	"information": {},
	"conseil":     {},
	"conseils":    {},
	"prep":        {},
	"prepa":       {},
	"preparation": {},
	"preparer":    {},
	"entretien":   {},
	"entretiens":  {},
	"question":    {},
	"questions":   {},
	"astuce":      {},
	"astuces":     {},
	"tips":        {},
}

// IsGeneric reports whether term is a generic filler word (case- and accent-insensitive).
func IsGeneric(term string) bool {
	_, ok := generic[fold.String(term)]
	return ok
}

// AnyGeneric reports whether at least one term is generic.
func AnyGeneric(ts []string) bool {
	for _, t := range ts {
		if IsGeneric(t) {
			return true
		}
	}
	return false
}

// AllGeneric reports whether ts is non-empty and every term is generic.
func AllGeneric(ts []string) bool {
	if len(ts) == 0 {
		return false
	}
	for _, t := range ts {
		if !IsGeneric(t) {
			return false
		}
	}
	return true
}

// Split splits query on single spaces and keeps tokens longer than minLen
// runes. Tabs and newlines stay inside their token.
func Split(query string, minLen int) []string {
	fields := strings.Split(query, " ")
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if utf8.RuneCountInString(f) > minLen {
			out = append(out, f)
		}
	}
	return out
}

// Without returns ts minus every term that fold-matches one of names,
// either as a whole or, for terms of three runes or more, as a substring of
// the name ("Goldman" in "Goldman Sachs").
func Without(ts, names []string) []string {
	if len(names) == 0 {
		return ts
	}
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		if !namesTerm(t, names) {
			out = append(out, t)
		}
	}
	return out
}

func namesTerm(term string, names []string) bool {
	for _, n := range names {
		if fold.Equal(term, n) {
			return true
		}
		if utf8.RuneCountInString(term) >= 3 && fold.Contains(n, term) {
			return true
		}
	}
	return false
}
