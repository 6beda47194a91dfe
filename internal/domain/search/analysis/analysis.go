// Package analysis holds the structured interpretation of a free-text query
// and the validation that turns untrusted completion output into it.
package analysis

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/bridgeyou/search/internal/domain/post"
	"github.com/bridgeyou/search/internal/domain/search/filter"
	"github.com/bridgeyou/search/internal/domain/search/terms"
)

// Confidence values assigned when the completion does not supply one.
const (
	FallbackConfidence = 0.5
	DefaultConfidence  = 0.7
)

// fallbackMinTermLen keeps tokens longer than two runes in the keyword fallback.
const fallbackMinTermLen = 2

// Source records which path produced an analysis.
type Source string

// Analysis sources.
const (
	SourceCompletion Source = "completion"
	SourceFallback   Source = "fallback"
)

// ErrNoJSONObject signals completion output without a JSON object in it.
var ErrNoJSONObject = errors.New("no json object in completion output")

// Analysis is the interpreter's structured view of a query.
// Enum-valued fields only ever hold values from the closed vocabularies.
type Analysis struct {
	SearchTerms []string
	Categories  []post.Category
	Types       []post.Type
	Tags        []string
	Cities      []string
	Banks       []string
	DateRange   *filter.DateRange
	SortBy      filter.Sort
	Confidence  float64
	Source      Source
}

// Fallback is the keyword-only analysis used when no completion is available.
func Fallback(query string) Analysis {
	return Analysis{
		SearchTerms: terms.Split(query, fallbackMinTermLen),
		Categories:  []post.Category{},
		Types:       []post.Type{},
		Tags:        []string{},
		Cities:      []string{},
		Banks:       []string{},
		SortBy:      filter.SortRecent,
		Confidence:  FallbackConfidence,
		Source:      SourceFallback,
	}
}

// Parse extracts the first JSON object from completion output and validates it.
// Markdown fences or prose around the object are ignored.
func Parse(content, query string) (Analysis, error) {
	start := strings.IndexByte(content, '{')
	end := strings.LastIndexByte(content, '}')
	if start < 0 || end <= start {
		return Analysis{}, ErrNoJSONObject
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return Analysis{}, fmt.Errorf("decode completion json: %w", err)
	}
	return FromRaw(raw, query), nil
}

// FromRaw coerces an untyped completion object into an Analysis.
// Missing or mistyped fields get defaults; unknown enum values are dropped.
func FromRaw(raw map[string]any, query string) Analysis {
	a := Analysis{
		Categories: []post.Category{},
		Types:      []post.Type{},
		SortBy:     filter.SortRecent,
		Confidence: DefaultConfidence,
		Source:     SourceCompletion,
	}

	if list, ok := raw["searchTerms"].([]any); ok {
		a.SearchTerms = make([]string, 0, len(list))
		for _, s := range stringsOf(list) {
			if utf8.RuneCountInString(s) > 1 {
				a.SearchTerms = append(a.SearchTerms, s)
			}
		}
	} else {
		a.SearchTerms = terms.Split(query, fallbackMinTermLen)
	}

	if list, ok := raw["categories"].([]any); ok {
		for _, s := range stringsOf(list) {
			if c := post.Category(s); c.IsValid() && !slices.Contains(a.Categories, c) {
				a.Categories = append(a.Categories, c)
			}
		}
	}

	if list, ok := raw["types"].([]any); ok {
		for _, s := range stringsOf(list) {
			if t := post.Type(s); t.IsValid() && !slices.Contains(a.Types, t) {
				a.Types = append(a.Types, t)
			}
		}
	}

	a.Tags = listField(raw, "tags")
	a.Cities = listField(raw, "cities")
	a.Banks = listField(raw, "banks")
	a.DateRange = dateRangeField(raw["dateRange"])

	if s, ok := raw["sortBy"].(string); ok {
		if sort := filter.Sort(s); sort.IsValid() {
			a.SortBy = sort
		}
	}

	if c, ok := raw["confidence"].(float64); ok {
		a.Confidence = clamp(c)
	}

	return a
}

func listField(raw map[string]any, key string) []string {
	list, ok := raw[key].([]any)
	if !ok {
		return []string{}
	}
	return stringsOf(list)
}

// stringsOf keeps trimmed, non-empty, de-duplicated string elements.
func stringsOf(list []any) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, v := range list {
		s, ok := v.(string)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func dateRangeField(v any) *filter.DateRange {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	var r filter.DateRange
	if s, ok := obj["from"].(string); ok {
		r.From, _ = filter.ParseDate(s)
	}
	if s, ok := obj["to"].(string); ok {
		r.To, _ = filter.ParseDate(s)
	}
	if r.IsEmpty() {
		return nil
	}
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return nil
	}
	return &r
}

func clamp(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}
