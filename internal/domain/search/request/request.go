package request

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/bridgeyou/search/internal/domain"
	"github.com/bridgeyou/search/internal/domain/search/filter"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed query length in runes.
	MaxQueryLength = 500
	// MaxPage caps the page index to keep offsets bounded.
	MaxPage = 1000
)

// Query is a validated search request. Constructed per request, never persisted.
type Query struct {
	text          string
	filters       filter.Explicit
	naturalLang   bool
	page          int
	authenticated bool
}

// New validates and normalizes search parameters.
// An empty text is allowed: the search then lists posts matching the filters.
// Natural-language mode requires text.
func New(text string, filters filter.Explicit, naturalLang bool, page int, authenticated bool) (Query, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) > MaxQueryLength {
		return Query{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidQuery, MaxQueryLength)
	}
	if naturalLang && text == "" {
		return Query{}, fmt.Errorf("%w: query is required in natural-language mode", domain.ErrInvalidQuery)
	}
	if page < 0 {
		return Query{}, fmt.Errorf("%w: page must be >= 0, got %d", domain.ErrInvalidQuery, page)
	}
	if page > MaxPage {
		return Query{}, fmt.Errorf("%w: page must be <= %d, got %d", domain.ErrInvalidQuery, MaxPage, page)
	}
	if err := filters.Validate(); err != nil {
		return Query{}, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
	}

	return Query{
		text:          text,
		filters:       filters,
		naturalLang:   naturalLang,
		page:          page,
		authenticated: authenticated,
	}, nil
}

// Text returns the trimmed free-text query.
func (q *Query) Text() string { return q.text }

// Filters returns the caller's explicit filters.
func (q *Query) Filters() filter.Explicit { return q.filters }

// NaturalLanguage reports whether the query goes through the interpreter.
func (q *Query) NaturalLanguage() bool { return q.naturalLang }

// Page returns the zero-based page index.
func (q *Query) Page() int { return q.page }

// Authenticated reports whether the caller has a valid session.
func (q *Query) Authenticated() bool { return q.authenticated }
