// Package filter holds the explicit filters a caller can send and the
// effective filter set that drives the post query.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/bridgeyou/search/internal/domain/post"
)

// DateLayout is the wire format for date bounds (ISO date).
const DateLayout = "2006-01-02"

// Limits on list-valued filters.
const (
	MaxListValues = 20
	MaxValueLen   = 100
)

// Sort is the result ordering.
type Sort string

// Sort modes.
const (
	// SortRecent orders by creation time, newest first (default).
	SortRecent   Sort = "recent"
	SortPopular  Sort = "popular"
	SortComments Sort = "comments"
)

// IsValid checks if the sort mode is one of the supported values.
func (s Sort) IsValid() bool {
	return s == SortRecent || s == SortPopular || s == SortComments
}

// DateRange bounds post creation dates. Either side may be open.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// IsEmpty reports whether neither bound is set.
func (r DateRange) IsEmpty() bool { return r.From == nil && r.To == nil }

// ParseDate parses an ISO date; empty input yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return &d, nil
}

// Explicit is the filter object supplied by the caller. Zero values mean "not set".
type Explicit struct {
	Category post.Category
	Type     post.Type
	City     string
	Cities   []string
	BankIDs  []string
	Tags     []string
	DateFrom *time.Time
	DateTo   *time.Time
	Sort     Sort
}

// Validate checks enum fields and list sizes, and trims list values in place.
func (e *Explicit) Validate() error {
	if e.Category != "" && !e.Category.IsValid() {
		return fmt.Errorf("invalid category: %q", e.Category)
	}
	if e.Type != "" && !e.Type.IsValid() {
		return fmt.Errorf("invalid type: %q", e.Type)
	}
	if e.Sort != "" && !e.Sort.IsValid() {
		return fmt.Errorf("invalid sort: %q", e.Sort)
	}
	if e.DateFrom != nil && e.DateTo != nil && e.DateFrom.After(*e.DateTo) {
		return fmt.Errorf("date_from must not be after date_to")
	}
	e.City = strings.TrimSpace(e.City)

	var err error
	if e.Cities, err = cleanList("cities", e.Cities); err != nil {
		return err
	}
	if e.BankIDs, err = cleanList("banks", e.BankIDs); err != nil {
		return err
	}
	if e.Tags, err = cleanList("tags", e.Tags); err != nil {
		return err
	}
	return nil
}

// AllCities returns City and Cities merged, without duplicates.
func (e *Explicit) AllCities() []string {
	out := make([]string, 0, len(e.Cities)+1)
	seen := make(map[string]struct{}, len(e.Cities)+1)
	add := func(c string) {
		if c == "" {
			return
		}
		if _, ok := seen[c]; ok {
			return
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	add(e.City)
	for _, c := range e.Cities {
		add(c)
	}
	return out
}

func cleanList(name string, values []string) ([]string, error) {
	if len(values) > MaxListValues {
		return nil, fmt.Errorf("too many %s (max %d)", name, MaxListValues)
	}
	out := values[:0]
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if len(v) > MaxValueLen {
			return nil, fmt.Errorf("%s value too long (max %d chars)", name, MaxValueLen)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}

// Effective is the resolved filter set driving the post query.
// BankIDs are always directory identifiers, never free text.
type Effective struct {
	Category  post.Category
	Type      post.Type
	BankIDs   []string
	Tags      []string
	Cities    []string
	DateRange DateRange
	Sort      Sort
}

// HasBanks reports whether a bank filter is active.
func (e Effective) HasBanks() bool { return len(e.BankIDs) > 0 }
