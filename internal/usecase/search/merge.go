package search

import (
	"github.com/bridgeyou/search/internal/domain/bank"
	"github.com/bridgeyou/search/internal/domain/post"
	"github.com/bridgeyou/search/internal/domain/search/analysis"
	"github.com/bridgeyou/search/internal/domain/search/filter"
	"github.com/bridgeyou/search/internal/domain/search/terms"
)

// Merge combines the caller's explicit filters with the interpreter's
// analysis and the resolved bank IDs. It returns the effective filters and
// the keyword terms to match against title and content (nil when keyword
// matching should be skipped).
//
// Explicit values win field by field. A non-empty bank list suppresses
// derived tags and the derived category; generic filler terms next to a
// bank default the category to interviews.
func Merge(explicit filter.Explicit, a analysis.Analysis, resolvedBankIDs []string) (filter.Effective, []string) {
	eff := filter.Effective{
		Type:   explicit.Type,
		Cities: explicit.AllCities(),
		DateRange: filter.DateRange{
			From: explicit.DateFrom,
			To:   explicit.DateTo,
		},
		Sort: explicit.Sort,
	}

	eff.BankIDs = explicit.BankIDs
	if len(eff.BankIDs) == 0 {
		eff.BankIDs = resolvedBankIDs
	}

	kw := terms.Without(a.SearchTerms, bankNames(a.Banks))

	switch {
	case explicit.Category != "":
		eff.Category = explicit.Category
	case eff.HasBanks():
		if terms.AnyGeneric(kw) {
			eff.Category = post.CategoryInterview
		}
	case len(a.Categories) > 0:
		eff.Category = a.Categories[0]
	}

	if eff.Type == "" && len(a.Types) > 0 {
		eff.Type = a.Types[0]
	}

	switch {
	case len(explicit.Tags) > 0:
		eff.Tags = explicit.Tags
	case eff.HasBanks():
		eff.Tags = nil
	default:
		eff.Tags = a.Tags
	}

	if len(eff.Cities) == 0 {
		eff.Cities = a.Cities
	}

	if a.DateRange != nil {
		if eff.DateRange.From == nil {
			eff.DateRange.From = a.DateRange.From
		}
		if eff.DateRange.To == nil {
			eff.DateRange.To = a.DateRange.To
		}
	}

	if eff.Sort == "" {
		eff.Sort = a.SortBy
	}
	if eff.Sort == "" {
		eff.Sort = filter.SortRecent
	}

	if len(kw) == 0 || (eff.HasBanks() && terms.AllGeneric(kw)) {
		kw = nil
	}

	return eff, kw
}

// bankNames returns the extracted names plus their canonical forms, so that
// "GS" also removes "Goldman" and "Sachs"-style terms.
func bankNames(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, 0, len(names)*2)
	for _, n := range names {
		out = append(out, n)
		if c := bank.Canonical(n); c != n {
			out = append(out, c)
		}
	}
	return out
}
