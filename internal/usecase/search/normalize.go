package search

import (
	"strings"

	"github.com/bridgeyou/search/internal/domain/search/analysis"
	"github.com/bridgeyou/search/internal/domain/search/terms"
)

// keywordAnalysis builds the analysis for plain keyword mode: the query
// split on whitespace, with nothing derived.
func keywordAnalysis(text string) analysis.Analysis {
	return analysis.Analysis{
		SearchTerms: terms.Split(strings.TrimSpace(text), 0),
	}
}
