package search

import (
	"context"

	"github.com/bridgeyou/search/internal/domain/post"
	"github.com/bridgeyou/search/internal/domain/search/analysis"
	"github.com/bridgeyou/search/internal/domain/search/filter"
)

// Repository defines the storage contract for post search.
type Repository interface {
	Search(
		ctx context.Context, filters filter.Effective, terms []string,
		authenticated bool, page, pageSize int,
	) ([]post.Post, int, error)
}

// Interpreter turns a natural-language query into structured filters.
// It never fails; degraded paths return a fallback analysis.
type Interpreter interface {
	Analyze(ctx context.Context, query string) analysis.Analysis
}

// BankResolver maps free-text bank names to directory identifiers.
type BankResolver interface {
	Resolve(ctx context.Context, names []string) []string
}
