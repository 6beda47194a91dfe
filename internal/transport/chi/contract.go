package chi

import (
	"context"

	"github.com/bridgeyou/search/internal/domain/search/request"
	"github.com/bridgeyou/search/internal/domain/search/result"
	healthuc "github.com/bridgeyou/search/internal/usecase/health"
)

// Searcher runs the search pipeline.
type Searcher interface {
	Search(ctx context.Context, q request.Query) (result.Page, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}
