package interpret

import (
	"context"
	"time"

	"github.com/bridgeyou/search/internal/domain"
)

// Completer sends one system + user exchange to a completion provider.
type Completer interface {
	Complete(ctx context.Context, req domain.CompletionRequest) (domain.CompletionResult, error)
}

// Budget gates completion calls on token spend.
type Budget interface {
	Allow(ctx context.Context) bool
	Record(ctx context.Context, tokens int)
}

// Counter is the shared per-day token counter behind a TokenBudget.
type Counter interface {
	Add(ctx context.Context, day time.Time, tokens int64) (int64, error)
	Load(ctx context.Context, day time.Time) (int64, error)
}
