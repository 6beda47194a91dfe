package health

import (
	"context"

	"github.com/bridgeyou/search/internal/domain/bank"
)

// Pinger checks store availability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// CompletionChecker checks completion provider availability.
type CompletionChecker interface {
	HealthCheck(ctx context.Context) error
}

// DirectoryReader loads the bank directory.
type DirectoryReader interface {
	Directory(ctx context.Context) ([]bank.Bank, error)
}
