package bank

import (
	"context"

	dombank "github.com/bridgeyou/search/internal/domain/bank"
)

// Lister reads the bank directory from the store.
type Lister interface {
	List(ctx context.Context) ([]dombank.Bank, error)
}

// DirectoryCache returns the cached directory, calling load only when it
// has nothing cached (get-or-populate-once).
type DirectoryCache interface {
	Directory(ctx context.Context, load dombank.DirectoryLoader) ([]dombank.Bank, error)
}
