// Package bank resolves free-text bank names to directory identifiers.
package bank

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	dombank "github.com/bridgeyou/search/internal/domain/bank"
	"github.com/bridgeyou/search/internal/domain/fold"
	"github.com/bridgeyou/search/internal/metrics"
)

// Resolver maps bank names extracted from a query to directory identifiers.
type Resolver struct {
	lister Lister
	cache  DirectoryCache
	logger *zap.Logger
}

// New creates a resolver reading the directory through cache.
func New(lister Lister, cache DirectoryCache, logger *zap.Logger) *Resolver {
	return &Resolver{lister: lister, cache: cache, logger: logger}
}

// Directory returns the cached bank directory.
func (r *Resolver) Directory(ctx context.Context) ([]dombank.Bank, error) {
	dir, err := r.cache.Directory(ctx, r.lister.List)
	if err != nil {
		return nil, fmt.Errorf("load bank directory: %w", err)
	}
	return dir, nil
}

// Resolve returns the identifiers of the banks named in names, in input order
// and without duplicates. Unmatched names are dropped with a warning; a
// directory that cannot be loaded resolves nothing.
func (r *Resolver) Resolve(ctx context.Context, names []string) []string {
	if len(names) == 0 {
		return nil
	}

	dir, err := r.Directory(ctx)
	if err != nil {
		r.logger.Warn("Bank directory unavailable, skipping bank filter",
			zap.Strings("names", names),
			zap.Error(err),
		)
		return nil
	}

	ids := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		b, ok := Match(dir, name)
		if !ok {
			metrics.BankResolutionsTotal.WithLabelValues("miss").Inc()
			r.logger.Warn("Bank name not found in directory", zap.String("name", name))
			continue
		}
		metrics.BankResolutionsTotal.WithLabelValues("hit").Inc()
		if _, dup := seen[b.ID]; dup {
			continue
		}
		seen[b.ID] = struct{}{}
		ids = append(ids, b.ID)
	}
	return ids
}

// Match finds the directory entry for name. Aliases are mapped to canonical
// names first; then an exact case-insensitive match wins over a substring
// match in either direction.
func Match(dir []dombank.Bank, name string) (dombank.Bank, bool) {
	candidates := []string{dombank.Canonical(name)}
	if !fold.Equal(candidates[0], name) {
		candidates = append(candidates, name)
	}

	for _, c := range candidates {
		for _, b := range dir {
			if fold.Equal(b.Name, c) {
				return b, true
			}
		}
	}
	for _, c := range candidates {
		for _, b := range dir {
			if fold.Contains(c, b.Name) || fold.Contains(b.Name, c) {
				return b, true
			}
		}
	}
	return dombank.Bank{}, false
}
