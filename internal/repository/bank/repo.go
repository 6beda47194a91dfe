// Package bank reads the bank directory from the relational store.
package bank

import (
	"context"
	"fmt"

	"github.com/bridgeyou/search/internal/db/postgres"
	"github.com/bridgeyou/search/internal/domain/bank"
)

// store is the consumer interface for directory reads (ISP).
type store interface {
	ListBanks(ctx context.Context) ([]postgres.BankRow, error)
}

// Repo implements usecase/bank.Lister.
type Repo struct {
	store store
}

// New creates a bank repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// List returns every bank ordered by name.
func (r *Repo) List(ctx context.Context) ([]bank.Bank, error) {
	rows, err := r.store.ListBanks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list banks: %w", err)
	}
	out := make([]bank.Bank, len(rows))
	for i, row := range rows {
		out[i] = bank.Bank{ID: row.ID, Name: row.Name}
	}
	return out, nil
}
