package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/bridgeyou/search/internal/db"
)

// BankRow is one bank directory entry.
type BankRow struct {
	ID   string `db:"id"`
	Name string `db:"name"`
}

// ListBanks returns the full bank directory ordered by name.
func (s *Store) ListBanks(ctx context.Context) ([]BankRow, error) {
	rows, err := s.pool.Query(ctx, "SELECT id, name FROM banks ORDER BY name")
	if err != nil {
		return nil, &db.Error{Op: db.OpListBanks, Err: err}
	}

	banks, err := pgx.CollectRows(rows, pgx.RowToStructByName[BankRow])
	if err != nil {
		return nil, &db.Error{Op: db.OpListBanks, Err: err}
	}
	return banks, nil
}
