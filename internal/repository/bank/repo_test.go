package bank

import (
	"context"
	"errors"
	"testing"

	"github.com/bridgeyou/search/internal/db/postgres"
)

type mockStore struct {
	rows []postgres.BankRow
	err  error
}

func (m *mockStore) ListBanks(_ context.Context) ([]postgres.BankRow, error) {
	return m.rows, m.err
}

func TestList_MapsRows(t *testing.T) {
	repo := New(&mockStore{rows: []postgres.BankRow{
		{ID: "b-bnp", Name: "BNP Paribas"},
		{ID: "b-gs", Name: "Goldman Sachs"},
	}})

	banks, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(banks) != 2 || banks[1].ID != "b-gs" || banks[1].Name != "Goldman Sachs" {
		t.Errorf("unexpected banks: %+v", banks)
	}
}

func TestList_Error(t *testing.T) {
	cause := errors.New("timeout")
	repo := New(&mockStore{err: cause})

	if _, err := repo.List(context.Background()); !errors.Is(err, cause) {
		t.Errorf("expected wrapped cause, got %v", err)
	}
}
