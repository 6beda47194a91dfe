package postgres

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq" // database/sql driver used by the migrator

	"github.com/bridgeyou/search/internal/db"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// MigrateToLatest applies all pending schema migrations embedded in the binary.
func (s *Store) MigrateToLatest() error {
	return Migrate(s.dsn)
}

// Migrate applies all pending migrations to the database at dsn.
func Migrate(dsn string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return &db.Error{Op: db.OpMigrate, Err: fmt.Errorf("open migrations: %w", err)}
	}

	conn, err := sql.Open("postgres", dsn)
	if err != nil {
		return &db.Error{Op: db.OpMigrate, Err: fmt.Errorf("open connection: %w", err)}
	}
	defer conn.Close()

	driver, err := migratepg.WithInstance(conn, &migratepg.Config{})
	if err != nil {
		return &db.Error{Op: db.OpMigrate, Err: fmt.Errorf("create driver: %w", err)}
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return &db.Error{Op: db.OpMigrate, Err: fmt.Errorf("create migrator: %w", err)}
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return &db.Error{Op: db.OpMigrate, Err: err}
	}
	return nil
}
