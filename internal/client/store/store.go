// Package store owns the on-device SQLite mirror: opening the database,
// running embedded migrations, and fanning out change notifications to
// stream subscribers. The mirror is always overwritable; nothing in it is
// a staging area for unsynced writes.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/migrations"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/repositories/customers"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/repositories/interactions"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/client/repositories/invoices"
)

// Store bundles the local database handle with the per-entity repositories
// and the change notifier.
type Store struct {
	DB           *sql.DB
	Customers    customers.Repository
	Invoices     invoices.Repository
	Interactions interactions.Repository
	Notifier     *Notifier
}

// RunMigrations applies the embedded goose migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the local cache at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		DB:           db,
		Customers:    customers.NewSQLiteRepository(db),
		Invoices:     invoices.NewSQLiteRepository(db),
		Interactions: interactions.NewSQLiteRepository(db),
		Notifier:     NewNotifier(),
	}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.DB.Close()
}
