// Package server assembles the authoritative invoice service: Postgres
// storage, the service layer, and the HTTP endpoint, with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/logging"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/config"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/httpapi"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/migrations"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/services"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	cfg    *config.Config
	log    logging.Logger
	db     *sql.DB
	server *http.Server
}

// NewApp opens the database, applies migrations, and wires the HTTP endpoint.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	log := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying migrations: %w", err)
	}

	storage, err := services.NewStorageService(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	api := httpapi.NewServer(
		services.NewUserService(db, cfg),
		services.NewInvoiceService(db),
		storage,
		cfg,
		log,
	)

	return &App{
		cfg: cfg,
		log: log,
		db:  db,
		server: &http.Server{
			Addr:    cfg.EndpointAddr,
			Handler: api.Router(),
		},
	}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (app *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		app.log.Info(ctx, "server listening", "addr", app.cfg.EndpointAddr)
		if err := app.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	app.log.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return app.db.Close()
}
