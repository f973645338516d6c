// Package sqlite contains the single-file session backend for deployments
// without a PostgreSQL instance.
package sqlite

import (
	"context"
	"database/sql"
	"log/slog"

	"quill/config"
	"quill/internal/domain/lifecycle"
	"quill/internal/errors"

	"go.uber.org/fx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS browser_sessions (
	storage_key   TEXT PRIMARY KEY,
	user_id       TEXT NOT NULL,
	email         TEXT NOT NULL,
	access_token  TEXT NOT NULL,
	refresh_token TEXT NOT NULL,
	expires_at    DATETIME NOT NULL,
	updated_at    DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_browser_sessions_user_id ON browser_sessions(user_id);`

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New opens the database file and creates the schema on start.
func New(params Params) (*sql.DB, error) {
	db, err := Open(params.Config.Session.SQLitePath)
	if err != nil {
		return nil, err
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := Init(ctx, db); err != nil {
				return err
			}
			params.Logger.Info("SQLite session store ready", slog.String("path", params.Config.Session.SQLitePath))

			return nil
		},
		OnStop: func(_ context.Context) error {
			return db.Close()
		},
	})

	return db, nil
}

// Open opens path. A single connection serializes writers, which SQLite needs
// anyway, and keeps ":memory:" databases shared.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open SQLite database")
	}
	db.SetMaxOpenConns(1)

	return db, nil
}

// Init pings db and creates the session table if it is missing.
func Init(ctx context.Context, db *sql.DB) error {
	if err := db.PingContext(ctx); err != nil {
		return errors.Wrap(err, "failed to ping SQLite")
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return errors.Wrap(err, "failed to create session schema")
	}

	return nil
}
