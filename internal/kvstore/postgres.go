package kvstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

// DefaultTimeout bounds each Postgres round trip.
const DefaultTimeout = 2 * time.Second

const createPreferencesTable = `
CREATE TABLE IF NOT EXISTS ui_preferences (
    key        TEXT PRIMARY KEY,
    value      TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

const (
	selectPreference = `SELECT value FROM ui_preferences WHERE key = $1`
	upsertPreference = `
INSERT INTO ui_preferences (key, value, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`
	deletePreference = `DELETE FROM ui_preferences WHERE key = $1`
)

// Postgres stores values in the ui_preferences table.
//
// The port is synchronous, so every call runs under its own
// context bounded by the configured timeout.
type Postgres struct {
	db      DBTX
	timeout time.Duration
}

// NewPostgres returns a store backed by db.
// A timeout of zero uses DefaultTimeout.
func NewPostgres(db DBTX, timeout time.Duration) *Postgres {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Postgres{db: db, timeout: timeout}
}

// EnsureSchema creates the ui_preferences table if it does not exist.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := p.db.Exec(ctx, createPreferencesTable); err != nil {
		return fmt.Errorf("create ui_preferences: %w", err)
	}
	return nil
}

func (p *Postgres) Get(key string) (string, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	var value string
	err := p.db.QueryRow(ctx, selectPreference, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get preference %s: %w", key, err)
	}
	return value, true, nil
}

func (p *Postgres) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if _, err := p.db.Exec(ctx, upsertPreference, key, value); err != nil {
		return fmt.Errorf("set preference %s: %w", key, err)
	}
	return nil
}

func (p *Postgres) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()

	if _, err := p.db.Exec(ctx, deletePreference, key); err != nil {
		return fmt.Errorf("delete preference %s: %w", key, err)
	}
	return nil
}
