package replay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists replay history in a single table, one row per room
// holding the whole entry sequence as JSONB.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a Store backed by the given connection pool.
// Call Migrate once at startup to ensure the schema exists.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Migrate creates the replay history table if it does not exist. The schema
// is a single table, so no migration tooling is involved.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS replay_history (
			room_id    TEXT PRIMARY KEY,
			entries    JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`

	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("replay: create schema: %w", err)
	}
	return nil
}

// Save upserts the room's persisted history. Last writer wins.
func (s *PostgresStore) Save(ctx context.Context, roomID string, entries []json.RawMessage) error {
	payload, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("replay: encode history for room %q: %w", roomID, err)
	}

	const query = `
		INSERT INTO replay_history (room_id, entries, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (room_id)
		DO UPDATE SET entries = EXCLUDED.entries, updated_at = now()`

	if _, err := s.pool.Exec(ctx, query, roomID, payload); err != nil {
		return fmt.Errorf("replay: save history for room %q: %w", roomID, err)
	}
	return nil
}

// Load returns the room's persisted history, or an empty history if no row
// exists for the room.
func (s *PostgresStore) Load(ctx context.Context, roomID string) ([]json.RawMessage, error) {
	const query = `SELECT entries FROM replay_history WHERE room_id = $1`

	var payload []byte
	err := s.pool.QueryRow(ctx, query, roomID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("replay: load history for room %q: %w", roomID, err)
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(payload, &entries); err != nil {
		return nil, fmt.Errorf("replay: decode history for room %q: %w", roomID, err)
	}
	return entries, nil
}

// Healthcheck returns a readiness probe that verifies database connectivity.
func Healthcheck(pool *pgxpool.Pool) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return fmt.Errorf("replay: postgres healthcheck: %w", err)
		}
		return nil
	}
}
