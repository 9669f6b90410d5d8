package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ilerise/farmsim/internal/domain"
)

// DefaultSlot is the save slot used when none is configured
const DefaultSlot = "default"

// pgxConn is the subset of pgxpool.Pool the store uses, extracted so
// tests can substitute a fake connection.
type pgxConn interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore persists snapshots in a farm_snapshots table, keeping
// a history row per save for rollback.
type PostgresStore struct {
	pool pgxConn
	slot string
}

// NewPostgresStore creates a Postgres-backed store for the given slot
func NewPostgresStore(pool *pgxpool.Pool, slot string) *PostgresStore {
	if slot == "" {
		slot = DefaultSlot
	}
	return &PostgresStore{pool: pool, slot: slot}
}

// Name identifies the backend
func (s *PostgresStore) Name() string { return "postgres" }

// Save upserts the current snapshot and appends it to the history table
func (s *PostgresStore) Save(ctx context.Context, snap domain.FarmSnapshot) error {
	if err := checkVersion(snap); err != nil {
		return err
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO farm_snapshots (slot, version, saved_at, snapshot)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (slot) DO UPDATE
		SET version = EXCLUDED.version, saved_at = EXCLUDED.saved_at, snapshot = EXCLUDED.snapshot`,
		s.slot, snap.Version, snap.SavedAt, data)
	if err != nil {
		return fmt.Errorf("failed to upsert snapshot: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO farm_snapshot_history (slot, version, saved_at, snapshot)
		VALUES ($1, $2, $3, $4)`,
		s.slot, snap.Version, snap.SavedAt, data)
	if err != nil {
		return fmt.Errorf("failed to record snapshot history: %w", err)
	}

	return tx.Commit(ctx)
}

// Load reads the latest snapshot for the configured slot
func (s *PostgresStore) Load(ctx context.Context) (domain.FarmSnapshot, error) {
	var snap domain.FarmSnapshot

	var data []byte
	err := s.pool.QueryRow(ctx,
		`SELECT snapshot FROM farm_snapshots WHERE slot = $1`, s.slot).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return snap, fmt.Errorf("%w: slot %s", domain.ErrSnapshotNotFound, s.slot)
		}
		return snap, fmt.Errorf("failed to query snapshot: %w", err)
	}

	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	if err := checkVersion(snap); err != nil {
		return snap, err
	}

	return snap, nil
}
