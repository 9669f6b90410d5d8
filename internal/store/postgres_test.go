package store

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilerise/farmsim/internal/domain"
)

type fakeRow struct {
	data []byte
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*[]byte) = r.data
	return nil
}

// fakeTx overrides only the pgx.Tx methods the store touches.
type fakeTx struct {
	pgx.Tx
	execs      []string
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	t.execs = append(t.execs, sql)
	return pgconn.CommandTag{}, nil
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeConn struct {
	tx  *fakeTx
	row fakeRow
}

func (c *fakeConn) Begin(context.Context) (pgx.Tx, error) { return c.tx, nil }

func (c *fakeConn) QueryRow(context.Context, string, ...any) pgx.Row { return c.row }

func TestPostgresStore_SaveUpsertsAndRecordsHistory(t *testing.T) {
	tx := &fakeTx{}
	st := &PostgresStore{pool: &fakeConn{tx: tx}, slot: DefaultSlot}

	err := st.Save(context.Background(), sampleSnapshot())
	require.NoError(t, err)

	require.Len(t, tx.execs, 2)
	assert.Contains(t, tx.execs[0], "INSERT INTO farm_snapshots")
	assert.Contains(t, tx.execs[0], "ON CONFLICT (slot) DO UPDATE")
	assert.Contains(t, tx.execs[1], "INSERT INTO farm_snapshot_history")
	assert.True(t, tx.committed)
}

func TestPostgresStore_SaveRejectsWrongVersion(t *testing.T) {
	tx := &fakeTx{}
	st := &PostgresStore{pool: &fakeConn{tx: tx}, slot: DefaultSlot}

	snap := sampleSnapshot()
	snap.Version = "1.0"

	err := st.Save(context.Background(), snap)
	assert.ErrorIs(t, err, domain.ErrSnapshotVersion)
	assert.Empty(t, tx.execs)
}

func TestPostgresStore_Load(t *testing.T) {
	want := sampleSnapshot()
	data, err := json.Marshal(want)
	require.NoError(t, err)

	st := &PostgresStore{pool: &fakeConn{row: fakeRow{data: data}}, slot: DefaultSlot}

	got, err := st.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want.Time.Day, got.Time.Day)
	assert.Equal(t, want.PlayerLevel, got.PlayerLevel)
}

func TestPostgresStore_LoadMissingSlot(t *testing.T) {
	st := &PostgresStore{pool: &fakeConn{row: fakeRow{err: pgx.ErrNoRows}}, slot: DefaultSlot}

	_, err := st.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}
