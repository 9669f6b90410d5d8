package schema

// SchemaSQL contains the database schema initialization script
const SchemaSQL = `
-- Farm snapshots: one row per save slot, latest snapshot wins.
CREATE TABLE IF NOT EXISTS farm_snapshots (
    slot VARCHAR(50) PRIMARY KEY,
    version VARCHAR(10) NOT NULL,
    saved_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    snapshot JSONB NOT NULL
);

-- Snapshot history for debugging and rollback.
CREATE TABLE IF NOT EXISTS farm_snapshot_history (
    id SERIAL PRIMARY KEY,
    slot VARCHAR(50) NOT NULL,
    version VARCHAR(10) NOT NULL,
    saved_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    snapshot JSONB NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshot_history_slot ON farm_snapshot_history(slot, saved_at DESC);
`
