// Package store persists and restores farm snapshots. Implementations
// share the versioned domain.FarmSnapshot format so the farm can sync
// between local disk, a remote server, and Postgres interchangeably.
package store

import (
	"context"
	"fmt"

	"github.com/ilerise/farmsim/internal/domain"
)

// Store defines the interface for snapshot persistence
type Store interface {
	// Name identifies the backend in logs and sync-failure events
	Name() string
	Save(ctx context.Context, snap domain.FarmSnapshot) error
	Load(ctx context.Context) (domain.FarmSnapshot, error)
}

// checkVersion rejects snapshots written by an incompatible schema
func checkVersion(snap domain.FarmSnapshot) error {
	if snap.Version != domain.SnapshotVersion {
		return fmt.Errorf("%w: got %q, want %q", domain.ErrSnapshotVersion, snap.Version, domain.SnapshotVersion)
	}
	return nil
}
