package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ilerise/farmsim/internal/domain"
)

const snapshotFileName = "farm.json"

// FileStore persists snapshots as JSON files on local disk
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir
func NewFileStore(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Name identifies the backend
func (s *FileStore) Name() string { return "file" }

// Save writes the snapshot atomically via a temp file rename
func (s *FileStore) Save(_ context.Context, snap domain.FarmSnapshot) error {
	if err := checkVersion(snap); err != nil {
		return err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create save directory: %w", err)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, snapshotFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp snapshot: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close snapshot: %w", err)
	}

	if err := os.Rename(tmpName, filepath.Join(s.dir, snapshotFileName)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}

	return nil
}

// Load reads the most recently saved snapshot
func (s *FileStore) Load(_ context.Context) (domain.FarmSnapshot, error) {
	var snap domain.FarmSnapshot

	data, err := os.ReadFile(filepath.Join(s.dir, snapshotFileName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return snap, fmt.Errorf("%w: no local snapshot", domain.ErrSnapshotNotFound)
		}
		return snap, fmt.Errorf("failed to read snapshot: %w", err)
	}

	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	if err := checkVersion(snap); err != nil {
		return snap, err
	}

	return snap, nil
}
