package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ilerise/farmsim/internal/domain"
)

func sampleSnapshot() domain.FarmSnapshot {
	return domain.FarmSnapshot{
		Version:     domain.SnapshotVersion,
		SavedAt:     time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		Time:        domain.ClockState{Day: 42, Hour: 14, Speed: 2, Season: domain.SeasonRainy},
		PlayerLevel: 3,
		PlayerXP:    120,
	}
}

func TestFileStore_SaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	snap := sampleSnapshot()
	require.NoError(t, s.Save(context.Background(), snap))

	loaded, err := s.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, snap.Time.Day, loaded.Time.Day)
	assert.Equal(t, snap.PlayerLevel, loaded.PlayerLevel)
	assert.Equal(t, snap.PlayerXP, loaded.PlayerXP)
	assert.True(t, snap.SavedAt.Equal(loaded.SavedAt))
}

func TestFileStore_LoadMissingSnapshot(t *testing.T) {
	s := NewFileStore(t.TempDir())

	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestFileStore_RejectsWrongVersion(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	snap := sampleSnapshot()
	snap.Version = "1.0"
	assert.ErrorIs(t, s.Save(context.Background(), snap), domain.ErrSnapshotVersion)

	// Hand-written stale file is rejected on load
	stale, err := json.Marshal(snap)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, snapshotFileName), stale, 0o644))

	_, err = s.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrSnapshotVersion)
}

func TestFileStore_SaveOverwritesPrevious(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)

	first := sampleSnapshot()
	require.NoError(t, s.Save(context.Background(), first))

	second := sampleSnapshot()
	second.Time.Day = 99
	require.NoError(t, s.Save(context.Background(), second))

	loaded, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 99, loaded.Time.Day)
}

func TestRemoteStore_SaveSendsSnapshot(t *testing.T) {
	var received domain.FarmSnapshot
	var gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, remoteStatePath, r.URL.Path)
		gotKey = r.Header.Get("X-API-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	s := NewRemoteStore(srv.URL, "secret")
	require.NoError(t, s.Save(context.Background(), sampleSnapshot()))

	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, 42, received.Time.Day)
}

func TestRemoteStore_LoadReturnsSnapshot(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(sampleSnapshot()))
	}))
	defer srv.Close()

	s := NewRemoteStore(srv.URL, "secret")
	loaded, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 42, loaded.Time.Day)
	assert.Equal(t, 3, loaded.PlayerLevel)
}

func TestRemoteStore_LoadNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	s := NewRemoteStore(srv.URL, "secret")
	_, err := s.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrSnapshotNotFound)
}

func TestRemoteStore_SaveServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := NewRemoteStore(srv.URL, "secret")
	err := s.Save(context.Background(), sampleSnapshot())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}
