package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/ilerise/farmsim/internal/domain"
)

const remoteStatePath = "/farm/state"

// RemoteStore syncs snapshots with a remote persistence server over HTTP
type RemoteStore struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewRemoteStore creates a remote store for the given base URL
func NewRemoteStore(baseURL, apiKey string) *RemoteStore {
	return &RemoteStore{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Name identifies the backend
func (s *RemoteStore) Name() string { return "remote" }

// Save uploads the snapshot to the remote server
func (s *RemoteStore) Save(ctx context.Context, snap domain.FarmSnapshot) error {
	if err := checkVersion(snap); err != nil {
		return err
	}

	body, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.baseURL+remoteStatePath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create sync request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sync request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sync rejected with status %d: %s", resp.StatusCode, msg)
	}

	return nil
}

// Load downloads the latest snapshot from the remote server
func (s *RemoteStore) Load(ctx context.Context) (domain.FarmSnapshot, error) {
	var snap domain.FarmSnapshot

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+remoteStatePath, nil)
	if err != nil {
		return snap, fmt.Errorf("failed to create load request: %w", err)
	}
	req.Header.Set("X-API-Key", s.apiKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return snap, fmt.Errorf("load request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return snap, fmt.Errorf("%w: no remote snapshot", domain.ErrSnapshotNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return snap, fmt.Errorf("load rejected with status %d: %s", resp.StatusCode, msg)
	}

	if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
		return snap, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	if err := checkVersion(snap); err != nil {
		return snap, err
	}

	return snap, nil
}
