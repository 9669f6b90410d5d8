package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 1000, cfg.TickIntervalMs)
	assert.Equal(t, 120, cfg.SyncIntervalSec)
	assert.Equal(t, "parakou", cfg.Location)
	assert.Empty(t, cfg.RemoteURL)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-number")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORT")
}

func TestLoadRejectsNonPositiveTick(t *testing.T) {
	t.Setenv("TICK_INTERVAL_MS", "0")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRemoteRequiresAPIKey(t *testing.T) {
	t.Setenv("REMOTE_SYNC_URL", "https://farm.example.com")
	t.Setenv("REMOTE_SYNC_API_KEY", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REMOTE_SYNC_API_KEY")
}
