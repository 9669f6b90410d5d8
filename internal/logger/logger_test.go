package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()

	_, ok := RequestIDFromContext(ctx)
	assert.False(t, ok, "empty context should have no request ID")

	id := GenerateRequestID()
	require.NotEmpty(t, id)

	ctx = WithRequestID(ctx, id)
	got, ok := RequestIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, id, got)
}

func TestFromContextWithoutID(t *testing.T) {
	log := FromContext(context.Background())
	assert.NotNil(t, log)
}

func TestConfigLevels(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"bogus", "INFO"},
	}

	for _, tt := range tests {
		cfg := Config{Level: tt.level}
		assert.Equal(t, tt.want, cfg.LogLevel().String(), "level %q", tt.level)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "farmsim", cfg.ServiceName)
	assert.False(t, cfg.IsJSON())
}

func TestProductionConfigIsJSON(t *testing.T) {
	cfg := ProductionConfig()
	assert.True(t, cfg.IsJSON())
	assert.Equal(t, "prod", cfg.Environment)
	assert.Len(t, cfg.BaseAttributes(), 3)
}
