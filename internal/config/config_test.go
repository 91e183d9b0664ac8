package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SCORING_TIMEOUT", "")
	t.Setenv("SNAPSHOT_STORE", "")
	cfg := Load()
	assert.Equal(t, 60*time.Second, cfg.Scoring.Timeout)
	assert.Equal(t, 256, cfg.Realtime.SendBufferSize)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("SCORING_PROVIDER", "ollama")
	t.Setenv("SCORING_TIMEOUT", "45")
	t.Setenv("SESSION_IDLE_TTL", "2m")
	t.Setenv("SNAPSHOT_STORE", "Redis")
	t.Setenv("SEND_BUFFER_SIZE", "not-a-number")
	t.Setenv("OTEL_ENABLED", "true")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "ollama", cfg.Scoring.Provider)
	assert.Equal(t, 45*time.Second, cfg.Scoring.Timeout)
	assert.Equal(t, 2*time.Minute, cfg.Realtime.SessionIdleTTL)
	assert.Equal(t, "redis", cfg.Realtime.SnapshotStore)
	assert.Equal(t, 256, cfg.Realtime.SendBufferSize)
	assert.True(t, cfg.Telemetry.Enabled)
}
