package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 1440, cfg.JWTTTLMinutes)
	assert.Equal(t, 20, cfg.ActivityWindow)
	assert.Equal(t, 10, cfg.LeaderboardSize)
	assert.Equal(t, time.Second, cfg.RateLimitClaim)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ACTIVITY_WINDOW", "50")
	t.Setenv("LEADERBOARD_SIZE", "3")
	t.Setenv("RATE_LIMIT_CLAIM", "250ms")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 50, cfg.ActivityWindow)
	assert.Equal(t, 3, cfg.LeaderboardSize)
	assert.Equal(t, 250*time.Millisecond, cfg.RateLimitClaim)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("ACTIVITY_WINDOW", "lots")

	_, err := Load()
	assert.Error(t, err)
}
