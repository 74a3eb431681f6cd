package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_PATH", "NODE_ENV", "JWT_EXPIRES_DAYS", "DAILY_ROWS", "LOG_LEVEL", "SESSION_IDLE_MINUTES"} {
		t.Setenv(k, "")
	}
	c := Load()

	assert.Equal(t, "5175", c.Port)
	assert.Equal(t, "./data/flow.db", c.DBPath)
	assert.False(t, c.Production)
	assert.Equal(t, 14, c.JWTExpiresDays)
	assert.Equal(t, 7, c.DailyRows)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 60, c.SessionIdleMinutes)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("DAILY_COLORS", "8")
	t.Setenv("JWT_EXPIRES_DAYS", "soon")
	c := Load()

	assert.Equal(t, "9000", c.Port)
	assert.True(t, c.Production)
	assert.Equal(t, 8, c.DailyColors)
	assert.Equal(t, 14, c.JWTExpiresDays, "malformed value falls back")
}
