package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CACHE_TTL", "")
	t.Setenv("RATE_LIMIT_RPS", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", " http://a.test , ,http://b.test")

	cfg := LoadConfig()
	require.NotNil(t, cfg)
	assert.Same(t, cfg, Cfg)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
}

func TestGetEnvAsDuration(t *testing.T) {
	t.Setenv("SOME_TIMEOUT", "90s")
	assert.Equal(t, 90*time.Second, getEnvAsDuration("SOME_TIMEOUT", time.Minute))

	t.Setenv("SOME_TIMEOUT", "soon")
	assert.Equal(t, time.Minute, getEnvAsDuration("SOME_TIMEOUT", time.Minute))
}

func TestGetEnvAsInt(t *testing.T) {
	t.Setenv("SOME_BURST", "12")
	assert.Equal(t, 12, getEnvAsInt("SOME_BURST", 3))

	t.Setenv("SOME_BURST", "twelve")
	assert.Equal(t, 3, getEnvAsInt("SOME_BURST", 3))
}
