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

	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, "/api/v1", cfg.APIPrefix)
	assert.Equal(t, 10, cfg.Cart.MaxItems)
	assert.Equal(t, 5*time.Minute, cfg.Batches.CacheTTL)
	assert.False(t, cfg.Batches.CacheEnabled)
	assert.Equal(t, 2, cfg.Batches.WarmWorkers)
	assert.True(t, cfg.Exports.Enabled)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CART_MAX_ITEMS", "3")
	t.Setenv("ENABLE_BATCH_CACHE", "true")
	t.Setenv("BATCH_CACHE_TTL", "not-a-duration")
	t.Setenv("BATCH_CACHE_WARM_WORKERS", "0")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 3, cfg.Cart.MaxItems)
	assert.True(t, cfg.Batches.CacheEnabled)
	assert.Equal(t, 5*time.Minute, cfg.Batches.CacheTTL)
	assert.Zero(t, cfg.Batches.WarmWorkers)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}
