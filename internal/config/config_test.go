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

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 15*time.Minute, cfg.VoucherTTL)
	assert.Equal(t, 30*time.Second, cfg.SnapshotInterval)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr())
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("PORT", "8080")
	t.Setenv("SNAPSHOT_INTERVAL", "2m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 2*time.Minute, cfg.SnapshotInterval)
}

func TestLoadProductionRequiresJWTSecret(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorIs(t, err, ErrMissingJWTSecret)

	t.Setenv("ENV", "development")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.JWTSecret)
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("VOUCHER_TTL", "soon")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}

func TestGetIntEnv(t *testing.T) {
	t.Setenv("WELFARE_TEST_INT", "42")
	assert.Equal(t, 42, GetIntEnv("WELFARE_TEST_INT", 1))

	t.Setenv("WELFARE_TEST_INT", "nope")
	assert.Equal(t, 1, GetIntEnv("WELFARE_TEST_INT", 1))
	assert.Equal(t, "fallback", GetEnv("WELFARE_TEST_MISSING", "fallback"))
}
