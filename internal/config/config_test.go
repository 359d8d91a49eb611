package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("GO_ENV", "")
	t.Setenv("REVIEW_RATE_LIMIT", "")
	t.Setenv("REVIEW_RATE_BURST", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.True(t, cfg.IsDev())
	assert.Equal(t, 1.0, cfg.ReviewRateLimit)
	assert.Equal(t, 5, cfg.ReviewRateBurst)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "http")

	_, err := Load()
	assert.ErrorContains(t, err, "PORT must be number")
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GO_ENV", "staging")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidRate(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GO_ENV", "prod")
	t.Setenv("REVIEW_RATE_LIMIT", "fast")

	_, err := Load()
	assert.ErrorContains(t, err, "REVIEW_RATE_LIMIT")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(p, []byte("GLOW_DOTENV_TEST=yes\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("GLOW_DOTENV_TEST") })

	require.NoError(t, LoadDotEnv(p, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "yes", os.Getenv("GLOW_DOTENV_TEST"))
}
