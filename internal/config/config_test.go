package config

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{}))
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, ".empire", filepath.Base(cfg.StateDir))
	assert.Equal(t, filepath.Join(cfg.StateDir, "state.yaml"), cfg.StatePath())
}

func TestLoadOverrides(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"EMPIRE_API_URL":      "http://localhost:8080/api",
		"EMPIRE_STATE_DIR":    dir,
		"EMPIRE_LOG_LEVEL":    "debug",
		"EMPIRE_HTTP_TIMEOUT": "5s",
	}))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api", cfg.APIURL)
	assert.Equal(t, dir, cfg.StateDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
}

func TestLoadRejectsBadTimeout(t *testing.T) {
	_, err := LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"EMPIRE_STATE_DIR":    t.TempDir(),
		"EMPIRE_HTTP_TIMEOUT": "soon",
	}))
	require.Error(t, err)

	_, err = LoadFrom(context.Background(), envconfig.MapLookuper(map[string]string{
		"EMPIRE_STATE_DIR":    t.TempDir(),
		"EMPIRE_HTTP_TIMEOUT": "-1s",
	}))
	require.Error(t, err)
}
