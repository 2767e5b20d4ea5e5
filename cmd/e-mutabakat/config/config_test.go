package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:5000", cfg.BaseURL)
	assert.Equal(t, "./downloads", cfg.DownloadDir)
	assert.Equal(t, int64(500*1024*1024), cfg.MaxUploadBytes)
	assert.Equal(t, 1000, cfg.LogCapacity)
	assert.Equal(t, SurfaceChrome, cfg.Surface)
	assert.Zero(t, cfg.RequestTimeout)
	assert.True(t, cfg.CheckUpdates)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("base_url: http://backend.local:8080\nrequest_timeout: 30s\nsurface: browser\nlog_capacity: 50\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))
	t.Setenv("MUTABAKAT_DOWNLOAD_DIR", "/tmp/exports")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "http://backend.local:8080", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, SurfaceBrowser, cfg.Surface)
	assert.Equal(t, 50, cfg.LogCapacity)
	assert.Equal(t, "/tmp/exports", cfg.DownloadDir)
}

func TestLoadConfigLeavesValidationToCaller(t *testing.T) {
	t.Setenv("MUTABAKAT_SURFACE", "popup")
	t.Setenv("MUTABAKAT_BASE_URL", "not a url")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.Validate(), "invalid base_url")

	cfg.BaseURL = "http://127.0.0.1:5000"
	assert.ErrorContains(t, cfg.Validate(), "invalid surface")

	cfg.Surface = SurfaceBrowser
	assert.NoError(t, cfg.Validate())
}

func TestValidateBaseURL(t *testing.T) {
	cfg := AppConfig{BaseURL: "not a url", Surface: SurfaceChrome, LogCapacity: 1}
	assert.ErrorContains(t, cfg.Validate(), "invalid base_url")
}
