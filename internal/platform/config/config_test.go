// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/civicdesk/internal/platform/config"
)

/*
TestLoadFrom_Defaults verifies that an empty environment yields the documented defaults.
*/
func TestLoadFrom_Defaults(t *testing.T) {
	cfg, err := config.LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000/v1", cfg.BackendURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 20, cfg.RateLimitBurst)
	assert.Len(t, cfg.PlaceholderImages, 3)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

/*
TestLoadFrom_FileLayer verifies that the TOML file fills gaps but never overrides the environment.
*/
func TestLoadFrom_FileLayer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "civic.toml")
	document := `
backend_url = "https://api.example.org/v1"
environment = "production"
request_timeout = "3s"
placeholder_images = ["/a.png", "/b.png"]
`
	require.NoError(t, os.WriteFile(path, []byte(document), 0o600))

	cfg, err := config.LoadFrom(map[string]string{
		"CIVIC_CONFIG_FILE": path,
		"CIVIC_ENVIRONMENT": "staging",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.org/v1", cfg.BackendURL)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"/a.png", "/b.png"}, cfg.PlaceholderImages)
}

/*
TestLoadFrom_MissingFile ensures a broken file reference is reported instead of ignored.
*/
func TestLoadFrom_MissingFile(t *testing.T) {
	_, err := config.LoadFrom(map[string]string{
		"CIVIC_CONFIG_FILE": filepath.Join(t.TempDir(), "absent.toml"),
	})
	assert.Error(t, err)
}
