package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pulsectl.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"api_base_url: https://pulse.example.com\nsession_token: abc123\n",
	), 0o600))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://pulse.example.com", cfg.APIBaseURL)
	assert.Equal(t, "abc123", cfg.SessionToken)
}

func TestLoadConfigMissingBaseURL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pulsectl.yaml")
	require.NoError(t, os.WriteFile(path, []byte("session_token: abc123\n"), 0o600))

	_, err := loadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := loadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
