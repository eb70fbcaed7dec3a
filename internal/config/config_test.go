package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadParsesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "coredb.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: debug\nremote_url: glaredb://user@org.host/db\ndisable_tls: true\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "glaredb://user@org.host/db", cfg.RemoteURL)
	assert.True(t, cfg.DisableTLS)
}

func TestLoadMissingFileReturnsEmptyConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log_level: [unterminated"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestConfigMergeCLIOverridesWin(t *testing.T) {
	base := &Config{LogLevel: "info", RemoteURL: "glaredb://file-default/db"}
	override := &Config{RemoteURL: "glaredb://cli-override/db", DisableTLS: true}

	merged := base.Merge(override)
	assert.Equal(t, "info", merged.LogLevel)
	assert.Equal(t, "glaredb://cli-override/db", merged.RemoteURL)
	assert.True(t, merged.DisableTLS)
}
