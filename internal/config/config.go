// Package config loads the gateway's on-disk YAML configuration, the
// one the teacher's own tools (e.g. sqldef's -file config flags) read
// before any flag parsing happens.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the subset of cmd/coredb's options that are more
// convenient to pin in a file than to repeat on every invocation.
// Explicit CLI flags always win over a value loaded here.
type Config struct {
	LogLevel     string `yaml:"log_level"`
	RemoteURL    string `yaml:"remote_url"`
	CloudAPIAddr string `yaml:"cloud_api_addr"`
	DisableTLS   bool   `yaml:"disable_tls"`
}

// Load reads and parses the YAML config file at path. A missing file is
// not an error: callers treat it the same as an empty Config, since
// --config is optional.
func Load(path string) (*Config, error) {
	var cfg Config
	buf, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Merge overlays non-zero fields of override onto a copy of c, used to
// let explicit CLI flags take precedence over file-sourced defaults.
func (c *Config) Merge(override *Config) *Config {
	merged := *c
	if override.LogLevel != "" {
		merged.LogLevel = override.LogLevel
	}
	if override.RemoteURL != "" {
		merged.RemoteURL = override.RemoteURL
	}
	if override.CloudAPIAddr != "" {
		merged.CloudAPIAddr = override.CloudAPIAddr
	}
	if override.DisableTLS {
		merged.DisableTLS = true
	}
	return &merged
}
