// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-quorum.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "aes-gcm", cfg.Cipher)
	assert.Equal(t, 16, cfg.KeySize)
	assert.Equal(t, "text", cfg.OutputFormat)
	assert.False(t, cfg.Debug)
	assert.Equal(t, []string{"Tim", "Tom", "Ben", "George"}, cfg.Voters)
}

func TestLoad_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quorum.yaml")
	content := `
cipher: xchacha20-poly1305
key_size: 32
output_format: json
debug: true
voters:
  - Alice
  - Bob
  - Carol
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "xchacha20-poly1305", cfg.Cipher)
	assert.Equal(t, 32, cfg.KeySize)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.True(t, cfg.Debug)
	assert.Equal(t, []string{"Alice", "Bob", "Carol"}, cfg.Voters)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("QUORUM_OUTPUT_FORMAT", "json")
	t.Setenv("QUORUM_DEBUG", "true")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.OutputFormat)
	assert.True(t, cfg.Debug)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			Cipher:       "aes-gcm",
			KeySize:      16,
			OutputFormat: "text",
			Voters:       []string{"Tim", "Tom"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"bad cipher", func(c *Config) { c.Cipher = "rot13" }, "unsupported cipher"},
		{"bad key size", func(c *Config) { c.KeySize = 15 }, "key_size"},
		{"xchacha needs 32", func(c *Config) { c.Cipher = "xchacha20-poly1305" }, "requires key_size 32"},
		{"bad output", func(c *Config) { c.OutputFormat = "xml" }, "output_format"},
		{"no voters", func(c *Config) { c.Voters = nil }, "voters list"},
		{"empty voter", func(c *Config) { c.Voters = []string{"Tim", ""} }, "cannot be empty"},
		{"duplicate voter", func(c *Config) { c.Voters = []string{"Tim", "Tim"} }, "duplicate voter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
