// Copyright (c) 2025 Jeremy Hahn
// Copyright (c) 2025 Automate The Things, LLC
//
// This file is part of go-quorum.

// Package config loads CLI and ceremony configuration from defaults, an
// optional YAML file, and QUORUM_* environment variables, in increasing
// order of precedence.
package config

import (
	"fmt"
	"strings"

	"github.com/jeremyhahn/go-quorum/pkg/aead"
	"github.com/spf13/viper"
)

// Config holds the tunable settings for the quorum CLI.
type Config struct {
	// Cipher selects the AEAD suite: aes-gcm or xchacha20-poly1305.
	Cipher string `mapstructure:"cipher"`

	// KeySize is the master key length in bytes (16, 24 or 32).
	KeySize int `mapstructure:"key_size"`

	// OutputFormat controls output formatting (text or json).
	OutputFormat string `mapstructure:"output_format"`

	// Debug enables debug logging.
	Debug bool `mapstructure:"debug"`

	// Voters is the demo participant list; the demo runs an N-of-N
	// ceremony over it.
	Voters []string `mapstructure:"voters"`
}

// Load reads configuration from the given file path. An empty path loads
// defaults plus environment overrides only.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("cipher", string(aead.AESGCM))
	v.SetDefault("key_size", 16)
	v.SetDefault("output_format", "text")
	v.SetDefault("debug", false)
	v.SetDefault("voters", []string{"Tim", "Tom", "Ben", "George"})

	v.SetEnvPrefix("QUORUM")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for usable values.
func (c *Config) Validate() error {
	switch aead.Algorithm(c.Cipher) {
	case aead.AESGCM, aead.XChaCha20Poly1305:
	default:
		return fmt.Errorf("config: unsupported cipher %q", c.Cipher)
	}

	switch c.KeySize {
	case 16, 24, 32:
	default:
		return fmt.Errorf("config: key_size must be 16, 24 or 32, got %d", c.KeySize)
	}
	if aead.Algorithm(c.Cipher) == aead.XChaCha20Poly1305 && c.KeySize != 32 {
		return fmt.Errorf("config: %s requires key_size 32, got %d", c.Cipher, c.KeySize)
	}

	switch c.OutputFormat {
	case "text", "json":
	default:
		return fmt.Errorf("config: output_format must be text or json, got %q", c.OutputFormat)
	}

	if len(c.Voters) == 0 {
		return fmt.Errorf("config: voters list cannot be empty")
	}
	seen := make(map[string]bool, len(c.Voters))
	for _, voter := range c.Voters {
		if voter == "" {
			return fmt.Errorf("config: voter names cannot be empty")
		}
		if seen[voter] {
			return fmt.Errorf("config: duplicate voter %q", voter)
		}
		seen[voter] = true
	}
	return nil
}

// Algorithm returns the configured cipher as an aead.Algorithm.
func (c *Config) Algorithm() aead.Algorithm {
	return aead.Algorithm(c.Cipher)
}
