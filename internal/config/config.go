// Package config loads the CLI configuration from a YAML file with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration for the cipherfeed CLI.
type Config struct {
	KeyStore struct {
		// Dir is where encrypted key envelopes live.
		Dir string `yaml:"dir"`
	} `yaml:"keystore"`

	Oracle struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		// Timeout is a Go duration string, e.g. "10s".
		Timeout string `yaml:"timeout"`
		Retries int    `yaml:"retries"`
	} `yaml:"oracle"`

	Policy struct {
		// FailClosed flips the fail-open stance of the audit fallback and
		// the kill-switch check.
		FailClosed bool `yaml:"fail_closed"`
		// RequireRiskScan gates composing behind a completed audit.
		RequireRiskScan bool `yaml:"require_risk_scan"`
		// MaxPostRisk blocks posting at or above this level
		// (LOW, MEDIUM, HIGH, CRITICAL; empty disables the threshold).
		MaxPostRisk string `yaml:"max_post_risk"`
	} `yaml:"policy"`

	KillSwitchURL string `yaml:"kill_switch_url"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	cfg.KeyStore.Dir = filepath.Join(home, ".cipherfeed", "keys")
	cfg.Oracle.Timeout = "10s"
	cfg.Oracle.Retries = 2
	cfg.Policy.RequireRiskScan = true
	return cfg
}

// OracleTimeout parses the configured oracle timeout, falling back to 10s
// for an empty or malformed value.
func (c *Config) OracleTimeout() time.Duration {
	d, err := time.ParseDuration(c.Oracle.Timeout)
	if err != nil || d <= 0 {
		return 10 * time.Second
	}
	return d
}

// Load reads the configuration from path, applying defaults for unset
// values and environment overrides on top. A missing file is not an error;
// a malformed one is. A .env file in the working directory is honored
// before the environment is read.
func Load(path string) (*Config, error) {
	// Best effort; absence of a .env file is the normal case.
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("CIPHERFEED_KEYSTORE_DIR"); v != "" {
		cfg.KeyStore.Dir = v
	}
	if v := os.Getenv("CIPHERFEED_ORACLE_URL"); v != "" {
		cfg.Oracle.BaseURL = v
	}
	if v := os.Getenv("CIPHERFEED_ORACLE_API_KEY"); v != "" {
		cfg.Oracle.APIKey = v
	}
	if v := os.Getenv("CIPHERFEED_KILL_SWITCH_URL"); v != "" {
		cfg.KillSwitchURL = v
	}
}
