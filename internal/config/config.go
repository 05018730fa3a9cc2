// Package config assembles the server configuration once at startup.
// Nothing reads the environment after Load returns; the resulting
// Config is injected into every component.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds everything the server needs to run. Missing Supabase
// credentials do not fail Load: operations report them as config
// errors per call, matching the envelope contract.
type Config struct {
	SupabaseURL        string
	SupabaseServiceKey string
	Addr               string
	RequestTimeout     time.Duration
	PingInterval       time.Duration
	LogLevel           string
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:           ":8000",
		RequestTimeout: 20 * time.Second,
		PingInterval:   30 * time.Second,
		LogLevel:       "info",
	}
}

// fileConfig is the YAML shape; durations are strings for
// time.ParseDuration.
type fileConfig struct {
	SupabaseURL        string `yaml:"supabase_url"`
	SupabaseServiceKey string `yaml:"supabase_service_key"`
	Addr               string `yaml:"addr"`
	RequestTimeout     string `yaml:"request_timeout"`
	PingInterval       string `yaml:"ping_interval"`
	LogLevel           string `yaml:"log_level"`
}

// Load builds the config: defaults, then the optional YAML file, then
// environment overrides. path may be empty; PAZAR_CONFIG or
// ~/.pazarglobal/config.yml is tried instead, and a missing implicit
// file is not an error (a missing explicit one is).
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = os.Getenv("PAZAR_CONFIG")
		explicit = path != ""
	}
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, ".pazarglobal", "config.yml")
		}
	}

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			if explicit || !os.IsNotExist(err) {
				return Config{}, err
			}
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	if fc.SupabaseURL != "" {
		c.SupabaseURL = fc.SupabaseURL
	}
	if fc.SupabaseServiceKey != "" {
		c.SupabaseServiceKey = fc.SupabaseServiceKey
	}
	if fc.Addr != "" {
		c.Addr = fc.Addr
	}
	if fc.LogLevel != "" {
		c.LogLevel = fc.LogLevel
	}
	if fc.RequestTimeout != "" {
		d, err := time.ParseDuration(fc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("parse request_timeout: %w", err)
		}
		c.RequestTimeout = d
	}
	if fc.PingInterval != "" {
		d, err := time.ParseDuration(fc.PingInterval)
		if err != nil {
			return fmt.Errorf("parse ping_interval: %w", err)
		}
		c.PingInterval = d
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("SUPABASE_URL"); v != "" {
		c.SupabaseURL = v
	}
	if v := os.Getenv("SUPABASE_SERVICE_KEY"); v != "" {
		c.SupabaseServiceKey = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}

	// Railway-style HOST/PORT pair overrides the address.
	host := os.Getenv("HOST")
	port := os.Getenv("PORT")
	if host != "" || port != "" {
		if port == "" {
			port = "8000"
		}
		c.Addr = host + ":" + port
	}
}
