// Package config loads service settings. Values come from built-in defaults,
// then the JSON file in the XDG config dir, then NHDB_* environment variables;
// command-line flags are applied on top by the caller.
// Only non-secret settings belong in the file; the DSN comes from the
// environment, a flag or the OS keychain.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"nhdbstats/server/internal/xdg"

	"github.com/caarlos0/env/v11"
)

// Duration is a time.Duration written as "5s" in JSON and environment values.
type Duration time.Duration

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Config holds service settings.
type Config struct {
	DSN          string   `json:"-" env:"NHDB_DSN"`
	ListenAddr   string   `json:"listen_addr" env:"NHDB_LISTEN_ADDR"`
	// HealthAddr enables the gRPC health service when non-empty.
	HealthAddr   string   `json:"health_addr" env:"NHDB_HEALTH_ADDR"`
	Variant      string   `json:"variant" env:"NHDB_VARIANT"`
	RowLimit     int      `json:"row_limit" env:"NHDB_ROW_LIMIT"`
	Pooled       bool     `json:"pooled" env:"NHDB_POOLED"`
	QueryTimeout Duration `json:"query_timeout" env:"NHDB_QUERY_TIMEOUT"`
	LogLevel     string   `json:"log_level" env:"NHDB_LOG_LEVEL"`
	LogFormat    string   `json:"log_format" env:"NHDB_LOG_FORMAT"`
}

// Defaults returns the settings used when nothing else is configured.
func Defaults() Config {
	return Config{
		ListenAddr: "127.0.0.1:8080",
		Variant:    "nh",
		RowLimit:   100,
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads configuration from the default file location and the environment.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(p)
}

// LoadFrom reads configuration from path and the environment; a missing file
// is not an error.
func LoadFrom(path string) (Config, error) {
	c := Defaults()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return c, fmt.Errorf("read config: %w", err)
	default:
		if err := json.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := env.Parse(&c); err != nil {
		return c, fmt.Errorf("parse env: %w", err)
	}
	if strings.TrimSpace(c.DSN) == "" {
		c.DSN = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}
	return c, c.Validate()
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.ListenAddr) == "" {
		return errors.New("listen address is required")
	}
	if strings.TrimSpace(c.Variant) == "" {
		return errors.New("variant is required")
	}
	if c.RowLimit <= 0 {
		return fmt.Errorf("row limit must be positive, got %d", c.RowLimit)
	}
	if c.QueryTimeout < 0 {
		return fmt.Errorf("query timeout must not be negative, got %s", time.Duration(c.QueryTimeout))
	}
	return nil
}
