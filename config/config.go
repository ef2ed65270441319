// Package config loads the journal's runtime configuration from YAML or
// JSON files, optionally overridden by CRYPTOJOURNAL_* environment
// variables and .env files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rustyeddy/cryptojournal/internal/logging"
	"github.com/rustyeddy/cryptojournal/journal"
	"github.com/rustyeddy/cryptojournal/store"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config is the complete journal configuration.
type Config struct {
	Storage  StorageConfig  `json:"storage" yaml:"storage"`
	Ticker   TickerConfig   `json:"ticker" yaml:"ticker"`
	Log      LogConfig      `json:"log" yaml:"log"`
	Server   ServerConfig   `json:"server" yaml:"server"`
	Defaults DefaultsConfig `json:"defaults" yaml:"defaults"`
}

// StorageConfig selects the persistence backend.
type StorageConfig struct {
	Backend string      `json:"backend" yaml:"backend"` // "memory", "sqlite" or "redis"
	DBPath  string      `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	Redis   RedisConfig `json:"redis" yaml:"redis"`
}

type RedisConfig struct {
	Addr     string `json:"addr,omitempty" yaml:"addr,omitempty"`
	Password string `json:"password,omitempty" yaml:"password,omitempty"`
	DB       int    `json:"db" yaml:"db"`
	Prefix   string `json:"prefix,omitempty" yaml:"prefix,omitempty"`
}

// TickerConfig drives the live price display.
type TickerConfig struct {
	Enabled           bool    `json:"enabled" yaml:"enabled"`
	BaseURL           string  `json:"base_url" yaml:"base_url"`
	Symbol            string  `json:"symbol" yaml:"symbol"`
	Interval          string  `json:"interval" yaml:"interval"` // e.g. "30s"
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second"`
}

// PollInterval parses Interval.
func (t TickerConfig) PollInterval() (time.Duration, error) {
	if t.Interval == "" {
		return 0, nil
	}
	return time.ParseDuration(t.Interval)
}

type LogConfig struct {
	Level   string `json:"level" yaml:"level"` // debug, info, warn or error
	NoColor bool   `json:"no_color" yaml:"no_color"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

// DefaultsConfig seeds a journal that has never been saved.
type DefaultsConfig struct {
	StartBalance decimal.Decimal  `json:"start_balance" yaml:"start_balance"`
	Settings     journal.Settings `json:"settings" yaml:"settings"`
}

// LoadFromFile loads configuration from a YAML or JSON file.
// Missing fields keep their Default values.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

	// .json files are JSON; anything else is YAML, falling back to JSON.
	// Settings keys differ between the JSON and YAML forms.
	if strings.HasSuffix(path, ".json") {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration as YAML for .yaml/.yml paths and JSON
// otherwise.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Storage.Backend {
	case store.BackendMemory:
	case store.BackendSQLite:
		if c.Storage.DBPath == "" {
			return fmt.Errorf("storage.db_path required for sqlite backend")
		}
	case store.BackendRedis:
		if c.Storage.Redis.Addr == "" {
			return fmt.Errorf("storage.redis.addr required for redis backend")
		}
		if c.Storage.Redis.DB < 0 {
			return fmt.Errorf("storage.redis.db must not be negative")
		}
	default:
		return fmt.Errorf("storage.backend must be 'memory', 'sqlite' or 'redis'")
	}

	if _, err := c.Ticker.PollInterval(); err != nil {
		return fmt.Errorf("ticker.interval: %w", err)
	}
	if c.Ticker.Enabled {
		if d, _ := c.Ticker.PollInterval(); d <= 0 {
			return fmt.Errorf("ticker.interval must be positive when the ticker is enabled")
		}
		if c.Ticker.Symbol == "" {
			return fmt.Errorf("ticker.symbol is required when the ticker is enabled")
		}
	}
	if c.Ticker.RequestsPerSecond < 0 {
		return fmt.Errorf("ticker.requests_per_second must not be negative")
	}

	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}

	if !c.Defaults.StartBalance.IsPositive() {
		return fmt.Errorf("defaults.start_balance must be positive")
	}
	if err := c.Defaults.Settings.Validate(); err != nil {
		return fmt.Errorf("defaults.settings: %w", err)
	}
	return nil
}

// StoreOptions maps the storage section onto store.Open options.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend: c.Storage.Backend,
		Path:    c.Storage.DBPath,
		Redis: store.RedisOptions{
			Addr:     c.Storage.Redis.Addr,
			Password: c.Storage.Redis.Password,
			DB:       c.Storage.Redis.DB,
			Prefix:   c.Storage.Redis.Prefix,
		},
	}
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Backend: store.BackendSQLite,
			DBPath:  "./cryptojournal.db",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: store.DefaultRedisPrefix,
			},
		},
		Ticker: TickerConfig{
			Enabled:           true,
			BaseURL:           "https://api.bybit.com",
			Symbol:            "BTCUSDT",
			Interval:          "30s",
			RequestsPerSecond: 1,
		},
		Log: LogConfig{
			Level: "info",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:8080",
		},
		Defaults: DefaultsConfig{
			StartBalance: journal.DefaultStartBalance,
			Settings:     journal.DefaultSettings(),
		},
	}
}
