package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const EnvPrefix = "CRYPTOJOURNAL_"

// Env is a set of environment values.
type Env map[string]string

// LoadEnv reads .env files (".env" when none are named, and only then is a
// missing file ignored) and overlays the process environment, which wins.
// The process environment itself is not modified.
func LoadEnv(files ...string) (Env, error) {
	env := Env{}

	optional := len(files) == 0
	if optional {
		files = []string{".env"}
	}
	for _, f := range files {
		vals, err := godotenv.Read(f)
		if err != nil {
			if optional && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("read env file %s: %w", f, err)
		}
		for k, v := range vals {
			env[k] = v
		}
	}

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok && strings.HasPrefix(k, EnvPrefix) {
			env[k] = v
		}
	}
	return env, nil
}

func (e Env) lookup(name string) (string, bool) {
	v, ok := e[EnvPrefix+name]
	return v, ok && v != ""
}

// ApplyEnv overrides c from CRYPTOJOURNAL_* values in env.
func (c *Config) ApplyEnv(env Env) error {
	strs := []struct {
		name string
		dst  *string
	}{
		{"STORAGE", &c.Storage.Backend},
		{"DB_PATH", &c.Storage.DBPath},
		{"REDIS_ADDR", &c.Storage.Redis.Addr},
		{"REDIS_PASSWORD", &c.Storage.Redis.Password},
		{"REDIS_PREFIX", &c.Storage.Redis.Prefix},
		{"TICKER_URL", &c.Ticker.BaseURL},
		{"SYMBOL", &c.Ticker.Symbol},
		{"TICKER_INTERVAL", &c.Ticker.Interval},
		{"LOG_LEVEL", &c.Log.Level},
		{"ADDR", &c.Server.Addr},
	}
	for _, s := range strs {
		if v, ok := env.lookup(s.name); ok {
			*s.dst = v
		}
	}

	if v, ok := env.lookup("REDIS_DB"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sREDIS_DB: %w", EnvPrefix, err)
		}
		c.Storage.Redis.DB = n
	}
	if v, ok := env.lookup("TICKER_ENABLED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sTICKER_ENABLED: %w", EnvPrefix, err)
		}
		c.Ticker.Enabled = b
	}
	if v, ok := env.lookup("NO_COLOR"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sNO_COLOR: %w", EnvPrefix, err)
		}
		c.Log.NoColor = b
	}
	if v, ok := env.lookup("START_BALANCE"); ok {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return fmt.Errorf("%sSTART_BALANCE: %w", EnvPrefix, err)
		}
		c.Defaults.StartBalance = d
	}
	return nil
}
