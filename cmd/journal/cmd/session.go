package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rustyeddy/cryptojournal/config"
	"github.com/rustyeddy/cryptojournal/internal/logging"
	"github.com/rustyeddy/cryptojournal/store"
	"github.com/rustyeddy/cryptojournal/tracker"
	"github.com/spf13/cobra"
)

// loadConfig resolves configuration in order: defaults, config file, env
// files and environment, then command line flags.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if cfgFile != "" {
		var err error
		cfg, err = config.LoadFromFile(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}

	var files []string
	if envFile != "" {
		files = append(files, envFile)
	}
	env, err := config.LoadEnv(files...)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(env); err != nil {
		return nil, err
	}

	if storageBackend != "" {
		cfg.Storage.Backend = storageBackend
	}
	if dbPath != "" {
		cfg.Storage.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	level, _ := logging.ParseLevel(cfg.Log.Level)
	return logging.New(w, level, cfg.Log.NoColor)
}

// session is one command's view of the journal.
type session struct {
	cfg     *config.Config
	log     *slog.Logger
	tracker *tracker.Tracker
	close   func() error
}

// openSession loads config, opens the store and the tracker. Opening the
// tracker runs the month rollover check.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log := newLogger(cmd.ErrOrStderr(), cfg)

	st, closeStore, err := store.Open(cmd.Context(), cfg.StoreOptions())
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	tr := tracker.Open(cmd.Context(), st,
		tracker.WithLogger(log),
		tracker.WithDefaults(cfg.Defaults.StartBalance, cfg.Defaults.Settings),
	)
	return &session{
		cfg:     cfg,
		log:     log,
		tracker: tr,
		close:   closeStore,
	}, nil
}

// Close reports a persistence failure that happened during the command,
// since the tracker only logs it.
func (s *session) Close() error {
	perr := s.tracker.PersistenceError()
	if perr != nil {
		perr = fmt.Errorf("changes were not saved: %w", perr)
	}
	return errors.Join(perr, s.close())
}

// withSession runs fn against an open session and closes it afterwards.
func withSession(fn func(cmd *cobra.Command, args []string, s *session) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		s, err := openSession(cmd)
		if err != nil {
			return err
		}
		defer func() {
			err = errors.Join(err, s.Close())
		}()
		return fn(cmd, args, s)
	}
}

// writeTo runs fn against path, or stdout when path is "" or "-".
func writeTo(cmd *cobra.Command, path string, fn func(io.Writer) error) (err error) {
	if path == "" || path == "-" {
		return fn(cmd.OutOrStdout())
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	if err := fn(f); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "✓ Wrote %s\n", path)
	return nil
}
