package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rustyeddy/cryptojournal/httpapi"
	"github.com/rustyeddy/cryptojournal/market"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the journal as a local JSON API",
	Long: `Serve the journal over HTTP on the configured address, with the live
ticker polled in the background. The month rollover check runs at start
and again every minute, so a server left running across midnight on the
last day of a month archives it.

Example:
  journal serve --addr 127.0.0.1:8080`,
	Args: cobra.NoArgs,
	RunE: withSession(runServe),
}

var serveAddr string

const rolloverCheckInterval = time.Minute

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (default from config)")
}

func runServe(cmd *cobra.Command, args []string, s *session) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var watcher *market.Watcher
	if s.cfg.Ticker.Enabled {
		interval, _ := s.cfg.Ticker.PollInterval()
		watcher = market.NewWatcher(newFeed(s.cfg), s.cfg.Ticker.Symbol, interval, s.log)
		go watcher.Run(ctx)
	}
	go watchRollover(ctx, s, rolloverCheckInterval)

	addr := serveAddr
	if addr == "" {
		addr = s.cfg.Server.Addr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           httpapi.New(s.tracker, watcher, s.log).SetupRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("serving journal", "addr", addr, "month", s.tracker.State().Working.Key.String())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// watchRollover re-runs the rollover check until ctx is done. Other
// commands only check at start, but a server can stay up across a month
// boundary and would otherwise keep adding trades to the closed month.
func watchRollover(ctx context.Context, s *session, every time.Duration) {
	tk := time.NewTicker(every)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			if _, err := s.tracker.CheckRollover(ctx); err != nil {
				s.log.Warn("rollover check failed", "error", err)
			}
		}
	}
}
