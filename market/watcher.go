package market

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/rustyeddy/cryptojournal/internal/logging"
)

const DefaultPollInterval = 30 * time.Second

// Status is what a display shows for the ticker: the last good snapshot and
// whether the latest poll succeeded.
type Status struct {
	Ticker    Ticker    `json:"ticker"`
	Online    bool      `json:"online"`
	LastError string    `json:"lastError,omitempty"`
	CheckedAt time.Time `json:"checkedAt"`
}

// Display renders the price or "Offline".
func (s Status) Display() string {
	if !s.Online || s.Ticker.LastPrice.IsZero() {
		return "Offline"
	}
	return "$" + s.Ticker.LastPrice.StringFixed(0)
}

// Watcher polls a Feed on a fixed interval and keeps the latest Status.
// Failures only flip it offline; the next tick retries.
type Watcher struct {
	feed     Feed
	symbol   string
	interval time.Duration
	log      *slog.Logger

	mu     sync.RWMutex
	status Status
}

func NewWatcher(feed Feed, symbol string, interval time.Duration, log *slog.Logger) *Watcher {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Watcher{
		feed:     feed,
		symbol:   symbol,
		interval: interval,
		log:      log,
	}
}

// Status returns a copy of the latest status.
func (w *Watcher) Status() Status {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.status
}

// Poll fetches once and records the result.
func (w *Watcher) Poll(ctx context.Context) Status {
	t, err := w.feed.Ticker(ctx, w.symbol)

	w.mu.Lock()
	defer w.mu.Unlock()

	w.status.CheckedAt = time.Now()
	if err != nil {
		if w.status.Online || w.status.LastError == "" {
			w.log.Warn("price feed offline", "symbol", w.symbol, "error", err)
		}
		w.status.Online = false
		w.status.LastError = err.Error()
		return w.status
	}

	if !w.status.Online {
		w.log.Info("price feed online", "symbol", w.symbol, "price", t.LastPrice.String())
	}
	w.status.Ticker = t
	w.status.Online = true
	w.status.LastError = ""
	return w.status
}

// Run polls immediately and then every interval until ctx is done.
func (w *Watcher) Run(ctx context.Context) {
	w.Poll(ctx)

	tk := time.NewTicker(w.interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			w.Poll(ctx)
		}
	}
}
