package market

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedFeed answers from a list of results, repeating the last one.
type scriptedFeed struct {
	mu      sync.Mutex
	results []error
	calls   int
}

func (f *scriptedFeed) Ticker(_ context.Context, symbol string) (Ticker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.calls
	if i >= len(f.results) {
		i = len(f.results) - 1
	}
	f.calls++

	if err := f.results[i]; err != nil {
		return Ticker{}, &FeedUnavailableError{Symbol: symbol, Err: err}
	}
	return Ticker{Symbol: symbol, LastPrice: decimal.RequireFromString("97123.6"), ChangePercent: decimal.RequireFromString("-6.5")}, nil
}

func (f *scriptedFeed) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestWatcherPoll(t *testing.T) {
	t.Parallel()

	down := errors.New("connection refused")
	feed := &scriptedFeed{results: []error{down, down, nil, down}}

	var logs bytes.Buffer
	w := NewWatcher(feed, "BTCUSDT", time.Minute, slog.New(slog.NewTextHandler(&logs, nil)))

	assert.Equal(t, "Offline", w.Status().Display())

	st := w.Poll(context.Background())
	assert.False(t, st.Online)
	assert.Contains(t, st.LastError, "connection refused")
	assert.Equal(t, "Offline", st.Display())

	w.Poll(context.Background())
	assert.Equal(t, 1, strings.Count(logs.String(), "price feed offline"), "repeated failures log once")

	st = w.Poll(context.Background())
	assert.True(t, st.Online)
	assert.Empty(t, st.LastError)
	assert.Equal(t, "$97124", st.Display())
	assert.InDelta(t, 6.5, st.Ticker.Volatility(), 1e-9)
	assert.Contains(t, logs.String(), "price feed online")

	st = w.Poll(context.Background())
	assert.False(t, st.Online)
	assert.Equal(t, "Offline", st.Display())
	assert.True(t, decimal.RequireFromString("97123.6").Equal(st.Ticker.LastPrice), "last good ticker is kept")
	assert.Equal(t, 2, strings.Count(logs.String(), "price feed offline"))
}

func TestWatcherRun(t *testing.T) {
	t.Parallel()

	feed := &scriptedFeed{results: []error{nil}}
	w := NewWatcher(feed, "BTCUSDT", 10*time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool { return feed.Calls() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancel")
	}
	assert.True(t, w.Status().Online)
}

func TestParseDirectionAndOutcome(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]Direction{"long": Long, " SHORT ": Short, "buy": Long, "sell": Short} {
		got, err := ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseDirection("sideways")
	assert.Error(t, err)

	for in, want := range map[string]Outcome{"w": Win, "LOSS": Loss, "be": Breakeven, "": Pending} {
		got, err := ParseOutcome(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err = ParseOutcome("maybe")
	assert.Error(t, err)

	assert.Equal(t, "BE", Breakeven.Label())
	assert.Equal(t, "LONG", Long.Label())
}
