package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rustyeddy/cryptojournal/archive"
	"github.com/rustyeddy/cryptojournal/backup"
	"github.com/rustyeddy/cryptojournal/goal"
	"github.com/rustyeddy/cryptojournal/internal/logging"
	"github.com/rustyeddy/cryptojournal/journal"
	"github.com/rustyeddy/cryptojournal/stats"
	"github.com/rustyeddy/cryptojournal/store"
	"github.com/shopspring/decimal"
)

// ErrNotLoaded wraps the read failure of Open. Until an Import or Reset
// replaces the stored journal, changes stay in memory so they cannot
// overwrite data that was never read.
var ErrNotLoaded = errors.New("stored journal could not be loaded")

type Option func(*Tracker)

// WithDefaults sets the start balance and settings used when the store has
// none.
func WithDefaults(startBalance decimal.Decimal, s journal.Settings) Option {
	return func(t *Tracker) {
		d := store.DefaultData()
		d.Working.StartBalance = startBalance
		d.Settings = s
		t.defaults = &d
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(t *Tracker) { t.log = l }
}

// WithClock replaces time.Now, including its location, which decides
// where months and days begin.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// Tracker is the single owner of the journal state. Every mutation is
// validated, committed in memory and then persisted. Persistence failures
// never undo a committed change; the first one is logged and kept for
// PersistenceError.
type Tracker struct {
	mu       sync.Mutex
	repo     *store.Repo
	log      *slog.Logger
	now      func() time.Time
	defaults *store.Data
	rollover archive.Rollover

	state      State
	persistErr error
	loadErr    error
	opened     archive.Result
}

// Open loads the journal from s and runs the startup rollover check.
func Open(ctx context.Context, s store.Store, opts ...Option) *Tracker {
	t := &Tracker{
		log: logging.Discard(),
		now: time.Now,
	}
	for _, o := range opts {
		o(t)
	}
	t.repo = store.NewRepo(s, t.log)
	if t.defaults != nil {
		t.repo.SetDefaults(*t.defaults)
	}

	data, err := t.repo.Load(ctx)
	if err != nil {
		t.loadErr = fmt.Errorf("%w: %w", ErrNotLoaded, err)
		t.failed(t.loadErr)
	}
	t.state = stateFromData(data)

	res, err := t.CheckRollover(ctx)
	if err != nil {
		t.log.Warn("rollover check failed", "month", t.state.Working.Key.String(), "error", err)
	}
	t.opened = res
	return t
}

// failed records a persistence error. Only the first of a run is logged.
func (t *Tracker) failed(err error) {
	if t.persistErr == nil {
		t.log.Error("persistence unavailable, changes are kept in memory only", "error", err)
	}
	t.persistErr = err
}

func (t *Tracker) saved() {
	if t.persistErr != nil {
		t.log.Info("persistence restored")
		t.persistErr = nil
	}
}

// persist saves part of the state. Nothing is written after a failed load.
func (t *Tracker) persist(ctx context.Context, save func(context.Context) error) {
	if t.loadErr != nil {
		t.failed(t.loadErr)
		return
	}
	t.write(ctx, save)
}

// write saves the whole state. Success ends a failed load.
func (t *Tracker) write(ctx context.Context, save func(context.Context) error) {
	if err := save(ctx); err != nil {
		t.failed(err)
		return
	}
	t.loadErr = nil
	t.saved()
}

func (t *Tracker) saveWorking(ctx context.Context) {
	t.persist(ctx, func(ctx context.Context) error { return t.repo.SaveWorking(ctx, t.state.Working) })
}

func (t *Tracker) saveArchives(ctx context.Context) {
	t.persist(ctx, func(ctx context.Context) error { return t.repo.SaveArchives(ctx, t.state.Archives) })
}

func (t *Tracker) saveSettings(ctx context.Context) {
	t.persist(ctx, func(ctx context.Context) error { return t.repo.SaveSettings(ctx, t.state.Settings) })
}

// PersistenceError is the latest unresolved storage failure, or nil.
func (t *Tracker) PersistenceError() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.persistErr
}

// State returns a copy of the current state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.state
	s.Working.Trades = append([]journal.TradeRecord(nil), s.Working.Trades...)
	s.Archives = append(archive.Ledger(nil), s.Archives...)
	return s
}

func (t *Tracker) Now() time.Time { return t.now() }

// OpenedRollover is the result of the check run by Open.
func (t *Tracker) OpenedRollover() archive.Result {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.opened
}

// CheckRollover archives the stored month if the calendar has moved on.
func (t *Tracker) CheckRollover(ctx context.Context) (archive.Result, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	res, err := t.rollover.Check(t.state.Working, t.state.Archives, t.state.Settings, t.now())
	if err != nil {
		return res, err
	}

	if res.Archived != nil {
		a := res.Archived
		t.log.Info("month archived",
			"month", a.Key().String(),
			"trades", len(a.Trades),
			"profit", a.ActualProfit.StringFixed(2),
			"end_balance", a.EndBalance.StringFixed(2),
		)
		t.state.Archives = res.Ledger
		t.saveArchives(ctx)
	}
	if res.KeyChanged {
		if !res.FirstRun && res.Archived == nil {
			t.log.Info("month advanced without trades", "month", res.Working.Key.String())
		}
		t.state.Working = res.Working
		t.saveWorking(ctx)
	}
	return res, nil
}

func (t *Tracker) AddTrade(ctx context.Context, in journal.TradeInput) (journal.TradeRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, rec, err := AddTrade(t.state, in, t.now())
	if err != nil {
		return rec, err
	}
	t.state = next
	t.log.Debug("trade added", "id", rec.ID, "symbol", rec.Symbol, "result", rec.Outcome, "pnl", rec.RealizedPnL.StringFixed(2))
	t.saveWorking(ctx)
	return rec, nil
}

// DeleteTrade removes a trade. Unknown ids are a no-op reported as false.
func (t *Tracker) DeleteTrade(ctx context.Context, id journal.TradeID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, ok := DeleteTrade(t.state, id)
	if !ok {
		return false
	}
	t.state = next
	t.saveWorking(ctx)
	return true
}

func (t *Tracker) ClearTrades(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = ClearTrades(t.state)
	t.saveWorking(ctx)
}

// Trades lists the working month's trades in period, most recent first.
func (t *Tracker) Trades(p journal.Period) []journal.TradeRecord {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]journal.TradeRecord(nil), journal.Filter(t.state.Working.Trades, p, t.now())...)
}

func (t *Tracker) Trade(id journal.TradeID) (journal.TradeRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Working.Find(id)
}

// Stats covers every trade of the working month.
func (t *Tracker) Stats() stats.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return stats.Compute(t.state.Working.Trades)
}

// Goal measures the working month against its start balance.
func (t *Tracker) Goal() goal.Progress {
	t.mu.Lock()
	defer t.mu.Unlock()
	return goal.Compute(t.state.Working.StartBalance, t.state.Settings, stats.Compute(t.state.Working.Trades))
}

func (t *Tracker) StartBalance() decimal.Decimal {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Working.StartBalance
}

func (t *Tracker) SetStartBalance(ctx context.Context, b decimal.Decimal) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, err := SetStartBalance(t.state, b)
	if err != nil {
		return err
	}
	t.state = next
	t.saveWorking(ctx)
	return nil
}

func (t *Tracker) Settings() journal.Settings {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Settings
}

func (t *Tracker) UpdateSettings(ctx context.Context, s journal.Settings) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, err := UpdateSettings(t.state, s)
	if err != nil {
		return err
	}
	t.state = next
	t.saveSettings(ctx)
	return nil
}

func (t *Tracker) Archives() archive.Ledger {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append(archive.Ledger(nil), t.state.Archives...)
}

func (t *Tracker) Archive(k journal.MonthKey) (archive.Archive, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Archives.Find(k)
}

// DeleteArchive removes one archive for good. The working month is not
// touched.
func (t *Tracker) DeleteArchive(ctx context.Context, k journal.MonthKey) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	next, ok := DeleteArchive(t.state, k)
	if !ok {
		return false
	}
	t.state = next
	t.log.Info("archive deleted", "month", k.String())
	t.saveArchives(ctx)
	return true
}

func (t *Tracker) Charts() archive.Charts {
	t.mu.Lock()
	defer t.mu.Unlock()
	return archive.BuildCharts(t.state.Archives)
}

func (t *Tracker) Export() backup.Bundle {
	t.mu.Lock()
	defer t.mu.Unlock()
	return Export(t.state, t.now())
}

// Import replaces everything with b. The bundle must already be decoded
// and validated, so nothing here can fail half way.
func (t *Tracker) Import(ctx context.Context, b backup.Bundle) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = Import(t.state, b)
	t.log.Info("backup imported",
		"trades", len(t.state.Working.Trades),
		"archives", len(t.state.Archives),
		"month", t.state.Working.Key.String(),
	)
	t.write(ctx, func(ctx context.Context) error { return t.repo.Save(ctx, t.state.data()) })
}

// Reset wipes storage and starts a fresh journal in the current month.
func (t *Tracker) Reset(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.state = stateFromData(t.repo.Defaults())
	t.state.Working.Key = journal.MonthKeyOf(t.now())
	t.log.Warn("journal reset")

	t.write(ctx, func(ctx context.Context) error {
		if err := t.repo.Reset(ctx); err != nil {
			return err
		}
		return t.repo.SaveWorking(ctx, t.state.Working)
	})
}
