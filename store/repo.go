package store

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/rustyeddy/cryptojournal/archive"
	"github.com/rustyeddy/cryptojournal/internal/logging"
	"github.com/rustyeddy/cryptojournal/journal"
	"github.com/shopspring/decimal"
)

const (
	KeyTrades       = "journal/trades"
	KeyArchives     = "journal/archives"
	KeySettings     = "journal/settings"
	KeyMonth        = "journal/month"
	KeyStartBalance = "journal/start-balance"
)

// Data is everything the journal persists.
type Data struct {
	Working  journal.WorkingMonth
	Archives archive.Ledger
	Settings journal.Settings
}

// DefaultData is the state of a journal that has never been saved. The
// month key is zero so the first rollover check adopts the calendar month.
func DefaultData() Data {
	return Data{
		Working:  journal.NewWorkingMonth(journal.MonthKey{}, journal.DefaultStartBalance),
		Settings: journal.DefaultSettings(),
	}
}

// Repo maps Data onto Store keys, one JSON blob per key.
type Repo struct {
	store    Store
	log      *slog.Logger
	defaults Data
}

func NewRepo(s Store, log *slog.Logger) *Repo {
	if log == nil {
		log = logging.Discard()
	}
	return &Repo{store: s, log: log, defaults: DefaultData()}
}

// SetDefaults replaces what Load uses for missing keys.
func (r *Repo) SetDefaults(d Data) {
	d.Working.Trades = nil
	d.Archives = nil
	r.defaults = d
}

// Defaults is the state of an empty store.
func (r *Repo) Defaults() Data {
	return r.defaults
}

// Load reads every key. Missing keys take defaults, and so do blobs that no
// longer decode, with a warning. An error is returned only when the store
// itself fails, together with the defaults.
func (r *Repo) Load(ctx context.Context) (Data, error) {
	d := r.defaults

	raw := make(map[string]string, 5)
	for _, k := range []string{KeyTrades, KeyArchives, KeySettings, KeyMonth, KeyStartBalance} {
		v, ok, err := r.store.Get(ctx, k)
		if err != nil {
			return r.defaults, err
		}
		if ok {
			raw[k] = v
		}
	}

	if v, ok := raw[KeyTrades]; ok {
		var trades []journal.TradeRecord
		if r.decode(KeyTrades, v, &trades) {
			d.Working.Trades = trades
		}
	}
	if v, ok := raw[KeyArchives]; ok {
		var ledger archive.Ledger
		if r.decode(KeyArchives, v, &ledger) {
			d.Archives = ledger
		}
	}
	if v, ok := raw[KeySettings]; ok {
		s := r.defaults.Settings
		if r.decode(KeySettings, v, &s) {
			d.Settings = s
		}
	}
	if v, ok := raw[KeyMonth]; ok && v != "" {
		k, err := journal.ParseMonthKey(v)
		if err != nil {
			r.log.Warn("ignoring stored month", "key", KeyMonth, "error", err)
		} else {
			d.Working.Key = k
		}
	}
	if v, ok := raw[KeyStartBalance]; ok && v != "" {
		b, err := decimal.NewFromString(v)
		if err != nil {
			r.log.Warn("ignoring stored start balance", "key", KeyStartBalance, "error", err)
		} else {
			d.Working.StartBalance = b
		}
	}

	return d, nil
}

func (r *Repo) decode(key, v string, dst any) bool {
	if err := json.Unmarshal([]byte(v), dst); err != nil {
		r.log.Warn("ignoring corrupt stored value", "key", key, "error", err)
		return false
	}
	return true
}

// SaveWorking writes the trades, month key and start balance. The three
// writes are independent; a failure stops at the first error.
func (r *Repo) SaveWorking(ctx context.Context, w journal.WorkingMonth) error {
	trades := w.Trades
	if trades == nil {
		trades = []journal.TradeRecord{}
	}
	if err := r.put(ctx, KeyTrades, trades); err != nil {
		return err
	}
	if err := r.store.Set(ctx, KeyMonth, w.Key.String()); err != nil {
		return err
	}
	return r.store.Set(ctx, KeyStartBalance, w.StartBalance.String())
}

func (r *Repo) SaveArchives(ctx context.Context, l archive.Ledger) error {
	if l == nil {
		l = archive.Ledger{}
	}
	return r.put(ctx, KeyArchives, l)
}

func (r *Repo) SaveSettings(ctx context.Context, s journal.Settings) error {
	return r.put(ctx, KeySettings, s)
}

// Save writes every key.
func (r *Repo) Save(ctx context.Context, d Data) error {
	if err := r.SaveWorking(ctx, d.Working); err != nil {
		return err
	}
	if err := r.SaveArchives(ctx, d.Archives); err != nil {
		return err
	}
	return r.SaveSettings(ctx, d.Settings)
}

// Reset wipes the backend.
func (r *Repo) Reset(ctx context.Context) error {
	return r.store.Clear(ctx)
}

func (r *Repo) put(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, key, string(b))
}
