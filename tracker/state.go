// Package tracker owns the journal state. State and its functions are pure;
// Tracker serialises them behind a mutex and persists each change.
package tracker

import (
	"time"

	"github.com/rustyeddy/cryptojournal/archive"
	"github.com/rustyeddy/cryptojournal/backup"
	"github.com/rustyeddy/cryptojournal/journal"
	"github.com/rustyeddy/cryptojournal/store"
	"github.com/shopspring/decimal"
)

// State is everything the accounting engine reads and writes.
type State struct {
	Working  journal.WorkingMonth
	Archives archive.Ledger
	Settings journal.Settings
}

func stateFromData(d store.Data) State {
	return State{Working: d.Working, Archives: d.Archives, Settings: d.Settings}
}

func (s State) data() store.Data {
	return store.Data{Working: s.Working, Archives: s.Archives, Settings: s.Settings}
}

// AddTrade records a new trade at the head of the working month.
func AddTrade(s State, in journal.TradeInput, at time.Time) (State, journal.TradeRecord, error) {
	rec, err := journal.NewTrade(in, at)
	if err != nil {
		return s, journal.TradeRecord{}, err
	}
	s.Working = s.Working.Add(rec)
	return s, rec, nil
}

// DeleteTrade removes a trade; the bool reports whether it existed.
func DeleteTrade(s State, id journal.TradeID) (State, bool) {
	_, ok := s.Working.Find(id)
	s.Working = journal.DeleteTrade(s.Working, id)
	return s, ok
}

func ClearTrades(s State) State {
	s.Working = s.Working.Clear()
	return s
}

// SetStartBalance changes the working month's wallet balance.
func SetStartBalance(s State, b decimal.Decimal) (State, error) {
	if !b.IsPositive() {
		return s, &journal.InvalidInputError{Field: "balance", Reason: "must be positive"}
	}
	s.Working.StartBalance = b
	return s, nil
}

// UpdateSettings validates and replaces the settings.
func UpdateSettings(s State, next journal.Settings) (State, error) {
	if err := next.Validate(); err != nil {
		return s, err
	}
	s.Settings = next
	return s, nil
}

func DeleteArchive(s State, k journal.MonthKey) (State, bool) {
	var ok bool
	s.Archives, ok = s.Archives.Delete(k)
	return s, ok
}

// Import replaces the state wholesale from a decoded backup. Absent
// settings and month keep the current ones.
func Import(s State, b backup.Bundle) State {
	next := State{
		Working:  journal.NewWorkingMonth(s.Working.Key, b.StartBalance()),
		Archives: append(archive.Ledger{}, b.MonthlyArchives...),
		Settings: s.Settings,
	}
	next.Working.Trades = append([]journal.TradeRecord{}, b.CurrentMonthTrades...)
	if b.Settings != nil {
		next.Settings = *b.Settings
	}
	if b.CurrentMonth != nil {
		next.Working.Key = *b.CurrentMonth
	}
	return next
}

// Export snapshots the state into a backup bundle.
func Export(s State, at time.Time) backup.Bundle {
	return backup.New(s.Working, s.Archives, s.Settings, at)
}
