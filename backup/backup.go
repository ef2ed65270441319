// Package backup reads and writes the whole-journal JSON backup file.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rustyeddy/cryptojournal/archive"
	"github.com/rustyeddy/cryptojournal/journal"
	"github.com/shopspring/decimal"
)

// Bundle is the backup file. Optional fields are pointers or nullable so an
// import can tell "absent" from "zero".
type Bundle struct {
	CurrentMonthTrades []journal.TradeRecord `json:"currentMonthTrades"`
	MonthlyArchives    archive.Ledger        `json:"monthlyArchives"`
	Settings           *journal.Settings     `json:"settings,omitempty"`
	MonthStartBalance  decimal.NullDecimal   `json:"monthStartBalance"`
	CurrentMonth       *journal.MonthKey     `json:"currentMonth,omitempty"`
	ExportDate         time.Time             `json:"exportDate"`
}

// UnmarshalJSON decodes settings over DefaultSettings, so a partial
// settings object keeps defaults only for the fields it leaves out.
func (b *Bundle) UnmarshalJSON(data []byte) error {
	type plain Bundle
	aux := struct {
		*plain
		Settings json.RawMessage `json:"settings"`
	}{plain: (*plain)(b)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	b.Settings = nil
	if len(aux.Settings) == 0 || string(aux.Settings) == "null" {
		return nil
	}
	s := journal.DefaultSettings()
	if err := json.Unmarshal(aux.Settings, &s); err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	b.Settings = &s
	return nil
}

// MalformedImportError rejects a backup before anything is replaced.
type MalformedImportError struct {
	Err error
}

func (e *MalformedImportError) Error() string {
	return fmt.Sprintf("malformed import: %v", e.Err)
}

func (e *MalformedImportError) Unwrap() error { return e.Err }

// New snapshots the journal into a bundle.
func New(w journal.WorkingMonth, l archive.Ledger, s journal.Settings, at time.Time) Bundle {
	trades := w.Trades
	if trades == nil {
		trades = []journal.TradeRecord{}
	}
	if l == nil {
		l = archive.Ledger{}
	}

	b := Bundle{
		CurrentMonthTrades: trades,
		MonthlyArchives:    l,
		Settings:           &s,
		MonthStartBalance:  decimal.NewNullDecimal(w.StartBalance),
		ExportDate:         at.UTC(),
	}
	if !w.Key.IsZero() {
		k := w.Key
		b.CurrentMonth = &k
	}
	return b
}

// FileName is the suggested download name, e.g. backup_2026-01-31.json.
func FileName(at time.Time) string {
	return "backup_" + at.Format("2006-01-02") + ".json"
}

// Encode writes b as indented JSON.
func Encode(w io.Writer, b Bundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(b)
}

// Decode parses and validates a backup. Every failure is a
// *MalformedImportError.
func Decode(r io.Reader) (Bundle, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Bundle{}, &MalformedImportError{Err: err}
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return Bundle{}, &MalformedImportError{Err: errors.New("backup must be a JSON object")}
	}

	var b Bundle
	if err := json.Unmarshal(raw, &b); err != nil {
		return Bundle{}, &MalformedImportError{Err: err}
	}
	if err := b.Validate(); err != nil {
		return Bundle{}, &MalformedImportError{Err: err}
	}
	return b, nil
}

// Validate checks the records a bundle carries.
func (b Bundle) Validate() error {
	ids := make(map[journal.TradeID]bool, len(b.CurrentMonthTrades))
	for i, t := range b.CurrentMonthTrades {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("currentMonthTrades[%d]: %w", i, err)
		}
		if ids[t.ID] {
			return fmt.Errorf("currentMonthTrades[%d]: duplicate id %s", i, t.ID)
		}
		ids[t.ID] = true
	}

	seen := make(map[journal.MonthKey]bool, len(b.MonthlyArchives))
	for i, a := range b.MonthlyArchives {
		if _, err := journal.NewMonthKey(a.Year, int(a.Month)); err != nil {
			return fmt.Errorf("monthlyArchives[%d]: %w", i, err)
		}
		if seen[a.Key()] {
			return fmt.Errorf("monthlyArchives[%d]: %s: %w", i, a.Key().Label(), archive.ErrAlreadyArchived)
		}
		seen[a.Key()] = true

		for j, t := range a.Trades {
			if err := t.Validate(); err != nil {
				return fmt.Errorf("monthlyArchives[%d].trades[%d]: %w", i, j, err)
			}
		}
	}

	if b.MonthStartBalance.Valid && b.MonthStartBalance.Decimal.IsNegative() {
		return errors.New("monthStartBalance must not be negative")
	}
	return nil
}

// StartBalance is the imported balance, or the default when the file has
// none or zero.
func (b Bundle) StartBalance() decimal.Decimal {
	if !b.MonthStartBalance.Valid || b.MonthStartBalance.Decimal.IsZero() {
		return journal.DefaultStartBalance
	}
	return b.MonthStartBalance.Decimal
}
