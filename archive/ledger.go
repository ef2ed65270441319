package archive

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rustyeddy/cryptojournal/journal"
)

// ErrAlreadyArchived is returned when a month already has an archive.
var ErrAlreadyArchived = errors.New("month already archived")

// Ledger is the list of archives, at most one per month. Methods never
// modify the receiver.
type Ledger []Archive

func (l Ledger) Find(k journal.MonthKey) (Archive, bool) {
	for _, a := range l {
		if a.Key() == k {
			return a, true
		}
	}
	return Archive{}, false
}

func (l Ledger) Has(k journal.MonthKey) bool {
	_, ok := l.Find(k)
	return ok
}

// Add appends a, refusing a second archive for the same month.
func (l Ledger) Add(a Archive) (Ledger, error) {
	if l.Has(a.Key()) {
		return l, fmt.Errorf("%s: %w", a.Key().Label(), ErrAlreadyArchived)
	}
	out := make(Ledger, 0, len(l)+1)
	out = append(out, l...)
	return append(out, a), nil
}

// Delete removes the archive for k. It reports whether one was found.
func (l Ledger) Delete(k journal.MonthKey) (Ledger, bool) {
	if !l.Has(k) {
		return l, false
	}
	out := make(Ledger, 0, len(l)-1)
	for _, a := range l {
		if a.Key() != k {
			out = append(out, a)
		}
	}
	return out, true
}

// Chronological returns a copy sorted oldest first.
func (l Ledger) Chronological() Ledger {
	out := slices.Clone(l)
	slices.SortStableFunc(out, func(a, b Archive) int {
		switch {
		case a.Key().Before(b.Key()):
			return -1
		case b.Key().Before(a.Key()):
			return 1
		}
		return 0
	})
	return out
}

// MonthGroup collects the archives of one calendar month across years.
type MonthGroup struct {
	Month    time.Month `json:"month"`
	Name     string     `json:"monthName"`
	Archives []Archive  `json:"archives"`
}

// ByCalendarMonth returns twelve groups, January first, each with its
// archives ordered by year descending. Empty months are kept.
func (l Ledger) ByCalendarMonth() []MonthGroup {
	groups := make([]MonthGroup, 12)
	for i := range groups {
		m := time.Month(i + 1)
		groups[i] = MonthGroup{Month: m, Name: m.String()}
	}
	for _, a := range l {
		if a.Month < time.January || a.Month > time.December {
			continue
		}
		g := &groups[a.Month-1]
		g.Archives = append(g.Archives, a)
	}
	for i := range groups {
		slices.SortStableFunc(groups[i].Archives, func(a, b Archive) int {
			return b.Year - a.Year
		})
	}
	return groups
}
