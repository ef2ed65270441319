package archive

import (
	"errors"
	"sync"
	"time"

	"github.com/rustyeddy/cryptojournal/journal"
)

// ErrRolloverInProgress is returned when Check is entered while another
// check is still archiving.
var ErrRolloverInProgress = errors.New("rollover already in progress")

type Phase int

const (
	Open Phase = iota
	Archiving
)

func (p Phase) String() string {
	if p == Archiving {
		return "archiving"
	}
	return "open"
}

// Result is the outcome of a rollover check. Working and Ledger are always
// the states to carry forward; Archived is set when a month was closed.
type Result struct {
	Working    journal.WorkingMonth
	Ledger     Ledger
	Archived   *Archive
	KeyChanged bool
	FirstRun   bool
}

// Rollover compares the stored month with the calendar and archives the
// outgoing month when they differ. It is meant to run once at startup.
type Rollover struct {
	mu    sync.Mutex
	phase Phase
}

func (r *Rollover) Phase() Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.phase
}

func (r *Rollover) begin() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.phase == Archiving {
		return ErrRolloverInProgress
	}
	r.phase = Archiving
	return nil
}

func (r *Rollover) end() {
	r.mu.Lock()
	r.phase = Open
	r.mu.Unlock()
}

// Check runs one rollover. A zero stored key is a first run and only adopts
// the current month. A month with no trades is skipped without an archive.
// If the outgoing month is already in the ledger nothing changes and
// ErrAlreadyArchived is returned.
func (r *Rollover) Check(w journal.WorkingMonth, ledger Ledger, s journal.Settings, now time.Time) (Result, error) {
	res := Result{Working: w, Ledger: ledger}
	current := journal.MonthKeyOf(now)

	if w.Key.IsZero() {
		res.Working.Key = current
		res.KeyChanged = true
		res.FirstRun = true
		return res, nil
	}
	if w.Key == current {
		return res, nil
	}

	if len(w.Trades) == 0 {
		res.Working.Key = current
		res.KeyChanged = true
		return res, nil
	}

	if err := r.begin(); err != nil {
		return res, err
	}
	defer r.end()

	a, next := ArchiveMonth(w, s, now)
	updated, err := ledger.Add(a)
	if err != nil {
		return res, err
	}

	next.Key = current
	return Result{
		Working:    next,
		Ledger:     updated,
		Archived:   &a,
		KeyChanged: true,
	}, nil
}
