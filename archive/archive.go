// Package archive freezes finished months into immutable records and runs
// the month rollover that produces them.
package archive

import (
	"time"

	"github.com/rustyeddy/cryptojournal/journal"
	"github.com/rustyeddy/cryptojournal/stats"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Archive is the frozen summary of one finished month.
type Archive struct {
	Year             int                   `json:"year"`
	Month            time.Month            `json:"month"`
	MonthName        string                `json:"monthName"`
	ArchivedAt       time.Time             `json:"archivedDate"`
	Trades           []journal.TradeRecord `json:"trades"`
	Stats            stats.Snapshot        `json:"stats"`
	StartBalance     decimal.Decimal       `json:"startBalance"`
	TargetProfit     decimal.Decimal       `json:"targetProfit"`
	ActualProfit     decimal.Decimal       `json:"actualProfit"`
	WithdrawnAmount  decimal.Decimal       `json:"withdrawn"`
	CompoundedAmount decimal.Decimal       `json:"compounded"`
	EndBalance       decimal.Decimal       `json:"endBalance"`
}

func (a Archive) Key() journal.MonthKey {
	return journal.MonthKey{Year: a.Year, Month: a.Month}
}

// ReturnPercent is actual profit relative to the starting balance.
func (a Archive) ReturnPercent() decimal.Decimal {
	if !a.StartBalance.IsPositive() {
		return decimal.Zero
	}
	return a.ActualProfit.Mul(hundred).Div(a.StartBalance)
}

// ArchiveMonth closes w. Profit is split between withdrawal and compounding
// by the settings' split, normalised to 100; a losing month splits its loss
// the same way. The returned working month keeps w's key with no trades
// and the end balance as its start balance.
func ArchiveMonth(w journal.WorkingMonth, s journal.Settings, at time.Time) (Archive, journal.WorkingMonth) {
	snap := stats.Compute(w.Trades)
	withdrawPct, compoundPct := s.Split()

	total := snap.TotalPnL
	withdrawn := total.Mul(withdrawPct).Div(hundred)
	compounded := total.Mul(compoundPct).Div(hundred)
	end := w.StartBalance.Add(compounded)

	trades := make([]journal.TradeRecord, len(w.Trades))
	copy(trades, w.Trades)

	a := Archive{
		Year:             w.Key.Year,
		Month:            w.Key.Month,
		MonthName:        w.Key.Name(),
		ArchivedAt:       at,
		Trades:           trades,
		Stats:            snap,
		StartBalance:     w.StartBalance,
		TargetProfit:     w.StartBalance.Mul(s.TargetROIPercent).Div(hundred),
		ActualProfit:     total,
		WithdrawnAmount:  withdrawn,
		CompoundedAmount: compounded,
		EndBalance:       end,
	}

	return a, journal.NewWorkingMonth(w.Key, end)
}
