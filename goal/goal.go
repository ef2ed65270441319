// Package goal tracks the working month's progress toward the target ROI.
package goal

import (
	"github.com/rustyeddy/cryptojournal/journal"
	"github.com/rustyeddy/cryptojournal/stats"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type Progress struct {
	TargetProfit   decimal.Decimal `json:"targetProfit"`
	TargetBalance  decimal.Decimal `json:"targetBalance"`
	CurrentProfit  decimal.Decimal `json:"currentProfit"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	Remaining      decimal.Decimal `json:"remaining"`
	Percent        decimal.Decimal `json:"percent"`
	Achieved       bool            `json:"achieved"`
}

// Compute measures snap against a target of wallet * TargetROIPercent / 100.
// Percent is clamped to [0, 100] and is 0 when the target is 0. Remaining
// goes negative once the target is beaten.
func Compute(wallet decimal.Decimal, s journal.Settings, snap stats.Snapshot) Progress {
	target := Target(wallet, s)
	current := snap.TotalPnL

	p := Progress{
		TargetProfit:   target,
		TargetBalance:  wallet.Add(target),
		CurrentProfit:  current,
		CurrentBalance: wallet.Add(current),
		Remaining:      target.Sub(current),
	}

	if !target.IsZero() {
		p.Percent = clamp(current.Mul(hundred).Div(target))
	}
	p.Achieved = target.IsPositive() && current.GreaterThanOrEqual(target)
	return p
}

// Target is the profit wanted from wallet this month.
func Target(wallet decimal.Decimal, s journal.Settings) decimal.Decimal {
	return wallet.Mul(s.TargetROIPercent).Div(hundred)
}

func clamp(v decimal.Decimal) decimal.Decimal {
	switch {
	case v.IsNegative():
		return decimal.Zero
	case v.GreaterThan(hundred):
		return hundred
	}
	return v
}
