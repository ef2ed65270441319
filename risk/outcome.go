package risk

import (
	"github.com/rustyeddy/cryptojournal/market"
	"github.com/shopspring/decimal"
)

// Fill holds the fields frozen onto a trade when it is recorded.
type Fill struct {
	ExitPrice  decimal.Decimal
	PnL        decimal.Decimal
	RiskReward decimal.Decimal
}

// FinalizeOutcome derives exit price and realized P&L from the declared
// outcome. A win without a take-profit, or a loss without a stop, keeps exit
// and P&L at zero.
//
// The stop-side formula is applied as is for both directions: a short whose
// stop sits below entry books a positive P&L on a loss.
func FinalizeOutcome(s Setup, o market.Outcome) Fill {
	var f Fill

	switch o {
	case market.Win:
		if s.TakeProfit.IsPositive() {
			f.ExitPrice = s.TakeProfit
			f.PnL = s.pnlAt(s.TakeProfit)
		}
	case market.Loss:
		if s.StopLoss.IsPositive() {
			f.ExitPrice = s.StopLoss
			f.PnL = s.pnlAt(s.StopLoss)
		}
	case market.Breakeven:
		f.ExitPrice = s.Entry
	}

	f.RiskReward = RiskRewardRatio(s)
	return f
}

// RiskRewardRatio is tpProfit / |slLoss| rounded to two places. It needs
// both levels set; a zero stop distance or a take-profit on the losing side
// gives 0.
func RiskRewardRatio(s Setup) decimal.Decimal {
	if !s.TakeProfit.IsPositive() || !s.StopLoss.IsPositive() {
		return decimal.Zero
	}

	tpProfit := s.pnlAt(s.TakeProfit)
	slLoss := s.pnlAt(s.StopLoss).Abs()
	if slLoss.IsZero() || !tpProfit.IsPositive() {
		return decimal.Zero
	}
	return tpProfit.Div(slLoss).Round(2)
}
