package risk

import (
	"github.com/rustyeddy/cryptojournal/market"
	"github.com/shopspring/decimal"
)

// Setup is a planned trade: where it enters, where it exits on either side
// and how large it is. A zero TakeProfit or StopLoss means unset.
type Setup struct {
	Direction  market.Direction
	Entry      decimal.Decimal
	TakeProfit decimal.Decimal
	StopLoss   decimal.Decimal
	Quantity   decimal.Decimal
}

// pnlAt is the directional P&L of closing the setup at exit. Anything that
// is not Long is priced as a short.
func (s Setup) pnlAt(exit decimal.Decimal) decimal.Decimal {
	if s.Direction == market.Long {
		return exit.Sub(s.Entry).Mul(s.Quantity)
	}
	return s.Entry.Sub(exit).Mul(s.Quantity)
}

// TakeProfitPnL is the P&L at the take-profit level, 0 when unset.
func (s Setup) TakeProfitPnL() decimal.Decimal {
	if !s.TakeProfit.IsPositive() {
		return decimal.Zero
	}
	return s.pnlAt(s.TakeProfit)
}

// StopLossPnL is the P&L at the stop level, 0 when unset.
func (s Setup) StopLossPnL() decimal.Decimal {
	if !s.StopLoss.IsPositive() {
		return decimal.Zero
	}
	return s.pnlAt(s.StopLoss)
}

// Preview is the read-only calculation shown while a trade is being typed.
type Preview struct {
	PositionValue decimal.Decimal `json:"positionValue"`
	TPProfit      decimal.Decimal `json:"tpProfit"`
	SLLoss        decimal.Decimal `json:"slLoss"`
	RiskReward    decimal.Decimal `json:"riskReward"`
	HasRiskReward bool            `json:"hasRiskReward"`
}

// PreviewTrade computes the preview. The bool is false when there is
// nothing to show yet: entry and quantity must be positive and at least one
// of TP/SL set.
func PreviewTrade(s Setup) (Preview, bool) {
	if !s.Entry.IsPositive() || !s.Quantity.IsPositive() {
		return Preview{}, false
	}
	if !s.TakeProfit.IsPositive() && !s.StopLoss.IsPositive() {
		return Preview{}, false
	}

	p := Preview{
		PositionValue: s.Quantity.Mul(s.Entry),
		TPProfit:      s.TakeProfitPnL(),
		SLLoss:        s.StopLossPnL(),
	}
	if p.TPProfit.IsPositive() && p.SLLoss.IsNegative() {
		p.RiskReward = p.TPProfit.Div(p.SLLoss).Abs()
		p.HasRiskReward = true
	}
	return p, true
}
