// Package stats aggregates a sequence of trades into the performance figures
// shown on the dashboard and frozen into monthly archives.
package stats

import (
	"github.com/rustyeddy/cryptojournal/journal"
	"github.com/rustyeddy/cryptojournal/market"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type StreakType string

const (
	StreakNone StreakType = ""
	StreakWin  StreakType = "W"
	StreakLoss StreakType = "L"
)

// Snapshot is the derived statistics of a trade list.
type Snapshot struct {
	TotalCount          int             `json:"total"`
	WinCount            int             `json:"wins"`
	LossCount           int             `json:"losses"`
	WinRatePercent      decimal.Decimal `json:"winRate"`
	TotalPnL            decimal.Decimal `json:"totalPnL"`
	AverageRiskReward   decimal.Decimal `json:"avgRR"`
	BestTradePnL        decimal.Decimal `json:"bestTrade"`
	WorstTradePnL       decimal.Decimal `json:"worstTrade"`
	AverageWin          decimal.Decimal `json:"avgWin"`
	AverageLoss         decimal.Decimal `json:"avgLoss"`
	ProfitFactor        ProfitFactor    `json:"profitFactor"`
	CurrentStreakLength int             `json:"streak"`
	CurrentStreakType   StreakType      `json:"streakType"`
}

// Compute is a pure function of trades, which must be ordered most recent
// first for the streak to mean anything.
func Compute(trades []journal.TradeRecord) Snapshot {
	s := Snapshot{
		TotalCount:   len(trades),
		ProfitFactor: ProfitFactor{Kind: Undefined},
	}
	if len(trades) == 0 {
		return s
	}

	var (
		rrSum, winSum, lossSum decimal.Decimal
		rrCount                int64
	)

	s.BestTradePnL = trades[0].RealizedPnL
	s.WorstTradePnL = trades[0].RealizedPnL

	for _, t := range trades {
		pnl := t.RealizedPnL
		s.TotalPnL = s.TotalPnL.Add(pnl)

		if pnl.GreaterThan(s.BestTradePnL) {
			s.BestTradePnL = pnl
		}
		if pnl.LessThan(s.WorstTradePnL) {
			s.WorstTradePnL = pnl
		}

		if t.RiskRewardRatio.IsPositive() {
			rrSum = rrSum.Add(t.RiskRewardRatio)
			rrCount++
		}

		switch t.Outcome {
		case market.Win:
			s.WinCount++
			winSum = winSum.Add(pnl)
		case market.Loss:
			s.LossCount++
			lossSum = lossSum.Add(pnl)
		}
	}

	s.WinRatePercent = decimal.NewFromInt(int64(s.WinCount)).Mul(hundred).Div(decimal.NewFromInt(int64(s.TotalCount)))
	if rrCount > 0 {
		s.AverageRiskReward = rrSum.Div(decimal.NewFromInt(rrCount))
	}
	if s.WinCount > 0 {
		s.AverageWin = winSum.Div(decimal.NewFromInt(int64(s.WinCount)))
	}
	if s.LossCount > 0 {
		s.AverageLoss = lossSum.Div(decimal.NewFromInt(int64(s.LossCount)))
	}

	s.ProfitFactor = profitFactor(winSum, lossSum)
	s.CurrentStreakLength, s.CurrentStreakType = streak(trades)
	return s
}

func profitFactor(winSum, lossSum decimal.Decimal) ProfitFactor {
	losses := lossSum.Abs()
	switch {
	case losses.IsPositive():
		return ProfitFactor{Kind: Finite, Value: winSum.Div(losses)}
	case winSum.IsPositive():
		return ProfitFactor{Kind: Infinite}
	default:
		return ProfitFactor{Kind: Undefined}
	}
}

// streak counts the leading run of the head trade's outcome. Only wins and
// losses start a streak.
func streak(trades []journal.TradeRecord) (int, StreakType) {
	head := trades[0].Outcome
	var kind StreakType
	switch head {
	case market.Win:
		kind = StreakWin
	case market.Loss:
		kind = StreakLoss
	default:
		return 0, StreakNone
	}

	n := 0
	for _, t := range trades {
		if t.Outcome != head {
			break
		}
		n++
	}
	return n, kind
}
