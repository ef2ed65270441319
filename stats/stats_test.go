package stats

import (
	"encoding/json"
	"testing"

	"github.com/rustyeddy/cryptojournal/journal"
	"github.com/rustyeddy/cryptojournal/market"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func trade(o market.Outcome, pnl, rr string) journal.TradeRecord {
	return journal.TradeRecord{
		ID:              journal.TradeID(string(o) + pnl),
		Outcome:         o,
		RealizedPnL:     d(pnl),
		RiskRewardRatio: d(rr),
	}
}

func TestComputeEmpty(t *testing.T) {
	t.Parallel()

	s := Compute(nil)

	assert.Equal(t, 0, s.TotalCount)
	assert.True(t, s.WinRatePercent.IsZero())
	assert.True(t, s.BestTradePnL.IsZero())
	assert.True(t, s.WorstTradePnL.IsZero())
	assert.Equal(t, Undefined, s.ProfitFactor.Kind)
	assert.Equal(t, "-", s.ProfitFactor.String())
	assert.Equal(t, 0, s.CurrentStreakLength)
	assert.Equal(t, StreakNone, s.CurrentStreakType)
}

func TestComputeMixed(t *testing.T) {
	t.Parallel()

	trades := []journal.TradeRecord{
		trade(market.Loss, "-10", "2"),
		trade(market.Win, "20", "2"),
		trade(market.Win, "40", "0"),
		trade(market.Breakeven, "0", "1"),
		trade(market.Pending, "0", "0"),
	}

	s := Compute(trades)

	assert.Equal(t, 5, s.TotalCount)
	assert.Equal(t, 2, s.WinCount)
	assert.Equal(t, 1, s.LossCount)
	assert.True(t, d("40").Equal(s.WinRatePercent))
	assert.True(t, d("50").Equal(s.TotalPnL))
	assert.Equal(t, "1.67", s.AverageRiskReward.StringFixed(2))
	assert.True(t, d("40").Equal(s.BestTradePnL))
	assert.True(t, d("-10").Equal(s.WorstTradePnL))
	assert.True(t, d("30").Equal(s.AverageWin))
	assert.True(t, d("-10").Equal(s.AverageLoss))
	assert.Equal(t, Finite, s.ProfitFactor.Kind)
	assert.Equal(t, "6.00", s.ProfitFactor.String())
}

func TestComputeIsPure(t *testing.T) {
	t.Parallel()

	trades := []journal.TradeRecord{
		trade(market.Win, "12.5", "1.5"),
		trade(market.Loss, "-4", "1.5"),
		trade(market.Win, "3", "2"),
	}

	first, err := json.Marshal(Compute(trades))
	require.NoError(t, err)
	second, err := json.Marshal(Compute(trades))
	require.NoError(t, err)

	assert.JSONEq(t, string(first), string(second))
	assert.True(t, d("12.5").Equal(trades[0].RealizedPnL))
}

func TestStreakMostRecentOnly(t *testing.T) {
	t.Parallel()

	// Win, Win, Loss entered in that order, stored head first.
	trades := []journal.TradeRecord{
		trade(market.Loss, "-5", "0"),
		trade(market.Win, "10", "0"),
		trade(market.Win, "10", "0"),
	}

	s := Compute(trades)
	assert.Equal(t, 1, s.CurrentStreakLength)
	assert.Equal(t, StreakLoss, s.CurrentStreakType)
}

func TestStreak(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		outcomes []market.Outcome
		wantN    int
		wantType StreakType
	}{
		{"three wins", []market.Outcome{market.Win, market.Win, market.Win, market.Loss}, 3, StreakWin},
		{"two losses", []market.Outcome{market.Loss, market.Loss, market.Win}, 2, StreakLoss},
		{"breakeven head", []market.Outcome{market.Breakeven, market.Win}, 0, StreakNone},
		{"pending head", []market.Outcome{market.Pending, market.Loss}, 0, StreakNone},
		{"broken by breakeven", []market.Outcome{market.Win, market.Breakeven, market.Win}, 1, StreakWin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			trades := make([]journal.TradeRecord, 0, len(tt.outcomes))
			for _, o := range tt.outcomes {
				trades = append(trades, trade(o, "0", "0"))
			}
			s := Compute(trades)
			assert.Equal(t, tt.wantN, s.CurrentStreakLength)
			assert.Equal(t, tt.wantType, s.CurrentStreakType)
		})
	}
}

func TestWinRateInRange(t *testing.T) {
	t.Parallel()

	outcomes := []market.Outcome{market.Win, market.Loss, market.Breakeven, market.Pending}
	var trades []journal.TradeRecord
	for i := 0; i < 40; i++ {
		trades = append(trades, trade(outcomes[(i*7)%len(outcomes)], "1", "0"))
		wr := Compute(trades).WinRatePercent
		assert.False(t, wr.IsNegative())
		assert.True(t, wr.LessThanOrEqual(hundred))
	}
}

func TestProfitFactorSentinels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		trades []journal.TradeRecord
		want   PFKind
		str    string
	}{
		{"wins only", []journal.TradeRecord{trade(market.Win, "5", "0")}, Infinite, "∞"},
		{"nothing decided", []journal.TradeRecord{trade(market.Breakeven, "0", "0")}, Undefined, "-"},
		{"zero-pnl win", []journal.TradeRecord{trade(market.Win, "0", "0")}, Undefined, "-"},
		{"loss only", []journal.TradeRecord{trade(market.Loss, "-5", "0")}, Finite, "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pf := Compute(tt.trades).ProfitFactor
			assert.Equal(t, tt.want, pf.Kind)
			assert.Equal(t, tt.str, pf.String())
		})
	}
}

func TestProfitFactorJSON(t *testing.T) {
	t.Parallel()

	b, err := json.Marshal(ProfitFactor{Kind: Infinite})
	require.NoError(t, err)
	assert.Equal(t, `"∞"`, string(b))

	b, err = json.Marshal(ProfitFactor{Kind: Finite, Value: d("1.25")})
	require.NoError(t, err)
	assert.Equal(t, `"1.25"`, string(b))

	tests := []struct {
		in   string
		want PFKind
		val  string
	}{
		{`"∞"`, Infinite, ""},
		{`"-"`, Undefined, ""},
		{`null`, Undefined, ""},
		{`"2.50"`, Finite, "2.5"},
		{`3`, Finite, "3"},
	}
	for _, tt := range tests {
		var pf ProfitFactor
		require.NoError(t, json.Unmarshal([]byte(tt.in), &pf), tt.in)
		assert.Equal(t, tt.want, pf.Kind, tt.in)
		if tt.val != "" {
			assert.True(t, d(tt.val).Equal(pf.Value), tt.in)
		}
	}

	var pf ProfitFactor
	assert.Error(t, json.Unmarshal([]byte(`"lots"`), &pf))
}

func TestSnapshotLegacyJSON(t *testing.T) {
	t.Parallel()

	legacy := `{"total":3,"wins":2,"winRate":"66.7","totalPnL":"25.00","avgRR":"2.00",
		"bestTrade":"20.00","worstTrade":"-5.00","avgWin":"15.00","avgLoss":"-5.00",
		"profitFactor":"6.00","streak":2,"streakType":"W"}`

	var s Snapshot
	require.NoError(t, json.Unmarshal([]byte(legacy), &s))
	assert.Equal(t, 3, s.TotalCount)
	assert.True(t, d("66.7").Equal(s.WinRatePercent))
	assert.Equal(t, Finite, s.ProfitFactor.Kind)
	assert.Equal(t, StreakWin, s.CurrentStreakType)
}
