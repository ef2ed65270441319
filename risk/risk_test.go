package risk

import (
	"math"
	"testing"

	"github.com/rustyeddy/cryptojournal/market"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "want %s, got %s", want, got)
}

func TestFinalizeOutcome_LongWin(t *testing.T) {
	t.Parallel()

	s := Setup{Direction: market.Long, Entry: d("100"), TakeProfit: d("120"), StopLoss: d("90"), Quantity: d("1")}
	f := FinalizeOutcome(s, market.Win)

	assertDec(t, "120", f.ExitPrice)
	assertDec(t, "20", f.PnL)
	assertDec(t, "2.00", f.RiskReward)
}

// A short stopped out below entry books a positive P&L. The formula is kept
// as recorded by the original journal.
func TestFinalizeOutcome_ShortLossSignAnomaly(t *testing.T) {
	t.Parallel()

	s := Setup{Direction: market.Short, Entry: d("100"), TakeProfit: d("120"), StopLoss: d("90"), Quantity: d("1")}
	f := FinalizeOutcome(s, market.Loss)

	assertDec(t, "90", f.ExitPrice)
	assertDec(t, "10", f.PnL)
	// tp above entry is on the losing side of a short
	assertDec(t, "0", f.RiskReward)
}

func TestFinalizeOutcome_Branches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		setup   Setup
		outcome market.Outcome
		exit    string
		pnl     string
		rr      string
	}{
		{
			name:    "short_win",
			setup:   Setup{Direction: market.Short, Entry: d("100"), TakeProfit: d("80"), StopLoss: d("110"), Quantity: d("2")},
			outcome: market.Win,
			exit:    "80", pnl: "40", rr: "2",
		},
		{
			name:    "long_loss",
			setup:   Setup{Direction: market.Long, Entry: d("100"), TakeProfit: d("130"), StopLoss: d("95"), Quantity: d("0.5")},
			outcome: market.Loss,
			exit:    "95", pnl: "-2.5", rr: "6",
		},
		{
			name:    "win_without_tp",
			setup:   Setup{Direction: market.Long, Entry: d("100"), StopLoss: d("95"), Quantity: d("1")},
			outcome: market.Win,
			exit:    "0", pnl: "0", rr: "0",
		},
		{
			name:    "loss_without_sl",
			setup:   Setup{Direction: market.Long, Entry: d("100"), TakeProfit: d("110"), Quantity: d("1")},
			outcome: market.Loss,
			exit:    "0", pnl: "0", rr: "0",
		},
		{
			name:    "breakeven",
			setup:   Setup{Direction: market.Long, Entry: d("100"), TakeProfit: d("110"), StopLoss: d("95"), Quantity: d("1")},
			outcome: market.Breakeven,
			exit:    "100", pnl: "0", rr: "2",
		},
		{
			name:    "pending",
			setup:   Setup{Direction: market.Long, Entry: d("100"), TakeProfit: d("110"), StopLoss: d("95"), Quantity: d("1")},
			outcome: market.Pending,
			exit:    "0", pnl: "0", rr: "2",
		},
		{
			name:    "rr_rounded",
			setup:   Setup{Direction: market.Long, Entry: d("100"), TakeProfit: d("110"), StopLoss: d("97"), Quantity: d("1")},
			outcome: market.Pending,
			exit:    "0", pnl: "0", rr: "3.33",
		},
		{
			name:    "stop_at_entry",
			setup:   Setup{Direction: market.Long, Entry: d("100"), TakeProfit: d("110"), StopLoss: d("100"), Quantity: d("1")},
			outcome: market.Loss,
			exit:    "100", pnl: "0", rr: "0",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := FinalizeOutcome(tt.setup, tt.outcome)
			assertDec(t, tt.exit, f.ExitPrice)
			assertDec(t, tt.pnl, f.PnL)
			assertDec(t, tt.rr, f.RiskReward)
		})
	}
}

func TestPreviewTrade(t *testing.T) {
	t.Parallel()

	t.Run("long", func(t *testing.T) {
		p, ok := PreviewTrade(Setup{Direction: market.Long, Entry: d("100"), TakeProfit: d("120"), StopLoss: d("90"), Quantity: d("2")})
		assert.True(t, ok)
		assertDec(t, "200", p.PositionValue)
		assertDec(t, "40", p.TPProfit)
		assertDec(t, "-20", p.SLLoss)
		assert.True(t, p.HasRiskReward)
		assertDec(t, "2", p.RiskReward)
	})

	t.Run("short", func(t *testing.T) {
		p, ok := PreviewTrade(Setup{Direction: market.Short, Entry: d("100"), TakeProfit: d("90"), StopLoss: d("105"), Quantity: d("1")})
		assert.True(t, ok)
		assertDec(t, "10", p.TPProfit)
		assertDec(t, "-5", p.SLLoss)
		assertDec(t, "2", p.RiskReward)
	})

	t.Run("no_rr_when_sl_side_positive", func(t *testing.T) {
		p, ok := PreviewTrade(Setup{Direction: market.Short, Entry: d("100"), TakeProfit: d("120"), StopLoss: d("90"), Quantity: d("1")})
		assert.True(t, ok)
		assert.False(t, p.HasRiskReward)
		assertDec(t, "0", p.RiskReward)
	})

	t.Run("tp_only", func(t *testing.T) {
		p, ok := PreviewTrade(Setup{Direction: market.Long, Entry: d("100"), TakeProfit: d("110"), Quantity: d("1")})
		assert.True(t, ok)
		assertDec(t, "10", p.TPProfit)
		assertDec(t, "0", p.SLLoss)
		assert.False(t, p.HasRiskReward)
	})

	t.Run("hidden", func(t *testing.T) {
		_, ok := PreviewTrade(Setup{Direction: market.Long, Entry: d("100"), Quantity: d("1")})
		assert.False(t, ok)
		_, ok = PreviewTrade(Setup{Direction: market.Long, TakeProfit: d("100"), Quantity: d("1")})
		assert.False(t, ok)
	})
}

func TestBaseBands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		wallet float64
		risk   float64
		lev    float64
	}{
		{0, 15, 20},
		{50, 13.5, 19},
		{100, 12, 18},
		{550, 10, 15},
		{1000, 8, 12},
		{3000, 6.5, 9},
		{5000, 5, 6},
		{27500, 4, 4.5},
		{50000, 3, 3},
		{1e6, 3, 3},
		{-10, 15, 20},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.risk, BaseRisk(tt.wallet), 1e-9, "risk at %v", tt.wallet)
		assert.InDelta(t, tt.lev, BaseLeverage(tt.wallet), 1e-9, "leverage at %v", tt.wallet)
	}
}

func TestAdaptiveSizing(t *testing.T) {
	t.Parallel()

	f := func(v float64) *float64 { return &v }

	tests := []struct {
		name   string
		wallet float64
		vol    *float64
		risk   float64
		lev    int
		regime Regime
	}{
		{"scenario_c_normal", 50, nil, 13.5, 19, RegimeNormal},
		{"low_vol", 50, f(1.5), 16.2, 20, RegimeLow},
		{"normal_vol", 1000, f(3), 8, 12, RegimeNormal},
		{"high_vol", 1000, f(7), 5.6, 7, RegimeHigh},
		{"extreme_vol", 1000, f(12), 3.2, 4, RegimeExtreme},
		{"negative_change_is_magnitude", 1000, f(-12), 3.2, 4, RegimeExtreme},
		{"risk_floor", 100000, f(15), 3, 2, RegimeExtreme},
		{"tiny_wallet_low_vol_capped", 0, f(0.5), 18, 20, RegimeLow},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := AdaptiveSizing(tt.wallet, tt.vol)
			assert.InDelta(t, tt.risk, got.RiskPercent, 1e-9)
			assert.Equal(t, tt.lev, got.Leverage)
			assert.Equal(t, tt.regime, got.Regime)
			assert.GreaterOrEqual(t, got.RiskPercent, MinRiskPercent)
			assert.LessOrEqual(t, got.RiskPercent, MaxRiskPercent)
		})
	}
}

func TestSizePosition(t *testing.T) {
	t.Parallel()

	got := SizePosition(Inputs{
		Wallet:      1000,
		RiskPercent: 5,
		EntryPrice:  100,
		StopPrice:   95,
		TakeProfit:  115,
		Leverage:    10,
	})

	assert.InDelta(t, 50.0, got.RiskAmount, 1e-9)
	assert.InDelta(t, 5.0, got.StopDistance, 1e-9)
	assert.InDelta(t, 10.0, got.Quantity, 1e-9)
	assert.InDelta(t, 1000.0, got.Notional, 1e-9)
	assert.InDelta(t, 100.0, got.Margin, 1e-9)
	assert.InDelta(t, 3.0, got.RR, 1e-9)
	assert.InDelta(t, got.RiskAmount, PlannedRisk(got.Quantity, 100, 95), 1e-9)

	zero := SizePosition(Inputs{Wallet: 1000, RiskPercent: 5, EntryPrice: 100, StopPrice: 100})
	assert.Zero(t, zero.Quantity)
}

func TestRiskPct(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 5.0, RiskPct(50, 1000), 1e-9)
	assert.True(t, math.IsInf(RiskPct(50, 0), 1))
	assert.InDelta(t, 2.0, RR(100, 90, 120), 1e-9)
	assert.Zero(t, RR(100, 100, 120))
}
