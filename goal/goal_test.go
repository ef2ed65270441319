package goal

import (
	"testing"

	"github.com/rustyeddy/cryptojournal/journal"
	"github.com/rustyeddy/cryptojournal/stats"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCompute(t *testing.T) {
	t.Parallel()

	settings := journal.DefaultSettings()

	tests := []struct {
		name      string
		wallet    string
		pnl       string
		percent   string
		remaining string
		achieved  bool
	}{
		{"halfway", "100", "60", "50", "60", false},
		{"nothing yet", "100", "0", "0", "120", false},
		{"losing clamps to zero", "100", "-25", "0", "145", false},
		{"beaten clamps to hundred", "100", "200", "100", "-80", true},
		{"exactly on target", "100", "120", "100", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := Compute(d(tt.wallet), settings, stats.Snapshot{TotalPnL: d(tt.pnl)})

			assert.True(t, d("120").Equal(p.TargetProfit))
			assert.True(t, d(tt.percent).Equal(p.Percent), p.Percent.String())
			assert.True(t, d(tt.remaining).Equal(p.Remaining), p.Remaining.String())
			assert.True(t, d(tt.wallet).Add(d(tt.pnl)).Equal(p.CurrentBalance))
			assert.True(t, d("220").Equal(p.TargetBalance))
			assert.Equal(t, tt.achieved, p.Achieved)
		})
	}
}

func TestComputeZeroTarget(t *testing.T) {
	t.Parallel()

	p := Compute(decimal.Zero, journal.DefaultSettings(), stats.Snapshot{TotalPnL: d("15")})
	assert.True(t, p.TargetProfit.IsZero())
	assert.True(t, p.Percent.IsZero())
	assert.False(t, p.Achieved)
	assert.True(t, d("-15").Equal(p.Remaining))

	s := journal.DefaultSettings()
	s.TargetROIPercent = decimal.Zero
	p = Compute(d("500"), s, stats.Snapshot{TotalPnL: d("15")})
	assert.True(t, p.Percent.IsZero())
}

func TestPercentAlwaysClamped(t *testing.T) {
	t.Parallel()

	for _, pnl := range []string{"-1000", "-0.01", "0.5", "119.99", "1e6"} {
		p := Compute(d("100"), journal.DefaultSettings(), stats.Snapshot{TotalPnL: d(pnl)})
		assert.False(t, p.Percent.IsNegative(), pnl)
		assert.True(t, p.Percent.LessThanOrEqual(hundred), pnl)
	}
}
