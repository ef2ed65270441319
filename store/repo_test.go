package store

import (
	"context"
	"testing"
	"time"

	"github.com/rustyeddy/cryptojournal/archive"
	"github.com/rustyeddy/cryptojournal/journal"
	"github.com/rustyeddy/cryptojournal/market"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestRepoLoadEmpty(t *testing.T) {
	t.Parallel()

	data, err := NewRepo(NewMemory(), nil).Load(context.Background())
	require.NoError(t, err)

	assert.True(t, data.Working.Key.IsZero())
	assert.Empty(t, data.Working.Trades)
	assert.True(t, journal.DefaultStartBalance.Equal(data.Working.StartBalance))
	assert.Empty(t, data.Archives)
	assert.True(t, d("120").Equal(data.Settings.TargetROIPercent))
}

func TestRepoSaveLoad(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	key := journal.MonthKey{Year: 2026, Month: time.March}
	rec, err := journal.NewTrade(journal.TradeInput{
		Symbol: "ETHUSDT", Entry: d("2000"), TakeProfit: d("2100"), StopLoss: d("1950"),
		Quantity: d("0.5"), Outcome: market.Win,
	}, time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC))
	require.NoError(t, err)

	w := journal.NewWorkingMonth(key, d("250.5")).Add(rec)
	a, _ := archive.ArchiveMonth(journal.NewWorkingMonth(journal.MonthKey{Year: 2026, Month: time.February}, d("100")).Add(rec), journal.DefaultSettings(), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	settings := journal.DefaultSettings().WithSplit(d("50"))

	repo := NewRepo(NewMemory(), nil)
	require.NoError(t, repo.Save(ctx, Data{Working: w, Archives: archive.Ledger{a}, Settings: settings}))

	got, err := repo.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, key, got.Working.Key)
	assert.True(t, d("250.5").Equal(got.Working.StartBalance))
	require.Len(t, got.Working.Trades, 1)
	assert.Equal(t, rec.ID, got.Working.Trades[0].ID)
	assert.True(t, d("50").Equal(got.Working.Trades[0].RealizedPnL))
	assert.True(t, rec.Timestamp.Equal(got.Working.Trades[0].Timestamp))

	require.Len(t, got.Archives, 1)
	assert.Equal(t, a.Key(), got.Archives[0].Key())
	assert.True(t, a.EndBalance.Equal(got.Archives[0].EndBalance))
	assert.Equal(t, a.Stats.ProfitFactor.Kind, got.Archives[0].Stats.ProfitFactor.Kind)

	assert.True(t, d("50").Equal(got.Settings.WithdrawalPercent))
	assert.True(t, d("50").Equal(got.Settings.CompoundPercent))
}

func TestRepoCorruptBlobsFallBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m := NewMemory()
	require.NoError(t, m.Set(ctx, KeyTrades, "{not json"))
	require.NoError(t, m.Set(ctx, KeyArchives, "42"))
	require.NoError(t, m.Set(ctx, KeySettings, `{"targetROI": 50}`))
	require.NoError(t, m.Set(ctx, KeyMonth, "last month"))
	require.NoError(t, m.Set(ctx, KeyStartBalance, "lots"))

	data, err := NewRepo(m, nil).Load(ctx)
	require.NoError(t, err)

	assert.Empty(t, data.Working.Trades)
	assert.Empty(t, data.Archives)
	assert.True(t, data.Working.Key.IsZero())
	assert.True(t, journal.DefaultStartBalance.Equal(data.Working.StartBalance))
	assert.True(t, d("50").Equal(data.Settings.TargetROIPercent))
	assert.True(t, d("67").Equal(data.Settings.WithdrawalPercent), "missing settings fields keep defaults")
}

func TestRepoLegacyBlobs(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m := NewMemory()
	require.NoError(t, m.Set(ctx, KeyTrades, `[{"id":1767225600000,"date":"2026-01-01T00:00:00.000Z","symbol":"BTCUSDT",
		"type":"long","entry":100,"sl":90,"tp":120,"exit":120,"leverage":10,"quantity":1,"pnl":20,"rrRatio":"2.00","result":"win"}]`))
	require.NoError(t, m.Set(ctx, KeyStartBalance, "100"))

	data, err := NewRepo(m, nil).Load(ctx)
	require.NoError(t, err)

	require.Len(t, data.Working.Trades, 1)
	tr := data.Working.Trades[0]
	assert.Equal(t, journal.TradeID("1767225600000"), tr.ID)
	assert.True(t, d("2").Equal(tr.RiskRewardRatio))
	assert.Equal(t, market.Win, tr.Outcome)
}

func TestRepoReset(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	repo := NewRepo(NewMemory(), nil)
	w := journal.NewWorkingMonth(journal.MonthKey{Year: 2026, Month: time.May}, d("300"))
	require.NoError(t, repo.SaveWorking(ctx, w))
	require.NoError(t, repo.Reset(ctx))

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, got.Working.Key.IsZero())
	assert.True(t, journal.DefaultStartBalance.Equal(got.Working.StartBalance))
}

func TestRepoDefaults(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	m := NewMemory()
	repo := NewRepo(m, nil)

	def := DefaultData()
	def.Working.StartBalance = d("500")
	def.Settings.TargetROIPercent = d("80")
	repo.SetDefaults(def)

	got, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, d("500").Equal(got.Working.StartBalance))
	assert.True(t, d("80").Equal(got.Settings.TargetROIPercent))

	require.NoError(t, m.Set(ctx, KeySettings, `{"makerFee": 0.01}`))
	got, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, d("80").Equal(got.Settings.TargetROIPercent), "stored settings merge over defaults")
	assert.True(t, d("0.01").Equal(got.Settings.MakerFeePercent))
}
