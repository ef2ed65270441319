package cmd

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rustyeddy/cryptojournal/archive"
	"github.com/rustyeddy/cryptojournal/backup"
	"github.com/rustyeddy/cryptojournal/config"
	"github.com/rustyeddy/cryptojournal/journal"
	"github.com/rustyeddy/cryptojournal/market"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Commands share package-level flag variables, so these tests run serially
// and reset every flag before each invocation.

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// run executes the CLI against db and returns stdout.
func run(t *testing.T, db string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(append([]string{"--db", db, "--log-level", "error"}, args...))

	err := rootCmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, db string, args ...string) string {
	t.Helper()
	out, err := run(t, db, args...)
	require.NoError(t, err, "journal %s", strings.Join(args, " "))
	return out
}

func tempDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "journal.db")
}

var addWin = []string{"trade", "add",
	"--symbol", "btcusdt", "--type", "long",
	"--entry", "100", "--tp", "120", "--sl", "90",
	"--qty", "1", "--lev", "10", "--result", "win",
}

func TestTradeWorkflow(t *testing.T) {
	db := tempDB(t)

	out := mustRun(t, db, addWin...)
	assert.Contains(t, out, "✓ Recorded BTCUSDT WIN: P&L $20.00, R:R 1:2.00")

	out = mustRun(t, db, "trade", "list")
	assert.Contains(t, out, ":SYMBOL: BTCUSDT")
	assert.Contains(t, out, ":RESULT: WIN")

	out = mustRun(t, db, "stats")
	assert.Contains(t, out, "Trades:        1 (1 W / 0 L)")
	assert.Contains(t, out, "Win rate:      100.0%")
	assert.Contains(t, out, "Profit factor: ∞")

	out = mustRun(t, db, "stats", "--json")
	assert.Contains(t, out, `"total": 1`)

	out = mustRun(t, db, "goal")
	assert.Contains(t, out, "Target profit:  $120.00 (120%)")
	assert.Contains(t, out, "Current profit: $20.00")

	out = mustRun(t, db, "csv")
	assert.True(t, strings.HasPrefix(out, "Date,Symbol,Type,Entry,Exit,Qty,Lev,P&L,R:R,Result"))
	assert.Contains(t, out, "BTCUSDT,long,100,120,1,10,20.00,1:2.00,win")
}

func TestTradeDeleteAndClear(t *testing.T) {
	db := tempDB(t)

	mustRun(t, db, addWin...)
	mustRun(t, db, addWin...)

	_, err := run(t, db, "trade", "delete", "no-such-id")
	assert.Error(t, err)

	out := mustRun(t, db, "trade", "clear")
	assert.Contains(t, out, "Cleared 2 trades")

	out = mustRun(t, db, "trade", "list")
	assert.Equal(t, "No trades.\n", out)
}

func TestTradeAddRejectsBadInput(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{"not a number", []string{"--entry", "abc", "--qty", "1"}, "entry"},
		{"no quantity", []string{"--entry", "100"}, "quantity"},
		{"bad direction", []string{"--entry", "100", "--qty", "1", "--type", "sideways"}, "type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := tempDB(t)
			_, err := run(t, db, append([]string{"trade", "add"}, tt.args...)...)
			require.Error(t, err)

			var invalid *journal.InvalidInputError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.Equal(t, tt.field, invalid.Field)
		})
	}
}

func TestBalanceAndSettings(t *testing.T) {
	db := tempDB(t)

	assert.Equal(t, "$100.00\n", mustRun(t, db, "balance"))
	mustRun(t, db, "balance", "500")
	assert.Equal(t, "$500.00\n", mustRun(t, db, "balance"))

	_, err := run(t, db, "balance", "0")
	assert.Error(t, err)

	out := mustRun(t, db, "settings", "set", "--withdraw", "50", "--compound", "50")
	assert.Contains(t, out, "Withdraw:    50%")
	assert.Contains(t, out, "Target ROI:  120%")

	_, err = run(t, db, "settings", "set", "--withdraw", "80")
	assert.Error(t, err)
	_, err = run(t, db, "settings", "set")
	assert.Error(t, err)

	out = mustRun(t, db, "settings", "show")
	assert.Contains(t, out, "Withdraw:    50%")
}

func TestPreview(t *testing.T) {
	db := tempDB(t)

	out := mustRun(t, db, "preview", "--entry", "100", "--tp", "120", "--sl", "90", "--qty", "1", "--lev", "10")
	assert.Contains(t, out, "Position value: $100.00")
	assert.Contains(t, out, "TP profit:      $20.00")
	assert.Contains(t, out, "SL loss:        -$10.00")
	assert.Contains(t, out, "R:R:            1:2.00")
	assert.Contains(t, out, "Risk: $10.00")

	out = mustRun(t, db, "preview", "--entry", "100")
	assert.Contains(t, out, "Nothing to preview")

	out = mustRun(t, db, "trade", "list")
	assert.Equal(t, "No trades.\n", out)
}

func TestSize(t *testing.T) {
	db := tempDB(t)

	out := mustRun(t, db, "size", "--wallet", "1000", "--vol", "2", "--entry", "100", "--sl", "90", "--tp", "120")
	assert.Contains(t, out, "Wallet:         $1000.00")
	assert.Contains(t, out, "Volatility:     2.00%")
	assert.Contains(t, out, "Target profit:  $1200.00")
	assert.Contains(t, out, "Quantity:")
	assert.Contains(t, out, "R:R:            1:2.00")

	out = mustRun(t, db, "size")
	assert.Contains(t, out, "Wallet:         $100.00")
	assert.Contains(t, out, "Volatility:     unknown")
	assert.NotContains(t, out, "Quantity:")

	_, err := run(t, db, "size", "--wallet", "-1")
	assert.Error(t, err)
}

// writeBackup writes a backup holding one archived month, January 2020.
func writeBackup(t *testing.T) string {
	t.Helper()

	at := time.Date(2020, 1, 10, 12, 0, 0, 0, time.UTC)
	rec, err := journal.NewTrade(journal.TradeInput{
		Symbol: "ETHUSDT", Direction: market.Long,
		Entry: decimal.NewFromInt(100), TakeProfit: decimal.NewFromInt(150), StopLoss: decimal.NewFromInt(80),
		Quantity: decimal.NewFromInt(1), Leverage: decimal.NewFromInt(5), Outcome: market.Win,
	}, at)
	require.NoError(t, err)

	jan := journal.NewWorkingMonth(journal.MonthKeyOf(at), decimal.NewFromInt(100)).Add(rec)
	a, _ := archive.ArchiveMonth(jan, journal.DefaultSettings(), at.AddDate(0, 1, 0))

	now := time.Now()
	b := backup.New(journal.NewWorkingMonth(journal.MonthKeyOf(now), decimal.NewFromInt(133)),
		archive.Ledger{a}, journal.DefaultSettings(), now)

	path := filepath.Join(t.TempDir(), "backup.json")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, backup.Encode(f, b))
	require.NoError(t, f.Close())
	return path
}

func TestArchiveCommands(t *testing.T) {
	db := tempDB(t)

	out := mustRun(t, db, "archive", "list")
	assert.Equal(t, "No archived months.\n", out)
	_, err := run(t, db, "archive", "show", "2020-01")
	assert.Error(t, err)

	out = mustRun(t, db, "import", writeBackup(t))
	assert.Contains(t, out, "Imported 0 trades and 1 archived months")
	assert.Equal(t, "$133.00\n", mustRun(t, db, "balance"))

	out = mustRun(t, db, "archive", "list")
	assert.Contains(t, out, "Jan 2020")

	out = mustRun(t, db, "archive", "list", "--by-month")
	assert.Contains(t, out, "January")

	out = mustRun(t, db, "archive", "show", "2020-01")
	assert.Contains(t, out, "January 2020")
	assert.Contains(t, out, "Profit:        $50.00 (50.0%)")

	out = mustRun(t, db, "archive", "csv", "2020-01")
	assert.Contains(t, out, "ETHUSDT")

	orgPath := filepath.Join(t.TempDir(), "jan.org")
	mustRun(t, db, "archive", "org", "2020-01", "-o", orgPath)
	org, err := os.ReadFile(orgPath)
	require.NoError(t, err)
	assert.Contains(t, string(org), "* MONTH: January 2020")

	_, err = run(t, db, "archive", "show", "2020-13")
	assert.Error(t, err)

	mustRun(t, db, "archive", "delete", "2020-01")
	_, err = run(t, db, "archive", "delete", "2020-01")
	assert.Error(t, err)
}

func TestImportRejectsMalformed(t *testing.T) {
	db := tempDB(t)
	mustRun(t, db, addWin...)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`["not","a","backup"]`), 0o644))

	_, err := run(t, db, "import", path)
	var malformed *backup.MalformedImportError
	assert.True(t, errors.As(err, &malformed), "got %v", err)

	out := mustRun(t, db, "trade", "list")
	assert.Contains(t, out, "BTCUSDT")
}

func TestExportResetImport(t *testing.T) {
	db := tempDB(t)
	mustRun(t, db, addWin...)

	path := filepath.Join(t.TempDir(), "backup.json")
	mustRun(t, db, "export", "-o", path)

	_, err := run(t, db, "reset")
	assert.Error(t, err, "reset needs --yes")

	out := mustRun(t, db, "reset", "--yes")
	assert.Contains(t, out, "Journal reset")
	assert.Equal(t, "No trades.\n", mustRun(t, db, "trade", "list"))

	mustRun(t, db, "import", path)
	assert.Contains(t, mustRun(t, db, "trade", "list"), "BTCUSDT")
}

func TestRollover(t *testing.T) {
	db := tempDB(t)
	month := journal.MonthKeyOf(time.Now()).Label()

	out := mustRun(t, db, "rollover")
	assert.Contains(t, out, "Started "+month)

	out = mustRun(t, db, "rollover")
	assert.Contains(t, out, month+" is current")
}

func TestConfigInitValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.yaml")

	out := mustRun(t, tempDB(t), "config", "init", "-o", path)
	assert.Contains(t, out, "Created default configuration")

	out = mustRun(t, tempDB(t), "config", "validate", "-f", path)
	assert.Contains(t, out, "Configuration valid")
	assert.Contains(t, out, "Storage: sqlite")
}

func TestPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v5/market/tickers", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"retCode":0,"retMsg":"OK","result":{"category":"linear","list":[{"symbol":"BTCUSDT","lastPrice":"97123.6","price24hPcnt":"0.025"}]},"time":1700000000000}`))
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Ticker.BaseURL = srv.URL
	cfg.Ticker.RequestsPerSecond = 0
	path := filepath.Join(t.TempDir(), "journal.yaml")
	require.NoError(t, cfg.SaveToFile(path))

	out := mustRun(t, tempDB(t), "--config", path, "price")
	assert.Contains(t, out, "BTCUSDT $97124")
	assert.Contains(t, out, "24h change: 2.50%")
}

func TestPriceOffline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := config.Default()
	cfg.Ticker.BaseURL = srv.URL
	path := filepath.Join(t.TempDir(), "journal.yaml")
	require.NoError(t, cfg.SaveToFile(path))

	out := mustRun(t, tempDB(t), "--config", path, "price")
	assert.Equal(t, "BTCUSDT Offline\n", out)
}

func TestVersion(t *testing.T) {
	out := mustRun(t, tempDB(t), "version")
	assert.Equal(t, "journal version "+version+"\n", out)
}
