package journal

import (
	"encoding/csv"
	"io"
	"strings"
	"time"
)

var CSVHeader = []string{"Date", "Symbol", "Type", "Entry", "Exit", "Qty", "Lev", "P&L", "R:R", "Result"}

const csvTimeLayout = "2006-01-02 15:04:05"

// CSVRow renders one trade in CSVHeader order. Times are shown in loc.
func CSVRow(t TradeRecord, loc *time.Location) []string {
	if loc == nil {
		loc = time.Local
	}

	exit := ""
	if !t.ExitPrice.IsZero() {
		exit = t.ExitPrice.String()
	}

	return []string{
		t.Timestamp.In(loc).Format(csvTimeLayout),
		t.Symbol,
		string(t.Direction),
		t.EntryPrice.String(),
		exit,
		t.Quantity.String(),
		t.Leverage.String(),
		t.RealizedPnL.StringFixed(2),
		FormatRR(t),
		string(t.Outcome),
	}
}

// FormatRR renders the ratio as "1:<value>".
func FormatRR(t TradeRecord) string {
	if t.RiskRewardRatio.IsZero() {
		return "1:0"
	}
	return "1:" + t.RiskRewardRatio.StringFixed(2)
}

// WriteCSV writes a header plus one row per trade.
func WriteCSV(w io.Writer, trades []TradeRecord, loc *time.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, t := range trades {
		if err := cw.Write(CSVRow(t, loc)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSVFileName is the download name for a month, e.g. trades_January_2026.csv.
func CSVFileName(k MonthKey) string {
	return "trades_" + strings.ReplaceAll(k.Label(), " ", "_") + ".csv"
}
