package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatTradeOrg renders a TradeRecord as an Org-mode block for a personal
// journal. Facts go in the PROPERTIES drawer; the narrative headings are left
// for the trader to fill in.
func FormatTradeOrg(t TradeRecord) string {
	heading := fmt.Sprintf("** Trade: %s %s (%s)", t.Symbol, t.Direction.Label(), shortID(string(t.ID)))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TRADE_ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":SYMBOL: %s\n", t.Symbol))
	b.WriteString(fmt.Sprintf(":DIRECTION: %s\n", t.Direction))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %s\n", t.EntryPrice))
	b.WriteString(fmt.Sprintf(":TAKE_PROFIT: %s\n", t.TakeProfit))
	b.WriteString(fmt.Sprintf(":STOP_LOSS: %s\n", t.StopLoss))
	b.WriteString(fmt.Sprintf(":EXIT_PRICE: %s\n", t.ExitPrice))
	b.WriteString(fmt.Sprintf(":QUANTITY: %s\n", t.Quantity))
	b.WriteString(fmt.Sprintf(":LEVERAGE: %sx\n", t.Leverage))
	b.WriteString(fmt.Sprintf(":ENTERED: %s\n", t.Timestamp.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":REALIZED_PL: %s\n", t.RealizedPnL.StringFixed(2)))
	b.WriteString(fmt.Sprintf(":RR: %s\n", FormatRR(t)))
	b.WriteString(fmt.Sprintf(":RESULT: %s\n", t.Outcome.Label()))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []TradeRecord) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}
