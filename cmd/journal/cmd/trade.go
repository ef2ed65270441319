package cmd

import (
	"fmt"

	"github.com/rustyeddy/cryptojournal/journal"
	"github.com/rustyeddy/cryptojournal/market"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Record and manage trades in the current month",
	Long: `Record and manage trades in the open working month.

Subcommands:
  add    - Record a trade
  list   - List trades (optionally for today or this week)
  delete - Delete a trade by ID
  clear  - Delete every trade of the working month

Examples:
  journal trade add --symbol BTCUSDT --type long --entry 97000 --tp 99000 --sl 96000 --qty 0.01 --lev 10 --result win
  journal trade list --period week
  journal trade delete 01J8Z3K7W5Q4F2N8X6V0M1R9TB`,
}

var tradeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a trade",
	Args:  cobra.NoArgs,
	RunE:  withSession(runTradeAdd),
}

var tradeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades of the working month, newest first",
	Args:  cobra.NoArgs,
	RunE:  withSession(runTradeList),
}

var tradeDeleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Delete a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  withSession(runTradeDelete),
}

var tradeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every trade of the working month",
	Args:  cobra.NoArgs,
	RunE:  withSession(runTradeClear),
}

// tradeFlags are the trade entry fields shared by add and preview.
type tradeFlags struct {
	symbol    string
	direction string
	entry     string
	tp        string
	sl        string
	qty       string
	lev       string
	result    string
}

func (f *tradeFlags) register(c *cobra.Command, withResult bool) {
	c.Flags().StringVarP(&f.symbol, "symbol", "s", "", "symbol, e.g. BTCUSDT")
	c.Flags().StringVarP(&f.direction, "type", "t", string(market.Long), "long or short")
	c.Flags().StringVarP(&f.entry, "entry", "e", "", "entry price (required)")
	c.Flags().StringVar(&f.tp, "tp", "", "take profit price")
	c.Flags().StringVar(&f.sl, "sl", "", "stop loss price")
	c.Flags().StringVarP(&f.qty, "qty", "q", "", "quantity (required)")
	c.Flags().StringVarP(&f.lev, "lev", "l", "1", "leverage")
	if withResult {
		c.Flags().StringVarP(&f.result, "result", "r", string(market.Pending), "win, loss, breakeven or pending")
	}
}

func (f *tradeFlags) input() (journal.TradeInput, error) {
	in := journal.TradeInput{
		Symbol:    f.symbol,
		Direction: market.Direction(f.direction),
		Outcome:   market.Outcome(f.result),
	}
	fields := []struct {
		name string
		src  string
		dst  *decimal.Decimal
	}{
		{"entry", f.entry, &in.Entry},
		{"tp", f.tp, &in.TakeProfit},
		{"sl", f.sl, &in.StopLoss},
		{"quantity", f.qty, &in.Quantity},
		{"leverage", f.lev, &in.Leverage},
	}
	for _, fl := range fields {
		v, err := parseDecimal(fl.name, fl.src)
		if err != nil {
			return journal.TradeInput{}, err
		}
		*fl.dst = v
	}
	return in, nil
}

// parseDecimal reads an optional number; empty is zero.
func parseDecimal(field, s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &journal.InvalidInputError{Field: field, Reason: fmt.Sprintf("%q is not a number", s)}
	}
	return d, nil
}

var (
	addFlags   tradeFlags
	listPeriod  string
)

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeAddCmd)
	tradeCmd.AddCommand(tradeListCmd)
	tradeCmd.AddCommand(tradeDeleteCmd)
	tradeCmd.AddCommand(tradeClearCmd)

	addFlags.register(tradeAddCmd, true)
	tradeListCmd.Flags().StringVarP(&listPeriod, "period", "p", string(journal.PeriodAll), "all, today, week or month")
}

func runTradeAdd(cmd *cobra.Command, args []string, s *session) error {
	in, err := addFlags.input()
	if err != nil {
		return err
	}

	rec, err := s.tracker.AddTrade(cmd.Context(), in)
	if err != nil {
		return fmt.Errorf("add trade: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Recorded %s %s: P&L %s, R:R %s\n",
		rec.Symbol, rec.Outcome.Label(), money(rec.RealizedPnL), journal.FormatRR(rec))
	fmt.Fprintf(cmd.OutOrStdout(), "  ID: %s\n", rec.ID)
	return nil
}

func runTradeList(cmd *cobra.Command, args []string, s *session) error {
	p, err := journal.ParsePeriod(listPeriod)
	if err != nil {
		return err
	}

	trades := s.tracker.Trades(p)
	if len(trades) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No trades.")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(trades))
	return nil
}

func runTradeDelete(cmd *cobra.Command, args []string, s *session) error {
	id := journal.TradeID(args[0])
	if !s.tracker.DeleteTrade(cmd.Context(), id) {
		return fmt.Errorf("trade %s not found", id)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted trade %s\n", id)
	return nil
}

func runTradeClear(cmd *cobra.Command, args []string, s *session) error {
	n := len(s.tracker.Trades(journal.PeriodAll))
	s.tracker.ClearTrades(cmd.Context())
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Cleared %d trades\n", n)
	return nil
}

func money(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-$" + d.Abs().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}
