package cmd

import (
	"fmt"
	"strconv"

	"github.com/rustyeddy/cryptojournal/goal"
	"github.com/rustyeddy/cryptojournal/risk"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var sizeCmd = &cobra.Command{
	Use:   "size",
	Short: "Suggest risk, leverage and position size",
	Long: `Suggest a risk percentage and leverage for a wallet, adjusted for the
24h volatility of the market, and size a position from entry and stop.

The wallet defaults to the month's start balance. Volatility comes from
--vol, or from the live ticker with --live, and is treated as normal
when neither is given.

Examples:
  journal size
  journal size --wallet 1000 --vol 4.2
  journal size --live --entry 97000 --sl 96000 --tp 99000`,
	Args: cobra.NoArgs,
	RunE: withSession(runSize),
}

var (
	sizeWallet string
	sizeVol    string
	sizeLive   bool
	sizeEntry  string
	sizeSL     string
	sizeTP     string
)

func init() {
	rootCmd.AddCommand(sizeCmd)

	sizeCmd.Flags().StringVarP(&sizeWallet, "wallet", "w", "", "wallet balance (default: month start balance)")
	sizeCmd.Flags().StringVar(&sizeVol, "vol", "", "24h volatility in percent")
	sizeCmd.Flags().BoolVar(&sizeLive, "live", false, "read volatility from the live ticker")
	sizeCmd.Flags().StringVarP(&sizeEntry, "entry", "e", "", "entry price")
	sizeCmd.Flags().StringVar(&sizeSL, "sl", "", "stop loss price")
	sizeCmd.Flags().StringVar(&sizeTP, "tp", "", "take profit price")
}

func runSize(cmd *cobra.Command, args []string, s *session) error {
	wallet := s.tracker.StartBalance()
	if sizeWallet != "" {
		w, err := parseDecimal("wallet", sizeWallet)
		if err != nil {
			return err
		}
		wallet = w
	}
	if !wallet.IsPositive() {
		return fmt.Errorf("wallet must be positive")
	}

	var vol *float64
	switch {
	case sizeVol != "":
		v, err := strconv.ParseFloat(sizeVol, 64)
		if err != nil {
			return fmt.Errorf("vol: %w", err)
		}
		vol = &v
	case sizeLive:
		t, err := newFeed(s.cfg).Ticker(cmd.Context(), s.cfg.Ticker.Symbol)
		if err != nil {
			s.log.Warn("volatility unavailable, using normal regime", "error", err)
			break
		}
		v := t.Volatility()
		vol = &v
	}

	out := cmd.OutOrStdout()
	sz := risk.AdaptiveSizing(wallet.InexactFloat64(), vol)
	target := goal.Target(wallet, s.tracker.Settings())

	fmt.Fprintf(out, "Wallet:         %s\n", money(wallet))
	if vol != nil {
		fmt.Fprintf(out, "Volatility:     %.2f%% (%s)\n", *vol, sz.Regime)
	} else {
		fmt.Fprintf(out, "Volatility:     unknown (%s)\n", sz.Regime)
	}
	fmt.Fprintf(out, "Risk:           %.2f%% (%s)\n", sz.RiskPercent, money(decimalOf(sz.RiskAmount)))
	fmt.Fprintf(out, "Leverage:       %dx\n", sz.Leverage)
	fmt.Fprintf(out, "Target profit:  %s\n", money(target))
	fmt.Fprintf(out, "Target balance: %s\n", money(wallet.Add(target)))

	entry, err := parseDecimal("entry", sizeEntry)
	if err != nil {
		return err
	}
	sl, err := parseDecimal("sl", sizeSL)
	if err != nil {
		return err
	}
	tp, err := parseDecimal("tp", sizeTP)
	if err != nil {
		return err
	}
	if !entry.IsPositive() || !sl.IsPositive() {
		return nil
	}

	pos := risk.SizePosition(risk.Inputs{
		Wallet:      wallet.InexactFloat64(),
		RiskPercent: sz.RiskPercent,
		EntryPrice:  entry.InexactFloat64(),
		StopPrice:   sl.InexactFloat64(),
		TakeProfit:  tp.InexactFloat64(),
		Leverage:    float64(sz.Leverage),
	})
	fmt.Fprintf(out, "\nQuantity:       %.6f\n", pos.Quantity)
	fmt.Fprintf(out, "Notional:       %s\n", money(decimalOf(pos.Notional)))
	fmt.Fprintf(out, "Margin:         %s\n", money(decimalOf(pos.Margin)))
	if pos.RR > 0 {
		fmt.Fprintf(out, "R:R:            1:%.2f\n", pos.RR)
	}
	return nil
}

func decimalOf(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f)
}
