package cmd

import (
	"fmt"

	"github.com/rustyeddy/cryptojournal/risk"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview a trade before recording it",
	Long: `Show position value, P&L at take profit and stop loss, and R:R for a
planned trade, checked against the adaptive limits for the current balance.
Nothing is recorded.

Example:
  journal preview --type long --entry 97000 --tp 99000 --sl 96000 --qty 0.01 --lev 10`,
	Args: cobra.NoArgs,
	RunE: withSession(runPreview),
}

var previewFlags tradeFlags

func init() {
	rootCmd.AddCommand(previewCmd)
	previewFlags.register(previewCmd, false)
}

func runPreview(cmd *cobra.Command, args []string, s *session) error {
	in, err := previewFlags.input()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	p, ok := risk.PreviewTrade(in.Setup())
	if !ok {
		fmt.Fprintln(out, "Nothing to preview: set entry, quantity and a take profit or stop loss.")
		return nil
	}

	fmt.Fprintf(out, "Position value: %s\n", money(p.PositionValue))
	fmt.Fprintf(out, "TP profit:      %s\n", money(p.TPProfit))
	fmt.Fprintf(out, "SL loss:        %s\n", money(p.SLLoss))
	if p.HasRiskReward {
		fmt.Fprintf(out, "R:R:            1:%s\n", p.RiskReward.StringFixed(2))
	} else {
		fmt.Fprintln(out, "R:R:            -")
	}

	wallet := s.tracker.StartBalance()
	if !wallet.IsPositive() {
		return nil
	}
	sizing := risk.AdaptiveSizing(wallet.InexactFloat64(), nil)
	d := risk.Evaluate(risk.PolicyFor(sizing, risk.DefaultMinRR), in.Intent(wallet))

	fmt.Fprintf(out, "\nRisk: %s (%.1f%% of %s)\n", money(decimalOf(d.PlannedRisk)), d.PlannedRiskPct, money(wallet))
	if d.Allowed {
		fmt.Fprintln(out, "✓ Within limits")
		return nil
	}
	for _, v := range d.Violations {
		fmt.Fprintf(out, "⚠ %s: %s\n", v.Code, v.Msg)
	}
	return nil
}
