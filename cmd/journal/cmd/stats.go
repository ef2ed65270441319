package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/rustyeddy/cryptojournal/journal"
	"github.com/rustyeddy/cryptojournal/stats"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics for the working month",
	Args:  cobra.NoArgs,
	RunE:  withSession(runStats),
}

var goalCmd = &cobra.Command{
	Use:   "goal",
	Short: "Show progress toward the monthly profit target",
	Args:  cobra.NoArgs,
	RunE:  withSession(runGoal),
}

var balanceCmd = &cobra.Command{
	Use:   "balance [amount]",
	Short: "Show or set the month's start balance",
	Args:  cobra.MaximumNArgs(1),
	RunE:  withSession(runBalance),
}

var (
	statsJSON   bool
	statsPeriod string
)

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(balanceCmd)

	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "print as JSON")
	statsCmd.Flags().StringVarP(&statsPeriod, "period", "p", string(journal.PeriodAll), "all, today, week or month")
}

func runStats(cmd *cobra.Command, args []string, s *session) error {
	p, err := journal.ParsePeriod(statsPeriod)
	if err != nil {
		return err
	}
	snap := stats.Compute(s.tracker.Trades(p))

	out := cmd.OutOrStdout()
	if statsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	streak := "-"
	if snap.CurrentStreakType != stats.StreakNone {
		streak = fmt.Sprintf("%d%s", snap.CurrentStreakLength, snap.CurrentStreakType)
	}
	fmt.Fprintf(out, "Trades:        %d (%d W / %d L)\n", snap.TotalCount, snap.WinCount, snap.LossCount)
	fmt.Fprintf(out, "Win rate:      %s%%\n", snap.WinRatePercent.StringFixed(1))
	fmt.Fprintf(out, "Total P&L:     %s\n", money(snap.TotalPnL))
	fmt.Fprintf(out, "Avg R:R:       1:%s\n", snap.AverageRiskReward.StringFixed(2))
	fmt.Fprintf(out, "Best / worst:  %s / %s\n", money(snap.BestTradePnL), money(snap.WorstTradePnL))
	fmt.Fprintf(out, "Avg win/loss:  %s / %s\n", money(snap.AverageWin), money(snap.AverageLoss))
	fmt.Fprintf(out, "Profit factor: %s\n", snap.ProfitFactor)
	fmt.Fprintf(out, "Streak:        %s\n", streak)
	return nil
}

func runGoal(cmd *cobra.Command, args []string, s *session) error {
	g := s.tracker.Goal()
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "Month:          %s\n", s.tracker.State().Working.Key.Label())
	fmt.Fprintf(out, "Start balance:  %s\n", money(s.tracker.StartBalance()))
	fmt.Fprintf(out, "Target profit:  %s (%s%%)\n", money(g.TargetProfit), s.tracker.Settings().TargetROIPercent.String())
	fmt.Fprintf(out, "Target balance: %s\n", money(g.TargetBalance))
	fmt.Fprintf(out, "Current profit: %s\n", money(g.CurrentProfit))
	fmt.Fprintf(out, "Balance:        %s\n", money(g.CurrentBalance))
	fmt.Fprintf(out, "Progress:       %s%%\n", g.Percent.StringFixed(1))
	if g.Achieved {
		fmt.Fprintln(out, "✓ Target reached")
	} else {
		fmt.Fprintf(out, "Remaining:      %s\n", money(g.Remaining))
	}
	return nil
}

func runBalance(cmd *cobra.Command, args []string, s *session) error {
	if len(args) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), money(s.tracker.StartBalance()))
		return nil
	}

	b, err := parseDecimal("balance", args[0])
	if err != nil {
		return err
	}
	if err := s.tracker.SetStartBalance(cmd.Context(), b); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Start balance set to %s\n", money(b))
	return nil
}
