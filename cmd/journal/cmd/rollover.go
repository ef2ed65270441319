package cmd

import (
	"fmt"

	"github.com/rustyeddy/cryptojournal/archive"
	"github.com/spf13/cobra"
)

var rolloverCmd = &cobra.Command{
	Use:   "rollover",
	Short: "Archive the stored month if the calendar has moved on",
	Long: `Compare the stored month with today and, when they differ, archive the
outgoing month and start the new one from the compounded balance.

Every command already does this on start; rollover reports what happened.`,
	Args: cobra.NoArgs,
	RunE: withSession(runRollover),
}

func init() {
	rootCmd.AddCommand(rolloverCmd)
}

func runRollover(cmd *cobra.Command, args []string, s *session) error {
	res := s.tracker.OpenedRollover()
	if !res.KeyChanged {
		// Nothing happened at open; check again in case the clock moved.
		var err error
		res, err = s.tracker.CheckRollover(cmd.Context())
		if err != nil {
			return fmt.Errorf("rollover: %w", err)
		}
	}
	reportRollover(cmd, s, res)
	return nil
}

func reportRollover(cmd *cobra.Command, s *session, res archive.Result) {
	out := cmd.OutOrStdout()
	month := s.tracker.State().Working.Key

	switch {
	case res.FirstRun:
		fmt.Fprintf(out, "Started %s\n", month.Label())
	case !res.KeyChanged:
		fmt.Fprintf(out, "%s is current, nothing to archive\n", month.Label())
	default:
		if a := res.Archived; a != nil {
			fmt.Fprintf(out, "✓ Archived %s: %d trades, profit %s, end balance %s\n",
				a.Key().Label(), len(a.Trades), money(a.ActualProfit), money(a.EndBalance))
		} else {
			fmt.Fprintln(out, "Previous month had no trades, nothing archived")
		}
		fmt.Fprintf(out, "Started %s with %s\n", month.Label(), money(s.tracker.StartBalance()))
	}
}
