package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Erase all trades, archives and settings",
	Long: `Erase everything in the journal store and start the current month from
the default balance. This cannot be undone; export a backup first.

Example:
  journal export && journal reset --yes`,
	Args: cobra.NoArgs,
	RunE: withSession(runReset),
}

var resetYes bool

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "confirm the reset")
}

func runReset(cmd *cobra.Command, args []string, s *session) error {
	if !resetYes {
		return fmt.Errorf("reset erases all data; re-run with --yes to confirm")
	}
	s.tracker.Reset(cmd.Context())
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Journal reset, %s starts at %s\n",
		s.tracker.State().Working.Key.Label(), money(s.tracker.StartBalance()))
	return nil
}
