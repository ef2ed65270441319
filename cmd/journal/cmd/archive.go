package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rustyeddy/cryptojournal/archive"
	"github.com/rustyeddy/cryptojournal/journal"
	"github.com/spf13/cobra"
)

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Browse and export closed months",
	Long: `Browse and export months that were archived at rollover.

Months are named YYYY-MM.

Examples:
  journal archive list
  journal archive list --by-month
  journal archive show 2026-01
  journal archive csv 2026-01 -o january.csv
  journal archive org 2026-01 >> journal.org`,
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived months",
	Args:  cobra.NoArgs,
	RunE:  withSession(runArchiveList),
}

var archiveShowCmd = &cobra.Command{
	Use:   "show <YYYY-MM>",
	Short: "Show the summary of an archived month",
	Args:  cobra.ExactArgs(1),
	RunE:  withSession(runArchiveShow),
}

var archiveDeleteCmd = &cobra.Command{
	Use:   "delete <YYYY-MM>",
	Short: "Delete an archived month",
	Args:  cobra.ExactArgs(1),
	RunE:  withSession(runArchiveDelete),
}

var archiveCSVCmd = &cobra.Command{
	Use:   "csv <YYYY-MM>",
	Short: "Export an archived month's trades as CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  withSession(runArchiveCSV),
}

var archiveOrgCmd = &cobra.Command{
	Use:   "org <YYYY-MM>",
	Short: "Render an archived month as an Org-mode report",
	Args:  cobra.ExactArgs(1),
	RunE:  withSession(runArchiveOrg),
}

var (
	archiveByMonth bool
	archiveOutput  string
)

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveShowCmd)
	archiveCmd.AddCommand(archiveDeleteCmd)
	archiveCmd.AddCommand(archiveCSVCmd)
	archiveCmd.AddCommand(archiveOrgCmd)

	archiveListCmd.Flags().BoolVar(&archiveByMonth, "by-month", false, "group by calendar month across years")
	archiveCSVCmd.Flags().StringVarP(&archiveOutput, "output", "o", "", "output file (default stdout)")
	archiveOrgCmd.Flags().StringVarP(&archiveOutput, "output", "o", "", "output file (default stdout)")
}

func findArchive(s *session, arg string) (archive.Archive, error) {
	k, err := journal.ParseMonthKey(arg)
	if err != nil {
		return archive.Archive{}, fmt.Errorf("month: %w", err)
	}
	a, ok := s.tracker.Archive(k)
	if !ok {
		return archive.Archive{}, fmt.Errorf("no archive for %s", k.Label())
	}
	return a, nil
}

func runArchiveList(cmd *cobra.Command, args []string, s *session) error {
	ledger := s.tracker.Archives()
	out := cmd.OutOrStdout()
	if len(ledger) == 0 {
		fmt.Fprintln(out, "No archived months.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if !archiveByMonth {
		writeArchiveRows(tw, ledger.Chronological())
		return tw.Flush()
	}

	for _, g := range ledger.ByCalendarMonth() {
		if len(g.Archives) == 0 {
			continue
		}
		fmt.Fprintf(tw, "%s\n", g.Name)
		writeArchiveRows(tw, g.Archives)
	}
	return tw.Flush()
}

func writeArchiveRows(w io.Writer, archives []archive.Archive) {
	fmt.Fprintln(w, "MONTH\tTRADES\tWIN%\tSTART\tPROFIT\tRETURN\tWITHDRAWN\tEND")
	for _, a := range archives {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\t%s%%\t%s\t%s\n",
			a.Key().Short(),
			len(a.Trades),
			a.Stats.WinRatePercent.StringFixed(1),
			money(a.StartBalance),
			money(a.ActualProfit),
			a.ReturnPercent().StringFixed(1),
			money(a.WithdrawnAmount),
			money(a.EndBalance),
		)
	}
}

func runArchiveShow(cmd *cobra.Command, args []string, s *session) error {
	a, err := findArchive(s, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", a.Key().Label())
	fmt.Fprintf(out, "Archived:      %s\n", a.ArchivedAt.Local().Format("2006-01-02 15:04"))
	fmt.Fprintf(out, "Trades:        %d (%d W / %d L, %s%%)\n", a.Stats.TotalCount, a.Stats.WinCount, a.Stats.LossCount, a.Stats.WinRatePercent.StringFixed(1))
	fmt.Fprintf(out, "Start balance: %s\n", money(a.StartBalance))
	fmt.Fprintf(out, "Target:        %s\n", money(a.TargetProfit))
	fmt.Fprintf(out, "Profit:        %s (%s%%)\n", money(a.ActualProfit), a.ReturnPercent().StringFixed(1))
	fmt.Fprintf(out, "Withdrawn:     %s\n", money(a.WithdrawnAmount))
	fmt.Fprintf(out, "Compounded:    %s\n", money(a.CompoundedAmount))
	fmt.Fprintf(out, "End balance:   %s\n", money(a.EndBalance))
	fmt.Fprintf(out, "Profit factor: %s\n", a.Stats.ProfitFactor)
	return nil
}

func runArchiveDelete(cmd *cobra.Command, args []string, s *session) error {
	k, err := journal.ParseMonthKey(args[0])
	if err != nil {
		return fmt.Errorf("month: %w", err)
	}
	if !s.tracker.DeleteArchive(cmd.Context(), k) {
		return fmt.Errorf("no archive for %s", k.Label())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted archive %s\n", k.Label())
	return nil
}

func runArchiveCSV(cmd *cobra.Command, args []string, s *session) error {
	a, err := findArchive(s, args[0])
	if err != nil {
		return err
	}
	return writeTo(cmd, archiveOutput, func(w io.Writer) error {
		return journal.WriteCSV(w, a.Trades, nil)
	})
}

func runArchiveOrg(cmd *cobra.Command, args []string, s *session) error {
	a, err := findArchive(s, args[0])
	if err != nil {
		return err
	}
	return writeTo(cmd, archiveOutput, func(w io.Writer) error {
		return archive.WriteOrg(w, a)
	})
}
