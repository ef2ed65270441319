package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/rustyeddy/cryptojournal/backup"
	"github.com/rustyeddy/cryptojournal/journal"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a JSON backup of the whole journal",
	Long: `Write the working month, every archive and the settings to a JSON
backup file, named backup_YYYY-MM-DD.json by default. Use -o - for stdout.`,
	Args: cobra.NoArgs,
	RunE: withSession(runExport),
}

var importCmd = &cobra.Command{
	Use:   "import <backup.json>",
	Short: "Replace the journal with a JSON backup",
	Long: `Replace the working month, archives and settings with the contents of a
backup file. A malformed file is rejected and nothing changes.`,
	Args: cobra.ExactArgs(1),
	RunE: withSession(runImport),
}

var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "Export the working month's trades as CSV",
	Args:  cobra.NoArgs,
	RunE:  withSession(runCSV),
}

var (
	exportOutput string
	csvOutput    string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(csvCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default backup_<date>.json)")
	csvCmd.Flags().StringVarP(&csvOutput, "output", "o", "", `output file (default stdout, "auto" for trades_<Month>_<Year>.csv)`)
}

func runExport(cmd *cobra.Command, args []string, s *session) error {
	b := s.tracker.Export()

	path := exportOutput
	if path == "" {
		path = backup.FileName(b.ExportDate)
	}
	return writeTo(cmd, path, func(w io.Writer) error {
		return backup.Encode(w, b)
	})
}

func runImport(cmd *cobra.Command, args []string, s *session) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open backup: %w", err)
	}
	defer f.Close()

	b, err := backup.Decode(f)
	if err != nil {
		return err
	}
	s.tracker.Import(cmd.Context(), b)

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d trades and %d archived months from %s\n",
		len(b.CurrentMonthTrades), len(b.MonthlyArchives), args[0])
	return nil
}

func runCSV(cmd *cobra.Command, args []string, s *session) error {
	w := s.tracker.State().Working
	path := csvOutput
	if path == "auto" {
		path = journal.CSVFileName(w.Key)
	}
	return writeTo(cmd, path, func(out io.Writer) error {
		return journal.WriteCSV(out, w.Trades, nil)
	})
}
