package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "journal",
	Short: "A crypto futures trading journal",
	Long: `Journal records crypto futures trades month by month.

It provides tools for:
  - Recording trades with derived exit price, P&L and R:R
  - Live trade previews and adaptive position sizing
  - Performance statistics and monthly profit goals
  - Automatic month-end archiving with withdraw/compound split
  - JSON backups, CSV and Org-mode reports
  - A live BTC ticker and a local JSON API`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var (
	cfgFile        string
	envFile        string
	logLevel       string
	storageBackend string
	dbPath         string
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	pf.StringVar(&envFile, "env", "", "env file with CRYPTOJOURNAL_* overrides (default .env when present)")
	pf.StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&storageBackend, "storage", "", "storage backend: memory, sqlite or redis")
	pf.StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB")
}
