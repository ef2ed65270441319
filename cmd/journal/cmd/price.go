package cmd

import (
	"fmt"

	"github.com/rustyeddy/cryptojournal/bybit"
	"github.com/rustyeddy/cryptojournal/config"
	"github.com/rustyeddy/cryptojournal/market"
	"github.com/spf13/cobra"
)

var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Show the live price and 24h change",
	Long: `Fetch the last traded price and 24h change from Bybit. When the feed is
unreachable the price shows as Offline.

Example:
  journal price --symbol ETHUSDT`,
	Args: cobra.NoArgs,
	RunE: runPrice,
}

var priceSymbol string

func init() {
	rootCmd.AddCommand(priceCmd)
	priceCmd.Flags().StringVarP(&priceSymbol, "symbol", "s", "", "symbol (default from config)")
}

func runPrice(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cmd.ErrOrStderr(), cfg)

	symbol := priceSymbol
	if symbol == "" {
		symbol = cfg.Ticker.Symbol
	}

	w := market.NewWatcher(newFeed(cfg), symbol, 0, log)
	st := w.Poll(cmd.Context())

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", symbol, st.Display())
	if st.Online {
		fmt.Fprintf(out, "24h change: %s%%\n", st.Ticker.ChangePercent.StringFixed(2))
	}
	return nil
}

func newFeed(cfg *config.Config) market.Feed {
	return bybit.NewClient(cfg.Ticker.BaseURL, cfg.Ticker.RequestsPerSecond)
}
