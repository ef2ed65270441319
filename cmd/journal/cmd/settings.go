package cmd

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change fees, target ROI and the month-end split",
	Long: `Show or change settings. All values are percents.

Examples:
  journal settings show
  journal settings set --roi 100
  journal settings set --withdraw 50 --compound 50`,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show settings",
	Args:  cobra.NoArgs,
	RunE:  withSession(runSettingsShow),
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change settings; unnamed values are kept",
	Args:  cobra.NoArgs,
	RunE:  withSession(runSettingsSet),
}

var (
	setTaker    string
	setMaker    string
	setROI      string
	setWithdraw string
	setCompound string
)

func init() {
	rootCmd.AddCommand(settingsCmd)
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)

	f := settingsSetCmd.Flags()
	f.StringVar(&setTaker, "taker", "", "taker fee percent")
	f.StringVar(&setMaker, "maker", "", "maker fee percent")
	f.StringVar(&setROI, "roi", "", "monthly target ROI percent")
	f.StringVar(&setWithdraw, "withdraw", "", "percent of profit withdrawn at month end")
	f.StringVar(&setCompound, "compound", "", "percent of profit compounded at month end")
}

func runSettingsShow(cmd *cobra.Command, args []string, s *session) error {
	st := s.tracker.Settings()
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Taker fee:   %s%%\n", st.TakerFeePercent)
	fmt.Fprintf(out, "Maker fee:   %s%%\n", st.MakerFeePercent)
	fmt.Fprintf(out, "Target ROI:  %s%%\n", st.TargetROIPercent)
	fmt.Fprintf(out, "Withdraw:    %s%%\n", st.WithdrawalPercent)
	fmt.Fprintf(out, "Compound:    %s%%\n", st.CompoundPercent)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string, s *session) error {
	st := s.tracker.Settings()
	fields := []struct {
		name string
		src  string
		dst  *decimal.Decimal
	}{
		{"takerFee", setTaker, &st.TakerFeePercent},
		{"makerFee", setMaker, &st.MakerFeePercent},
		{"targetROI", setROI, &st.TargetROIPercent},
		{"withdrawalPercent", setWithdraw, &st.WithdrawalPercent},
		{"compoundPercent", setCompound, &st.CompoundPercent},
	}

	changed := false
	for _, f := range fields {
		if f.src == "" {
			continue
		}
		v, err := parseDecimal(f.name, f.src)
		if err != nil {
			return err
		}
		*f.dst = v
		changed = true
	}
	if !changed {
		return fmt.Errorf("nothing to set")
	}

	if err := s.tracker.UpdateSettings(cmd.Context(), st); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Settings saved")
	return runSettingsShow(cmd, args, s)
}
