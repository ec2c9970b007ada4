package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spendforprogress/pledge/internal/cli"
	"github.com/spendforprogress/pledge/internal/ledger"

	"github.com/spf13/cobra"
)

var (
	flagNote     string
	flagCampaign string
)

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a purchase or donation directly",
}

var logPurchaseCmd = &cobra.Command{
	Use:   "purchase <amount>",
	Short: "Record a purchase",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogPurchase,
}

var logDonationCmd = &cobra.Command{
	Use:   "donation <amount>",
	Short: "Record a donation",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogDonation,
}

func init() {
	logPurchaseCmd.Flags().StringVar(&flagNote, "note", "", "Optional description")
	logDonationCmd.Flags().StringVar(&flagNote, "note", "", "Optional description")
	logDonationCmd.Flags().StringVarP(&flagCampaign, "campaign", "c", "", "Campaign the donation went to")

	logCmd.AddCommand(logPurchaseCmd)
	logCmd.AddCommand(logDonationCmd)
	rootCmd.AddCommand(logCmd)
}

func parseAmount(arg string) (float64, error) {
	amount, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %w", arg, ledger.ErrInvalidAmount)
	}
	return amount, nil
}

func runLogPurchase(_ *cobra.Command, args []string) error {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}

	eng, _, closeFn, err := openEngine()
	if err != nil {
		return err
	}
	defer closeFn()

	entry, err := eng.RecordManualPurchase(amount, flagNote)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidAmount) {
			return fmt.Errorf("amount must be greater than zero")
		}
		return err
	}

	progress := eng.Progress()
	fmt.Printf("  Logged purchase of %s.\n", cli.FormatAmount(entry.Amount))
	fmt.Printf("  Your pledge target is now %s.\n", cli.FormatAmount(progress.Target))

	warnDegraded(eng)
	return nil
}

func runLogDonation(_ *cobra.Command, args []string) error {
	amount, err := parseAmount(args[0])
	if err != nil {
		return err
	}

	eng, _, closeFn, err := openEngine()
	if err != nil {
		return err
	}
	defer closeFn()

	entry, err := eng.RecordManualDonation(amount, flagCampaign, flagNote)
	if err != nil {
		if errors.Is(err, ledger.ErrInvalidAmount) {
			return fmt.Errorf("amount must be greater than zero")
		}
		return err
	}

	if entry.Campaign != "" {
		fmt.Printf("  Logged donation of %s to %s.\n", cli.FormatAmount(entry.Amount), entry.Campaign)
	} else {
		fmt.Printf("  Logged donation of %s.\n", cli.FormatAmount(entry.Amount))
	}
	progress := eng.Progress()
	fmt.Printf("  Progress: %s (%s)\n", cli.FormatPercent(progress.PercentUncapped), cli.FormatStatus(progress.Status))

	warnDegraded(eng)
	return nil
}
