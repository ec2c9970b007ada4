package cmd

import (
	"fmt"

	"github.com/spendforprogress/pledge/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.Path())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [Pledge]")
	fmt.Printf("    Donation rate:    %.0f%%\n", cfg.Pledge.DonationRate*100)
	fmt.Printf("    Require campaign: %v\n", cfg.Pledge.RequireCampaign)
	if cfg.Pledge.RecordOnSubmit {
		fmt.Println("    Record purchase:  when amount is entered")
	} else {
		fmt.Println("    Record purchase:  together with the donation")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Data directory: %s\n", config.DataDir(cfg))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  [Campaigns]")
	for _, c := range config.Catalog(cfg) {
		if c.URL != "" {
			fmt.Printf("    %s (%s)\n", c.Name, c.URL)
		} else {
			fmt.Printf("    %s\n", c.Name)
		}
	}
	fmt.Println()

	fmt.Println("  Run `pledge setup` to reconfigure.")
	return nil
}
