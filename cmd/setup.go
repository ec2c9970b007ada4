package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spendforprogress/pledge/internal/config"

	"github.com/spf13/cobra"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	// Load existing config or defaults
	cfg, _ := config.Load()

	fmt.Println()
	fmt.Println("  Welcome to pledge!")
	fmt.Println("  For every purchase you log, you pledge to donate a share of it.")
	fmt.Println()

	// 1. Donation rate
	fmt.Println("  1. Donation rate")
	fmt.Printf("     Share of each purchase you pledge to donate. Current: %.0f%%\n", cfg.Pledge.DonationRate*100)
	fmt.Print("     > ")
	rateRaw, _ := reader.ReadString('\n')
	rateRaw = strings.TrimSuffix(strings.TrimSpace(rateRaw), "%")
	if rateRaw != "" {
		if pct, err := strconv.ParseFloat(rateRaw, 64); err == nil && pct > 0 && pct <= 100 {
			cfg.Pledge.DonationRate = pct / 100
		} else {
			fmt.Println("     Keeping current rate.")
		}
	}
	fmt.Println()

	// 2. Campaign requirement
	fmt.Println("  2. Require a campaign for flow donations?")
	fmt.Println("     (1) Yes, pick a campaign each time [default]")
	fmt.Println("     (2) No, allow donations without one")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	cfg.Pledge.RequireCampaign = strings.TrimSpace(choice) != "2"
	fmt.Println()

	// 3. When to record the purchase
	fmt.Println("  3. When should a purchase be recorded?")
	fmt.Println("     (1) Together with the donation at confirmation [default]")
	fmt.Println("     (2) As soon as its amount is entered")
	fmt.Print("     > ")
	choice, _ = reader.ReadString('\n')
	cfg.Pledge.RecordOnSubmit = strings.TrimSpace(choice) == "2"
	fmt.Println()

	// 4. Theme
	fmt.Println("  4. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Tokyo Night")
	fmt.Println("     (4) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		cfg.Appearance.Theme = "tokyo-night"
	case "4":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	// Save
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved to %s\n", config.Path())
	fmt.Println("  Run `pledge setup` anytime to reconfigure.")
	fmt.Println()

	return nil
}
