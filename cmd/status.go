package cmd

import (
	"fmt"

	"github.com/spendforprogress/pledge/internal/cli"
	"github.com/spendforprogress/pledge/internal/model"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show totals and progress toward your pledge target",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(_ *cobra.Command, _ []string) error {
	eng, cfg, closeFn, err := openEngine()
	if err != nil {
		return err
	}
	defer closeFn()

	totals := eng.Totals()
	progress := eng.Progress()

	fmt.Println()
	fmt.Println(cli.RenderTitle("#SPENDFORPROGRESS  Pledge Tracker"))
	fmt.Println()

	ratePct := cfg.Pledge.DonationRate * 100
	rows := [][]string{
		{"Total Purchases", cli.FormatAmount(totals.Purchases)},
		{"Total Donations", cli.FormatAmount(totals.Donations)},
		{"---"},
		{fmt.Sprintf("Target (%.0f%%)", ratePct), cli.FormatAmount(progress.Target)},
		{"Progress", cli.FormatPercent(progress.PercentUncapped)},
		{"Status", cli.FormatStatus(progress.Status)},
	}

	if goal, ok := eng.DonationGoal(); ok {
		rows = append(rows, []string{"---"}, []string{"Personal Goal", cli.FormatAmount(goal)})
	}

	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}))

	fmt.Println()
	fmt.Println("  " + cli.RenderProgressBar(progress.PercentCapped, 40))

	if progress.Status == model.StatusOnTrack {
		fmt.Println(cli.GreenStyle.Render("  You're meeting or exceeding your donation target!"))
	} else if progress.Target > 0 {
		remaining := progress.Target - totals.Donations
		fmt.Println(cli.OrangeStyle.Render(
			fmt.Sprintf("  %s more to reach your target.", cli.FormatAmount(remaining))))
	} else {
		fmt.Println("  Log a purchase to start your pledge.")
	}
	fmt.Println()

	warnDegraded(eng)
	return nil
}
