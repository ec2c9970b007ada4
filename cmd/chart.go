package cmd

import (
	"fmt"

	"github.com/spendforprogress/pledge/internal/cli"

	"github.com/spf13/cobra"
)

var flagChartDays int

var chartCmd = &cobra.Command{
	Use:   "chart",
	Short: "Purchases vs donations over time",
	RunE:  runChart,
}

func init() {
	chartCmd.Flags().IntVarP(&flagChartDays, "days", "n", 30, "Time window in days")
	rootCmd.AddCommand(chartCmd)
}

func runChart(_ *cobra.Command, _ []string) error {
	eng, _, closeFn, err := openEngine()
	if err != nil {
		return err
	}
	defer closeFn()

	daily := eng.Daily(flagChartDays)

	purchases := make([]float64, len(daily))
	donations := make([]float64, len(daily))
	var anyActivity bool
	for i, d := range daily {
		purchases[i] = d.Purchases
		donations[i] = d.Donations
		if d.Purchases > 0 || d.Donations > 0 {
			anyActivity = true
		}
	}

	if !anyActivity {
		fmt.Printf("\n  No activity in the last %d days.\n", flagChartDays)
		return nil
	}

	fmt.Println()
	fmt.Printf("  Last %d days (oldest to newest)\n\n", flagChartDays)
	fmt.Printf("  Purchases  %s\n", cli.RenderSparkline(purchases))
	fmt.Printf("  Donations  %s\n", cli.RenderSparkline(donations))
	fmt.Println()

	totals := eng.Totals()
	fmt.Printf("  All time: %s purchased, %s donated\n",
		cli.FormatAmount(totals.Purchases), cli.FormatAmount(totals.Donations))
	return nil
}
