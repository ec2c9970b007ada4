package cmd

import (
	"fmt"

	"github.com/spendforprogress/pledge/internal/cli"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List all recorded purchases and donations",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	eng, _, closeFn, err := openEngine()
	if err != nil {
		return err
	}
	defer closeFn()

	entries := eng.History()
	if len(entries) == 0 {
		fmt.Println("\n  Nothing recorded yet. Run `pledge log purchase <amount>` or `pledge tui` to get started.")
		return nil
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		detail := e.Campaign
		if detail == "" {
			detail = e.Note
		}
		rows = append(rows, []string{
			cli.FormatDate(e.CreatedAt),
			cli.FormatKind(e.Kind),
			cli.FormatAmount(e.Amount),
			detail,
			cli.FormatSource(e.Source),
		})
	}

	totals := eng.Totals()
	rows = append(rows,
		[]string{"---"},
		[]string{"", "Purchases", cli.FormatAmount(totals.Purchases), "", ""},
		[]string{"", "Donations", cli.FormatAmount(totals.Donations), "", ""},
	)

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   fmt.Sprintf("History (%d entries)", len(entries)),
		Headers: []string{"Date", "Kind", "Amount", "Campaign/Note", "Source"},
		Rows:    rows,
	}))

	warnDegraded(eng)
	return nil
}
