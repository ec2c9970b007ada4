package cmd

import (
	"fmt"

	"github.com/spendforprogress/pledge/internal/cli"

	"github.com/spf13/cobra"
)

var campaignsCmd = &cobra.Command{
	Use:   "campaigns",
	Short: "List campaigns and donations made to each",
	RunE:  runCampaigns,
}

func init() {
	rootCmd.AddCommand(campaignsCmd)
}

func runCampaigns(_ *cobra.Command, _ []string) error {
	eng, _, closeFn, err := openEngine()
	if err != nil {
		return err
	}
	defer closeFn()

	donated := make(map[string]float64)
	counts := make(map[string]int)
	for _, cs := range eng.CampaignBreakdown() {
		donated[cs.Campaign] = cs.Donated
		counts[cs.Campaign] = cs.Count
	}

	var rows [][]string
	for _, c := range eng.Campaigns() {
		rows = append(rows, []string{
			c.Name,
			cli.FormatAmount(donated[c.Name]),
			fmt.Sprintf("%d", counts[c.Name]),
			c.URL,
		})
	}

	// Donations to campaigns outside the configured catalog still show up.
	known := make(map[string]bool)
	for _, c := range eng.Campaigns() {
		known[c.Name] = true
	}
	for _, cs := range eng.CampaignBreakdown() {
		if cs.Campaign == "" || known[cs.Campaign] {
			continue
		}
		rows = append(rows, []string{
			cs.Campaign,
			cli.FormatAmount(cs.Donated),
			fmt.Sprintf("%d", cs.Count),
			"",
		})
	}
	if unassigned, ok := donated[""]; ok {
		rows = append(rows, []string{"(no campaign)", cli.FormatAmount(unassigned), fmt.Sprintf("%d", counts[""]), ""})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Campaigns",
		Headers: []string{"Campaign", "Donated", "Gifts", "Link"},
		Rows:    rows,
	}))
	return nil
}
