package tui

import (
	"fmt"
	"strings"

	"github.com/spendforprogress/pledge/internal/cli"
	"github.com/spendforprogress/pledge/internal/tui/components"
	"github.com/spendforprogress/pledge/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderCampaignsTab(cw int) string {
	t := theme.Active

	nameStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	amountStyle := lipgloss.NewStyle().Foreground(t.Green)
	countStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	urlStyle := lipgloss.NewStyle().Foreground(t.Accent)
	barStyle := lipgloss.NewStyle().Foreground(t.Accent)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	donated := make(map[string]float64)
	counts := make(map[string]int)
	maxDonated := 0.0
	for _, cs := range a.eng.CampaignBreakdown() {
		donated[cs.Campaign] = cs.Donated
		counts[cs.Campaign] = cs.Count
		if cs.Donated > maxDonated {
			maxDonated = cs.Donated
		}
	}

	catalog := a.eng.Campaigns()
	seen := make(map[string]bool, len(catalog))
	names := make([]string, 0, len(catalog))
	for _, c := range catalog {
		names = append(names, c.Name)
		seen[c.Name] = true
	}
	// Donations to campaigns outside the catalog still get a row.
	for _, cs := range a.eng.CampaignBreakdown() {
		if cs.Campaign != "" && !seen[cs.Campaign] {
			names = append(names, cs.Campaign)
		}
	}

	urls := make(map[string]string, len(catalog))
	for _, c := range catalog {
		urls[c.Name] = c.URL
	}

	innerW := components.CardInnerWidth(cw)
	barMax := innerW - 40
	if barMax < 5 {
		barMax = 5
	}

	var body strings.Builder
	for i, name := range names {
		amount := donated[name]
		barLen := 0
		if maxDonated > 0 {
			barLen = int(amount / maxDonated * float64(barMax))
		}

		line := nameStyle.Render(fmt.Sprintf("%-18s", truncStr(name, 18))) + " " +
			amountStyle.Render(fmt.Sprintf("%10s", cli.FormatAmount(amount))) + " " +
			countStyle.Render(fmt.Sprintf("%3d gifts", counts[name])) + " " +
			barStyle.Render(strings.Repeat("█", barLen))
		body.WriteString(line)
		if url := urls[name]; url != "" {
			body.WriteString("\n" + countStyle.Render(strings.Repeat(" ", 19)) + urlStyle.Render(truncStr(url, innerW-20)))
		}
		if i < len(names)-1 {
			body.WriteString("\n")
		}
	}

	if unassigned := donated[""]; unassigned > 0 {
		body.WriteString("\n")
		body.WriteString(countStyle.Render(fmt.Sprintf("%-18s", "(no campaign)")) + " " +
			amountStyle.Render(fmt.Sprintf("%10s", cli.FormatAmount(unassigned))) + " " +
			countStyle.Render(fmt.Sprintf("%3d gifts", counts[""])))
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Campaigns", body.String(), cw))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("  Pick a campaign in the Pledge tab when you donate."))

	return b.String()
}
