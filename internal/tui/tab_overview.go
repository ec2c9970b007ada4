package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spendforprogress/pledge/internal/cli"
	"github.com/spendforprogress/pledge/internal/model"
	"github.com/spendforprogress/pledge/internal/tui/components"
	"github.com/spendforprogress/pledge/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const overviewChartDays = 14

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	totals := a.eng.Totals()
	progress := a.eng.Progress()
	var b strings.Builder

	// Row 1: Metric cards
	remaining := progress.Target - totals.Donations
	targetDetail := ""
	if remaining > 0 {
		targetDetail = cli.FormatAmount(remaining) + " to go"
	} else if progress.Target > 0 {
		targetDetail = "target met"
	}

	statusDetail := ""
	if goal, ok := a.eng.DonationGoal(); ok {
		statusDetail = "goal " + cli.FormatAmount(goal)
	}

	cards := []struct{ Label, Value, Detail string }{
		{"Purchases", cli.FormatAmount(totals.Purchases), fmt.Sprintf("%d entries", len(a.eng.History()))},
		{"Donations", cli.FormatAmount(totals.Donations), cli.FormatPercent(progress.PercentUncapped) + " of pledge"},
		{fmt.Sprintf("Target (%.0f%%)", a.eng.Rate()*100), cli.FormatAmount(progress.Target), targetDetail},
		{"Status", cli.FormatStatus(progress.Status), statusDetail},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: Pledge progress bar
	barW := components.CardInnerWidth(cw) - 20
	if barW < 10 {
		barW = 10
	}
	b.WriteString(components.ContentCard(
		"Pledge Progress",
		components.PledgeBar("Donated", progress.PercentUncapped/100, 8, barW),
		cw,
	))
	b.WriteString("\n")

	// Row 3: Purchases vs donations over the last two weeks
	daily := a.eng.Daily(overviewChartDays)
	purchases := make([]float64, len(daily))
	donations := make([]float64, len(daily))
	anyActivity := false
	for i, d := range daily {
		purchases[i] = d.Purchases
		donations[i] = d.Donations
		if d.Purchases > 0 || d.Donations > 0 {
			anyActivity = true
		}
	}
	if anyActivity {
		legendA := lipgloss.NewStyle().Foreground(t.Blue).Render("█ purchases")
		legendB := lipgloss.NewStyle().Foreground(t.Green).Render("█ donations")
		chart := components.PairedBars(purchases, donations, chartDateLabels(daily),
			t.Blue, t.Green, components.CardInnerWidth(cw), 8)
		b.WriteString(components.ContentCard(
			fmt.Sprintf("Last %d Days", overviewChartDays),
			legendA+"  "+legendB+"\n"+chart,
			cw,
		))
		b.WriteString("\n")
	}

	// Row 4: Recent activity
	b.WriteString(components.ContentCard("Recent", a.renderRecentEntries(components.CardInnerWidth(cw)), cw))

	return b.String()
}

func (a App) renderRecentEntries(innerW int) string {
	t := theme.Active
	entries := a.eng.History()
	if len(entries) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).
			Render("Nothing yet. Head to the Pledge tab to log your first purchase.")
	}

	dateStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	kindStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	amountStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	campaignStyle := lipgloss.NewStyle().Foreground(t.Accent)

	limit := 5
	if len(entries) < limit {
		limit = len(entries)
	}

	var b strings.Builder
	for i := 0; i < limit; i++ {
		e := entries[len(entries)-1-i] // newest first
		line := dateStyle.Render(cli.FormatDate(e.CreatedAt)) + "  " +
			kindStyle.Render(fmt.Sprintf("%-8s", cli.FormatKind(e.Kind))) + "  " +
			amountStyle.Render(fmt.Sprintf("%10s", cli.FormatAmount(e.Amount)))
		if e.Campaign != "" {
			line += "  " + campaignStyle.Render(truncStr(e.Campaign, innerW-36))
		}
		b.WriteString(line)
		if i < limit-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// chartDateLabels builds compact X-axis labels for a chronological day
// series. Month boundaries and the first bucket show the month
// abbreviation; everything else is the day number.
func chartDateLabels(days []model.DailyFlow) []string {
	labels := make([]string, len(days))
	prevMonth := time.Month(0)
	for i, d := range days {
		m := d.Date.Month()
		if i == 0 || m != prevMonth {
			labels[i] = d.Date.Format("Jan")
		} else {
			labels[i] = strconv.Itoa(d.Date.Day())
		}
		prevMonth = m
	}
	return labels
}
