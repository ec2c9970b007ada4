package tui

import (
	"fmt"
	"strings"

	"github.com/spendforprogress/pledge/internal/cli"
	"github.com/spendforprogress/pledge/internal/model"
	"github.com/spendforprogress/pledge/internal/tui/components"
	"github.com/spendforprogress/pledge/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// historyState tracks the history tab cursor. The cursor indexes the
// newest-first display order, not the ledger's chronological order.
type historyState struct {
	cursor int
}

func (a App) renderHistoryTab(cw, contentH int) string {
	t := theme.Active
	entries := a.eng.History()

	if len(entries) == 0 {
		return components.ContentCard("History",
			lipgloss.NewStyle().Foreground(t.TextDim).Render("No entries recorded yet."), cw)
	}

	// Newest first
	display := make([]model.LedgerEntry, len(entries))
	for i, e := range entries {
		display[len(entries)-1-i] = e
	}

	cursor := a.hist.cursor
	if cursor >= len(display) {
		cursor = len(display) - 1
	}

	// Keep the cursor visible within the card
	visible := contentH - 6
	if visible < 3 {
		visible = 3
	}
	offset := 0
	if cursor >= visible {
		offset = cursor - visible + 1
	}
	end := offset + visible
	if end > len(display) {
		end = len(display)
	}

	headerStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Bold(true)
	dateStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	purchaseStyle := lipgloss.NewStyle().Foreground(t.Blue)
	donationStyle := lipgloss.NewStyle().Foreground(t.Green)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	innerW := components.CardInnerWidth(cw)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-13s %-9s %11s  %-7s %s",
		"Date", "Kind", "Amount", "Source", "Campaign/Note")))
	b.WriteString("\n")

	for i := offset; i < end; i++ {
		e := display[i]
		detail := e.Campaign
		if detail == "" {
			detail = e.Note
		}

		kindStyle := purchaseStyle
		if e.Kind == model.KindDonation {
			kindStyle = donationStyle
		}

		row := fmt.Sprintf("%-13s %-9s %11s  %-7s %s",
			cli.FormatDate(e.CreatedAt),
			cli.FormatKind(e.Kind),
			cli.FormatAmount(e.Amount),
			cli.FormatSource(e.Source),
			truncStr(detail, innerW-46))

		if i == cursor {
			b.WriteString(selStyle.Render("▸ " + row))
		} else {
			b.WriteString(dateStyle.Render("  ") + kindStyle.Render(row[:24]) + rowStyle.Render(row[24:]))
		}
		b.WriteString("\n")
	}

	totals := a.eng.Totals()
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d entries · purchases %s · donations %s",
		len(entries), cli.FormatAmount(totals.Purchases), cli.FormatAmount(totals.Donations))))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("[j/k] move  [g/G] first/last"))

	return components.ContentCard("History", b.String(), cw)
}
