package components

import (
	"fmt"
	"strings"

	"github.com/spendforprogress/pledge/internal/tui/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"
)

// ColorForProgress maps donation progress to a color. Unlike a utilization
// gauge, more is better here: full pledge is green, nothing donated is red.
func ColorForProgress(pct float64) string {
	t := theme.Active
	switch {
	case pct >= 1:
		return string(t.Green)
	case pct >= 0.7:
		return string(t.Yellow)
	case pct >= 0.3:
		return string(t.Orange)
	default:
		return string(t.Red)
	}
}

// PledgeBar renders a labeled progress bar toward the donation target.
// pct is capped at 1 for the bar; the percentage label shows the raw value.
func PledgeBar(label string, pct float64, labelW, barWidth int) string {
	t := theme.Active

	barPct := pct
	if barPct < 0 {
		barPct = 0
	}
	if barPct > 1 {
		barPct = 1
	}

	bar := progress.New(
		progress.WithSolidFill(ColorForProgress(barPct)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForProgress(barPct))).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		spaceStyle.Render(" ") +
		bar.ViewAs(barPct) +
		spaceStyle.Render(" ") +
		pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}

// ProgressBar renders a plain block-character progress bar with percentage.
func ProgressBar(pct float64, width int) string {
	t := theme.Active

	barPct := pct
	if barPct < 0 {
		barPct = 0
	}
	if barPct > 1 {
		barPct = 1
	}
	filled := int(barPct * float64(width))

	barColor := lipgloss.Color(ColorForProgress(barPct))
	filledStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	pctStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface).Bold(true)
	spaceStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder
	b.WriteString(filledStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(emptyStyle.Render(strings.Repeat("░", width-filled)))

	return b.String() + spaceStyle.Render(" ") + pctStyle.Render(fmt.Sprintf("%.0f%%", pct*100))
}
