package components

import (
	"fmt"
	"strings"

	"github.com/spendforprogress/pledge/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(sparkBlocks)-1))
		if idx >= len(sparkBlocks) {
			idx = len(sparkBlocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(sparkBlocks[idx])
	}

	return style.Render(buf.String())
}

// PairedBars renders two value series as adjacent vertical bar pairs, one
// pair per bucket. Both series share a scale so purchases and donations
// compare visually. Falls back to stacked sparklines when space is tight.
func PairedBars(first, second []float64, labels []string, colorA, colorB lipgloss.Color, width, height int) string {
	n := len(first)
	if n == 0 || len(second) != n {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(first, colorA) + "\n" + Sparkline(second, colorB)
	}

	t := theme.Active

	peak := 0.0
	for i := range first {
		if first[i] > peak {
			peak = first[i]
		}
		if second[i] > peak {
			peak = second[i]
		}
	}
	if peak == 0 {
		peak = 1
	}

	yLabelW := len(formatAxisLabel(peak)) + 1
	if yLabelW < 5 {
		yLabelW = 5
	}

	// Each bucket is two 1-col bars plus a 1-col gap.
	chartW := width - yLabelW - 1
	maxBuckets := (chartW + 1) / 3
	if maxBuckets < 2 {
		maxBuckets = 2
	}
	if n > maxBuckets {
		first = first[n-maxBuckets:]
		second = second[n-maxBuckets:]
		if len(labels) == n {
			labels = labels[n-maxBuckets:]
		}
		n = maxBuckets
	}
	axisLen := n*3 - 1

	styleA := lipgloss.NewStyle().Foreground(colorA).Background(t.Surface)
	styleB := lipgloss.NewStyle().Foreground(colorB).Background(t.Surface)
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blankStyle := lipgloss.NewStyle().Background(t.Surface)

	cell := func(v float64, row int, style lipgloss.Style) string {
		rowTop := peak * float64(row) / float64(height)
		rowBottom := peak * float64(row-1) / float64(height)
		switch {
		case v >= rowTop:
			return style.Render("█")
		case v > rowBottom:
			frac := (v - rowBottom) / (rowTop - rowBottom)
			idx := int(frac * float64(len(sparkBlocks)))
			if idx >= len(sparkBlocks) {
				idx = len(sparkBlocks) - 1
			}
			if idx < 0 {
				idx = 0
			}
			return style.Render(string(sparkBlocks[idx]))
		default:
			return blankStyle.Render(" ")
		}
	}

	var b strings.Builder
	for row := height; row >= 1; row-- {
		yLabel := ""
		if row == height {
			yLabel = formatAxisLabel(peak)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, yLabel)))
		b.WriteString(axisStyle.Render("│"))
		for i := 0; i < n; i++ {
			if i > 0 {
				b.WriteString(blankStyle.Render(" "))
			}
			b.WriteString(cell(first[i], row, styleA))
			b.WriteString(cell(second[i], row, styleB))
		}
		b.WriteString("\n")
	}

	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(blankStyle.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(spreadLabels(labels, axisLen)))
	}

	return b.String()
}

// spreadLabels lays bucket labels along an axis of the given length,
// dropping labels that would collide with an earlier one.
func spreadLabels(labels []string, axisLen int) string {
	buf := make([]byte, axisLen)
	for i := range buf {
		buf[i] = ' '
	}

	n := len(labels)
	lastEnd := -2
	for i := 0; i < n; i++ {
		pos := i * 3
		lbl := labels[i]
		end := pos + len(lbl)
		if pos <= lastEnd+1 || end > axisLen {
			continue
		}
		copy(buf[pos:end], lbl)
		lastEnd = end
	}
	return strings.TrimRight(string(buf), " ")
}

func formatAxisLabel(v float64) string {
	switch {
	case v >= 1e6:
		return fmt.Sprintf("$%.1fM", v/1e6)
	case v >= 1e3:
		return fmt.Sprintf("$%.1fk", v/1e3)
	case v >= 10:
		return fmt.Sprintf("$%.0f", v)
	default:
		return fmt.Sprintf("$%.2f", v)
	}
}
