package components

import (
	"testing"

	"github.com/spendforprogress/pledge/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
	theme.SetActive("flexoki-dark")
}

func TestLayoutRowSumsExactly(t *testing.T) {
	tests := []struct {
		total, n int
	}{
		{100, 4},
		{101, 4},
		{103, 4},
		{70, 3},
		{9, 2},
	}
	for _, tt := range tests {
		widths := LayoutRow(tt.total, tt.n)
		if len(widths) != tt.n {
			t.Fatalf("LayoutRow(%d, %d) returned %d widths", tt.total, tt.n, len(widths))
		}
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tt.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tt.total, tt.n, sum)
		}
		// No width may differ from another by more than one column.
		for _, w := range widths {
			if w < widths[tt.n-1] || w > widths[0] {
				t.Errorf("LayoutRow(%d, %d) uneven: %v", tt.total, tt.n, widths)
			}
		}
	}
}

func TestLayoutRowDegenerate(t *testing.T) {
	if got := LayoutRow(50, 0); got != nil {
		t.Errorf("n=0 should yield nil, got %v", got)
	}
}

func TestMetricCardWidth(t *testing.T) {
	card := MetricCard("Purchases", "$1,234.00", "12 entries", 30)
	if w := lipgloss.Width(card); w != 30 {
		t.Errorf("card width = %d, want 30", w)
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	cards := []struct{ Label, Value, Detail string }{
		{"Purchases", "$100.00", "3 entries"},
		{"Donations", "$50.00", "50.0% of pledge"},
		{"Target", "$50.00", "$0.00 remaining"},
	}
	row := MetricCardRow(cards, 91)
	if w := lipgloss.Width(row); w != 91 {
		t.Errorf("row width = %d, want 91", w)
	}
}

func TestCardRowHeightIsTallestCard(t *testing.T) {
	short := ContentCard("A", "one line", 30)
	tall := ContentCard("B", "one\ntwo\nthree", 30)

	row := CardRow([]string{short, tall})
	if got, want := lipgloss.Height(row), lipgloss.Height(tall); got != want {
		t.Errorf("row height = %d, want %d", got, want)
	}
}

func TestCardInnerWidth(t *testing.T) {
	if got := CardInnerWidth(40); got != 36 {
		t.Errorf("CardInnerWidth(40) = %d, want 36", got)
	}
	if got := CardInnerWidth(5); got != 10 {
		t.Errorf("CardInnerWidth(5) = %d, want the 10-column floor", got)
	}
}
