// Package cli provides formatting and rendering utilities for terminal
// output.
package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spendforprogress/pledge/internal/model"
)

// FormatAmount formats a monetary value.
// e.g., 1234.5 -> "$1,234.50", 12.3 -> "$12.30"
func FormatAmount(v float64) string {
	if v >= 1000 {
		whole := int64(v)
		cents := int64(math.Round((v - float64(whole)) * 100))
		if cents >= 100 {
			whole++
			cents -= 100
		}
		return fmt.Sprintf("$%s.%02d", FormatNumber(whole), cents)
	}
	return fmt.Sprintf("$%.2f", v)
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a 0-100 percentage value.
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// FormatDate formats an entry timestamp for history views.
func FormatDate(t time.Time) string {
	return t.Local().Format("Jan 02 15:04")
}

// FormatKind returns a display label for an entry kind.
func FormatKind(k model.EntryKind) string {
	switch k {
	case model.KindPurchase:
		return "Purchase"
	case model.KindDonation:
		return "Donation"
	default:
		return string(k)
	}
}

// FormatSource returns a display label for an entry source.
func FormatSource(s model.EntrySource) string {
	switch s {
	case model.SourceFlow:
		return "guided"
	case model.SourceManual:
		return "manual"
	case model.SourceImport:
		return "import"
	default:
		return string(s)
	}
}

// FormatStatus returns a display label for a progress status.
func FormatStatus(s model.Status) string {
	if s == model.StatusOnTrack {
		return "On track"
	}
	return "Behind"
}
