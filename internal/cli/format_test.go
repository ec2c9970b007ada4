package cli

import (
	"testing"
	"time"

	"github.com/spendforprogress/pledge/internal/model"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0.00"},
		{12.3, "$12.30"},
		{999.99, "$999.99"},
		{1000, "$1,000.00"},
		{1234.5, "$1,234.50"},
		{1234567.89, "$1,234,567.89"},
	}
	for _, tt := range tests {
		if got := FormatAmount(tt.in); got != tt.want {
			t.Errorf("FormatAmount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatPercent(t *testing.T) {
	if got := FormatPercent(41.666); got != "41.7%" {
		t.Errorf("FormatPercent = %q, want 41.7%%", got)
	}
}

func TestFormatStatus(t *testing.T) {
	if got := FormatStatus(model.StatusOnTrack); got != "On track" {
		t.Errorf("FormatStatus(on-track) = %q", got)
	}
	if got := FormatStatus(model.StatusBehind); got != "Behind" {
		t.Errorf("FormatStatus(behind) = %q", got)
	}
}

func TestFormatDate(t *testing.T) {
	ts := time.Date(2026, 3, 7, 9, 5, 0, 0, time.UTC)
	got := FormatDate(ts)
	if len(got) == 0 {
		t.Fatal("FormatDate returned empty string")
	}
}
