package pledge

import (
	"testing"

	"github.com/spendforprogress/pledge/internal/model"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name         string
		totals       model.Totals
		rate         float64
		wantTarget   float64
		wantUncapped float64
		wantCapped   float64
		wantStatus   model.Status
	}{
		{
			name:       "no purchases is behind",
			totals:     model.Totals{},
			rate:       0.5,
			wantStatus: model.StatusBehind,
		},
		{
			name:         "half donated",
			totals:       model.Totals{Purchases: 100, Donations: 25},
			rate:         0.5,
			wantTarget:   50,
			wantUncapped: 50,
			wantCapped:   50,
			wantStatus:   model.StatusBehind,
		},
		{
			name:         "exactly on target",
			totals:       model.Totals{Purchases: 100, Donations: 50},
			rate:         0.5,
			wantTarget:   50,
			wantUncapped: 100,
			wantCapped:   100,
			wantStatus:   model.StatusOnTrack,
		},
		{
			name:         "over target caps at 100",
			totals:       model.Totals{Purchases: 100, Donations: 75},
			rate:         0.5,
			wantTarget:   50,
			wantUncapped: 150,
			wantCapped:   100,
			wantStatus:   model.StatusOnTrack,
		},
		{
			name:         "custom rate",
			totals:       model.Totals{Purchases: 200, Donations: 50},
			rate:         0.25,
			wantTarget:   50,
			wantUncapped: 100,
			wantCapped:   100,
			wantStatus:   model.StatusOnTrack,
		},
		{
			name:       "donations without purchases still behind",
			totals:     model.Totals{Donations: 30},
			rate:       0.5,
			wantStatus: model.StatusBehind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.totals, tt.rate)
			if got.Target != tt.wantTarget {
				t.Errorf("Target = %v, want %v", got.Target, tt.wantTarget)
			}
			if got.PercentUncapped != tt.wantUncapped {
				t.Errorf("PercentUncapped = %v, want %v", got.PercentUncapped, tt.wantUncapped)
			}
			if got.PercentCapped != tt.wantCapped {
				t.Errorf("PercentCapped = %v, want %v", got.PercentCapped, tt.wantCapped)
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %v, want %v", got.Status, tt.wantStatus)
			}
		})
	}
}
