// Package pledge implements the pledge engine: the guided flow state
// machine, progress evaluation, and the capability surface exposed to the
// CLI and TUI.
package pledge

import "github.com/spendforprogress/pledge/internal/model"

// Evaluate derives pledge progress from totals and the donation rate. It
// is a pure function; callers may invoke it as often as they like.
//
// With no purchases the target is zero and nothing can be "on track", so
// the status reads Behind by convention. Equality at the target counts as
// OnTrack.
func Evaluate(t model.Totals, rate float64) model.Progress {
	p := model.Progress{
		Target: t.Purchases * rate,
		Status: model.StatusBehind,
	}

	if p.Target <= 0 {
		return p
	}

	p.PercentUncapped = t.Donations / p.Target * 100
	p.PercentCapped = p.PercentUncapped
	if p.PercentCapped > 100 {
		p.PercentCapped = 100
	}
	if t.Donations >= p.Target {
		p.Status = model.StatusOnTrack
	}
	return p
}
