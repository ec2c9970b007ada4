package ledger

import "github.com/spendforprogress/pledge/internal/model"

// ComputeTotals derives the aggregate purchase and donation sums from an
// entry snapshot. It is recomputed from scratch on every call; totals are
// never tracked as separate mutable counters, so they cannot drift from
// the history.
func ComputeTotals(entries []model.LedgerEntry) model.Totals {
	var t model.Totals
	for _, e := range entries {
		switch e.Kind {
		case model.KindPurchase:
			t.Purchases += e.Amount
		case model.KindDonation:
			t.Donations += e.Amount
		}
	}
	return t
}
