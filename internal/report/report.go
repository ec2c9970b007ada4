// Package report derives display series from ledger snapshots. All
// functions are pure; they recompute from the full entry sequence on
// every call, which is cheap at the expected scale of hundreds of
// entries.
package report

import (
	"sort"
	"time"

	"github.com/spendforprogress/pledge/internal/model"
)

// AggregateDaily buckets entries into per-calendar-day purchase and
// donation sums for the last n days, today included. Days without
// activity appear with zero sums so charts render a continuous axis.
func AggregateDaily(entries []model.LedgerEntry, days int) []model.DailyFlow {
	if days <= 0 {
		return nil
	}

	now := time.Now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(days - 1))

	flows := make([]model.DailyFlow, days)
	index := make(map[string]int, days)
	for i := range flows {
		d := start.AddDate(0, 0, i)
		flows[i].Date = d
		index[d.Format("2006-01-02")] = i
	}

	for _, e := range entries {
		day := e.CreatedAt.In(now.Location()).Format("2006-01-02")
		i, ok := index[day]
		if !ok {
			continue
		}
		switch e.Kind {
		case model.KindPurchase:
			flows[i].Purchases += e.Amount
		case model.KindDonation:
			flows[i].Donations += e.Amount
		}
	}

	return flows
}

// AggregateCampaigns sums donations per campaign, largest first.
// Donations without a campaign are grouped under an empty name.
func AggregateCampaigns(entries []model.LedgerEntry) []model.CampaignStats {
	byName := make(map[string]*model.CampaignStats)
	var order []string

	for _, e := range entries {
		if e.Kind != model.KindDonation {
			continue
		}
		cs, ok := byName[e.Campaign]
		if !ok {
			cs = &model.CampaignStats{Campaign: e.Campaign}
			byName[e.Campaign] = cs
			order = append(order, e.Campaign)
		}
		cs.Donated += e.Amount
		cs.Count++
	}

	out := make([]model.CampaignStats, 0, len(order))
	for _, name := range order {
		out = append(out, *byName[name])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Donated > out[j].Donated
	})
	return out
}
