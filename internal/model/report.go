package model

import "time"

// DailyFlow holds purchase and donation sums for a single calendar day.
type DailyFlow struct {
	Date      time.Time
	Purchases float64
	Donations float64
}

// CampaignStats holds aggregated donations for one campaign.
type CampaignStats struct {
	Campaign string
	Donated  float64
	Count    int
}
