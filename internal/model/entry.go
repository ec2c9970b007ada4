// Package model defines domain types for the pledge ledger.
package model

import "time"

// EntryKind distinguishes purchase records from donation records.
type EntryKind string

const (
	KindPurchase EntryKind = "purchase"
	KindDonation EntryKind = "donation"
)

// EntrySource records how an entry entered the ledger.
type EntrySource string

const (
	// SourceFlow marks entries produced by the guided pledge flow.
	SourceFlow EntrySource = "flow"
	// SourceManual marks entries logged directly, outside the flow.
	SourceManual EntrySource = "manual"
	// SourceImport marks merged backup entries that carried no source of
	// their own; entries with a recorded source keep it through a merge.
	SourceImport EntrySource = "import"
)

// LedgerEntry is one immutable record in the append-only ledger.
// Campaign is set only on donations that designate a recipient; Note is an
// optional free-text description.
type LedgerEntry struct {
	ID        string      `json:"id"`
	Kind      EntryKind   `json:"kind"`
	Amount    float64     `json:"amount"`
	Note      string      `json:"note,omitempty"`
	Campaign  string      `json:"campaign,omitempty"`
	Source    EntrySource `json:"source"`
	CreatedAt time.Time   `json:"created_at"`
}

// Totals holds the aggregate purchase and donation sums derived from the
// ledger. Totals are always recomputed from the entry sequence, never
// stored independently.
type Totals struct {
	Purchases float64
	Donations float64
}

// Status reports whether donations meet the pledged target.
type Status string

const (
	StatusOnTrack Status = "on-track"
	StatusBehind  Status = "behind"
)

// Progress holds the derived pledge progress for display.
// PercentUncapped can exceed 100 (status text); PercentCapped is clamped
// to [0,100] for progress-bar widths.
type Progress struct {
	Target          float64
	PercentUncapped float64
	PercentCapped   float64
	Status          Status
}

// Campaign is one externally supplied donation recipient. The URL is
// optional and opaque to the core.
type Campaign struct {
	Name string `toml:"name"`
	URL  string `toml:"url,omitempty"`
}
