// Package ledger implements the append-only record of purchase and
// donation events. The ledger is the single source of truth: totals are
// always derived from the entry sequence, never stored alongside it.
package ledger

import (
	"log/slog"
	"math"
	"time"

	"github.com/spendforprogress/pledge/internal/model"

	"github.com/google/uuid"
)

// Gateway is the durable persistence boundary. The in-memory ledger is
// authoritative within a session; the gateway is a best-effort mirror that
// must be visible to subsequent loads on the same device.
type Gateway interface {
	LoadEntries() ([]model.LedgerEntry, error)
	AppendEntry(e model.LedgerEntry) error
	AppendEntries(entries []model.LedgerEntry) error
	Clear() error
}

// Draft describes an entry before the ledger assigns its identity.
type Draft struct {
	Kind     model.EntryKind
	Amount   float64
	Note     string
	Campaign string
	Source   model.EntrySource
}

// Ledger is the ordered, append-only collection of entries. It is owned
// by a single engine instance; callers reach it only through Append, All,
// Reset, and Restore.
type Ledger struct {
	gw       Gateway
	log      *slog.Logger
	entries  []model.LedgerEntry
	degraded bool
}

// New creates an empty ledger backed by the given gateway.
func New(gw Gateway, log *slog.Logger) *Ledger {
	if log == nil {
		log = slog.Default()
	}
	return &Ledger{gw: gw, log: log}
}

// Restore loads persisted entries once at startup. A missing or unreadable
// store falls back to an empty ledger and memory-only operation; startup
// never fails hard.
func (l *Ledger) Restore() {
	entries, err := l.gw.LoadEntries()
	if err != nil {
		l.log.Warn("could not restore ledger, starting empty", "err", err)
		l.entries = nil
		l.degraded = true
		return
	}
	l.entries = entries
}

// Append validates a draft, assigns its ID and timestamp, stores it at the
// end of the ledger, and mirrors it to the gateway. Validation failures
// leave the ledger untouched; persistence failures degrade to memory-only.
func (l *Ledger) Append(d Draft) (model.LedgerEntry, error) {
	if !ValidAmount(d.Amount) {
		return model.LedgerEntry{}, ErrInvalidAmount
	}

	e := l.seal(d)
	l.entries = append(l.entries, e)
	l.persist(func() error { return l.gw.AppendEntry(e) })
	return e, nil
}

// AppendPair appends two entries as one unit: both are validated up front
// and written in a single gateway transaction, so the ledger never records
// half of a confirmed pledge.
func (l *Ledger) AppendPair(first, second Draft) (model.LedgerEntry, model.LedgerEntry, error) {
	if !ValidAmount(first.Amount) || !ValidAmount(second.Amount) {
		return model.LedgerEntry{}, model.LedgerEntry{}, ErrInvalidAmount
	}

	a := l.seal(first)
	b := l.seal(second)
	l.entries = append(l.entries, a, b)
	l.persist(func() error { return l.gw.AppendEntries([]model.LedgerEntry{a, b}) })
	return a, b, nil
}

// All returns a copy of the ordered entry sequence. Insertion order is
// chronological order is display order.
func (l *Ledger) All() []model.LedgerEntry {
	out := make([]model.LedgerEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Totals derives the current aggregate sums from the entry sequence.
func (l *Ledger) Totals() model.Totals {
	return ComputeTotals(l.entries)
}

// Merge appends entries restored from a backup, preserving their IDs and
// timestamps. Entries whose ID is already present or whose amount is
// invalid are skipped, so re-importing the same file is idempotent.
// Entries arriving without a recorded source are tagged as imported.
// Returns the number of entries added.
func (l *Ledger) Merge(entries []model.LedgerEntry) int {
	known := make(map[string]struct{}, len(l.entries))
	for _, e := range l.entries {
		known[e.ID] = struct{}{}
	}

	var added []model.LedgerEntry
	for _, e := range entries {
		if _, ok := known[e.ID]; ok {
			continue
		}
		if !ValidAmount(e.Amount) || e.ID == "" {
			continue
		}
		if e.Source == "" {
			e.Source = model.SourceImport
		}
		known[e.ID] = struct{}{}
		added = append(added, e)
	}
	if len(added) == 0 {
		return 0
	}

	l.entries = append(l.entries, added...)
	l.persist(func() error { return l.gw.AppendEntries(added) })
	return len(added)
}

// Reset clears all entries and deletes persisted state. Callers must gate
// this behind explicit user confirmation.
func (l *Ledger) Reset() {
	l.entries = nil
	l.persist(l.gw.Clear)
}

// Degraded reports whether a persistence failure has put the ledger in
// memory-only mode for this session.
func (l *Ledger) Degraded() bool {
	return l.degraded
}

func (l *Ledger) seal(d Draft) model.LedgerEntry {
	return model.LedgerEntry{
		ID:        uuid.New().String(),
		Kind:      d.Kind,
		Amount:    d.Amount,
		Note:      d.Note,
		Campaign:  d.Campaign,
		Source:    d.Source,
		CreatedAt: time.Now().UTC(),
	}
}

func (l *Ledger) persist(write func() error) {
	if err := write(); err != nil {
		if !l.degraded {
			l.log.Warn("persistence failed, keeping data in memory for this session", "err", err)
		}
		l.degraded = true
	}
}

// ValidAmount reports whether an amount is acceptable to the ledger:
// strictly positive and finite.
func ValidAmount(amount float64) bool {
	return amount > 0 && !math.IsInf(amount, 0) && !math.IsNaN(amount)
}
