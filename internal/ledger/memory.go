package ledger

import "github.com/spendforprogress/pledge/internal/model"

// MemoryGateway is a volatile Gateway used in tests and as the fallback
// when the on-disk store cannot be opened.
type MemoryGateway struct {
	entries []model.LedgerEntry
}

// NewMemoryGateway returns an empty in-memory gateway.
func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{}
}

// LoadEntries returns the stored entries in insertion order.
func (m *MemoryGateway) LoadEntries() ([]model.LedgerEntry, error) {
	out := make([]model.LedgerEntry, len(m.entries))
	copy(out, m.entries)
	return out, nil
}

// AppendEntry stores one entry.
func (m *MemoryGateway) AppendEntry(e model.LedgerEntry) error {
	m.entries = append(m.entries, e)
	return nil
}

// AppendEntries stores a batch of entries.
func (m *MemoryGateway) AppendEntries(entries []model.LedgerEntry) error {
	m.entries = append(m.entries, entries...)
	return nil
}

// Clear removes all stored entries.
func (m *MemoryGateway) Clear() error {
	m.entries = nil
	return nil
}
