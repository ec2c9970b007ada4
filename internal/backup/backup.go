// Package backup exports and imports the ledger as a JSON document, the
// escape hatch for moving data between devices since the store itself is
// strictly device-local.
package backup

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spendforprogress/pledge/internal/model"
)

// Document is the backup file layout.
type Document struct {
	Version    int                 `json:"version"`
	ExportedAt time.Time           `json:"exported_at"`
	Entries    []model.LedgerEntry `json:"entries"`
}

const currentVersion = 1

// Export writes the full entry sequence to w.
func Export(w io.Writer, entries []model.LedgerEntry) error {
	doc := Document{
		Version:    currentVersion,
		ExportedAt: time.Now().UTC(),
		Entries:    entries,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding backup: %w", err)
	}
	return nil
}

// Import decodes a backup document. A malformed payload returns an error
// and the caller's ledger is left untouched.
func Import(r io.Reader) ([]model.LedgerEntry, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding backup: %w", err)
	}
	if doc.Version != currentVersion {
		return nil, fmt.Errorf("unsupported backup version %d", doc.Version)
	}
	return doc.Entries, nil
}
