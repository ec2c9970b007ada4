// Package store provides the SQLite-backed persistence gateway for the
// pledge ledger.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spendforprogress/pledge/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Store persists ledger entries and scalar settings durably on disk.
type Store struct {
	db *sql.DB
}

// ErrNotFound is returned by GetValue when a settings key is absent.
// Absence is a normal first-run outcome, not a storage failure.
var ErrNotFound = errors.New("store: key not found")

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// AppendEntry durably stores a single ledger entry. Writes are keyed by
// entry ID, so re-saving the same entry is idempotent.
func (s *Store) AppendEntry(e model.LedgerEntry) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO entries
		(id, kind, amount, note, campaign, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, string(e.Kind), e.Amount, e.Note, e.Campaign, string(e.Source),
		e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

// AppendEntries stores a batch of entries in one transaction. Either all
// entries land or none do.
func (s *Store) AppendEntries(entries []model.LedgerEntry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, e := range entries {
		_, err = tx.Exec(`INSERT OR REPLACE INTO entries
			(id, kind, amount, note, campaign, source, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			e.ID, string(e.Kind), e.Amount, e.Note, e.Campaign, string(e.Source),
			e.CreatedAt.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadEntries reads all stored entries in chronological order. A fresh
// database yields an empty slice. Rows that fail to decode are skipped so
// a partially corrupted file never blocks startup.
func (s *Store) LoadEntries() ([]model.LedgerEntry, error) {
	rows, err := s.db.Query(`SELECT id, kind, amount, note, campaign, source, created_at
		FROM entries ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []model.LedgerEntry
	for rows.Next() {
		var e model.LedgerEntry
		var kind, source, createdAt string

		if err := rows.Scan(&e.ID, &kind, &e.Amount, &e.Note, &e.Campaign, &source, &createdAt); err != nil {
			continue
		}

		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			continue
		}

		e.Kind = model.EntryKind(kind)
		e.Source = model.EntrySource(source)
		e.CreatedAt = ts
		if e.Kind != model.KindPurchase && e.Kind != model.KindDonation {
			continue
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Clear removes all entries and settings. Used only by the user-confirmed
// full reset.
func (s *Store) Clear() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM entries"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM settings"); err != nil {
		return err
	}

	return tx.Commit()
}

// EntryCount returns the number of stored entries.
func (s *Store) EntryCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&count)
	return count, err
}

// GetValue reads a scalar setting.
func (s *Store) GetValue(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetValue writes a scalar setting. Saving the same value twice yields the
// same stored state.
func (s *Store) SetValue(key, value string) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO settings (key, value) VALUES (?, ?)`, key, value)
	return err
}

// DeleteValue removes a scalar setting.
func (s *Store) DeleteValue(key string) error {
	_, err := s.db.Exec("DELETE FROM settings WHERE key = ?", key)
	return err
}
