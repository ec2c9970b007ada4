package store

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/spendforprogress/pledge/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "pledge.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func testEntry(id string, kind model.EntryKind, amount float64, at time.Time) model.LedgerEntry {
	return model.LedgerEntry{
		ID:        id,
		Kind:      kind,
		Amount:    amount,
		Source:    model.SourceManual,
		CreatedAt: at,
	}
}

func TestFreshDatabaseIsEmpty(t *testing.T) {
	s := openTestStore(t)

	entries, err := s.LoadEntries()
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("fresh db has %d entries, want 0", len(entries))
	}
}

func TestEntryRoundTrip(t *testing.T) {
	s := openTestStore(t)
	now := time.Now().UTC().Truncate(time.Millisecond)

	want := model.LedgerEntry{
		ID:        "e1",
		Kind:      model.KindDonation,
		Amount:    12.34,
		Note:      "first gift",
		Campaign:  "Education",
		Source:    model.SourceFlow,
		CreatedAt: now,
	}
	if err := s.AppendEntry(want); err != nil {
		t.Fatalf("AppendEntry: %v", err)
	}

	entries, err := s.LoadEntries()
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	got := entries[0]
	if got.ID != want.ID || got.Kind != want.Kind || got.Amount != want.Amount ||
		got.Note != want.Note || got.Campaign != want.Campaign || got.Source != want.Source {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if !got.CreatedAt.Equal(want.CreatedAt) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, want.CreatedAt)
	}
}

func TestLoadEntriesChronologicalOrder(t *testing.T) {
	s := openTestStore(t)
	base := time.Now().UTC()

	// Insert out of order
	if err := s.AppendEntry(testEntry("b", model.KindPurchase, 2, base.Add(time.Minute))); err != nil {
		t.Fatalf("AppendEntry: %v", err)
	}
	if err := s.AppendEntry(testEntry("a", model.KindPurchase, 1, base)); err != nil {
		t.Fatalf("AppendEntry: %v", err)
	}

	entries, err := s.LoadEntries()
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "a" || entries[1].ID != "b" {
		t.Errorf("order = %v, want [a b]", []string{entries[0].ID, entries[1].ID})
	}
}

func TestAppendEntriesBatch(t *testing.T) {
	s := openTestStore(t)
	now := time.Now().UTC()

	batch := []model.LedgerEntry{
		testEntry("p", model.KindPurchase, 100, now),
		testEntry("d", model.KindDonation, 50, now.Add(time.Second)),
	}
	if err := s.AppendEntries(batch); err != nil {
		t.Fatalf("AppendEntries: %v", err)
	}

	count, err := s.EntryCount()
	if err != nil {
		t.Fatalf("EntryCount: %v", err)
	}
	if count != 2 {
		t.Errorf("EntryCount = %d, want 2", count)
	}
}

func TestAppendEntryIdempotentByID(t *testing.T) {
	s := openTestStore(t)
	e := testEntry("same", model.KindPurchase, 10, time.Now().UTC())

	if err := s.AppendEntry(e); err != nil {
		t.Fatalf("AppendEntry: %v", err)
	}
	if err := s.AppendEntry(e); err != nil {
		t.Fatalf("AppendEntry (repeat): %v", err)
	}

	count, _ := s.EntryCount()
	if count != 1 {
		t.Errorf("EntryCount = %d after duplicate save, want 1", count)
	}
}

func TestLoadEntriesSkipsMalformedRows(t *testing.T) {
	s := openTestStore(t)

	if err := s.AppendEntry(testEntry("good", model.KindPurchase, 10, time.Now().UTC())); err != nil {
		t.Fatalf("AppendEntry: %v", err)
	}

	// Corrupt rows written behind the store's back must not block loading.
	badRows := []struct {
		id, kind, createdAt string
	}{
		{"bad-time", "purchase", "not-a-time"},
		{"bad-kind", "refund", time.Now().UTC().Format(time.RFC3339Nano)},
	}
	for _, r := range badRows {
		_, err := s.db.Exec(`INSERT INTO entries
			(id, kind, amount, note, campaign, source, created_at)
			VALUES (?, ?, 5, '', '', 'manual', ?)`,
			r.id, r.kind, r.createdAt)
		if err != nil {
			t.Fatalf("inserting %s row: %v", r.id, err)
		}
	}

	entries, err := s.LoadEntries()
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "good" {
		t.Errorf("entries = %+v, want only the well-formed row", entries)
	}
}

func TestClearRemovesEntriesAndSettings(t *testing.T) {
	s := openTestStore(t)

	if err := s.AppendEntry(testEntry("x", model.KindPurchase, 5, time.Now().UTC())); err != nil {
		t.Fatalf("AppendEntry: %v", err)
	}
	if err := s.SetValue("donation_goal", "100"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear: %v", err)
	}

	count, _ := s.EntryCount()
	if count != 0 {
		t.Errorf("EntryCount = %d after clear, want 0", count)
	}
	if _, err := s.GetValue("donation_goal"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetValue after clear: error = %v, want ErrNotFound", err)
	}
}

func TestSettingsValues(t *testing.T) {
	s := openTestStore(t)

	if _, err := s.GetValue("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetValue(missing) error = %v, want ErrNotFound", err)
	}

	if err := s.SetValue("k", "v1"); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	if err := s.SetValue("k", "v2"); err != nil {
		t.Fatalf("SetValue (overwrite): %v", err)
	}

	v, err := s.GetValue("k")
	if err != nil {
		t.Fatalf("GetValue: %v", err)
	}
	if v != "v2" {
		t.Errorf("GetValue = %q, want v2", v)
	}

	if err := s.DeleteValue("k"); err != nil {
		t.Fatalf("DeleteValue: %v", err)
	}
	if _, err := s.GetValue("k"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetValue after delete: error = %v, want ErrNotFound", err)
	}
}

func TestReopenSeesPersistedEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pledge.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.AppendEntry(testEntry("keep", model.KindDonation, 7, time.Now().UTC())); err != nil {
		t.Fatalf("AppendEntry: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = s2.Close() }()

	entries, err := s2.LoadEntries()
	if err != nil {
		t.Fatalf("LoadEntries: %v", err)
	}
	if len(entries) != 1 || entries[0].ID != "keep" {
		t.Errorf("reopened entries = %+v, want the saved one", entries)
	}
}
