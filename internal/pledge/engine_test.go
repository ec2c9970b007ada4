package pledge

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/spendforprogress/pledge/internal/ledger"
	"github.com/spendforprogress/pledge/internal/model"
	"github.com/spendforprogress/pledge/internal/store"
)

// memValues is an in-memory ValueStore for engine tests.
type memValues map[string]string

func (m memValues) GetValue(key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", store.ErrNotFound
	}
	return v, nil
}
func (m memValues) SetValue(key, value string) error { m[key] = value; return nil }
func (m memValues) DeleteValue(key string) error     { delete(m, key); return nil }

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	led := ledger.New(ledger.NewMemoryGateway(), log)
	led.Restore()
	return NewEngine(led, cfg, memValues{}, log)
}

func TestEngineGuidedPledge(t *testing.T) {
	eng := newTestEngine(t, Config{Rate: 0.5, RequireCampaign: true})

	if err := eng.DeclarePurchase(); err != nil {
		t.Fatalf("DeclarePurchase: %v", err)
	}
	if err := eng.SubmitPurchaseAmount(100); err != nil {
		t.Fatalf("SubmitPurchaseAmount: %v", err)
	}
	if _, err := eng.ConfirmDonation("Fair Fight"); err != nil {
		t.Fatalf("ConfirmDonation: %v", err)
	}

	totals := eng.Totals()
	if totals.Purchases != 100 || totals.Donations != 50 {
		t.Errorf("totals = %+v, want {100 50}", totals)
	}

	progress := eng.Progress()
	if progress.Status != model.StatusOnTrack {
		t.Errorf("status = %s, want on-track", progress.Status)
	}
	if progress.PercentUncapped != 100 {
		t.Errorf("percent = %v, want 100", progress.PercentUncapped)
	}
}

func TestEngineDeferLeavesNoEntries(t *testing.T) {
	eng := newTestEngine(t, Config{Rate: 0.5})

	if err := eng.DeclarePurchase(); err != nil {
		t.Fatalf("DeclarePurchase: %v", err)
	}
	if err := eng.SubmitPurchaseAmount(100); err != nil {
		t.Fatalf("SubmitPurchaseAmount: %v", err)
	}
	msg, err := eng.DeferDonation()
	if err != nil {
		t.Fatalf("DeferDonation: %v", err)
	}
	if msg == "" {
		t.Error("defer should return an encouragement message")
	}
	if len(eng.History()) != 0 {
		t.Errorf("history has %d entries after defer, want 0", len(eng.History()))
	}
}

func TestEngineManualEntriesBypassFlow(t *testing.T) {
	eng := newTestEngine(t, Config{Rate: 0.5, RequireCampaign: true})

	if _, err := eng.RecordManualPurchase(100, "new shoes"); err != nil {
		t.Fatalf("RecordManualPurchase: %v", err)
	}
	// Manual donations skip the campaign requirement
	if _, err := eng.RecordManualDonation(20, "Common Defense", ""); err != nil {
		t.Fatalf("RecordManualDonation: %v", err)
	}

	if eng.Step() != StepAskPurchase {
		t.Errorf("manual entries moved the flow to %s", eng.Step())
	}

	progress := eng.Progress()
	if progress.PercentUncapped != 40 {
		t.Errorf("percent = %v, want 40", progress.PercentUncapped)
	}
	if progress.Status != model.StatusBehind {
		t.Errorf("status = %s, want behind", progress.Status)
	}
}

func TestEngineResetAll(t *testing.T) {
	eng := newTestEngine(t, Config{Rate: 0.5})

	if _, err := eng.RecordManualPurchase(50, ""); err != nil {
		t.Fatalf("RecordManualPurchase: %v", err)
	}
	if err := eng.SetDonationGoal(200); err != nil {
		t.Fatalf("SetDonationGoal: %v", err)
	}

	if err := eng.ResetAll(); err != nil {
		t.Fatalf("ResetAll: %v", err)
	}
	if len(eng.History()) != 0 {
		t.Errorf("history has %d entries after reset, want 0", len(eng.History()))
	}
	if _, ok := eng.DonationGoal(); ok {
		t.Error("goal should be cleared by reset")
	}
	if eng.Step() != StepAskPurchase {
		t.Errorf("flow step = %s after reset, want %s", eng.Step(), StepAskPurchase)
	}

	// Immediate second reset is throttled
	if err := eng.ResetAll(); !errors.Is(err, ErrResetThrottled) {
		t.Errorf("second reset error = %v, want ErrResetThrottled", err)
	}
}

func TestEngineDonationGoal(t *testing.T) {
	values := memValues{}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	led := ledger.New(ledger.NewMemoryGateway(), log)
	led.Restore()
	eng := NewEngine(led, Config{Rate: 0.5}, values, log)

	if _, ok := eng.DonationGoal(); ok {
		t.Error("fresh engine should have no goal")
	}
	if err := eng.SetDonationGoal(250.5); err != nil {
		t.Fatalf("SetDonationGoal: %v", err)
	}
	if goal, ok := eng.DonationGoal(); !ok || goal != 250.5 {
		t.Errorf("goal = %v,%v, want 250.5,true", goal, ok)
	}

	// A new engine over the same value store picks the goal up again
	led2 := ledger.New(ledger.NewMemoryGateway(), log)
	led2.Restore()
	eng2 := NewEngine(led2, Config{Rate: 0.5}, values, log)
	if goal, ok := eng2.DonationGoal(); !ok || goal != 250.5 {
		t.Errorf("restored goal = %v,%v, want 250.5,true", goal, ok)
	}

	if err := eng.SetDonationGoal(-1); !errors.Is(err, ledger.ErrInvalidAmount) {
		t.Errorf("SetDonationGoal(-1) error = %v, want ErrInvalidAmount", err)
	}
	if err := eng.SetDonationGoal(0); err != nil {
		t.Fatalf("SetDonationGoal(0): %v", err)
	}
	if _, ok := eng.DonationGoal(); ok {
		t.Error("goal should be cleared by SetDonationGoal(0)")
	}
}

func TestEngineMergeEntries(t *testing.T) {
	eng := newTestEngine(t, Config{Rate: 0.5})

	backup := []model.LedgerEntry{
		{ID: "x1", Kind: model.KindPurchase, Amount: 10, Source: model.SourceImport},
		{ID: "x2", Kind: model.KindDonation, Amount: 5, Campaign: "Education", Source: model.SourceImport},
	}
	if added := eng.MergeEntries(backup); added != 2 {
		t.Errorf("MergeEntries added %d, want 2", added)
	}
	if added := eng.MergeEntries(backup); added != 0 {
		t.Errorf("re-import added %d, want 0", added)
	}

	totals := eng.Totals()
	if totals.Purchases != 10 || totals.Donations != 5 {
		t.Errorf("totals = %+v, want {10 5}", totals)
	}
}
