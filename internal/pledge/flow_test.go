package pledge

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/spendforprogress/pledge/internal/ledger"
	"github.com/spendforprogress/pledge/internal/model"
)

func newTestFlow(t *testing.T, opts Options) (*Flow, *ledger.Ledger) {
	t.Helper()
	led := ledger.New(ledger.NewMemoryGateway(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	led.Restore()
	return NewFlow(led, opts), led
}

func TestFlowHappyPath(t *testing.T) {
	f, led := newTestFlow(t, Options{Rate: 0.5, RequireCampaign: true})

	if f.Step() != StepAskPurchase {
		t.Fatalf("initial step = %s, want %s", f.Step(), StepAskPurchase)
	}

	if err := f.DeclarePurchase(); err != nil {
		t.Fatalf("DeclarePurchase: %v", err)
	}
	if err := f.SubmitAmount(100); err != nil {
		t.Fatalf("SubmitAmount: %v", err)
	}
	if f.PendingDonation() != 50 {
		t.Errorf("PendingDonation = %v, want 50", f.PendingDonation())
	}

	// Nothing recorded before confirmation
	if led.Len() != 0 {
		t.Fatalf("ledger has %d entries before confirmation, want 0", led.Len())
	}

	logged, err := f.ConfirmDonation("Fair Fight")
	if err != nil {
		t.Fatalf("ConfirmDonation: %v", err)
	}
	if len(logged) != 2 {
		t.Fatalf("confirmation logged %d entries, want 2", len(logged))
	}
	if logged[0].Kind != model.KindPurchase || logged[1].Kind != model.KindDonation {
		t.Errorf("logged kinds = %s, %s", logged[0].Kind, logged[1].Kind)
	}
	if logged[1].Campaign != "Fair Fight" {
		t.Errorf("donation campaign = %q, want Fair Fight", logged[1].Campaign)
	}
	if f.Step() != StepComplete {
		t.Errorf("step = %s, want %s", f.Step(), StepComplete)
	}
}

func TestFlowRejectsOutOfOrderOperations(t *testing.T) {
	f, _ := newTestFlow(t, Options{Rate: 0.5})

	var invalid *InvalidTransitionError

	if err := f.SubmitAmount(10); !errors.As(err, &invalid) {
		t.Errorf("SubmitAmount from ask step: error = %v, want InvalidTransitionError", err)
	}
	if _, err := f.ConfirmDonation("x"); !errors.As(err, &invalid) {
		t.Errorf("ConfirmDonation from ask step: error = %v, want InvalidTransitionError", err)
	}
	if _, err := f.DeferDonation(); !errors.As(err, &invalid) {
		t.Errorf("DeferDonation from ask step: error = %v, want InvalidTransitionError", err)
	}
	if err := f.Restart(); !errors.As(err, &invalid) {
		t.Errorf("Restart from ask step: error = %v, want InvalidTransitionError", err)
	}
}

func TestFlowInvalidAmountStaysAtEntry(t *testing.T) {
	f, led := newTestFlow(t, Options{Rate: 0.5})

	if err := f.DeclarePurchase(); err != nil {
		t.Fatalf("DeclarePurchase: %v", err)
	}
	if err := f.SubmitAmount(-20); !errors.Is(err, ledger.ErrInvalidAmount) {
		t.Fatalf("SubmitAmount(-20) error = %v, want ErrInvalidAmount", err)
	}
	if f.Step() != StepEnterAmount {
		t.Errorf("step = %s after invalid amount, want %s", f.Step(), StepEnterAmount)
	}
	if led.Len() != 0 {
		t.Errorf("ledger has %d entries, want 0", led.Len())
	}
}

func TestFlowDeclineStaysPut(t *testing.T) {
	f, led := newTestFlow(t, Options{Rate: 0.5})

	if err := f.DeclineNone(); err != nil {
		t.Fatalf("DeclineNone: %v", err)
	}
	if f.Step() != StepAskPurchase {
		t.Errorf("step = %s after decline, want %s", f.Step(), StepAskPurchase)
	}
	if led.Len() != 0 {
		t.Errorf("ledger has %d entries, want 0", led.Len())
	}
}

func TestFlowDeferRecordsNothingAndCycles(t *testing.T) {
	f, led := newTestFlow(t, Options{Rate: 0.5})

	if err := f.DeclarePurchase(); err != nil {
		t.Fatalf("DeclarePurchase: %v", err)
	}
	if err := f.SubmitAmount(80); err != nil {
		t.Fatalf("SubmitAmount: %v", err)
	}

	seen := make(map[string]bool)
	for i := 0; i < 4; i++ {
		msg, err := f.DeferDonation()
		if err != nil {
			t.Fatalf("DeferDonation #%d: %v", i, err)
		}
		if msg == "" {
			t.Fatalf("DeferDonation #%d returned an empty message", i)
		}
		seen[msg] = true
		if f.Step() != StepShowDonation {
			t.Fatalf("step = %s after defer, want %s", f.Step(), StepShowDonation)
		}
	}
	if len(seen) < 2 {
		t.Errorf("expected cycled encouragements, saw %d distinct", len(seen))
	}
	if led.Len() != 0 {
		t.Errorf("ledger has %d entries after defers, want 0", led.Len())
	}
}

func TestFlowRequireCampaign(t *testing.T) {
	f, _ := newTestFlow(t, Options{Rate: 0.5, RequireCampaign: true})

	if err := f.DeclarePurchase(); err != nil {
		t.Fatalf("DeclarePurchase: %v", err)
	}
	if err := f.SubmitAmount(40); err != nil {
		t.Fatalf("SubmitAmount: %v", err)
	}
	if _, err := f.ConfirmDonation(""); !errors.Is(err, ledger.ErrMissingCampaign) {
		t.Fatalf("ConfirmDonation(\"\") error = %v, want ErrMissingCampaign", err)
	}
	if f.Step() != StepShowDonation {
		t.Errorf("step = %s after rejected confirmation, want %s", f.Step(), StepShowDonation)
	}
}

func TestFlowRecordOnSubmit(t *testing.T) {
	f, led := newTestFlow(t, Options{Rate: 0.5, RecordOnSubmit: true})

	if err := f.DeclarePurchase(); err != nil {
		t.Fatalf("DeclarePurchase: %v", err)
	}
	if err := f.SubmitAmount(60); err != nil {
		t.Fatalf("SubmitAmount: %v", err)
	}
	if led.Len() != 1 {
		t.Fatalf("ledger has %d entries after submit, want 1 (purchase recorded early)", led.Len())
	}

	logged, err := f.ConfirmDonation("Education")
	if err != nil {
		t.Fatalf("ConfirmDonation: %v", err)
	}
	if len(logged) != 1 {
		t.Fatalf("confirmation logged %d entries, want 1 (donation only)", len(logged))
	}
	if logged[0].Kind != model.KindDonation {
		t.Errorf("logged kind = %s, want donation", logged[0].Kind)
	}
	if led.Len() != 2 {
		t.Errorf("ledger has %d entries, want 2", led.Len())
	}
}

func TestFlowRestartAndCancel(t *testing.T) {
	f, _ := newTestFlow(t, Options{Rate: 0.5})

	if err := f.DeclarePurchase(); err != nil {
		t.Fatalf("DeclarePurchase: %v", err)
	}
	if err := f.SubmitAmount(30); err != nil {
		t.Fatalf("SubmitAmount: %v", err)
	}
	if _, err := f.ConfirmDonation("Health"); err != nil {
		t.Fatalf("ConfirmDonation: %v", err)
	}
	if err := f.Restart(); err != nil {
		t.Fatalf("Restart: %v", err)
	}
	if f.Step() != StepAskPurchase || f.PendingPurchase() != 0 {
		t.Errorf("restart left step=%s pending=%v", f.Step(), f.PendingPurchase())
	}

	// Cancel works mid-flow
	if err := f.DeclarePurchase(); err != nil {
		t.Fatalf("DeclarePurchase: %v", err)
	}
	f.Cancel()
	if f.Step() != StepAskPurchase {
		t.Errorf("step = %s after cancel, want %s", f.Step(), StepAskPurchase)
	}
}
