package pledge

import (
	"fmt"

	"github.com/spendforprogress/pledge/internal/ledger"
	"github.com/spendforprogress/pledge/internal/model"
)

// Step identifies a state in the guided pledge flow.
type Step string

const (
	StepAskPurchase  Step = "ask-purchase"
	StepEnterAmount  Step = "enter-amount"
	StepShowDonation Step = "show-donation"
	StepComplete     Step = "complete"
)

// InvalidTransitionError reports an operation attempted from the wrong
// flow step. The flow state is unchanged when this is returned.
type InvalidTransitionError struct {
	From Step
	Op   string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s from step %s", e.Op, e.From)
}

// Options configures a Flow.
type Options struct {
	// Rate is the pledged donation fraction of each purchase.
	Rate float64
	// RequireCampaign makes ConfirmDonation fail without a selection.
	RequireCampaign bool
	// RecordOnSubmit appends the purchase entry at SubmitAmount time
	// instead of bundling it with the donation at confirmation.
	RecordOnSubmit bool
}

// Flow walks a user from "I spent money" to "I donated", appending ledger
// entries as side effects of successful transitions. Its session state
// (step, pending amounts, selection) is ephemeral and never persisted.
type Flow struct {
	led  *ledger.Ledger
	opts Options

	step             Step
	pendingPurchase  float64
	pendingDonation  float64
	campaign         string
	purchaseRecorded bool
	deferCount       int
}

// NewFlow creates a flow at the initial step.
func NewFlow(led *ledger.Ledger, opts Options) *Flow {
	return &Flow{led: led, opts: opts, step: StepAskPurchase}
}

// Step returns the current flow step.
func (f *Flow) Step() Step { return f.step }

// PendingPurchase returns the in-progress purchase amount.
func (f *Flow) PendingPurchase() float64 { return f.pendingPurchase }

// PendingDonation returns the donation computed from the pending purchase.
func (f *Flow) PendingDonation() float64 { return f.pendingDonation }

// SelectedCampaign returns the confirmed campaign, if any.
func (f *Flow) SelectedCampaign() string { return f.campaign }

// DeclarePurchase moves from the initial question to amount entry.
func (f *Flow) DeclarePurchase() error {
	if f.step != StepAskPurchase {
		return &InvalidTransitionError{From: f.step, Op: "declare a purchase"}
	}
	f.step = StepEnterAmount
	return nil
}

// DeclineNone acknowledges "no purchase to report". The flow stays at the
// initial step; nothing is recorded.
func (f *Flow) DeclineNone() error {
	if f.step != StepAskPurchase {
		return &InvalidTransitionError{From: f.step, Op: "decline"}
	}
	return nil
}

// SubmitAmount accepts the purchase amount and computes the pledged
// donation. An invalid amount keeps the flow at amount entry. Under the
// record-on-submit policy the purchase entry is appended here.
func (f *Flow) SubmitAmount(amount float64) error {
	if f.step != StepEnterAmount {
		return &InvalidTransitionError{From: f.step, Op: "submit an amount"}
	}
	if !ledger.ValidAmount(amount) {
		return ledger.ErrInvalidAmount
	}

	if f.opts.RecordOnSubmit {
		if _, err := f.led.Append(ledger.Draft{
			Kind:   model.KindPurchase,
			Amount: amount,
			Source: model.SourceFlow,
		}); err != nil {
			return err
		}
		f.purchaseRecorded = true
	}

	f.pendingPurchase = amount
	f.pendingDonation = amount * f.opts.Rate
	f.step = StepShowDonation
	return nil
}

// ConfirmDonation records the pledge. By default the purchase and
// donation land as an atomic pair; if the purchase was already recorded at
// submit time only the donation is appended. The returned slice holds
// whatever was appended, in order.
func (f *Flow) ConfirmDonation(campaign string) ([]model.LedgerEntry, error) {
	if f.step != StepShowDonation {
		return nil, &InvalidTransitionError{From: f.step, Op: "confirm a donation"}
	}
	if campaign == "" && f.opts.RequireCampaign {
		return nil, ledger.ErrMissingCampaign
	}

	donation := ledger.Draft{
		Kind:     model.KindDonation,
		Amount:   f.pendingDonation,
		Campaign: campaign,
		Source:   model.SourceFlow,
	}

	var appended []model.LedgerEntry
	if f.purchaseRecorded {
		d, err := f.led.Append(donation)
		if err != nil {
			return nil, err
		}
		appended = []model.LedgerEntry{d}
	} else {
		purchase := ledger.Draft{
			Kind:   model.KindPurchase,
			Amount: f.pendingPurchase,
			Source: model.SourceFlow,
		}
		p, d, err := f.led.AppendPair(purchase, donation)
		if err != nil {
			return nil, err
		}
		appended = []model.LedgerEntry{p, d}
	}

	f.campaign = campaign
	f.step = StepComplete
	return appended, nil
}

// Encouragements shown when a donation is deferred, cycled in order.
var encouragements = []string{
	"No rush. Your pledge will be here when you're ready.",
	"Every purchase logged is progress. Come back to donate soon!",
	"Small steps count. Your target isn't going anywhere.",
}

// DeferDonation postpones the donation without recording anything. The
// flow stays at the donation step and an encouragement message is
// returned for display.
func (f *Flow) DeferDonation() (string, error) {
	if f.step != StepShowDonation {
		return "", &InvalidTransitionError{From: f.step, Op: "defer"}
	}
	msg := encouragements[f.deferCount%len(encouragements)]
	f.deferCount++
	return msg, nil
}

// Restart returns a completed flow to the initial step, clearing all
// ephemeral session state.
func (f *Flow) Restart() error {
	if f.step != StepComplete {
		return &InvalidTransitionError{From: f.step, Op: "restart"}
	}
	f.reset()
	return nil
}

// Cancel abandons the flow from any step and clears session state.
// Nothing already recorded is undone.
func (f *Flow) Cancel() {
	f.reset()
}

func (f *Flow) reset() {
	f.step = StepAskPurchase
	f.pendingPurchase = 0
	f.pendingDonation = 0
	f.campaign = ""
	f.purchaseRecorded = false
}
