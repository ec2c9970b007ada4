package pledge

import (
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/spendforprogress/pledge/internal/ledger"
	"github.com/spendforprogress/pledge/internal/model"
	"github.com/spendforprogress/pledge/internal/report"
)

// ErrResetThrottled rejects a second full reset within the minimum
// interval, suppressing accidental rapid re-triggers.
var ErrResetThrottled = errors.New("reset was just applied, try again in a moment")

const (
	resetMinInterval = time.Second
	goalKey          = "donation_goal"
)

// ValueStore persists scalar settings (the optional donation goal). The
// sqlite store satisfies it; a nil store means goals live only in memory.
type ValueStore interface {
	GetValue(key string) (string, error)
	SetValue(key, value string) error
	DeleteValue(key string) error
}

// Config holds the engine's fixed per-session policy.
type Config struct {
	Rate            float64
	RequireCampaign bool
	RecordOnSubmit  bool
	Catalog         []model.Campaign
}

// Engine owns the ledger and the guided flow for one interactive session.
// It is constructed once at startup and injected into whichever
// presentation layer needs it; no component mutates ledger state except
// through the methods here.
type Engine struct {
	cfg    Config
	led    *ledger.Ledger
	flow   *Flow
	values ValueStore
	log    *slog.Logger

	goal      float64
	lastReset time.Time
}

// NewEngine builds an engine around a restored ledger.
func NewEngine(led *ledger.Ledger, cfg Config, values ValueStore, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	e := &Engine{
		cfg:    cfg,
		led:    led,
		values: values,
		log:    log,
	}
	e.flow = NewFlow(led, Options{
		Rate:            cfg.Rate,
		RequireCampaign: cfg.RequireCampaign,
		RecordOnSubmit:  cfg.RecordOnSubmit,
	})
	e.loadGoal()
	return e
}

// Rate returns the pledged donation fraction.
func (e *Engine) Rate() float64 { return e.cfg.Rate }

// Campaigns returns the read-only campaign catalog.
func (e *Engine) Campaigns() []model.Campaign {
	out := make([]model.Campaign, len(e.cfg.Catalog))
	copy(out, e.cfg.Catalog)
	return out
}

// Totals derives the current purchase and donation sums.
func (e *Engine) Totals() model.Totals {
	return e.led.Totals()
}

// Progress derives percentage-complete and on-track status.
func (e *Engine) Progress() model.Progress {
	return Evaluate(e.led.Totals(), e.cfg.Rate)
}

// History returns the ordered entry sequence.
func (e *Engine) History() []model.LedgerEntry {
	return e.led.All()
}

// Daily returns per-day purchase/donation sums over the last n days.
func (e *Engine) Daily(days int) []model.DailyFlow {
	return report.AggregateDaily(e.led.All(), days)
}

// CampaignBreakdown returns per-campaign donation sums.
func (e *Engine) CampaignBreakdown() []model.CampaignStats {
	return report.AggregateCampaigns(e.led.All())
}

// Step returns the guided flow's current step.
func (e *Engine) Step() Step { return e.flow.Step() }

// PendingPurchase returns the flow's in-progress purchase amount.
func (e *Engine) PendingPurchase() float64 { return e.flow.PendingPurchase() }

// PendingDonation returns the flow's computed donation amount.
func (e *Engine) PendingDonation() float64 { return e.flow.PendingDonation() }

// DeclarePurchase starts the guided flow.
func (e *Engine) DeclarePurchase() error { return e.flow.DeclarePurchase() }

// DeclineNone reports "nothing to log"; the flow stays put.
func (e *Engine) DeclineNone() error { return e.flow.DeclineNone() }

// SubmitPurchaseAmount advances the flow past amount entry.
func (e *Engine) SubmitPurchaseAmount(amount float64) error {
	return e.flow.SubmitAmount(amount)
}

// ConfirmDonation records the pledge and completes the flow.
func (e *Engine) ConfirmDonation(campaign string) ([]model.LedgerEntry, error) {
	return e.flow.ConfirmDonation(campaign)
}

// DeferDonation postpones the donation, returning an encouragement.
func (e *Engine) DeferDonation() (string, error) {
	return e.flow.DeferDonation()
}

// Restart returns a completed flow to the start.
func (e *Engine) Restart() error { return e.flow.Restart() }

// CancelFlow abandons the guided flow from any step.
func (e *Engine) CancelFlow() { e.flow.Cancel() }

// RecordManualPurchase appends a purchase outside the guided flow. The
// flow's current step is never touched.
func (e *Engine) RecordManualPurchase(amount float64, note string) (model.LedgerEntry, error) {
	return e.led.Append(ledger.Draft{
		Kind:   model.KindPurchase,
		Amount: amount,
		Note:   note,
		Source: model.SourceManual,
	})
}

// RecordManualDonation appends a donation outside the guided flow. The
// campaign is optional for manual entries.
func (e *Engine) RecordManualDonation(amount float64, campaign, note string) (model.LedgerEntry, error) {
	return e.led.Append(ledger.Draft{
		Kind:     model.KindDonation,
		Amount:   amount,
		Campaign: campaign,
		Note:     note,
		Source:   model.SourceManual,
	})
}

// MergeEntries folds backup entries into the ledger, skipping duplicates.
func (e *Engine) MergeEntries(entries []model.LedgerEntry) int {
	return e.led.Merge(entries)
}

// ResetAll clears the ledger, persisted state, and the flow. Callers gate
// it behind explicit confirmation; the engine additionally suppresses
// rapid re-invocation.
func (e *Engine) ResetAll() error {
	now := time.Now()
	if !e.lastReset.IsZero() && now.Sub(e.lastReset) < resetMinInterval {
		return ErrResetThrottled
	}
	e.lastReset = now

	e.led.Reset()
	e.flow.Cancel()
	e.goal = 0
	return nil
}

// Degraded reports whether persistence failed this session.
func (e *Engine) Degraded() bool { return e.led.Degraded() }

// DonationGoal returns the user's optional self-set goal, if present.
func (e *Engine) DonationGoal() (float64, bool) {
	return e.goal, e.goal > 0
}

// SetDonationGoal stores a goal; zero clears it. Negative or non-finite
// values are rejected.
func (e *Engine) SetDonationGoal(amount float64) error {
	if amount == 0 {
		e.goal = 0
		if e.values != nil {
			if err := e.values.DeleteValue(goalKey); err != nil {
				e.log.Warn("could not clear stored goal", "err", err)
			}
		}
		return nil
	}
	if !ledger.ValidAmount(amount) {
		return ledger.ErrInvalidAmount
	}

	e.goal = amount
	if e.values != nil {
		if err := e.values.SetValue(goalKey, strconv.FormatFloat(amount, 'f', -1, 64)); err != nil {
			e.log.Warn("could not store goal, keeping it for this session only", "err", err)
		}
	}
	return nil
}

func (e *Engine) loadGoal() {
	if e.values == nil {
		return
	}
	raw, err := e.values.GetValue(goalKey)
	if err != nil {
		return
	}
	goal, err := strconv.ParseFloat(raw, 64)
	if err != nil || !ledger.ValidAmount(goal) {
		return
	}
	e.goal = goal
}
