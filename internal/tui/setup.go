package tui

import (
	"strconv"

	"github.com/spendforprogress/pledge/internal/config"
	"github.com/spendforprogress/pledge/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// setupValues collects first-run choices before they are written to config.
type setupValues struct {
	rate      string
	require   bool
	onSubmit  bool
	themeName string
}

// newSetupForm builds the first-run wizard. The form writes into vals;
// saveSetupConfig applies them once the form completes.
func newSetupForm(vals *setupValues) *huh.Form {
	vals.rate = "0.5"
	vals.require = true
	vals.themeName = theme.Active.Name

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Donation rate").
				Description("The share of each purchase you pledge to donate.").
				Options(
					huh.NewOption("25%", "0.25"),
					huh.NewOption("50% (the classic pledge)", "0.5"),
					huh.NewOption("75%", "0.75"),
					huh.NewOption("100% — match every purchase", "1"),
				).
				Value(&vals.rate),

			huh.NewConfirm().
				Title("Require a campaign for each donation?").
				Description("When on, the guided flow insists you pick a cause.").
				Affirmative("Yes").
				Negative("No").
				Value(&vals.require),

			huh.NewSelect[bool]().
				Title("When should a purchase be recorded?").
				Options(
					huh.NewOption("Together with the donation, at confirmation", false),
					huh.NewOption("Immediately, as soon as I enter the amount", true),
				).
				Value(&vals.onSubmit),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(
					huh.NewOption("Flexoki Dark", "flexoki-dark"),
					huh.NewOption("Catppuccin Mocha", "catppuccin-mocha"),
					huh.NewOption("Tokyo Night", "tokyo-night"),
					huh.NewOption("Terminal (ANSI 16)", "terminal"),
				).
				Value(&vals.themeName),
		),
	)
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.saveSetupConfig()
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

func (a *App) saveSetupConfig() {
	cfg, _ := config.Load()

	if rate, err := strconv.ParseFloat(a.setupVals.rate, 64); err == nil && rate > 0 && rate <= 1 {
		cfg.Pledge.DonationRate = rate
	}
	cfg.Pledge.RequireCampaign = a.setupVals.require
	cfg.Pledge.RecordOnSubmit = a.setupVals.onSubmit
	cfg.Appearance.Theme = a.setupVals.themeName
	theme.SetActive(cfg.Appearance.Theme)

	// Best-effort: the engine keeps this session's policy, the file holds
	// the next one's.
	_ = config.Save(cfg)
}
