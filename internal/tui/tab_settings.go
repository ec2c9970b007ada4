package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spendforprogress/pledge/internal/cli"
	"github.com/spendforprogress/pledge/internal/config"
	"github.com/spendforprogress/pledge/internal/pledge"
	"github.com/spendforprogress/pledge/internal/tui/components"
	"github.com/spendforprogress/pledge/internal/tui/theme"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	settingsFieldRate = iota
	settingsFieldRequireCampaign
	settingsFieldRecordTiming
	settingsFieldTheme
	settingsFieldGoal
	settingsFieldReset
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor       int
	editing      bool
	input        textinput.Model
	confirmReset bool
	saved        bool   // flash "saved" message briefly
	saveErr      error  // non-nil if last save failed
	notice       string // extra info line (e.g. restart hint)
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 32
	ti.Width = 30
	return ti
}

// updateSettingsNav handles keys on the settings tab outside edit mode.
// Returns handled=false for keys the caller should treat as global.
func (a App) updateSettingsNav(key string) (bool, tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		if a.settings.cursor < settingsFieldCount-1 {
			a.settings.cursor++
		}
		a.settings.confirmReset = false
		return true, a, nil
	case "k", "up":
		if a.settings.cursor > 0 {
			a.settings.cursor--
		}
		a.settings.confirmReset = false
		return true, a, nil
	case "esc":
		if a.settings.confirmReset {
			a.settings.confirmReset = false
			return true, a, nil
		}
		return false, a, nil
	case "enter":
		model, cmd := a.settingsActivate()
		return true, model, cmd
	}
	return false, a, nil
}

// settingsActivate performs the selected field's action: toggles apply
// immediately, editable fields open a text input, reset needs a second
// enter.
func (a App) settingsActivate() (tea.Model, tea.Cmd) {
	cfg := loadConfigOrDefault()
	a.settings.saved = false
	a.settings.notice = ""

	switch a.settings.cursor {
	case settingsFieldRate, settingsFieldGoal:
		ti := newSettingsInput()
		if a.settings.cursor == settingsFieldRate {
			ti.Placeholder = "50 (percent of each purchase)"
			ti.SetValue(strconv.FormatFloat(cfg.Pledge.DonationRate*100, 'f', -1, 64))
		} else {
			ti.Placeholder = "500 (empty to clear)"
			if goal, ok := a.eng.DonationGoal(); ok {
				ti.SetValue(strconv.FormatFloat(goal, 'f', -1, 64))
			}
		}
		ti.Focus()
		a.settings.editing = true
		a.settings.input = ti
		return a, ti.Cursor.BlinkCmd()

	case settingsFieldRequireCampaign:
		cfg.Pledge.RequireCampaign = !cfg.Pledge.RequireCampaign
		a.settings.saveErr = config.Save(cfg)
		a.settings.saved = a.settings.saveErr == nil
		a.settings.notice = "applies on next launch"
		return a, nil

	case settingsFieldRecordTiming:
		cfg.Pledge.RecordOnSubmit = !cfg.Pledge.RecordOnSubmit
		a.settings.saveErr = config.Save(cfg)
		a.settings.saved = a.settings.saveErr == nil
		a.settings.notice = "applies on next launch"
		return a, nil

	case settingsFieldTheme:
		next := 0
		for i, th := range theme.All {
			if th.Name == cfg.Appearance.Theme {
				next = (i + 1) % len(theme.All)
				break
			}
		}
		cfg.Appearance.Theme = theme.All[next].Name
		theme.SetActive(cfg.Appearance.Theme)
		a.settings.saveErr = config.Save(cfg)
		a.settings.saved = a.settings.saveErr == nil
		return a, nil

	case settingsFieldReset:
		if !a.settings.confirmReset {
			a.settings.confirmReset = true
			return a, nil
		}
		a.settings.confirmReset = false
		if err := a.eng.ResetAll(); err != nil {
			if errors.Is(err, pledge.ErrResetThrottled) {
				a.settings.notice = "reset was just applied"
			} else {
				a.settings.saveErr = err
			}
			return a, nil
		}
		a.hist.cursor = 0
		a.settings.notice = "ledger cleared"
		return a.resetPledgeForm()
	}
	return a, nil
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "enter":
		a.settingsSaveInput()
		a.settings.editing = false
		return a, nil
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

func (a *App) settingsSaveInput() {
	cfg := loadConfigOrDefault()
	val := strings.TrimSpace(a.settings.input.Value())
	a.settings.saveErr = nil
	a.settings.notice = ""

	switch a.settings.cursor {
	case settingsFieldRate:
		pct, err := strconv.ParseFloat(strings.TrimSuffix(val, "%"), 64)
		if err != nil || pct <= 0 || pct > 100 {
			a.settings.notice = "rate must be between 1 and 100"
			return
		}
		cfg.Pledge.DonationRate = pct / 100
		a.settings.saveErr = config.Save(cfg)
		a.settings.saved = a.settings.saveErr == nil
		a.settings.notice = "applies on next launch"

	case settingsFieldGoal:
		if val == "" {
			a.settings.saveErr = a.eng.SetDonationGoal(0)
			a.settings.saved = a.settings.saveErr == nil
			return
		}
		goal, err := strconv.ParseFloat(val, 64)
		if err != nil {
			a.settings.notice = "goal must be a positive number"
			return
		}
		a.settings.saveErr = a.eng.SetDonationGoal(goal)
		a.settings.saved = a.settings.saveErr == nil
	}
}

func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := loadConfigOrDefault()

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover).Bold(true)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright)
	greenStyle := lipgloss.NewStyle().Foreground(t.Green)
	warnStyle := lipgloss.NewStyle().Foreground(t.Orange)
	redStyle := lipgloss.NewStyle().Foreground(t.Red)

	recordTiming := "with donation"
	if cfg.Pledge.RecordOnSubmit {
		recordTiming = "on amount entry"
	}

	goalDisplay := "(not set)"
	if goal, ok := a.eng.DonationGoal(); ok {
		goalDisplay = cli.FormatAmount(goal)
	}

	resetDisplay := "press Enter twice"
	if a.settings.confirmReset {
		resetDisplay = "really erase everything? Enter to confirm, Esc to keep"
	}

	type field struct {
		label string
		value string
	}
	fields := []field{
		{"Donation rate", fmt.Sprintf("%.0f%%", cfg.Pledge.DonationRate*100)},
		{"Require campaign", strconv.FormatBool(cfg.Pledge.RequireCampaign)},
		{"Record purchase", recordTiming},
		{"Theme", cfg.Appearance.Theme},
		{"Donation goal", goalDisplay},
		{"Reset ledger", resetDisplay},
	}

	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-18s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			value := f.value
			if i == settingsFieldReset && a.settings.confirmReset {
				formBody.WriteString(markerStyle.Render("▸ "))
				formBody.WriteString(selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
				formBody.WriteString(redStyle.Background(t.SurfaceHover).Render(value))
				formBody.WriteString("\n")
				continue
			}
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(selectedLabelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(selectedStyle.Render(value))
		} else {
			formBody.WriteString("  ")
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-18s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}

	if a.settings.saveErr != nil {
		formBody.WriteString("\n")
		formBody.WriteString(warnStyle.Render(fmt.Sprintf("Save failed: %s", a.settings.saveErr)))
	} else if a.settings.saved {
		formBody.WriteString("\n")
		formBody.WriteString(greenStyle.Render("Saved!"))
	}
	if a.settings.notice != "" {
		formBody.WriteString("\n")
		formBody.WriteString(labelStyle.Render(a.settings.notice))
	}

	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit/toggle  [Esc] cancel"))

	// General info card
	var infoBody strings.Builder
	infoBody.WriteString(labelStyle.Render("Data directory: ") + valueStyle.Render(config.DataDir(cfg)) + "\n")
	infoBody.WriteString(labelStyle.Render("Config file:    ") + valueStyle.Render(config.Path()) + "\n")
	infoBody.WriteString(labelStyle.Render("Entries:        ") + valueStyle.Render(strconv.Itoa(len(a.eng.History()))))
	if a.eng.Degraded() {
		infoBody.WriteString("\n")
		infoBody.WriteString(warnStyle.Render("Storage unavailable — this session is memory only."))
	}

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("About", infoBody.String(), cw))

	return b.String()
}
