package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spendforprogress/pledge/internal/cli"
	"github.com/spendforprogress/pledge/internal/ledger"
	"github.com/spendforprogress/pledge/internal/model"
	"github.com/spendforprogress/pledge/internal/pledge"
	"github.com/spendforprogress/pledge/internal/tui/components"
	"github.com/spendforprogress/pledge/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// pledgeState holds the guided-flow tab's form and transient display
// strings. The flow itself lives in the engine; this only mirrors it.
type pledgeState struct {
	form    *huh.Form
	vals    *pledgeVals
	message string
	errMsg  string
	logged  []model.LedgerEntry
}

// pledgeVals backs the huh form fields. It lives behind a pointer because
// the App model is copied on every update and huh writes through pointers
// captured at form construction time.
type pledgeVals struct {
	choice   string // ask step: "yes" or "no"
	amount   string
	campaign string
	action   string // donation step: "donate" or "defer"
}

// buildPledgeForm creates the huh form for the engine's current step.
// The complete step has no form; it renders a summary instead.
func (a App) buildPledgeForm() *huh.Form {
	switch a.eng.Step() {
	case pledge.StepAskPurchase:
		return huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Did you buy something for yourself?").
				Options(
					huh.NewOption("Yes — log a purchase", "yes"),
					huh.NewOption("Not today", "no"),
				).
				Value(&a.pledgeUI.vals.choice),
		))

	case pledge.StepEnterAmount:
		return huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("How much did you spend?").
				Placeholder("25.00").
				Validate(func(s string) error {
					amount, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
					if err != nil || !ledger.ValidAmount(amount) {
						return fmt.Errorf("enter an amount greater than zero")
					}
					return nil
				}).
				Value(&a.pledgeUI.vals.amount),
		))

	case pledge.StepShowDonation:
		campaignOpts := make([]huh.Option[string], 0, len(a.eng.Campaigns())+1)
		for _, c := range a.eng.Campaigns() {
			campaignOpts = append(campaignOpts, huh.NewOption(c.Name, c.Name))
		}
		campaignOpts = append(campaignOpts, huh.NewOption("(no campaign)", ""))

		return huh.NewForm(huh.NewGroup(
			huh.NewSelect[string]().
				Title("Which campaign?").
				Options(campaignOpts...).
				Value(&a.pledgeUI.vals.campaign),
			huh.NewSelect[string]().
				Title(fmt.Sprintf("Donate %s now?", cli.FormatAmount(a.eng.PendingDonation()))).
				Options(
					huh.NewOption("Donate now", "donate"),
					huh.NewOption("Maybe later", "defer"),
				).
				Value(&a.pledgeUI.vals.action),
		))

	default:
		return nil
	}
}

func (a App) resetPledgeForm() (tea.Model, tea.Cmd) {
	a.pledgeUI = pledgeState{vals: &pledgeVals{}}
	a.pledgeUI.form = a.buildPledgeForm()
	if a.pledgeUI.form == nil {
		return a, nil
	}
	return a, a.pledgeUI.form.Init()
}

// updatePledgeTab routes key events on the pledge tab. The live form gets
// most keys; esc cancels the flow, arrows switch tabs where that cannot
// collide with text editing.
func (a App) updatePledgeTab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	step := a.eng.Step()

	if key == "esc" && step != pledge.StepAskPurchase {
		a.eng.CancelFlow()
		return a.resetPledgeForm()
	}

	if (key == "left" || key == "right") && step != pledge.StepEnterAmount {
		if key == "left" {
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		} else {
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		}
		return a, nil
	}

	if step == pledge.StepComplete {
		switch key {
		case "enter":
			_ = a.eng.Restart()
			return a.resetPledgeForm()
		case "q":
			return a, tea.Quit
		case "?":
			a.showHelp = !a.showHelp
			return a, nil
		default:
			if len(key) == 1 {
				if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
					a.activeTab = idx
				}
			}
			return a, nil
		}
	}

	if a.pledgeUI.form != nil {
		return a.updatePledgeForm(msg)
	}
	return a, nil
}

func (a App) updatePledgeForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.pledgeUI.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.pledgeUI.form = f
	}

	switch a.pledgeUI.form.State {
	case huh.StateCompleted:
		return a.advancePledgeFlow()
	case huh.StateAborted:
		a.eng.CancelFlow()
		return a.resetPledgeForm()
	}

	return a, cmd
}

// advancePledgeFlow applies the completed form's choice to the engine and
// rebuilds the form for whatever step the engine lands on.
func (a App) advancePledgeFlow() (tea.Model, tea.Cmd) {
	st := &a.pledgeUI
	st.errMsg = ""
	st.message = ""

	switch a.eng.Step() {
	case pledge.StepAskPurchase:
		if st.vals.choice == "yes" {
			_ = a.eng.DeclarePurchase()
		} else {
			_ = a.eng.DeclineNone()
			st.message = "Nothing to log. Enjoy your day!"
		}

	case pledge.StepEnterAmount:
		amount, err := strconv.ParseFloat(strings.TrimSpace(st.vals.amount), 64)
		if err != nil {
			st.errMsg = "enter an amount greater than zero"
			break
		}
		if err := a.eng.SubmitPurchaseAmount(amount); err != nil {
			st.errMsg = flowErrMsg(err)
		}

	case pledge.StepShowDonation:
		if st.vals.action == "defer" {
			msg, _ := a.eng.DeferDonation()
			st.message = msg
		} else {
			logged, err := a.eng.ConfirmDonation(st.vals.campaign)
			if err != nil {
				st.errMsg = flowErrMsg(err)
			} else {
				st.logged = logged
			}
		}
	}

	st.vals = &pledgeVals{}
	st.form = a.buildPledgeForm()
	if st.form == nil {
		return a, nil
	}
	return a, st.form.Init()
}

func flowErrMsg(err error) string {
	switch {
	case errors.Is(err, ledger.ErrInvalidAmount):
		return "enter an amount greater than zero"
	case errors.Is(err, ledger.ErrMissingCampaign):
		return "pick a campaign before donating"
	default:
		return err.Error()
	}
}

func (a App) renderPledgeTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	greenStyle := lipgloss.NewStyle().Foreground(t.Green)
	errStyle := lipgloss.NewStyle().Foreground(t.Red)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var body strings.Builder

	switch a.eng.Step() {
	case pledge.StepEnterAmount:
		body.WriteString(labelStyle.Render(fmt.Sprintf("Your pledge: donate %.0f%% of what you spend.", a.eng.Rate()*100)))
		body.WriteString("\n\n")

	case pledge.StepShowDonation:
		body.WriteString(labelStyle.Render("Purchase: ") + valueStyle.Render(cli.FormatAmount(a.eng.PendingPurchase())))
		body.WriteString("\n")
		body.WriteString(labelStyle.Render("Pledged:  ") + valueStyle.Render(cli.FormatAmount(a.eng.PendingDonation())))
		body.WriteString("\n\n")

	case pledge.StepComplete:
		body.WriteString(greenStyle.Render("Pledge recorded!"))
		body.WriteString("\n\n")
		for _, e := range a.pledgeUI.logged {
			line := fmt.Sprintf("%s %s", cli.FormatKind(e.Kind), cli.FormatAmount(e.Amount))
			if e.Campaign != "" {
				line += " → " + e.Campaign
			}
			body.WriteString(valueStyle.Render(line))
			body.WriteString("\n")
		}
		progress := a.eng.Progress()
		body.WriteString("\n")
		body.WriteString(labelStyle.Render(fmt.Sprintf("Progress: %s toward %s (%s)",
			cli.FormatPercent(progress.PercentUncapped),
			cli.FormatAmount(progress.Target),
			cli.FormatStatus(progress.Status))))
		body.WriteString("\n\n")
		body.WriteString(hintStyle.Render("[Enter] log another purchase"))
	}

	if a.pledgeUI.message != "" {
		body.WriteString(greenStyle.Render(a.pledgeUI.message))
		body.WriteString("\n\n")
	}
	if a.pledgeUI.errMsg != "" {
		body.WriteString(errStyle.Render(a.pledgeUI.errMsg))
		body.WriteString("\n\n")
	}

	if a.pledgeUI.form != nil {
		body.WriteString(a.pledgeUI.form.View())
		if a.eng.Step() != pledge.StepAskPurchase {
			body.WriteString("\n")
			body.WriteString(hintStyle.Render("[Esc] cancel"))
		}
	}

	return components.ContentCard("Pledge", body.String(), cw)
}
