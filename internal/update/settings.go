package update

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/neuroflow/internal/checkout"
	"github.com/sandeepkv93/neuroflow/internal/model"
)

var themeFields = []model.ThemeField{model.ThemePrimary, model.ThemeBackground, model.ThemeText, model.ThemeCard}

var checkoutPlans = []checkout.Plan{checkout.PlanAnnual, checkout.PlanMonthly}

func themeValue(t model.Theme, f model.ThemeField) string {
	switch f {
	case model.ThemePrimary:
		return t.Primary
	case model.ThemeBackground:
		return t.Background
	case model.ThemeText:
		return t.Text
	case model.ThemeCard:
		return t.Card
	}
	return ""
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.settings.editing {
		return m.handleColorKey(msg)
	}
	switch msg.String() {
	case "j", "down":
		if m.settings.cursor < len(themeFields)-1 {
			m.settings.cursor++
		}
	case "k", "up":
		if m.settings.cursor > 0 {
			m.settings.cursor--
		}
	case "enter":
		m.settings.editing = true
		m.colorInput.SetValue(themeValue(m.app.Theme(), themeFields[m.settings.cursor]))
		m.colorInput.CursorEnd()
		m.colorInput.Focus()
	case "r":
		m.app.ResetTheme()
		m.Status = StatusBar{Text: "theme reset"}
	case "p":
		m.openCheckout()
	}
	return m, nil
}

func (m Model) handleColorKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.settings.editing = false
		m.colorInput.Blur()
		return m, nil
	case "enter":
		field := themeFields[m.settings.cursor]
		color := strings.TrimSpace(m.colorInput.Value())
		if err := m.app.SetThemeColor(field, color); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.settings.editing = false
		m.colorInput.Blur()
		m.Status = StatusBar{Text: string(field) + " set to " + color}
		return m, nil
	}
	var cmd tea.Cmd
	m.colorInput, cmd = m.colorInput.Update(msg)
	return m, cmd
}

func (m *Model) openCheckout() {
	if m.app.Premium() {
		m.Status = StatusBar{Text: "you're already Pro"}
		return
	}
	app := m.app
	m.checkout = &checkoutState{flow: checkout.NewFlow(func() {
		app.GrantPremium()
	})}
}

func checkoutProcessedCmd(flow *checkout.Flow) tea.Cmd {
	return tea.Tick(checkout.ProcessingDelay, func(time.Time) tea.Msg {
		return CheckoutProcessedMsg{Flow: flow}
	})
}

func (m Model) handleCheckoutKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	co := m.checkout
	flow := co.flow
	key := msg.String()
	if key == "esc" {
		flow.Close()
		m.checkout = nil
		return m, nil
	}
	switch flow.Step() {
	case checkout.StepPlan:
		switch key {
		case "j", "down":
			if co.planIndex < len(checkoutPlans)-1 {
				co.planIndex++
			}
			_ = flow.SelectPlan(checkoutPlans[co.planIndex])
		case "k", "up":
			if co.planIndex > 0 {
				co.planIndex--
			}
			_ = flow.SelectPlan(checkoutPlans[co.planIndex])
		case "enter":
			_ = flow.Continue()
		}
	case checkout.StepPayment:
		switch key {
		case "c":
			_ = flow.SelectMethod(checkout.MethodCard)
		case "x":
			_ = flow.SelectMethod(checkout.MethodPix)
		case "backspace":
			_ = flow.Back()
		case "enter":
			if err := flow.Pay(); err != nil {
				m.Status = StatusBar{Text: "choose card or pix first", IsError: true}
				return m, nil
			}
			return m, tea.Batch(checkoutProcessedCmd(flow), m.busySpinner.Tick)
		}
	case checkout.StepSuccess:
		if key == "enter" {
			m.checkout = nil
			return m, switchTabCmd(TabHome)
		}
	}
	return m, nil
}

// onCheckoutProcessed completes the flow the timer was armed for. A flow
// closed in the meantime refuses to complete.
func (m *Model) onCheckoutProcessed(msg CheckoutProcessedMsg) {
	if msg.Flow == nil {
		return
	}
	if err := msg.Flow.Complete(); err != nil {
		return
	}
	m.Status = StatusBar{Text: "welcome to Pro"}
}
