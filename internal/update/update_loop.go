package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/neuroflow/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForTickCmd(m.ticks, m.done), textarea.Blink)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case TickMsg:
		return m.handleTick(typed)
	case spinner.TickMsg:
		if m.busy() {
			var cmd tea.Cmd
			m.busySpinner, cmd = m.busySpinner.Update(typed)
			return m, cmd
		}
	case BreakdownResultMsg:
		m.onBreakdownResult(typed)
		return m, nil
	case OrganizeResultMsg:
		m.onOrganizeResult(typed)
		return m, nil
	case CheckoutProcessedMsg:
		m.onCheckoutProcessed(typed)
		return m, nil
	case BubbleRefillMsg:
		m.refillBubbles()
		return m, nil
	case SwitchTabMsg:
		m.switchTab(typed.Tab)
		return m, nil
	}
	return m, nil
}

func (m Model) busy() bool {
	processing := m.checkout != nil && m.checkout.flow.Processing()
	return m.chatBusy || m.diaryBusy || processing
}

// typing reports whether keystrokes belong to a text input.
func (m Model) typing() bool {
	switch {
	case m.home.adding, m.settings.editing:
		return true
	case m.CurrentTab == TabChat, m.CurrentTab == TabDiary:
		return true
	}
	return false
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if key == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.app.Survival() {
		return m.handleSurvivalKey(msg)
	}
	if m.Palette.Active {
		return m.handlePaletteKey(msg)
	}
	if m.checkout != nil {
		return m.handleCheckoutKey(msg)
	}

	switch key {
	case m.Keys.NextTab:
		m.shiftTab(1)
		return m, nil
	case m.Keys.PrevTab:
		m.shiftTab(-1)
		return m, nil
	case m.Keys.Palette:
		return m.openPalette(), nil
	}
	if !m.typing() {
		switch key {
		case "/":
			return m.openPalette(), nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}
	}
	if strings.HasPrefix(key, "alt+") && len(key) == 5 && key[4] >= '1' && key[4] <= '8' {
		m.switchTab(tabOrder[int(key[4]-'1')])
		return m, nil
	}

	switch m.CurrentTab {
	case TabHome:
		return m.handleHomeKey(msg)
	case TabChat:
		return m.handleChatKey(msg)
	case TabDiary:
		return m.handleDiaryKey(msg)
	case TabLearn:
		return m.handleLearnKey(msg)
	case TabRegulator:
		return m.handleRegulatorKey(msg)
	case TabTimer:
		return m.handleTimerKey(msg)
	case TabGames:
		return m.handleGamesKey(msg)
	case TabSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	if m.app.Survival() {
		return m.styles.Panel.Render(views.RenderSurvival(m.styles))
	}

	body := m.renderTabView()
	if m.checkout != nil {
		body = m.renderCheckoutView()
	}

	aside := strings.TrimSpace(strings.Join([]string{
		m.renderCommandPalette(),
		m.renderHelpIfVisible(),
	}, "\n"))

	tabs := make([]string, len(tabOrder))
	for i, t := range tabOrder {
		tabs[i] = string(t)
	}

	return views.RenderApp(m.styles, views.AppData{
		Header:       fmt.Sprintf("neuroflow | %s | %d pts", m.CurrentTab, m.app.Points()),
		Tabs:         tabs,
		ActiveTab:    tabIndex(m.CurrentTab),
		Body:         body,
		Aside:        aside,
		StatusLine:   m.Status.Text,
		StatusError:  m.Status.IsError,
		Notification: m.renderNotificationsView(),
		Footer:       fmt.Sprintf("keys: %s/%s tabs | %s or / cmd | %s help | %s quit (ctrl+c while typing)", m.Keys.NextTab, m.Keys.PrevTab, m.Keys.Palette, m.Keys.Help, m.Keys.Quit),
	})
}
