package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/neuroflow/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.tabBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(string(m.CurrentTab), plain, m.helpModel.View(helpKeyMap{
		short: bindings,
		full:  [][]key.Binding{bindings},
	}))
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.NextTab, Action: "next tab"},
		{Key: m.Keys.PrevTab, Action: "previous tab"},
		{Key: "alt+1..8", Action: "jump to tab"},
		{Key: m.Keys.Palette, Action: "open command palette"},
		{Key: m.Keys.Help, Action: "toggle help panel"},
		{Key: m.Keys.Quit, Action: "quit app"},
	}
}

func (m Model) tabBindings() []KeyBinding {
	switch m.CurrentTab {
	case TabHome:
		return []KeyBinding{
			{Key: "j/k", Action: "move cursor"},
			{Key: "space", Action: "toggle habit or task"},
			{Key: "a", Action: "add task"},
			{Key: "e", Action: "cycle energy mode"},
			{Key: "s", Action: "survival mode"},
			{Key: "p", Action: "go pro"},
		}
	case TabChat:
		return []KeyBinding{
			{Key: "enter", Action: "break goal into micro-steps"},
			{Key: "1-5", Action: "add step as micro task (empty prompt)"},
		}
	case TabDiary:
		return []KeyBinding{
			{Key: "ctrl+s", Action: "organize thoughts"},
			{Key: "esc", Action: "dismiss result"},
		}
	case TabLearn:
		return []KeyBinding{
			{Key: "h/l", Action: "previous/next article"},
			{Key: "j/k", Action: "scroll"},
		}
	case TabRegulator:
		return []KeyBinding{
			{Key: "b", Action: "circular breathing"},
			{Key: "g", Action: "grounding 5-4-3-2-1"},
			{Key: "space", Action: "pause/resume"},
			{Key: "x", Action: "stop"},
		}
	case TabTimer:
		return []KeyBinding{
			{Key: "space", Action: "start/pause timer"},
			{Key: "r", Action: "reset timer"},
			{Key: "+/-", Action: "adjust by one minute"},
			{Key: "1-4", Action: "quick durations"},
		}
	case TabGames:
		return []KeyBinding{
			{Key: "h/l", Action: "move bubble cursor"},
			{Key: "space", Action: "pop bubble"},
			{Key: "t", Action: "start target round"},
			{Key: "enter", Action: "hit target"},
			{Key: "f", Action: "flick spinner"},
		}
	case TabSettings:
		return []KeyBinding{
			{Key: "j/k", Action: "select color"},
			{Key: "enter", Action: "edit color"},
			{Key: "r", Action: "reset theme"},
			{Key: "p", Action: "go pro"},
		}
	default:
		return []KeyBinding{{Key: "-", Action: "no contextual bindings"}}
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings())+len(m.tabBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	for _, kb := range m.tabBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
