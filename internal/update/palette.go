package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/neuroflow/internal/commands"
)

func (m Model) openPalette() Model {
	m.Palette.Active = true
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	m.Status = StatusBar{Text: "command palette active"}
	return m
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m = m.closePalette()
	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var follow tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			task, err := m.app.AddTask(a.Title)
			if err != nil {
				return commands.Result{}, err
			}
			m.switchTab(TabHome)
			return commands.Result{Message: "added task: " + task.Title}, nil
		},
		Breakdown: func(a commands.TextArgs) (commands.Result, error) {
			if m.chatBusy {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "assistant is still thinking"}
			}
			m.switchTab(TabChat)
			m, follow = m.askBreakdown(a.Text)
			return commands.Result{Message: "breaking it down..."}, nil
		},
		Organize: func(a commands.TextArgs) (commands.Result, error) {
			if m.diaryBusy {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "diary is still organizing"}
			}
			m.switchTab(TabDiary)
			m.diaryArea.SetValue(a.Text)
			m, follow = m.askOrganize(a.Text)
			return commands.Result{Message: "organizing..."}, nil
		},
		Theme: func(a commands.ThemeArgs) (commands.Result, error) {
			if a.Reset {
				m.app.ResetTheme()
				return commands.Result{Message: "theme reset"}, nil
			}
			if err := m.app.SetThemeColor(a.Field, a.Color); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("%s set to %s", a.Field, a.Color)}, nil
		},
		Energy: func(a commands.EnergyArgs) (commands.Result, error) {
			if err := m.app.SetEnergyMode(a.Mode); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "energy: " + a.Mode.Label()}, nil
		},
		Focus: func(a commands.FocusArgs) (commands.Result, error) {
			m.switchTab(TabTimer)
			if !m.setFocusMinutes(a.Minutes) {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "could not set timer"}
			}
			return commands.Result{Message: fmt.Sprintf("%s timer set to %d min", m.focus.Mode(), a.Minutes)}, nil
		},
		Survival: func() (commands.Result, error) {
			m.app.SetSurvival(true)
			return commands.Result{Message: "survival mode"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m, nil
	}
	m.Status = StatusBar{Text: res.Message}
	m.notify("Command", res.Message, "info")
	return m, follow
}
