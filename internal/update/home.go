package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/neuroflow/internal/display"
	"github.com/sandeepkv93/neuroflow/internal/model"
	"github.com/sandeepkv93/neuroflow/internal/state"
)

var energyCycle = []model.EnergyMode{model.EnergyLow, model.EnergyMedium, model.EnergyHigh}

// homeRows is the cursor space of the home tab: habits first, then the
// visible open tasks.
func (m Model) homeRows() (habits []model.Habit, tasks []model.Task) {
	return m.app.Habits(), display.VisibleTasks(m.app.Tasks(), visibleTaskLimit)
}

func (m Model) handleHomeKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.home.adding {
		return m.handleAddKey(msg)
	}
	habits, tasks := m.homeRows()
	rows := len(habits) + len(tasks)
	switch msg.String() {
	case "j", "down":
		if m.home.cursor < rows-1 {
			m.home.cursor++
		}
	case "k", "up":
		if m.home.cursor > 0 {
			m.home.cursor--
		}
	case " ", "enter":
		m.toggleHomeRow(habits, tasks)
	case "a":
		m.home.adding = true
		m.addInput.SetValue("")
		m.addInput.Focus()
	case "e":
		m.cycleEnergy()
	case "s":
		m.app.SetSurvival(true)
	case "p":
		m.openCheckout()
	}
	return m, nil
}

func (m *Model) toggleHomeRow(habits []model.Habit, tasks []model.Task) {
	i := m.home.cursor
	switch {
	case i < len(habits):
		if m.app.ToggleHabit(habits[i].ID) {
			m.Status = StatusBar{Text: fmt.Sprintf("+%d dopamine points", state.HabitPoints)}
		}
	case i-len(habits) < len(tasks):
		task, ok := m.app.ToggleTask(tasks[i-len(habits)].ID)
		if !ok {
			return
		}
		m.Status = StatusBar{Text: fmt.Sprintf("+%d dopamine points: %s", state.TaskPoints, task.Title)}
		_, remaining := m.homeRows()
		if last := len(habits) + len(remaining) - 1; m.home.cursor > last && last >= 0 {
			m.home.cursor = last
		}
	}
}

func (m Model) handleAddKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.home.adding = false
		m.addInput.Blur()
		return m, nil
	case "enter":
		title := strings.TrimSpace(m.addInput.Value())
		if _, err := m.app.AddTask(title); err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m, nil
		}
		m.home.adding = false
		m.addInput.SetValue("")
		m.addInput.Blur()
		m.Status = StatusBar{Text: "added: " + title}
		return m, nil
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	return m, cmd
}

func (m *Model) cycleEnergy() {
	current := m.app.Energy()
	next := energyCycle[0]
	for i, mode := range energyCycle {
		if mode == current {
			next = energyCycle[(i+1)%len(energyCycle)]
			break
		}
	}
	if err := m.app.SetEnergyMode(next); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return
	}
	m.Status = StatusBar{Text: "energy: " + next.Label()}
}

func (m Model) handleSurvivalKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "enter" || msg.String() == "esc" {
		m.app.SetSurvival(false)
		m.Status = StatusBar{Text: "welcome back"}
	}
	return m, nil
}
