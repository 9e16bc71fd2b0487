package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/neuroflow/internal/countdown"
	"github.com/sandeepkv93/neuroflow/internal/notify"
)

func (m Model) handleTimerKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case " ":
		if m.focus.Running() {
			m.focus.Pause()
			m.stopSlot(slotFocus)
			m.Status = StatusBar{Text: "timer paused"}
			return m, nil
		}
		if !m.focus.Start() {
			m.Status = StatusBar{Text: "time's up, press r to reset", IsError: true}
			return m, nil
		}
		if err := m.startSlot(slotFocus, m.cfg.TickInterval()); err != nil {
			m.focus.Pause()
			m.Status = StatusBar{Text: fmt.Sprintf("timer unavailable: %v", err), IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("%s running", m.focus.Mode())}
	case "r":
		m.focus.Reset()
		m.stopSlot(slotFocus)
		m.Status = StatusBar{Text: "timer reset"}
	case "+", "=":
		m.adjustFocus(countdown.MinAdjustSec)
	case "-":
		m.adjustFocus(-countdown.MinAdjustSec)
	case "1", "2", "3", "4":
		minutes := countdown.QuickMinutes[int(msg.String()[0]-'1')]
		if !m.focus.SetQuickDuration(minutes) {
			m.Status = StatusBar{Text: "pause the timer before changing it", IsError: true}
			return m, nil
		}
		m.Status = StatusBar{Text: fmt.Sprintf("%s set to %d min", m.focus.Mode(), minutes)}
	}
	return m, nil
}

func (m *Model) adjustFocus(delta int) {
	if !m.focus.Adjust(delta) {
		m.Status = StatusBar{Text: "pause the timer before changing it", IsError: true}
		return
	}
	m.Status = StatusBar{Text: "duration " + m.focus.Clock()}
}

func (m *Model) onFocusTick() {
	if !m.focus.Tick() {
		if !m.focus.Running() {
			m.stopSlot(slotFocus)
		}
		return
	}
	m.stopSlot(slotFocus)
	n := notify.SessionEnded(string(m.focus.Mode()))
	m.alert(n)
	m.Status = StatusBar{Text: n.Title + " " + n.Body}
}

// setFocusMinutes is the palette path into the timer; it stops a running
// session first.
func (m *Model) setFocusMinutes(minutes int) bool {
	m.focus.Pause()
	m.stopSlot(slotFocus)
	return m.focus.SetQuickDuration(minutes)
}

func (m Model) handleRegulatorKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "b":
		m.beginExercise(countdown.ExerciseBreath)
	case "g":
		m.beginExercise(countdown.ExerciseGrounding)
	case " ":
		if m.exercise == nil {
			return m, nil
		}
		if m.exercise.Session.Running() {
			m.exercise.Session.Pause()
			m.stopSlot(slotExercise)
			return m, nil
		}
		if m.exercise.Session.Start() {
			_ = m.startSlot(slotExercise, m.cfg.TickInterval())
		}
	case "x", "esc":
		if m.exercise != nil {
			m.exercise = nil
			m.stopSlot(slotExercise)
			m.Status = StatusBar{Text: "exercise stopped"}
		}
	}
	return m, nil
}

func (m *Model) beginExercise(kind countdown.ExerciseKind) {
	m.exercise = countdown.NewExercise(kind)
	if err := m.startSlot(slotExercise, m.cfg.TickInterval()); err != nil {
		m.exercise = nil
		m.Status = StatusBar{Text: fmt.Sprintf("exercise unavailable: %v", err), IsError: true}
		return
	}
	m.Status = StatusBar{Text: string(kind) + " started"}
}

func (m *Model) onExerciseTick() {
	if m.exercise == nil {
		m.stopSlot(slotExercise)
		return
	}
	m.exercise.Session.Tick()
	if m.exercise.Done() {
		m.exercise = nil
		m.stopSlot(slotExercise)
		m.Status = StatusBar{Text: "well done, take that calm with you"}
	}
}
