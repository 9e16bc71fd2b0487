package update

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/neuroflow/internal/scheduler"
)

// waitForTickCmd blocks for the next scheduler tick. Exactly one of these is
// outstanding at a time: Init arms the first and every TickMsg re-arms it.
func waitForTickCmd(ticks <-chan TickMsg, done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-ticks:
			return msg
		case <-done:
			return nil
		}
	}
}

// startSlot points the slot of the given kind at a fresh registration.
// Whatever the slot drove before is cancelled first.
func (m *Model) startSlot(kind slotKind, interval time.Duration) error {
	slot, ok := m.slots[kind]
	if !ok {
		return nil
	}
	ticks, done := m.ticks, m.done
	_, err := slot.Start(interval, func(tk scheduler.Tick) {
		select {
		case ticks <- TickMsg{Kind: kind, Handle: tk.Handle}:
		case <-done:
		}
	})
	if err != nil {
		m.logger.Warn("scheduler slot start failed", "slot", int(kind), "error", err)
	}
	return err
}

func (m *Model) stopSlot(kind slotKind) {
	if slot, ok := m.slots[kind]; ok {
		slot.Stop()
	}
}

func (m Model) slotLive(kind slotKind) bool {
	slot, ok := m.slots[kind]
	return ok && slot.Live()
}

func (m Model) handleTick(msg TickMsg) (Model, tea.Cmd) {
	next := waitForTickCmd(m.ticks, m.done)
	slot, ok := m.slots[msg.Kind]
	if !ok || !slot.Owns(msg.Handle) {
		return m, next
	}
	switch msg.Kind {
	case slotFocus:
		m.onFocusTick()
	case slotExercise:
		m.onExerciseTick()
	case slotGame:
		m.onGameTick()
	case slotSpinner:
		if !m.spin.Tick() {
			m.stopSlot(slotSpinner)
		}
	}
	return m, next
}

// leaveTab detaches everything the outgoing tab was driving. The focus timer
// keeps its remaining time; exercises, rounds and spin are discarded.
func (m *Model) leaveTab(from Tab) {
	switch from {
	case TabTimer:
		m.focus.Pause()
		m.stopSlot(slotFocus)
	case TabRegulator:
		m.exercise = nil
		m.stopSlot(slotExercise)
	case TabGames:
		m.target.Abandon()
		m.stopSlot(slotGame)
		m.spin = newSpinner()
		m.stopSlot(slotSpinner)
	case TabSettings:
		m.settings.editing = false
		m.colorInput.Blur()
	case TabHome:
		m.home.adding = false
		m.addInput.Blur()
	}
}

func (m *Model) switchTab(to Tab) {
	if to == m.CurrentTab || !isKnownTab(to) {
		return
	}
	m.leaveTab(m.CurrentTab)
	m.CurrentTab = to
}

func switchTabCmd(to Tab) tea.Cmd {
	return func() tea.Msg { return SwitchTabMsg{Tab: to} }
}

func (m *Model) shiftTab(delta int) {
	idx := tabIndex(m.CurrentTab)
	next := (idx + delta + len(tabOrder)) % len(tabOrder)
	m.switchTab(tabOrder[next])
}

func tabIndex(t Tab) int {
	for i, candidate := range tabOrder {
		if candidate == t {
			return i
		}
	}
	return 0
}

func isKnownTab(t Tab) bool {
	for _, candidate := range tabOrder {
		if candidate == t {
			return true
		}
	}
	return false
}
