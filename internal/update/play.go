package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/neuroflow/internal/decay"
	"github.com/sandeepkv93/neuroflow/internal/games"
)

func newSpinner() *decay.Spinner { return &decay.Spinner{} }

func bubbleRefillCmd() tea.Cmd {
	return tea.Tick(games.BubbleResetDelay*time.Millisecond, func(time.Time) tea.Msg { return BubbleRefillMsg{} })
}

func (m Model) handleGamesKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "h", "left":
		if m.bubbleAt > 0 {
			m.bubbleAt--
		}
	case "l", "right":
		if m.bubbleAt < m.bubbles.Len()-1 {
			m.bubbleAt++
		}
	case " ":
		if !m.bubbles.Pop(m.bubbleAt) {
			return m, nil
		}
		if m.bubbles.Cleared() && !m.refilling {
			m.refilling = true
			return m, bubbleRefillCmd()
		}
	case "t":
		if m.target.Active() {
			return m, nil
		}
		m.target.Start()
		if err := m.startSlot(slotGame, m.cfg.TickInterval()); err != nil {
			m.target.Abandon()
			m.Status = StatusBar{Text: fmt.Sprintf("game unavailable: %v", err), IsError: true}
		}
	case "enter":
		m.target.Hit()
	case "f":
		m.spin.Tap()
		if !m.slotLive(slotSpinner) {
			_ = m.startSlot(slotSpinner, m.cfg.SpinnerInterval())
		}
	}
	return m, nil
}

func (m *Model) onGameTick() {
	ended, newHigh := m.target.Tick()
	if !ended {
		if !m.target.Active() {
			m.stopSlot(slotGame)
		}
		return
	}
	m.stopSlot(slotGame)
	if newHigh {
		if m.sync != nil {
			m.sync.SaveHighScore(m.ctx, m.target.HighScore())
		}
		m.Status = StatusBar{Text: fmt.Sprintf("new high score: %d", m.target.HighScore())}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("round over: %d hits", m.target.Score())}
}

func (m *Model) refillBubbles() {
	m.bubbles.Refill()
	m.refilling = false
}
