package update

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/neuroflow/internal/gateway"
	"github.com/sandeepkv93/neuroflow/internal/views"
)

// diaryHistoryLimit bounds the in-session diary history.
const diaryHistoryLimit = 20

func breakdownCmd(ctx context.Context, gw *gateway.Adapter, goal string) tea.Cmd {
	return func() tea.Msg {
		if gw == nil {
			return BreakdownResultMsg{Goal: goal}
		}
		return BreakdownResultMsg{Goal: goal, Steps: gw.BreakDownGoal(ctx, goal)}
	}
}

func organizeCmd(ctx context.Context, gw *gateway.Adapter, text string) tea.Cmd {
	return func() tea.Msg {
		if gw == nil {
			return OrganizeResultMsg{Text: text}
		}
		thoughts, ok := gw.OrganizeThoughts(ctx, text)
		return OrganizeResultMsg{Text: text, Thoughts: thoughts, OK: ok}
	}
}

func (m Model) handleChatKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	key := msg.String()
	if key == "enter" {
		goal := strings.TrimSpace(m.chatInput.Value())
		if goal == "" || m.chatBusy {
			return m, nil
		}
		m.chatInput.SetValue("")
		return m.askBreakdown(goal)
	}
	if len(key) == 1 && key >= "1" && key <= "5" && strings.TrimSpace(m.chatInput.Value()) == "" {
		if m.addChatStep(int(key[0] - '1')) {
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m Model) askBreakdown(goal string) (Model, tea.Cmd) {
	m.chat = append(m.chat, chatEntry{fromUser: true, content: goal})
	m.chatBusy = true
	return m, tea.Batch(breakdownCmd(m.ctx, m.gateway, goal), m.busySpinner.Tick)
}

// addChatStep turns step i of the latest suggestion into a micro task.
func (m *Model) addChatStep(i int) bool {
	for j := len(m.chat) - 1; j >= 0; j-- {
		entry := m.chat[j]
		if entry.fromUser || len(entry.steps) == 0 {
			continue
		}
		if i >= len(entry.steps) {
			return false
		}
		task, err := m.app.AddMicroTask(entry.steps[i].Step)
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return true
		}
		m.Status = StatusBar{Text: "added micro task: " + task.Title}
		return true
	}
	return false
}

func (m *Model) onBreakdownResult(msg BreakdownResultMsg) {
	m.chatBusy = false
	if len(msg.Steps) == 0 {
		m.chat = append(m.chat, chatEntry{content: gateway.BreakDownFailed})
		return
	}
	m.chat = append(m.chat, chatEntry{content: gateway.StepsIntro, steps: msg.Steps})
}

func (m Model) handleDiaryKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		text := strings.TrimSpace(m.diaryArea.Value())
		if text == "" || m.diaryBusy {
			return m, nil
		}
		return m.askOrganize(text)
	}
	if msg.String() == "esc" && m.result != nil {
		m.result = nil
		m.resultView = ""
		return m, nil
	}
	var cmd tea.Cmd
	m.diaryArea, cmd = m.diaryArea.Update(msg)
	return m, cmd
}

func (m Model) askOrganize(text string) (Model, tea.Cmd) {
	m.diaryBusy = true
	return m, tea.Batch(organizeCmd(m.ctx, m.gateway, text), m.busySpinner.Tick)
}

// onOrganizeResult keeps the draft untouched on failure so nothing typed is
// lost.
func (m *Model) onOrganizeResult(msg OrganizeResultMsg) {
	m.diaryBusy = false
	if !msg.OK {
		m.Status = StatusBar{Text: gateway.OrganizeFailed, IsError: true}
		return
	}
	thoughts := msg.Thoughts
	m.result = &thoughts
	m.resultView = views.RenderMarkdown(thoughtsMarkdown(thoughts), 58)
	m.diary = append([]diaryEntry{{
		date:     time.Now().Format("2006-01-02"),
		original: msg.Text,
		thoughts: thoughts,
	}}, m.diary...)
	if len(m.diary) > diaryHistoryLimit {
		m.diary = m.diary[:diaryHistoryLimit]
	}
	m.diaryArea.Reset()
	m.Status = StatusBar{Text: "thoughts organized"}
}

func thoughtsMarkdown(t gateway.Thoughts) string {
	var b strings.Builder
	b.WriteString("### Summary\n\n")
	b.WriteString(t.Summary + "\n\n")
	b.WriteString("### Key points\n\n")
	for i, p := range t.KeyPoints {
		b.WriteString(fmt.Sprintf("%d. %s\n", i+1, p))
	}
	return b.String()
}
