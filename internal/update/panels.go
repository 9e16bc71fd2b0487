package update

import (
	"strings"
	"time"

	"github.com/sandeepkv93/neuroflow/internal/countdown"
	"github.com/sandeepkv93/neuroflow/internal/display"
	"github.com/sandeepkv93/neuroflow/internal/notify"
	"github.com/sandeepkv93/neuroflow/internal/views"
)

func (m Model) renderTabView() string {
	s := m.styles
	switch m.CurrentTab {
	case TabChat:
		return views.RenderChat(s, m.chatData())
	case TabDiary:
		return views.RenderDiary(s, m.diaryData())
	case TabLearn:
		titles := make([]string, len(learnArticles))
		for i, a := range learnArticles {
			titles[i] = a.Title
		}
		return views.RenderLearn(s, views.LearnData{Titles: titles, Active: m.learnAt, BodyView: m.learnViewport.View()})
	case TabRegulator:
		return views.RenderRegulator(s, m.regulatorData())
	case TabTimer:
		return views.RenderTimer(s, views.TimerData{
			Mode:         string(m.focus.Mode()),
			Clock:        m.focus.Clock(),
			Running:      m.focus.Running(),
			ProgressView: m.focusProgress.ViewAs(m.focus.Fraction()),
			ProgressPct:  int(m.focus.Fraction() * 100),
			Quick:        countdown.QuickMinutes,
		})
	case TabGames:
		return views.RenderGames(s, m.gamesData())
	case TabSettings:
		return views.RenderSettings(s, m.settingsData())
	default:
		return views.RenderHome(s, m.homeData())
	}
}

func (m Model) homeData() views.HomeData {
	habits, tasks := m.homeRows()
	all := m.app.Tasks()
	energy := m.app.Energy()

	d := views.HomeData{
		Points:      m.app.Points(),
		Premium:     m.app.Premium(),
		EnergyLabel: energy.Label(),
		EnergyHint:  energy.Hint(),
		Completion:  display.CompletionPercent(all),
		Adding:      m.home.adding,
		AddView:     m.addInput.View(),
	}
	for i, h := range habits {
		d.Habits = append(d.Habits, views.HabitRow{Title: h.Title, Icon: h.Icon, Completed: h.Completed, Selected: i == m.home.cursor})
	}
	open := 0
	for _, t := range all {
		if !t.Completed {
			open++
		}
	}
	for i, t := range tasks {
		d.Tasks = append(d.Tasks, views.TaskRow{Title: t.Title, Completed: t.Completed, IsMicro: t.IsMicro, Selected: len(habits)+i == m.home.cursor})
	}
	d.Hidden = open - len(tasks)
	for _, p := range display.DailyPulse(all, time.Local) {
		d.Pulse = append(d.Pulse, views.PulseBar{Label: p.Label, Count: p.Count, Bar: display.Bar(p.Value, 12)})
	}
	return d
}

func (m Model) chatData() views.ChatData {
	d := views.ChatData{InputView: m.chatInput.View(), Loading: m.chatBusy, SpinnerView: m.busySpinner.View()}
	for _, e := range m.chat {
		msg := views.ChatMessage{FromUser: e.fromUser, Content: e.content}
		for _, st := range e.steps {
			msg.Steps = append(msg.Steps, st.Step)
		}
		d.Messages = append(d.Messages, msg)
	}
	return d
}

func (m Model) diaryData() views.DiaryData {
	d := views.DiaryData{
		EditorView:  m.diaryArea.View(),
		Loading:     m.diaryBusy,
		SpinnerView: m.busySpinner.View(),
		ResultView:  m.resultView,
	}
	for _, e := range m.diary {
		d.History = append(d.History, views.DiaryEntry{Date: e.date, Summary: e.thoughts.Summary})
	}
	return d
}

func (m Model) regulatorData() views.RegulatorData {
	if m.exercise == nil {
		return views.RegulatorData{}
	}
	s := m.exercise.Session
	d := views.RegulatorData{
		Active:   true,
		Kind:     string(m.exercise.Kind),
		Clock:    s.Clock(),
		Prompt:   m.exercise.Prompt(),
		Paused:   !s.Running(),
		Progress: display.Bar(s.Fraction(), 20),
	}
	if m.exercise.Kind == countdown.ExerciseGrounding {
		d.Step = m.exercise.GroundingStep()
		d.Steps = 5
	}
	return d
}

func (m Model) gamesData() views.GamesData {
	d := views.GamesData{
		BubbleCursor: m.bubbleAt,
		BubbleScore:  m.bubbles.Score(),
		TargetActive: m.target.Active(),
		TargetDone:   m.target.Finished(),
		TargetScore:  m.target.Score(),
		HighScore:    m.target.HighScore(),
		TimeLeft:     display.Clock(m.target.TimeLeft()),
		TargetTop:    m.target.Target().Top,
		TargetLeft:   m.target.Target().Left,
		SpinAngle:    m.spin.Angle(),
		SpinBar:      display.Bar(m.spin.Intensity(), 16),
	}
	for i := 0; i < m.bubbles.Len(); i++ {
		d.Bubbles = append(d.Bubbles, m.bubbles.Popped(i))
	}
	return d
}

func (m Model) settingsData() views.SettingsData {
	theme := m.app.Theme()
	d := views.SettingsData{
		Editing:   m.settings.editing,
		EditView:  m.colorInput.View(),
		Premium:   m.app.Premium(),
		Backend:   m.cfg.StorageBackend,
		Notify:    m.DesktopEnabled,
		GatewayOn: m.gateway != nil,
	}
	for i, f := range themeFields {
		d.Rows = append(d.Rows, views.ThemeRow{Field: string(f), Color: themeValue(theme, f), Selected: i == m.settings.cursor})
	}
	return d
}

func (m Model) renderCheckoutView() string {
	flow := m.checkout.flow
	d := views.CheckoutData{
		Step:        string(flow.Step()),
		Plan:        flow.Plan().Label(),
		PlanPrice:   flow.Plan().Price(),
		PlanIndex:   m.checkout.planIndex,
		Method:      string(flow.Method()),
		Processing:  flow.Processing(),
		SpinnerView: m.busySpinner.View(),
	}
	for _, p := range checkoutPlans {
		d.Plans = append(d.Plans, p.Label()+"  "+p.Price())
	}
	return views.RenderCheckout(m.styles, d)
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}

func (m Model) renderNotificationsView() string {
	if len(m.Notifications) == 0 {
		return ""
	}
	n := m.Notifications[len(m.Notifications)-1]
	return views.RenderNotification(n.Level, n.Body)
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	m.push(notify.Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	})
}

// push records n in the in-app feed only.
func (m *Model) push(n notify.Notification) {
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
}

// alert raises n on the desktop as well. Only an expired focus session does.
func (m *Model) alert(n notify.Notification) {
	m.push(n)
	if m.DesktopEnabled && m.notifier != nil {
		if err := m.notifier.Send(n); err != nil {
			m.logger.Debug("desktop notification failed", "title", n.Title, "error", err)
		}
	}
}
