package update

import (
	"context"
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/neuroflow/internal/config"
	"github.com/sandeepkv93/neuroflow/internal/gateway"
	"github.com/sandeepkv93/neuroflow/internal/logging"
	"github.com/sandeepkv93/neuroflow/internal/model"
	"github.com/sandeepkv93/neuroflow/internal/notify"
	"github.com/sandeepkv93/neuroflow/internal/persist"
	"github.com/sandeepkv93/neuroflow/internal/scheduler"
	"github.com/sandeepkv93/neuroflow/internal/state"
	"github.com/sandeepkv93/neuroflow/internal/storage"
	"github.com/sandeepkv93/neuroflow/internal/views"
)

type harness struct {
	app      *state.App
	sync     *persist.Sync
	store    *storage.MemoryStore
	recorder *notify.Recorder
	styles   *views.Styles
}

// newTestModel wires a model to an engine that is never started, so ticks
// only arrive when a test sends them.
func newTestModel(t *testing.T) (Model, *harness) {
	t.Helper()
	h := &harness{store: storage.NewMemoryStore(), recorder: &notify.Recorder{}}
	logger := logging.New(io.Discard, "error")
	h.sync = persist.NewSync(h.store, nil, logger)
	h.app = state.New(model.DefaultSnapshot(), func(s model.Snapshot) {
		h.sync.Persist(context.Background(), s)
	})
	h.styles = views.NewStyles(h.app.Theme())
	h.sync.SetSurface(h.styles)

	cfg := config.DefaultRuntimeConfig()
	cfg.DesktopNotifications = true
	m := NewModel(Deps{
		App:      h.app,
		Sync:     h.sync,
		Engine:   scheduler.NewEngine(),
		Notifier: h.recorder,
		Styles:   h.styles,
		Config:   cfg,
		Logger:   logger,
	})
	t.Cleanup(m.Close)
	return m, h
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+p":
		return tea.KeyMsg{Type: tea.KeyCtrlP}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	if strings.HasPrefix(k, "alt+") {
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(strings.TrimPrefix(k, "alt+")), Alt: true}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		m, _ = send(m, keyMsg(k))
	}
	return m
}

func tick(m Model, kind slotKind) Model {
	m, _ = send(m, TickMsg{Kind: kind, Handle: m.slots[kind].Handle()})
	return m
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newTestModel(t)
	if m.CurrentTab != TabHome {
		t.Fatalf("expected default tab %q, got %q", TabHome, m.CurrentTab)
	}
	if m.Keys.Quit != "q" {
		t.Fatalf("expected quit key q, got %q", m.Keys.Quit)
	}
	if m.focus.Clock() != "25:00" {
		t.Fatalf("expected 25:00 focus session, got %s", m.focus.Clock())
	}
	if m.Init() == nil {
		t.Fatal("expected init command")
	}
}

func TestTabKeysSwitchAndWrap(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, "tab")
	if m.CurrentTab != TabChat {
		t.Fatalf("expected chat tab, got %q", m.CurrentTab)
	}
	m = press(m, "shift+tab", "shift+tab")
	if m.CurrentTab != TabSettings {
		t.Fatalf("expected wrap to settings, got %q", m.CurrentTab)
	}
	m = press(m, "alt+6")
	if m.CurrentTab != TabTimer {
		t.Fatalf("expected timer tab, got %q", m.CurrentTab)
	}
}

func TestUpdateSwitchTabMsg(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(m, SwitchTabMsg{Tab: TabGames})
	if m.CurrentTab != TabGames {
		t.Fatalf("expected games tab, got %q", m.CurrentTab)
	}
	m, _ = send(m, SwitchTabMsg{Tab: Tab("Unknown")})
	if m.CurrentTab != TabGames {
		t.Fatalf("expected tab unchanged for unknown tab, got %q", m.CurrentTab)
	}
}

func TestQuitKeyIgnoredWhileTyping(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(m, SwitchTabMsg{Tab: TabChat})
	m = press(m, "q")
	if m.Quitting || m.chatInput.Value() != "q" {
		t.Fatalf("expected q to be typed, quitting=%v value=%q", m.Quitting, m.chatInput.Value())
	}

	m, _ = send(m, SwitchTabMsg{Tab: TabLearn})
	m, cmd := send(m, keyMsg("q"))
	if !m.Quitting || cmd == nil {
		t.Fatal("expected quit outside of text input")
	}
}

func TestHomeToggleTaskAwardsPoints(t *testing.T) {
	m, h := newTestModel(t)
	m = press(m, "j", "j", "j", " ")

	if h.app.Points() != state.TaskPoints {
		t.Fatalf("expected %d points, got %d", state.TaskPoints, h.app.Points())
	}
	tasks := h.app.Tasks()
	if !tasks[0].Completed || tasks[0].CompletedAt == nil {
		t.Fatalf("expected first task completed, got %+v", tasks[0])
	}
	_, visible := m.homeRows()
	if len(visible) != 1 {
		t.Fatalf("expected one open task left on screen, got %d", len(visible))
	}
	if m.home.cursor != 3 {
		t.Fatalf("expected cursor clamped to last row, got %d", m.home.cursor)
	}
}

func TestHomeToggleHabit(t *testing.T) {
	m, h := newTestModel(t)
	press(m, " ")
	if h.app.Points() != state.HabitPoints || !h.app.Habits()[0].Completed {
		t.Fatalf("expected first habit completed with %d points, got %d", state.HabitPoints, h.app.Points())
	}
}

func TestHomeAddTaskWithKeyboard(t *testing.T) {
	m, h := newTestModel(t)
	m = press(m, "a", "call the dentist", "enter")
	tasks := h.app.Tasks()
	if len(tasks) != 3 || tasks[0].Title != "call the dentist" {
		t.Fatalf("expected new task first, got %+v", tasks)
	}
	if m.home.adding {
		t.Fatal("expected add input closed")
	}

	m = press(m, "a", "   ", "enter")
	if !m.Status.IsError || len(h.app.Tasks()) != 3 {
		t.Fatalf("expected blank title rejected, status=%+v", m.Status)
	}
}

func TestHomeEnergyCycle(t *testing.T) {
	m, h := newTestModel(t)
	press(m, "e")
	if h.app.Energy() != model.EnergyHigh {
		t.Fatalf("expected high energy after medium, got %s", h.app.Energy())
	}
}

func TestTimerStartTickAndExpiryNotifies(t *testing.T) {
	m, h := newTestModel(t)
	m, _ = send(m, SwitchTabMsg{Tab: TabTimer})
	require.True(t, m.focus.SetDuration(2))

	m = press(m, " ")
	require.True(t, m.focus.Running())
	require.True(t, m.slotLive(slotFocus))

	m = tick(m, slotFocus)
	assert.Equal(t, 1, m.focus.Remaining())
	m = tick(m, slotFocus)

	assert.Equal(t, 0, m.focus.Remaining())
	assert.False(t, m.focus.Running())
	assert.False(t, m.slotLive(slotFocus))
	require.Len(t, h.recorder.Sent, 1)
	assert.Equal(t, "Time's up!", h.recorder.Sent[0].Title)
	assert.Equal(t, "Time for a break!", h.recorder.Sent[0].Body)

	m = press(m, " ")
	assert.True(t, m.Status.IsError, "expired session should not restart without reset")
	m = press(m, "r")
	assert.Equal(t, 2, m.focus.Remaining())
}

func TestTimerQuickDurationAndAdjust(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(m, SwitchTabMsg{Tab: TabTimer})
	m = press(m, "1")
	assert.Equal(t, 300, m.focus.Remaining())
	assert.Equal(t, "break", string(m.focus.Mode()))

	m = press(m, "-", "-", "-", "-", "-", "-")
	assert.Equal(t, 60, m.focus.Remaining(), "adjust never goes below one minute")
	m = press(m, "+")
	assert.Equal(t, 120, m.focus.Remaining())

	m = press(m, " ", "+")
	assert.True(t, m.Status.IsError)
	assert.Equal(t, 120, m.focus.Remaining())
}

func TestStaleTickIsIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(m, SwitchTabMsg{Tab: TabTimer})
	m = press(m, " ")
	stale := m.slots[slotFocus].Handle()
	m = press(m, " ", " ")
	require.NotEqual(t, stale, m.slots[slotFocus].Handle())

	before := m.focus.Remaining()
	m, cmd := send(m, TickMsg{Kind: slotFocus, Handle: stale})
	if m.focus.Remaining() != before {
		t.Fatalf("stale tick advanced the session: %d -> %d", before, m.focus.Remaining())
	}
	if cmd == nil {
		t.Fatal("expected tick listener to be re-armed")
	}
}

func TestLeavingTimerPausesAndKeepsRemaining(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(m, SwitchTabMsg{Tab: TabTimer})
	m = press(m, " ")
	m = tick(m, slotFocus)
	m, _ = send(m, SwitchTabMsg{Tab: TabHome})

	assert.False(t, m.focus.Running())
	assert.False(t, m.slotLive(slotFocus))
	assert.Equal(t, 25*60-1, m.focus.Remaining())
}

func TestRegulatorExerciseLifecycle(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(m, SwitchTabMsg{Tab: TabRegulator})
	m = press(m, "g")
	require.NotNil(t, m.exercise)
	assert.Equal(t, "Name 5 things you can see", m.exercise.Prompt())

	for i := 0; i < 18; i++ {
		m = tick(m, slotExercise)
	}
	assert.Equal(t, "Name 4 things you can touch", m.exercise.Prompt())

	m = press(m, " ")
	assert.False(t, m.exercise.Session.Running())
	assert.False(t, m.slotLive(slotExercise))

	m, _ = send(m, SwitchTabMsg{Tab: TabHome})
	assert.Nil(t, m.exercise)
}

func TestBreathExerciseEndsItself(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(m, SwitchTabMsg{Tab: TabRegulator})
	m = press(m, "b")
	for i := 0; i < 60; i++ {
		m = tick(m, slotExercise)
	}
	assert.Nil(t, m.exercise)
	assert.False(t, m.slotLive(slotExercise))
}

func TestTargetRoundSavesHighScore(t *testing.T) {
	m, h := newTestModel(t)
	m, _ = send(m, SwitchTabMsg{Tab: TabGames})
	m = press(m, "t", "enter", "enter", "enter")
	require.Equal(t, 3, m.target.Score())

	for i := 0; i < 30; i++ {
		m = tick(m, slotGame)
	}
	assert.False(t, m.target.Active())
	assert.False(t, m.slotLive(slotGame))
	assert.Equal(t, 3, m.target.HighScore())
	assert.Equal(t, 3, h.sync.LoadHighScore(context.Background()))
}

func TestLeavingGamesAbandonsRound(t *testing.T) {
	m, h := newTestModel(t)
	m, _ = send(m, SwitchTabMsg{Tab: TabGames})
	m = press(m, "t", "enter", "f")
	m, _ = send(m, SwitchTabMsg{Tab: TabHome})

	assert.False(t, m.target.Active())
	assert.False(t, m.slotLive(slotGame))
	assert.False(t, m.slotLive(slotSpinner))
	assert.True(t, m.spin.Idle())
	assert.Equal(t, 0, h.sync.LoadHighScore(context.Background()))
}

func TestBubbleBoardRefillsAfterClear(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(m, SwitchTabMsg{Tab: TabGames})
	var cmd tea.Cmd
	for i := 0; i < m.bubbles.Len(); i++ {
		m, cmd = send(m, keyMsg(" "))
		m = press(m, "l")
	}
	require.True(t, m.bubbles.Cleared())
	require.NotNil(t, cmd, "expected refill to be scheduled")

	m, _ = send(m, BubbleRefillMsg{})
	assert.False(t, m.bubbles.Cleared())
	assert.Equal(t, m.bubbles.Len(), m.bubbles.Score())
}

func TestSpinnerDecaysAndDetaches(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(m, SwitchTabMsg{Tab: TabGames})
	m = press(m, "f")
	require.True(t, m.slotLive(slotSpinner))

	for i := 0; i < 2000 && m.slotLive(slotSpinner); i++ {
		m = tick(m, slotSpinner)
	}
	assert.True(t, m.spin.Idle())
	assert.False(t, m.slotLive(slotSpinner))
}

func TestBreakdownFailureFallsBackWithoutTasks(t *testing.T) {
	m, h := newTestModel(t)
	m, _ = send(m, SwitchTabMsg{Tab: TabChat})
	m = press(m, "clean my room")
	m, cmd := send(m, keyMsg("enter"))
	require.NotNil(t, cmd)
	require.True(t, m.chatBusy)

	m, _ = send(m, BreakdownResultMsg{Goal: "clean my room"})
	assert.False(t, m.chatBusy)
	require.Len(t, m.chat, 2)
	assert.Equal(t, gateway.BreakDownFailed, m.chat[1].content)
	assert.Len(t, h.app.Tasks(), 2)
}

func TestBreakdownStepBecomesMicroTask(t *testing.T) {
	m, h := newTestModel(t)
	m, _ = send(m, SwitchTabMsg{Tab: TabChat})
	m, _ = send(m, BreakdownResultMsg{Goal: "taxes", Steps: []gateway.Step{
		{Step: "find last year's forms"}, {Step: "open the tax site"}, {Step: "fill the first page"},
	}})
	require.Equal(t, gateway.StepsIntro, m.chat[0].content)

	press(m, "2")
	tasks := h.app.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, "open the tax site", tasks[0].Title)
	assert.True(t, tasks[0].IsMicro)
}

func TestOrganizeFailureKeepsDraft(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(m, SwitchTabMsg{Tab: TabDiary})
	m.diaryArea.SetValue("too much stuff in my head")
	m, cmd := send(m, keyMsg("ctrl+s"))
	require.NotNil(t, cmd)

	m, _ = send(m, OrganizeResultMsg{Text: "too much stuff in my head"})
	assert.Equal(t, "too much stuff in my head", m.diaryArea.Value())
	assert.True(t, m.Status.IsError)
	assert.Empty(t, m.diary)

	m, _ = send(m, OrganizeResultMsg{Text: "too much stuff in my head", OK: true, Thoughts: gateway.Thoughts{
		Summary:   "You are overloaded.",
		KeyPoints: []string{"a", "b", "c"},
	}})
	assert.Empty(t, m.diaryArea.Value())
	require.Len(t, m.diary, 1)
	assert.Equal(t, "You are overloaded.", m.diary[0].thoughts.Summary)
	assert.NotNil(t, m.result)
	assert.Contains(t, m.resultView, "You are overloaded.")
	assert.Contains(t, m.View(), "You are overloaded.")

	m = press(m, "esc")
	assert.Nil(t, m.result)
	assert.Empty(t, m.resultView)
}

func TestCheckoutGrantsPremiumOnce(t *testing.T) {
	m, h := newTestModel(t)
	m = press(m, "p")
	require.NotNil(t, m.checkout)

	m = press(m, "j", "enter")
	assert.Equal(t, "monthly", string(m.checkout.flow.Plan()))
	m = press(m, "enter")
	assert.True(t, m.Status.IsError, "paying without a method must fail")

	m, cmd := send(m, keyMsg("x"))
	require.Nil(t, cmd)
	m, cmd = send(m, keyMsg("enter"))
	require.NotNil(t, cmd)
	require.True(t, m.checkout.flow.Processing())

	m, _ = send(m, CheckoutProcessedMsg{Flow: m.checkout.flow})
	assert.True(t, h.app.Premium())
	assert.Equal(t, state.PremiumReward, h.app.Points())

	m, _ = send(m, CheckoutProcessedMsg{Flow: m.checkout.flow})
	assert.Equal(t, state.PremiumReward, h.app.Points())

	m, cmd = send(m, keyMsg("enter"))
	assert.Nil(t, m.checkout)
	require.NotNil(t, cmd)
	assert.Equal(t, SwitchTabMsg{Tab: TabHome}, cmd())
}

func TestCheckoutClosedWhileProcessingDoesNotGrant(t *testing.T) {
	m, h := newTestModel(t)
	m = press(m, "p", "enter", "c", "enter")
	flow := m.checkout.flow
	m = press(m, "esc")
	require.Nil(t, m.checkout)

	send(m, CheckoutProcessedMsg{Flow: flow})
	assert.False(t, h.app.Premium())
	assert.Zero(t, h.app.Points())
}

func TestThemeBackgroundReachesPanel(t *testing.T) {
	m, h := newTestModel(t)
	press(m, "ctrl+p", "theme background #222222", "enter")
	assert.Equal(t, "#222222", h.app.Theme().Background)
	assert.Equal(t, lipgloss.Color("#222222"), h.styles.Panel.GetBackground())
}

func TestPaletteResultsStayInApp(t *testing.T) {
	m, h := newTestModel(t)
	m = press(m, "ctrl+p", "add x", "enter")
	m = press(m, "/", "nope", "enter")
	require.NotEmpty(t, m.Notifications)
	assert.Empty(t, h.recorder.Sent, "only an expired focus session reaches the desktop")
}

func TestPaletteCommands(t *testing.T) {
	m, h := newTestModel(t)

	m = press(m, "ctrl+p", "add call mom", "enter")
	assert.False(t, m.Palette.Active)
	assert.Equal(t, "call mom", h.app.Tasks()[0].Title)

	m = press(m, "/", "energy low", "enter")
	assert.Equal(t, model.EnergyLow, h.app.Energy())

	m = press(m, "/", "focus 10", "enter")
	assert.Equal(t, TabTimer, m.CurrentTab)
	assert.Equal(t, 600, m.focus.Remaining())
	assert.Equal(t, "break", string(m.focus.Mode()))

	m = press(m, "/", "theme primary #ff0000", "enter")
	assert.Equal(t, "#ff0000", h.app.Theme().Primary)
	assert.Equal(t, "#ff0000", h.styles.Theme().Primary, "theme change should reach the styles")

	m = press(m, "/", "nope", "enter")
	assert.True(t, m.Status.IsError)

	m, cmd := send(press(m, "/", "breakdown write thesis"), keyMsg("enter"))
	assert.Equal(t, TabChat, m.CurrentTab)
	assert.True(t, m.chatBusy)
	assert.NotNil(t, cmd)
}

func TestSurvivalModeTakesOverView(t *testing.T) {
	m, h := newTestModel(t)
	m = press(m, "s")
	require.True(t, h.app.Survival())
	assert.Contains(t, m.View(), "survival mode")

	m = press(m, "tab")
	assert.Equal(t, TabHome, m.CurrentTab, "keys other than enter are ignored")
	press(m, "enter")
	assert.False(t, h.app.Survival())
}

func TestSettingsEditColor(t *testing.T) {
	m, h := newTestModel(t)
	m, _ = send(m, SwitchTabMsg{Tab: TabSettings})
	m = press(m, "j", "enter")
	require.True(t, m.settings.editing)
	assert.Equal(t, h.app.Theme().Background, m.colorInput.Value())

	m.colorInput.SetValue("oops")
	m = press(m, "enter")
	assert.True(t, m.Status.IsError)
	assert.True(t, m.settings.editing)

	m.colorInput.SetValue("#000000")
	m = press(m, "enter")
	assert.False(t, m.settings.editing)
	assert.Equal(t, "#000000", h.app.Theme().Background)

	press(m, "r")
	assert.Equal(t, model.NeutralTheme(), h.app.Theme())
}

func TestViewContainsCoreState(t *testing.T) {
	m, _ := newTestModel(t)
	m.Status = StatusBar{Text: "all good"}
	out := m.View()
	for _, want := range []string{"neuroflow | Home", "all good", "Drink a glass of water", "Meditate"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output: %q", want, out)
		}
	}
}

func TestHelpPanelListsTabBindings(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(m, SwitchTabMsg{Tab: TabTimer})
	m = press(m, "?")
	if !m.HelpVisible {
		t.Fatal("expected help visible")
	}
	if !strings.Contains(m.View(), "quick durations") {
		t.Fatalf("expected timer bindings in help: %q", m.View())
	}
}

func TestCloseReleasesTickListener(t *testing.T) {
	m, _ := newTestModel(t)
	m.Close()
	m.Close()
	if msg := waitForTickCmd(m.ticks, m.done)(); msg != nil {
		t.Fatalf("expected nil message after close, got %T", msg)
	}
}
