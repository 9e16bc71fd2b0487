package update

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/neuroflow/internal/checkout"
	"github.com/sandeepkv93/neuroflow/internal/config"
	"github.com/sandeepkv93/neuroflow/internal/countdown"
	"github.com/sandeepkv93/neuroflow/internal/decay"
	"github.com/sandeepkv93/neuroflow/internal/games"
	"github.com/sandeepkv93/neuroflow/internal/gateway"
	"github.com/sandeepkv93/neuroflow/internal/model"
	"github.com/sandeepkv93/neuroflow/internal/notify"
	"github.com/sandeepkv93/neuroflow/internal/persist"
	"github.com/sandeepkv93/neuroflow/internal/scheduler"
	"github.com/sandeepkv93/neuroflow/internal/state"
	"github.com/sandeepkv93/neuroflow/internal/views"
)

type Tab string

const (
	TabHome      Tab = "Home"
	TabChat      Tab = "Assistant"
	TabDiary     Tab = "Diary"
	TabLearn     Tab = "Learn"
	TabRegulator Tab = "Regulate"
	TabTimer     Tab = "Timer"
	TabGames     Tab = "Games"
	TabSettings  Tab = "Settings"
)

var tabOrder = []Tab{TabHome, TabChat, TabDiary, TabLearn, TabRegulator, TabTimer, TabGames, TabSettings}

// visibleTaskLimit caps the open tasks shown on the home tab.
const visibleTaskLimit = 3

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	NextTab string
	PrevTab string
	Palette string
	Help    string
	Quit    string
}

type slotKind int

const (
	slotFocus slotKind = iota
	slotExercise
	slotGame
	slotSpinner
)

// TickMsg carries one scheduler tick into the update loop. Handle identifies
// the registration that produced it.
type TickMsg struct {
	Kind   slotKind
	Handle scheduler.Handle
}

type SwitchTabMsg struct {
	Tab Tab
}

type BreakdownResultMsg struct {
	Goal  string
	Steps []gateway.Step
}

type OrganizeResultMsg struct {
	Text     string
	Thoughts gateway.Thoughts
	OK       bool
}

// CheckoutProcessedMsg fires when the simulated payment delay elapses for
// Flow.
type CheckoutProcessedMsg struct {
	Flow *checkout.Flow
}

type BubbleRefillMsg struct{}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type chatEntry struct {
	fromUser bool
	content  string
	steps    []gateway.Step
}

type diaryEntry struct {
	date     string
	original string
	thoughts gateway.Thoughts
}

type homeState struct {
	cursor int
	adding bool
}

type settingsState struct {
	cursor  int
	editing bool
}

type checkoutState struct {
	flow      *checkout.Flow
	planIndex int
}

// Deps are the collaborators the model drives. Nil fields fall back to
// in-memory or no-op stand-ins; a nil Engine gets one that is never started.
type Deps struct {
	App      *state.App
	Sync     *persist.Sync
	Engine   *scheduler.Engine
	Gateway  *gateway.Adapter
	Notifier notify.DesktopNotifier
	Styles   *views.Styles
	Config   config.RuntimeConfig
	Logger   *slog.Logger
	Rand     *rand.Rand
}

type Model struct {
	CurrentTab     Tab
	Status         StatusBar
	Keys           GlobalKeyMap
	HelpVisible    bool
	Quitting       bool
	Notifications  []notify.Notification
	DesktopEnabled bool
	Palette        CommandPaletteState

	app      *state.App
	sync     *persist.Sync
	engine   *scheduler.Engine
	gateway  *gateway.Adapter
	notifier notify.DesktopNotifier
	styles   *views.Styles
	cfg      config.RuntimeConfig
	logger   *slog.Logger
	ctx      context.Context

	ticks chan TickMsg
	done  chan struct{}
	slots map[slotKind]*scheduler.Slot

	home       homeState
	focus      *countdown.Session
	exercise   *countdown.Exercise
	bubbles    *games.Bubbles
	bubbleAt   int
	refilling  bool
	target     *games.TargetGame
	spin       *decay.Spinner
	chat       []chatEntry
	chatBusy   bool
	diary      []diaryEntry
	result     *gateway.Thoughts
	resultView string
	diaryBusy  bool
	learnAt    int
	learnShown int
	settings   settingsState
	checkout   *checkoutState

	// Bubble components used for rich TUI controls
	addInput      textinput.Model
	chatInput     textinput.Model
	commandInput  textinput.Model
	colorInput    textinput.Model
	diaryArea     textarea.Model
	learnViewport viewport.Model
	focusProgress progress.Model
	busySpinner   spinner.Model
	helpModel     help.Model
}

func NewModel(deps Deps) Model {
	cfg := deps.Config
	if cfg.TickMillis <= 0 {
		cfg = config.DefaultRuntimeConfig()
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notifier := deps.Notifier
	if notifier == nil {
		notifier = notify.NoopDesktopNotifier{}
	}
	app := deps.App
	if app == nil {
		app = state.New(model.DefaultSnapshot(), nil)
	}
	styles := deps.Styles
	if styles == nil {
		styles = views.NewStyles(app.Theme())
	}
	rng := deps.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	engine := deps.Engine
	if engine == nil {
		engine = scheduler.NewEngine()
	}

	buffer := cfg.SchedulerBuffer
	if buffer <= 0 {
		buffer = 64
	}

	m := Model{
		CurrentTab:     TabHome,
		DesktopEnabled: cfg.DesktopNotifications,
		Keys: GlobalKeyMap{
			NextTab: "tab",
			PrevTab: "shift+tab",
			Palette: "ctrl+p",
			Help:    "?",
			Quit:    "q",
		},
		app:        app,
		sync:       deps.Sync,
		engine:     engine,
		gateway:    deps.Gateway,
		notifier:   notifier,
		styles:     styles,
		cfg:        cfg,
		logger:     logger,
		ctx:        context.Background(),
		ticks:      make(chan TickMsg, buffer),
		done:       make(chan struct{}),
		slots:      make(map[slotKind]*scheduler.Slot),
		focus:      countdown.NewSession("focus", cfg.FocusWorkMinutes*60, countdown.ModeFocus),
		bubbles:    games.NewBubbles(),
		spin:       newSpinner(),
		learnShown: -1,
	}
	highScore := 0
	if m.sync != nil {
		highScore = m.sync.LoadHighScore(m.ctx)
	}
	m.target = games.NewTargetGame(highScore, rng)
	for _, k := range []slotKind{slotFocus, slotExercise, slotGame, slotSpinner} {
		m.slots[k] = scheduler.NewSlot(m.engine)
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func (m *Model) initBubbleComponents() {
	m.addInput = textinput.New()
	m.addInput.Prompt = "add> "
	m.addInput.Placeholder = "something tiny you can do now"
	m.addInput.CharLimit = 256
	m.addInput.Width = 48

	m.chatInput = textinput.New()
	m.chatInput.Prompt = "goal> "
	m.chatInput.Placeholder = "what feels too big right now?"
	m.chatInput.CharLimit = 512
	m.chatInput.Width = 52

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.colorInput = textinput.New()
	m.colorInput.Prompt = "color> "
	m.colorInput.Placeholder = "#0ea5e9"
	m.colorInput.CharLimit = 7
	m.colorInput.Width = 12

	m.diaryArea = textarea.New()
	m.diaryArea.SetWidth(60)
	m.diaryArea.SetHeight(6)
	m.diaryArea.ShowLineNumbers = false
	m.diaryArea.Placeholder = "What's on your mind right now? Don't worry about order or grammar..."

	m.learnViewport = viewport.New(60, 14)
	m.focusProgress = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))

	m.busySpinner = spinner.New()
	m.busySpinner.Spinner = spinner.Dot

	m.helpModel = help.New()
}

func (m *Model) syncBubbleData() {
	switch m.CurrentTab {
	case TabChat:
		m.chatInput.Focus()
	case TabDiary:
		m.diaryArea.Focus()
	default:
		m.chatInput.Blur()
		m.diaryArea.Blur()
	}
	if m.Palette.Active {
		m.commandInput.Focus()
	}
	if m.home.adding {
		m.addInput.Focus()
	}
	if m.settings.editing {
		m.colorInput.Focus()
	}
	if m.learnShown != m.learnAt {
		m.learnViewport.SetContent(views.RenderMarkdown(learnArticles[m.learnAt].Body, 58))
		m.learnShown = m.learnAt
	}
}

// Close detaches every slot and releases the tick bridge.
func (m Model) Close() {
	for _, slot := range m.slots {
		slot.Stop()
	}
	select {
	case <-m.done:
	default:
		close(m.done)
	}
}
