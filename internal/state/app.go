package state

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/neuroflow/internal/model"
)

const (
	TaskPoints    = 15
	HabitPoints   = 5
	PremiumReward = 500
)

var ErrBlankTitle = errors.New("state: task title is required")

// Listener observes every commit that changes persisted state.
type Listener func(model.Snapshot)

// App owns the process-wide application state. Mutations are serialized and
// each one that touches theme, points, tasks or premium commits exactly one
// snapshot to the listener before returning.
type App struct {
	mu       sync.Mutex
	theme    model.Theme
	points   int
	tasks    []model.Task
	habits   []model.Habit
	energy   model.EnergyMode
	premium  bool
	survival bool
	listener Listener
	commits  uint64

	now   func() time.Time
	newID func() string
}

func New(initial model.Snapshot, listener Listener) *App {
	return &App{
		theme:    initial.Theme,
		points:   initial.Points,
		tasks:    append([]model.Task(nil), initial.Tasks...),
		habits:   model.SeedHabits(),
		energy:   model.EnergyMedium,
		premium:  initial.Premium,
		listener: listener,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    func() string { return uuid.NewString() },
	}
}

func (a *App) Snapshot() model.Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snapshotLocked()
}

func (a *App) snapshotLocked() model.Snapshot {
	return model.Snapshot{
		Theme:   a.theme,
		Points:  a.points,
		Tasks:   append([]model.Task(nil), a.tasks...),
		Premium: a.premium,
	}
}

// commitLocked runs with a.mu held so listeners see commits in order.
func (a *App) commitLocked() {
	a.commits++
	if a.listener != nil {
		a.listener(a.snapshotLocked())
	}
}

func (a *App) Commits() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.commits
}

func (a *App) Tasks() []model.Task {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]model.Task(nil), a.tasks...)
}

func (a *App) Habits() []model.Habit {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]model.Habit(nil), a.habits...)
}

func (a *App) Points() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.points
}

func (a *App) Theme() model.Theme {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.theme
}

func (a *App) Energy() model.EnergyMode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.energy
}

func (a *App) Premium() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.premium
}

func (a *App) Survival() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.survival
}

// AddTask prepends a new open task.
func (a *App) AddTask(title string) (model.Task, error) {
	return a.addTask(title, false)
}

// AddMicroTask adds a step suggested by the assistant.
func (a *App) AddMicroTask(title string) (model.Task, error) {
	return a.addTask(title, true)
}

func (a *App) addTask(title string, micro bool) (model.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Task{}, ErrBlankTitle
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	task := model.Task{ID: a.newID(), Title: title, IsMicro: micro}
	a.tasks = append([]model.Task{task}, a.tasks...)
	a.commitLocked()
	return task, nil
}

// ToggleTask flips completion and awards points in either direction.
func (a *App) ToggleTask(id string) (model.Task, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.tasks {
		if a.tasks[i].ID != id {
			continue
		}
		t := &a.tasks[i]
		t.Completed = !t.Completed
		if t.Completed {
			at := a.now()
			t.CompletedAt = &at
		} else {
			t.CompletedAt = nil
		}
		a.points += TaskPoints
		a.commitLocked()
		return *t, true
	}
	return model.Task{}, false
}

func (a *App) ToggleHabit(id string) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i := range a.habits {
		if a.habits[i].ID != id {
			continue
		}
		a.habits[i].Completed = !a.habits[i].Completed
		a.points += HabitPoints
		a.commitLocked()
		return true
	}
	return false
}

// SetEnergyMode is session-only and does not commit.
func (a *App) SetEnergyMode(mode model.EnergyMode) error {
	if !mode.IsValid() {
		return model.ErrInvalidEnergy
	}
	a.mu.Lock()
	a.energy = mode
	a.mu.Unlock()
	return nil
}

// GrantPremium unlocks premium once and pays the welcome reward.
func (a *App) GrantPremium() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.premium {
		return false
	}
	a.premium = true
	a.points += PremiumReward
	a.commitLocked()
	return true
}

func (a *App) SetTheme(theme model.Theme) error {
	if err := theme.Validate(); err != nil {
		return err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.theme = theme
	a.commitLocked()
	return nil
}

func (a *App) SetThemeColor(field model.ThemeField, color string) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	next, err := a.theme.With(field, color)
	if err != nil {
		return err
	}
	a.theme = next
	a.commitLocked()
	return nil
}

func (a *App) ResetTheme() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.theme = model.NeutralTheme()
	a.commitLocked()
}

func (a *App) SetSurvival(on bool) {
	a.mu.Lock()
	a.survival = on
	a.mu.Unlock()
}
