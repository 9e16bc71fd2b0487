package state

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandeepkv93/neuroflow/internal/model"
	"github.com/sandeepkv93/neuroflow/internal/persist"
	"github.com/sandeepkv93/neuroflow/internal/storage"
)

func newTestApp(t *testing.T) (*App, *[]model.Snapshot) {
	t.Helper()
	var commits []model.Snapshot
	app := New(model.DefaultSnapshot(), func(s model.Snapshot) { commits = append(commits, s) })
	n := 0
	app.newID = func() string { n++; return fmt.Sprintf("id-%d", n) }
	app.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }
	return app, &commits
}

func TestAddTaskPrependsAndCommitsOnce(t *testing.T) {
	app, commits := newTestApp(t)

	task, err := app.AddTask("  Reply to email  ")
	require.NoError(t, err)
	assert.Equal(t, "Reply to email", task.Title)
	assert.False(t, task.IsMicro)

	tasks := app.Tasks()
	require.Len(t, tasks, 3)
	assert.Equal(t, "id-1", tasks[0].ID)
	require.Len(t, *commits, 1)
	assert.Equal(t, tasks, (*commits)[0].Tasks)
}

func TestAddTaskRejectsBlank(t *testing.T) {
	app, commits := newTestApp(t)
	_, err := app.AddTask("   ")
	assert.ErrorIs(t, err, ErrBlankTitle)
	assert.Empty(t, *commits)
	assert.Len(t, app.Tasks(), 2)
}

func TestToggleTaskAwardsPointsBothWays(t *testing.T) {
	app, commits := newTestApp(t)

	done, ok := app.ToggleTask("1")
	require.True(t, ok)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, 15, app.Points())

	undone, ok := app.ToggleTask("1")
	require.True(t, ok)
	assert.False(t, undone.Completed)
	assert.Nil(t, undone.CompletedAt)
	assert.Equal(t, 30, app.Points())

	_, ok = app.ToggleTask("missing")
	assert.False(t, ok)
	assert.Len(t, *commits, 2)
	assert.Equal(t, 15, (*commits)[0].Points)
	assert.Equal(t, 30, (*commits)[1].Points)
}

func TestToggleHabitCommitsPoints(t *testing.T) {
	app, commits := newTestApp(t)
	require.True(t, app.ToggleHabit("h2"))
	assert.Equal(t, 5, app.Points())
	assert.True(t, app.Habits()[1].Completed)
	assert.Len(t, *commits, 1)
	assert.False(t, app.ToggleHabit("nope"))
}

func TestSessionOnlyMutationsDoNotCommit(t *testing.T) {
	app, commits := newTestApp(t)
	require.NoError(t, app.SetEnergyMode(model.EnergyLow))
	assert.Equal(t, model.EnergyLow, app.Energy())
	assert.ErrorIs(t, app.SetEnergyMode("TURBO"), model.ErrInvalidEnergy)
	app.SetSurvival(true)
	assert.True(t, app.Survival())
	assert.Empty(t, *commits)
}

func TestGrantPremiumOnce(t *testing.T) {
	app, commits := newTestApp(t)
	assert.True(t, app.GrantPremium())
	assert.False(t, app.GrantPremium())
	assert.True(t, app.Premium())
	assert.Equal(t, 500, app.Points())
	require.Len(t, *commits, 1)
	assert.True(t, (*commits)[0].Premium)
}

func TestThemeMutations(t *testing.T) {
	app, commits := newTestApp(t)

	require.NoError(t, app.SetThemeColor(model.ThemePrimary, "#ff0000"))
	assert.Equal(t, "#ff0000", app.Theme().Primary)

	assert.ErrorIs(t, app.SetThemeColor(model.ThemeCard, "red"), model.ErrInvalidColor)
	assert.ErrorIs(t, app.SetTheme(model.Theme{Primary: "#fff"}), model.ErrInvalidColor)

	app.ResetTheme()
	assert.Equal(t, model.NeutralTheme(), app.Theme())
	assert.Len(t, *commits, 2)
}

func TestCommitsDriveOrderedPersistence(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	var projected []model.Theme
	sync := persist.NewSync(store, persist.ThemeSurfaceFunc(func(th model.Theme) { projected = append(projected, th) }), nil)

	app := New(model.DefaultSnapshot(), func(s model.Snapshot) { sync.Persist(ctx, s) })
	_, err := app.AddTask("Walk")
	require.NoError(t, err)
	_, _ = app.ToggleTask("1")
	require.NoError(t, app.SetThemeColor(model.ThemeText, "#111111"))

	got := sync.Hydrate(ctx).Apply(model.DefaultSnapshot())
	assert.Equal(t, app.Snapshot(), got)
	assert.Len(t, projected, 3)
	assert.Equal(t, uint64(3), app.Commits())
}
