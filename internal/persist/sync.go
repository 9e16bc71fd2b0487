package persist

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/sandeepkv93/neuroflow/internal/model"
	"github.com/sandeepkv93/neuroflow/internal/storage"
)

const (
	StateKey     = "neuroflow_state"
	HighScoreKey = "neuroflow_high_score"
)

// ThemeSurface receives the theme on every persist.
type ThemeSurface interface {
	ApplyTheme(model.Theme)
}

type ThemeSurfaceFunc func(model.Theme)

func (f ThemeSurfaceFunc) ApplyTheme(t model.Theme) { f(t) }

// Hydrated holds the fields that decoded cleanly. A nil field was missing
// or malformed and should fall back to its default.
type Hydrated struct {
	Theme   *model.Theme
	Points  *int
	Tasks   []model.Task
	Premium *bool

	hasTasks bool
}

func (h Hydrated) HasTasks() bool { return h.hasTasks }

// Apply overlays the decoded fields onto defaults.
func (h Hydrated) Apply(defaults model.Snapshot) model.Snapshot {
	out := defaults
	if h.Theme != nil {
		out.Theme = *h.Theme
	}
	if h.Points != nil {
		out.Points = *h.Points
	}
	if h.hasTasks {
		out.Tasks = append([]model.Task(nil), h.Tasks...)
	}
	if h.Premium != nil {
		out.Premium = *h.Premium
	}
	return out
}

type Sync struct {
	store   storage.KV
	surface ThemeSurface
	logger  *slog.Logger
}

func NewSync(store storage.KV, surface ThemeSurface, logger *slog.Logger) *Sync {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sync{store: store, surface: surface, logger: logger}
}

// SetSurface swaps the theme surface, e.g. once the TUI styles exist.
func (s *Sync) SetSurface(surface ThemeSurface) {
	s.surface = surface
}

// Hydrate reads the stored snapshot. It never fails: every field is decoded
// on its own and a bad field is simply left out.
func (s *Sync) Hydrate(ctx context.Context) Hydrated {
	var out Hydrated
	if s.store == nil {
		return out
	}
	raw, err := s.store.Get(ctx, StateKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.logger.Warn("hydrate read failed", "key", StateKey, "error", err)
		}
		return out
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		s.logger.Warn("hydrate decode failed", "key", StateKey, "error", err)
		return out
	}

	if v, ok := fields["theme"]; ok {
		var theme model.Theme
		if err := json.Unmarshal(v, &theme); err != nil || theme.Validate() != nil {
			s.logger.Warn("hydrate dropped field", "field", "theme")
		} else {
			out.Theme = &theme
		}
	}
	if v, ok := fields["dopaminePoints"]; ok {
		var points int
		if err := json.Unmarshal(v, &points); err != nil || points < 0 {
			s.logger.Warn("hydrate dropped field", "field", "dopaminePoints")
		} else {
			out.Points = &points
		}
	}
	if v, ok := fields["tasks"]; ok {
		if tasks, ok := decodeTasks(v); ok {
			out.Tasks = tasks
			out.hasTasks = true
		} else {
			s.logger.Warn("hydrate dropped field", "field", "tasks")
		}
	}
	if v, ok := fields["isPremium"]; ok {
		var premium bool
		if err := json.Unmarshal(v, &premium); err != nil {
			s.logger.Warn("hydrate dropped field", "field", "isPremium")
		} else {
			out.Premium = &premium
		}
	}
	return out
}

func decodeTasks(raw json.RawMessage) ([]model.Task, bool) {
	var tasks []model.Task
	if err := json.Unmarshal(raw, &tasks); err != nil || tasks == nil {
		return nil, false
	}
	for i := range tasks {
		// snapshots written before completedAt existed carry only the flag
		if !tasks[i].Completed {
			tasks[i].CompletedAt = nil
		}
		if tasks[i].Validate() != nil {
			return nil, false
		}
	}
	return tasks, true
}

// Persist projects the theme onto the surface and then writes the snapshot.
// Write failures are logged and dropped.
func (s *Sync) Persist(ctx context.Context, snap model.Snapshot) {
	if s.surface != nil {
		s.surface.ApplyTheme(snap.Theme)
	}
	if s.store == nil {
		return
	}
	if snap.Tasks == nil {
		snap.Tasks = []model.Task{}
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		s.logger.Error("persist encode failed", "error", err)
		return
	}
	if err := s.store.Set(ctx, StateKey, string(payload)); err != nil {
		s.logger.Warn("persist write dropped", "key", StateKey, "bytes", len(payload), "error", err)
	}
}

func (s *Sync) LoadHighScore(ctx context.Context) int {
	if s.store == nil {
		return 0
	}
	raw, err := s.store.Get(ctx, HighScoreKey)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		s.logger.Warn("high score unreadable", "value", raw)
		return 0
	}
	return n
}

func (s *Sync) SaveHighScore(ctx context.Context, score int) {
	if s.store == nil {
		return
	}
	if err := s.store.Set(ctx, HighScoreKey, strconv.Itoa(score)); err != nil {
		s.logger.Warn("high score write dropped", "error", err)
	}
}
