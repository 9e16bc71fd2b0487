// Package display holds the pure derivations the views call on every tick or
// render: clock text, progress fractions, breathing phases and task summaries.
package display

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/sandeepkv93/neuroflow/internal/model"
)

// BreathCycleSec is the length of one inhale/hold/exhale cycle.
const BreathCycleSec = 12

type Phase string

const (
	PhaseInhale Phase = "Inhale"
	PhaseHold   Phase = "Hold"
	PhaseExhale Phase = "Exhale"
)

func (p Phase) Prompt() string {
	switch p {
	case PhaseInhale:
		return "Breathe in..."
	case PhaseHold:
		return "Hold..."
	case PhaseExhale:
		return "Breathe out..."
	default:
		return ""
	}
}

// BreathPhase maps elapsed seconds onto the fixed 4/4/4 partition.
func BreathPhase(elapsedSec int) Phase {
	pos := ((elapsedSec % BreathCycleSec) + BreathCycleSec) % BreathCycleSec
	switch {
	case pos < 4:
		return PhaseInhale
	case pos < 8:
		return PhaseHold
	default:
		return PhaseExhale
	}
}

// FormatTime splits totalSec into zero-padded minutes and seconds.
func FormatTime(totalSec int) (string, string) {
	if totalSec < 0 {
		totalSec = 0
	}
	return fmt.Sprintf("%02d", totalSec/60), fmt.Sprintf("%02d", totalSec%60)
}

func Clock(totalSec int) string {
	m, s := FormatTime(totalSec)
	return m + ":" + s
}

// ProgressFraction is the elapsed share of a countdown: 0 at the start, 1 when
// fully elapsed. An initial of zero yields 0.
func ProgressFraction(remaining, initial int) float64 {
	if initial <= 0 {
		return 0
	}
	f := 1 - float64(remaining)/float64(initial)
	return clamp01(f)
}

func Bar(fraction float64, width int) string {
	if width <= 0 {
		return "[]"
	}
	fraction = clamp01(fraction)
	filled := int(fraction * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func clamp01(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// CompletionPercent is the rounded share of completed tasks.
func CompletionPercent(tasks []model.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(tasks)) * 100))
}

// VisibleTasks returns at most limit open tasks, in list order.
func VisibleTasks(tasks []model.Task, limit int) []model.Task {
	out := make([]model.Task, 0, limit)
	for _, t := range tasks {
		if len(out) >= limit {
			break
		}
		if !t.Completed {
			out = append(out, t)
		}
	}
	return out
}

type PulseSlot struct {
	Label string
	Count int
	Value float64
}

// DailyPulse buckets completion times by local hour and scales each bucket
// against the busiest one.
func DailyPulse(tasks []model.Task, loc *time.Location) []PulseSlot {
	if loc == nil {
		loc = time.Local
	}
	slots := []PulseSlot{{Label: "Morning"}, {Label: "Afternoon"}, {Label: "Evening"}, {Label: "Night"}}
	for _, t := range tasks {
		if !t.Completed || t.CompletedAt == nil {
			continue
		}
		hour := t.CompletedAt.In(loc).Hour()
		switch {
		case hour >= 6 && hour < 12:
			slots[0].Count++
		case hour >= 12 && hour < 18:
			slots[1].Count++
		case hour >= 18:
			slots[2].Count++
		default:
			slots[3].Count++
		}
	}
	peak := 1
	for _, s := range slots {
		if s.Count > peak {
			peak = s.Count
		}
	}
	for i := range slots {
		slots[i].Value = float64(slots[i].Count) / float64(peak) * 100
	}
	return slots
}
