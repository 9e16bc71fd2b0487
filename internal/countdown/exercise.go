package countdown

import "github.com/sandeepkv93/neuroflow/internal/display"

type ExerciseKind string

const (
	ExerciseBreath    ExerciseKind = "breath"
	ExerciseGrounding ExerciseKind = "grounding"
)

const (
	BreathDurationSec    = 60
	GroundingDurationSec = 90
)

var groundingPrompts = []string{
	"Name 5 things you can see",
	"Name 4 things you can touch",
	"Name 3 things you can hear",
	"Name 2 things you can smell",
	"Name 1 thing you can taste",
}

// Exercise is a regulation routine backed by a countdown. It starts running
// as soon as it is created and is discarded when it ends.
type Exercise struct {
	Kind    ExerciseKind
	Session *Session
}

func NewExercise(kind ExerciseKind) *Exercise {
	var s *Session
	switch kind {
	case ExerciseGrounding:
		s = NewSession("grounding", GroundingDurationSec, ModeGrounding)
	default:
		kind = ExerciseBreath
		s = NewSession("breath", BreathDurationSec, ModeBreath)
	}
	s.Start()
	return &Exercise{Kind: kind, Session: s}
}

// Phase depends only on time elapsed in the session, so it holds still
// while paused.
func (e *Exercise) Phase() display.Phase {
	return display.BreathPhase(e.Session.Elapsed())
}

// Prompt returns the grounding step for the elapsed time, or the breathing
// cue for breath exercises.
func (e *Exercise) Prompt() string {
	return PromptAt(e.Kind, e.Session.Elapsed())
}

func (e *Exercise) GroundingStep() int {
	return groundingStepAt(e.Session.Elapsed())
}

func (e *Exercise) Done() bool {
	return e.Session.Expired()
}

// PromptAt is the cue shown after elapsed seconds of an exercise of kind.
func PromptAt(kind ExerciseKind, elapsed int) string {
	if kind == ExerciseBreath {
		return display.BreathPhase(elapsed).Prompt()
	}
	return groundingPrompts[groundingStepAt(elapsed)]
}

func groundingStepAt(elapsed int) int {
	per := GroundingDurationSec / len(groundingPrompts)
	step := elapsed / per
	if step >= len(groundingPrompts) {
		step = len(groundingPrompts) - 1
	}
	if step < 0 {
		step = 0
	}
	return step
}
