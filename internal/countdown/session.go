// Package countdown implements whole-second countdown sessions: the focus
// timer, the regulation exercises and the mini-game clock all share Session.
package countdown

import "github.com/sandeepkv93/neuroflow/internal/display"

type Mode string

const (
	ModeFocus     Mode = "focus"
	ModeBreak     Mode = "break"
	ModeBreath    Mode = "breath"
	ModeGrounding Mode = "grounding"
	ModeGame      Mode = "game"
)

// MinAdjustSec is the floor for manual adjustments.
const MinAdjustSec = 60

// QuickMinutes are the durations offered by the focus timer.
var QuickMinutes = []int{5, 10, 25, 45}

// Session is not safe for concurrent use; callers tick it from one goroutine
// (the UI loop) or wrap it in a Driver.
type Session struct {
	id        string
	remaining int
	initial   int
	running   bool
	mode      Mode
	onExpire  func(*Session)
}

func NewSession(id string, seconds int, mode Mode) *Session {
	if seconds <= 0 {
		seconds = 1
	}
	return &Session{id: id, remaining: seconds, initial: seconds, mode: mode}
}

// OnExpire registers fn to run once per reach-zero event, from inside Tick.
func (s *Session) OnExpire(fn func(*Session)) { s.onExpire = fn }

func (s *Session) ID() string     { return s.id }
func (s *Session) Remaining() int { return s.remaining }
func (s *Session) Initial() int   { return s.initial }
func (s *Session) Running() bool  { return s.running }
func (s *Session) Mode() Mode     { return s.mode }
func (s *Session) Expired() bool  { return s.remaining == 0 }
func (s *Session) Elapsed() int   { return s.initial - s.remaining }

func (s *Session) Fraction() float64 {
	return display.ProgressFraction(s.remaining, s.initial)
}

func (s *Session) Clock() string {
	return display.Clock(s.remaining)
}

// Start reports whether the session is running afterwards. An expired
// session cannot be started; Reset it first.
func (s *Session) Start() bool {
	if s.remaining == 0 {
		return false
	}
	s.running = true
	return true
}

func (s *Session) Pause() {
	s.running = false
}

func (s *Session) Toggle() {
	if s.remaining == 0 {
		return
	}
	s.running = !s.running
}

func (s *Session) Reset() {
	s.remaining = s.initial
	s.running = false
}

// SetDuration is ignored while running or for non-positive durations.
func (s *Session) SetDuration(seconds int) bool {
	if s.running || seconds <= 0 {
		return false
	}
	s.remaining = seconds
	s.initial = seconds
	return true
}

// SetQuickDuration selects a preset in minutes; ten minutes or less counts
// as a break.
func (s *Session) SetQuickDuration(minutes int) bool {
	if !s.SetDuration(minutes * 60) {
		return false
	}
	if minutes <= 10 {
		s.mode = ModeBreak
	} else {
		s.mode = ModeFocus
	}
	return true
}

// Adjust shifts the duration by delta seconds, never below MinAdjustSec.
func (s *Session) Adjust(deltaSec int) bool {
	if s.running {
		return false
	}
	next := s.remaining + deltaSec
	if next < MinAdjustSec {
		next = MinAdjustSec
	}
	s.remaining = next
	s.initial = next
	return true
}

// Tick advances a running session by one second and reports whether this
// tick expired it.
func (s *Session) Tick() bool {
	if !s.running {
		return false
	}
	if s.remaining == 0 {
		s.running = false
		return false
	}
	s.remaining--
	if s.remaining > 0 {
		return false
	}
	s.running = false
	if s.onExpire != nil {
		s.onExpire(s)
	}
	return true
}
