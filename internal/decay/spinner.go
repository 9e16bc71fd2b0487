// Package decay simulates the kinetic spinner: taps add velocity, every tick
// multiplies it by a damping factor until it settles.
package decay

const (
	MaxVelocity = 80.0
	Damping     = 0.98
	Epsilon     = 0.1
	TapBoost    = 20.0
)

type Spinner struct {
	rotation float64
	velocity float64
}

func (s *Spinner) Rotation() float64 { return s.rotation }
func (s *Spinner) Velocity() float64 { return s.velocity }

// Idle reports whether ticks would change nothing; callers may detach their
// scheduler while idle.
func (s *Spinner) Idle() bool { return s.velocity == 0 }

// Intensity is velocity as a share of MaxVelocity.
func (s *Spinner) Intensity() float64 { return s.velocity / MaxVelocity }

func (s *Spinner) Boost(amount float64) {
	if amount <= 0 {
		return
	}
	s.velocity += amount
	if s.velocity > MaxVelocity {
		s.velocity = MaxVelocity
	}
}

func (s *Spinner) Tap() { s.Boost(TapBoost) }

// Tick reports whether the spinner is still moving afterwards.
func (s *Spinner) Tick() bool {
	if s.velocity <= Epsilon {
		s.velocity = 0
		return false
	}
	s.velocity *= Damping
	if s.velocity <= Epsilon {
		s.velocity = 0
		return false
	}
	s.rotation += s.velocity
	return true
}

// Angle is the rotation folded into [0, 360).
func (s *Spinner) Angle() float64 {
	a := s.rotation - 360*float64(int(s.rotation/360))
	if a < 0 {
		a += 360
	}
	return a
}
