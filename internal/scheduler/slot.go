package scheduler

import (
	"sync"
	"time"
)

// Slot owns at most one live registration on an engine. Starting a slot
// cancels whatever it was driving before, so one logical session never has
// two overlapping tick drivers.
type Slot struct {
	mu     sync.Mutex
	engine *Engine
	handle Handle
}

func NewSlot(engine *Engine) *Slot {
	return &Slot{engine: engine}
}

func (s *Slot) Start(interval time.Duration, onTick func(Tick)) (Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle != 0 {
		s.engine.Cancel(s.handle)
		s.handle = 0
	}
	h, err := s.engine.Every(interval, onTick)
	if err != nil {
		return 0, err
	}
	s.handle = h
	return h, nil
}

func (s *Slot) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle == 0 {
		return
	}
	s.engine.Cancel(s.handle)
	s.handle = 0
}

func (s *Slot) Handle() Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle
}

func (s *Slot) Live() bool {
	return s.Handle() != 0
}

// Owns reports whether h is the slot's current registration. Ticks from a
// replaced or stopped registration that were already queued downstream fail
// this check and must be dropped.
func (s *Slot) Owns(h Handle) bool {
	if h == 0 {
		return false
	}
	return s.Handle() == h
}
