// Package games holds the sensory mini-games: the bubble board and the
// target reflex game with its 30 second clock.
package games

import (
	"math/rand"

	"github.com/sandeepkv93/neuroflow/internal/countdown"
)

const (
	BubbleCount      = 12
	TargetRoundSec   = 30
	BubbleResetDelay = 500 // milliseconds before a cleared board refills
)

type Bubbles struct {
	popped []bool
	score  int
}

func NewBubbles() *Bubbles {
	return &Bubbles{popped: make([]bool, BubbleCount)}
}

// Pop reports whether the bubble at i was intact.
func (b *Bubbles) Pop(i int) bool {
	if i < 0 || i >= len(b.popped) || b.popped[i] {
		return false
	}
	b.popped[i] = true
	b.score++
	return true
}

func (b *Bubbles) Popped(i int) bool {
	return i >= 0 && i < len(b.popped) && b.popped[i]
}

func (b *Bubbles) Cleared() bool {
	for _, p := range b.popped {
		if !p {
			return false
		}
	}
	return true
}

func (b *Bubbles) Refill() {
	for i := range b.popped {
		b.popped[i] = false
	}
}

func (b *Bubbles) Score() int { return b.score }
func (b *Bubbles) Len() int   { return len(b.popped) }

type Point struct {
	Top  int
	Left int
}

type TargetGame struct {
	clock     *countdown.Session
	score     int
	highScore int
	target    Point
	rng       *rand.Rand
	played    bool
}

func NewTargetGame(highScore int, rng *rand.Rand) *TargetGame {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	if highScore < 0 {
		highScore = 0
	}
	return &TargetGame{
		clock:     countdown.NewSession("target", TargetRoundSec, countdown.ModeGame),
		highScore: highScore,
		target:    Point{Top: 50, Left: 50},
		rng:       rng,
	}
}

func (g *TargetGame) Start() {
	g.score = 0
	g.played = true
	g.clock.Pause()
	g.clock.SetDuration(TargetRoundSec)
	g.clock.Start()
	g.move()
}

// Hit scores a point and moves the target while a round is active.
func (g *TargetGame) Hit() bool {
	if !g.Active() {
		return false
	}
	g.score++
	g.move()
	return true
}

// Tick advances the round clock. When the round ends it reports whether the
// score beat the previous high score.
func (g *TargetGame) Tick() (ended, newHigh bool) {
	if !g.clock.Tick() {
		return false, false
	}
	if g.score > g.highScore {
		g.highScore = g.score
		return true, true
	}
	return true, false
}

// Abandon ends a round without recording a high score.
func (g *TargetGame) Abandon() {
	g.clock.Pause()
}

func (g *TargetGame) Active() bool    { return g.clock.Running() }
func (g *TargetGame) Finished() bool  { return g.played && g.clock.Expired() }
func (g *TargetGame) Score() int      { return g.score }
func (g *TargetGame) HighScore() int  { return g.highScore }
func (g *TargetGame) TimeLeft() int   { return g.clock.Remaining() }
func (g *TargetGame) Target() Point   { return g.target }

func (g *TargetGame) Clock() *countdown.Session { return g.clock }

func (g *TargetGame) move() {
	g.target = Point{Top: g.rng.Intn(70) + 15, Left: g.rng.Intn(70) + 15}
}
