// Package geometry computes target placement inside the arena.
package geometry

import (
	"math"
	"math/rand"
	"time"

	"github.com/verte-zerg/catchme/internal/model"
)

// Margin keeps the target clear of the arena edges on both axes.
const Margin = 60.0

// maxJitter is the half-width of the random angle offset, in radians.
const maxJitter = 0.25

// Engine places the target. It owns its random source.
type Engine struct {
	rnd    *rand.Rand
	margin float64
}

// New returns an Engine seeded with the current time.
func New() *Engine {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns an Engine with a deterministic random source.
func NewWithSeed(seed int64) *Engine {
	return &Engine{rnd: rand.New(rand.NewSource(seed)), margin: Margin}
}

// EscapePosition moves the target away from the pointer by the profile's move
// distance, with a small random angular offset, clamped to the arena.
// It returns false without a position when the arena is not measured.
func (e *Engine) EscapePosition(current, pointer model.Position, profile model.DifficultyProfile, bounds model.Bounds) (model.Position, bool) {
	if !bounds.Measured() {
		return model.Position{}, false
	}
	angle := math.Atan2(pointer.Y-current.Y, pointer.X-current.X)
	escape := angle + math.Pi + e.jitter()
	next := model.Position{
		X: current.X + math.Cos(escape)*profile.MoveDistance,
		Y: current.Y + math.Sin(escape)*profile.MoveDistance,
	}
	return e.clampToArena(next, bounds), true
}

// ResetPosition picks a uniformly random position inside the margin-bounded arena.
// It returns false when the arena is not measured.
func (e *Engine) ResetPosition(bounds model.Bounds) (model.Position, bool) {
	if !bounds.Measured() {
		return model.Position{}, false
	}
	p := model.Position{
		X: e.rnd.Float64()*(bounds.Width-e.margin*2) + e.margin,
		Y: e.rnd.Float64()*(bounds.Height-e.margin*2) + e.margin,
	}
	return e.clampToArena(p, bounds), true
}

// Margin returns the engine's edge margin.
func (e *Engine) Margin() float64 {
	return e.margin
}

func (e *Engine) jitter() float64 {
	return (e.rnd.Float64() - 0.5) * 2 * maxJitter
}

func (e *Engine) clampToArena(p model.Position, bounds model.Bounds) model.Position {
	return model.Position{
		X: Clamp(p.X, e.margin, bounds.Width-e.margin),
		Y: Clamp(p.Y, e.margin, bounds.Height-e.margin),
	}
}

// Clamp limits v to [lo, hi]. When the range is inverted, lo wins.
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Distance returns the Euclidean distance between two positions.
func Distance(a, b model.Position) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// Within reports whether the pointer is strictly closer than radius to the target.
func Within(target, pointer model.Position, radius float64) bool {
	return Distance(target, pointer) < radius
}
