// Package model defines shared data structures.
package model

import (
	"math"
	"time"
)

// Config defines game settings resolved from flags and the config file.
type Config struct {
	Difficulty string
	Touch      *bool
	Seed       int64
	CellWidth  float64
	CellHeight float64
	LogFile    string
	LogLevel   string
}

// Position is a point relative to the arena's top-left origin.
type Position struct {
	X float64
	Y float64
}

// Bounds is the measured size of the arena. A zero size means layout has not settled.
type Bounds struct {
	Width  float64
	Height float64
}

// Measured reports whether the arena has a usable size.
func (b Bounds) Measured() bool {
	return b.Width > 0 && b.Height > 0
}

// SessionStats counts attempts and catches for a session.
type SessionStats struct {
	Attempts uint
	Catches  uint
}

// SuccessRate returns catches/attempts as a rounded integer percentage.
func (s SessionStats) SuccessRate() int {
	if s.Attempts == 0 {
		return 0
	}
	return int(math.Round(float64(s.Catches) / float64(s.Attempts) * 100))
}

// EventKind identifies a journaled session transition.
type EventKind string

// Event kinds.
const (
	EventStart    EventKind = "start"
	EventReset    EventKind = "reset"
	EventRelocate EventKind = "relocate"
	EventAttempt  EventKind = "attempt"
	EventCatch    EventKind = "catch"
	EventUnlock   EventKind = "unlock"
	EventShare    EventKind = "share"
)

// Event captures one session transition together with the post-transition stats.
type Event struct {
	At         time.Time
	Kind       EventKind
	Difficulty string
	Position   Position
	Stats      SessionStats
	Detail     string
}

// DifficultySummary aggregates journaled events for one difficulty.
type DifficultySummary struct {
	Difficulty  string
	Relocations int
	NearMisses  int
	Catches     int
	Unlocks     int
}
