// Package stats tracks session counters and renders session reports.
package stats

import "github.com/verte-zerg/catchme/internal/model"

// Tracker counts attempts and catches for one session.
// Catches never exceed attempts.
type Tracker struct {
	attempts uint
	catches  uint
}

// RecordAttempt counts a near miss.
func (t *Tracker) RecordAttempt() model.SessionStats {
	t.attempts++
	return t.Snapshot()
}

// RecordCatch counts a click as both an attempt and a catch.
func (t *Tracker) RecordCatch() model.SessionStats {
	t.attempts++
	t.catches++
	return t.Snapshot()
}

// Reset zeroes both counters.
func (t *Tracker) Reset() {
	t.attempts = 0
	t.catches = 0
}

// Snapshot returns the current counters.
func (t *Tracker) Snapshot() model.SessionStats {
	return model.SessionStats{Attempts: t.attempts, Catches: t.catches}
}

// SuccessRate returns the rounded integer success percentage.
func (t *Tracker) SuccessRate() int {
	return t.Snapshot().SuccessRate()
}
