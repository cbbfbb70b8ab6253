// Package throttle enforces a cooldown between evasive relocations.
package throttle

import (
	"time"

	"github.com/verte-zerg/catchme/internal/clock"
)

// Cooldown holds at most one live cooldown timer.
type Cooldown struct {
	sched *clock.Scheduler
	timer *clock.Timer
}

// New returns a disarmed Cooldown scheduling on s.
func New(s *clock.Scheduler) *Cooldown {
	return &Cooldown{sched: s}
}

// Active reports whether a cooldown is running.
func (c *Cooldown) Active() bool {
	return c.timer.Pending()
}

// Arm starts a cooldown of d, superseding any running one.
func (c *Cooldown) Arm(d time.Duration) {
	c.timer.Stop()
	var t *clock.Timer
	t = c.sched.AfterFunc(d, func() {
		if c.timer == t {
			c.timer = nil
		}
	})
	c.timer = t
}

// Cancel disarms the cooldown.
func (c *Cooldown) Cancel() {
	c.timer.Stop()
	c.timer = nil
}

// TryRelocate calls relocate unless a cooldown is running. When relocate
// reports that the target moved, the cooldown is re-armed with d.
func (c *Cooldown) TryRelocate(d time.Duration, relocate func() bool) bool {
	if c.Active() {
		return false
	}
	if !relocate() {
		return false
	}
	c.Arm(d)
	return true
}
