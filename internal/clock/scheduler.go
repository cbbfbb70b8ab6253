package clock

import (
	"sort"
	"time"
)

// Scheduler runs delayed callbacks on the caller's event loop.
// Nothing fires on its own: the owner calls RunDue, typically once per frame,
// so callbacks never race with input handlers.
type Scheduler struct {
	clock   Clock
	pending []*Timer
	nextSeq uint64
}

// Timer is a scheduled callback handle.
type Timer struct {
	s     *Scheduler
	seq   uint64
	due   time.Time
	fn    func()
	fired bool
	dead  bool
}

// NewScheduler creates a scheduler reading time from c.
func NewScheduler(c Clock) *Scheduler {
	if c == nil {
		c = SystemClock{}
	}
	return &Scheduler{clock: c}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// AfterFunc schedules fn to run on the first RunDue at or after now+d.
func (s *Scheduler) AfterFunc(d time.Duration, fn func()) *Timer {
	if d < 0 {
		d = 0
	}
	s.nextSeq++
	t := &Timer{
		s:   s,
		seq: s.nextSeq,
		due: s.clock.Now().Add(d),
		fn:  fn,
	}
	idx := sort.Search(len(s.pending), func(i int) bool {
		return t.before(s.pending[i])
	})
	s.pending = append(s.pending, nil)
	copy(s.pending[idx+1:], s.pending[idx:])
	s.pending[idx] = t
	return t
}

// RunDue fires every pending timer whose deadline has passed, earliest first,
// and returns how many fired. Timers scheduled by a callback fire in the same
// call if they are already due.
func (s *Scheduler) RunDue() int {
	fired := 0
	for len(s.pending) > 0 {
		now := s.clock.Now()
		t := s.pending[0]
		if t.due.After(now) {
			break
		}
		s.pending = s.pending[1:]
		t.fired = true
		if t.fn != nil {
			t.fn()
		}
		fired++
	}
	return fired
}

// Pending returns the number of timers waiting to fire.
func (s *Scheduler) Pending() int {
	return len(s.pending)
}

// NextDue returns the earliest pending deadline.
func (s *Scheduler) NextDue() (time.Time, bool) {
	if len(s.pending) == 0 {
		return time.Time{}, false
	}
	return s.pending[0].due, true
}

// StopAll cancels every pending timer.
func (s *Scheduler) StopAll() {
	for _, t := range s.pending {
		t.dead = true
	}
	s.pending = nil
}

func (s *Scheduler) remove(t *Timer) bool {
	for i, p := range s.pending {
		if p == t {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return true
		}
	}
	return false
}

// Stop cancels the timer. It returns false if the timer already fired or was stopped.
func (t *Timer) Stop() bool {
	if t == nil || t.fired || t.dead {
		return false
	}
	t.dead = true
	return t.s.remove(t)
}

// Pending reports whether the timer has neither fired nor been stopped.
func (t *Timer) Pending() bool {
	return t != nil && !t.fired && !t.dead
}

// Due returns the timer's deadline.
func (t *Timer) Due() time.Time {
	return t.due
}

func (t *Timer) before(other *Timer) bool {
	if t.due.Equal(other.due) {
		return t.seq < other.seq
	}
	return t.due.Before(other.due)
}
