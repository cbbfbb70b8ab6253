package tui

import (
	"github.com/verte-zerg/catchme/internal/clock"
	"github.com/verte-zerg/catchme/internal/game"
)

const maxToasts = 3

type toast struct {
	note  game.Notification
	timer *clock.Timer
}

// toastQueue shows notifications until their scheduler timers expire.
type toastQueue struct {
	sched  *clock.Scheduler
	toasts []*toast
}

func newToastQueue(s *clock.Scheduler) *toastQueue {
	return &toastQueue{sched: s}
}

// Notify implements game.Notifier.
func (q *toastQueue) Notify(n game.Notification) {
	if n.Duration <= 0 {
		n.Duration = game.NotificationDuration
	}
	t := &toast{note: n}
	t.timer = q.sched.AfterFunc(n.Duration, func() { q.remove(t) })
	q.toasts = append(q.toasts, t)
	for len(q.toasts) > maxToasts {
		q.toasts[0].timer.Stop()
		q.toasts = q.toasts[1:]
	}
}

// Latest returns the most recent live notification.
func (q *toastQueue) Latest() (game.Notification, bool) {
	if len(q.toasts) == 0 {
		return game.Notification{}, false
	}
	return q.toasts[len(q.toasts)-1].note, true
}

// Len returns the number of live notifications.
func (q *toastQueue) Len() int {
	return len(q.toasts)
}

// Clear drops every notification and stops its timer.
func (q *toastQueue) Clear() {
	for _, t := range q.toasts {
		t.timer.Stop()
	}
	q.toasts = nil
}

func (q *toastQueue) remove(target *toast) {
	for i, t := range q.toasts {
		if t == target {
			q.toasts = append(q.toasts[:i], q.toasts[i+1:]...)
			return
		}
	}
}
