package game

import (
	"context"
	"time"

	"github.com/verte-zerg/catchme/internal/model"
)

// Arena measures the play area on demand. A zero size means layout has not settled.
type Arena interface {
	Size() model.Bounds
}

// ArenaFunc adapts a function to Arena.
type ArenaFunc func() model.Bounds

// Size implements Arena.
func (f ArenaFunc) Size() model.Bounds { return f() }

// DeviceDetector reports whether the device is touch-primary.
type DeviceDetector interface {
	TouchPrimary() bool
}

// Variant selects how a notification is presented.
type Variant uint8

// Notification variants.
const (
	VariantDefault Variant = iota
	VariantDestructive
)

// Notification is a transient message for the user.
type Notification struct {
	Title       string
	Description string
	Variant     Variant
	Duration    time.Duration
}

// Notifier displays notifications. Fire-and-forget.
type Notifier interface {
	Notify(n Notification)
}

// ShareOutcome describes how a successful share was delivered.
type ShareOutcome uint8

// Share outcomes.
const (
	ShareNative ShareOutcome = iota
	ShareCopied
	ShareCancelled
)

// Sharer publishes text, natively when possible, else by copying it.
// A non-nil error means the share failed.
type Sharer interface {
	Share(ctx context.Context, text string) (ShareOutcome, error)
}

// Recorder observes session transitions.
type Recorder interface {
	Record(e model.Event)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Notification) {}

type nopDetector struct{}

func (nopDetector) TouchPrimary() bool { return false }
