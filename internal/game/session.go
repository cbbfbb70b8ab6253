// Package game implements the catch-me session state machine.
package game

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/verte-zerg/catchme/internal/achievement"
	"github.com/verte-zerg/catchme/internal/clock"
	"github.com/verte-zerg/catchme/internal/geometry"
	"github.com/verte-zerg/catchme/internal/model"
	"github.com/verte-zerg/catchme/internal/stats"
	"github.com/verte-zerg/catchme/internal/throttle"
)

// Phase is the session lifecycle state.
type Phase uint8

// Phases.
const (
	Idle Phase = iota
	Active
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// Timing and presentation constants.
const (
	HintDuration         = 5 * time.Second
	FeedbackDuration     = 1500 * time.Millisecond
	NotificationDuration = 4 * time.Second

	CatchEmoji = "🎉"
	CopyEmoji  = "📋"
)

// DefaultPosition is where the target rests after a reset.
var DefaultPosition = model.Position{X: 50, Y: 50}

// Feedback is a short-lived emoji signal for the renderer.
type Feedback struct {
	Emoji    string
	Duration time.Duration
}

// Options wires a Session to its collaborators. Scheduler and Arena are required
// for relocation; the rest fall back to no-ops.
type Options struct {
	Arena      Arena
	Device     DeviceDetector
	Notifier   Notifier
	Sharer     Sharer
	Recorder   Recorder
	Scheduler  *clock.Scheduler
	Geometry   *geometry.Engine
	Difficulty model.DifficultyProfile
	Logger     zerolog.Logger
}

// Session owns all state of one game session. It is not safe for concurrent
// use: every method must be called from the same event loop that runs the
// scheduler.
type Session struct {
	arena    Arena
	device   DeviceDetector
	notifier Notifier
	sharer   Sharer
	recorder Recorder
	sched    *clock.Scheduler
	geo      *geometry.Engine
	log      zerolog.Logger

	phase        Phase
	instructions bool
	difficulty   model.DifficultyProfile
	position     model.Position
	tracker      stats.Tracker
	unlocked     *achievement.Set
	cooldown     *throttle.Cooldown

	feedback      Feedback
	feedbackTimer *clock.Timer
	hint          bool
	hintTimer     *clock.Timer

	closed bool
}

// NewSession creates an idle session showing instructions.
func NewSession(opts Options) *Session {
	s := &Session{
		arena:        opts.Arena,
		device:       opts.Device,
		notifier:     opts.Notifier,
		sharer:       opts.Sharer,
		recorder:     opts.Recorder,
		sched:        opts.Scheduler,
		geo:          opts.Geometry,
		log:          opts.Logger,
		difficulty:   opts.Difficulty,
		phase:        Idle,
		instructions: true,
		position:     DefaultPosition,
		unlocked:     achievement.NewSet(),
	}
	if s.arena == nil {
		s.arena = ArenaFunc(func() model.Bounds { return model.Bounds{} })
	}
	if s.device == nil {
		s.device = nopDetector{}
	}
	if s.notifier == nil {
		s.notifier = nopNotifier{}
	}
	if s.sched == nil {
		s.sched = clock.NewScheduler(clock.SystemClock{})
	}
	if s.geo == nil {
		s.geo = geometry.New()
	}
	if s.difficulty.Name == "" {
		s.difficulty = model.DefaultDifficulty()
	}
	s.cooldown = throttle.New(s.sched)
	return s
}

// Start activates the session and places the target at a random position.
func (s *Session) Start() {
	if s.closed {
		return
	}
	s.phase = Active
	s.instructions = false
	s.placeRandomly()
	if s.device.TouchPrimary() {
		s.showHint()
	}
	s.log.Debug().Str("difficulty", s.difficulty.Name).Msg("session started")
	s.record(model.EventStart, "")
}

// Reset returns to Idle with empty stats, no unlocks, no cooldown and the
// target at DefaultPosition.
func (s *Session) Reset() {
	if s.closed {
		return
	}
	s.tracker.Reset()
	s.unlocked.Clear()
	s.cooldown.Cancel()
	s.clearFeedback()
	s.position = DefaultPosition
	s.phase = Idle
	s.instructions = true
	s.log.Debug().Msg("session reset")
	s.record(model.EventReset, "")
}

// RequestInstructions shows the instructions overlay without changing the phase.
func (s *Session) RequestInstructions() {
	s.instructions = true
}

// DismissInstructions hides the instructions overlay without changing the phase.
func (s *Session) DismissInstructions() {
	s.instructions = false
}

// SetDifficulty selects the profile used by subsequent relocations.
func (s *Session) SetDifficulty(p model.DifficultyProfile) {
	if p.Name == "" {
		return
	}
	s.difficulty = p
	s.log.Debug().Str("difficulty", p.Name).Msg("difficulty changed")
}

// PointerMove handles a pointer or touch sample in arena coordinates and
// reports whether the target relocated.
func (s *Session) PointerMove(p model.Position) bool {
	if s.closed || s.phase != Active {
		return false
	}
	profile := s.difficulty
	return s.cooldown.TryRelocate(profile.MoveSpeed, func() bool {
		current := s.position
		if !geometry.Within(current, p, profile.TriggerDistance) {
			return false
		}
		next, ok := s.geo.EscapePosition(current, p, profile, s.arena.Size())
		if !ok {
			return false
		}
		s.position = next
		s.record(model.EventRelocate, "")
		return true
	})
}

// PointerEnterTarget counts a near miss when the pointer enters the target's
// hit area while the session is active.
func (s *Session) PointerEnterTarget() bool {
	if s.closed || s.phase != Active {
		return false
	}
	snap := s.tracker.RecordAttempt()
	s.record(model.EventAttempt, "")
	s.unlock(snap)
	return true
}

// Catch handles an activation of the target: it counts an attempt and a
// catch, raises feedback, unlocks achievements and repositions the target.
func (s *Session) Catch() []achievement.Definition {
	if s.closed {
		return nil
	}
	snap := s.tracker.RecordCatch()
	s.showFeedback(CatchEmoji, FeedbackDuration)
	s.record(model.EventCatch, "")
	unlocked := s.unlock(snap)
	s.placeRandomly()
	return unlocked
}

// Share publishes the score through the Sharer and reports the result via
// feedback and notifications. Session state is unaffected.
func (s *Session) Share(ctx context.Context) {
	if s.closed {
		return
	}
	if s.sharer == nil {
		s.CompleteShare(ShareCopied, fmt.Errorf("no share target available"))
		return
	}
	outcome, err := s.sharer.Share(ctx, ShareText(s.tracker.Snapshot()))
	s.CompleteShare(outcome, err)
}

// CompleteShare applies the result of a share performed outside the session,
// such as one run off the event loop.
func (s *Session) CompleteShare(outcome ShareOutcome, err error) {
	if s.closed {
		return
	}
	if err != nil {
		s.shareFailed(err)
		return
	}
	switch outcome {
	case ShareCopied:
		s.showFeedback(CopyEmoji, FeedbackDuration)
		s.notifier.Notify(Notification{
			Title:       "Score copied!",
			Description: "Share your score with friends!",
			Duration:    NotificationDuration,
		})
		s.record(model.EventShare, "copied")
	case ShareNative:
		s.record(model.EventShare, "native")
	case ShareCancelled:
		s.log.Debug().Msg("share cancelled")
	}
}

// ShareText formats the share message.
func ShareText(snap model.SessionStats) string {
	return fmt.Sprintf("I caught the elusive button %d times with a %d%% success rate! Can you beat my score?", snap.Catches, snap.SuccessRate())
}

// Close cancels every pending timer. The session ignores input afterwards.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.cooldown.Cancel()
	s.feedbackTimer.Stop()
	s.hintTimer.Stop()
	s.feedbackTimer = nil
	s.hintTimer = nil
	s.closed = true
}

// Phase returns the lifecycle state.
func (s *Session) Phase() Phase { return s.phase }

// Position returns the target position.
func (s *Session) Position() model.Position { return s.position }

// Stats returns the current counters.
func (s *Session) Stats() model.SessionStats { return s.tracker.Snapshot() }

// SuccessRate returns the rounded integer success percentage.
func (s *Session) SuccessRate() int { return s.tracker.SuccessRate() }

// Difficulty returns the selected profile.
func (s *Session) Difficulty() model.DifficultyProfile { return s.difficulty }

// Unlocked reports whether id has been unlocked this session.
func (s *Session) Unlocked(id achievement.ID) bool { return s.unlocked.Has(id) }

// UnlockedIDs returns unlocked achievements in catalog order.
func (s *Session) UnlockedIDs() []achievement.ID { return s.unlocked.IDs() }

// InstructionsVisible reports whether the instructions overlay is shown.
func (s *Session) InstructionsVisible() bool { return s.instructions }

// HintVisible reports whether the touch hint is shown.
func (s *Session) HintVisible() bool { return s.hint }

// CoolingDown reports whether proximity relocations are currently suppressed.
func (s *Session) CoolingDown() bool { return s.cooldown.Active() }

// Feedback returns the current feedback signal, if any.
func (s *Session) Feedback() (Feedback, bool) {
	if s.feedback.Emoji == "" {
		return Feedback{}, false
	}
	return s.feedback, true
}

func (s *Session) placeRandomly() {
	p, ok := s.geo.ResetPosition(s.arena.Size())
	if !ok {
		s.log.Debug().Msg("arena not measured; keeping target position")
		return
	}
	s.position = p
}

func (s *Session) unlock(snap model.SessionStats) []achievement.Definition {
	unlocked := achievement.Evaluate(snap, s.unlocked)
	for _, def := range unlocked {
		s.notifier.Notify(Notification{
			Title:       def.Title,
			Description: def.Description,
			Duration:    NotificationDuration,
		})
		s.log.Info().Str("achievement", def.ID.String()).Uint("catches", snap.Catches).Uint("attempts", snap.Attempts).Msg("achievement unlocked")
		s.record(model.EventUnlock, def.ID.String())
	}
	return unlocked
}

func (s *Session) showFeedback(emoji string, d time.Duration) {
	s.feedbackTimer.Stop()
	s.feedback = Feedback{Emoji: emoji, Duration: d}
	s.feedbackTimer = s.sched.AfterFunc(d, func() {
		s.feedback = Feedback{}
		s.feedbackTimer = nil
	})
}

func (s *Session) clearFeedback() {
	s.feedbackTimer.Stop()
	s.feedbackTimer = nil
	s.feedback = Feedback{}
}

func (s *Session) showHint() {
	s.hintTimer.Stop()
	s.hint = true
	s.hintTimer = s.sched.AfterFunc(HintDuration, func() {
		s.hint = false
		s.hintTimer = nil
	})
}

func (s *Session) shareFailed(err error) {
	s.log.Warn().Err(err).Msg("share failed")
	s.notifier.Notify(Notification{
		Title:       "Share failed",
		Description: "Could not copy score to clipboard",
		Variant:     VariantDestructive,
		Duration:    NotificationDuration,
	})
}

func (s *Session) record(kind model.EventKind, detail string) {
	if s.recorder == nil {
		return
	}
	s.recorder.Record(model.Event{
		At:         s.sched.Now(),
		Kind:       kind,
		Difficulty: s.difficulty.Name,
		Position:   s.position,
		Stats:      s.tracker.Snapshot(),
		Detail:     detail,
	})
}
