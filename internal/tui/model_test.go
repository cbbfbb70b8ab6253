package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/catchme/internal/achievement"
	"github.com/verte-zerg/catchme/internal/clock"
	"github.com/verte-zerg/catchme/internal/game"
	"github.com/verte-zerg/catchme/internal/geometry"
	"github.com/verte-zerg/catchme/internal/model"
	"github.com/verte-zerg/catchme/internal/store"
)

type fakeSharer struct {
	outcome game.ShareOutcome
	err     error
	texts   []string
}

func (f *fakeSharer) Share(_ context.Context, text string) (game.ShareOutcome, error) {
	f.texts = append(f.texts, text)
	return f.outcome, f.err
}

type harness struct {
	clock   *clock.ManualClock
	model   *Model
	journal *store.Store
	sharer  *fakeSharer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	c := clock.NewManualClock(time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	journal, err := store.Open(store.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = journal.Close() })
	sharer := &fakeSharer{outcome: game.ShareCopied}
	m := NewModel(model.Config{Difficulty: model.DifficultyEasy}, Deps{
		Scheduler: clock.NewScheduler(c),
		Geometry:  geometry.NewWithSeed(42),
		Sharer:    sharer,
		Journal:   journal,
		Logger:    zerolog.Nop(),
	})
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 27})
	return &harness{clock: c, model: m, journal: journal, sharer: sharer}
}

func (h *harness) key(s string) tea.Cmd {
	var msg tea.KeyMsg
	switch s {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+c":
		msg = tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	_, cmd := h.model.Update(msg)
	return cmd
}

func (h *harness) advance(d time.Duration) {
	h.clock.Advance(d)
	h.model.Update(frameMsg(h.clock.Now()))
}

// targetCell returns the terminal cell at the centre of the target label.
func (h *harness) targetCell() (int, int) {
	r := h.model.layout.targetRect(h.model.session.Position())
	return r.X + r.W/2, r.Y + headerRows
}

func TestWindowSizeMeasuresArena(t *testing.T) {
	h := newHarness(t)
	assert.Equal(t, model.Bounds{Width: 640, Height: 384}, h.model.arenaBounds())

	h.model.Update(tea.WindowSizeMsg{Width: 80, Height: 2})
	assert.False(t, h.model.arenaBounds().Measured())
}

func TestStartKeyActivatesSession(t *testing.T) {
	h := newHarness(t)
	require.True(t, h.model.session.InstructionsVisible())
	assert.Contains(t, h.model.View(), "How to Play")

	h.key("enter")
	s := h.model.Session()
	assert.Equal(t, game.Active, s.Phase())
	assert.False(t, s.InstructionsVisible())
	assert.Contains(t, h.model.View(), targetLabel)
	assert.NotEqual(t, game.DefaultPosition, s.Position())
}

func TestClickOnTargetCatches(t *testing.T) {
	h := newHarness(t)
	h.key("enter")
	x, y := h.targetCell()

	h.model.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	s := h.model.Session()
	assert.Equal(t, model.SessionStats{Attempts: 1, Catches: 1}, s.Stats())
	assert.True(t, s.Unlocked(achievement.FirstCatch))
	fb, ok := s.Feedback()
	require.True(t, ok)
	assert.Equal(t, game.CatchEmoji, fb.Emoji)
	assert.Contains(t, h.model.View(), "First Catch")

	h.advance(game.FeedbackDuration)
	_, ok = s.Feedback()
	assert.False(t, ok)
}

func TestClickOffTargetIgnored(t *testing.T) {
	h := newHarness(t)
	h.key("enter")
	r := h.model.layout.targetRect(h.model.session.Position())
	y := r.Y + headerRows + 3
	if r.Y > h.model.layout.rows/2 {
		y = r.Y + headerRows - 3
	}
	h.model.Update(tea.MouseMsg{X: r.X, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, model.SessionStats{}, h.model.Session().Stats())
}

func TestMotionOntoTargetCountsNearMissAndEscapes(t *testing.T) {
	h := newHarness(t)
	h.key("enter")
	before := h.model.session.Position()
	x, y := h.targetCell()

	h.model.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone})
	s := h.model.Session()
	assert.Equal(t, uint(1), s.Stats().Attempts)
	assert.Equal(t, uint(0), s.Stats().Catches)
	assert.NotEqual(t, before, s.Position())
	assert.True(t, s.CoolingDown())

	events, err := h.journal.Recent(context.Background(), 5)
	require.NoError(t, err)
	kinds := make([]model.EventKind, 0, len(events))
	for _, e := range events {
		kinds = append(kinds, e.Kind)
	}
	assert.Contains(t, kinds, model.EventAttempt)
	assert.Contains(t, kinds, model.EventRelocate)
	assert.Contains(t, h.model.renderStatus(), "near miss")
}

func TestMotionIgnoredWhileInstructionsShown(t *testing.T) {
	h := newHarness(t)
	x, y := h.targetCell()
	h.model.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
	assert.Equal(t, model.SessionStats{}, h.model.Session().Stats())
	assert.Equal(t, game.DefaultPosition, h.model.Session().Position())
}

func TestDifficultyKeys(t *testing.T) {
	h := newHarness(t)
	h.key("3")
	assert.Equal(t, model.DifficultyHard, h.model.Session().Difficulty().Name)
	h.key("2")
	assert.Equal(t, model.DifficultyMedium, h.model.Session().Difficulty().Name)
	h.key("1")
	assert.Equal(t, model.DifficultyEasy, h.model.Session().Difficulty().Name)
	assert.Contains(t, h.model.renderHeader(), "easy")
}

func TestInstructionsToggleKeepsPhase(t *testing.T) {
	h := newHarness(t)
	h.key("enter")
	h.key("?")
	assert.True(t, h.model.Session().InstructionsVisible())
	assert.Equal(t, game.Active, h.model.Session().Phase())
	h.key("?")
	assert.False(t, h.model.Session().InstructionsVisible())
	assert.Equal(t, game.Active, h.model.Session().Phase())
}

func TestResetKey(t *testing.T) {
	h := newHarness(t)
	h.key("enter")
	x, y := h.targetCell()
	h.model.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	h.key("r")

	s := h.model.Session()
	assert.Equal(t, game.Idle, s.Phase())
	assert.Equal(t, model.SessionStats{}, s.Stats())
	assert.Empty(t, s.UnlockedIDs())
	assert.Equal(t, game.DefaultPosition, s.Position())
}

func TestShareShowsToastUntilExpiry(t *testing.T) {
	h := newHarness(t)
	cmd := h.key("s")
	require.NotNil(t, cmd)
	assert.Empty(t, h.sharer.texts, "share must run in the returned command")

	h.model.Update(cmd())
	require.Len(t, h.sharer.texts, 1)
	assert.Contains(t, h.sharer.texts[0], "0 times with a 0% success rate")
	assert.Contains(t, h.model.renderStatus(), "Score copied!")

	h.advance(game.NotificationDuration)
	assert.NotContains(t, h.model.renderStatus(), "Score copied!")
}

func TestShareFailureShowsErrorToast(t *testing.T) {
	h := newHarness(t)
	h.sharer.err = errors.New("no clipboard")
	cmd := h.key("s")
	require.NotNil(t, cmd)
	h.model.Update(cmd())
	assert.Contains(t, h.model.renderStatus(), "Share failed")
}

func TestInstructionsStayWhileIdle(t *testing.T) {
	h := newHarness(t)
	h.key("?")
	s := h.model.Session()
	assert.True(t, s.InstructionsVisible())
	assert.Equal(t, game.Idle, s.Phase())

	x, y := h.targetCell()
	h.model.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.Equal(t, model.SessionStats{}, s.Stats())
}

func TestInstructionsStayAfterReset(t *testing.T) {
	h := newHarness(t)
	h.key("enter")
	h.key("r")
	h.key("?")
	assert.True(t, h.model.Session().InstructionsVisible())
}

func TestQuitClosesSession(t *testing.T) {
	h := newHarness(t)
	h.key("enter")
	cmd := h.key("q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	h.key("r")
	assert.Equal(t, game.Active, h.model.Session().Phase(), "closed session ignores input")
	assert.Equal(t, 0, h.model.toasts.Len())
}

func TestFrameReschedules(t *testing.T) {
	h := newHarness(t)
	_, cmd := h.model.Update(frameMsg(h.clock.Now()))
	assert.NotNil(t, cmd)
}

func TestViewEmptyBeforeSize(t *testing.T) {
	m := NewModel(model.Config{}, Deps{Scheduler: clock.NewScheduler(clock.NewManualClock(time.Unix(0, 0)))})
	assert.Equal(t, "", m.View())
	assert.Equal(t, model.DefaultDifficulty().Name, m.Session().Difficulty().Name)
	assert.True(t, strings.Contains(m.help.View(m.keys), "reset"))
}
