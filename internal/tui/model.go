// Package tui provides the Bubble Tea game interface.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/verte-zerg/catchme/internal/clock"
	"github.com/verte-zerg/catchme/internal/game"
	"github.com/verte-zerg/catchme/internal/geometry"
	"github.com/verte-zerg/catchme/internal/model"
	"github.com/verte-zerg/catchme/internal/store"
)

const (
	frameInterval = 33 * time.Millisecond
	shareTimeout  = 5 * time.Second
	recentEvents  = 3

	defaultCellWidth  = 8
	defaultCellHeight = 16

	hintText = "💡 Tip: tap quickly when the button stops moving!"
)

var (
	titleStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	headerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	targetStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFFFFF")).Background(lipgloss.Color("#2F6FDE"))
	targetHoverStyle = targetStyle.Copy().Background(lipgloss.Color("#4C8DFF"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	toastStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	errorToastStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	overlayStyle     = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#8C8C8C")).
				Padding(1, 3)
)

type frameMsg time.Time

type shareResultMsg struct {
	outcome game.ShareOutcome
	err     error
}

// Deps are the collaborators the model wires into its session.
type Deps struct {
	Scheduler *clock.Scheduler
	Geometry  *geometry.Engine
	Device    game.DeviceDetector
	Sharer    game.Sharer
	Journal   *store.Store
	Logger    zerolog.Logger
}

// Model implements the Bubble Tea game UI.
type Model struct {
	config  model.Config
	session *game.Session
	sched   *clock.Scheduler
	journal *store.Store
	sharer  game.Sharer
	toasts  *toastQueue
	log     zerolog.Logger

	keys keyMap
	help help.Model

	width    int
	height   int
	layout   layout
	hovering bool

	recent []model.Event
}

// NewModel constructs the game model and its session.
func NewModel(cfg model.Config, deps Deps) *Model {
	sched := deps.Scheduler
	if sched == nil {
		sched = clock.NewScheduler(clock.SystemClock{})
	}
	m := &Model{
		config:  cfg,
		sched:   sched,
		journal: deps.Journal,
		sharer:  deps.Sharer,
		toasts:  newToastQueue(sched),
		log:     deps.Logger,
		keys:    defaultKeyMap(),
		help:    help.New(),
	}
	m.layout = newLayout(0, 0, m.scale())

	profile, ok := model.LookupDifficulty(cfg.Difficulty)
	if !ok {
		profile = model.DefaultDifficulty()
	}
	opts := game.Options{
		Arena:      game.ArenaFunc(m.arenaBounds),
		Device:     deps.Device,
		Notifier:   m.toasts,
		Sharer:     deps.Sharer,
		Scheduler:  sched,
		Geometry:   deps.Geometry,
		Difficulty: profile,
		Logger:     deps.Logger,
	}
	if deps.Journal != nil {
		opts.Recorder = store.NewRecorder(deps.Journal, deps.Logger)
	}
	m.session = game.NewSession(opts)
	return m
}

// Session exposes the underlying game session.
func (m *Model) Session() *game.Session {
	return m.session
}

// Close cancels every pending timer owned by the model.
func (m *Model) Close() {
	m.session.Close()
	m.toasts.Clear()
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return frameTick()
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout = newLayout(msg.Width, msg.Height, m.scale())
		m.help.Width = msg.Width
		return m, nil
	case frameMsg:
		m.sched.RunDue()
		return m, frameTick()
	case shareResultMsg:
		m.session.CompleteShare(msg.outcome, msg.err)
		m.refreshRecent()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	header := m.renderHeader()
	body := m.renderArena()
	footer := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.renderStatus())
	helpLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, m.help.View(m.keys))
	if body == "" {
		return strings.Join([]string{header, footer, helpLine}, "\n")
	}
	return strings.Join([]string{header, body, footer, helpLine}, "\n")
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.Close()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Start):
		m.session.Start()
		m.hovering = false
	case key.Matches(msg, m.keys.Reset):
		m.session.Reset()
		m.hovering = false
	case key.Matches(msg, m.keys.Instructions):
		// Before the first start only the start key hides the overlay.
		switch {
		case !m.session.InstructionsVisible():
			m.session.RequestInstructions()
		case m.session.Phase() == game.Active:
			m.session.DismissInstructions()
		}
	case key.Matches(msg, m.keys.Easy):
		m.setDifficulty(model.DifficultyEasy)
	case key.Matches(msg, m.keys.Medium):
		m.setDifficulty(model.DifficultyMedium)
	case key.Matches(msg, m.keys.Hard):
		m.setDifficulty(model.DifficultyHard)
	case key.Matches(msg, m.keys.Share):
		return m, m.shareCmd()
	default:
		return m, nil
	}
	m.refreshRecent()
	return m, nil
}

// shareCmd runs the share off the event loop; the result comes back as a
// shareResultMsg.
func (m *Model) shareCmd() tea.Cmd {
	if m.sharer == nil {
		m.session.Share(context.Background())
		return nil
	}
	sharer := m.sharer
	text := game.ShareText(m.session.Stats())
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), shareTimeout)
		defer cancel()
		outcome, err := sharer.Share(ctx, text)
		return shareResultMsg{outcome: outcome, err: err}
	}
}

func (m *Model) setDifficulty(name string) {
	profile, ok := model.LookupDifficulty(name)
	if !ok {
		return
	}
	m.session.SetDifficulty(profile)
}

// handleMouse forwards pointer samples to the session. Enter detection uses
// the target position before the sample can move it.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.session.InstructionsVisible() {
		m.hovering = false
		return
	}
	over := m.layout.overTarget(m.session.Position(), msg.X, msg.Y)
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if !over {
			return
		}
		m.session.Catch()
		m.hovering = false
		m.refreshRecent()
		return
	case msg.Action == tea.MouseActionMotion:
	default:
		return
	}

	changed := false
	if over && !m.hovering {
		changed = m.session.PointerEnterTarget()
	}
	if p, ok := m.layout.toArena(msg.X, msg.Y); ok {
		if m.session.PointerMove(p) {
			changed = true
		}
	}
	m.hovering = m.layout.overTarget(m.session.Position(), msg.X, msg.Y)
	if changed {
		m.refreshRecent()
	}
}

func (m *Model) refreshRecent() {
	if m.journal == nil {
		return
	}
	events, err := m.journal.Recent(context.Background(), recentEvents)
	if err != nil {
		m.log.Warn().Err(err).Msg("failed to load recent events")
		return
	}
	m.recent = events
}

func (m *Model) arenaBounds() model.Bounds {
	return m.layout.bounds()
}

func (m *Model) scale() cellScale {
	s := cellScale{width: m.config.CellWidth, height: m.config.CellHeight}
	if s.width <= 0 {
		s.width = defaultCellWidth
	}
	if s.height <= 0 {
		s.height = defaultCellHeight
	}
	return s
}

func (m *Model) renderHeader() string {
	snap := m.session.Stats()
	segments := []string{
		titleStyle.Render("Catch Me If You Can!"),
		headerStyle.Render(fmt.Sprintf("Attempts %d · Catches %d · Success %d%%", snap.Attempts, snap.Catches, snap.SuccessRate())),
		footerStyle.Render(fmt.Sprintf("%s · %s", m.session.Difficulty().Name, m.session.Phase())),
	}
	return lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, strings.Join(segments, "  "))
}

func (m *Model) renderArena() string {
	if m.layout.rows == 0 {
		return ""
	}
	if m.session.InstructionsVisible() {
		return lipgloss.Place(m.layout.cols, m.layout.rows, lipgloss.Center, lipgloss.Center, renderInstructions(m.session.Phase()))
	}
	style := targetStyle
	if m.hovering {
		style = targetHoverStyle
	}
	emoji := ""
	if fb, ok := m.session.Feedback(); ok {
		emoji = fb.Emoji
	}
	return m.layout.canvas(m.session.Position(), style.Render(targetLabel), emoji)
}

func renderInstructions(phase game.Phase) string {
	lines := []string{
		"🎯",
		"How to Play",
		"",
		"• Move your cursor toward the blue button",
		"• The button will try to escape!",
		"• Click it to score a point",
		"• Try to improve your success rate",
		"",
	}
	if phase == game.Active {
		lines = append(lines, "enter to restart · ? to resume")
	} else {
		lines = append(lines, "enter to start")
	}
	return overlayStyle.Render(strings.Join(lines, "\n"))
}

// renderStatus shows the newest toast, then the touch hint, then recent events.
func (m *Model) renderStatus() string {
	if n, ok := m.toasts.Latest(); ok {
		style := toastStyle
		if n.Variant == game.VariantDestructive {
			style = errorToastStyle
		}
		if n.Description == "" {
			return style.Render(n.Title)
		}
		return style.Render(n.Title + " " + n.Description)
	}
	if m.session.HintVisible() {
		return footerStyle.Render(hintText)
	}
	if len(m.recent) == 0 {
		return ""
	}
	labels := make([]string, 0, len(m.recent))
	for _, e := range m.recent {
		labels = append(labels, eventLabel(e))
	}
	return footerStyle.Render("Recent: " + strings.Join(labels, " · "))
}

func eventLabel(e model.Event) string {
	switch e.Kind {
	case model.EventRelocate:
		return "escaped"
	case model.EventAttempt:
		return "near miss"
	case model.EventCatch:
		return "caught"
	case model.EventUnlock:
		return "unlocked " + e.Detail
	case model.EventShare:
		return "shared"
	default:
		return string(e.Kind)
	}
}
