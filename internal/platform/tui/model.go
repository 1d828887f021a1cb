package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-brush/internal/brush"
	"github.com/vovakirdan/tui-brush/internal/chart"
	"github.com/vovakirdan/tui-brush/internal/config"
	"github.com/vovakirdan/tui-brush/internal/core"
	"github.com/vovakirdan/tui-brush/internal/drag"
	"github.com/vovakirdan/tui-brush/internal/registry"
	"github.com/vovakirdan/tui-brush/internal/storage"
)

// statusLines is the number of rows below the stage: status and help.
const statusLines = 2

type pointerMode int

const (
	modeIdle  pointerMode = iota
	modeMove              // dragging the selection
	modeBrush             // drawing a new selection on the stage
)

// session is the mutable part of a BrushModel. It sits behind a pointer
// because the brush listeners write into it from inside Update calls.
type session struct {
	state   *brush.Store
	ctrl    *brush.Controller
	tracker *drag.Tracker
	pointer *brush.SelectionPointer

	mode           pointerMode
	windowDragging bool // set by the window-level listener in window mode

	tooltip   string
	hoverAt   brush.Point // last stage point over the selection
	notice    string
	noticeSeq int
}

func (s *session) setNotice(text string) {
	s.notice = text
	s.noticeSeq++
}

// onMove keeps the status line tooltip in step with the drag.
func (s *session) onMove(ev brush.MoveEvent) {
	switch {
	case ev.Type == brush.MoveNone:
		s.tooltip = ""
	case ev.Coords != nil:
		s.tooltip = fmt.Sprintf("%.0f,%.0f", ev.Coords.PageX, ev.Coords.PageY)
	case s.tooltip == "":
		s.tooltip = "moving"
	}
}

// selectionHooks reports pointer activity on the settled selection.
func selectionHooks(s *session, logger *log.Logger) brush.SelectionHooks {
	return brush.SelectionHooks{
		OnMouseMove:  func(p brush.Point) { s.hoverAt = p },
		OnMouseLeave: func(brush.Point) { s.hoverAt = brush.Point{} },
		OnMouseUp: func(p brush.Point) {
			logger.Debug("selection released", "x", p.X, "y", p.Y)
		},
		OnClick: func(brush.Point) {
			sel := s.state.State().Selection()
			s.setNotice(fmt.Sprintf("selection %.0fx%.0f", sel.Width(), sel.Height()))
		},
	}
}

// saveOnEnd returns the end listener: it logs the settled selection and
// records it in the store.
func saveOnEnd(s *session, store *storage.Store, logger *log.Logger, sessionID, seriesID string) brush.EndListener {
	return func(st brush.State) {
		logger.Debug("drag ended",
			"x0", st.Start.X, "x1", st.End.X,
			"y0", st.Start.Y, "y1", st.End.Y,
		)
		if store == nil || st.Empty() {
			return
		}

		id, err := store.SaveSelection(storage.SelectionFromState(sessionID, seriesID, st))
		if err != nil {
			logger.Error("could not save selection", "error", err)
			s.setNotice("save failed")
			return
		}
		logger.Info("selection saved", "id", id, "series", seriesID)
		s.setNotice(fmt.Sprintf("saved #%d", id))
	}
}

// Env describes where a BrushModel runs.
type Env struct {
	Session string // recorded with every saved selection
	Width   int
	Height  int
	Logger  *log.Logger // nil discards log output
}

// BrushModel is the Bubble Tea model for the brush stage.
type BrushModel struct {
	cfg       config.Config
	opts      brush.Options
	series    registry.Series
	values    []float64
	logger    *log.Logger
	keys      BrushKeyMap
	help      help.Model
	styles    Styles
	screen    *core.Screen
	stage     chart.Stage
	s         *session
	width     int
	height    int
	quitting  bool
	sessionID string
}

// NewBrushModel creates a brush stage plotting series. Finished selections
// are saved to store when it is not nil.
func NewBrushModel(series registry.Series, store *storage.Store, cfg config.Config, env Env) BrushModel {
	logger := env.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	seed := cfg.Stage.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	opts := brush.Options{
		DisableDraggingSelection: cfg.Brush.DisableDraggingSelection,
		UseWindowMoveEvents:      cfg.Brush.UseWindowMoveEvents,
		SelectedBoxStyle:         SelectedBoxStyle(cfg.Style),
	}

	m := BrushModel{
		cfg:       cfg,
		opts:      opts,
		series:    series,
		values:    series.Sample(cfg.Stage.Samples, seed),
		logger:    logger,
		keys:      DefaultBrushKeyMap(),
		help:      help.New(),
		styles:    NewStyles(cfg.Style, opts.SelectedBoxStyle),
		sessionID: env.Session,
	}
	m.layout(env.Width, env.Height)

	s := &session{}
	s.state = brush.NewStore(m.placeSelection(cfg.Brush.Initial))
	s.ctrl = brush.NewController(
		s.state.Update,
		s.onMove,
		saveOnEnd(s, store, logger, env.Session, series.ID()),
	)
	s.pointer = brush.NewSelectionPointer(selectionHooks(s, logger))

	var trackerOpts []drag.Option
	if opts.UseWindowMoveEvents {
		trackerOpts = append(trackerOpts, drag.WithExternalDragging(func() bool {
			return s.windowDragging
		}))
	}
	s.tracker = drag.NewTracker(drag.Handlers{
		OnDragStart: s.ctrl.DragStart,
		OnDragMove:  s.ctrl.DragMove,
		OnDragEnd:   s.ctrl.DragEnd,
	}, trackerOpts...)

	m.s = s
	return m
}

// layout sizes the screen buffer and places the stage in it.
func (m *BrushModel) layout(width, height int) {
	m.width = width
	m.height = height
	h := core.Max(height-statusLines, 0)
	if m.screen == nil {
		m.screen = core.NewScreen(width, h)
	} else {
		m.screen.Resize(width, h)
	}
	m.stage = chart.NewStage(m.screen.Bounds(), m.cfg.Stage.Padding)
	m.help.Width = width
}

// placeSelection builds a settled state on the current stage from fractions.
func (m BrushModel) placeSelection(f config.ExtentFractions) brush.State {
	bounds := m.stage.Bounds()
	st, err := brush.NewState(bounds, m.stage.ExtentFromFractions(f.X0, f.X1, f.Y0, f.Y1))
	if err != nil {
		m.logger.Warn("selection reset", "error", err)
		return brush.Reset(brush.State{Bounds: bounds})
	}
	return st
}

// fractionsOf expresses a settled selection relative to its bounds.
func fractionsOf(st brush.State, fallback config.ExtentFractions) config.ExtentFractions {
	b := st.Bounds
	if b.Width() <= 0 || b.Height() <= 0 {
		return fallback
	}
	return config.ExtentFractions{
		X0: (st.Start.X - b.X0) / b.Width(),
		X1: (st.End.X - b.X0) / b.Width(),
		Y0: (st.Start.Y - b.Y0) / b.Height(),
		Y1: (st.End.Y - b.Y0) / b.Height(),
	}
}

// Init sets the window title.
func (m BrushModel) Init() tea.Cmd {
	return tea.SetWindowTitle("brush: " + m.series.Title())
}

// Update handles messages and updates the model state.
func (m BrushModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	seq := m.s.noticeSeq

	var model tea.Model = m
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		model, cmd = m.handleKey(msg)
	case tea.MouseMsg:
		model, cmd = m.handleMouse(msg)
	case tea.WindowSizeMsg:
		model, cmd = m.handleResize(msg)
	case clearNoticeMsg:
		if msg.seq == m.s.noticeSeq {
			m.s.notice = ""
		}
	}

	if m.s.noticeSeq != seq {
		cmd = tea.Batch(cmd, clearNoticeCmd(m.s.noticeSeq))
	}
	return model, cmd
}

// handleKey processes keyboard input.
func (m BrushModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := m.cfg.Brush.KeyboardStep

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.finishGesture()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Clear):
		if m.s.mode == modeIdle {
			m.s.ctrl.Reset()
			m.s.setNotice("cleared")
		}
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
	case key.Matches(msg, m.keys.Left):
		m.nudge(-step, 0)
	case key.Matches(msg, m.keys.Right):
		m.nudge(step, 0)
	case key.Matches(msg, m.keys.Up):
		m.nudge(0, -step)
	case key.Matches(msg, m.keys.Down):
		m.nudge(0, step)
	}
	return m, nil
}

// nudge moves the selection by (dx, dy) as one complete drag that starts
// at the selection's top-left screen cell.
func (m BrushModel) nudge(dx, dy float64) {
	st := m.s.state.State()
	if m.s.mode != modeIdle || st.Empty() {
		return
	}
	x, y := m.stage.ToScreen(st.Start)
	from := brush.Pointer{PageX: float64(x), PageY: float64(y)}
	m.s.tracker.Start(from)
	m.s.tracker.Move(brush.Pointer{PageX: from.PageX + dx, PageY: from.PageY + dy})
	m.s.tracker.End()
}

// handleMouse routes pointer events to the drag tracker or to stage brushing.
func (m BrushModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	s := m.s
	st := s.state.State()
	route := brush.Routing(st, m.opts, s.tracker.Dragging())
	onStage := m.stage.Contains(msg.X, msg.Y)
	hit := onStage && m.stage.HitSelection(st, msg.X, msg.Y)
	p := m.stage.ToStage(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || s.mode != modeIdle || !onStage {
			return m, nil
		}
		s.pointer.Press(route, hit)
		if route.SelectionReceivesPointer && hit {
			if route.SelectionStartsDrag {
				m.beginMove(pointerAt(msg))
			}
			return m, nil
		}
		s.mode = modeBrush
		s.ctrl.BrushStart(p)

	case tea.MouseActionMotion:
		s.pointer.Move(route, hit, p)
		switch s.mode {
		case modeMove:
			// Leaving the overlay ends the drag; in window mode the
			// window listener keeps tracking.
			if !onStage && route.OverlayEndsDrag {
				m.endMove()
				return m, nil
			}
			s.tracker.Move(pointerAt(msg))
		case modeBrush:
			s.ctrl.BrushMove(p)
		}

	case tea.MouseActionRelease:
		s.pointer.Release(route, hit, p)
		switch s.mode {
		case modeMove:
			if m.releaseEndsDrag(route, st, msg.X, msg.Y) {
				m.endMove()
			}
		case modeBrush:
			s.mode = modeIdle
			s.ctrl.BrushEnd()
		}
	}
	return m, nil
}

// releaseEndsDrag reports whether a release at (x, y) finishes a move drag.
func (m BrushModel) releaseEndsDrag(route brush.Route, st brush.State, x, y int) bool {
	switch {
	case m.opts.UseWindowMoveEvents:
		// the window-level listener sees every release
		return true
	case route.OverlayActive && m.stage.Contains(x, y):
		return route.OverlayEndsDrag
	case m.stage.HitSelection(st, x, y):
		return route.SelectionReleaseEndsDrag
	default:
		// off the stage: the pointer has already left the overlay
		return true
	}
}

func (m BrushModel) beginMove(g brush.Gesture) {
	m.s.mode = modeMove
	m.s.windowDragging = m.opts.UseWindowMoveEvents
	m.s.tracker.Start(g)
}

func (m BrushModel) endMove() {
	m.s.mode = modeIdle
	m.s.windowDragging = false
	m.s.tracker.End()
}

// finishGesture settles whatever gesture is open.
func (m BrushModel) finishGesture() {
	switch m.s.mode {
	case modeMove:
		m.endMove()
	case modeBrush:
		m.s.mode = modeIdle
		m.s.ctrl.BrushEnd()
	}
}

func pointerAt(msg tea.MouseMsg) brush.Pointer {
	return brush.Pointer{PageX: float64(msg.X), PageY: float64(msg.Y)}
}

// handleResize rebuilds the stage and rescales the selection onto it.
func (m BrushModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.finishGesture()
	f := fractionsOf(m.s.state.State(), m.cfg.Brush.Initial)
	m.layout(msg.Width, msg.Height)
	m.s.state.Set(m.placeSelection(f))
	return m, nil
}

// draw renders the stage into the screen buffer.
func (m BrushModel) draw() brush.State {
	st := m.s.state.State()
	route := brush.Routing(st, m.opts, m.s.tracker.Dragging())

	m.screen.Clear()
	chart.Plot(m.screen, m.values, m.stage.Area)
	chart.DrawFrame(m.screen, m.stage, route.OverlayActive || m.s.mode == modeBrush)
	chart.DrawSelection(m.screen, m.stage, st)
	return st
}

// saveScreenshot writes the stage as plain text under ~/.brush/screenshots.
func (m BrushModel) saveScreenshot() {
	m.draw()

	dir := filepath.Join(config.UserDir(), "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.series.ID(), timestamp)
	path := filepath.Join(dir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.s.setNotice("screenshot " + filename)
}

// statusLine renders the series, the selection, and the drag tooltip.
func (m BrushModel) statusLine(st brush.State) string {
	sel := st.Selection()
	parts := []string{
		m.series.Title(),
		fmt.Sprintf("x %.0f..%.0f  y %.0f..%.0f", sel.X0, sel.X1, sel.Y0, sel.Y1),
	}
	switch {
	case m.s.tooltip != "":
		parts = append(parts, m.s.tooltip)
	case m.s.pointer.Hovering():
		parts = append(parts, fmt.Sprintf("@%.0f,%.0f", m.s.hoverAt.X, m.s.hoverAt.Y))
	}

	line := m.styles.Status.Render(strings.Join(parts, "  │  "))
	if m.s.notice != "" {
		line += "  " + m.styles.Notice.Render(m.s.notice)
	}
	return line
}

// View renders the current state to a string for display.
func (m BrushModel) View() string {
	if m.quitting {
		return ""
	}

	st := m.draw()

	var b strings.Builder
	b.WriteString(m.styles.RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(m.statusLine(st))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(m.help.View(m.keys)))
	return b.String()
}

// State returns the current selection state.
func (m BrushModel) State() brush.State {
	return m.s.state.State()
}

// Dragging reports whether a move drag is in progress.
func (m BrushModel) Dragging() bool {
	return m.s.mode == modeMove
}

// Tooltip returns the drag tooltip shown in the status line.
func (m BrushModel) Tooltip() string {
	return m.s.tooltip
}

// Notice returns the transient message shown after the status line.
func (m BrushModel) Notice() string {
	return m.s.notice
}

// Hovering reports whether the pointer rests on the selection.
func (m BrushModel) Hovering() bool {
	return m.s.pointer.Hovering()
}

// Stage returns the current stage layout.
func (m BrushModel) Stage() chart.Stage {
	return m.stage
}

// Run starts the brush stage in the local terminal.
func Run(series registry.Series, store *storage.Store, cfg config.Config, env Env) error {
	model := NewBrushModel(series, store, cfg, env)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)

	_, err := p.Run()
	return err
}
