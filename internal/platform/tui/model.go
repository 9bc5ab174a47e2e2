package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gameroom/internal/config"
	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/input"
	"github.com/vovakirdan/gameroom/internal/loop"
	"github.com/vovakirdan/gameroom/internal/registry"
	"github.com/vovakirdan/gameroom/internal/storage"
)

// hudRows is the number of screen rows reserved for the game's HUD.
const hudRows = 1

// Options configures the host models.
type Options struct {
	Store      storage.Backend // nil keeps scores in memory
	TickRate   int
	Timestep   loop.TimestepMode
	Seed       int64
	Difficulty string // preset applied to configurable games
	Input      input.Options
	Logger     *log.Logger
	Context    context.Context // cancels running schedulers, e.g. on SSH disconnect
}

func (o Options) logger() *log.Logger {
	if o.Logger == nil {
		return log.New(io.Discard)
	}
	return o.Logger
}

func (o Options) context() context.Context {
	if o.Context == nil {
		return context.Background()
	}
	return o.Context
}

// hud holds the last summary the session reported. It is shared by the
// model copies Bubble Tea makes.
type hud struct {
	summary loop.Summary
}

// GameModel is the Bubble Tea model that hosts one game session.
// The scheduler only exists while a run is playing.
type GameModel struct {
	session *loop.Session
	adapter *input.Adapter
	sched   *loop.Scheduler
	opts    Options
	logger  *log.Logger

	screen *core.Screen
	canvas *core.Canvas
	hud    *hud

	keys       GameKeyMap
	help       help.Model
	width      int
	height     int
	standalone bool
	quitting   bool
	backToMenu bool
}

// NewGameModel wraps game in a session sized for a width x height terminal.
func NewGameModel(game registry.Game, opts Options, width, height int) GameModel {
	logger := opts.logger()
	h := &hud{}

	var scores storage.HighScores
	var runs storage.RunLog
	if opts.Store != nil {
		scores, runs = opts.Store, opts.Store
	}

	session := loop.NewSession(game, loop.Options{
		Config: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: opts.TickRate,
			Seed:     opts.Seed,
		},
		Timestep: opts.Timestep,
		Scores:   scores,
		Runs:     runs,
		Logger:   logger,
		Observer: func(s loop.Summary) { h.summary = s },
	})

	m := GameModel{
		session: session,
		opts:    opts,
		logger:  logger,
		hud:     h,
		keys:    DefaultGameKeyMap(),
		help:    help.New(),
	}
	m.resize(width, height)
	m.adapter = input.NewAdapter(m.canvas.Viewport(), opts.Input)
	return m
}

// resize rebuilds the screen and canvas. The game keeps its logical size,
// only the display mapping changes.
func (m *GameModel) resize(width, height int) {
	m.width, m.height = width, height
	rows := max(0, height-1) // Footer line
	if m.screen == nil {
		m.screen = core.NewScreen(width, rows)
	} else {
		m.screen.Resize(width, rows)
	}
	w, h := m.session.Game().Size()
	m.canvas = core.NewCanvas(m.screen, w, h, hudRows)
	if m.adapter != nil {
		m.adapter.SetViewport(m.canvas.Viewport())
	}
	m.help.Width = width
}

// Init shows the idle screen; the run starts on the first start gesture.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case FrameMsg:
		return m.handleFrame(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.teardown()
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.teardown()
		m.backToMenu = true
		if m.standalone {
			return m, tea.Quit
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionNone {
		return m, nil
	}
	ev := input.Event{Kind: input.KeyPress, Action: action, At: time.Now()}
	return m.dispatch(ev)
}

// handleMouse forwards pointer events in screen cells to the adapter.
func (m GameModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	ev := input.Event{CellX: msg.X, CellY: msg.Y, At: time.Now()}
	switch {
	case msg.Action == tea.MouseActionMotion:
		ev.Kind = input.PointerMove
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		ev.Kind = input.PointerPress
	case msg.Action == tea.MouseActionRelease:
		ev.Kind = input.PointerRelease
	default:
		return m, nil
	}
	return m.dispatch(ev)
}

// dispatch hands an event to the adapter and starts a run on a start
// gesture.
func (m GameModel) dispatch(ev input.Event) (tea.Model, tea.Cmd) {
	if m.adapter.Handle(ev, m.session.Status()) != input.IntentStart {
		return m, nil
	}
	return m, m.start()
}

// start moves the session to playing and launches a fresh scheduler.
func (m *GameModel) start() tea.Cmd {
	if m.session.Closed() {
		return nil
	}
	m.stopScheduler()
	m.adapter.Reset()
	if err := m.session.Start(time.Now()); err != nil {
		m.logger.Warn("could not start run", "game", m.session.Game().ID(), "error", err)
		return nil
	}

	m.sched = loop.NewScheduler(m.opts.TickRate)
	m.sched.Start(m.opts.context())
	return waitForFrame(m.sched)
}

// handleFrame advances the session by one scheduler frame.
func (m GameModel) handleFrame(msg FrameMsg) (tea.Model, tea.Cmd) {
	// Frames from a scheduler of an earlier run
	if msg.sched != m.sched || m.sched == nil {
		return m, nil
	}

	in := m.adapter.Frame(msg.At)
	if _, err := m.session.Advance(msg.At, in); err != nil {
		m.stopScheduler()
		return m, nil
	}

	if m.session.Status() != core.StatusPlaying {
		m.stopScheduler()
		return m, nil
	}
	return m, waitForFrame(m.sched)
}

func (m *GameModel) stopScheduler() {
	if m.sched != nil {
		m.sched.Stop()
		m.sched = nil
	}
}

// teardown stops the frame source before detaching input and closing the
// session, so no step or render can follow.
func (m *GameModel) teardown() {
	m.stopScheduler()
	m.adapter.Close()
	m.session.Close()
}

// saveScreenshot saves the current screen to ~/.gameroom/screenshots.
func (m *GameModel) saveScreenshot() {
	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, config.HomeDir, "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not create screenshot directory", "error", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.session.Game().ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting || m.session.Closed() {
		return ""
	}

	m.screen.Clear()
	if err := m.session.Render(m.canvas); err != nil {
		return ""
	}
	if lines := m.overlay(); lines != nil {
		m.canvas.Overlay(lines, core.ColorBrightWhite)
	}

	return RenderScreen(m.screen) + "\n" + m.footer()
}

// overlay returns the status box for idle and game over.
func (m GameModel) overlay() []string {
	sum := m.hud.summary
	switch sum.Status {
	case core.StatusIdle:
		lines := []string{sum.Title, ""}
		if d, ok := m.session.Game().(registry.Describer); ok {
			lines = append(lines, d.Controls(), "")
		}
		if sum.Scored {
			lines = append(lines, fmt.Sprintf("Best: %d", sum.HighScore))
		}
		return append(lines, "Press enter or click to start")

	case core.StatusGameOver:
		head := "GAME OVER"
		if sum.Won {
			head = "YOU WIN"
		}
		lines := []string{head, ""}
		if sum.Scored {
			lines = append(lines, fmt.Sprintf("Score: %d   Best: %d", sum.Score, sum.HighScore))
			if sum.Score > 0 && sum.Score >= sum.HighScore {
				lines = append(lines, "New high score!")
			}
		}
		return append(lines, "", "r: restart   esc: menu")
	}
	return nil
}

func (m GameModel) footer() string {
	sum := m.hud.summary
	status := fmt.Sprintf(" %s  %s ", sum.Title, sum.Status)
	if sum.Scored {
		status += fmt.Sprintf(" best %d ", sum.HighScore)
	}
	return accentStyle.Render(status) + " " + dimStyle.Render(m.help.View(m.keys))
}

// Summary returns the latest session summary.
func (m GameModel) Summary() loop.Summary {
	return m.hud.summary
}

// Playing reports whether a scheduler is running.
func (m GameModel) Playing() bool {
	return m.sched != nil
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the terminal until the user quits.
func Run(game registry.Game, opts Options, width, height int) error {
	model := NewGameModel(game, opts, width, height)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(opts.context()),
	)

	final, err := p.Run()
	if m, ok := final.(GameModel); ok {
		m.teardown()
	}
	return err
}
