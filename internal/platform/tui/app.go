package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gameroom/internal/registry"
)

type appScreen int

const (
	screenMenu appScreen = iota
	screenGame
	screenScores
)

// App is the top-level model: menu -> game -> menu, with the scoreboard
// one key away. Every game picked gets a fresh instance and session.
type App struct {
	opts   Options
	width  int
	height int
	screen appScreen

	menu  MenuModel
	game  *GameModel
	board ScoreboardModel

	quitting bool
}

// NewApp creates the app on the menu screen.
func NewApp(opts Options, width, height int) App {
	return App{
		opts:   opts,
		width:  width,
		height: height,
		menu:   NewMenuModel(opts.Store, width, height),
	}
}

// Init initializes the app.
func (a App) Init() tea.Cmd {
	return a.menu.Init()
}

// Update routes messages to the active screen.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		a.width = wsm.Width
		a.height = wsm.Height
	}

	switch a.screen {
	case screenGame:
		return a.updateGame(msg)
	case screenScores:
		return a.updateScores(msg)
	}
	return a.updateMenu(msg)
}

func (a App) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.menu.Update(msg)
	if menu, ok := next.(MenuModel); ok {
		a.menu = menu
	}

	switch {
	case a.menu.IsQuitting():
		a.quitting = true
		return a, tea.Quit

	case a.menu.WantsScoreboard():
		a.board = NewScoreboardModel(a.opts.Store, "", a.width, a.height)
		a.screen = screenScores
		return a, a.board.Init()

	case a.menu.Selected() != nil:
		return a.openGame(a.menu.Selected().GameID)
	}

	return a, cmd
}

// openGame creates a game instance and its session.
func (a App) openGame(id string) (tea.Model, tea.Cmd) {
	logger := a.opts.logger()
	difficulty := string(a.menu.Difficulty())

	game, err := registry.Create(id)
	if err == nil {
		err = registry.Configure(game, "", difficulty)
	}
	if err != nil {
		logger.Error("could not open game", "game", id, "error", err)
		a.menu = NewMenuModel(a.opts.Store, a.width, a.height)
		return a, nil
	}

	logger.Debug("game opened", "game", id, "difficulty", difficulty)
	gm := NewGameModel(game, a.opts, a.width, a.height)
	a.game = &gm
	a.screen = screenGame
	return a, a.game.Init()
}

func (a App) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.game.Update(msg)
	if gm, ok := next.(GameModel); ok {
		a.game = &gm
	}

	if a.game.IsQuitting() {
		a.quitting = true
		return a, tea.Quit
	}
	if a.game.BackToMenu() {
		a.game = nil
		a.screen = screenMenu
		a.menu = NewMenuModel(a.opts.Store, a.width, a.height)
		return a, a.menu.Init()
	}
	return a, cmd
}

func (a App) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := a.board.Update(msg)
	if board, ok := next.(ScoreboardModel); ok {
		a.board = board
	}

	if a.board.IsQuitting() {
		a.quitting = true
		return a, tea.Quit
	}
	if a.board.IsGoingBack() {
		a.screen = screenMenu
		a.menu = NewMenuModel(a.opts.Store, a.width, a.height)
		return a, a.menu.Init()
	}
	return a, cmd
}

// View renders the active screen.
func (a App) View() string {
	if a.quitting {
		return ""
	}
	switch a.screen {
	case screenGame:
		return a.game.View()
	case screenScores:
		return a.board.View()
	}
	return a.menu.View()
}

// Close tears down a game left running when the program ends.
func (a App) Close() {
	if a.game != nil {
		a.game.teardown()
	}
}

// RunApp runs the menu-driven app until the user quits.
func RunApp(opts Options, width, height int) error {
	p := tea.NewProgram(
		NewApp(opts, width, height),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(opts.context()),
	)

	final, err := p.Run()
	if app, ok := final.(App); ok {
		app.Close()
	}
	return err
}
