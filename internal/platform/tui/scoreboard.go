package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gameroom/internal/registry"
	"github.com/vovakirdan/gameroom/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show game list sidebar
	sidebarWidth       = 20  // Width of game list sidebar
	maxRuns            = 100 // Max runs to load
)

// ScoreboardKeyMap holds the scoreboard bindings. Prev and Next switch
// the game whose runs are listed.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Prev key.Binding
	Next key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Up, k.Down, k.Back}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Quit}}
}

// DefaultScoreboardKeyMap returns the scoreboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	bind := func(help, desc string, keys ...string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(help, desc))
	}
	return ScoreboardKeyMap{
		Up:   bind("↑/k", "older", "up", "k"),
		Down: bind("↓/j", "newer", "down", "j"),
		Prev: bind("←/S-tab", "prev game", "left", "h", "shift+tab"),
		Next: bind("→/tab", "next game", "right", "l", "tab"),
		Back: bind("esc", "back", "esc", "b"),
		Quit: bind("q", "quit", "q", "ctrl+c"),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	games       []registry.GameInfo // List of available games
	gameCursor  int                 // Currently selected game index
	store       storage.Backend
	runs        []storage.RunRecord
	stats       *storage.GameStats
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	goingBack   bool // True if user pressed back (not quit)
	showSidebar bool // Whether to show game list sidebar
}

// NewScoreboardModel creates a scoreboard opened on gameID, or on the
// first game when gameID is empty or unknown.
func NewScoreboardModel(store storage.Backend, gameID string, width, height int) ScoreboardModel {
	games := registry.List()

	m := ScoreboardModel{
		games:       games,
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        help.New(),
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.table = m.createTable()

	for i, g := range m.games {
		if g.ID == gameID {
			m.gameCursor = i
		}
	}
	if len(m.games) > 0 {
		m.loadRuns(m.games[m.gameCursor].ID)
	}

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 8},
		{Title: "Result", Width: 6},
		{Title: "Time", Width: 8},
		{Title: "Date", Width: 14},
	}

	// Calculate available width for table
	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	// Adjust column widths if we have more space
	if tableWidth > 56 {
		columns[1].Width = 10
		columns[4].Width = min(tableWidth-42, 20)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)), // Leave room for header, stats, help and margins
	)

	// Table styles
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadRuns loads the best runs and the aggregate stats of a game.
func (m *ScoreboardModel) loadRuns(gameID string) {
	m.runs, m.stats = nil, nil
	if m.store != nil {
		if runs, err := m.store.TopRuns(gameID, maxRuns); err == nil {
			m.runs = runs
		}
		if stats, err := m.store.GameStats(gameID); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current runs.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		result := "-"
		if r.Won {
			result = "won"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			result,
			r.Duration.Round(time.Second).String(),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.cycle(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.cycle(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// cycle moves the game cursor by step, wrapping at both ends.
func (m *ScoreboardModel) cycle(step int) {
	n := len(m.games)
	if n == 0 {
		return
	}
	m.gameCursor = ((m.gameCursor+step)%n + n) % n
	m.loadRuns(m.games[m.gameCursor].ID)
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "HIGH SCORES"
	if len(m.games) > 0 {
		title = fmt.Sprintf("HIGH SCORES - %s", m.games[m.gameCursor].Title)
	}

	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.statsLine()), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		// Wide layout: sidebar + table
		b.WriteString(m.renderWideLayout())
	} else {
		// Narrow layout: game tabs + table
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))

	return b.String()
}

var panelStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("240")).
	Padding(0, 1)

// renderWideLayout puts the game list next to the table.
func (m ScoreboardModel) renderWideLayout() string {
	var list strings.Builder
	list.WriteString("Games\n")
	list.WriteString(strings.Repeat("-", sidebarWidth-4))
	for i, g := range m.games {
		name := g.Title
		if !g.Scored {
			name += " *"
		}
		if len(name) > sidebarWidth-6 {
			name = name[:sidebarWidth-7] + "."
		}
		list.WriteString("\n")
		if i == m.gameCursor {
			list.WriteString(titleStyle.Render("> " + name))
		} else {
			list.WriteString("  " + name)
		}
	}
	list.WriteString("\n\n" + dimStyle.Render("* no high score"))

	sidebar := panelStyle.Width(sidebarWidth).Render(list.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, sidebar, "  ", panelStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout shows only the selected game above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	if len(m.games) == 0 {
		return panelStyle.Render(m.renderTableContent())
	}
	tab := accentStyle.Render(fmt.Sprintf("< %s >", m.games[m.gameCursor].Title))
	return centerText(tab, m.width) + "\n\n" + centerText(panelStyle.Render(m.renderTableContent()), m.width)
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.runs) == 0 {
		emptyStyle := dimStyle.Italic(true).Padding(2, 4)
		return emptyStyle.Render("No runs recorded yet.\nPlay a game to set a high score!")
	}

	return m.table.View()
}

// statsLine summarizes the selected game's history.
func (m ScoreboardModel) statsLine() string {
	st := m.stats
	if st == nil || st.RunsCount == 0 {
		return "no runs yet"
	}
	line := fmt.Sprintf("runs %d   wins %d   best %d   avg %.1f", st.RunsCount, st.Wins, st.HighScore, st.AvgScore)
	if !st.LastPlayed.IsZero() {
		line += "   last " + st.LastPlayed.Format("Jan 02 15:04")
	}
	return line
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen on its own.
func RunScoreboard(store storage.Backend, gameID string, width, height int) error {
	p := tea.NewProgram(
		NewScoreboardModel(store, gameID, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
