package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gameroom/internal/config"
	"github.com/vovakirdan/gameroom/internal/registry"
	"github.com/vovakirdan/gameroom/internal/storage"
)

// difficulties cycles in the menu. The empty preset keeps each config
// file's own settings.
var difficulties = []config.DifficultyPreset{
	"",
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

func difficultyLabel(p config.DifficultyPreset) string {
	if p == "" {
		return "default"
	}
	return string(p)
}

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID       string
	Title        string
	Controls     string
	Scored       bool
	Configurable bool
	Best         int
}

// MenuModel is the Bubble Tea model for the game picker menu.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	difficulty     int
	width          int
	height         int
	keys           MenuKeyMap
	help           help.Model
	quitting       bool
	selected       *MenuItem
	openScoreboard bool
}

// NewMenuModel lists the registered games with their stored best scores.
func NewMenuModel(scores storage.HighScores, width, height int) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))

	for _, info := range games {
		item := MenuItem{GameID: info.ID, Title: info.Title, Scored: info.Scored}
		if g, err := registry.Create(info.ID); err == nil {
			if d, ok := g.(registry.Describer); ok {
				item.Controls = d.Controls()
			}
			_, item.Configurable = g.(registry.Configurable)
		}
		if info.Scored && scores != nil {
			if best, err := scores.HighScore(info.ID); err == nil {
				item.Best = best
			}
		}
		items = append(items, item)
	}

	h := help.New()
	h.Width = width
	return MenuModel{
		items:  items,
		width:  width,
		height: height,
		keys:   DefaultMenuKeyMap(),
		help:   h,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Difficulty):
		step := 1
		if s := msg.String(); s == "left" || s == "h" {
			step = len(difficulties) - 1
		}
		m.difficulty = (m.difficulty + step) % len(difficulties)

	case key.Matches(msg, m.keys.Select):
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case key.Matches(msg, m.keys.Scores):
		m.openScoreboard = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("G A M E R O O M"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(dimStyle.Render("Select a game"), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		best := "      "
		if item.Scored {
			best = fmt.Sprintf("%6d", item.Best)
		}
		line := fmt.Sprintf("%s%-14s %s", cursor, item.Title, best)
		if i == m.cursor {
			line = accentStyle.Render(line)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		item := m.items[m.cursor]
		b.WriteString("\n")
		if item.Controls != "" {
			b.WriteString(centerText(dimStyle.Render(item.Controls), m.width))
			b.WriteString("\n")
		}
		if item.Configurable {
			label := "Difficulty: < " + difficultyLabel(difficulties[m.difficulty]) + " >"
			b.WriteString(centerText(label, m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Difficulty returns the preset chosen in the menu.
func (m MenuModel) Difficulty() config.DifficultyPreset {
	return difficulties[m.difficulty]
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}
