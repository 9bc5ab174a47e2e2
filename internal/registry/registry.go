// Package registry maps game ids to factories. Each game package registers
// itself from init, so hosts only need a blank import to offer a game.
package registry

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/gameroom/internal/core"
)

// ErrUnknownGame is returned by Create for an unregistered id.
var ErrUnknownGame = errors.New("registry: unknown game")

// Game is a self-contained simulation driven by a loop.Session. It never
// reads the clock or the terminal: input arrives as an InputFrame and
// output goes to a Canvas.
type Game interface {
	// ID is the stable key used on the command line and in the score store.
	ID() string

	Title() string

	// Size returns the fixed logical resolution the game simulates in.
	Size() (w, h float64)

	// Reset rebuilds the simulation state from scratch.
	// Called before every run; nothing from a previous run survives it.
	Reset(cfg core.RuntimeConfig)

	// Step advances the simulation by dt nominal frames.
	Step(in core.InputFrame, dt float64) core.StepResult

	// Render draws the current state. It must not mutate simulation state.
	Render(dst *core.Canvas)

	State() core.GameState
}

// Unscored is implemented by games without a persisted high score.
type Unscored interface {
	Unscored()
}

// Describer is implemented by games that show a control hint.
type Describer interface {
	Controls() string
}

// Configurable is implemented by games that load a config file. path may be
// empty to use the default search order; difficulty is a preset name or
// empty for the file's own settings. The config applies from the next Reset.
type Configurable interface {
	Configure(path, difficulty string) error
}

// Configure applies a config to g when g supports one.
func Configure(g Game, path, difficulty string) error {
	c, ok := g.(Configurable)
	if !ok {
		return nil
	}
	if err := c.Configure(path, difficulty); err != nil {
		return fmt.Errorf("registry: configure %s: %w", g.ID(), err)
	}
	return nil
}

// IsScored reports whether a game's runs update the high score table.
func IsScored(g Game) bool {
	_, unscored := g.(Unscored)
	return !unscored
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID     string
	Title  string
	Scored bool
}

// Factory builds a fresh game instance.
type Factory func() Game

type entry struct {
	factory Factory
	info    GameInfo
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register makes a game available under id. Games call it from init.
// Registering the same id twice panics.
func Register(id string, f Factory) {
	sample := f()
	info := GameInfo{ID: id, Title: sample.Title(), Scored: IsScored(sample)}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, info: info}
}

// List returns every registered game ordered by id.
func List() []GameInfo {
	mu.RLock()
	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	mu.RUnlock()

	slices.SortFunc(out, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Create returns a new, independent instance of the game registered as id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownGame, id)
	}
	return e.factory(), nil
}

func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
