// gameroom is a terminal game room: small real-time games played locally
// or over SSH.
//
// Usage:
//
//	gameroom list                 - List available games
//	gameroom play <game>          - Play a game
//	gameroom menu                 - Pick games interactively
//	gameroom scores [game]        - Show run history and high scores
//	gameroom serve                - Start SSH server for remote play
//	gameroom simulate <game>      - Run a game headless with random input
//
// Global flags:
//
//	--fps <rate>        - Scheduler frame rate (default from settings: 60)
//	--seed <value>      - RNG seed for reproducible runs
//	--db <path>         - Scores database (default: ~/.gameroom/scores.db)
//	--settings <path>   - Settings file (default: ./gameroom.toml, ~/.gameroom/gameroom.toml)
//	--timestep <mode>   - fixed or variable
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gameroom/internal/config"
	"github.com/vovakirdan/gameroom/internal/input"
	"github.com/vovakirdan/gameroom/internal/loop"
	"github.com/vovakirdan/gameroom/internal/platform/tui"
	"github.com/vovakirdan/gameroom/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/gameroom/internal/games/bubble"
	_ "github.com/vovakirdan/gameroom/internal/games/defender"
	_ "github.com/vovakirdan/gameroom/internal/games/flappy"
	_ "github.com/vovakirdan/gameroom/internal/games/invaders"
	_ "github.com/vovakirdan/gameroom/internal/games/memory"
	_ "github.com/vovakirdan/gameroom/internal/games/pong"
	_ "github.com/vovakirdan/gameroom/internal/games/racing"
	_ "github.com/vovakirdan/gameroom/internal/games/snake"
	_ "github.com/vovakirdan/gameroom/internal/games/tictactoe"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagSettings string
	flagTimestep string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gameroom",
	Short: "gameroom - small real-time games in your terminal",
	Long: `gameroom is a collection of small real-time games that run in the
terminal, locally or over SSH.

Available commands:
  list      - Show all available games
  play      - Play a specific game directly
  menu      - Interactive game picker
  scores    - View run history and high scores
  serve     - Start SSH server for remote play
  simulate  - Run a game headless with random input

Examples:
  gameroom list
  gameroom play flappy
  gameroom play defender --difficulty hard
  gameroom menu
  gameroom serve --ssh :2222
  gameroom simulate snake --duration 10s`,
	SilenceUsage: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&flagFPS, "fps", 0, "Scheduler frames per second (0 = settings)")
	pf.Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = settings, then time based)")
	pf.StringVar(&flagDBPath, "db", "", "Path to scores database (empty = settings)")
	pf.StringVar(&flagSettings, "settings", "", "Path to gameroom.toml")
	pf.StringVar(&flagTimestep, "timestep", "", "Timestep policy: fixed or variable (empty = settings)")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error (empty = settings)")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(simulateCmd)
}

// loadSettings reads .env, the settings file and the global flags, in
// increasing order of precedence.
func loadSettings() (config.Settings, error) {
	if err := config.LoadEnv(); err != nil {
		return config.Settings{}, err
	}
	s, err := config.LoadSettings(flagSettings)
	if err != nil {
		return s, err
	}

	if flagFPS > 0 {
		s.Display.FPS = flagFPS
	}
	if flagSeed != 0 {
		s.Display.Seed = flagSeed
	}
	if flagDBPath != "" {
		s.Storage.DB = flagDBPath
	}
	if flagTimestep != "" {
		s.Display.Timestep = flagTimestep
	}
	if flagLogLevel != "" {
		s.Log.Level = flagLogLevel
	}
	return s, nil
}

// newLogger builds the process logger. Interactive commands log to a file
// so the alternate screen stays clean; the returned closer closes it.
func newLogger(s config.Settings, interactive bool) (*log.Logger, io.Closer, error) {
	level, err := log.ParseLevel(s.Log.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", s.Log.Level, err)
	}

	var w io.Writer = os.Stderr
	var closer io.Closer = io.NopCloser(nil)
	if interactive {
		path := s.Log.File
		if path == "" {
			path = filepath.Join("~", config.HomeDir, "gameroom.log")
		}
		if path, err = storage.ExpandHome(path); err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closer = f, f
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "gameroom",
		Level:           level,
	})
	return logger, closer, nil
}

// hostOptions turns settings into host options around an open store.
func hostOptions(s config.Settings, store storage.Backend, logger *log.Logger) (tui.Options, error) {
	mode, err := loop.ParseTimestepMode(s.Display.Timestep)
	if err != nil {
		return tui.Options{}, err
	}
	return tui.Options{
		Store:    store,
		TickRate: s.Display.FPS,
		Timestep: mode,
		Seed:     s.Display.Seed,
		Input: input.Options{
			HoldWindow:     s.Input.HoldWindow(),
			SwipeThreshold: s.Input.SwipeThreshold,
		},
		Logger: logger,
	}, nil
}

// terminalSize returns the size of stdout, 80x24 when it is not a terminal.
func terminalSize() (int, int) {
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		return w, h
	}
	return 80, 24
}
