package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gameroom/internal/platform/tui"
	"github.com/vovakirdan/gameroom/internal/registry"
	"github.com/vovakirdan/gameroom/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Enter/Space/click  - Start, and restart after game over
  Arrows/WASD        - Move
  Space              - Fire/flap
  R                  - Restart (after game over)
  Esc/Q/Ctrl+C       - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  gameroom play flappy
  gameroom play snake --difficulty easy
  gameroom play invaders --difficulty fixed
  gameroom play flappy --config ./my-flappy.yaml
  gameroom play racing --config ./racing.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runPlay(cmd *cobra.Command, args []string) error {
	game, err := registry.Create(args[0])
	if errors.Is(err, registry.ErrUnknownGame) {
		return fmt.Errorf("%w\nRun 'gameroom list' to see available games", err)
	}
	if err != nil {
		return err
	}
	if err := registry.Configure(game, flagConfig, flagDifficulty); err != nil {
		return err
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(settings, true)
	if err != nil {
		return err
	}
	defer closer.Close()

	store := storage.OpenFallback(settings.Storage.DB, logger)
	defer store.Close()

	opts, err := hostOptions(settings, store, logger)
	if err != nil {
		return err
	}
	opts.Context = cmd.Context()

	width, height := terminalSize()
	logger.Info("play", "game", game.ID(), "difficulty", flagDifficulty, "fps", opts.TickRate)
	if err := tui.Run(game, opts, width, height); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
