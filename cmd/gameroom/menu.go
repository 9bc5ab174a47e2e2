package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gameroom/internal/platform/tui"
	"github.com/vovakirdan/gameroom/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start gameroom with a game picker menu",
	Long: `Start gameroom in interactive menu mode.

Use arrow keys or j/k to navigate, left/right to pick a difficulty and
Enter to play. Esc in a game returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Left/Right   - Difficulty preset
  Enter/Space  - Play
  Tab          - Scoreboard
  Q            - Quit

Examples:
  gameroom menu
  gameroom menu --fps 30
  gameroom menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
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
	if err := tui.RunApp(opts, width, height); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}
	return nil
}
