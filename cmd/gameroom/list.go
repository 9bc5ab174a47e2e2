package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gameroom/internal/registry"
	"github.com/vovakirdan/gameroom/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the games in the room",
	Long: `Print every registered game with its best recorded score. Games that
do not keep a score, such as tic-tac-toe, show a dash.`,
	RunE: runList,
}

func runList(cmd *cobra.Command, _ []string) error {
	games := registry.List()
	out := cmd.OutOrStdout()
	if len(games) == 0 {
		fmt.Fprintln(out, "No games registered.")
		return nil
	}

	settings, err := loadSettings()
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(settings, false)
	if err != nil {
		return err
	}
	defer closer.Close()

	store := storage.OpenFallback(settings.Storage.DB, logger)
	defer store.Close()

	idWidth := len("ID")
	for _, g := range games {
		idWidth = max(idWidth, len(g.ID))
	}
	row := func(id, title, best string) {
		fmt.Fprintf(out, "  %-*s  %-14s  %s\n", idWidth, id, title, best)
	}

	row("ID", "Title", "Best")
	for _, g := range games {
		best := "-"
		if g.Scored {
			n, err := store.HighScore(g.ID)
			if err != nil {
				logger.Warn("reading high score", "game", g.ID, "err", err)
			}
			best = strconv.Itoa(n)
		}
		row(g.ID, g.Title, best)
	}
	fmt.Fprintf(out, "\n%d games. Start one with 'gameroom play <id>'.\n", len(games))
	return nil
}
