package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gameroom/internal/platform/tui"
	"github.com/vovakirdan/gameroom/internal/registry"
	"github.com/vovakirdan/gameroom/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show run history and high scores",
	Long: `Display the best runs of a game. Without a game, opens the interactive
scoreboard.

Examples:
  gameroom scores
  gameroom scores flappy
  gameroom scores snake --limit 25`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(settings, len(args) == 0)
	if err != nil {
		return err
	}
	defer closer.Close()

	store, err := storage.Open(settings.Storage.DB)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		logger.Debug("scoreboard opened")
		width, height := terminalSize()
		return tui.RunScoreboard(store, "", width, height)
	}

	game, err := registry.Create(args[0])
	if err != nil {
		return err
	}
	return printScores(cmd.OutOrStdout(), store, game.ID(), game.Title(), registry.IsScored(game))
}

func printScores(w io.Writer, store storage.Backend, gameID, title string, scored bool) error {
	runs, err := store.TopRuns(gameID, flagScoresLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Fprintf(w, "Runs - %s\n\n", title)

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded yet.")
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Play 'gameroom play %s' to set the first score!\n", gameID)
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-8s  %-6s  %-8s  %s\n", "Rank", "Score", "Result", "Time", "Date")
	fmt.Fprintf(w, "  %-4s  %-8s  %-6s  %-8s  %s\n", "----", "-----", "------", "----", "----")
	for i, r := range runs {
		result := "-"
		if r.Won {
			result = "won"
		}
		fmt.Fprintf(w, "  %-4d  %-8d  %-6s  %-8s  %s\n",
			i+1, r.Score, result, r.Duration.Round(time.Second), r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GameStats(gameID)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning:", err)
		return nil
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Runs: %d  Wins: %d  Average: %.1f\n", stats.RunsCount, stats.Wins, stats.AvgScore)
	if scored {
		fmt.Fprintf(w, "Best: %d\n", stats.HighScore)
	}
	return nil
}
