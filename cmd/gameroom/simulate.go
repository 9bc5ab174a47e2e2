package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/loop"
	"github.com/vovakirdan/gameroom/internal/registry"
	"github.com/vovakirdan/gameroom/internal/storage"
)

var (
	flagSimDuration time.Duration
	flagSimRecord   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <game>",
	Short: "Run a game headless with random input",
	Long: `Run one game without a terminal UI. A scheduler drives the session at
the configured frame rate and random key presses stand in for a player.
The run ends at game over or when the duration elapses.

Scores are kept in memory unless --record is given.

Examples:
  gameroom simulate snake
  gameroom simulate invaders --duration 1m --seed 42
  gameroom simulate flappy --fps 120 --timestep variable --record`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().DurationVar(&flagSimDuration, "duration", 30*time.Second, "Maximum wall-clock time")
	simulateCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save the run to the scores database")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

// randomInput presses a random action now and then and holds it for a
// few frames.
type randomInput struct {
	rng  *rand.Rand
	held core.Action
	left int
}

var simActions = []core.Action{
	core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight,
	core.ActionFire, core.ActionConfirm,
}

func (r *randomInput) Frame(time.Time) core.InputFrame {
	in := core.NewInputFrame()
	if r.left <= 0 {
		r.held = simActions[r.rng.Intn(len(simActions))]
		r.left = 5 + r.rng.Intn(20)
		in.Set(r.held)
	}
	r.left--
	in.SetHeld(r.held)
	return in
}

func runSimulate(cmd *cobra.Command, args []string) error {
	game, err := registry.Create(args[0])
	if err != nil {
		return err
	}
	if err := registry.Configure(game, "", flagDifficulty); err != nil {
		return err
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

	var store storage.Backend = storage.NewMemoryStore()
	if flagSimRecord {
		store = storage.OpenFallback(settings.Storage.DB, logger)
	}
	defer store.Close()

	mode, err := loop.ParseTimestepMode(settings.Display.Timestep)
	if err != nil {
		return err
	}

	seed := settings.Display.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	session := loop.NewSession(game, loop.Options{
		Config:   core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: settings.Display.FPS, Seed: seed},
		Timestep: mode,
		Scores:   store,
		Runs:     store,
		Logger:   logger,
	})
	defer session.Close()

	w, h := game.Size()
	runner := loop.Runner{
		Session:   session,
		Scheduler: loop.NewScheduler(settings.Display.FPS),
		Input:     &randomInput{rng: rand.New(rand.NewSource(seed))},
		Canvas:    core.NewCanvas(core.NewScreen(80, 24), w, h, 1),
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), flagSimDuration)
	defer cancel()

	start := time.Now()
	sum, err := runner.Run(ctx)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Game:     %s\n", sum.Title)
	fmt.Fprintf(out, "Status:   %s\n", sum.Status)
	fmt.Fprintf(out, "Score:    %d\n", sum.Score)
	if sum.Scored {
		fmt.Fprintf(out, "Best:     %d\n", sum.HighScore)
	}
	fmt.Fprintf(out, "Won:      %v\n", sum.Won)
	fmt.Fprintf(out, "Steps:    %d\n", session.Steps())
	fmt.Fprintf(out, "Renders:  %d\n", session.Renders())
	fmt.Fprintf(out, "Elapsed:  %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Fprintf(out, "Seed:     %d\n", seed)
	fmt.Fprintf(out, "Run:      %s\n", sum.RunID)
	return nil
}
