package core

import "time"

// NominalTickRate is the display refresh rate the game constants are tuned for.
const NominalTickRate = 60

// FrameMillis is the duration of one nominal frame in milliseconds.
// Step receives dt in nominal frames; games convert timers with this.
const FrameMillis = 1000.0 / NominalTickRate

// FrameDuration is FrameMillis as a time.Duration.
const FrameDuration = time.Second / NominalTickRate

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Scheduler frames per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: NominalTickRate,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// Status is the run state of a game session.
type Status int

const (
	StatusIdle     Status = iota // No run yet, start prompt shown
	StatusPlaying                // Scheduler active
	StatusGameOver               // Run ended, waiting for restart
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPlaying:
		return "playing"
	case StatusGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// GameState is the low-frequency summary a game reports after each step.
type GameState struct {
	Score    int  // Current score
	GameOver bool // A terminal condition was reached
	Won      bool // The run ended on a win condition
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
