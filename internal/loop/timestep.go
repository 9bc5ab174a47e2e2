package loop

import (
	"fmt"
	"time"

	"github.com/vovakirdan/gameroom/internal/core"
)

// TimestepMode selects how wall-clock time becomes simulation steps.
// All games use the same policy.
type TimestepMode string

const (
	// TimestepFixed runs whole nominal-frame steps (dt = 1) from an accumulator.
	TimestepFixed TimestepMode = "fixed"
	// TimestepVariable runs one step per frame with dt = elapsed / nominal.
	TimestepVariable TimestepMode = "variable"
)

// ParseTimestepMode validates a mode name. Empty selects fixed.
func ParseTimestepMode(s string) (TimestepMode, error) {
	switch TimestepMode(s) {
	case "", TimestepFixed:
		return TimestepFixed, nil
	case TimestepVariable:
		return TimestepVariable, nil
	}
	return "", fmt.Errorf("loop: unknown timestep mode %q", s)
}

const (
	// MaxFrameTime caps the elapsed time taken from one frame, so a stall
	// (suspended terminal, slow SSH link) does not fast-forward the game.
	MaxFrameTime = 250 * time.Millisecond

	// maxVariableDT bounds a single variable step, in nominal frames.
	maxVariableDT = 4.0
)

// Timestep converts frame timestamps into (steps, dt) pairs.
type Timestep struct {
	Mode TimestepMode

	acc     time.Duration
	last    time.Time
	started bool
}

// NewTimestep creates a timestep with the given mode.
func NewTimestep(mode TimestepMode) *Timestep {
	if mode == "" {
		mode = TimestepFixed
	}
	return &Timestep{Mode: mode}
}

// Reset forgets the previous frame time.
func (t *Timestep) Reset() {
	t.acc = 0
	t.started = false
}

// Advance consumes the time since the previous call and returns how many
// steps to run and the dt of each. The first call after Reset counts as
// one nominal frame.
func (t *Timestep) Advance(now time.Time) (int, float64) {
	elapsed := core.FrameDuration
	if t.started {
		elapsed = max(now.Sub(t.last), 0)
	}
	t.started = true
	t.last = now
	elapsed = min(elapsed, MaxFrameTime)

	if t.Mode == TimestepVariable {
		if elapsed == 0 {
			return 0, 0
		}
		dt := float64(elapsed) / float64(core.FrameDuration)
		return 1, core.ClampF(dt, 0, maxVariableDT)
	}

	t.acc += elapsed
	steps := int(t.acc / core.FrameDuration)
	t.acc -= time.Duration(steps) * core.FrameDuration
	return steps, 1
}
