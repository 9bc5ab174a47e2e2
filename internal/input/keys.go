package input

import (
	"time"

	"github.com/vovakirdan/gameroom/internal/core"
)

// DefaultHoldWindow is how long a key counts as held after its last press
// when the terminal does not report releases. It covers the delay before
// the terminal's key repeat starts.
const DefaultHoldWindow = 250 * time.Millisecond

// KeyState tracks each action's down/up state independently, so two
// opposite keys held together cancel instead of alternating.
type KeyState struct {
	holdWindow time.Duration
	lastPress  map[core.Action]time.Time
}

// NewKeyState creates a key state with the given hold window.
func NewKeyState(holdWindow time.Duration) *KeyState {
	if holdWindow <= 0 {
		holdWindow = DefaultHoldWindow
	}
	return &KeyState{
		holdWindow: holdWindow,
		lastPress:  make(map[core.Action]time.Time),
	}
}

// Press records a key-down (or a terminal key repeat) for an action.
func (k *KeyState) Press(a core.Action, at time.Time) {
	k.lastPress[a] = at
}

// Release records an explicit key-up.
func (k *KeyState) Release(a core.Action) {
	delete(k.lastPress, a)
}

// Held reports whether the action is down at the given instant.
func (k *KeyState) Held(a core.Action, now time.Time) bool {
	at, ok := k.lastPress[a]
	if !ok {
		return false
	}
	if now.Sub(at) > k.holdWindow {
		delete(k.lastPress, a)
		return false
	}
	return true
}

// Axis returns -1, 0 or +1 for two opposing actions.
func (k *KeyState) Axis(neg, pos core.Action, now time.Time) float64 {
	v := 0.0
	if k.Held(neg, now) {
		v--
	}
	if k.Held(pos, now) {
		v++
	}
	return v
}

// Snapshot returns every action held at the given instant.
func (k *KeyState) Snapshot(now time.Time) []core.Action {
	var held []core.Action
	for a := range k.lastPress {
		if k.Held(a, now) {
			held = append(held, a)
		}
	}
	return held
}

// Reset releases every key.
func (k *KeyState) Reset() {
	clear(k.lastPress)
}
