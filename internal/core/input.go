package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionFire           // Space - fire, flap, select
	ActionConfirm        // Enter - confirm selection
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - start or restart a run
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionFire:
		return "Fire"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// SwipeDir is the classified direction of a swipe or drag gesture.
type SwipeDir int

const (
	SwipeNone SwipeDir = iota
	SwipeUp
	SwipeDown
	SwipeLeft
	SwipeRight
)

// Pointer is the pointer state in the game's logical coordinates.
type Pointer struct {
	X, Y    float64
	Valid   bool // Pointer has been seen inside the drawing surface
	Down    bool // Button or touch held
	Clicked bool // Pressed since the previous frame
}

// InputFrame represents the intents gathered for one simulation tick.
type InputFrame struct {
	// Actions holds edge-triggered actions: pressed since the previous frame.
	Actions map[Action]bool
	// Held holds continuous actions sampled at the start of the frame.
	Held map[Action]bool
	// Pointer is the latest pointer state.
	Pointer Pointer
	// Swipe is a gesture completed since the previous frame.
	Swipe SwipeDir
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Held:    make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// SetHeld marks an action as continuously held for this frame.
func (f *InputFrame) SetHeld(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// IsHeld returns true if the action is held or was triggered this frame.
func (f InputFrame) IsHeld(a Action) bool {
	return f.Held[a] || f.Actions[a]
}

// Axis returns -1, 0 or +1 from two opposing held actions.
// Both held cancel out.
func (f InputFrame) Axis(neg, pos Action) float64 {
	v := 0.0
	if f.IsHeld(neg) {
		v--
	}
	if f.IsHeld(pos) {
		v++
	}
	return v
}

// Clear resets all intents for the next frame.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	clear(f.Held)
	f.Pointer.Clicked = false
	f.Swipe = SwipeNone
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	clone.Pointer = f.Pointer
	clone.Swipe = f.Swipe
	return clone
}

// Continuous returns a copy with edge-triggered intents removed. Used for
// the extra steps of a frame that catches up several simulation ticks, so
// a single press is applied once.
func (f InputFrame) Continuous() InputFrame {
	out := NewInputFrame()
	for k, v := range f.Held {
		out.Held[k] = v
	}
	out.Pointer = f.Pointer
	out.Pointer.Clicked = false
	return out
}

// HasEdges reports whether the frame carries any edge-triggered intent.
func (f InputFrame) HasEdges() bool {
	return len(f.Actions) > 0 || f.Pointer.Clicked || f.Swipe != SwipeNone
}

// MergeEdges returns a copy of f that also carries the edge intents of an
// earlier frame that never reached a step. Held state and the pointer
// position come from f; an earlier click keeps its own position.
func (f InputFrame) MergeEdges(earlier InputFrame) InputFrame {
	out := f.Clone()
	for k, v := range earlier.Actions {
		if v {
			out.Actions[k] = true
		}
	}
	if earlier.Pointer.Clicked && !f.Pointer.Clicked {
		out.Pointer.X, out.Pointer.Y = earlier.Pointer.X, earlier.Pointer.Y
		out.Pointer.Valid = true
		out.Pointer.Clicked = true
	}
	if out.Swipe == SwipeNone {
		out.Swipe = earlier.Swipe
	}
	return out
}
