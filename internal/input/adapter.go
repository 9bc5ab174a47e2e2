// Package input turns raw terminal events into per-frame gameplay intents.
// It knows nothing about game rules: it only scales pointer coordinates,
// tracks key and button state, classifies gestures and gates input on the
// session status.
package input

import (
	"time"

	"github.com/vovakirdan/gameroom/internal/core"
)

// EventKind identifies a raw device event.
type EventKind int

const (
	KeyPress EventKind = iota
	KeyRelease
	PointerMove
	PointerPress
	PointerRelease
)

// Event is a raw device event. Pointer coordinates are in screen cells.
type Event struct {
	Kind   EventKind
	Action core.Action // Key events
	CellX  int         // Pointer events
	CellY  int
	At     time.Time
}

// Intent is what the adapter made of an event.
type Intent int

const (
	IntentNone     Intent = iota // Event produced nothing
	IntentStart                  // Start or restart requested
	IntentGameplay               // Event recorded for the next frame
)

// Options configures an Adapter.
type Options struct {
	HoldWindow     time.Duration
	SwipeThreshold float64
}

// Adapter collects events between frames and hands them to the simulation
// as one core.InputFrame.
type Adapter struct {
	vp      core.Viewport
	keys    *KeyState
	swipe   SwipeTracker
	edges   map[core.Action]bool
	pointer core.Pointer
	gesture core.SwipeDir
	closed  bool
}

// NewAdapter creates an adapter for a drawing surface.
func NewAdapter(vp core.Viewport, opts Options) *Adapter {
	return &Adapter{
		vp:    vp,
		keys:  NewKeyState(opts.HoldWindow),
		swipe: SwipeTracker{Threshold: opts.SwipeThreshold},
		edges: make(map[core.Action]bool),
	}
}

// SetViewport updates the display mapping after a resize.
func (a *Adapter) SetViewport(vp core.Viewport) {
	a.vp = vp
}

// Handle processes one event. The session status is checked first: outside
// of play a start gesture becomes IntentStart and is not recorded as
// gameplay input.
func (a *Adapter) Handle(ev Event, status core.Status) Intent {
	if a.closed {
		return IntentNone
	}

	if status != core.StatusPlaying {
		return a.handleIdle(ev)
	}

	switch ev.Kind {
	case KeyPress:
		if ev.Action == core.ActionNone {
			return IntentNone
		}
		a.keys.Press(ev.Action, ev.At)
		a.edges[ev.Action] = true
		return IntentGameplay

	case KeyRelease:
		a.keys.Release(ev.Action)
		return IntentGameplay

	case PointerMove:
		a.movePointer(ev)
		return IntentGameplay

	case PointerPress:
		p := a.movePointer(ev)
		a.pointer.Down = true
		a.pointer.Clicked = true
		a.swipe.Begin(p)
		return IntentGameplay

	case PointerRelease:
		p := a.movePointer(ev)
		a.pointer.Down = false
		if dir := a.swipe.End(p); dir != core.SwipeNone {
			a.gesture = dir
		}
		return IntentGameplay
	}

	return IntentNone
}

func (a *Adapter) handleIdle(ev Event) Intent {
	switch ev.Kind {
	case KeyPress:
		switch ev.Action {
		case core.ActionRestart, core.ActionFire, core.ActionConfirm:
			return IntentStart
		}
	case PointerPress:
		a.movePointer(ev)
		return IntentStart
	case PointerMove:
		a.movePointer(ev)
	case KeyRelease:
		a.keys.Release(ev.Action)
	}
	return IntentNone
}

// movePointer rescales a cell position into logical coordinates.
func (a *Adapter) movePointer(ev Event) core.Vec {
	p, inside := a.vp.ToLogical(ev.CellX, ev.CellY)
	p.X = core.ClampF(p.X, 0, a.vp.LogicalW)
	p.Y = core.ClampF(p.Y, 0, a.vp.LogicalH)
	a.pointer.X = p.X
	a.pointer.Y = p.Y
	if inside {
		a.pointer.Valid = true
	}
	return p
}

// Frame snapshots the intents gathered since the previous frame and clears
// the edge-triggered ones.
func (a *Adapter) Frame(now time.Time) core.InputFrame {
	f := core.NewInputFrame()
	if a.closed {
		return f
	}

	for act := range a.edges {
		f.Set(act)
	}
	for _, act := range a.keys.Snapshot(now) {
		f.SetHeld(act)
	}
	f.Pointer = a.pointer
	f.Swipe = a.gesture

	clear(a.edges)
	a.pointer.Clicked = false
	a.gesture = core.SwipeNone
	return f
}

// Reset drops all gathered state, used when a run restarts.
func (a *Adapter) Reset() {
	clear(a.edges)
	a.keys.Reset()
	a.swipe.Cancel()
	a.pointer.Down = false
	a.pointer.Clicked = false
	a.gesture = core.SwipeNone
}

// Close detaches the adapter. Later events are ignored.
func (a *Adapter) Close() {
	a.Reset()
	a.closed = true
}

// Closed reports whether Close was called.
func (a *Adapter) Closed() bool {
	return a.closed
}
