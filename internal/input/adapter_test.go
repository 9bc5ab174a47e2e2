package input

import (
	"testing"
	"time"

	"github.com/vovakirdan/gameroom/internal/core"
)

var t0 = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func testViewport() core.Viewport {
	// 100x50 logical in a 40x20 cell block: 40x10 display area at row 5
	return core.FitViewport(100, 50, 0, 0, 40, 20)
}

func TestClassifySwipe(t *testing.T) {
	tests := []struct {
		name     string
		to       core.Vec
		expected core.SwipeDir
	}{
		{"tap", core.Vec{X: 5, Y: 3}, core.SwipeNone},
		{"at threshold", core.Vec{X: 20, Y: 0}, core.SwipeNone},
		{"right", core.Vec{X: 30, Y: 10}, core.SwipeRight},
		{"left", core.Vec{X: -30, Y: 10}, core.SwipeLeft},
		{"down", core.Vec{X: 10, Y: 40}, core.SwipeDown},
		{"up", core.Vec{X: -10, Y: -40}, core.SwipeUp},
		{"long but short axis below threshold", core.Vec{X: 15, Y: 19}, core.SwipeNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ClassifySwipe(core.Vec{}, tc.to, DefaultSwipeThreshold)
			if got != tc.expected {
				t.Errorf("ClassifySwipe(%+v) = %v, expected %v", tc.to, got, tc.expected)
			}
		})
	}
}

func TestKeyStateOppositeKeysCancel(t *testing.T) {
	k := NewKeyState(100 * time.Millisecond)
	k.Press(core.ActionLeft, t0)
	k.Press(core.ActionRight, t0.Add(10*time.Millisecond))

	if got := k.Axis(core.ActionLeft, core.ActionRight, t0.Add(20*time.Millisecond)); got != 0 {
		t.Errorf("Axis with both held = %v, expected 0", got)
	}

	k.Release(core.ActionLeft)
	if got := k.Axis(core.ActionLeft, core.ActionRight, t0.Add(20*time.Millisecond)); got != 1 {
		t.Errorf("Axis after releasing left = %v, expected 1", got)
	}
}

func TestKeyStateHoldWindowExpires(t *testing.T) {
	k := NewKeyState(100 * time.Millisecond)
	k.Press(core.ActionUp, t0)

	if !k.Held(core.ActionUp, t0.Add(90*time.Millisecond)) {
		t.Error("key should still be held inside the hold window")
	}
	if k.Held(core.ActionUp, t0.Add(150*time.Millisecond)) {
		t.Error("key should be released after the hold window")
	}
}

func TestAdapterScalesPointer(t *testing.T) {
	a := NewAdapter(testViewport(), Options{})
	a.Handle(Event{Kind: PointerMove, CellX: 20, CellY: 10, At: t0}, core.StatusPlaying)

	f := a.Frame(t0)
	// Cell 20 -> (20.5 * 2.5), row 10 -> ((10-5) + 0.5) * 5
	if f.Pointer.X != 51.25 || f.Pointer.Y != 27.5 {
		t.Errorf("pointer = (%v, %v), expected (51.25, 27.5)", f.Pointer.X, f.Pointer.Y)
	}
	if !f.Pointer.Valid {
		t.Error("pointer inside the display area should be valid")
	}
}

func TestAdapterStartShortCircuits(t *testing.T) {
	tests := []struct {
		name   string
		ev     Event
		status core.Status
	}{
		{"click while idle", Event{Kind: PointerPress, CellX: 5, CellY: 8}, core.StatusIdle},
		{"fire while idle", Event{Kind: KeyPress, Action: core.ActionFire}, core.StatusIdle},
		{"restart after game over", Event{Kind: KeyPress, Action: core.ActionRestart}, core.StatusGameOver},
		{"click after game over", Event{Kind: PointerPress, CellX: 5, CellY: 8}, core.StatusGameOver},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := NewAdapter(testViewport(), Options{})
			tc.ev.At = t0
			if got := a.Handle(tc.ev, tc.status); got != IntentStart {
				t.Fatalf("Handle() = %v, expected IntentStart", got)
			}

			f := a.Frame(t0)
			if len(f.Actions) != 0 || len(f.Held) != 0 {
				t.Errorf("start gesture leaked into gameplay actions: %+v", f)
			}
			if f.Pointer.Clicked || f.Pointer.Down {
				t.Errorf("start gesture leaked into pointer state: %+v", f.Pointer)
			}
		})
	}
}

func TestAdapterIgnoresGameplayKeysWhenIdle(t *testing.T) {
	a := NewAdapter(testViewport(), Options{})
	if got := a.Handle(Event{Kind: KeyPress, Action: core.ActionLeft, At: t0}, core.StatusIdle); got != IntentNone {
		t.Errorf("Handle() = %v, expected IntentNone", got)
	}
	if f := a.Frame(t0); f.IsHeld(core.ActionLeft) {
		t.Error("idle key press should not be recorded")
	}
}

func TestAdapterEdgesAreConsumedOnce(t *testing.T) {
	a := NewAdapter(testViewport(), Options{HoldWindow: time.Second})
	a.Handle(Event{Kind: KeyPress, Action: core.ActionFire, At: t0}, core.StatusPlaying)

	f1 := a.Frame(t0)
	if !f1.Has(core.ActionFire) {
		t.Fatal("first frame should carry the press")
	}
	f2 := a.Frame(t0.Add(16 * time.Millisecond))
	if f2.Has(core.ActionFire) {
		t.Error("second frame should not repeat the edge")
	}
	if !f2.IsHeld(core.ActionFire) {
		t.Error("key should still be held inside the hold window")
	}
}

func TestAdapterSwipeGesture(t *testing.T) {
	a := NewAdapter(testViewport(), Options{})
	// Drag from column 4 to column 20 on the same row: 40 logical units right
	a.Handle(Event{Kind: PointerPress, CellX: 4, CellY: 8, At: t0}, core.StatusPlaying)
	a.Handle(Event{Kind: PointerRelease, CellX: 20, CellY: 8, At: t0}, core.StatusPlaying)

	f := a.Frame(t0)
	if f.Swipe != core.SwipeRight {
		t.Errorf("Swipe = %v, expected SwipeRight", f.Swipe)
	}
	if a.Frame(t0).Swipe != core.SwipeNone {
		t.Error("swipe should be consumed by the first frame")
	}
}

func TestAdapterClose(t *testing.T) {
	a := NewAdapter(testViewport(), Options{})
	a.Handle(Event{Kind: KeyPress, Action: core.ActionUp, At: t0}, core.StatusPlaying)
	a.Close()

	if got := a.Handle(Event{Kind: KeyPress, Action: core.ActionDown, At: t0}, core.StatusPlaying); got != IntentNone {
		t.Errorf("Handle() after Close = %v, expected IntentNone", got)
	}
	f := a.Frame(t0)
	if len(f.Actions) != 0 || len(f.Held) != 0 {
		t.Errorf("Frame() after Close = %+v, expected empty", f)
	}
}
