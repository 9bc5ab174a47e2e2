package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/loop"
	"github.com/vovakirdan/gameroom/internal/storage"
)

// spyGame counts calls and ends the run after endAt steps.
type spyGame struct {
	steps   int
	renders int
	endAt   int
	score   int
}

func (g *spyGame) ID() string               { return "spy" }
func (g *spyGame) Title() string            { return "Spy" }
func (g *spyGame) Size() (float64, float64) { return 100, 100 }
func (g *spyGame) Reset(core.RuntimeConfig) { g.steps, g.score = 0, 0 }
func (g *spyGame) Render(*core.Canvas)      { g.renders++ }
func (g *spyGame) Step(core.InputFrame, float64) core.StepResult {
	g.steps++
	g.score += 10
	return core.StepResult{State: g.State()}
}
func (g *spyGame) State() core.GameState {
	return core.GameState{Score: g.score, GameOver: g.endAt > 0 && g.steps >= g.endAt}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m GameModel, msg tea.Msg) GameModel {
	t.Helper()
	next, _ := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return gm
}

// frame delivers one frame from the model's current scheduler.
func frame(t *testing.T, m GameModel) GameModel {
	t.Helper()
	return update(t, m, FrameMsg{Frame: loop.Frame{Seq: 1, At: time.Now()}, sched: m.sched})
}

func newTestModel(g *spyGame, store storage.Backend) GameModel {
	return NewGameModel(g, Options{Store: store, TickRate: 60}, 80, 24)
}

func TestStartGestureBeginsRun(t *testing.T) {
	g := &spyGame{}
	m := newTestModel(g, nil)
	defer m.teardown()

	if m.Playing() || m.Summary().Status != core.StatusIdle {
		t.Fatalf("expected idle model, got %v", m.Summary().Status)
	}

	// Gameplay keys do nothing while idle
	m = update(t, m, keyMsg("up"))
	if m.Playing() {
		t.Fatal("arrow key started the run")
	}

	m = update(t, m, keyMsg("enter"))
	if !m.Playing() || m.Summary().Status != core.StatusPlaying {
		t.Fatalf("enter did not start the run: %v", m.Summary().Status)
	}

	m = frame(t, m)
	if g.steps != 1 {
		t.Errorf("steps = %d after one frame, expected 1", g.steps)
	}
}

func TestStaleFramesIgnored(t *testing.T) {
	g := &spyGame{}
	m := newTestModel(g, nil)
	defer m.teardown()

	m = update(t, m, keyMsg("enter"))
	stale := loop.NewScheduler(60)
	m = update(t, m, FrameMsg{Frame: loop.Frame{At: time.Now()}, sched: stale})
	if g.steps != 0 {
		t.Errorf("frame from another scheduler stepped the game")
	}
}

func TestGameOverStopsScheduler(t *testing.T) {
	g := &spyGame{endAt: 1}
	store := storage.NewMemoryStore()
	m := newTestModel(g, store)
	defer m.teardown()

	m = update(t, m, keyMsg(" "))
	m = frame(t, m)

	if m.Playing() {
		t.Error("scheduler still running after game over")
	}
	sum := m.Summary()
	if sum.Status != core.StatusGameOver || sum.HighScore != 10 {
		t.Errorf("summary = %+v", sum)
	}
	if best, _ := store.HighScore("spy"); best != 10 {
		t.Errorf("stored best = %d, expected 10", best)
	}
	if !strings.Contains(m.View(), "GAME OVER") {
		t.Error("game over overlay missing")
	}

	// Restart
	m = update(t, m, keyMsg("r"))
	if !m.Playing() || g.steps != 0 {
		t.Errorf("restart: playing = %v steps = %d", m.Playing(), g.steps)
	}
}

func TestBackTearsDown(t *testing.T) {
	g := &spyGame{}
	m := newTestModel(g, nil)

	m = update(t, m, keyMsg("enter"))
	sched := m.sched
	m = frame(t, m)
	m = update(t, m, keyMsg("esc"))

	if !m.BackToMenu() || m.Playing() || sched.Running() {
		t.Fatalf("back: menu = %v playing = %v scheduler = %v", m.BackToMenu(), m.Playing(), sched.Running())
	}
	if !m.session.Closed() || !m.adapter.Closed() {
		t.Fatal("session or adapter left open")
	}

	steps, renders := g.steps, g.renders
	m = update(t, m, FrameMsg{Frame: loop.Frame{At: time.Now()}, sched: sched})
	if m.View() != "" {
		t.Error("view rendered after teardown")
	}
	if g.steps != steps || g.renders != renders {
		t.Errorf("game touched after teardown: steps %d->%d renders %d->%d", steps, g.steps, renders, g.renders)
	}
}

func TestQuitTearsDown(t *testing.T) {
	g := &spyGame{}
	m := newTestModel(g, nil)
	m = update(t, m, keyMsg("enter"))
	sched := m.sched

	next, cmd := m.Update(keyMsg("q"))
	m = next.(GameModel)
	if cmd == nil || !m.IsQuitting() {
		t.Fatal("q did not quit")
	}
	if sched.Running() || !m.session.Closed() {
		t.Error("quit left the run alive")
	}
}

func TestKeyMapActions(t *testing.T) {
	keys := DefaultGameKeyMap()
	tests := []struct {
		key  string
		want core.Action
	}{
		{"up", core.ActionUp},
		{"w", core.ActionUp},
		{"s", core.ActionDown},
		{"a", core.ActionLeft},
		{"l", core.ActionRight},
		{" ", core.ActionFire},
		{"enter", core.ActionConfirm},
		{"r", core.ActionRestart},
		{"x", core.ActionNone},
	}
	for _, tc := range tests {
		if got := keys.Action(keyMsg(tc.key)); got != tc.want {
			t.Errorf("Action(%q) = %v, expected %v", tc.key, got, tc.want)
		}
	}
}

func TestResizeKeepsRun(t *testing.T) {
	g := &spyGame{}
	m := newTestModel(g, nil)
	defer m.teardown()

	m = update(t, m, keyMsg("enter"))
	m = frame(t, m)
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if !m.Playing() || g.steps != 1 {
		t.Errorf("resize interrupted the run: playing = %v steps = %d", m.Playing(), g.steps)
	}
	if m.screen.Width() != 120 || m.screen.Height() != 39 {
		t.Errorf("screen = %dx%d, expected 120x39", m.screen.Width(), m.screen.Height())
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab", core.ColorRed)
	s.DrawText(2, 0, "cd", core.ColorSky)
	s.DrawText(0, 1, "xyz", core.ColorDefault)

	got := RenderScreen(s)
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, expected 2", len(lines))
	}
	if !strings.Contains(lines[0], "ab") || !strings.Contains(lines[0], "cd") || !strings.Contains(lines[1], "xyz") {
		t.Errorf("RenderScreen() = %q", got)
	}
}
