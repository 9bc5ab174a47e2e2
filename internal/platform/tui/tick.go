// Package tui provides the Bubble Tea host for gameroom.
// It owns the terminal side of the loop: key and mouse events go to an
// input.Adapter, scheduler frames drive a loop.Session, and the session's
// canvas is styled with lipgloss.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gameroom/internal/loop"
)

// FrameMsg carries one scheduler frame into the Bubble Tea update loop.
type FrameMsg struct {
	loop.Frame
	sched *loop.Scheduler
}

// waitForFrame blocks on the scheduler's frame channel. A closed channel
// yields no message, so a stopped scheduler simply ends the chain.
func waitForFrame(s *loop.Scheduler) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-s.Frames()
		if !ok {
			return nil
		}
		return FrameMsg{Frame: f, sched: s}
	}
}
