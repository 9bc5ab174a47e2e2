// Package loop drives games: a Scheduler paces frames, a Timestep turns
// wall-clock time into simulation steps and a Session owns one game's
// status machine and high-score write-back.
package loop

import (
	"context"
	"sync"
	"time"

	"github.com/vovakirdan/gameroom/internal/core"
)

// Frame is one scheduler tick.
type Frame struct {
	Seq uint64
	At  time.Time
}

// Scheduler emits frames at a fixed rate until stopped. Frames coalesce:
// if the consumer has not taken the previous frame, the new one is dropped
// and the Timestep catches up from the next frame's timestamp.
type Scheduler struct {
	interval time.Duration
	frames   chan Frame
	done     chan struct{}

	mu      sync.Mutex
	cancel  context.CancelFunc
	started bool
	stopped bool
}

// NewScheduler creates a stopped scheduler for the given frames per second.
func NewScheduler(tickRate int) *Scheduler {
	if tickRate <= 0 {
		tickRate = core.NominalTickRate
	}
	return &Scheduler{
		interval: time.Second / time.Duration(tickRate),
		frames:   make(chan Frame, 1),
		done:     make(chan struct{}),
	}
}

// Interval returns the time between frames.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Frames returns the frame channel. It is closed once the scheduler stops.
func (s *Scheduler) Frames() <-chan Frame {
	return s.frames
}

// Start launches the frame goroutine. It runs until ctx is cancelled or
// Stop is called. Calling Start twice, or after Stop, does nothing.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started || s.stopped {
		return
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)
	go s.run(ctx)
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)
	defer close(s.frames)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	var seq uint64
	for {
		select {
		case <-ctx.Done():
			return
		case at := <-ticker.C:
			seq++
			select {
			case s.frames <- Frame{Seq: seq, At: at}:
			default:
			}
		}
	}
}

// Stop cancels the scheduler and blocks until its goroutine has exited.
// Any frame still buffered is discarded, so after Stop returns no further
// frame is delivered.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		<-s.done
		return
	}
	s.stopped = true
	started := s.started
	cancel := s.cancel
	s.mu.Unlock()

	if !started {
		close(s.frames)
		close(s.done)
		return
	}

	cancel()
	<-s.done
	for range s.frames {
	}
}

// Running reports whether the scheduler was started and not yet stopped.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started && !s.stopped
}
