package loop

import (
	"context"
	"time"

	"github.com/vovakirdan/gameroom/internal/core"
)

// InputSource supplies the intents for one frame.
type InputSource interface {
	Frame(now time.Time) core.InputFrame
}

// InputFunc adapts a function to InputSource.
type InputFunc func(now time.Time) core.InputFrame

// Frame calls f.
func (f InputFunc) Frame(now time.Time) core.InputFrame {
	return f(now)
}

// Runner drives a Session from a Scheduler without a UI. Step and Render
// both happen on the goroutine that calls Run.
type Runner struct {
	Session   *Session
	Scheduler *Scheduler
	Input     InputSource
	Canvas    *core.Canvas // optional render target
}

// Run starts the session if it is idle and processes frames until the run
// ends or ctx is cancelled. The scheduler is stopped before Run returns.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	if r.Session.Status() != core.StatusPlaying {
		if err := r.Session.Start(time.Now()); err != nil {
			return r.Session.Summary(), err
		}
	}

	r.Scheduler.Start(ctx)
	defer r.Scheduler.Stop()

	frames := r.Scheduler.Frames()
	for {
		select {
		case <-ctx.Done():
			return r.Session.Summary(), ctx.Err()

		case f, ok := <-frames:
			if !ok {
				return r.Session.Summary(), ctx.Err()
			}
			if err := r.frame(f); err != nil {
				return r.Session.Summary(), err
			}
			if r.Session.Status() == core.StatusGameOver {
				return r.Session.Summary(), nil
			}
		}
	}
}

func (r *Runner) frame(f Frame) error {
	in := core.NewInputFrame()
	if r.Input != nil {
		in = r.Input.Frame(f.At)
	}
	if _, err := r.Session.Advance(f.At, in); err != nil {
		return err
	}
	if r.Canvas != nil {
		r.Canvas.Screen().Clear()
		return r.Session.Render(r.Canvas)
	}
	return nil
}
