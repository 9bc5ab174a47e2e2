package loop

import (
	"errors"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/gameroom/internal/core"
	"github.com/vovakirdan/gameroom/internal/registry"
	"github.com/vovakirdan/gameroom/internal/storage"
)

// ErrClosed is returned by Session methods after Close.
var ErrClosed = errors.New("loop: session closed")

// Summary is the low-frequency view of a session that the UI observes.
// It changes a few times per run, never once per frame.
type Summary struct {
	GameID    string
	Title     string
	Status    core.Status
	Score     int
	HighScore int
	Won       bool
	Scored    bool
	RunID     string
}

// Options configures a Session.
type Options struct {
	Config   core.RuntimeConfig
	Timestep TimestepMode
	Scores   storage.HighScores // nil keeps scores for this session only
	Runs     storage.RunLog     // optional run history
	Logger   *log.Logger
	Observer func(Summary)
}

// Session owns one game instance and its idle -> playing -> gameOver
// status machine. It is not safe for concurrent use; the host calls it
// from a single goroutine.
type Session struct {
	game     registry.Game
	cfg      core.RuntimeConfig
	scores   storage.HighScores
	runs     storage.RunLog
	logger   *log.Logger
	observer func(Summary)
	timestep *Timestep
	scored   bool

	status    core.Status
	state     core.GameState
	best      int
	runID     string
	runCount  int64
	runStart  time.Time
	submitted bool
	closed    bool
	last      Summary

	// pending holds edge intents from frames that owed no step.
	pending core.InputFrame

	steps   uint64
	renders uint64
}

// NewSession wraps game. The game is reset once so the idle screen can
// show its starting scene; the stored high score is loaded.
func NewSession(game registry.Game, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	scores := opts.Scores
	if scores == nil {
		scores = storage.NewMemoryStore()
	}

	s := &Session{
		game:     game,
		cfg:      opts.Config,
		scores:   scores,
		runs:     opts.Runs,
		logger:   logger,
		observer: opts.Observer,
		timestep: NewTimestep(opts.Timestep),
		scored:   registry.IsScored(game),
		status:   core.StatusIdle,
	}

	if s.scored {
		best, err := scores.HighScore(game.ID())
		if err != nil {
			logger.Warn("could not load high score", "game", game.ID(), "error", err)
		}
		s.best = best
	}

	game.Reset(s.nextConfig())
	s.state = game.State()
	s.notify()
	return s
}

// nextConfig derives the runtime config of the next run. A fixed seed
// gives a reproducible sequence of runs.
func (s *Session) nextConfig() core.RuntimeConfig {
	cfg := s.cfg
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	} else {
		cfg.Seed += s.runCount
	}
	return cfg
}

// Game returns the wrapped game.
func (s *Session) Game() registry.Game {
	return s.game
}

// Status returns the current status.
func (s *Session) Status() core.Status {
	return s.status
}

// Closed reports whether Close was called.
func (s *Session) Closed() bool {
	return s.closed
}

// Summary returns the current low-frequency state.
func (s *Session) Summary() Summary {
	return Summary{
		GameID:    s.game.ID(),
		Title:     s.game.Title(),
		Status:    s.status,
		Score:     s.state.Score,
		HighScore: s.best,
		Won:       s.state.Won,
		Scored:    s.scored,
		RunID:     s.runID,
	}
}

// Steps returns how many times Step was called.
func (s *Session) Steps() uint64 {
	return s.steps
}

// Renders returns how many times Render was called.
func (s *Session) Renders() uint64 {
	return s.renders
}

// Start begins a run from idle or restarts after game over. The simulation
// state is rebuilt from scratch. Calling Start while playing does nothing.
func (s *Session) Start(now time.Time) error {
	if s.closed {
		return ErrClosed
	}
	if s.status == core.StatusPlaying {
		return nil
	}

	s.runCount++
	s.game.Reset(s.nextConfig())
	s.state = s.game.State()
	s.timestep.Reset()
	s.pending = core.InputFrame{}
	s.submitted = false
	s.runID = uuid.NewString()
	s.runStart = now
	s.status = core.StatusPlaying

	s.logger.Debug("run started", "game", s.game.ID(), "run", s.runID)
	s.notify()
	return nil
}

// Advance runs the simulation steps owed since the previous frame. Edge
// intents in the frame apply to the first step only; when the frame owes
// no step they are held until one that does. Processing stops on the step
// that ends the run. Returns the number of steps run.
func (s *Session) Advance(now time.Time, in core.InputFrame) (int, error) {
	if s.closed {
		return 0, ErrClosed
	}
	if s.status != core.StatusPlaying {
		return 0, nil
	}

	if s.pending.HasEdges() {
		in = in.MergeEdges(s.pending)
	}
	steps, dt := s.timestep.Advance(now)
	if steps == 0 {
		if in.HasEdges() {
			s.pending = in.Clone()
		}
		return 0, nil
	}
	s.pending = core.InputFrame{}

	ran := 0
	for i := 0; i < steps; i++ {
		frame := in
		if i > 0 {
			frame = in.Continuous()
		}

		result := s.game.Step(frame, dt)
		s.steps++
		ran++
		s.state = result.State

		if result.State.GameOver {
			s.finish(now)
			break
		}
	}

	s.notify()
	return ran, nil
}

// finish handles the playing -> gameOver transition. The high score is
// written back exactly once per run.
func (s *Session) finish(now time.Time) {
	s.status = core.StatusGameOver
	if s.submitted {
		return
	}
	s.submitted = true

	score := s.state.Score
	if s.scored {
		best, err := s.scores.SubmitScore(s.game.ID(), score)
		if err != nil {
			s.logger.Warn("could not save high score", "game", s.game.ID(), "error", err)
			best = max(s.best, score)
		}
		s.best = max(s.best, best)
	}

	if s.runs != nil {
		err := s.runs.RecordRun(storage.RunRecord{
			ID:       s.runID,
			GameID:   s.game.ID(),
			Score:    score,
			Won:      s.state.Won,
			Duration: now.Sub(s.runStart),
		})
		if err != nil {
			s.logger.Warn("could not record run", "game", s.game.ID(), "error", err)
		}
	}

	s.logger.Info("run finished",
		"game", s.game.ID(),
		"run", s.runID,
		"score", score,
		"won", s.state.Won,
		"best", s.best,
		"duration", now.Sub(s.runStart).Round(time.Millisecond),
	)
}

// Render draws the current frame. It never advances the simulation.
func (s *Session) Render(dst *core.Canvas) error {
	if s.closed {
		return ErrClosed
	}
	s.game.Render(dst)
	s.renders++
	return nil
}

// Close tears the session down. An unfinished run is abandoned without
// a high-score write. Later calls to Advance, Render and Start are no-ops.
func (s *Session) Close() {
	if s.closed {
		return
	}
	if s.status == core.StatusPlaying {
		s.logger.Debug("run abandoned", "game", s.game.ID(), "run", s.runID)
	}
	s.closed = true
}

// notify sends the summary to the observer when it changed.
func (s *Session) notify() {
	if s.observer == nil {
		return
	}
	sum := s.Summary()
	if sum == s.last {
		return
	}
	s.last = sum
	s.observer(sum)
}
