package flappy

import (
	"math/rand"
	"slices"

	"github.com/vovakirdan/gameroom/internal/config"
	"github.com/vovakirdan/gameroom/internal/core"
)

// Pipe is one column of the course. The bird has to fly through
// [GapY, GapY+GapHeight).
type Pipe struct {
	X         float64
	GapY      float64
	GapHeight float64
	Passed    bool
}

func (p Pipe) TopRect(width float64) core.Rect {
	return core.NewRect(p.X, 0, width, p.GapY)
}

func (p Pipe) BottomRect(width, fieldH float64) core.Rect {
	y := p.GapY + p.GapHeight
	return core.NewRect(p.X, y, width, fieldH-y)
}

// PipeManager owns the course: it spawns pipes on a fixed cadence at the
// right edge, scrolls them left and drops them once they leave the field.
type PipeManager struct {
	pipes         []Pipe
	rng           *rand.Rand
	fieldW        float64
	fieldH        float64
	untilNextPipe float64
	cfg           *config.FlappyConfig
	difficulty    *config.DifficultyManager
}

func NewPipeManager(seed int64, fieldW, fieldH float64, cfg *config.FlappyConfig, diff *config.DifficultyManager) *PipeManager {
	pm := &PipeManager{fieldW: fieldW, fieldH: fieldH}
	pm.UpdateConfig(cfg, diff)
	pm.Reset(seed)
	return pm
}

// UpdateConfig swaps the tuning used for future spawns and movement.
func (pm *PipeManager) UpdateConfig(cfg *config.FlappyConfig, diff *config.DifficultyManager) {
	pm.cfg, pm.difficulty = cfg, diff
}

// Reset empties the course and reseeds the gap generator. The next Update
// spawns a pipe immediately.
func (pm *PipeManager) Reset(seed int64) {
	pm.pipes = slices.Grow(pm.pipes[:0], 8)
	pm.rng = rand.New(rand.NewSource(seed))
	pm.untilNextPipe = 0
}

// Update advances the course by dt frames and reports how many pipes the
// bird at playerX cleared during the step.
func (pm *PipeManager) Update(playerX float64, score int, frames, dt float64) int {
	if pm.untilNextPipe <= 0 {
		pm.spawnPipe(score, frames)
		pm.untilNextPipe += float64(pm.cfg.Obstacles.SpawnInterval)
	}
	pm.untilNextPipe -= dt

	dx := pm.difficulty.Speed(pm.cfg.Physics.BaseSpeed, score, frames) * dt
	width := pm.cfg.Obstacles.PipeWidth

	cleared := 0
	for i := range pm.pipes {
		p := &pm.pipes[i]
		p.X -= dx
		if !p.Passed && p.X+width < playerX {
			p.Passed = true
			cleared++
		}
	}
	pm.pipes = slices.DeleteFunc(pm.pipes, func(p Pipe) bool {
		return p.X+width <= 0
	})
	return cleared
}

// spawnPipe places a pipe at the right edge. The gap narrows with
// difficulty down to half its configured size and always sits between
// the top and bottom margins.
func (pm *PipeManager) spawnPipe(score int, frames float64) {
	o := pm.cfg.Obstacles
	gap := pm.difficulty.GapSize(o.GapSize, o.GapSize/2, score, frames)
	room := max(0, pm.fieldH-gap-o.TopMargin-o.BottomMargin)

	pm.pipes = append(pm.pipes, Pipe{
		X:         pm.fieldW,
		GapY:      o.TopMargin + pm.rng.Float64()*room,
		GapHeight: gap,
	})
}

func (pm *PipeManager) Pipes() []Pipe {
	return pm.pipes
}

// CheckCollision reports whether box overlaps the solid part of any pipe.
func (pm *PipeManager) CheckCollision(box core.Rect) bool {
	width := pm.cfg.Obstacles.PipeWidth
	return slices.ContainsFunc(pm.pipes, func(p Pipe) bool {
		return box.Intersects(p.TopRect(width)) || box.Intersects(p.BottomRect(width, pm.fieldH))
	})
}
