// Package fx holds short-lived visual effects shared by the action games.
// Effects are part of the simulation state so they stay deterministic
// under a seeded RNG, but they never affect gameplay.
package fx

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/gameroom/internal/core"
)

// Particle is one spark of an explosion.
type Particle struct {
	Pos     core.Vec
	Vel     core.Vec
	Life    float64 // Frames left
	MaxLife float64
	Color   core.Color
}

// Fade returns the remaining life fraction in [0, 1].
func (p Particle) Fade() float64 {
	if p.MaxLife <= 0 {
		return 0
	}
	return core.ClampF(p.Life/p.MaxLife, 0, 1)
}

// Particles is a pool of live particles.
type Particles struct {
	list []Particle
}

// Scatter emits n particles whose velocity components are uniform in
// [-spread/2, spread/2].
func (ps *Particles) Scatter(rng *rand.Rand, x, y float64, n int, spread, life float64, col core.Color) {
	for range n {
		ps.list = append(ps.list, Particle{
			Pos:     core.Vec{X: x, Y: y},
			Vel:     core.Vec{X: (rng.Float64() - 0.5) * spread, Y: (rng.Float64() - 0.5) * spread},
			Life:    life,
			MaxLife: life,
			Color:   col,
		})
	}
}

// Radial emits n particles in random directions with speeds in
// [minSpeed, maxSpeed) and lives in [minLife, maxLife).
func (ps *Particles) Radial(rng *rand.Rand, x, y float64, n int, minSpeed, maxSpeed, minLife, maxLife float64, col core.Color) {
	for range n {
		angle := rng.Float64() * 2 * math.Pi
		speed := minSpeed + rng.Float64()*(maxSpeed-minSpeed)
		life := minLife + rng.Float64()*(maxLife-minLife)
		ps.list = append(ps.list, Particle{
			Pos:     core.Vec{X: x, Y: y},
			Vel:     core.Vec{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			Life:    life,
			MaxLife: life,
			Color:   col,
		})
	}
}

// Update moves particles and drops the expired ones.
func (ps *Particles) Update(dt float64) {
	for i := len(ps.list) - 1; i >= 0; i-- {
		p := &ps.list[i]
		p.Pos = p.Pos.Add(p.Vel.Scale(dt))
		p.Life -= dt
		if p.Life <= 0 {
			ps.list = append(ps.list[:i], ps.list[i+1:]...)
		}
	}
}

// Len returns the number of live particles.
func (ps *Particles) Len() int {
	return len(ps.list)
}

// All returns the live particles.
func (ps *Particles) All() []Particle {
	return ps.list
}

// Reset removes every particle.
func (ps *Particles) Reset() {
	ps.list = ps.list[:0]
}

// Render draws live particles, dimmer glyphs for older sparks.
func (ps *Particles) Render(dst *core.Canvas) {
	for _, p := range ps.list {
		ch := '·'
		switch f := p.Fade(); {
		case f > 0.66:
			ch = '*'
		case f > 0.33:
			ch = '+'
		}
		dst.Dot(p.Pos.X, p.Pos.Y, ch, p.Color)
	}
}
