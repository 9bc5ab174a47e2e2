package bubble

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Frames    float64
	Score     int
	Bubbles   int
	Stagger   int
	Angle     float64
	ShotX     float64
	ShotY     float64
	Flying    bool
	Current   int
	Next      int
	Shots     int
	Particles int
	GameOver  bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Frames:    g.frames,
		Score:     g.score,
		Stagger:   g.stagger,
		Angle:     g.angle,
		ShotX:     g.shot.X,
		ShotY:     g.shot.Y,
		Flying:    g.flying,
		Current:   g.current,
		Next:      g.next,
		Shots:     g.shots,
		Particles: g.particles.Len(),
		GameOver:  g.gameOver,
	}
	s.Bubbles = g.count()
	return s
}

func (g *Game) count() int {
	n := 0
	for _, row := range g.cells {
		for _, v := range row {
			if v != empty {
				n++
			}
		}
	}
	return n
}
