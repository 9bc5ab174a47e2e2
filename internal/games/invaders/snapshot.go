package invaders

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Frames       float64
	Score        int
	PlayerX      float64
	Aliens       int
	FirstAlienX  float64
	FirstAlienY  float64
	Bullets      int
	AlienBullets int
	Particles    int
	Direction    float64
	AlienSpeed   float64
	Outcome      Outcome
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Frames:       g.frames,
		Score:        g.score,
		PlayerX:      g.player.X,
		Aliens:       len(g.aliens),
		Bullets:      len(g.bullets),
		AlienBullets: len(g.alienBullets),
		Particles:    g.particles.Len(),
		Direction:    g.direction,
		AlienSpeed:   g.alienSpeed,
		Outcome:      g.outcome,
	}
	if len(g.aliens) > 0 {
		s.FirstAlienX, s.FirstAlienY = g.aliens[0].X, g.aliens[0].Y
	}
	return s
}
