package flappy

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Frames    float64
	PlayerY   float64
	PlayerVel float64
	Score     int
	Pipes     int
	FirstGapY float64
	GameOver  bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Frames:    g.frames,
		PlayerY:   g.playerY,
		PlayerVel: g.playerVel,
		Score:     g.score,
		Pipes:     len(g.pipes.Pipes()),
		GameOver:  g.gameOver,
	}
	if pipes := g.pipes.Pipes(); len(pipes) > 0 {
		s.FirstGapY = pipes[0].GapY
	}
	return s
}
