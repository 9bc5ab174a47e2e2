package pong

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Frames      float64
	BallX       float64
	BallY       float64
	BallDX      float64
	BallDY      float64
	PlayerX     float64
	CPUX        float64
	PlayerScore int
	CPUScore    int
	GameOver    bool
	Won         bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Frames:      g.frames,
		BallX:       g.ball.X,
		BallY:       g.ball.Y,
		BallDX:      g.ball.DX,
		BallDY:      g.ball.DY,
		PlayerX:     g.player.X,
		CPUX:        g.cpu.X,
		PlayerScore: g.playerScore,
		CPUScore:    g.cpuScore,
		GameOver:    g.gameOver,
		Won:         g.won,
	}
}
