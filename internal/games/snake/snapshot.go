package snake

// Snapshot captures the game state for determinism testing and replay.
type Snapshot struct {
	Frames     float64
	Score      int
	FoodEaten  int
	SnakeLen   int
	HeadX      int
	HeadY      int
	Dir        Direction
	FoodX      int
	FoodY      int
	IntervalMs float64
	GameOver   bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	headX, headY := 0, 0
	if len(g.snake) > 0 {
		headX = g.snake[0].X
		headY = g.snake[0].Y
	}

	return Snapshot{
		Frames:     g.frames,
		Score:      g.score,
		FoodEaten:  g.foodEaten,
		SnakeLen:   len(g.snake),
		HeadX:      headX,
		HeadY:      headY,
		Dir:        g.direction,
		FoodX:      g.food.X,
		FoodY:      g.food.Y,
		IntervalMs: g.interval,
		GameOver:   g.gameOver,
	}
}
