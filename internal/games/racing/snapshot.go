package racing

// CarSnapshot is one car's comparable state.
type CarSnapshot struct {
	X, Y, Heading, Speed float64
	Lap, Checkpoint      int
	Finished             bool
}

// Snapshot captures the race for determinism testing.
type Snapshot struct {
	Clock    float64
	Cars     [4]CarSnapshot
	GameOver bool
}

// Snapshot returns the current race snapshot. Only the first four cars are
// recorded.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{Clock: g.clock, GameOver: g.gameOver}
	for i := 0; i < len(g.cars) && i < len(s.Cars); i++ {
		c := g.cars[i]
		s.Cars[i] = CarSnapshot{
			X: c.Pos.X, Y: c.Pos.Y, Heading: c.Heading, Speed: c.Speed,
			Lap: c.Lap, Checkpoint: c.LastCheckpoint, Finished: c.Finished,
		}
	}
	return s
}
