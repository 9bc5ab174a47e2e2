package defender

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Clock     float64
	Health    int
	Kills     int
	Wave      int
	Enemies   int
	Grenades  int
	Bullets   int
	Particles int
	Weapon    Weapon
	CrossX    float64
	CrossY    float64
	GameOver  bool
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Clock:     g.clock,
		Health:    g.health,
		Kills:     g.kills,
		Wave:      g.wave,
		Enemies:   len(g.enemies),
		Grenades:  len(g.grenades),
		Bullets:   len(g.bullets),
		Particles: g.particles.Len(),
		Weapon:    g.weapon,
		CrossX:    g.crosshair.X,
		CrossY:    g.crosshair.Y,
		GameOver:  g.gameOver,
	}
}
