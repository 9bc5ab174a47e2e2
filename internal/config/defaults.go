package config

import (
	"embed"
)

//go:embed defaults/*.yaml
var defaultFiles embed.FS

// DefaultSnakeConfig returns the default Snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid:    SnakeGrid{Cols: 30, Rows: 30, CellSize: 20, StartX: 10, StartY: 10},
		Speed:   SnakeSpeed{IntervalMs: 200, StepPerFoodMs: 3, MinIntervalMs: 50},
		Scoring: SnakeScoring{Food: 10},
		Difficulty: DifficultyConfig{
			Progression: ProgressionConfig{Type: "score", MaxAt: 300},
			Scaling:     ScalingConfig{SpeedMultiplier: 0.5},
		},
	}
}

// DefaultPongConfig returns the default Pong configuration.
func DefaultPongConfig() PongConfig {
	return PongConfig{
		Ball: PongBall{
			Radius:     8,
			ServeSpeed: 3,
			SpeedUp:    1.02,
			MaxSpeed:   12,
		},
		Paddles: PongPaddles{
			Width:       100,
			Height:      15,
			PlayerY:     575,
			CPUY:        10,
			PlayerSpeed: 6,
		},
		CPU:      PongCPU{Speed: 2.5, Deadzone: 10},
		Gameplay: PongGameplay{WinScore: 5},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 36000, // 10 minutes at 60fps
			},
			Scaling: ScalingConfig{SpeedMultiplier: 0.6},
		},
	}
}

// DefaultFlappyConfig returns the default Flappy Bird configuration.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Physics: FlappyPhysics{
			Gravity:      0.18,
			JumpImpulse:  -6,
			MaxFallSpeed: 10,
			BaseSpeed:    1.5,
		},
		Obstacles: FlappyObstacles{
			PipeWidth:     52,
			GapSize:       240,
			SpawnInterval: 100,
			TopMargin:     50,
			BottomMargin:  50,
		},
		Player: FlappyPlayer{
			X:             50,
			Width:         34,
			Height:        24,
			HitboxPadding: 5,
		},
		Difficulty: DifficultyConfig{
			Enabled: true,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 50,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				GapReduction:    80,
			},
		},
	}
}

// DefaultInvadersConfig returns the default Space Invaders configuration.
func DefaultInvadersConfig() InvadersConfig {
	return InvadersConfig{
		Player: InvadersPlayer{Width: 40, Height: 20, Speed: 5, FireIntervalMs: 700},
		Aliens: InvadersAliens{
			Rows:         5,
			Cols:         10,
			Width:        30,
			Height:       20,
			Padding:      15,
			OffsetX:      60,
			OffsetY:      50,
			Speed:        0.2,
			SpeedPerKill: 0.01,
			Drop:         10,
			FireChance:   0.0008,
		},
		Bullets: InvadersBullets{Width: 4, Height: 10, PlayerSpeed: 7, AlienSpeed: 5},
		Scoring: InvadersScoring{Kill: 100, Particles: 20},
		Difficulty: DifficultyConfig{
			Progression: ProgressionConfig{Type: "none"},
			Scaling:     ScalingConfig{SpeedMultiplier: 1.0},
		},
	}
}

// DefaultBubbleConfig returns the default Bubble Shooter configuration.
func DefaultBubbleConfig() BubbleConfig {
	return BubbleConfig{
		Grid:    BubbleGrid{Radius: 12, Cols: 16, Rows: 16, StartRows: 6, GameOverRow: 13, Colors: 6},
		Shot:    BubbleShot{Speed: 10, AimSpeed: 0.04, MinAngle: 0.1, ShotsPerRow: 8},
		Scoring: BubbleScoring{Pop: 10, Drop: 20, MinCluster: 3, Particles: 10},
		Difficulty: DifficultyConfig{
			Progression: ProgressionConfig{Type: "score", MaxAt: 2000},
			Scaling:     ScalingConfig{GapReduction: 4},
		},
	}
}

// DefaultDefenderConfig returns the default Beach Defender configuration.
func DefaultDefenderConfig() DefenderConfig {
	return DefenderConfig{
		Field: DefenderField{HorizonY: 150, SandY: 190, BarricadeY: 520},
		Waves: DefenderWaves{
			BaseCount:    3,
			PerWave:      2,
			TankChance:   0.3,
			BaseSpeed:    0.02,
			SpeedJitter:  0.05,
			SpeedPerWave: 0.01,
			GrenadeMs:    10000,
		},
		Damage: DefenderDamage{Tank: 20, Boat: 10, Grenade: 25},
		Weapons: DefenderWeapons{
			PistolMs:      400,
			MachineGunMs:  100,
			MachineGunFor: 10000,
			BulletSpeed:   15,
			BulletLife:    100,
		},
		Player: DefenderPlayer{Health: 100, CrosshairSpeed: 8},
		Difficulty: DifficultyConfig{
			Progression: ProgressionConfig{Type: "score", MaxAt: 100},
			Scaling:     ScalingConfig{SpeedMultiplier: 1.0},
		},
	}
}

// DefaultRacingConfig returns the default Racing configuration.
func DefaultRacingConfig() RacingConfig {
	return RacingConfig{
		Track: RacingTrack{Width: 80, Laps: 3, CheckpointRadius: 120},
		Car: RacingCar{
			Accel:        0.12,
			Brake:        0.08,
			Turn:         0.05,
			Friction:     0.98,
			TurnFriction: 0.99,
			OffTrackDrag: 0.9,
		},
		AI: RacingAI{
			Opponents:      3,
			TurnRate:       0.06,
			SharpTurn:      1.0,
			SlowSpeed:      2.0,
			CruiseSpeed:    3.5,
			Responsiveness: 0.1,
			WaypointRadius: 60,
		},
		Difficulty: DifficultyConfig{
			Progression: ProgressionConfig{Type: "none"},
			Scaling:     ScalingConfig{SpeedMultiplier: 0.3},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game, or nil.
func GetDefaultYAML(gameID string) []byte {
	data, err := defaultFiles.ReadFile("defaults/" + gameID + ".yaml")
	if err != nil {
		return nil
	}
	return data
}
