// Package config provides YAML/TOML game configuration loading, host
// settings and difficulty management for the game room.
package config

// SnakeConfig contains all configuration for Snake.
type SnakeConfig struct {
	Grid       SnakeGrid        `yaml:"grid" toml:"grid"`
	Speed      SnakeSpeed       `yaml:"speed" toml:"speed"`
	Scoring    SnakeScoring     `yaml:"scoring" toml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// SnakeGrid defines the board in cells.
type SnakeGrid struct {
	Cols     int     `yaml:"cols" toml:"cols"`
	Rows     int     `yaml:"rows" toml:"rows"`
	CellSize float64 `yaml:"cell_size" toml:"cell_size"` // logical units per cell
	StartX   int     `yaml:"start_x" toml:"start_x"`
	StartY   int     `yaml:"start_y" toml:"start_y"`
}

// SnakeSpeed defines the move interval and how it shrinks.
type SnakeSpeed struct {
	IntervalMs    float64 `yaml:"interval_ms" toml:"interval_ms"`
	StepPerFoodMs float64 `yaml:"step_per_food_ms" toml:"step_per_food_ms"`
	MinIntervalMs float64 `yaml:"min_interval_ms" toml:"min_interval_ms"`
}

// SnakeScoring defines points.
type SnakeScoring struct {
	Food int `yaml:"food" toml:"food"`
}

// PongConfig contains all configuration for Pong.
type PongConfig struct {
	Ball       PongBall         `yaml:"ball" toml:"ball"`
	Paddles    PongPaddles      `yaml:"paddles" toml:"paddles"`
	CPU        PongCPU          `yaml:"cpu" toml:"cpu"`
	Gameplay   PongGameplay     `yaml:"gameplay" toml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// PongBall defines ball physics.
type PongBall struct {
	Radius     float64 `yaml:"radius" toml:"radius"`
	ServeSpeed float64 `yaml:"serve_speed" toml:"serve_speed"` // vertical speed on serve
	SpeedUp    float64 `yaml:"speed_up" toml:"speed_up"`       // |dy| multiplier per paddle hit
	MaxSpeed   float64 `yaml:"max_speed" toml:"max_speed"`
}

// PongPaddles defines paddle geometry.
type PongPaddles struct {
	Width       float64 `yaml:"width" toml:"width"`
	Height      float64 `yaml:"height" toml:"height"`
	PlayerY     float64 `yaml:"player_y" toml:"player_y"`
	CPUY        float64 `yaml:"cpu_y" toml:"cpu_y"`
	PlayerSpeed float64 `yaml:"player_speed" toml:"player_speed"`
}

// PongCPU defines the computer paddle.
type PongCPU struct {
	Speed    float64 `yaml:"speed" toml:"speed"`
	Deadzone float64 `yaml:"deadzone" toml:"deadzone"`
}

// PongGameplay defines match rules.
type PongGameplay struct {
	WinScore int `yaml:"win_score" toml:"win_score"`
}

// FlappyConfig contains all configuration for Flappy Bird.
type FlappyConfig struct {
	Physics    FlappyPhysics    `yaml:"physics" toml:"physics"`
	Obstacles  FlappyObstacles  `yaml:"obstacles" toml:"obstacles"`
	Player     FlappyPlayer     `yaml:"player" toml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// FlappyPhysics defines physics parameters for Flappy Bird.
type FlappyPhysics struct {
	Gravity      float64 `yaml:"gravity" toml:"gravity"`
	JumpImpulse  float64 `yaml:"jump_impulse" toml:"jump_impulse"`
	MaxFallSpeed float64 `yaml:"max_fall_speed" toml:"max_fall_speed"`
	BaseSpeed    float64 `yaml:"base_speed" toml:"base_speed"`
}

// FlappyObstacles defines obstacle parameters for Flappy Bird.
type FlappyObstacles struct {
	PipeWidth     float64 `yaml:"pipe_width" toml:"pipe_width"`
	GapSize       float64 `yaml:"gap_size" toml:"gap_size"`
	SpawnInterval int     `yaml:"spawn_interval" toml:"spawn_interval"` // frames between pipes
	TopMargin     float64 `yaml:"top_margin" toml:"top_margin"`
	BottomMargin  float64 `yaml:"bottom_margin" toml:"bottom_margin"`
}

// FlappyPlayer defines player parameters for Flappy Bird.
type FlappyPlayer struct {
	X             float64 `yaml:"x" toml:"x"`
	Width         float64 `yaml:"width" toml:"width"`
	Height        float64 `yaml:"height" toml:"height"`
	HitboxPadding float64 `yaml:"hitbox_padding" toml:"hitbox_padding"`
}

// InvadersConfig contains all configuration for Space Invaders.
type InvadersConfig struct {
	Player     InvadersPlayer   `yaml:"player" toml:"player"`
	Aliens     InvadersAliens   `yaml:"aliens" toml:"aliens"`
	Bullets    InvadersBullets  `yaml:"bullets" toml:"bullets"`
	Scoring    InvadersScoring  `yaml:"scoring" toml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// InvadersPlayer defines the cannon.
type InvadersPlayer struct {
	Width          float64 `yaml:"width" toml:"width"`
	Height         float64 `yaml:"height" toml:"height"`
	Speed          float64 `yaml:"speed" toml:"speed"`
	FireIntervalMs float64 `yaml:"fire_interval_ms" toml:"fire_interval_ms"`
}

// InvadersAliens defines the formation.
type InvadersAliens struct {
	Rows         int     `yaml:"rows" toml:"rows"`
	Cols         int     `yaml:"cols" toml:"cols"`
	Width        float64 `yaml:"width" toml:"width"`
	Height       float64 `yaml:"height" toml:"height"`
	Padding      float64 `yaml:"padding" toml:"padding"`
	OffsetX      float64 `yaml:"offset_x" toml:"offset_x"`
	OffsetY      float64 `yaml:"offset_y" toml:"offset_y"`
	Speed        float64 `yaml:"speed" toml:"speed"`
	SpeedPerKill float64 `yaml:"speed_per_kill" toml:"speed_per_kill"`
	Drop         float64 `yaml:"drop" toml:"drop"`
	FireChance   float64 `yaml:"fire_chance" toml:"fire_chance"` // per alien per frame
}

// InvadersBullets defines projectiles.
type InvadersBullets struct {
	Width       float64 `yaml:"width" toml:"width"`
	Height      float64 `yaml:"height" toml:"height"`
	PlayerSpeed float64 `yaml:"player_speed" toml:"player_speed"`
	AlienSpeed  float64 `yaml:"alien_speed" toml:"alien_speed"`
}

// InvadersScoring defines points and effects.
type InvadersScoring struct {
	Kill      int `yaml:"kill" toml:"kill"`
	Particles int `yaml:"particles" toml:"particles"`
}

// BubbleConfig contains all configuration for Bubble Shooter.
type BubbleConfig struct {
	Grid       BubbleGrid       `yaml:"grid" toml:"grid"`
	Shot       BubbleShot       `yaml:"shot" toml:"shot"`
	Scoring    BubbleScoring    `yaml:"scoring" toml:"scoring"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// BubbleGrid defines the hex grid. Staggered rows hold one bubble less.
type BubbleGrid struct {
	Radius      float64 `yaml:"radius" toml:"radius"`
	Cols        int     `yaml:"cols" toml:"cols"`
	Rows        int     `yaml:"rows" toml:"rows"`
	StartRows   int     `yaml:"start_rows" toml:"start_rows"`
	GameOverRow int     `yaml:"game_over_row" toml:"game_over_row"`
	Colors      int     `yaml:"colors" toml:"colors"`
}

// BubbleShot defines the cannon.
type BubbleShot struct {
	Speed       float64 `yaml:"speed" toml:"speed"`
	AimSpeed    float64 `yaml:"aim_speed" toml:"aim_speed"` // radians per frame with the arrow keys
	MinAngle    float64 `yaml:"min_angle" toml:"min_angle"` // closest the aim gets to horizontal
	ShotsPerRow int     `yaml:"shots_per_row" toml:"shots_per_row"`
}

// BubbleScoring defines points per bubble.
type BubbleScoring struct {
	Pop        int `yaml:"pop" toml:"pop"`
	Drop       int `yaml:"drop" toml:"drop"`
	MinCluster int `yaml:"min_cluster" toml:"min_cluster"`
	Particles  int `yaml:"particles" toml:"particles"`
}

// DefenderConfig contains all configuration for Beach Defender.
type DefenderConfig struct {
	Field      DefenderField    `yaml:"field" toml:"field"`
	Waves      DefenderWaves    `yaml:"waves" toml:"waves"`
	Damage     DefenderDamage   `yaml:"damage" toml:"damage"`
	Weapons    DefenderWeapons  `yaml:"weapons" toml:"weapons"`
	Player     DefenderPlayer   `yaml:"player" toml:"player"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// DefenderField defines the perspective bands.
type DefenderField struct {
	HorizonY   float64 `yaml:"horizon_y" toml:"horizon_y"`
	SandY      float64 `yaml:"sand_y" toml:"sand_y"`
	BarricadeY float64 `yaml:"barricade_y" toml:"barricade_y"`
}

// DefenderWaves defines enemy spawning.
type DefenderWaves struct {
	BaseCount    int     `yaml:"base_count" toml:"base_count"`
	PerWave      int     `yaml:"per_wave" toml:"per_wave"`
	TankChance   float64 `yaml:"tank_chance" toml:"tank_chance"`
	BaseSpeed    float64 `yaml:"base_speed" toml:"base_speed"`
	SpeedJitter  float64 `yaml:"speed_jitter" toml:"speed_jitter"`
	SpeedPerWave float64 `yaml:"speed_per_wave" toml:"speed_per_wave"`
	GrenadeMs    float64 `yaml:"grenade_ms" toml:"grenade_ms"` // tank reload
}

// DefenderDamage defines barricade damage.
type DefenderDamage struct {
	Tank    int `yaml:"tank" toml:"tank"`
	Boat    int `yaml:"boat" toml:"boat"`
	Grenade int `yaml:"grenade" toml:"grenade"`
}

// DefenderWeapons defines fire rates and bullets.
type DefenderWeapons struct {
	PistolMs      float64 `yaml:"pistol_ms" toml:"pistol_ms"`
	MachineGunMs  float64 `yaml:"machine_gun_ms" toml:"machine_gun_ms"`
	MachineGunFor float64 `yaml:"machine_gun_for_ms" toml:"machine_gun_for_ms"`
	BulletSpeed   float64 `yaml:"bullet_speed" toml:"bullet_speed"`
	BulletLife    int     `yaml:"bullet_life" toml:"bullet_life"`
}

// DefenderPlayer defines the defender.
type DefenderPlayer struct {
	Health         int     `yaml:"health" toml:"health"`
	CrosshairSpeed float64 `yaml:"crosshair_speed" toml:"crosshair_speed"`
}

// RacingConfig contains all configuration for Racing.
type RacingConfig struct {
	Track      RacingTrack      `yaml:"track" toml:"track"`
	Car        RacingCar        `yaml:"car" toml:"car"`
	AI         RacingAI         `yaml:"ai" toml:"ai"`
	Difficulty DifficultyConfig `yaml:"difficulty" toml:"difficulty"`
}

// RacingTrack defines the circuit.
type RacingTrack struct {
	Width            float64 `yaml:"width" toml:"width"`
	Laps             int     `yaml:"laps" toml:"laps"`
	CheckpointRadius float64 `yaml:"checkpoint_radius" toml:"checkpoint_radius"`
}

// RacingCar defines the player's car handling.
type RacingCar struct {
	Accel        float64 `yaml:"accel" toml:"accel"`
	Brake        float64 `yaml:"brake" toml:"brake"`
	Turn         float64 `yaml:"turn" toml:"turn"`
	Friction     float64 `yaml:"friction" toml:"friction"`
	TurnFriction float64 `yaml:"turn_friction" toml:"turn_friction"`
	OffTrackDrag float64 `yaml:"off_track_drag" toml:"off_track_drag"`
}

// RacingAI defines the opponents.
type RacingAI struct {
	Opponents      int     `yaml:"opponents" toml:"opponents"`
	TurnRate       float64 `yaml:"turn_rate" toml:"turn_rate"`
	SharpTurn      float64 `yaml:"sharp_turn" toml:"sharp_turn"`
	SlowSpeed      float64 `yaml:"slow_speed" toml:"slow_speed"`
	CruiseSpeed    float64 `yaml:"cruise_speed" toml:"cruise_speed"`
	Responsiveness float64 `yaml:"responsiveness" toml:"responsiveness"`
	WaypointRadius float64 `yaml:"waypoint_radius" toml:"waypoint_radius"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled" toml:"enabled"`
	InitialLevel float64           `yaml:"initial_level" toml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression" toml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling" toml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type" toml:"type"`     // "score", "time", or "none"
	MaxAt int    `yaml:"max_at" toml:"max_at"` // Score/frames at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier" toml:"speed_multiplier"` // added to speed at max difficulty
	GapReduction    float64 `yaml:"gap_reduction" toml:"gap_reduction"`       // gap shrink at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values select the
// config file's own settings.
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	}
	return ""
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset adjusts the difficulty block for a preset. An empty preset
// leaves the block unchanged.
func (d *DifficultyConfig) ApplyPreset(preset DifficultyPreset) {
	switch {
	case preset == "":
	case IsFixedPreset(preset):
		d.Enabled = false
	default:
		d.Enabled = true
		d.InitialLevel = InitialLevelForPreset(preset)
	}
}
