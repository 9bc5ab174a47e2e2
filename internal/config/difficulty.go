package config

import "math"

// DifficultyManager turns a DifficultyConfig into a level in [0, 1] that
// games use to scale speeds and gaps as a run goes on.
type DifficultyManager struct {
	cfg   DifficultyConfig
	floor float64
}

func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, floor: clampF(cfg.InitialLevel, 0, 1)}
}

// SetEnabled switches progression on or off for the rest of the run.
func (d *DifficultyManager) SetEnabled(enabled bool) { d.cfg.Enabled = enabled }

func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// progress reports how far the run is towards max_at. The second result
// is false when the progression type does not ramp.
func (d *DifficultyManager) progress(score int, frames float64) (float64, bool) {
	target := math.Max(1, float64(d.cfg.Progression.MaxAt))
	switch d.cfg.Progression.Type {
	case "score":
		return clampF(float64(score)/target, 0, 1), true
	case "time":
		return clampF(frames/target, 0, 1), true
	}
	return 0, false
}

// Level is the difficulty for the given score and frame count. It rises
// linearly from initial_level to 1 and is 0 when progression is disabled.
func (d *DifficultyManager) Level(score int, frames float64) float64 {
	if !d.cfg.Enabled {
		return 0
	}
	p, ok := d.progress(score, frames)
	if !ok {
		return d.floor
	}
	return d.floor + p*(1-d.floor)
}

// Speed grows base by up to speed_multiplier times at full difficulty.
func (d *DifficultyManager) Speed(base float64, score int, frames float64) float64 {
	return base * (1 + d.Level(score, frames)*d.cfg.Scaling.SpeedMultiplier)
}

// GapSize narrows base by up to gap_reduction, stopping at minGap.
func (d *DifficultyManager) GapSize(base, minGap float64, score int, frames float64) float64 {
	shrink := d.Level(score, frames) * d.cfg.Scaling.GapReduction
	return math.Max(minGap, base-shrink)
}

func clampF(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
