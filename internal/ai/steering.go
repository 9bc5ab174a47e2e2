package ai

import (
	"math"

	"github.com/vovakirdan/gameroom/internal/core"
)

// SteerParams tunes waypoint steering.
type SteerParams struct {
	TurnRate  float64 // radians per nominal frame
	SharpTurn float64 // corner severity (radians) above which the car slows
	Slow      float64
	Cruise    float64
}

// DefaultSteerParams are the racing opponents' defaults.
var DefaultSteerParams = SteerParams{
	TurnRate:  0.06,
	SharpTurn: 1.0,
	Slow:      2.0,
	Cruise:    3.5,
}

// Steering is one steering decision.
type Steering struct {
	Turn        float64 // heading change for one nominal frame
	TargetSpeed float64
}

// NormalizeAngle maps a to [-π, π].
func NormalizeAngle(a float64) float64 {
	a = math.Mod(a, 2*math.Pi)
	switch {
	case a > math.Pi:
		a -= 2 * math.Pi
	case a < -math.Pi:
		a += 2 * math.Pi
	}
	return a
}

// Steer turns a car at pos with the given heading (radians, atan2
// convention) toward target by at most TurnRate. The target speed drops to
// Slow when the corner at target, toward next, is sharper than SharpTurn.
func Steer(pos core.Vec, heading float64, target, next core.Vec, p SteerParams) Steering {
	toTarget := target.Sub(pos)
	delta := NormalizeAngle(math.Atan2(toTarget.Y, toTarget.X) - heading)

	var turn float64
	switch {
	case delta > 0:
		turn = math.Min(p.TurnRate, delta)
	case delta < 0:
		turn = math.Max(-p.TurnRate, delta)
	}

	afterTarget := next.Sub(target)
	severity := math.Abs(NormalizeAngle(
		math.Atan2(afterTarget.Y, afterTarget.X) - math.Atan2(toTarget.Y, toTarget.X),
	))

	speed := p.Cruise
	if severity > p.SharpTurn {
		speed = p.Slow
	}
	return Steering{Turn: turn, TargetSpeed: speed}
}

// Approach moves v toward target by fraction k.
func Approach(v, target, k float64) float64 {
	return v + (target-v)*k
}

// TrackPaddle returns how far a paddle centred at center moves toward
// target this frame. Inside the deadzone the paddle holds still.
func TrackPaddle(center, target, speed, deadzone float64) float64 {
	switch {
	case center < target-deadzone:
		return speed
	case center > target+deadzone:
		return -speed
	}
	return 0
}
