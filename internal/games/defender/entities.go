package defender

import "github.com/vovakirdan/gameroom/internal/core"

// Kind is an enemy type.
type Kind int

const (
	KindBoat Kind = iota
	KindTank
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindTank {
		return "tank"
	}
	return "boat"
}

// Glyph returns the display character for an enemy kind.
func (k Kind) Glyph() rune {
	if k == KindTank {
		return '▣'
	}
	return '◭'
}

// Enemy approaches the beach from the horizon.
type Enemy struct {
	Kind     Kind
	X, Y     float64 // Top-left corner
	W, H     float64 // Unscaled size
	Scale    float64 // Perspective scale
	Health   int
	Speed    float64
	NextShot float64 // Clock ms when a tank may lob its next grenade
}

// Rect returns the perspective-scaled hit box.
func (e Enemy) Rect() core.Rect {
	return core.NewRect(e.X, e.Y, e.W*e.Scale, e.H*e.Scale)
}

// Grenade is a lobbed projectile that can be shot down.
type Grenade struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Spin   float64
	Angle  float64
}

// Bullet travels from the muzzle toward the crosshair.
type Bullet struct {
	X, Y   float64
	VX, VY float64
	Life   float64 // Frames left
}

// Weapon is the player's gun.
type Weapon int

const (
	WeaponPistol Weapon = iota
	WeaponMachineGun
)

// String returns the weapon name.
func (w Weapon) String() string {
	if w == WeaponMachineGun {
		return "machine gun"
	}
	return "pistol"
}
