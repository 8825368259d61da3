package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/trickbike/vmath"
)

// WheelState is the per-wheel suspension record, persisted across physics ticks
type WheelState struct {
	// LastCompression is the previous tick's compression, zeroed on a miss
	LastCompression float64
	Compression     float64
	SpringForce     float64
	IsGrounded      bool
	GroundPoint     mgl64.Vec3
	GroundNormal    mgl64.Vec3

	// Visual pose for renderers
	VisualPosition mgl64.Vec3
	VisualSteer    float64
}

// JumpCharge tracks a held jump; Value stays in [0,1]
type JumpCharge struct {
	Value    float64
	Charging bool
}

// TrickGesture is the sampled trick stick while airborne
type TrickGesture struct {
	Vector mgl64.Vec2
	Locked bool
}

// Active reports whether the gesture is past the deadzone
func (g TrickGesture) Active(deadzone float64) bool {
	return vmath.Len2(g.Vector) > deadzone
}

// NitroTank holds boost fuel; Current stays in [0,Max]
type NitroTank struct {
	Current float64
	Max     float64
}

func (n *NitroTank) clamp() {
	n.Current = vmath.Clamp(n.Current, 0, n.Max)
}

// Fraction returns the fill level in [0,1]
func (n NitroTank) Fraction() float64 {
	if n.Max <= 0 {
		return 0
	}
	return vmath.Clamp01(n.Current / n.Max)
}

// Control is the per-frame resolved drive command
type Control struct {
	Steer    float64 // [-1,1], right positive
	Throttle float64 // [0,1]
	Brake    float64 // [0,1]
	Charge   bool
	Boost    bool
	Stick    mgl64.Vec2 // raw stick for the trick system
	Gesture  bool       // resolved from a gesture source
}

// Visual is the cosmetic pose derived each frame
type Visual struct {
	// SquashOffset is the vertical model offset while charging, in [-Squash, 0]
	SquashOffset float64
	// LeanAngle in degrees around the forward axis
	LeanAngle float64
	// PartOffset displaces exploded parts, bounded by PartSpread
	PartOffset mgl64.Vec2
	// PartSpin in degrees, accumulated from horizontal trick input
	PartSpin float64
	// Explosion is the normalized scatter amount in [0,1]
	Explosion float64
}
