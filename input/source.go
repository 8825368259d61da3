package input

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/trickbike/vmath"
)

// Gesture is the classified output of a touch-style stick
type Gesture struct {
	Horizontal float64
	IsNitro    bool
	IsCharging bool
	Raw        mgl64.Vec2 // unclassified stick vector in the unit disk
}

// Frame is one polled input sample, valid for a single frame tick
type Frame struct {
	Axis    mgl64.Vec2 // X steer, Y throttle/brake, both in [-1, 1]
	Primary bool       // accelerate / jump charge
	Boost   bool
	Gesture *Gesture // nil for non-gesture sources
}

// Source supplies input once per frame tick
// Keyboard and gesture sources are interchangeable implementations
type Source interface {
	Poll() Frame
}

// Tunable is implemented by sources whose gesture sector threshold is owned by the consumer
type Tunable interface {
	SetActionThreshold(v float64)
}

// SourceFunc adapts a function to Source
type SourceFunc func() Frame

func (f SourceFunc) Poll() Frame { return f() }

// Sanitized returns a copy with every scalar clamped to its range and NaN mapped to zero
func (f Frame) Sanitized() Frame {
	out := f
	out.Axis = mgl64.Vec2{
		vmath.Clamp(vmath.Sanitize(f.Axis[0], 0), -1, 1),
		vmath.Clamp(vmath.Sanitize(f.Axis[1], 0), -1, 1),
	}
	if f.Gesture != nil {
		g := *f.Gesture
		g.Horizontal = vmath.Clamp(vmath.Sanitize(g.Horizontal, 0), -1, 1)
		g.Raw = vmath.ClampMagnitude2(g.Raw, 1)
		out.Gesture = &g
	}
	return out
}

// Stick returns the 2D trick stick, always inside the unit disk
// Keyboard axes are clamped per component, so diagonals are scaled back here
func (f Frame) Stick() mgl64.Vec2 {
	if f.Gesture != nil {
		return vmath.ClampMagnitude2(f.Gesture.Raw, 1)
	}
	return vmath.ClampMagnitude2(f.Axis, 1)
}
