package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the threshold below which lengths and angles are treated as zero
const Epsilon = 1e-9

// --- Scalar ---

// Clamp restricts v to [lo, hi], NaN maps to lo
func Clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 restricts v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Sanitize replaces NaN and Inf with fallback
func Sanitize(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// Lerp interpolates a..b with t clamped to [0, 1]
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*Clamp01(t)
}

// InverseLerp returns where v sits between a and b, clamped to [0, 1]
func InverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	return Clamp01((v - a) / (b - a))
}

// ExpSmooth returns the blend factor for exponential relaxation at rate per second over dt
// Frame-rate independent counterpart of Lerp(cur, target, rate*dt)
func ExpSmooth(rate, dt float64) float64 {
	if rate <= 0 || dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-rate*dt)
}

// --- Angles (degrees) ---

// NormalizeSignedDeg maps an angle into (-180, 180]
func NormalizeSignedDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d > 180 {
		d -= 360
	}
	if d <= -180 {
		d += 360
	}
	return d
}

// LerpAngleDeg interpolates along the shortest arc between two angles
func LerpAngleDeg(a, b, t float64) float64 {
	return a + NormalizeSignedDeg(b-a)*Clamp01(t)
}

// --- 2D ---

// Len2 returns the length of a 2D vector
func Len2(v mgl64.Vec2) float64 {
	return math.Hypot(v[0], v[1])
}

// ClampMagnitude2 limits a 2D vector to the given length, NaN components become zero
func ClampMagnitude2(v mgl64.Vec2, maxLen float64) mgl64.Vec2 {
	v = mgl64.Vec2{Sanitize(v[0], 0), Sanitize(v[1], 0)}
	l := Len2(v)
	if l <= maxLen || l < Epsilon {
		return v
	}
	return v.Mul(maxLen / l)
}

// AngleFromUp2 returns the unsigned angle in degrees between v and +Y
func AngleFromUp2(v mgl64.Vec2) float64 {
	l := Len2(v)
	if l < Epsilon {
		return 0
	}
	return mgl64.RadToDeg(math.Acos(Clamp(v[1]/l, -1, 1)))
}
