package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// YawQuat returns a rotation of deg degrees about world up
func YawQuat(deg float64) mgl64.Quat {
	return mgl64.QuatRotate(mgl64.DegToRad(deg), Up)
}

// AxisAngleQuat returns a rotation of deg degrees about axis, identity for a degenerate axis
func AxisAngleQuat(deg float64, axis mgl64.Vec3) mgl64.Quat {
	a := SafeNormalize(axis)
	if a == (mgl64.Vec3{}) {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatRotate(mgl64.DegToRad(deg), a)
}

// FromToRotation returns the shortest rotation taking direction from onto direction to
func FromToRotation(from, to mgl64.Vec3) mgl64.Quat {
	if SafeNormalize(from) == (mgl64.Vec3{}) || SafeNormalize(to) == (mgl64.Vec3{}) {
		return mgl64.QuatIdent()
	}
	return mgl64.QuatBetweenVectors(from, to).Normalize()
}

// ToAngleAxis decomposes q into an angle in degrees within [0, 360) and a unit axis
// Identity yields (0, Right)
func ToAngleAxis(q mgl64.Quat) (float64, mgl64.Vec3) {
	q = q.Normalize()
	w := Clamp(q.W, -1, 1)
	angle := 2 * math.Acos(w)
	s := math.Sqrt(1 - w*w)
	if s < 1e-6 {
		return 0, Right
	}
	axis := q.V.Mul(1 / s)
	deg := mgl64.RadToDeg(angle)
	if deg >= 360 {
		deg -= 360
	}
	return deg, axis
}

// LocalAxes returns the world-space right, up and forward axes of an orientation
func LocalAxes(q mgl64.Quat) (right, up, forward mgl64.Vec3) {
	return q.Rotate(Right), q.Rotate(Up), q.Rotate(Forward)
}

// IsFiniteQuat reports whether q holds only real numbers and a non-zero length
func IsFiniteQuat(q mgl64.Quat) bool {
	if math.IsNaN(q.W) || math.IsInf(q.W, 0) || !IsFinite3(q.V) {
		return false
	}
	return q.Len() > Epsilon
}
