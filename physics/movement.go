package physics

import "github.com/go-gl/mathgl/mgl64"

// CapSpeed limits the velocity vector magnitude to maxSpeed
// Returns true if velocity was clamped
func CapSpeed(vel *mgl64.Vec3, maxSpeed float64) bool {
	if maxSpeed < 0 {
		maxSpeed = 0
	}
	magSq := vel.LenSqr()
	if magSq <= maxSpeed*maxSpeed {
		return false
	}
	mag := vel.Len()
	if mag == 0 {
		return false
	}
	*vel = vel.Mul(maxSpeed / mag)
	return true
}

// BoxInertia returns the diagonal inertia tensor of a solid box with the given full extents
func BoxInertia(mass float64, size mgl64.Vec3) mgl64.Vec3 {
	w2, h2, l2 := size[0]*size[0], size[1]*size[1], size[2]*size[2]
	k := mass / 12
	return mgl64.Vec3{k * (h2 + l2), k * (w2 + l2), k * (w2 + h2)}
}
