package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/trickbike/vmath"
)

// processWheel casts the suspension ray from a body-local mount and applies
// spring, lateral grip and, for the rear wheel, drive and brake forces at the contact
func (v *Vehicle) processWheel(w *WheelState, mountLocal mgl64.Vec3, front bool, dt float64) {
	s := v.tuning.Suspension
	rot := v.body.Rotation()
	right, up, forward := vmath.LocalAxes(rot)
	mount := v.body.Position().Add(rot.Rotate(mountLocal))

	heading, side := forward, right
	if front {
		steer := vmath.AxisAngleQuat(v.steerAngle, up)
		heading = steer.Rotate(forward)
		side = steer.Rotate(right)
		w.VisualSteer = v.steerAngle
	}

	hit, ok := v.ray.Raycast(mount, up.Mul(-1), s.RestLength, v.tuning.Ground.Mask)
	if !ok {
		w.LastCompression = 0
		w.Compression = 0
		w.SpringForce = 0
		w.IsGrounded = false
		w.VisualPosition = mount.Sub(up.Mul(s.RestLength))
		return
	}

	compression := vmath.Clamp01(1 - hit.Distance/s.RestLength)
	rate := (compression - w.LastCompression) / dt
	w.LastCompression = compression
	w.Compression = compression
	w.IsGrounded = true
	w.GroundPoint = hit.Point
	w.GroundNormal = hit.Normal
	w.VisualPosition = hit.Point.Add(up.Mul(s.WheelRadius))

	// Rebound damping may pull; a negative spring force is applied as-is
	spring := compression*s.SpringStrength + rate*s.SpringDamper
	w.SpringForce = spring
	v.body.AddForceAtPosition(up.Mul(spring), hit.Point)

	vel := v.body.PointVelocity(hit.Point)
	lateral := vel.Dot(side)
	grip := -lateral * s.GripFactor * (spring / 2)
	v.body.AddForceAtPosition(side.Mul(grip), hit.Point)

	if front {
		return
	}

	if f := v.thrust(vel.Dot(heading)); f > 0 {
		v.body.AddForceAtPosition(heading.Mul(f), hit.Point)
	}
	if b := v.brakeForce(); b > 0 {
		v.body.AddForceAtPosition(heading.Mul(-b), hit.Point)
	}
}

// Wheels returns the front and rear suspension records
func (v *Vehicle) Wheels() (front, rear WheelState) {
	return v.front, v.rear
}
