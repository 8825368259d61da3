package vehicle

import (
	"github.com/lixenwraith/trickbike/parameter"
	"github.com/lixenwraith/trickbike/vmath"
)

// applyUpright rotates the body's up axis toward world up with an
// acceleration-mode torque proportional to the signed tilt angle in degrees
func (v *Vehicle) applyUpright(dt float64) {
	k := v.tuning.Suspension.UprightStiffness
	if k <= parameter.UprightMinStiffness {
		return
	}

	_, up, _ := vmath.LocalAxes(v.body.Rotation())
	angle, axis := vmath.ToAngleAxis(vmath.FromToRotation(up, vmath.Up))
	angle = vmath.NormalizeSignedDeg(angle)
	if angle == 0 {
		return
	}
	v.body.AddAngularAcceleration(axis.Mul(angle * k * dt))
}
