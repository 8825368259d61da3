package vehicle

import "github.com/lixenwraith/trickbike/vmath"

// classifyGround probes straight down from the body origin
// The first classification seeds the previous state so spawning does not count as a landing
func (v *Vehicle) classifyGround() {
	g := v.tuning.Ground
	hit, ok := v.ray.Raycast(v.body.Position(), vmath.Down, g.ProbeLength, g.Mask)
	if ok {
		v.distance = hit.Distance
		v.grounded = hit.Distance < g.GroundedThreshold
	} else {
		v.distance = g.MissDistance
		v.grounded = false
	}

	if !v.classified {
		v.classified = true
		v.wasGrounded = v.grounded
	}

	v.landed = v.grounded && !v.wasGrounded
	switch {
	case v.landed:
		v.logger.Debug().Float64("t", v.time).Msg("Landed")
		v.emit(EventLand, v.body.Velocity().Len())
	case !v.grounded && v.wasGrounded:
		v.logger.Debug().Float64("t", v.time).Msg("Takeoff")
		v.emit(EventTakeoff, v.body.Velocity().Len())
	}
}
