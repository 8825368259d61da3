package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/trickbike/input"
	"github.com/lixenwraith/trickbike/vmath"
)

// resolveControl maps an input frame to the drive command
// Drive axes are zeroed while airborne; charge, boost and the trick stick pass through
func (v *Vehicle) resolveControl(f input.Frame, dt float64) {
	d := v.tuning.Drive
	c := Control{Stick: f.Stick()}

	if g := f.Gesture; g != nil {
		c.Gesture = true
		c.Charge = g.IsCharging
		c.Boost = g.IsNitro
		if v.grounded {
			c.Steer = g.Horizontal
			c.Throttle = 1
			if g.IsCharging {
				c.Throttle = d.ChargeThrottleScale
			}
		}
	} else {
		c.Charge = f.Primary
		c.Boost = f.Boost
		if v.grounded {
			c.Steer = f.Axis.X()
			c.Throttle = max(f.Axis.Y(), 0)
			c.Brake = max(-f.Axis.Y(), 0)
		}
	}
	v.control = c

	target := c.Steer * d.MaxSteerAngle
	v.steerAngle = vmath.Lerp(v.steerAngle, target, vmath.ExpSmooth(d.SteerSpeed, dt))
}

// ActivateBoost switches the boost multipliers, emitting on edges
func (v *Vehicle) ActivateBoost(on bool) {
	if on == v.boosting {
		return
	}
	v.boosting = on
	if on {
		v.logger.Debug().Float64("nitro", v.nitro.Current).Msg("Boost on")
		v.emit(EventBoostStart, v.nitro.Current)
	} else {
		v.logger.Debug().Float64("nitro", v.nitro.Current).Msg("Boost off")
		v.emit(EventBoostStop, v.nitro.Current)
	}
}

// Boosting reports whether the boost multipliers are active
func (v *Vehicle) Boosting() bool { return v.boosting }

// SpeedCap returns the current top speed including boost
func (v *Vehicle) SpeedCap() float64 {
	if v.boosting {
		return v.tuning.Drive.MaxSpeed * v.tuning.Drive.BoostSpeedMultiplier
	}
	return v.tuning.Drive.MaxSpeed
}

// thrust returns the rear-wheel drive force magnitude, zero at or above the cap
func (v *Vehicle) thrust(forwardVel float64) float64 {
	d := v.tuning.Drive
	if v.control.Throttle <= 0 {
		return 0
	}
	limit := v.SpeedCap()
	if forwardVel >= limit || v.body.Velocity().Len() >= limit {
		return 0
	}
	f := v.control.Throttle * d.AccelerationForce
	if v.boosting {
		f *= d.BoostAccelMultiplier
	}
	return f
}

// brakeForce returns the braking magnitude opposing the wheel heading
func (v *Vehicle) brakeForce() float64 {
	return v.control.Brake * v.tuning.Drive.AccelerationForce * v.tuning.Drive.BrakeRatio
}

// applyChassis handles body-level forces: direct yaw on the ground, extra gravity in the air
func (v *Vehicle) applyChassis(dt float64) {
	d := v.tuning.Drive
	if v.grounded {
		if v.control.Steer != 0 && d.TurnSpeed > 0 {
			yaw := vmath.YawQuat(v.control.Steer * d.TurnSpeed * dt)
			v.body.MoveRotation(v.body.Rotation().Mul(yaw).Normalize())
		}
		return
	}
	if d.ExtraGravity > 0 {
		v.body.AddAcceleration(mgl64.Vec3{0, -d.ExtraGravity, 0})
	}
}
