package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/trickbike/vmath"
)

func (v *Vehicle) updateLean(dt float64) {
	vt := v.tuning.Visual
	target := 0.0
	if v.grounded {
		target = -v.control.Steer * vt.LeanAngle
	}
	v.visual.LeanAngle = vmath.LerpAngleDeg(v.visual.LeanAngle, target, vmath.ExpSmooth(vt.LeanSpeed, dt))
}

// updateExplosion scatters parts with the trick vector and relaxes them back
// A landing with parts still scattered past the threshold is a crash
func (v *Vehicle) updateExplosion(dt float64) {
	t := v.tuning.Trick
	if v.landed && v.visual.Explosion > t.CrashThreshold {
		v.crash()
		return
	}

	if v.trick.Active(t.Deadzone) {
		k := vmath.ExpSmooth(t.Speed, dt)
		target := v.trick.Vector.Mul(t.PartSpread)
		v.visual.PartOffset = v.visual.PartOffset.Add(target.Sub(v.visual.PartOffset).Mul(k))
		v.visual.PartSpin += v.trick.Vector.X() * t.PartSpinSpeed * dt
	} else {
		k := vmath.ExpSmooth(t.ReturnSpeed, dt)
		v.visual.PartOffset = v.visual.PartOffset.Mul(1 - k)
		v.visual.PartSpin = vmath.Lerp(v.visual.PartSpin, 0, k)
	}
	v.visual.Explosion = vmath.Clamp01(vmath.Len2(v.visual.PartOffset) / t.PartSpread)
}

// crash snaps parts home and hands off to the respawn collaborator exactly once per landing
func (v *Vehicle) crash() {
	amount := v.visual.Explosion
	v.visual.PartOffset = mgl64.Vec2{}
	v.visual.PartSpin = 0
	v.visual.Explosion = 0
	v.crashes++

	v.logger.Info().Float64("explosion", amount).Uint64("crashes", v.crashes).Msg("Crash on landing")
	v.emit(EventCrash, amount)

	if v.respawner == nil {
		v.logger.Warn().Msg("Crash without respawner bound")
		return
	}
	v.respawner.Respawn()
}

// Visual returns the cosmetic pose
func (v *Vehicle) Visual() Visual { return v.visual }
