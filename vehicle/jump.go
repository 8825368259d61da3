package vehicle

import (
	"github.com/lixenwraith/trickbike/engine/fsm"
	"github.com/lixenwraith/trickbike/vmath"
)

func newJumpMachine(v *Vehicle) (*fsm.Machine[*Vehicle], fsm.StateID, error) {
	return loadMachine(v, jumpGraph, "idle",
		map[string]fsm.GuardFunc[*Vehicle]{
			"ChargeHeldOnGround": func(v *Vehicle) bool { return v.control.Charge && v.grounded },
			"ChargeReleased":     func(v *Vehicle) bool { return !v.control.Charge },
		},
		map[string]fsm.ActionFunc[*Vehicle]{
			"BeginCharge":      (*Vehicle).beginCharge,
			"AccumulateCharge": (*Vehicle).accumulateCharge,
			"ReleaseCharge":    (*Vehicle).releaseCharge,
			"RelaxSquash":      (*Vehicle).relaxSquash,
		},
	)
}

func (v *Vehicle) beginCharge(_ float64) {
	v.jump = JumpCharge{Charging: true}
}

func (v *Vehicle) accumulateCharge(dt float64) {
	j := v.tuning.Jump
	v.jump.Value = vmath.Clamp01(v.jump.Value + dt/j.ChargeTime)
	v.visual.SquashOffset = vmath.Lerp(0, -j.Squash, v.jump.Value)
}

// releaseCharge queues the launch impulse for the next physics tick
// Releases between two physics ticks accumulate; a release while airborne discards the charge
func (v *Vehicle) releaseCharge(_ float64) {
	charge := v.jump.Value
	v.jump = JumpCharge{}

	if !v.grounded {
		v.logger.Debug().Float64("charge", charge).Msg("Jump released airborne, discarded")
		v.emit(EventJumpDiscarded, charge)
		return
	}

	j := v.tuning.Jump
	_, _, forward := vmath.LocalAxes(v.body.Rotation())
	dir := vmath.SafeNormalize(vmath.Up.Mul(j.UpWeight).Add(forward.Mul(j.ForwardWeight)))
	magnitude := vmath.Lerp(j.MinForce, j.MaxForce, charge)

	v.pendingJump = v.pendingJump.Add(dir.Mul(magnitude))
	v.hasPending = true
	v.jumps++

	v.logger.Info().Float64("charge", charge).Float64("impulse", magnitude).Msg("Jump")
	v.emit(EventJump, magnitude)
}

func (v *Vehicle) relaxSquash(dt float64) {
	v.visual.SquashOffset = vmath.Lerp(v.visual.SquashOffset, 0, vmath.ExpSmooth(v.tuning.Jump.RelaxSpeed, dt))
}

// Charging reports whether a jump charge is held
func (v *Vehicle) Charging() bool { return !v.jumpFSM.In(v.jumpIdle) }
