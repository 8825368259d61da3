package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/trickbike/engine/fsm"
	"github.com/lixenwraith/trickbike/vmath"
)

func newTrickMachine(v *Vehicle) (*fsm.Machine[*Vehicle], fsm.StateID, error) {
	return loadMachine(v, trickGraph, "locked",
		map[string]fsm.GuardFunc[*Vehicle]{
			"CanArm":   (*Vehicle).canArmTrick,
			"MustLock": (*Vehicle).mustLockTrick,
		},
		map[string]fsm.ActionFunc[*Vehicle]{
			"LockTrick":   func(v *Vehicle, _ float64) { v.trick.Locked = true },
			"UnlockTrick": func(v *Vehicle, _ float64) { v.trick.Locked = false },
			"ClearTrick":  (*Vehicle).clearTrick,
			"SampleTrick": (*Vehicle).sampleTrick,
		},
	)
}

func (v *Vehicle) highEnough() bool {
	return !v.grounded && v.distance > v.tuning.Trick.MinHeight
}

// canArmTrick requires height and, when configured, a stick return to neutral
func (v *Vehicle) canArmTrick() bool {
	t := v.tuning.Trick
	if !v.highEnough() {
		return false
	}
	return !t.RequireStickReset || vmath.Len2(v.control.Stick) < t.Deadzone
}

func (v *Vehicle) mustLockTrick() bool {
	return !v.highEnough()
}

func (v *Vehicle) clearTrick(_ float64) {
	v.trick.Vector = mgl64.Vec2{}
	v.trackTrickEdge()
}

func (v *Vehicle) sampleTrick(_ float64) {
	v.trick.Vector = v.control.Stick
	v.trackTrickEdge()
}

func (v *Vehicle) trackTrickEdge() {
	active := v.trick.Active(v.tuning.Trick.Deadzone)
	if active == v.tricking {
		return
	}
	v.tricking = active
	if active {
		v.emit(EventTrickStart, vmath.Len2(v.trick.Vector))
	} else {
		v.emit(EventTrickEnd, 0)
	}
}

// TrickLocked reports whether the trick gesture is suppressed
func (v *Vehicle) TrickLocked() bool { return v.trickFSM.In(v.trickLocked) }
