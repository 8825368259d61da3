package respawn

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/trickbike/vmath"
)

// TriggerSetting declares a checkpoint volume in configuration
type TriggerSetting struct {
	Position    mgl64.Vec3 `mapstructure:"position"`
	HalfExtents mgl64.Vec3 `mapstructure:"half_extents"`
	Yaw         float64    `mapstructure:"yaw"`
}

func (s TriggerSetting) validate() error {
	if !vmath.IsFinite3(s.Position) {
		return fmt.Errorf("position must be finite")
	}
	for i, e := range s.HalfExtents {
		if !(e > 0) {
			return fmt.Errorf("half_extents[%d] must be positive, got %v", i, e)
		}
	}
	return nil
}

// Trigger builds the runtime volume
func (s TriggerSetting) Trigger() *Trigger {
	return NewTrigger(s.Position, s.HalfExtents, vmath.YawQuat(s.Yaw))
}

// Trigger is a one-shot oriented box that saves its own pose when entered
type Trigger struct {
	Position    mgl64.Vec3
	Rotation    mgl64.Quat
	HalfExtents mgl64.Vec3
	fired       bool
}

func NewTrigger(pos, halfExtents mgl64.Vec3, rot mgl64.Quat) *Trigger {
	return &Trigger{Position: pos, Rotation: rot.Normalize(), HalfExtents: halfExtents}
}

// Contains reports whether p is inside the volume
func (t *Trigger) Contains(p mgl64.Vec3) bool {
	local := t.Rotation.Conjugate().Rotate(p.Sub(t.Position))
	for i := 0; i < 3; i++ {
		if local[i] < -t.HalfExtents[i] || local[i] > t.HalfExtents[i] {
			return false
		}
	}
	return true
}

// Check fires once on the first entry
func (t *Trigger) Check(p mgl64.Vec3) bool {
	if t.fired || !t.Contains(p) {
		return false
	}
	t.fired = true
	return true
}

func (t *Trigger) Fired() bool { return t.fired }

// Reset re-arms the trigger
func (t *Trigger) Reset() { t.fired = false }
