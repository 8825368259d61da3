package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/trickbike/input"
	"github.com/lixenwraith/trickbike/physics"
)

type appliedForce struct {
	force mgl64.Vec3
	point mgl64.Vec3
}

// fakeBody records submitted forces without integrating
type fakeBody struct {
	pos    mgl64.Vec3
	rot    mgl64.Quat
	vel    mgl64.Vec3
	angVel mgl64.Vec3

	forces   []appliedForce
	accels   []mgl64.Vec3
	angAccel []mgl64.Vec3
	impulses []mgl64.Vec3
	moves    int
}

func newFakeBody() *fakeBody {
	return &fakeBody{pos: mgl64.Vec3{0, 0.5, 0}, rot: mgl64.QuatIdent()}
}

func (b *fakeBody) Position() mgl64.Vec3                  { return b.pos }
func (b *fakeBody) Rotation() mgl64.Quat                  { return b.rot }
func (b *fakeBody) Velocity() mgl64.Vec3                  { return b.vel }
func (b *fakeBody) AngularVelocity() mgl64.Vec3           { return b.angVel }
func (b *fakeBody) PointVelocity(_ mgl64.Vec3) mgl64.Vec3 { return b.vel }
func (b *fakeBody) AddForceAtPosition(f, p mgl64.Vec3) {
	b.forces = append(b.forces, appliedForce{force: f, point: p})
}
func (b *fakeBody) AddAcceleration(a mgl64.Vec3)        { b.accels = append(b.accels, a) }
func (b *fakeBody) AddAngularAcceleration(a mgl64.Vec3) { b.angAccel = append(b.angAccel, a) }
func (b *fakeBody) AddImpulse(j mgl64.Vec3)             { b.impulses = append(b.impulses, j) }
func (b *fakeBody) MoveRotation(q mgl64.Quat) {
	b.rot = q
	b.moves++
}

func (b *fakeBody) clear() {
	b.forces = nil
	b.accels = nil
	b.angAccel = nil
	b.impulses = nil
	b.moves = 0
}

// fakeRay answers the long ground probe and the short wheel rays separately
type fakeRay struct {
	probeLength float64

	groundDist float64
	groundHit  bool
	wheelDist  float64
	wheelHit   bool
}

func (r *fakeRay) Raycast(origin, dir mgl64.Vec3, maxDist float64, _ physics.LayerMask) (physics.RaycastHit, bool) {
	dist, ok := r.wheelDist, r.wheelHit
	if maxDist >= r.probeLength {
		dist, ok = r.groundDist, r.groundHit
	}
	if !ok || dist > maxDist {
		return physics.RaycastHit{}, false
	}
	return physics.RaycastHit{
		Point:    origin.Add(dir.Mul(dist)),
		Normal:   mgl64.Vec3{0, 1, 0},
		Distance: dist,
		Layer:    physics.LayerGround,
	}, true
}

// stick is a mutable keyboard-style source
type stick struct {
	frame input.Frame
}

func (s *stick) Poll() input.Frame { return s.frame }

type countingRespawner struct {
	calls int
}

func (r *countingRespawner) Respawn() { r.calls++ }

type eventLog struct {
	events []Event
}

func (l *eventLog) OnVehicleEvent(ev Event) { l.events = append(l.events, ev) }

func (l *eventLog) count(t EventType) int {
	n := 0
	for _, ev := range l.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

// tunableStick is a stick that also accepts the gesture threshold
type tunableStick struct {
	stick
	thresholds []float64
}

func (s *tunableStick) SetActionThreshold(v float64) { s.thresholds = append(s.thresholds, v) }
