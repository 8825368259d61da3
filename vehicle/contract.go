package vehicle

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/trickbike/physics"
)

// Body is the rigid-body surface the core drives
// Owned by the physics provider; the core reads state and submits forces
type Body interface {
	Position() mgl64.Vec3
	Rotation() mgl64.Quat
	Velocity() mgl64.Vec3
	AngularVelocity() mgl64.Vec3
	PointVelocity(p mgl64.Vec3) mgl64.Vec3

	AddForceAtPosition(f, p mgl64.Vec3)
	AddAcceleration(a mgl64.Vec3)
	AddAngularAcceleration(a mgl64.Vec3)
	AddImpulse(j mgl64.Vec3)
	MoveRotation(q mgl64.Quat)
}

// Raycaster casts filtered rays against the world
// The core only inspects whether a hit occurred and its distance, point and normal
type Raycaster interface {
	Raycast(origin, dir mgl64.Vec3, maxDist float64, mask physics.LayerMask) (physics.RaycastHit, bool)
}

// Respawner is the external respawn collaborator invoked on crash
type Respawner interface {
	Respawn()
}

// Observer receives vehicle events synchronously from the simulation thread
type Observer interface {
	OnVehicleEvent(ev Event)
}

// ObserverFunc adapts a function to Observer
type ObserverFunc func(ev Event)

func (f ObserverFunc) OnVehicleEvent(ev Event) { f(ev) }

var _ Body = (*physics.RigidBody)(nil)
var _ Raycaster = (*physics.World)(nil)
