package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/trickbike/vmath"
)

// BodyConfig holds the static properties of a rigid body
type BodyConfig struct {
	Mass            float64
	Size            mgl64.Vec3 // box extents used for inertia
	CenterOfMass    mgl64.Vec3 // local offset from the body origin
	LinearDamping   float64
	AngularDamping  float64
	MaxAngularSpeed float64 // rad/s, 0 = unlimited
	GravityScale    float64
	ContactRadius   float64 // chassis sphere at the origin, 0 = no terrain contact

	// Contacts are extra body-local spheres kept above terrain, e.g. at the wheel mounts
	Contacts []ContactPoint
}

// ContactPoint is a body-local sphere resolved against terrain after each step
type ContactPoint struct {
	Local  mgl64.Vec3
	Radius float64
}

// RigidBody is a single dynamic body integrated with semi-implicit Euler
// Position is the body origin; the center of mass sits at Position + R*CenterOfMass
type RigidBody struct {
	cfg        BodyConfig
	invMass    float64
	invInertia mgl64.Vec3 // local diagonal

	pos    mgl64.Vec3
	rot    mgl64.Quat
	vel    mgl64.Vec3
	angVel mgl64.Vec3

	// Accumulators, cleared after each Step
	force    mgl64.Vec3
	torque   mgl64.Vec3
	accel    mgl64.Vec3
	angAccel mgl64.Vec3
}

// NewRigidBody creates a body at rest with identity orientation
func NewRigidBody(cfg BodyConfig) *RigidBody {
	if cfg.Mass <= 0 {
		cfg.Mass = 1
	}
	b := &RigidBody{
		cfg:     cfg,
		invMass: 1 / cfg.Mass,
		rot:     mgl64.QuatIdent(),
	}
	inertia := BoxInertia(cfg.Mass, cfg.Size)
	for i, v := range inertia {
		if v > vmath.Epsilon {
			b.invInertia[i] = 1 / v
		}
	}
	return b
}

// --- Read access ---

func (b *RigidBody) Position() mgl64.Vec3        { return b.pos }
func (b *RigidBody) Rotation() mgl64.Quat        { return b.rot }
func (b *RigidBody) Velocity() mgl64.Vec3        { return b.vel }
func (b *RigidBody) AngularVelocity() mgl64.Vec3 { return b.angVel }
func (b *RigidBody) Mass() float64               { return b.cfg.Mass }
func (b *RigidBody) Config() BodyConfig          { return b.cfg }

// WorldCenterOfMass returns the center of mass in world space
func (b *RigidBody) WorldCenterOfMass() mgl64.Vec3 {
	return b.pos.Add(b.rot.Rotate(b.cfg.CenterOfMass))
}

// TransformPoint maps a local point to world space
func (b *RigidBody) TransformPoint(local mgl64.Vec3) mgl64.Vec3 {
	return b.pos.Add(b.rot.Rotate(local))
}

// PointVelocity returns the velocity of a world-space point rigidly attached to the body
func (b *RigidBody) PointVelocity(p mgl64.Vec3) mgl64.Vec3 {
	r := p.Sub(b.WorldCenterOfMass())
	return b.vel.Add(b.angVel.Cross(r))
}

// --- Force submission, non-finite inputs are dropped ---

// AddForce accumulates a force through the center of mass
func (b *RigidBody) AddForce(f mgl64.Vec3) {
	if !vmath.IsFinite3(f) {
		return
	}
	b.force = b.force.Add(f)
}

// AddForceAtPosition accumulates a force and the torque it produces about the center of mass
func (b *RigidBody) AddForceAtPosition(f, p mgl64.Vec3) {
	if !vmath.IsFinite3(f) || !vmath.IsFinite3(p) {
		return
	}
	b.force = b.force.Add(f)
	b.torque = b.torque.Add(p.Sub(b.WorldCenterOfMass()).Cross(f))
}

// AddAcceleration accumulates a mass-independent linear acceleration
func (b *RigidBody) AddAcceleration(a mgl64.Vec3) {
	if !vmath.IsFinite3(a) {
		return
	}
	b.accel = b.accel.Add(a)
}

// AddImpulse changes linear velocity immediately by j/m
func (b *RigidBody) AddImpulse(j mgl64.Vec3) {
	if !vmath.IsFinite3(j) {
		return
	}
	b.vel = b.vel.Add(j.Mul(b.invMass))
}

// AddTorque accumulates a world-space torque
func (b *RigidBody) AddTorque(t mgl64.Vec3) {
	if !vmath.IsFinite3(t) {
		return
	}
	b.torque = b.torque.Add(t)
}

// AddAngularAcceleration accumulates an inertia-independent angular acceleration in rad/s²
func (b *RigidBody) AddAngularAcceleration(a mgl64.Vec3) {
	if !vmath.IsFinite3(a) {
		return
	}
	b.angAccel = b.angAccel.Add(a)
}

// --- Kinematic overrides ---

// MoveRotation sets the orientation about the body origin, velocities are kept
func (b *RigidBody) MoveRotation(q mgl64.Quat) {
	if !vmath.IsFiniteQuat(q) {
		return
	}
	b.rot = q.Normalize()
}

// Teleport places the body at a pose without touching velocities
func (b *RigidBody) Teleport(pos mgl64.Vec3, rot mgl64.Quat) {
	if vmath.IsFinite3(pos) {
		b.pos = pos
	}
	if vmath.IsFiniteQuat(rot) {
		b.rot = rot.Normalize()
	}
}

// ResetMotion zeroes velocities and pending accumulators
func (b *RigidBody) ResetMotion() {
	b.vel = mgl64.Vec3{}
	b.angVel = mgl64.Vec3{}
	b.clearAccumulators()
}

// SetVelocity overrides linear velocity
func (b *RigidBody) SetVelocity(v mgl64.Vec3) {
	if vmath.IsFinite3(v) {
		b.vel = v
	}
}

func (b *RigidBody) clearAccumulators() {
	b.force = mgl64.Vec3{}
	b.torque = mgl64.Vec3{}
	b.accel = mgl64.Vec3{}
	b.angAccel = mgl64.Vec3{}
}

// worldInvInertiaMul returns I_world⁻¹ * t with I_world⁻¹ = R * diag(invI) * Rᵀ
func (b *RigidBody) worldInvInertiaMul(t mgl64.Vec3) mgl64.Vec3 {
	local := b.rot.Conjugate().Rotate(t)
	local = mgl64.Vec3{local[0] * b.invInertia[0], local[1] * b.invInertia[1], local[2] * b.invInertia[2]}
	return b.rot.Rotate(local)
}

// Step integrates the body by dt under gravity and clears accumulators
func (b *RigidBody) Step(dt float64, gravity mgl64.Vec3) {
	if dt <= 0 || math.IsNaN(dt) || math.IsInf(dt, 0) {
		b.clearAccumulators()
		return
	}
	prevPos, prevRot := b.pos, b.rot
	com := b.WorldCenterOfMass()

	// Linear: v += (F/m + a + g*scale) dt
	a := b.force.Mul(b.invMass).Add(b.accel).Add(gravity.Mul(b.cfg.GravityScale))
	b.vel = b.vel.Add(a.Mul(dt))
	if b.cfg.LinearDamping > 0 {
		b.vel = b.vel.Mul(1 / (1 + b.cfg.LinearDamping*dt))
	}

	// Angular: w += (I⁻¹τ + α) dt
	alpha := b.worldInvInertiaMul(b.torque).Add(b.angAccel)
	b.angVel = b.angVel.Add(alpha.Mul(dt))
	if b.cfg.AngularDamping > 0 {
		b.angVel = b.angVel.Mul(1 / (1 + b.cfg.AngularDamping*dt))
	}
	if b.cfg.MaxAngularSpeed > 0 {
		CapSpeed(&b.angVel, b.cfg.MaxAngularSpeed)
	}

	com = com.Add(b.vel.Mul(dt))

	// q' = q + 0.5 * (0, w) * q * dt
	spin := mgl64.Quat{W: 0, V: b.angVel}.Mul(b.rot)
	b.rot = mgl64.Quat{
		W: b.rot.W + 0.5*spin.W*dt,
		V: b.rot.V.Add(spin.V.Mul(0.5 * dt)),
	}.Normalize()

	b.pos = com.Sub(b.rot.Rotate(b.cfg.CenterOfMass))
	b.clearAccumulators()

	if !vmath.IsFinite3(b.pos) || !vmath.IsFinite3(b.vel) || !vmath.IsFinite3(b.angVel) || !vmath.IsFiniteQuat(b.rot) {
		// Recover to a resting state at the last known pose
		b.pos, b.rot = prevPos, prevRot
		b.vel = mgl64.Vec3{}
		b.angVel = mgl64.Vec3{}
	}
}
