package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/trickbike/vmath"
)

// DefaultGravity is standard earth gravity along -Y
var DefaultGravity = mgl64.Vec3{0, -9.81, 0}

// ContactFriction is the fraction of tangential velocity kept per chassis contact
const ContactFriction = 0.98

// World owns static terrain and dynamic bodies
type World struct {
	Gravity mgl64.Vec3

	bodies  []*RigidBody
	terrain []Terrain
}

// NewWorld creates an empty world with default gravity
func NewWorld() *World {
	return &World{Gravity: DefaultGravity}
}

// AddBody registers a body for integration
func (w *World) AddBody(b *RigidBody) {
	w.bodies = append(w.bodies, b)
}

// AddTerrain registers a static surface
func (w *World) AddTerrain(t Terrain) {
	w.terrain = append(w.terrain, t)
}

// Terrain returns the registered surfaces
func (w *World) Terrain() []Terrain {
	return w.terrain
}

// Raycast returns the nearest hit among surfaces matching mask
func (w *World) Raycast(origin, dir mgl64.Vec3, maxDist float64, mask LayerMask) (RaycastHit, bool) {
	if maxDist <= 0 || math.IsNaN(maxDist) || !vmath.IsFinite3(origin) {
		return RaycastHit{}, false
	}
	d := vmath.SafeNormalize(dir)
	if d == (mgl64.Vec3{}) {
		return RaycastHit{}, false
	}

	var best RaycastHit
	found := false
	for _, t := range w.terrain {
		if !mask.Contains(t.Layer()) {
			continue
		}
		hit, ok := t.Raycast(origin, d, maxDist)
		if ok && (!found || hit.Distance < best.Distance) {
			best = hit
			found = true
		}
	}
	return best, found
}

// GroundHeight returns the highest surface below (x, z) and its normal
func (w *World) GroundHeight(x, z float64) (float64, mgl64.Vec3, bool) {
	best := math.Inf(-1)
	normal := vmath.Up
	for _, t := range w.terrain {
		h, n := t.HeightAt(x, z)
		if h > best {
			best, normal = h, n
		}
	}
	return best, normal, len(w.terrain) > 0
}

// Step integrates all bodies then resolves chassis contact against terrain
func (w *World) Step(dt float64) {
	for _, b := range w.bodies {
		b.Step(dt, w.Gravity)
		w.resolveContact(b)
	}
}

// resolveContact keeps the origin sphere and every contact point above the surface
func (w *World) resolveContact(b *RigidBody) {
	if len(w.terrain) == 0 {
		return
	}
	if b.cfg.ContactRadius > 0 {
		w.resolvePoint(b, mgl64.Vec3{}, b.cfg.ContactRadius)
	}
	for _, c := range b.cfg.Contacts {
		if c.Radius > 0 {
			w.resolvePoint(b, c.Local, c.Radius)
		}
	}
}

// resolvePoint pushes one sphere out along the surface normal and cancels the
// inward velocity of that point with an impulse, so off-center contacts also correct rotation
func (w *World) resolvePoint(b *RigidBody, local mgl64.Vec3, r float64) {
	p := b.TransformPoint(local)
	h, n, _ := w.GroundHeight(p[0], p[2])

	// Distance from the point to the surface plane along its normal
	penetration := r - (p[1]-h)*n[1]
	if penetration <= 0 {
		return
	}
	b.pos = b.pos.Add(n.Mul(penetration))
	p = p.Add(n.Mul(penetration))

	vn := b.PointVelocity(p).Dot(n)
	if vn >= 0 {
		return
	}
	arm := p.Sub(b.WorldCenterOfMass())
	k := b.invMass + n.Dot(b.worldInvInertiaMul(arm.Cross(n)).Cross(arm))
	j := n.Mul(-vn / k)

	b.vel = b.vel.Add(j.Mul(b.invMass)).Mul(ContactFriction)
	b.angVel = b.angVel.Add(b.worldInvInertiaMul(arm.Cross(j)))
}
