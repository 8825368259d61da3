package physics

import "github.com/go-gl/mathgl/mgl64"

// LayerMask is a collision-category bitmask used to filter raycasts
type LayerMask uint32

const (
	LayerDefault LayerMask = 1 << 0
	LayerGround  LayerMask = 1 << 3
	LayerProps   LayerMask = 1 << 4
	LayerAll     LayerMask = ^LayerMask(0)
)

// Contains reports whether any bit of l is set in m
func (m LayerMask) Contains(l LayerMask) bool {
	return m&l != 0
}

// RaycastHit describes the closest surface intersection of a ray
type RaycastHit struct {
	Point    mgl64.Vec3
	Normal   mgl64.Vec3
	Distance float64
	Layer    LayerMask
}

// Terrain is a static surface that can be raycast and sampled for contact
type Terrain interface {
	// Raycast returns the first hit along a unit direction within maxDist
	Raycast(origin, dir mgl64.Vec3, maxDist float64) (RaycastHit, bool)
	// HeightAt returns the surface height and normal below (x, z)
	HeightAt(x, z float64) (float64, mgl64.Vec3)
	// Layer returns the collision category of the surface
	Layer() LayerMask
}
