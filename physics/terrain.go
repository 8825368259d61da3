package physics

import (
	"fmt"
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/lixenwraith/trickbike/vmath"
)

// Plane is an infinite horizontal ground at a fixed height
type Plane struct {
	Height float64
	Mask   LayerMask
}

// NewPlane creates a ground plane on the given layer
func NewPlane(height float64, layer LayerMask) *Plane {
	return &Plane{Height: height, Mask: layer}
}

func (p *Plane) Layer() LayerMask { return p.Mask }

func (p *Plane) HeightAt(x, z float64) (float64, mgl64.Vec3) {
	return p.Height, vmath.Up
}

// Raycast intersects from above only, a ray starting below the surface misses
func (p *Plane) Raycast(origin, dir mgl64.Vec3, maxDist float64) (RaycastHit, bool) {
	if dir[1] >= 0 || origin[1] < p.Height {
		return RaycastHit{}, false
	}
	t := (p.Height - origin[1]) / dir[1]
	if t < 0 || t > maxDist {
		return RaycastHit{}, false
	}
	return RaycastHit{
		Point:    origin.Add(dir.Mul(t)),
		Normal:   vmath.Up,
		Distance: t,
		Layer:    p.Mask,
	}, true
}

// ProfilePoint is one vertex of a height profile
type ProfilePoint struct {
	Z float64 `mapstructure:"z"`
	Y float64 `mapstructure:"y"`
}

// Profile is a piecewise-linear ground height along Z, constant along X
// Heights beyond the first and last vertex extend flat
type Profile struct {
	points []ProfilePoint
	mask   LayerMask

	// Ray march resolution
	Step       float64
	Iterations int
}

// NewProfile creates a profile from at least two vertices, sorted by Z
func NewProfile(points []ProfilePoint, layer LayerMask) (*Profile, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("profile needs at least 2 points, got %d", len(points))
	}
	pts := make([]ProfilePoint, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool { return pts[i].Z < pts[j].Z })
	for i := 1; i < len(pts); i++ {
		if pts[i].Z == pts[i-1].Z {
			return nil, fmt.Errorf("profile has duplicate z=%.3f", pts[i].Z)
		}
	}
	return &Profile{points: pts, mask: layer, Step: 0.1, Iterations: 24}, nil
}

func (p *Profile) Layer() LayerMask { return p.mask }

// Points returns a copy of the vertices
func (p *Profile) Points() []ProfilePoint {
	out := make([]ProfilePoint, len(p.points))
	copy(out, p.points)
	return out
}

// segment returns the index i such that points[i].Z <= z < points[i+1].Z, or -1/len-1 outside
func (p *Profile) segment(z float64) int {
	if z < p.points[0].Z {
		return -1
	}
	i := sort.Search(len(p.points), func(i int) bool { return p.points[i].Z > z })
	return i - 1
}

func (p *Profile) HeightAt(x, z float64) (float64, mgl64.Vec3) {
	i := p.segment(z)
	if i < 0 {
		return p.points[0].Y, vmath.Up
	}
	if i >= len(p.points)-1 {
		return p.points[len(p.points)-1].Y, vmath.Up
	}
	a, b := p.points[i], p.points[i+1]
	slope := (b.Y - a.Y) / (b.Z - a.Z)
	h := a.Y + (z-a.Z)*slope
	return h, vmath.SafeNormalize(mgl64.Vec3{0, 1, -slope})
}

// Raycast marches along the ray and refines the first crossing by bisection
func (p *Profile) Raycast(origin, dir mgl64.Vec3, maxDist float64) (RaycastHit, bool) {
	above := func(t float64) float64 {
		q := origin.Add(dir.Mul(t))
		h, _ := p.HeightAt(q[0], q[2])
		return q[1] - h
	}
	if above(0) < 0 {
		return RaycastHit{}, false
	}
	step := p.Step
	if step <= 0 {
		step = 0.1
	}

	lo := 0.0
	for lo < maxDist {
		hi := math.Min(lo+step, maxDist)
		if above(hi) > 0 {
			lo = hi
			continue
		}
		for range p.Iterations {
			mid := 0.5 * (lo + hi)
			if above(mid) > 0 {
				lo = mid
			} else {
				hi = mid
			}
		}
		point := origin.Add(dir.Mul(hi))
		_, n := p.HeightAt(point[0], point[2])
		return RaycastHit{Point: point, Normal: n, Distance: hi, Layer: p.mask}, true
	}
	return RaycastHit{}, false
}
