package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// mediumExitOffset separates the exit search from the entry point
const mediumExitOffset = 0.0001

// ConstantMedium is a homogeneous participating medium (smoke, fog) filling
// the interior of a closed boundary shape
type ConstantMedium struct {
	Boundary      Shape
	Density       float64
	PhaseFunction material.Material
	negInvDensity float64
}

// NewConstantMedium creates a medium of the given density with a phase function material
func NewConstantMedium(boundary Shape, density float64, phase material.Material) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		Density:       density,
		PhaseFunction: phase,
		negInvDensity: -1 / density,
	}
}

// NewConstantMediumColor creates a medium with an isotropic phase function of the given color
func NewConstantMediumColor(boundary Shape, density float64, color core.Vec3) *ConstantMedium {
	return NewConstantMedium(boundary, density, material.NewIsotropic(color))
}

// Hit samples a free-flight distance through the medium. The ray scatters
// inside the boundary with probability growing with the distance it travels there.
func (m *ConstantMedium) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (material.HitRecord, bool) {
	entry, ok := m.Boundary.Hit(ray, math.Inf(-1), math.Inf(1), sampler)
	if !ok {
		return material.HitRecord{}, false
	}
	exit, ok := m.Boundary.Hit(ray, entry.T+mediumExitOffset, math.Inf(1), sampler)
	if !ok {
		return material.HitRecord{}, false
	}

	t1 := max(entry.T, tMin)
	t2 := min(exit.T, tMax)
	if t1 >= t2 {
		return material.HitRecord{}, false
	}
	if t1 < 0 {
		t1 = 0
	}

	rayLength := ray.Direction.Length()
	distanceInside := (t2 - t1) * rayLength
	hitDistance := m.negInvDensity * math.Log(sampler.Get1D())
	if hitDistance > distanceInside {
		return material.HitRecord{}, false
	}

	t := t1 + hitDistance/rayLength
	return material.HitRecord{
		T:         t,
		Point:     ray.At(t),
		Normal:    core.NewVec3(1, 0, 0), // arbitrary
		FrontFace: true,                  // arbitrary
		Material:  m.PhaseFunction,
	}, true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return m.Boundary.BoundingBox(time0, time1)
}
