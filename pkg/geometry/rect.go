package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// rectPadding thickens the box of a flat rect so the slab test has volume
const rectPadding = 0.0001

// Plane identifies which coordinate plane an axis-aligned rect lies in
type Plane int

const (
	PlaneXY Plane = iota // fixed Z
	PlaneXZ              // fixed Y
	PlaneYZ              // fixed X
)

// axes returns the two in-plane axes followed by the fixed axis
func (p Plane) axes() (a, b, k int) {
	switch p {
	case PlaneXY:
		return 0, 1, 2
	case PlaneXZ:
		return 0, 2, 1
	default:
		return 1, 2, 0
	}
}

func (p Plane) String() string {
	switch p {
	case PlaneXY:
		return "xy"
	case PlaneXZ:
		return "xz"
	default:
		return "yz"
	}
}

// AxisAlignedRect is a rectangle at a fixed coordinate K of one axis, spanning
// [A0,A1] x [B0,B1] along the other two. Its outward normal is the +axis direction.
type AxisAlignedRect struct {
	Plane    Plane
	A0, A1   float64
	B0, B1   float64
	K        float64
	Material material.Material
}

// NewXYRect creates a rect in the plane z=k spanning [x0,x1] x [y0,y1]
func NewXYRect(x0, x1, y0, y1, k float64, mat material.Material) *AxisAlignedRect {
	return &AxisAlignedRect{Plane: PlaneXY, A0: x0, A1: x1, B0: y0, B1: y1, K: k, Material: mat}
}

// NewXZRect creates a rect in the plane y=k spanning [x0,x1] x [z0,z1]
func NewXZRect(x0, x1, z0, z1, k float64, mat material.Material) *AxisAlignedRect {
	return &AxisAlignedRect{Plane: PlaneXZ, A0: x0, A1: x1, B0: z0, B1: z1, K: k, Material: mat}
}

// NewYZRect creates a rect in the plane x=k spanning [y0,y1] x [z0,z1]
func NewYZRect(y0, y1, z0, z1, k float64, mat material.Material) *AxisAlignedRect {
	return &AxisAlignedRect{Plane: PlaneYZ, A0: y0, A1: y1, B0: z0, B1: z1, K: k, Material: mat}
}

// Hit intersects the ray with the rect's plane and checks the 2D extent
func (r *AxisAlignedRect) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (material.HitRecord, bool) {
	a, b, k := r.Plane.axes()

	dk := ray.Direction.Axis(k)
	if dk == 0 {
		// Parallel rays never cross the plane
		return material.HitRecord{}, false
	}

	t := (r.K - ray.Origin.Axis(k)) / dk
	if t < tMin || t > tMax {
		return material.HitRecord{}, false
	}

	pa := ray.Origin.Axis(a) + t*ray.Direction.Axis(a)
	pb := ray.Origin.Axis(b) + t*ray.Direction.Axis(b)
	if pa < r.A0 || pa > r.A1 || pb < r.B0 || pb > r.B1 {
		return material.HitRecord{}, false
	}

	hit := material.HitRecord{
		T:        t,
		Point:    ray.At(t),
		UV:       core.NewVec2((pa-r.A0)/(r.A1-r.A0), (pb-r.B0)/(r.B1-r.B0)),
		Material: r.Material,
	}
	hit.SetFaceNormal(ray, r.outwardNormal())
	return hit, true
}

func (r *AxisAlignedRect) outwardNormal() core.Vec3 {
	switch r.Plane {
	case PlaneXY:
		return core.NewVec3(0, 0, 1)
	case PlaneXZ:
		return core.NewVec3(0, 1, 0)
	default:
		return core.NewVec3(1, 0, 0)
	}
}

// BoundingBox returns the rect's extent padded along the fixed axis
func (r *AxisAlignedRect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	k0, k1 := r.K-rectPadding, r.K+rectPadding
	switch r.Plane {
	case PlaneXY:
		return core.NewAABB(core.NewVec3(r.A0, r.B0, k0), core.NewVec3(r.A1, r.B1, k1)), true
	case PlaneXZ:
		return core.NewAABB(core.NewVec3(r.A0, k0, r.B0), core.NewVec3(r.A1, k1, r.B1)), true
	default:
		return core.NewAABB(core.NewVec3(k0, r.A0, r.B0), core.NewVec3(k1, r.A1, r.B1)), true
	}
}
