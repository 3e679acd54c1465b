package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Cuboid is an axis-aligned box made of six rects. Rotated or displaced
// boxes are built by wrapping a Cuboid in RotateY and Translate.
type Cuboid struct {
	Min, Max core.Vec3
	sides    *ShapeList
}

// NewCuboid creates a box spanning the corners p0 (minimum) and p1 (maximum)
func NewCuboid(p0, p1 core.Vec3, mat material.Material) *Cuboid {
	sides := NewShapeList(
		NewXYRect(p0.X, p1.X, p0.Y, p1.Y, p1.Z, mat),
		NewXYRect(p0.X, p1.X, p0.Y, p1.Y, p0.Z, mat),
		NewXZRect(p0.X, p1.X, p0.Z, p1.Z, p1.Y, mat),
		NewXZRect(p0.X, p1.X, p0.Z, p1.Z, p0.Y, mat),
		NewYZRect(p0.Y, p1.Y, p0.Z, p1.Z, p1.X, mat),
		NewYZRect(p0.Y, p1.Y, p0.Z, p1.Z, p0.X, mat),
	)
	return &Cuboid{Min: p0, Max: p1, sides: sides}
}

// Hit returns the closest face hit
func (c *Cuboid) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (material.HitRecord, bool) {
	return c.sides.Hit(ray, tMin, tMax, sampler)
}

// BoundingBox returns the box corners directly
func (c *Cuboid) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABB(c.Min, c.Max), true
}
