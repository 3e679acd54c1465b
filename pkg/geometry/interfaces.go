package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Shape interface for objects that can be hit by rays.
//
// Hit reports the closest intersection with t in [tMin, tMax]. The sampler
// is the calling task's random source; only participating media draw from it.
// BoundingBox returns false for objects without finite bounds.
type Shape interface {
	Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (material.HitRecord, bool)
	BoundingBox(time0, time1 float64) (core.AABB, bool)
}
