package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ShapeList is an ordered collection of shapes tested by linear scan
type ShapeList struct {
	Shapes []Shape
}

// NewShapeList creates a list from the given shapes
func NewShapeList(shapes ...Shape) *ShapeList {
	return &ShapeList{Shapes: shapes}
}

// Add appends a shape to the list
func (l *ShapeList) Add(shape Shape) {
	l.Shapes = append(l.Shapes, shape)
}

// Hit returns the closest hit among all members
func (l *ShapeList) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (material.HitRecord, bool) {
	var closest material.HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, shape := range l.Shapes {
		if hit, isHit := shape.Hit(ray, tMin, closestSoFar, sampler); isHit {
			hitAnything = true
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, hitAnything
}

// BoundingBox returns the union of all member boxes. An empty list, or one
// containing an unbounded member, has no box.
func (l *ShapeList) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	if len(l.Shapes) == 0 {
		return core.AABB{}, false
	}

	var result core.AABB
	for i, shape := range l.Shapes {
		box, ok := shape.BoundingBox(time0, time1)
		if !ok {
			return core.AABB{}, false
		}
		if i == 0 {
			result = box
		} else {
			result = result.Union(box)
		}
	}
	return result, true
}
