package geometry

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Translate displaces a child shape by a fixed offset
type Translate struct {
	Child  Shape
	Offset core.Vec3
}

// NewTranslate wraps child so that it appears moved by offset
func NewTranslate(child Shape, offset core.Vec3) *Translate {
	return &Translate{Child: child, Offset: offset}
}

// Hit moves the ray into the child's frame and moves the hit point back.
// Normals and the face flag are unaffected by a translation.
func (t *Translate) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (material.HitRecord, bool) {
	moved := core.NewRayAtTime(ray.Origin.Subtract(t.Offset), ray.Direction, ray.Time)

	hit, isHit := t.Child.Hit(moved, tMin, tMax, sampler)
	if !isHit {
		return material.HitRecord{}, false
	}

	hit.Point = hit.Point.Add(t.Offset)
	return hit, true
}

// BoundingBox returns the child's box moved by the offset
func (t *Translate) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box, ok := t.Child.BoundingBox(time0, time1)
	if !ok {
		return core.AABB{}, false
	}
	return box.Translate(t.Offset), true
}

// RotateY rotates a child shape about the world Y axis
type RotateY struct {
	Child   Shape
	Degrees float64
	toWorld mgl64.Mat3
	toLocal mgl64.Mat3
	box     core.AABB
	hasBox  bool
}

// NewRotateY wraps child rotated counter-clockwise by degrees when viewed from +Y.
// The world box is computed once from the child's box over the time interval [0, 1].
func NewRotateY(child Shape, degrees float64) *RotateY {
	toWorld := mgl64.Rotate3DY(mgl64.DegToRad(degrees))
	r := &RotateY{
		Child:   child,
		Degrees: degrees,
		toWorld: toWorld,
		toLocal: toWorld.Transpose(),
	}

	childBox, ok := child.BoundingBox(0, 1)
	r.hasBox = ok
	if ok {
		corners := childBox.Corners()
		for i := range corners {
			corners[i] = r.rotateToWorld(corners[i])
		}
		r.box = core.NewAABBFromPoints(corners[:]...)
	}
	return r
}

func (r *RotateY) rotateToWorld(v core.Vec3) core.Vec3 {
	return fromMgl(r.toWorld.Mul3x1(toMgl(v)))
}

func (r *RotateY) rotateToLocal(v core.Vec3) core.Vec3 {
	return fromMgl(r.toLocal.Mul3x1(toMgl(v)))
}

// Hit rotates the ray into the child's frame, then rotates the hit point and
// normal back into world space. The face flag is kept from the child.
func (r *RotateY) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (material.HitRecord, bool) {
	local := core.NewRayAtTime(r.rotateToLocal(ray.Origin), r.rotateToLocal(ray.Direction), ray.Time)

	hit, isHit := r.Child.Hit(local, tMin, tMax, sampler)
	if !isHit {
		return material.HitRecord{}, false
	}

	hit.Point = r.rotateToWorld(hit.Point)
	hit.Normal = r.rotateToWorld(hit.Normal)
	return hit, true
}

// BoundingBox returns the cached world box
func (r *RotateY) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return r.box, r.hasBox
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
