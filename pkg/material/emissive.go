package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// DiffuseLight represents a light-emitting material
type DiffuseLight struct {
	Emission texture.Texture // Emitted light color/intensity
}

// NewDiffuseLight creates a light with a uniform emission color
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emission: texture.NewSolidColor(emission)}
}

// NewTexturedDiffuseLight creates a light whose emission varies over the surface
func NewTexturedDiffuseLight(emission texture.Texture) *DiffuseLight {
	return &DiffuseLight{Emission: emission}
}

// Scatter implements the Material interface. Lights absorb every incoming ray.
func (e *DiffuseLight) Scatter(rayIn core.Ray, hit HitRecord, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// Emitted returns the emitted light at the given surface position
func (e *DiffuseLight) Emitted(uv core.Vec2, point core.Vec3) core.Vec3 {
	return e.Emission.Value(uv, point)
}
