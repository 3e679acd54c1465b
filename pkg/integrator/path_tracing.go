package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// PathTracingIntegrator implements unidirectional path tracing without
// light sampling: paths only pick up light by hitting emitters or escaping
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	if config.TMin <= 0 {
		config.TMin = DefaultConfig().TMin
	}
	return &PathTracingIntegrator{config: config}
}

// pathVertex is the contribution of one scattering event along a path
type pathVertex struct {
	emitted     core.Vec3
	attenuation core.Vec3
}

// RayColor traces the path iteratively. Each scattering surface records its
// emission and attenuation; the terminal radiance (background, emitter, or
// black when the depth budget runs out) is then folded back to the camera
// as radiance = emitted + attenuation * radiance.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world geometry.Shape, background core.Vec3, sampler core.Sampler) core.Vec3 {
	var vertices []pathVertex
	terminal := core.Vec3{}

	for depth := 0; depth < pt.config.MaxDepth; depth++ {
		hit, isHit := world.Hit(ray, pt.config.TMin, math.Inf(1), sampler)
		if !isHit {
			terminal = background
			break
		}

		emitted := material.Emitted(hit.Material, hit.UV, hit.Point)

		scatter, didScatter := hit.Material.Scatter(ray, hit, sampler)
		if !didScatter {
			terminal = emitted
			break
		}

		vertices = append(vertices, pathVertex{emitted: emitted, attenuation: scatter.Attenuation})
		ray = scatter.Scattered
	}

	radiance := terminal
	for i := len(vertices) - 1; i >= 0; i-- {
		radiance = vertices[i].emitted.Add(vertices[i].attenuation.MultiplyVec(radiance))
	}
	return radiance
}
