package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewSimpleLightScene lights the two marble spheres with a single
// rectangular lamp in an otherwise dark world
func NewSimpleLightScene(opts Options) *Scene {
	sampler := core.NewSeededSampler(opts.Seed)

	shapes := perlinSpheres(sampler)
	lamp := material.NewDiffuseLight(core.NewVec3(4, 4, 4))
	shapes = append(shapes, geometry.NewXYRect(3, 5, 1, 3, -2, lamp))

	cameraConfig := newCameraConfig(core.NewVec3(26, 3, 6), core.NewVec3(0, 2, 0), 20, 0, 3.0/2.0)
	samplingConfig := renderer.DefaultSamplingConfig()
	samplingConfig.SamplesPerPixel = 400

	return newScene("simple-light", shapes, core.Vec3{}, cameraConfig, samplingConfig, sampler, opts.logger())
}
