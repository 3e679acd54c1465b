package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/texture"
)

var (
	skyBackground = core.NewVec3(0.70, 0.80, 1.00)
	checkerOdd    = core.NewVec3(0.2, 0.3, 0.1)
	checkerEven   = core.NewVec3(0.9, 0.9, 0.9)
)

// NewRandomSpheresScene creates the classic field of small random spheres
// around three large ones, with bouncing diffuse balls and a shallow depth of field
func NewRandomSpheresScene(opts Options) *Scene {
	sampler := core.NewSeededSampler(opts.Seed)

	groundMaterial := material.NewTexturedLambertian(texture.NewCheckerColors(checkerOdd, checkerEven))
	shapes := []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, groundMaterial),
	}

	clearing := core.NewVec3(4, 0.2, 0)
	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			chooseMat := sampler.Get1D()
			center := core.NewVec3(
				float64(a)+0.9*sampler.Get1D(),
				0.2,
				float64(b)+0.9*sampler.Get1D(),
			)

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			switch {
			case chooseMat < 0.8:
				// Diffuse, bouncing during the shutter interval
				albedo := sampler.Get3D().MultiplyVec(sampler.Get3D())
				center2 := center.Add(core.NewVec3(0, core.RandomInRange(sampler, 0, 0.5), 0))
				shapes = append(shapes, geometry.NewMovingSphere(center, center2, 0, 1, 0.2, material.NewLambertian(albedo)))
			case chooseMat < 0.95:
				albedo := core.NewVec3(
					core.RandomInRange(sampler, 0.5, 1),
					core.RandomInRange(sampler, 0.5, 1),
					core.RandomInRange(sampler, 0.5, 1),
				)
				fuzz := core.RandomInRange(sampler, 0, 0.5)
				shapes = append(shapes, geometry.NewSphere(center, 0.2, material.NewMetal(albedo, fuzz)))
			default:
				shapes = append(shapes, geometry.NewSphere(center, 0.2, material.NewDielectric(1.5)))
			}
		}
	}

	shapes = append(shapes,
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)),
	)

	cameraConfig := newCameraConfig(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), 20, 0.1, 3.0/2.0)
	return newScene("random-spheres", shapes, skyBackground, cameraConfig,
		renderer.DefaultSamplingConfig(), sampler, opts.logger())
}
