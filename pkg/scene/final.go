package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/texture"
)

const (
	groundBoxesPerSide = 20
	groundBoxWidth     = 100.0
	clusterSpheres     = 1000
)

// NewFinalScene creates the showcase scene that uses every shape, material
// and texture type
func NewFinalScene(opts Options) *Scene {
	sampler := core.NewSeededSampler(opts.Seed)
	logger := opts.logger()

	// Ground of boxes with random heights, in a BVH of their own
	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	boxes := make([]geometry.Shape, 0, groundBoxesPerSide*groundBoxesPerSide)
	for i := 0; i < groundBoxesPerSide; i++ {
		for j := 0; j < groundBoxesPerSide; j++ {
			x0 := -1000 + float64(i)*groundBoxWidth
			z0 := -1000 + float64(j)*groundBoxWidth
			y1 := core.RandomInRange(sampler, 1, 101)
			boxes = append(boxes, geometry.NewCuboid(
				core.NewVec3(x0, 0, z0),
				core.NewVec3(x0+groundBoxWidth, y1, z0+groundBoxWidth),
				ground,
			))
		}
	}

	shapes := []geometry.Shape{
		geometry.NewBVH(boxes, 0, 1, sampler, logger),
		geometry.NewXZRect(123, 423, 147, 412, 554, material.NewDiffuseLight(core.NewVec3(7, 7, 7))),
	}

	center1 := core.NewVec3(400, 400, 200)
	center2 := center1.Add(core.NewVec3(30, 0, 0))
	shapes = append(shapes, geometry.NewMovingSphere(center1, center2, 0, 1, 50,
		material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))))

	glass := material.NewDielectric(1.5)
	shapes = append(shapes,
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, glass),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1.0)),
	)

	// Blue fog inside a glass shell, then a thin mist over everything
	shell := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, glass)
	shapes = append(shapes,
		geometry.NewConstantMediumColor(shell, 0.2, core.NewVec3(0.2, 0.4, 0.9)),
		shell,
	)
	mist := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, glass)
	shapes = append(shapes, geometry.NewConstantMediumColor(mist, 0.0001, core.NewVec3(1, 1, 1)))

	shapes = append(shapes,
		geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(loadEarthTexture(opts))),
		geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(texture.NewNoise(0.1, sampler))),
	)

	// Cluster of small white spheres, rotated and moved as one object
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	cluster := make([]geometry.Shape, clusterSpheres)
	for i := range cluster {
		center := core.NewVec3(
			core.RandomInRange(sampler, 0, 165),
			core.RandomInRange(sampler, 0, 165),
			core.RandomInRange(sampler, 0, 165),
		)
		cluster[i] = geometry.NewSphere(center, 10, white)
	}
	shapes = append(shapes, geometry.NewTranslate(
		geometry.NewRotateY(geometry.NewBVH(cluster, 0, 1, sampler, logger), 15),
		core.NewVec3(-100, 270, 395),
	))

	cameraConfig := newCameraConfig(core.NewVec3(478, 278, -600), core.NewVec3(278, 278, 0), 40, 0, 1)
	return newScene("final", shapes, core.Vec3{}, cameraConfig,
		renderer.NewSamplingConfig(800, 1, 10000, 50), sampler, logger)
}
