package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Cornell box dimensions (standard 555x555x555 units)
const boxSize = 555.0

// cornellWalls returns the five walls of the box; the light is added by the caller
func cornellWalls(white material.Material) []geometry.Shape {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	return []geometry.Shape{
		geometry.NewYZRect(0, boxSize, 0, boxSize, boxSize, green), // Left wall
		geometry.NewYZRect(0, boxSize, 0, boxSize, 0, red),         // Right wall
		geometry.NewXZRect(0, boxSize, 0, boxSize, 0, white),       // Floor
		geometry.NewXZRect(0, boxSize, 0, boxSize, boxSize, white), // Ceiling
		geometry.NewXYRect(0, boxSize, 0, boxSize, boxSize, white), // Back wall
	}
}

// cornellBlocks returns the tall and the short block, rotated and moved into place
func cornellBlocks(white material.Material) (tall, short geometry.Shape) {
	tall = geometry.NewCuboid(core.NewVec3(0, 0, 0), core.NewVec3(165, 330, 165), white)
	tall = geometry.NewRotateY(tall, 15)
	tall = geometry.NewTranslate(tall, core.NewVec3(265, 0, 295))

	short = geometry.NewCuboid(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), white)
	short = geometry.NewRotateY(short, -18)
	short = geometry.NewTranslate(short, core.NewVec3(130, 0, 65))
	return tall, short
}

// cornellCamera looks into the open front of the box
func cornellCamera() renderer.CameraConfig {
	return newCameraConfig(core.NewVec3(278, 278, -800), core.NewVec3(278, 278, 0), 40, 0, 1)
}

// NewCornellScene creates the classic Cornell box with two rotated blocks
func NewCornellScene(opts Options) *Scene {
	sampler := core.NewSeededSampler(opts.Seed)
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))

	shapes := cornellWalls(white)
	shapes = append(shapes, geometry.NewXZRect(213, 343, 227, 332, 554, light))
	tall, short := cornellBlocks(white)
	shapes = append(shapes, tall, short)

	return newScene("cornell", shapes, core.Vec3{}, cornellCamera(),
		renderer.NewSamplingConfig(600, 1, 400, 50), sampler, opts.logger())
}

// NewCornellSmokeScene replaces the blocks with dark and light smoke and
// uses a larger, dimmer light
func NewCornellSmokeScene(opts Options) *Scene {
	sampler := core.NewSeededSampler(opts.Seed)
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	light := material.NewDiffuseLight(core.NewVec3(7, 7, 7))

	shapes := cornellWalls(white)
	shapes = append(shapes, geometry.NewXZRect(113, 443, 127, 432, 554, light))
	tall, short := cornellBlocks(white)
	shapes = append(shapes,
		geometry.NewConstantMediumColor(tall, 0.01, core.NewVec3(0, 0, 0)),
		geometry.NewConstantMediumColor(short, 0.01, core.NewVec3(1, 1, 1)),
	)

	return newScene("cornell-smoke", shapes, core.Vec3{}, cornellCamera(),
		renderer.NewSamplingConfig(600, 1, 200, 50), sampler, opts.logger())
}
