package scene

import (
	"path/filepath"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/texture"
)

// EarthTextureFile is the image texture used by the earth and final scenes
const EarthTextureFile = "earthmap.jpg"

// skyCamera is the camera of the small texture showcase scenes
func skyCamera() renderer.CameraConfig {
	return newCameraConfig(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), 20, 0, 3.0/2.0)
}

// NewTwoSpheresScene creates two large checkered spheres touching at the origin
func NewTwoSpheresScene(opts Options) *Scene {
	sampler := core.NewSeededSampler(opts.Seed)
	checker := material.NewTexturedLambertian(texture.NewCheckerColors(checkerOdd, checkerEven))

	shapes := []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, -10, 0), 10, checker),
		geometry.NewSphere(core.NewVec3(0, 10, 0), 10, checker),
	}
	return newScene("two-spheres", shapes, skyBackground, skyCamera(),
		renderer.DefaultSamplingConfig(), sampler, opts.logger())
}

// NewTwoPerlinSpheresScene creates a marble sphere resting on a marble ground
func NewTwoPerlinSpheresScene(opts Options) *Scene {
	sampler := core.NewSeededSampler(opts.Seed)
	return newScene("two-perlin-spheres", perlinSpheres(sampler), skyBackground, skyCamera(),
		renderer.DefaultSamplingConfig(), sampler, opts.logger())
}

// perlinSpheres returns a ground sphere and a radius 2 sphere sharing one
// noise texture
func perlinSpheres(sampler core.Sampler) []geometry.Shape {
	marble := material.NewTexturedLambertian(texture.NewNoise(4, sampler))
	return []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, marble),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, marble),
	}
}

// NewEarthScene creates a single globe textured with the earth map image.
// Without the image file the globe renders cyan.
func NewEarthScene(opts Options) *Scene {
	sampler := core.NewSeededSampler(opts.Seed)
	earth := material.NewTexturedLambertian(loadEarthTexture(opts))

	shapes := []geometry.Shape{
		geometry.NewSphere(core.NewVec3(0, 0, 0), 2, earth),
	}
	return newScene("earth", shapes, skyBackground, skyCamera(),
		renderer.DefaultSamplingConfig(), sampler, opts.logger())
}

func loadEarthTexture(opts Options) *texture.Image {
	return texture.LoadImage(filepath.Join(opts.TextureDir, EarthTextureFile), opts.logger())
}

// NewEmptyScene creates a scene with no objects; every pixel is background
func NewEmptyScene(opts Options) *Scene {
	sampler := core.NewSeededSampler(opts.Seed)
	cameraConfig := newCameraConfig(core.Vec3{}, core.Vec3{}, 40, 0, 3.0/2.0)
	return newScene("empty", nil, core.Vec3{}, cameraConfig,
		renderer.DefaultSamplingConfig(), sampler, opts.logger())
}
