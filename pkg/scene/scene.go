package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          geometry.Shape // Root of the shape graph, usually a BVH
	Background     core.Vec3      // Radiance of rays that escape the scene
	CameraConfig   renderer.CameraConfig
	Camera         *renderer.Camera
	SamplingConfig renderer.SamplingConfig
}

// Options controls how catalog scenes are assembled
type Options struct {
	Seed       int64       // Seeds random scene layout, noise tables and BVH construction
	TextureDir string      // Directory holding image textures such as earthmap.jpg
	Logger     core.Logger // Receives texture and BVH warnings
}

// DefaultOptions returns options with seed 42, textures from the working
// directory and no logging
func DefaultOptions() Options {
	return Options{
		Seed:       42,
		TextureDir: ".",
		Logger:     core.NopLogger{},
	}
}

// GetWorld returns the root of the shape graph
func (s *Scene) GetWorld() geometry.Shape { return s.World }

// GetBackground returns the background radiance
func (s *Scene) GetBackground() core.Vec3 { return s.Background }

// GetCamera returns the camera
func (s *Scene) GetCamera() *renderer.Camera { return s.Camera }

// GetSamplingConfig returns the sampling configuration
func (s *Scene) GetSamplingConfig() renderer.SamplingConfig { return s.SamplingConfig }

// SetWidth changes the image width and recomputes the height from the
// camera's aspect ratio
func (s *Scene) SetWidth(width int) {
	s.SamplingConfig.Width = width
	s.SamplingConfig.Height = renderer.HeightForWidth(width, s.CameraConfig.AspectRatio)
}

// newCameraConfig returns the camera shared by all catalog scenes: world up,
// focus at distance 10 and a shutter open over [0, 1]
func newCameraConfig(lookFrom, lookAt core.Vec3, vfov, aperture, aspectRatio float64) renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:      lookFrom,
		LookAt:        lookAt,
		Up:            core.NewVec3(0, 1, 0),
		VFov:          vfov,
		AspectRatio:   aspectRatio,
		Aperture:      aperture,
		FocusDistance: 10,
		Time0:         0,
		Time1:         1,
	}
}

// newScene wraps the top-level shapes in a BVH and creates the camera
func newScene(name string, shapes []geometry.Shape, background core.Vec3, cameraConfig renderer.CameraConfig,
	samplingConfig renderer.SamplingConfig, sampler core.Sampler, logger core.Logger) *Scene {
	var world geometry.Shape
	if len(shapes) == 0 {
		world = geometry.NewShapeList()
	} else {
		world = geometry.NewBVH(shapes, cameraConfig.Time0, cameraConfig.Time1, sampler, logger)
	}

	return &Scene{
		Name:           name,
		World:          world,
		Background:     background,
		CameraConfig:   cameraConfig,
		Camera:         renderer.NewCamera(cameraConfig),
		SamplingConfig: samplingConfig,
	}
}

// logger returns the configured logger or a no-op one
func (o Options) logger() core.Logger {
	if o.Logger == nil {
		return core.NopLogger{}
	}
	return o.Logger
}
