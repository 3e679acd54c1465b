package integrator

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor estimates the radiance arriving along ray from world.
	// Rays that escape the scene pick up the background color.
	RayColor(ray core.Ray, world geometry.Shape, background core.Vec3, sampler core.Sampler) core.Vec3
}

// Config controls path termination
type Config struct {
	MaxDepth int     // Maximum number of surface interactions per path
	TMin     float64 // Minimum hit distance, avoids self-intersection after a bounce
}

// DefaultConfig returns the standard path tracing configuration
func DefaultConfig() Config {
	return Config{
		MaxDepth: 50,
		TMin:     0.001,
	}
}
