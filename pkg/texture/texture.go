package texture

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Value returns the color at the given surface coordinates and 3D point.
	// UV is used by image textures, the point by procedural textures.
	Value(uv core.Vec2, point core.Vec3) core.Vec3
}

// SolidColor provides a uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color texture
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Value returns the solid color regardless of UV or position
func (s *SolidColor) Value(uv core.Vec2, point core.Vec3) core.Vec3 {
	return s.Color
}

// Checker alternates between two textures in a 3D sine lattice
type Checker struct {
	Odd  Texture
	Even Texture
}

// NewChecker creates a checker texture from two textures
func NewChecker(odd, even Texture) *Checker {
	return &Checker{Odd: odd, Even: even}
}

// NewCheckerColors creates a checker texture from two solid colors
func NewCheckerColors(odd, even core.Vec3) *Checker {
	return NewChecker(NewSolidColor(odd), NewSolidColor(even))
}

// Value picks Odd where sin(10x)*sin(10y)*sin(10z) is negative, Even otherwise
func (c *Checker) Value(uv core.Vec2, point core.Vec3) core.Vec3 {
	sines := math.Sin(10*point.X) * math.Sin(10*point.Y) * math.Sin(10*point.Z)
	if sines < 0 {
		return c.Odd.Value(uv, point)
	}
	return c.Even.Value(uv, point)
}
