package renderer

import (
	"image/color"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width           int // Image width in pixels
	Height          int // Image height in pixels
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// DefaultSamplingConfig returns the settings most demo scenes start from:
// a 1200 pixel wide 3:2 image at 500 samples per pixel
func DefaultSamplingConfig() SamplingConfig {
	return NewSamplingConfig(1200, 3.0/2.0, 500, 50)
}

// NewSamplingConfig derives the image height from width and aspect ratio
func NewSamplingConfig(width int, aspectRatio float64, samplesPerPixel, maxDepth int) SamplingConfig {
	return SamplingConfig{
		Width:           width,
		Height:          HeightForWidth(width, aspectRatio),
		SamplesPerPixel: samplesPerPixel,
		MaxDepth:        maxDepth,
	}
}

// HeightForWidth returns the truncated image height for a width and aspect ratio
func HeightForWidth(width int, aspectRatio float64) int {
	if aspectRatio <= 0 {
		return width
	}
	return int(float64(width) / aspectRatio)
}

// Scene interface to avoid circular imports
type Scene interface {
	GetWorld() geometry.Shape
	GetBackground() core.Vec3
	GetCamera() *Camera
	GetSamplingConfig() SamplingConfig
}

// ToneMap converts an averaged radiance value to an 8-bit color: gamma 2
// (square root), each channel clamped to [0, 0.999] and scaled by 256
func ToneMap(c core.Vec3) color.RGBA {
	return color.RGBA{
		R: toneMapChannel(c.X),
		G: toneMapChannel(c.Y),
		B: toneMapChannel(c.Z),
		A: 255,
	}
}

func toneMapChannel(v float64) uint8 {
	// NaN and negative radiance come out black
	if !(v > 0) {
		return 0
	}
	v = math.Min(math.Sqrt(v), 0.999)
	return uint8(256 * v)
}
