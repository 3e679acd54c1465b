package texture

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/loaders"
)

// missingImageColor is returned by image textures with no pixel data
var missingImageColor = core.NewVec3(0, 1, 1)

// Image provides color from a 2D image using nearest-neighbor lookup
type Image struct {
	data *loaders.ImageData
}

// NewImage wraps already decoded image data
func NewImage(data *loaders.ImageData) *Image {
	return &Image{data: data}
}

// LoadImage loads an image texture from disk. A file that cannot be read
// yields a texture that renders solid cyan; the error is reported to logger.
func LoadImage(filename string, logger core.Logger) *Image {
	data, err := loaders.LoadImage(filename)
	if err != nil {
		logger.Printf("Could not load texture image: %v\n", err)
		return &Image{}
	}
	return NewImage(data)
}

// Loaded reports whether the texture has pixel data
func (t *Image) Loaded() bool {
	return t.data != nil && t.data.Width > 0 && t.data.Height > 0
}

// Value samples the texture; u is clamped to [0,1] and v is flipped so that
// v=1 addresses the top row of the image
func (t *Image) Value(uv core.Vec2, point core.Vec3) core.Vec3 {
	if !t.Loaded() {
		return missingImageColor
	}

	u := max(0, min(1, uv.X))
	v := 1.0 - max(0, min(1, uv.Y))

	// At clamps u=1 or v=1 to the last column or row
	x := int(u * float64(t.data.Width))
	y := int(v * float64(t.data.Height))
	return t.data.At(x, y)
}
