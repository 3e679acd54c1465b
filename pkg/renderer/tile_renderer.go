package renderer

import (
	"image"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	scene      Scene
	integrator integrator.Integrator
	width      int
	height     int
}

// NewTileRenderer creates a new tile renderer with the given scene and integrator
func NewTileRenderer(scene Scene, integratorInst integrator.Integrator) *TileRenderer {
	config := scene.GetSamplingConfig()
	return &TileRenderer{
		scene:      scene,
		integrator: integratorInst,
		width:      config.Width,
		height:     config.Height,
	}
}

// RenderTileBounds brings every pixel within bounds up to targetSamples.
// pixelStats is indexed in image coordinates (row 0 at the top); only the
// entries inside bounds are touched.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, pixelStats [][]PixelStats, sampler core.Sampler, targetSamples int) RenderStats {
	camera := tr.scene.GetCamera()
	world := tr.scene.GetWorld()
	background := tr.scene.GetBackground()

	stats := RenderStats{MaxSamples: targetSamples, MinSamples: targetSamples}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		// Viewport rows count upwards from the bottom of the image
		j := tr.height - 1 - y
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			ps := &pixelStats[y][i]
			before := ps.SampleCount
			for ps.SampleCount < targetSamples {
				s, t := tr.viewportCoords(i, j, sampler)
				ray := camera.GetRay(s, t, sampler)
				ps.AddSample(tr.integrator.RayColor(ray, world, background, sampler))
			}
			stats.addPixel(ps.SampleCount - before)
		}
	}

	stats.finalize()
	return stats
}

// viewportCoords jitters pixel (i, j) into viewport coordinates
// s = (i+U)/(W-1), t = (j+U)/(H-1)
func (tr *TileRenderer) viewportCoords(i, j int, sampler core.Sampler) (float64, float64) {
	jitter := sampler.Get2D()
	s := (float64(i) + jitter.X) / float64(max(tr.width-1, 1))
	t := (float64(j) + jitter.Y) / float64(max(tr.height-1, 1))
	return s, t
}
