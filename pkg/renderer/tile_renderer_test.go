package renderer

import (
	"image"
	"sync/atomic"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// mockScene implements Scene with fixed values
type mockScene struct {
	world      geometry.Shape
	background core.Vec3
	camera     *Camera
	config     SamplingConfig
}

func (m *mockScene) GetWorld() geometry.Shape          { return m.world }
func (m *mockScene) GetBackground() core.Vec3          { return m.background }
func (m *mockScene) GetCamera() *Camera                { return m.camera }
func (m *mockScene) GetSamplingConfig() SamplingConfig { return m.config }

// createMockScene creates an empty scene seen through the test camera
func createMockScene(width, height, samples int) *mockScene {
	return &mockScene{
		world:      geometry.NewShapeList(),
		background: core.NewVec3(0.5, 0.7, 1.0),
		camera:     NewCamera(testCameraConfig()),
		config:     SamplingConfig{Width: width, Height: height, SamplesPerPixel: samples, MaxDepth: 10},
	}
}

// constantIntegrator returns the same color for every ray
type constantIntegrator struct {
	color core.Vec3
	calls atomic.Int64
}

func (c *constantIntegrator) RayColor(ray core.Ray, world geometry.Shape, background core.Vec3, sampler core.Sampler) core.Vec3 {
	c.calls.Add(1)
	return c.color
}

// skyIntegrator is white for rays going up and black otherwise
type skyIntegrator struct{}

func (skyIntegrator) RayColor(ray core.Ray, world geometry.Shape, background core.Vec3, sampler core.Sampler) core.Vec3 {
	if ray.Direction.Y > 0 {
		return core.NewVec3(1, 1, 1)
	}
	return core.Vec3{}
}

// constSampler always returns the same value
type constSampler struct {
	value float64
}

func (c constSampler) Get1D() float64 { return c.value }
func (c constSampler) Get2D() core.Vec2 {
	return core.NewVec2(c.value, c.value)
}
func (c constSampler) Get3D() core.Vec3 {
	return core.NewVec3(c.value, c.value, c.value)
}

func newPixelStats(width, height int) [][]PixelStats {
	stats := make([][]PixelStats, height)
	for y := range stats {
		stats[y] = make([]PixelStats, width)
	}
	return stats
}

func TestTileRenderer_RendersOnlyBounds(t *testing.T) {
	scene := createMockScene(8, 4, 3)
	integrator := &constantIntegrator{color: core.NewVec3(0.2, 0.4, 0.6)}
	tr := NewTileRenderer(scene, integrator)
	pixelStats := newPixelStats(8, 4)
	bounds := image.Rect(2, 1, 5, 3)

	stats := tr.RenderTileBounds(bounds, pixelStats, core.NewSeededSampler(1), 3)

	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			ps := pixelStats[y][x]
			inside := image.Pt(x, y).In(bounds)
			if inside && (ps.SampleCount != 3 || !ps.GetColor().Equals(integrator.color, 1e-12)) {
				t.Errorf("Pixel (%d,%d): expected 3 samples of %v, got %d of %v", x, y, integrator.color, ps.SampleCount, ps.GetColor())
			}
			if !inside && ps.SampleCount != 0 {
				t.Errorf("Pixel (%d,%d) outside bounds was sampled", x, y)
			}
		}
	}

	if stats.TotalPixels != 6 || stats.TotalSamples != 18 || stats.MinSamples != 3 || stats.MaxSamplesUsed != 3 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if integrator.calls.Load() != 18 {
		t.Errorf("Expected 18 integrator calls, got %d", integrator.calls.Load())
	}
}

func TestTileRenderer_TopsUpToTarget(t *testing.T) {
	scene := createMockScene(4, 4, 5)
	tr := NewTileRenderer(scene, &constantIntegrator{color: core.NewVec3(1, 1, 1)})
	pixelStats := newPixelStats(4, 4)
	bounds := image.Rect(0, 0, 4, 4)
	sampler := core.NewSeededSampler(1)

	tr.RenderTileBounds(bounds, pixelStats, sampler, 2)
	stats := tr.RenderTileBounds(bounds, pixelStats, sampler, 5)

	if stats.TotalSamples != 16*3 || stats.AverageSamples != 3 {
		t.Errorf("Expected 3 new samples per pixel, got %+v", stats)
	}
	if pixelStats[3][3].SampleCount != 5 {
		t.Errorf("Expected 5 samples in total, got %d", pixelStats[3][3].SampleCount)
	}
}

func TestTileRenderer_TopRowLooksUp(t *testing.T) {
	scene := createMockScene(8, 4, 4)
	tr := NewTileRenderer(scene, skyIntegrator{})
	pixelStats := newPixelStats(8, 4)

	tr.RenderTileBounds(image.Rect(0, 0, 8, 4), pixelStats, core.NewSeededSampler(2), 4)

	for x := 0; x < 8; x++ {
		if top := pixelStats[0][x].GetColor(); top != core.NewVec3(1, 1, 1) {
			t.Errorf("Expected top row pixel %d to see the sky, got %v", x, top)
		}
		if bottom := pixelStats[3][x].GetColor(); bottom != (core.Vec3{}) {
			t.Errorf("Expected bottom row pixel %d to look down, got %v", x, bottom)
		}
	}
}

func TestTileRenderer_ViewportCoords(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		i, j          int
		s, t          float64
	}{
		{"first pixel", 3, 3, 0, 0, 0.25, 0.25},
		{"last pixel", 3, 5, 2, 4, 1.25, 1.125},
		{"single column", 1, 1, 0, 0, 0.5, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr := NewTileRenderer(createMockScene(tt.width, tt.height, 1), skyIntegrator{})
			s, v := tr.viewportCoords(tt.i, tt.j, constSampler{value: 0.5})
			if s != tt.s || v != tt.t {
				t.Errorf("Expected (%f, %f), got (%f, %f)", tt.s, tt.t, s, v)
			}
		})
	}
}
