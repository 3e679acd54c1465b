package renderer

import (
	"context"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// WriterLogger implements core.Logger on top of any writer
type WriterLogger struct {
	w io.Writer
}

// NewWriterLogger creates a logger writing to w
func NewWriterLogger(w io.Writer) core.Logger {
	return &WriterLogger{w: w}
}

func (wl *WriterLogger) Printf(format string, args ...interface{}) {
	fmt.Fprintf(wl.w, format, args...)
}

// ProgressiveConfig contains configuration for progressive rendering
type ProgressiveConfig struct {
	TileSize           int   // Size of each tile (64x64 recommended)
	InitialSamples     int   // Samples for first pass (1 recommended)
	MaxSamplesPerPixel int   // Maximum total samples per pixel (0 = scene setting)
	MaxPasses          int   // Maximum number of passes
	NumWorkers         int   // Number of parallel workers (0 = use CPU count)
	Seed               int64 // Base seed for the per-tile random generators
}

// DefaultProgressiveConfig returns sensible default values
func DefaultProgressiveConfig() ProgressiveConfig {
	return ProgressiveConfig{
		TileSize:           64,
		InitialSamples:     1,
		MaxSamplesPerPixel: 0,
		MaxPasses:          7,
		NumWorkers:         0,
		Seed:               42,
	}
}

// ProgressiveRaytracer manages progressive rendering with multiple passes
type ProgressiveRaytracer struct {
	scene         Scene
	width, height int
	config        ProgressiveConfig
	tiles         []*Tile        // Tile management
	currentPass   int            // Progressive state
	pixelStats    [][]PixelStats // Shared pixel statistics array (global image coordinates)
	workerPool    *WorkerPool    // Worker pool for parallel processing
	logger        core.Logger    // Logger for rendering output
}

// NewProgressiveRaytracer creates a new progressive raytracer that path
// traces scene with the scene's sampling settings
func NewProgressiveRaytracer(scene Scene, config ProgressiveConfig, logger core.Logger) *ProgressiveRaytracer {
	samplingConfig := scene.GetSamplingConfig()
	pathTracer := integrator.NewPathTracingIntegrator(integrator.Config{MaxDepth: samplingConfig.MaxDepth})
	return NewProgressiveRaytracerWithIntegrator(scene, config, pathTracer, logger)
}

// NewProgressiveRaytracerWithIntegrator creates a progressive raytracer using
// the given light transport algorithm
func NewProgressiveRaytracerWithIntegrator(scene Scene, config ProgressiveConfig, integratorInst integrator.Integrator, logger core.Logger) *ProgressiveRaytracer {
	samplingConfig := scene.GetSamplingConfig()
	width, height := samplingConfig.Width, samplingConfig.Height

	if config.TileSize <= 0 {
		config.TileSize = DefaultProgressiveConfig().TileSize
	}
	if config.MaxSamplesPerPixel <= 0 {
		config.MaxSamplesPerPixel = max(samplingConfig.SamplesPerPixel, 1)
	}
	if config.InitialSamples <= 0 {
		config.InitialSamples = 1
	}
	config.InitialSamples = min(config.InitialSamples, config.MaxSamplesPerPixel)
	if config.MaxPasses <= 0 {
		config.MaxPasses = 1
	}

	// Initialize shared pixel statistics array (global image coordinates)
	pixelStats := make([][]PixelStats, height)
	for y := range pixelStats {
		pixelStats[y] = make([]PixelStats, width)
	}

	tileRenderer := NewTileRenderer(scene, integratorInst)

	return &ProgressiveRaytracer{
		scene:       scene,
		width:       width,
		height:      height,
		config:      config,
		tiles:       NewTileGrid(width, height, config.TileSize, config.Seed),
		currentPass: 0,
		pixelStats:  pixelStats,
		workerPool:  NewWorkerPool(tileRenderer, config.NumWorkers),
		logger:      logger,
	}
}

// getSamplesForPass calculates the target total samples for a given pass
func (pr *ProgressiveRaytracer) getSamplesForPass(passNumber int) int {
	// Special case: if only 1 pass, use all samples
	if pr.config.MaxPasses == 1 {
		return pr.config.MaxSamplesPerPixel
	}

	// For multiple passes: first pass is quick preview
	if passNumber == 1 {
		return pr.config.InitialSamples
	}

	// Divide remaining samples evenly across remaining passes
	remainingSamples := pr.config.MaxSamplesPerPixel - pr.config.InitialSamples
	remainingPasses := pr.config.MaxPasses - 1
	samplesPerPass := remainingSamples / remainingPasses

	targetSamples := pr.config.InitialSamples + (passNumber-1)*samplesPerPass

	// For the final pass, use all remaining samples
	if passNumber >= pr.config.MaxPasses {
		targetSamples = pr.config.MaxSamplesPerPixel
	}

	return min(targetSamples, pr.config.MaxSamplesPerPixel)
}

// RenderPass renders a single progressive pass using parallel processing
func (pr *ProgressiveRaytracer) RenderPass(ctx context.Context, passNumber int) (*image.RGBA, RenderStats, error) {
	pr.currentPass = passNumber
	targetSamples := pr.getSamplesForPass(passNumber)

	pr.logger.Printf("Pass %d: Target %d samples per pixel (using %d workers)...\n",
		passNumber, targetSamples, pr.workerPool.GetNumWorkers())

	tasks := make([]TileTask, len(pr.tiles))
	for i, tile := range pr.tiles {
		tasks[i] = TileTask{
			Tile:          tile,
			PassNumber:    passNumber,
			TargetSamples: targetSamples,
			TaskID:        i,
			PixelStats:    pr.pixelStats,
		}
	}

	if _, err := pr.workerPool.Run(ctx, tasks); err != nil {
		return nil, RenderStats{}, fmt.Errorf("pass %d: %w", passNumber, err)
	}
	for _, tile := range pr.tiles {
		tile.PassesCompleted++
	}

	img, stats := pr.assembleCurrentImage(targetSamples)
	return img, stats, nil
}

// PassResult contains the result of a single pass
type PassResult struct {
	PassNumber int
	Image      *image.RGBA
	Stats      RenderStats
	Duration   time.Duration
	IsLast     bool
}

// RenderProgressive renders all passes in a background goroutine and streams
// each finished pass. Both channels are closed when rendering stops; at most
// one error is sent. Cancellation is checked between passes and between tiles.
func (pr *ProgressiveRaytracer) RenderProgressive(ctx context.Context) (<-chan PassResult, <-chan error) {
	passChan := make(chan PassResult, 1)
	errChan := make(chan error, 1)

	go func() {
		defer close(passChan)
		defer close(errChan)

		pr.logger.Printf("Starting progressive rendering with %d passes...\n", pr.config.MaxPasses)

		for pass := 1; pass <= pr.config.MaxPasses; pass++ {
			select {
			case <-ctx.Done():
				pr.logger.Printf("Rendering cancelled before pass %d\n", pass)
				errChan <- ctx.Err()
				return
			default:
			}

			startTime := time.Now()
			img, stats, err := pr.RenderPass(ctx, pass)
			if err != nil {
				errChan <- err
				return
			}
			passTime := time.Since(startTime)

			pr.logger.Printf("Pass %d completed in %v (actual: %.0f samples/pixel, %d tiles done)\n",
				pass, passTime, stats.AverageSamples, pr.workerPool.Completed())

			isLast := pass == pr.config.MaxPasses || stats.MinSamples >= pr.config.MaxSamplesPerPixel
			result := PassResult{
				PassNumber: pass,
				Image:      img,
				Stats:      stats,
				Duration:   passTime,
				IsLast:     isLast,
			}

			select {
			case passChan <- result:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}

			if isLast {
				if pass < pr.config.MaxPasses {
					pr.logger.Printf("Reached maximum samples per pixel (%d), stopping.\n", pr.config.MaxSamplesPerPixel)
				}
				return
			}
		}
	}()

	return passChan, errChan
}

// Render runs every pass and returns the final image
func (pr *ProgressiveRaytracer) Render(ctx context.Context) (*image.RGBA, RenderStats, error) {
	passChan, errChan := pr.RenderProgressive(ctx)

	var last PassResult
	for result := range passChan {
		last = result
	}
	if err := <-errChan; err != nil {
		return nil, RenderStats{}, err
	}
	return last.Image, last.Stats, nil
}

// assembleCurrentImage tone maps the shared pixel stats into an image and
// calculates render statistics in a single pass
func (pr *ProgressiveRaytracer) assembleCurrentImage(targetSamples int) (*image.RGBA, RenderStats) {
	img := image.NewRGBA(image.Rect(0, 0, pr.width, pr.height))
	stats := RenderStats{MaxSamples: targetSamples, MinSamples: pr.config.MaxSamplesPerPixel}

	for y := 0; y < pr.height; y++ {
		for x := 0; x < pr.width; x++ {
			pixel := &pr.pixelStats[y][x]
			img.SetRGBA(x, y, ToneMap(pixel.GetColor()))
			stats.addPixel(pixel.SampleCount)
		}
	}

	stats.finalize()
	return img, stats
}

// Tile represents a rectangular region of the image to be rendered
type Tile struct {
	ID              int             // Unique tile identifier
	Bounds          image.Rectangle // Pixel bounds (x0,y0,x1,y1)
	PassesCompleted int             // Number of passes completed for this tile
	Sampler         core.Sampler    // Tile-specific random source for deterministic results
}

// NewTile creates a new tile whose sampler is derived from seed and id
func NewTile(id int, bounds image.Rectangle, seed int64) *Tile {
	return &Tile{
		ID:              id,
		Bounds:          bounds,
		PassesCompleted: 0,
		Sampler:         core.NewSeededSampler(tileSeed(seed, id)),
	}
}

// tileSeed mixes the base seed with the tile ID
func tileSeed(seed int64, id int) int64 {
	return seed*1_000_003 + int64(id) + 42
}

// NewTileGrid creates a grid of tiles covering the entire image
func NewTileGrid(width, height, tileSize int, seed int64) []*Tile {
	var tiles []*Tile
	tileID := 0

	tilesX := (width + tileSize - 1) / tileSize // Ceiling division
	tilesY := (height + tileSize - 1) / tileSize

	for tileY := 0; tileY < tilesY; tileY++ {
		for tileX := 0; tileX < tilesX; tileX++ {
			x0 := tileX * tileSize
			y0 := tileY * tileSize
			x1 := min(x0+tileSize, width) // Don't exceed image bounds
			y1 := min(y0+tileSize, height)

			tiles = append(tiles, NewTile(tileID, image.Rect(x0, y0, x1, y1), seed))
			tileID++
		}
	}

	return tiles
}
