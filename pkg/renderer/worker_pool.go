package renderer

import (
	"context"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// TileTask represents a single tile rendering task
type TileTask struct {
	Tile          *Tile
	PassNumber    int
	TargetSamples int
	TaskID        int
	PixelStats    [][]PixelStats // Shared pixel statistics array; tasks write disjoint bounds
}

// TileResult represents the result of a completed tile task
type TileResult struct {
	TaskID int
	Stats  RenderStats
}

// WorkerPool renders tile tasks in parallel on a bounded number of goroutines
type WorkerPool struct {
	renderer   *TileRenderer
	numWorkers int
	completed  atomic.Int64 // Tiles finished since the pool was created
}

// NewWorkerPool creates a new worker pool; numWorkers <= 0 uses the CPU count
func NewWorkerPool(renderer *TileRenderer, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		renderer:   renderer,
		numWorkers: numWorkers,
	}
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// Completed returns the number of tiles finished so far
func (wp *WorkerPool) Completed() int64 {
	return wp.completed.Load()
}

// Run renders all tasks and returns their results indexed by TaskID.
// Scheduling stops as soon as ctx is cancelled; tiles already started
// finish before Run returns.
func (wp *WorkerPool) Run(ctx context.Context, tasks []TileTask) ([]TileResult, error) {
	results := make([]TileResult, len(tasks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(wp.numWorkers)

	for i, task := range tasks {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			sampler := task.Tile.Sampler
			stats := wp.renderer.RenderTileBounds(task.Tile.Bounds, task.PixelStats, sampler, task.TargetSamples)
			results[i] = TileResult{TaskID: task.TaskID, Stats: stats}
			wp.completed.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// The group context is always done after Wait; check the caller's
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
