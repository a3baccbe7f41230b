package photoscore

import (
	"context"
	"fmt"
	"image"
	"io"
	"log"
	"math"
	"runtime"
	"sort"
	"sync"
)

// Photo identifies one submitted photo and the reference the raster
// provider resolves.
type Photo struct {
	ID  string
	Ref string
}

// RasterProvider resolves a photo reference into a decoded raster of
// roughly the requested working size. Implementations may return any
// dimensions; the engine handles whatever comes back.
type RasterProvider interface {
	Fetch(ctx context.Context, ref string, width, height int) (image.Image, error)
}

// ExpressionDetector returns the per-face expression probability vectors of
// a raster, possibly none. Detector failures are recovered as zero faces.
type ExpressionDetector interface {
	Detect(ctx context.Context, photoID string, img image.Image) ([]ExpressionVector, error)
}

const defaultWorkingSize = 1024

// Runner drives the scoring pipeline over a batch of photos. A failing
// photo is logged and skipped; the batch always completes once started.
type Runner struct {
	engine   *Engine
	provider RasterProvider
	detector ExpressionDetector

	workers       int
	width, height int
	logger        *log.Logger
}

type RunnerOption func(*Runner) error

// WithWorkers sets the number of photos scored concurrently, capped at
// GOMAXPROCS. The default of 1 processes the batch strictly sequentially.
func WithWorkers(n int) RunnerOption {
	return func(r *Runner) error {
		if n < 1 {
			return fmt.Errorf("workers must be at least 1, got %d", n)
		}
		if max := runtime.GOMAXPROCS(0); n > max {
			n = max
		}
		r.workers = n
		return nil
	}
}

// WithWorkingSize sets the raster size requested from the provider.
func WithWorkingSize(width, height int) RunnerOption {
	return func(r *Runner) error {
		if width < 1 || height < 1 {
			return fmt.Errorf("working size must be positive, got %dx%d", width, height)
		}
		r.width, r.height = width, height
		return nil
	}
}

// WithLogger routes skip and recovery messages. The default discards them.
func WithLogger(l *log.Logger) RunnerOption {
	return func(r *Runner) error {
		r.logger = l
		return nil
	}
}

// NewRunner wires a runner. The detector may be nil, in which case every
// photo scores with zero faces.
func NewRunner(engine *Engine, provider RasterProvider, detector ExpressionDetector, opts ...RunnerOption) (*Runner, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if provider == nil {
		return nil, fmt.Errorf("raster provider is required")
	}
	r := &Runner{
		engine:   engine,
		provider: provider,
		detector: detector,
		workers:  1,
		width:    defaultWorkingSize,
		height:   defaultWorkingSize,
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

type batchTask struct {
	index int
	photo Photo
}

type batchOutcome struct {
	index    int
	analysis Analysis
	ok       bool
}

// Run scores the batch and returns the analyses sorted by overall score
// descending, ties keeping input order. progress, if non-nil, receives the
// integer percentage of accounted photos (scored or skipped) after each
// one; calls are serialized. Cancellation is honored between photos: the
// in-flight ones drain and ctx.Err() is returned.
func (r *Runner) Run(ctx context.Context, photos []Photo, progress func(percent int)) ([]Analysis, error) {
	if len(photos) == 0 {
		return nil, ctx.Err()
	}

	tasks := make(chan batchTask, r.workers)
	outcomes := make(chan batchOutcome, r.workers)

	var wg sync.WaitGroup
	wg.Add(r.workers)
	for range r.workers {
		go func() {
			defer wg.Done()
			for task := range tasks {
				analysis, err := r.scorePhoto(ctx, task.photo)
				if err != nil {
					r.logger.Printf("photo %s skipped: %v", task.photo.ID, err)
					outcomes <- batchOutcome{index: task.index}
					continue
				}
				outcomes <- batchOutcome{index: task.index, analysis: analysis, ok: true}
			}
		}()
	}
	go func() {
		defer close(outcomes)
		wg.Wait()
	}()

	// Bounded submission: the task channel provides backpressure so the
	// batch cannot grow memory ahead of processing.
	go func() {
		defer close(tasks)
		for i, p := range photos {
			select {
			case <-ctx.Done():
				return
			case tasks <- batchTask{index: i, photo: p}:
			}
		}
	}()

	collected := make([]batchOutcome, 0, len(photos))
	processed := 0
	for outcome := range outcomes {
		processed++
		if outcome.ok {
			collected = append(collected, outcome)
		}
		if progress != nil {
			progress(int(math.Round(float64(processed) / float64(len(photos)) * 100)))
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Restore input order first so the stable sort breaks score ties by
	// original position regardless of completion order.
	sort.Slice(collected, func(i, j int) bool {
		return collected[i].index < collected[j].index
	})
	results := make([]Analysis, len(collected))
	for i, outcome := range collected {
		results[i] = outcome.analysis
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Overall > results[j].Overall
	})
	return results, nil
}

func (r *Runner) scorePhoto(ctx context.Context, photo Photo) (Analysis, error) {
	img, err := r.provider.Fetch(ctx, photo.Ref, r.width, r.height)
	if err != nil {
		return Analysis{}, fmt.Errorf("fetch raster: %w", err)
	}

	var faces []ExpressionVector
	if r.detector != nil {
		faces, err = r.detector.Detect(ctx, photo.ID, img)
		if err != nil {
			// Detection failures degrade to a faceless score.
			r.logger.Printf("photo %s: expression detection failed, scoring without faces: %v", photo.ID, err)
			faces = nil
		}
	}

	return r.engine.Score(ctx, photo.ID, img, faces)
}
