// Package photoscore computes a deterministic, reproducible quality score
// for decoded photos: technical sharpness/noise/exposure, aesthetic
// composition/color/contrast and facial-expression desirability, fused into
// one ranking score per photo. It is a heuristic scorer operating purely on
// pixel statistics and externally supplied expression probabilities, not a
// learned model.
package photoscore

import (
	"context"
	"errors"
	"image"

	"github.com/oj-kentd/photo-analysis-app/internal/aesthetic"
	"github.com/oj-kentd/photo-analysis-app/internal/expression"
	"github.com/oj-kentd/photo-analysis-app/internal/raster"
	"github.com/oj-kentd/photo-analysis-app/internal/technical"
)

var (
	ErrNoPixels = errors.New("image has no pixels")
)

// Score scores a single photo with default options. This is a convenience
// function that creates an Engine and calls its Score method.
func Score(ctx context.Context, photoID string, img image.Image, faces []ExpressionVector, opts ...Option) (Analysis, error) {
	e, err := New(opts...)
	if err != nil {
		return Analysis{}, err
	}
	return e.Score(ctx, photoID, img, faces)
}

// Engine runs the scoring pipeline. It holds only configuration; scoring is
// a pure function of the raster and the supplied expression vectors, so one
// Engine may be shared by concurrent callers.
type Engine struct {
	edgeThreshold float64
}

// New initializes a scoring engine. Thresholds can be optionally adjusted;
// for default values, refer to the init function.
func New(opts ...Option) (*Engine, error) {
	e := new(Engine)
	if err := e.init(opts...); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Engine) init(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return err
		}
	}
	if e.edgeThreshold == 0 {
		e.edgeThreshold = aesthetic.DefaultParams().EdgeThreshold
	}
	return nil
}

// Score computes the full per-photo verdict.
//
// Process:
//  1. Derives the luma buffer and samples the dominant colors.
//  2. Scores technical quality (blur, noise, exposure).
//  3. Scores aesthetics (harmony, composition, contrast).
//  4. Reduces the externally detected faces to one expression score.
//  5. Fuses the three verdicts into the overall ranking score.
//
// Degenerate image content falls back to the neutral defaults of each
// metric; only a zero-area raster is an error.
func (e *Engine) Score(ctx context.Context, photoID string, img image.Image, faces []ExpressionVector) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	if img == nil || img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		return Analysis{}, ErrNoPixels
	}

	buf := raster.New(img)
	colors := raster.DominantColors(img)

	t := technical.Analyze(buf)
	a := aesthetic.Analyze(buf, colors, aesthetic.Params{EdgeThreshold: e.edgeThreshold})
	f := expression.Score(faces)

	res := Analysis{
		PhotoID: photoID,
		Technical: TechnicalQuality{
			Blur:     t.Blur,
			Noise:    t.Noise,
			Exposure: t.Exposure,
			Overall:  t.Overall,
		},
		Aesthetic: Aesthetic{
			Harmony:      a.Harmony,
			Composition:  a.Composition,
			Contrast:     a.Contrast,
			Mean:         a.Mean,
			Distribution: a.Distribution,
		},
		Faces: FaceExpression{
			FaceCount: f.FaceCount,
			Faces:     f.Faces,
			Best:      f.Best,
		},
	}
	res.Overall = fuse(res.Technical, res.Aesthetic, res.Faces)
	return res, nil
}
