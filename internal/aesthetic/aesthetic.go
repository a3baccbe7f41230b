// Package aesthetic rates color harmony, composition and contrast of a photo
// and maps the combined verdict onto a 1-10 scale with a simulated
// confidence distribution.
package aesthetic

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/oj-kentd/photo-analysis-app/internal/raster"
)

const (
	harmonyWeight     = 0.4
	compositionWeight = 0.4
	contrastWeight    = 0.2
)

// Params holds the tunable thresholds of the analyzer.
type Params struct {
	// EdgeThreshold is the gradient magnitude above which a pixel is
	// marked as an edge.
	EdgeThreshold float64
}

// DefaultParams returns the stock thresholds.
func DefaultParams() Params {
	return Params{EdgeThreshold: 30}
}

// Result is the aesthetic verdict of a single photo.
type Result struct {
	Harmony     float64
	Composition float64
	Contrast    float64
	// Mean is the aggregate mapped onto [1, 10].
	Mean float64
	// Distribution spreads Mean over ten score buckets (values 1..10)
	// with a unit-sigma Gaussian, normalized to sum 1. It is a
	// presentation artifact, not a fitted confidence model.
	Distribution [10]float64
}

// Analyze computes all aesthetic metrics for one photo. The dominant colors
// are supplied by the caller so the sampling pass is shared with other
// consumers.
func Analyze(buf raster.Buffer, colors []raster.ColorSample, p Params) Result {
	r := Result{
		Harmony:     harmonyScore(colors),
		Composition: compositionScore(buf, p.EdgeThreshold),
		Contrast:    contrastScore(buf),
	}
	agg := harmonyWeight*r.Harmony + compositionWeight*r.Composition + contrastWeight*r.Contrast
	r.Mean = agg*9 + 1
	r.Distribution = distribution(r.Mean)
	return r
}

func distribution(mean float64) [10]float64 {
	var d [10]float64
	for i := range d {
		z := float64(i+1) - mean
		d[i] = math.Exp(-0.5 * z * z)
	}
	if sum := floats.Sum(d[:]); sum > 0 {
		floats.Scale(1/sum, d[:])
	}
	return d
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
