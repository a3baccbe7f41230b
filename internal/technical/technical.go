// Package technical measures sharpness, noise and exposure of a luma buffer.
// All scores are clamped into [0, 1] and degenerate inputs fall back to the
// documented neutral defaults instead of propagating NaN.
package technical

import (
	"github.com/oj-kentd/photo-analysis-app/internal/raster"
)

const (
	blurWeight     = 0.4
	noiseWeight    = 0.3
	exposureWeight = 0.3
)

// Result is the technical quality verdict of a single photo.
type Result struct {
	// Blur is the Laplacian-variance sharpness proxy; higher means sharper.
	Blur float64
	// Noise estimates sensor noise from uniform blocks; higher means cleaner.
	Noise float64
	// Exposure rates the luma histogram shape; higher means better exposed.
	Exposure float64
	// Overall is the weighted combination of the three.
	Overall float64
}

// Analyze computes all technical metrics for one photo.
func Analyze(buf raster.Buffer) Result {
	r := Result{
		Blur:     blurScore(buf),
		Noise:    noiseScore(buf),
		Exposure: exposureScore(buf),
	}
	r.Overall = clamp01(blurWeight*r.Blur + noiseWeight*r.Noise + exposureWeight*r.Exposure)
	return r
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
