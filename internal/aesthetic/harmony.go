package aesthetic

import (
	"math"

	"github.com/oj-kentd/photo-analysis-app/internal/raster"
)

// Hue-difference classes on the color wheel with their contribution weights.
const (
	complementaryLow    = 165.0
	complementaryHigh   = 195.0
	complementaryWeight = 0.3

	analogousLimit  = 30.0
	analogousWeight = 0.2

	triadicLow    = 105.0
	triadicHigh   = 135.0
	triadicWeight = 0.2
)

// harmonyScore rates how well the dominant hues relate on the color wheel.
// Every unordered pair contributes the weight of its class; the sum is
// normalized by the palette size. Fewer than two colors score 0.
func harmonyScore(colors []raster.ColorSample) float64 {
	if len(colors) < 2 {
		return 0
	}

	var sum float64
	for i := 0; i < len(colors); i++ {
		for j := i + 1; j < len(colors); j++ {
			d := hueDistance(colors[i].Hue, colors[j].Hue)
			switch {
			case d > complementaryLow && d < complementaryHigh:
				sum += complementaryWeight
			case d < analogousLimit:
				sum += analogousWeight
			case d > triadicLow && d < triadicHigh:
				sum += triadicWeight
			}
		}
	}
	return clamp01(sum / float64(len(colors)))
}

// hueDistance is the minimal circular difference of two hues in degrees.
func hueDistance(h1, h2 float64) float64 {
	d := math.Abs(h1 - h2)
	return math.Min(d, 360-d)
}
