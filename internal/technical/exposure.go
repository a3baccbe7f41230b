package technical

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/oj-kentd/photo-analysis-app/internal/raster"
)

const (
	exposureMidpoint   = 128
	exposureStdDivisor = 60
	darkBinLimit       = 50  // bins 0..49 count as dark
	brightBinStart     = 200 // bins 200..255 count as bright
	tailAllowance      = 0.1
)

var binValues = func() [256]float64 {
	var v [256]float64
	for i := range v {
		v[i] = float64(i)
	}
	return v
}()

// exposureScore rates the normalized luma histogram: a midtone-centered mean
// and a wide spread score well, clipped shadow or highlight tails beyond 10%
// of the pixels are penalized.
func exposureScore(buf raster.Buffer) float64 {
	if buf.Area() == 0 {
		return 0
	}
	hist := buf.Histogram()

	mean := stat.Mean(binValues[:], hist[:])
	std := stat.PopStdDev(binValues[:], hist[:])

	meanScore := 1 - math.Abs(mean-exposureMidpoint)/exposureMidpoint
	stdScore := math.Min(std/exposureStdDivisor, 1)

	darkRatio := floats.Sum(hist[:darkBinLimit])
	brightRatio := floats.Sum(hist[brightBinStart:])
	penalty := math.Max(0, darkRatio-tailAllowance) + math.Max(0, brightRatio-tailAllowance)

	return math.Max(0, 0.5*meanScore+0.5*stdScore-penalty)
}
