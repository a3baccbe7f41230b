package technical

import (
	"gonum.org/v1/gonum/stat"

	"github.com/oj-kentd/photo-analysis-app/internal/raster"
)

// Sharp images have strong second derivatives, so the population variance of
// the Laplacian response grows with focus. The divisor maps typical in-focus
// variances to the top of the scale.
const blurVarianceDivisor = 1000

// blurScore applies the 3x3 Laplacian kernel
//
//	-1 -1 -1
//	-1  8 -1
//	-1 -1 -1
//
// to every interior pixel and returns clamp(popvar/1000, 0, 1).
// Images smaller than the kernel score 0.
func blurScore(buf raster.Buffer) float64 {
	w, h := buf.Width, buf.Height
	if w < 3 || h < 3 {
		return 0
	}

	resp := make([]float64, 0, (w-2)*(h-2))
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			c := 8 * int(buf.At(x, y))
			c -= int(buf.At(x-1, y-1)) + int(buf.At(x, y-1)) + int(buf.At(x+1, y-1))
			c -= int(buf.At(x-1, y)) + int(buf.At(x+1, y))
			c -= int(buf.At(x-1, y+1)) + int(buf.At(x, y+1)) + int(buf.At(x+1, y+1))
			resp = append(resp, float64(c))
		}
	}

	variance := stat.PopVariance(resp, nil)
	return clamp01(variance / blurVarianceDivisor)
}
