package aesthetic

import (
	"math"

	"github.com/oj-kentd/photo-analysis-app/internal/raster"
)

const (
	contrastTail    = 0.05
	contrastDivisor = 200
)

// contrastScore measures the luma spread between the 5th and 95th
// percentiles of the histogram, saturating at a 200-value spread.
func contrastScore(buf raster.Buffer) float64 {
	if buf.Area() == 0 {
		return 0
	}
	hist := buf.Histogram()

	p5 := 0
	var cum float64
	for i := 0; i < 256; i++ {
		cum += hist[i]
		if cum >= contrastTail {
			p5 = i
			break
		}
	}

	p95 := 255
	cum = 0
	for i := 255; i >= 0; i-- {
		cum += hist[i]
		if cum >= contrastTail {
			p95 = i
			break
		}
	}

	return math.Min(1, float64(p95-p5)/contrastDivisor)
}
