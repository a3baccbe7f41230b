package technical

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/oj-kentd/photo-analysis-app/internal/raster"
)

const (
	noiseBlockSize = 8
	// Blocks whose luma variance stays below this limit are considered
	// structure-free; pixel-to-pixel variation there is attributed to
	// sensor noise.
	uniformVarianceLimit = 100
	noiseLevelDivisor    = 20
	neutralNoiseScore    = 0.5
)

// noiseScore partitions the image into non-overlapping 8x8 blocks and
// averages the noise level of the uniform ones. Partial blocks at the right
// and bottom edges are excluded. With no uniform block the neutral 0.5 is
// returned.
func noiseScore(buf raster.Buffer) float64 {
	blocksX := buf.Width / noiseBlockSize
	blocksY := buf.Height / noiseBlockSize
	if blocksX == 0 || blocksY == 0 {
		return neutralNoiseScore
	}

	var total float64
	var uniform int
	luma := make([]float64, 0, noiseBlockSize*noiseBlockSize)
	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			x0 := bx * noiseBlockSize
			y0 := by * noiseBlockSize

			luma = luma[:0]
			for y := y0; y < y0+noiseBlockSize; y++ {
				for x := x0; x < x0+noiseBlockSize; x++ {
					luma = append(luma, float64(buf.At(x, y)))
				}
			}
			if stat.PopVariance(luma, nil) >= uniformVarianceLimit {
				continue
			}

			total += blockNoiseLevel(buf, x0, y0)
			uniform++
		}
	}

	if uniform == 0 {
		return neutralNoiseScore
	}
	avg := total / float64(uniform)
	return clamp01(1 - avg/noiseLevelDivisor)
}

// blockNoiseLevel is the mean absolute difference over every horizontally
// and vertically adjacent pixel pair inside one block.
func blockNoiseLevel(buf raster.Buffer, x0, y0 int) float64 {
	var sum float64
	var pairs int
	for y := y0; y < y0+noiseBlockSize; y++ {
		for x := x0; x < x0+noiseBlockSize-1; x++ {
			sum += math.Abs(float64(buf.At(x, y)) - float64(buf.At(x+1, y)))
			pairs++
		}
	}
	for y := y0; y < y0+noiseBlockSize-1; y++ {
		for x := x0; x < x0+noiseBlockSize; x++ {
			sum += math.Abs(float64(buf.At(x, y)) - float64(buf.At(x, y+1)))
			pairs++
		}
	}
	return sum / float64(pairs)
}
