package aesthetic

import (
	"math"

	"github.com/oj-kentd/photo-analysis-app/internal/raster"
)

const (
	thirdsWeight  = 0.6
	balanceWeight = 0.4

	neutralThirdsScore = 0.5
)

// compositionScore combines rule-of-thirds placement with left/right and
// top/bottom balance of the edge mask.
func compositionScore(buf raster.Buffer, edgeThreshold float64) float64 {
	edges := edgeMap(buf, edgeThreshold)
	thirds := thirdsScore(edges, buf.Width, buf.Height)
	balance := balanceScore(edges, buf.Width, buf.Height)
	return thirdsWeight*thirds + balanceWeight*balance
}

// edgeMap marks interior pixels whose central-difference gradient magnitude
// exceeds the threshold. Border pixels are never edges.
func edgeMap(buf raster.Buffer, threshold float64) []uint8 {
	w, h := buf.Width, buf.Height
	mask := make([]uint8, w*h)
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			gx := math.Abs(float64(buf.At(x-1, y)) - float64(buf.At(x+1, y)))
			gy := math.Abs(float64(buf.At(x, y-1)) - float64(buf.At(x, y+1)))
			if math.Sqrt(gx*gx+gy*gy) > threshold {
				mask[y*w+x] = 255
			}
		}
	}
	return mask
}

// thirdsScore compares the share of edge pixels near the four thirds
// intersections against the share expected from the capture area alone.
// With no edges, or a degenerate capture radius, the neutral 0.5 applies.
func thirdsScore(edges []uint8, w, h int) float64 {
	r := min(w, h) / 10
	if r == 0 {
		return neutralThirdsScore
	}

	points := [4][2]int{
		{w / 3, h / 3},
		{w / 3, 2 * h / 3},
		{2 * w / 3, h / 3},
		{2 * w / 3, 2 * h / 3},
	}

	var total, near int
	for i, v := range edges {
		if v == 0 {
			continue
		}
		total++
		x, y := i%w, i/w
		for _, p := range points {
			if abs(x-p[0]) <= r && abs(y-p[1]) <= r {
				near++
				break
			}
		}
	}
	if total == 0 {
		return neutralThirdsScore
	}

	expected := float64(4*r*r) / float64(w*h)
	actual := float64(near) / float64(total)
	return math.Min(1, actual/(expected*2))
}

// balanceScore splits the edge pixels by the vertical and horizontal
// midlines and averages the min/max ratio of each axis. An axis with no
// edges on either side counts as perfectly balanced.
func balanceScore(edges []uint8, w, h int) float64 {
	var left, right, top, bottom int
	for i, v := range edges {
		if v == 0 {
			continue
		}
		x, y := i%w, i/w
		if x < w/2 {
			left++
		} else {
			right++
		}
		if y < h/2 {
			top++
		} else {
			bottom++
		}
	}
	return 0.5*axisBalance(left, right) + 0.5*axisBalance(top, bottom)
}

func axisBalance(a, b int) float64 {
	if a == 0 && b == 0 {
		return 1
	}
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	return float64(lo) / float64(hi)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
