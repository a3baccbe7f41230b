package raster

import (
	"image"
	"math"
	"sort"
)

const (
	// Stride sampling visits at most this many pixels per image.
	maxSampledPixels = 1000
	// Each channel is quantized to 256/quantStep buckets.
	quantStep = 16
	// Number of dominant colors retained, ranked by occurrence.
	maxDominantColors = 5
)

// ColorSample is one quantized dominant color of an image.
type ColorSample struct {
	R, G, B uint8
	// Hue in [0, 360), Saturation and Value in [0, 1].
	Hue, Saturation, Value float64
	Count                  int
}

// DominantColors stride-samples the raster, quantizes each channel to
// 16-value buckets and returns the up-to-five most frequent quantized
// colors. Ties are broken by first appearance in sampling order.
func DominantColors(src image.Image) []ColorSample {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	n := w * h
	if n == 0 {
		return nil
	}

	stride := n / maxSampledPixels
	if stride < 1 {
		stride = 1
	}

	counts := make(map[[3]uint8]int)
	var order [][3]uint8
	for idx := 0; idx < n; idx += stride {
		x := bounds.Min.X + idx%w
		y := bounds.Min.Y + idx/w
		r32, g32, b32, _ := src.At(x, y).RGBA()
		key := [3]uint8{
			quantize(uint8(r32 >> 8)),
			quantize(uint8(g32 >> 8)),
			quantize(uint8(b32 >> 8)),
		}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	// Stable on a first-seen slice, so equal counts keep sampling order.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > maxDominantColors {
		order = order[:maxDominantColors]
	}

	samples := make([]ColorSample, len(order))
	for i, key := range order {
		hue, sat, val := rgbToHSV(key[0], key[1], key[2])
		samples[i] = ColorSample{
			R: key[0], G: key[1], B: key[2],
			Hue: hue, Saturation: sat, Value: val,
			Count: counts[key],
		}
	}
	return samples
}

func quantize(v uint8) uint8 {
	return v / quantStep * quantStep
}

// rgbToHSV implements the hexagonal projection with hue in degrees.
func rgbToHSV(r8, g8, b8 uint8) (hue, sat, val float64) {
	r := float64(r8) / 255
	g := float64(g8) / 255
	b := float64(b8) / 255

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min

	val = max
	if max > 0 {
		sat = delta / max
	}
	if delta == 0 {
		return 0, sat, val
	}

	switch max {
	case r:
		hue = 60 * math.Mod((g-b)/delta, 6)
	case g:
		hue = 60 * ((b-r)/delta + 2)
	default:
		hue = 60 * ((r-g)/delta + 4)
	}
	if hue < 0 {
		hue += 360
	}
	return hue, sat, val
}
