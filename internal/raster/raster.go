package raster

import (
	"image"
	"math"
)

// ITU-R BT.601 luma coefficients.
const (
	lr = 0.299
	lg = 0.587
	lb = 0.114
)

// Buffer is the luma plane of a decoded photo. It is derived once per photo
// and shared read-only by the blur, noise, exposure and edge stages. A Buffer
// belongs to a single pipeline invocation and is never reused across photos.
type Buffer struct {
	Width, Height int
	Luma          []uint8
}

// New converts a decoded raster into a Buffer, ignoring alpha.
// Each pixel becomes round(0.299*R + 0.587*G + 0.114*B).
func New(src image.Image) Buffer {
	bounds := src.Bounds()
	var b Buffer
	b.Width, b.Height = bounds.Dx(), bounds.Dy()
	b.Luma = make([]uint8, b.Width*b.Height)

	idx := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r32, g32, b32, _ := src.At(x, y).RGBA()
			r := float64(r32 >> 8)
			g := float64(g32 >> 8)
			bl := float64(b32 >> 8)
			v := math.Round(lr*r + lg*g + lb*bl)
			if v > 255 {
				v = 255
			}
			b.Luma[idx] = uint8(v)
			idx++
		}
	}
	return b
}

// At returns the luma at (x, y). The caller is responsible for bounds.
func (b Buffer) At(x, y int) uint8 {
	return b.Luma[y*b.Width+x]
}

// Area returns the pixel count.
func (b Buffer) Area() int {
	return b.Width * b.Height
}

// Histogram returns the 256-bin luma histogram normalized by pixel count.
// For an empty buffer all bins are zero.
func (b Buffer) Histogram() [256]float64 {
	var hist [256]float64
	if len(b.Luma) == 0 {
		return hist
	}
	for _, v := range b.Luma {
		hist[v]++
	}
	n := float64(len(b.Luma))
	for i := range hist {
		hist[i] /= n
	}
	return hist
}
