// Package fetch provides an HTTP raster provider: photo references are
// URLs, responses are disk-cached, and decoded images are center-cropped
// and scaled to the requested working size.
package fetch

import (
	"context"
	"fmt"
	"image"
	"net/http"

	_ "image/jpeg"
	_ "image/png"

	"github.com/yyyoichi/httpcache-go"
	"golang.org/x/image/draw"
)

// Provider fetches and resizes photos over HTTP. It satisfies
// photoscore.RasterProvider.
type Provider struct {
	client httpcache.Client
}

// New creates a provider caching responses under cacheDir.
func New(cacheDir string) *Provider {
	return &Provider{
		client: httpcache.Client{
			Client:  http.DefaultClient,
			Cache:   httpcache.NewStorageCache(cacheDir),
			Handler: httpcache.NewDefaultHandler(),
		},
	}
}

// Fetch downloads and decodes ref, then resizes it to width x height with a
// center crop. Non-positive dimensions return the image as decoded.
func (p *Provider) Fetch(ctx context.Context, ref string, width, height int) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, err := p.client.Get(ref)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %d", resp.StatusCode)
	}

	src, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if width < 1 || height < 1 {
		return src, nil
	}
	return Resize(src, width, height), nil
}

// Resize center-crops src to the target aspect ratio and scales it to
// width x height with the CatmullRom filter.
func Resize(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, cropRect(src.Bounds(), width, height), draw.Over, nil)
	return dst
}

// cropRect returns the largest centered sub-rectangle of bounds with the
// target aspect ratio.
func cropRect(bounds image.Rectangle, targetWidth, targetHeight int) image.Rectangle {
	width := bounds.Dx()
	height := bounds.Dy()
	srcRatio := float64(width) / float64(height)
	targetRatio := float64(targetWidth) / float64(targetHeight)

	switch {
	case srcRatio > targetRatio:
		// source too wide - center crop
		newWidth := int(float64(height) * targetRatio)
		x := (width - newWidth) / 2
		return image.Rect(bounds.Min.X+x, bounds.Min.Y, bounds.Min.X+x+newWidth, bounds.Max.Y)
	case srcRatio < targetRatio:
		// source too tall - center crop
		newHeight := int(float64(width) / targetRatio)
		y := (height - newHeight) / 2
		return image.Rect(bounds.Min.X, bounds.Min.Y+y, bounds.Max.X, bounds.Min.Y+y+newHeight)
	default:
		return bounds
	}
}
