package photoscore

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	images map[string]image.Image
	fails  map[string]error
}

func (p *fakeProvider) Fetch(ctx context.Context, ref string, width, height int) (image.Image, error) {
	if err, ok := p.fails[ref]; ok {
		return nil, err
	}
	img, ok := p.images[ref]
	if !ok {
		return nil, fmt.Errorf("unknown ref %q", ref)
	}
	return img, nil
}

type fakeDetector struct {
	faces map[string][]ExpressionVector
	fails map[string]error
}

func (d *fakeDetector) Detect(ctx context.Context, photoID string, img image.Image) ([]ExpressionVector, error) {
	if err, ok := d.fails[photoID]; ok {
		return nil, err
	}
	return d.faces[photoID], nil
}

// checkerImage maximizes the sharpness proxy, flat images minimize it.
func checkerImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{0, 0, 0, 255}
			if (x+y)%2 == 0 {
				c = color.RGBA{255, 255, 255, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func newTestRunner(t *testing.T, provider RasterProvider, detector ExpressionDetector, opts ...RunnerOption) *Runner {
	t.Helper()
	engine, err := New()
	require.NoError(t, err)
	r, err := NewRunner(engine, provider, detector, opts...)
	require.NoError(t, err)
	return r
}

func TestNewRunnerValidation(t *testing.T) {
	engine, err := New()
	require.NoError(t, err)
	provider := &fakeProvider{}

	t.Run("missing engine", func(t *testing.T) {
		_, err := NewRunner(nil, provider, nil)
		assert.Error(t, err)
	})
	t.Run("missing provider", func(t *testing.T) {
		_, err := NewRunner(engine, nil, nil)
		assert.Error(t, err)
	})
	t.Run("invalid workers", func(t *testing.T) {
		_, err := NewRunner(engine, provider, nil, WithWorkers(0))
		assert.Error(t, err)
	})
	t.Run("invalid working size", func(t *testing.T) {
		_, err := NewRunner(engine, provider, nil, WithWorkingSize(0, 100))
		assert.Error(t, err)
	})
}

func TestRunSkipSemantics(t *testing.T) {
	provider := &fakeProvider{
		images: map[string]image.Image{
			"a.jpg": checkerImage(32, 32),
			"c.jpg": checkerImage(32, 32),
		},
		fails: map[string]error{
			"b.jpg": errors.New("decode failed"),
		},
	}
	runner := newTestRunner(t, provider, nil)

	photos := []Photo{
		{ID: "A", Ref: "a.jpg"},
		{ID: "B", Ref: "b.jpg"},
		{ID: "C", Ref: "c.jpg"},
	}

	var percents []int
	results, err := runner.Run(context.Background(), photos, func(p int) {
		percents = append(percents, p)
	})
	require.NoError(t, err)

	// The failed photo is absent; progress still covers every photo.
	require.Len(t, results, 2)
	for _, r := range results {
		assert.NotEqual(t, "B", r.PhotoID)
	}
	require.Len(t, percents, 3)
	assert.Equal(t, []int{33, 67, 100}, percents)
}

func TestRunRankingOrder(t *testing.T) {
	provider := &fakeProvider{
		images: map[string]image.Image{
			"sharp.jpg": checkerImage(64, 64),
			"flat.jpg":  flatImage(64, 64, color.RGBA{128, 128, 128, 255}),
		},
	}
	detector := &fakeDetector{
		faces: map[string][]ExpressionVector{
			"sharp": {{Happy: 1}},
		},
	}
	runner := newTestRunner(t, provider, detector)

	photos := []Photo{
		{ID: "flat", Ref: "flat.jpg"},
		{ID: "sharp", Ref: "sharp.jpg"},
	}
	results, err := runner.Run(context.Background(), photos, nil)
	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "sharp", results[0].PhotoID)
	for i := 0; i+1 < len(results); i++ {
		assert.GreaterOrEqual(t, results[i].Overall, results[i+1].Overall)
	}
}

func TestRunStableTieBreak(t *testing.T) {
	img := checkerImage(32, 32)
	provider := &fakeProvider{
		images: map[string]image.Image{"same.jpg": img},
	}
	runner := newTestRunner(t, provider, nil)

	photos := []Photo{
		{ID: "first", Ref: "same.jpg"},
		{ID: "second", Ref: "same.jpg"},
		{ID: "third", Ref: "same.jpg"},
	}
	results, err := runner.Run(context.Background(), photos, nil)
	require.NoError(t, err)
	require.Len(t, results, 3)

	// Identical scores keep submission order.
	assert.Equal(t, "first", results[0].PhotoID)
	assert.Equal(t, "second", results[1].PhotoID)
	assert.Equal(t, "third", results[2].PhotoID)
}

func TestRunDetectorFailureDegrades(t *testing.T) {
	provider := &fakeProvider{
		images: map[string]image.Image{"a.jpg": checkerImage(32, 32)},
	}
	detector := &fakeDetector{
		fails: map[string]error{"A": errors.New("detector crashed")},
	}
	runner := newTestRunner(t, provider, detector)

	results, err := runner.Run(context.Background(), []Photo{{ID: "A", Ref: "a.jpg"}}, nil)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Zero(t, results[0].Faces.FaceCount)
}

func TestRunParallelMatchesSequential(t *testing.T) {
	images := make(map[string]image.Image)
	var photos []Photo
	for i := 0; i < 12; i++ {
		ref := fmt.Sprintf("img-%d.jpg", i)
		images[ref] = gradientImage(32+i, 32)
		photos = append(photos, Photo{ID: fmt.Sprintf("p%d", i), Ref: ref})
	}
	provider := &fakeProvider{images: images}

	sequential := newTestRunner(t, provider, nil)
	parallel := newTestRunner(t, provider, nil, WithWorkers(4))

	want, err := sequential.Run(context.Background(), photos, nil)
	require.NoError(t, err)
	got, err := parallel.Run(context.Background(), photos, nil)
	require.NoError(t, err)

	assert.Equal(t, want, got)
}

func TestRunCancellation(t *testing.T) {
	provider := &fakeProvider{
		images: map[string]image.Image{"a.jpg": checkerImage(16, 16)},
	}
	runner := newTestRunner(t, provider, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, []Photo{{ID: "A", Ref: "a.jpg"}}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunEmptyBatch(t *testing.T) {
	runner := newTestRunner(t, &fakeProvider{}, nil)
	results, err := runner.Run(context.Background(), nil, func(int) {
		t.Fatal("progress must not fire for an empty batch")
	})
	require.NoError(t, err)
	assert.Empty(t, results)
}
