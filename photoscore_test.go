package photoscore

import (
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradientImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8((x*7 + y*13) % 256)
			img.SetRGBA(x, y, color.RGBA{v, uint8(255 - int(v)), v / 2, 255})
		}
	}
	return img
}

func flatImage(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestFuse(t *testing.T) {
	test := []struct {
		name string
		t    TechnicalQuality
		a    Aesthetic
		f    FaceExpression
		want float64
	}{
		{
			name: "with faces",
			t:    TechnicalQuality{Overall: 0.8},
			a:    Aesthetic{Mean: 7.5},
			f:    FaceExpression{FaceCount: 2, Best: 0.9},
			want: 0.8*0.4 + 0.75*0.4 + 0.9*0.2,
		},
		{
			// The no-face branch halves the two pre-weighted terms
			// instead of renormalizing; pinned here on purpose.
			name: "no faces keeps the historical halving",
			t:    TechnicalQuality{Overall: 0.8},
			a:    Aesthetic{Mean: 7.5},
			f:    FaceExpression{},
			want: (0.8*0.4)*0.5 + (0.75*0.4)*0.5,
		},
		{
			name: "perfect photo with faces hits one",
			t:    TechnicalQuality{Overall: 1},
			a:    Aesthetic{Mean: 10},
			f:    FaceExpression{FaceCount: 1, Best: 1},
			want: 1,
		},
		{
			name: "everything zero",
			t:    TechnicalQuality{},
			a:    Aesthetic{Mean: 1},
			f:    FaceExpression{},
			want: (0.1 * 0.4) * 0.5,
		},
	}
	for _, tt := range test {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, fuse(tt.t, tt.a, tt.f), 1e-12)
		})
	}
}

func TestNewOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		e, err := New()
		require.NoError(t, err)
		assert.Equal(t, 30.0, e.edgeThreshold)
	})

	t.Run("custom edge threshold", func(t *testing.T) {
		e, err := New(WithEdgeThreshold(12))
		require.NoError(t, err)
		assert.Equal(t, 12.0, e.edgeThreshold)
	})

	t.Run("invalid edge threshold", func(t *testing.T) {
		_, err := New(WithEdgeThreshold(-1))
		assert.Error(t, err)
	})
}

func TestScoreErrors(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	t.Run("nil image", func(t *testing.T) {
		_, err := e.Score(context.Background(), "p", nil, nil)
		assert.ErrorIs(t, err, ErrNoPixels)
	})

	t.Run("zero area image", func(t *testing.T) {
		_, err := e.Score(context.Background(), "p", image.NewRGBA(image.Rect(0, 0, 0, 0)), nil)
		assert.ErrorIs(t, err, ErrNoPixels)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := e.Score(ctx, "p", gradientImage(8, 8), nil)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestScoreDeterminism(t *testing.T) {
	img := gradientImage(96, 64)
	faces := []ExpressionVector{
		{Happy: 0.7, Neutral: 0.2, Surprised: 0.1},
		{Sad: 0.6, Neutral: 0.4},
	}

	first, err := Score(context.Background(), "photo-1", img, faces)
	require.NoError(t, err)
	second, err := Score(context.Background(), "photo-1", img, faces)
	require.NoError(t, err)

	// Pure function of the inputs: results must be bit-identical.
	assert.Equal(t, first, second)
}

func TestScoreRanges(t *testing.T) {
	images := map[string]image.Image{
		"gradient":  gradientImage(64, 64),
		"flat gray": flatImage(64, 64, color.RGBA{128, 128, 128, 255}),
		"black":     flatImage(64, 64, color.RGBA{0, 0, 0, 255}),
		"white":     flatImage(64, 64, color.RGBA{255, 255, 255, 255}),
		"tiny":      flatImage(1, 1, color.RGBA{9, 200, 30, 255}),
	}
	for name, img := range images {
		t.Run(name, func(t *testing.T) {
			a, err := Score(context.Background(), name, img, []ExpressionVector{{Happy: 0.5}})
			require.NoError(t, err)

			bounded := []float64{
				a.Technical.Blur, a.Technical.Noise, a.Technical.Exposure, a.Technical.Overall,
				a.Aesthetic.Harmony, a.Aesthetic.Composition, a.Aesthetic.Contrast,
				a.Faces.Best, a.Overall,
			}
			for _, v := range bounded {
				assert.GreaterOrEqual(t, v, 0.0)
				assert.LessOrEqual(t, v, 1.0)
			}
			assert.GreaterOrEqual(t, a.Aesthetic.Mean, 1.0)
			assert.LessOrEqual(t, a.Aesthetic.Mean, 10.0)

			var sum float64
			for _, p := range a.Aesthetic.Distribution {
				assert.GreaterOrEqual(t, p, 0.0)
				sum += p
			}
			assert.InDelta(t, 1.0, sum, 1e-6)
		})
	}
}

func TestScoreFlatGrayReference(t *testing.T) {
	// The canonical degenerate photo: zero Laplacian variance, one clean
	// uniform block region, neutral composition, no palette.
	a, err := Score(context.Background(), "flat", flatImage(64, 64, color.RGBA{128, 128, 128, 255}), nil)
	require.NoError(t, err)

	assert.Zero(t, a.Technical.Blur)
	assert.InDelta(t, 1.0, a.Technical.Noise, 1e-9)
	assert.InDelta(t, 0.5, a.Technical.Exposure, 1e-9)
	assert.Zero(t, a.Aesthetic.Harmony)
	assert.Zero(t, a.Aesthetic.Contrast)
	assert.Zero(t, a.Faces.FaceCount)
}
