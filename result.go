package photoscore

import (
	"github.com/oj-kentd/photo-analysis-app/internal/expression"
)

// ExpressionVector is one face's probability distribution over the fixed
// emotion vocabulary, as produced by an external detector.
type ExpressionVector = expression.Vector

// TechnicalQuality is the sharpness/noise/exposure verdict of one photo.
// Every field lies in [0, 1].
type TechnicalQuality struct {
	Blur     float64
	Noise    float64
	Exposure float64
	Overall  float64
}

// Aesthetic is the composition/color/contrast verdict of one photo.
// Component scores lie in [0, 1], Mean in [1, 10]. Distribution spreads
// Mean over the ten score buckets and sums to 1; it is a presentation
// artifact, not a fitted confidence model.
type Aesthetic struct {
	Harmony      float64
	Composition  float64
	Contrast     float64
	Mean         float64
	Distribution [10]float64
}

// FaceExpression is the expression verdict of one photo. Faces holds the
// clipped detector output; Best lies in [0, 1] and is 0 when no face was
// detected.
type FaceExpression struct {
	FaceCount int
	Faces     []ExpressionVector
	Best      float64
}

// Analysis is the final per-photo verdict. It is immutable once assembled.
type Analysis struct {
	PhotoID   string
	Technical TechnicalQuality
	Aesthetic Aesthetic
	Faces     FaceExpression
	// Overall is the fused ranking score in [0, 1].
	Overall float64
}
