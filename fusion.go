package photoscore

// Fusion weights. With faces present the three components sum to a full
// 1.0 weight; without faces the two pre-weighted components are each halved
// again, which leaves an effective 0.2+0.2 weighting instead of a
// renormalized 0.5/0.5. Historical scores depend on that exact arithmetic,
// so it is preserved rather than corrected (see DESIGN.md).
const (
	technicalWeight = 0.4
	aestheticWeight = 0.4
	faceWeight      = 0.2
	noFaceDiscount  = 0.5
)

func fuse(t TechnicalQuality, a Aesthetic, f FaceExpression) float64 {
	technical := t.Overall * technicalWeight
	aesthetic := a.Mean / 10 * aestheticWeight

	var overall float64
	if f.FaceCount > 0 {
		overall = technical + aesthetic + f.Best*faceWeight
	} else {
		overall = technical*noFaceDiscount + aesthetic*noFaceDiscount
	}

	if overall < 0 {
		return 0
	}
	if overall > 1 {
		return 1
	}
	return overall
}
