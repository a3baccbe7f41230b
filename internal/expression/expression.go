// Package expression reduces externally detected per-face emotion
// probabilities to a single desirability score. Detection itself happens
// outside this engine; vectors are clipped on ingestion rather than trusting
// the producer.
package expression

// Per-emotion desirability weights. Happy expressions dominate, neutral is
// acceptable, surprise is mildly positive, negative affect states are
// penalized lightly rather than disqualifying a photo.
const (
	happyWeight    = 1.0
	neutralWeight  = 0.7
	surpriseWeight = 0.5
	negativeWeight = 0.1
)

// Vector is one face's probability distribution over the fixed emotion
// vocabulary. Every component is expected in [0, 1].
type Vector struct {
	Happy     float64 `json:"happy"`
	Sad       float64 `json:"sad"`
	Angry     float64 `json:"angry"`
	Fearful   float64 `json:"fearful"`
	Disgusted float64 `json:"disgusted"`
	Surprised float64 `json:"surprised"`
	Neutral   float64 `json:"neutral"`
}

// Clip returns the vector with every component forced into [0, 1].
func (v Vector) Clip() Vector {
	v.Happy = clamp01(v.Happy)
	v.Sad = clamp01(v.Sad)
	v.Angry = clamp01(v.Angry)
	v.Fearful = clamp01(v.Fearful)
	v.Disgusted = clamp01(v.Disgusted)
	v.Surprised = clamp01(v.Surprised)
	v.Neutral = clamp01(v.Neutral)
	return v
}

// Desirability is the weighted affect total of one face. It may fall outside
// [0, 1]; the caller clamps the best-of result.
func (v Vector) Desirability() float64 {
	return happyWeight*v.Happy +
		neutralWeight*v.Neutral +
		surpriseWeight*v.Surprised -
		negativeWeight*(v.Sad+v.Angry+v.Fearful+v.Disgusted)
}

// Result is the expression verdict of a single photo.
type Result struct {
	FaceCount int
	// Faces holds the clipped input vectors.
	Faces []Vector
	// Best is the highest per-face desirability, clamped into [0, 1].
	Best float64
}

// Score reduces the detected faces to one scalar. An empty input yields a
// zero result.
func Score(faces []Vector) Result {
	if len(faces) == 0 {
		return Result{}
	}
	r := Result{
		FaceCount: len(faces),
		Faces:     make([]Vector, 0, len(faces)),
	}
	best := faces[0].Clip().Desirability()
	for _, f := range faces {
		f = f.Clip()
		r.Faces = append(r.Faces, f)
		if d := f.Desirability(); d > best {
			best = d
		}
	}
	r.Best = clamp01(best)
	return r
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
