package photoscore

import "fmt"

type Option func(*Engine) error

// WithEdgeThreshold sets the gradient magnitude above which a pixel counts
// as an edge during composition analysis. Lower values make the rule-of-
// thirds and balance metrics react to fainter structure.
func WithEdgeThreshold(threshold float64) Option {
	return func(e *Engine) error {
		if threshold <= 0 {
			return fmt.Errorf("edge threshold must be positive, got %v", threshold)
		}
		e.edgeThreshold = threshold
		return nil
	}
}
