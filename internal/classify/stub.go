package classify

import (
	"github.com/poko950615-bit/mnist-app/internal/tile"
)

// Stub is a classifier that answers every tile with a fixed digit and
// confidence. It exists for tests and for wiring the pipeline without a
// recognition backend.
type Stub struct {
	Digit      int
	Confidence float64
}

// NewStub returns a stub answering with the given digit at 0.99 confidence.
func NewStub(digit int) *Stub {
	return &Stub{Digit: digit, Confidence: 0.99}
}

// Classify returns a probability vector with Confidence at Digit and the
// remaining mass spread evenly over the other classes.
func (s *Stub) Classify(_ *tile.Tile) ([NumClasses]float64, error) {
	var probs [NumClasses]float64
	rest := (1 - s.Confidence) / float64(NumClasses-1)
	for i := range probs {
		probs[i] = rest
	}
	probs[s.Digit] = s.Confidence
	return probs, nil
}
