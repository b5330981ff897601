package classify

import (
	"errors"

	"github.com/poko950615-bit/mnist-app/internal/tile"
)

// NumClasses is the number of digit classes (0-9).
const NumClasses = 10

// ErrUnavailable indicates the classifier backend cannot run at all, as
// opposed to running and recognizing nothing. Wrap it with context and check
// with errors.Is.
var ErrUnavailable = errors.New("classifier unavailable")

// Classifier turns a normalized tile into per-class probabilities.
//
// Implementations must be safe for concurrent use: the pipeline may classify
// several regions of one frame in parallel.
type Classifier interface {
	// Classify returns a probability for each digit class 0-9. The caller
	// takes argmax as the label and that probability as the confidence.
	Classify(t *tile.Tile) ([NumClasses]float64, error)
}

// Argmax returns the most probable class and its probability.
func Argmax(probs [NumClasses]float64) (digit int, confidence float64) {
	for i, p := range probs {
		if p > confidence {
			digit = i
			confidence = p
		}
	}
	return digit, confidence
}
