package classify

import (
	"math"
	"testing"

	"github.com/poko950615-bit/mnist-app/internal/tile"
)

func TestArgmax(t *testing.T) {
	var probs [NumClasses]float64
	probs[7] = 0.6
	probs[3] = 0.3

	digit, conf := Argmax(probs)
	if digit != 7 || conf != 0.6 {
		t.Errorf("got (%d, %f), want (7, 0.6)", digit, conf)
	}
}

func TestArgmax_AllZero(t *testing.T) {
	var probs [NumClasses]float64
	digit, conf := Argmax(probs)
	if digit != 0 || conf != 0 {
		t.Errorf("got (%d, %f), want (0, 0)", digit, conf)
	}
}

func TestStub_Distribution(t *testing.T) {
	s := NewStub(4)
	probs, err := s.Classify(&tile.Tile{})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}

	digit, conf := Argmax(probs)
	if digit != 4 {
		t.Errorf("argmax: got %d, want 4", digit)
	}
	if conf != 0.99 {
		t.Errorf("confidence: got %f, want 0.99", conf)
	}

	var sum float64
	for _, p := range probs {
		sum += p
	}
	if math.Abs(sum-1) > 1e-9 {
		t.Errorf("probabilities sum to %f, want 1", sum)
	}
}
