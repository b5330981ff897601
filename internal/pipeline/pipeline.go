package pipeline

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/poko950615-bit/mnist-app/internal/classify"
	"github.com/poko950615-bit/mnist-app/internal/raster"
	"github.com/poko950615-bit/mnist-app/internal/segment"
	"github.com/poko950615-bit/mnist-app/internal/tile"
)

// Bounds is a rectangular bounding box in pixel coordinates: (X1, Y1)
// top-left inclusive, (X2, Y2) bottom-right exclusive.
type Bounds struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// DigitRegion is one recognized digit with its location and confidence.
type DigitRegion struct {
	// Bounds encloses the glyph in source-image coordinates.
	Bounds Bounds `json:"bounds"`

	// Digit is the recognized class, 0-9.
	Digit int `json:"digit"`

	// Confidence is the classifier's probability for Digit (0-1).
	Confidence float64 `json:"confidence"`
}

// Result is the outcome of recognizing one frame.
type Result struct {
	// Regions holds recognized digits sorted by ascending X (reading
	// order). Empty when the frame contains no digits; that is a valid
	// terminal state.
	Regions []DigitRegion `json:"regions"`

	// Text is the concatenated digit string in left-to-right order.
	Text string `json:"text"`

	// Count is len(Regions).
	Count int `json:"count"`
}

// Pipeline binds a processing profile to a classifier. The zero value is not
// usable; construct with New.
type Pipeline struct {
	// Profile carries all segmentation and confidence tunables.
	Profile segment.Profile

	// Classifier turns tiles into per-class probabilities. Required for
	// Recognize; Segment works without one.
	Classifier classify.Classifier

	// Workers > 1 classifies region tiles concurrently. Results are
	// re-joined by region index, so ordering is unaffected.
	Workers int
}

// New returns a pipeline with the given profile and classifier and
// sequential classification.
func New(profile segment.Profile, classifier classify.Classifier) *Pipeline {
	return &Pipeline{Profile: profile, Classifier: classifier, Workers: 1}
}

// Segment runs the frame through denoising, Otsu binarization, component
// labeling, and profile filtering. It returns the binary mask and the
// surviving regions sorted by ascending X, before any touching-digit
// splitting.
func (p *Pipeline) Segment(img *raster.Image) (*raster.Image, []segment.Component, error) {
	if err := validate(img); err != nil {
		return nil, nil, err
	}
	smoothed := segment.Denoise(img)
	mask := segment.Binarize(smoothed, segment.OtsuThreshold(smoothed))
	comps := segment.Components(mask)
	regions := segment.FilterComponents(comps, img.Width, img.Height, p.Profile)
	return mask, regions, nil
}

// Recognize processes one frame end-to-end and returns the ordered digits.
//
// Regions suspected of holding two touching digits are split before
// classification; their results are concatenated in x-order like ordinary
// regions. Regions classified below the profile's confidence floor are
// dropped. See the package documentation for the error semantics.
func (p *Pipeline) Recognize(img *raster.Image) (*Result, error) {
	if p.Classifier == nil {
		return nil, fmt.Errorf("%w: pipeline has no classifier", classify.ErrUnavailable)
	}

	mask, regions, err := p.Segment(img)
	if err != nil {
		return nil, err
	}

	var candidates []segment.Component
	for _, r := range regions {
		candidates = append(candidates, segment.Split(mask, r)...)
	}

	classified, err := p.classifyAll(mask, candidates)
	if err != nil {
		return nil, err
	}

	result := &Result{Regions: make([]DigitRegion, 0, len(classified))}
	var text strings.Builder
	for _, dr := range classified {
		if dr == nil || dr.Confidence < p.Profile.MinConfidence {
			continue
		}
		result.Regions = append(result.Regions, *dr)
		text.WriteString(strconv.Itoa(dr.Digit))
	}
	result.Text = text.String()
	result.Count = len(result.Regions)
	return result, nil
}

// RecognizeRGBA converts a packed RGBA buffer (drawing-surface snapshot,
// camera frame, decoded upload) and recognizes it. The buffer is not
// retained.
func (p *Pipeline) RecognizeRGBA(pix []uint8, width, height int) (*Result, error) {
	img, err := raster.FromRGBA(pix, width, height)
	if err != nil {
		return nil, err
	}
	return p.Recognize(img)
}

// classifyAll normalizes and classifies every candidate, preserving slice
// order. Entries that fail locally come back nil; a classifier that is
// unavailable aborts the whole frame.
func (p *Pipeline) classifyAll(mask *raster.Image, candidates []segment.Component) ([]*DigitRegion, error) {
	out := make([]*DigitRegion, len(candidates))
	errs := make([]error, len(candidates))

	work := func(i int, c segment.Component) {
		t := tile.Normalize(mask, c)
		probs, err := p.Classifier.Classify(t)
		if err != nil {
			errs[i] = err
			return
		}
		digit, confidence := classify.Argmax(probs)
		out[i] = &DigitRegion{
			Bounds:     Bounds{X1: c.X, Y1: c.Y, X2: c.X + c.W, Y2: c.Y + c.H},
			Digit:      digit,
			Confidence: confidence,
		}
	}

	if p.Workers > 1 && len(candidates) > 1 {
		sem := make(chan struct{}, p.Workers)
		var wg sync.WaitGroup
		for i, c := range candidates {
			wg.Add(1)
			sem <- struct{}{}
			go func(i int, c segment.Component) {
				defer wg.Done()
				defer func() { <-sem }()
				work(i, c)
			}(i, c)
		}
		wg.Wait()
	} else {
		for i, c := range candidates {
			work(i, c)
		}
	}

	// A dead backend aborts the frame; any other per-region failure only
	// drops that region.
	for _, err := range errs {
		if err != nil && errors.Is(err, classify.ErrUnavailable) {
			return nil, err
		}
	}
	return out, nil
}

func validate(img *raster.Image) error {
	if img == nil {
		return errors.New("nil input image")
	}
	if img.Width <= 0 || img.Height <= 0 {
		return fmt.Errorf("invalid image dimensions %dx%d", img.Width, img.Height)
	}
	if len(img.Pix) != img.Width*img.Height {
		return fmt.Errorf("pixel buffer length %d does not match %dx%d",
			len(img.Pix), img.Width, img.Height)
	}
	return nil
}
