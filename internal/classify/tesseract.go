package classify

import (
	"fmt"
	"image/png"
	"os"
	"strconv"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"

	"github.com/poko950615-bit/mnist-app/internal/tile"
)

// tessScale upscales the 28x28 tile before OCR; Tesseract recognizes glyphs
// poorly below roughly 20pt equivalent.
const tessScale = 5

// unknownProb is the uniform probability assigned when Tesseract recognizes
// nothing in a tile. It sits below every profile's confidence floor, so such
// regions drop out instead of producing a silently wrong label.
const unknownProb = 0.05

// Tesseract classifies tiles with the Tesseract OCR engine via gosseract,
// restricted to the 0-9 whitelist in single-character page segmentation
// mode.
//
// Each Classify call uses its own gosseract client, so the adapter is safe
// for concurrent use. Engine failures (missing installation, bad language
// data) surface as errors wrapping ErrUnavailable.
type Tesseract struct {
	// Language is the Tesseract language code, default "eng".
	Language string
}

// NewTesseract returns an adapter using the given language code, or "eng"
// when empty.
func NewTesseract(language string) *Tesseract {
	if language == "" {
		language = "eng"
	}
	return &Tesseract{Language: language}
}

// Classify renders the tile to a temporary PNG, runs single-character OCR on
// it, and maps the recognized digit's word confidence into a probability
// vector. When the engine runs but recognizes no digit, a uniform
// low-probability vector is returned so the region fails the confidence
// floor downstream.
func (c *Tesseract) Classify(t *tile.Tile) ([NumClasses]float64, error) {
	var probs [NumClasses]float64

	path, err := c.renderTemp(t)
	if err != nil {
		return probs, err
	}
	defer os.Remove(path)

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(c.Language); err != nil {
		return probs, fmt.Errorf("%w: set language: %v", ErrUnavailable, err)
	}
	if err := client.SetWhitelist("0123456789"); err != nil {
		return probs, fmt.Errorf("%w: set whitelist: %v", ErrUnavailable, err)
	}
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_CHAR); err != nil {
		return probs, fmt.Errorf("%w: set page seg mode: %v", ErrUnavailable, err)
	}
	if err := client.SetImage(path); err != nil {
		return probs, fmt.Errorf("%w: set image: %v", ErrUnavailable, err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_SYMBOL)
	if err != nil {
		return probs, fmt.Errorf("%w: recognize: %v", ErrUnavailable, err)
	}

	digit, confidence := -1, 0.0
	for _, box := range boxes {
		if len(box.Word) == 0 {
			continue
		}
		d, err := strconv.Atoi(box.Word[:1])
		if err != nil {
			continue
		}
		digit = d
		confidence = float64(box.Confidence) / 100.0
		break
	}

	if digit < 0 {
		for i := range probs {
			probs[i] = unknownProb
		}
		return probs, nil
	}

	rest := (1 - confidence) / float64(NumClasses-1)
	for i := range probs {
		probs[i] = rest
	}
	probs[digit] = confidence
	return probs, nil
}

// renderTemp writes the tile as an upscaled, polarity-flipped PNG (Tesseract
// expects dark glyphs on a light page) and returns the file path. The caller
// removes the file.
func (c *Tesseract) renderTemp(t *tile.Tile) (string, error) {
	gray := t.ToGray()
	for i, v := range gray.Pix {
		gray.Pix[i] = 255 - v
	}
	big := imaging.Resize(gray, tile.Size*tessScale, tile.Size*tessScale, imaging.NearestNeighbor)

	f, err := os.CreateTemp("", "digit-tile-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if err := png.Encode(f, big); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to encode tile: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
