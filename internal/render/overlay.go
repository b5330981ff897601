// Package render draws recognition results back onto a copy of the source
// image for visual inspection. It is a debug surface for external
// collaborators; nothing in the pipeline depends on it.
package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/poko950615-bit/mnist-app/internal/pipeline"
)

// goldenAngle spaces region hues maximally apart regardless of count.
const goldenAngle = 137.5

// OverlayResult contains the annotated image encoded as base64 PNG.
type OverlayResult struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// Annotate draws each region's bounding box in a distinct color, labeled
// with its recognized digit, onto a copy of the source image. The source is
// never mutated.
func Annotate(img image.Image, regions []pipeline.DigitRegion) (*OverlayResult, error) {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	for i, r := range regions {
		c := regionColor(i)
		drawBox(out, r.Bounds, c)
		drawLabel(out, r.Bounds.X1+2, r.Bounds.Y1+2, fmt.Sprintf("%d", r.Digit), c)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil, fmt.Errorf("failed to encode overlay: %w", err)
	}
	return &OverlayResult{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// regionColor picks a vivid, well-separated hue for region index i.
func regionColor(i int) color.RGBA {
	hue := float64(i) * goldenAngle
	for hue >= 360 {
		hue -= 360
	}
	r, g, b := colorful.Hsv(hue, 0.85, 0.95).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// drawBox outlines a bounding rectangle, clipped to the image.
func drawBox(img *image.RGBA, b pipeline.Bounds, c color.RGBA) {
	for x := b.X1; x < b.X2; x++ {
		setClipped(img, x, b.Y1, c)
		setClipped(img, x, b.Y2-1, c)
	}
	for y := b.Y1; y < b.Y2; y++ {
		setClipped(img, b.X1, y, c)
		setClipped(img, b.X2-1, y, c)
	}
}

func setClipped(img *image.RGBA, x, y int, c color.RGBA) {
	bounds := img.Bounds()
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		img.Set(x, y, c)
	}
}

// digitGlyphs is a 3x5 pixel font covering the ten digit classes.
var digitGlyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
}

// drawLabel renders a short digit string with a dark backing patch so the
// label stays readable over any glyph.
func drawLabel(img *image.RGBA, x, y int, text string, fg color.RGBA) {
	const charWidth = 4
	bg := color.RGBA{0, 0, 0, 180}

	labelWidth := len(text) * charWidth
	for dy := -1; dy < 6; dy++ {
		for dx := -1; dx < labelWidth; dx++ {
			setClipped(img, x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		glyph, ok := digitGlyphs[ch]
		if !ok {
			cx += charWidth
			continue
		}
		for row, line := range glyph {
			for col, pixel := range line {
				if pixel == '1' {
					setClipped(img, cx+col, y+row, fg)
				}
			}
		}
		cx += charWidth
	}
}
