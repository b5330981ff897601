package tile

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/effect"
	bildsegment "github.com/anthonynsimon/bild/segment"
	"github.com/anthonynsimon/bild/transform"

	"github.com/poko950615-bit/mnist-app/internal/raster"
	"github.com/poko950615-bit/mnist-app/internal/segment"
)

// Size is the side length of every normalized tile.
const Size = 28

// center is the target coordinate for the intensity centroid.
const center = 14.0

// padRatio controls the dynamic background margin around the glyph.
const padRatio = 0.45

// rebinarizeLevel guards against sub-255 mask values from upstream
// resampling.
const rebinarizeLevel = 128

// dilateRadius is the max-filter radius used to thicken strokes.
const dilateRadius = 1.0

// Tile is a fixed 28x28 float buffer with values in [0, 1], row-major.
// Tiles are transient: produced per region and consumed immediately by the
// classifier.
type Tile struct {
	Pix [Size * Size]float32
}

// At returns the value at (x, y). No bounds checking is performed.
func (t *Tile) At(x, y int) float32 {
	return t.Pix[y*Size+x]
}

// Centroid returns the intensity-weighted center of mass (cx, cy) and the
// total mass m00. For an empty tile all three are zero.
func (t *Tile) Centroid() (cx, cy, m00 float64) {
	var m10, m01 float64
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			v := float64(t.Pix[y*Size+x])
			m00 += v
			m10 += float64(x) * v
			m01 += float64(y) * v
		}
	}
	if m00 == 0 {
		return 0, 0, 0
	}
	return m10 / m00, m01 / m00, m00
}

// ToGray renders the tile back into an 8-bit grayscale image, mainly for
// adapters that hand the tile to file-based tooling.
func (t *Tile) ToGray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, Size, Size))
	for i, v := range t.Pix {
		g.Pix[i] = uint8(math.Round(float64(v) * 255))
	}
	return g
}

// Normalize extracts the component's ROI from a binary mask and produces the
// normalized 28x28 tile. See the package documentation for the full step
// list.
//
// The mask is read-only; the component is assumed to lie within the mask
// bounds (always true for components produced by segment).
func Normalize(mask *raster.Image, c segment.Component) *Tile {
	roi := extractROI(mask, c)

	// Defensive re-binarize, then thicken strokes.
	bin := bildsegment.Threshold(roi, rebinarizeLevel)
	dilated := effect.Dilate(bin, dilateRadius)

	padded := padCanvas(dilated, c.W, c.H)
	resized := transform.Resize(padded, Size, Size, transform.NearestNeighbor)

	var buf [Size * Size]uint8
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			// Gray input, so any one channel carries the value.
			r, _, _, _ := resized.At(x, y).RGBA()
			buf[y*Size+x] = uint8(r >> 8)
		}
	}

	shifted := recenter(buf)

	t := &Tile{}
	for i, v := range shifted {
		t.Pix[i] = float32(v) / 255
	}
	return t
}

// extractROI copies the component's bounding box out of the mask.
func extractROI(mask *raster.Image, c segment.Component) *image.Gray {
	roi := image.NewGray(image.Rect(0, 0, c.W, c.H))
	for y := 0; y < c.H; y++ {
		for x := 0; x < c.W; x++ {
			roi.Pix[y*roi.Stride+x] = mask.At(c.X+x, c.Y+y)
		}
	}
	return roi
}

// padCanvas centers the glyph on a background-filled canvas with a dynamic
// margin of floor(max(w,h) * 0.45) on every side.
func padCanvas(glyph image.Image, w, h int) *image.Gray {
	long := w
	if h > long {
		long = h
	}
	pad := int(float64(long) * padRatio)

	canvas := image.NewGray(image.Rect(0, 0, w+2*pad, h+2*pad))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, _, _, _ := glyph.At(x, y).RGBA()
			canvas.Pix[(y+pad)*canvas.Stride+(x+pad)] = uint8(r >> 8)
		}
	}
	return canvas
}

// recenter shifts the 28x28 buffer so its first-order-moment centroid lands
// on (14, 14), rounding the translation to whole pixels and treating
// out-of-range source coordinates as background.
//
// A zero-mass buffer (numerically degenerate) is returned unshifted; that is
// a valid fallback, not an error.
func recenter(buf [Size * Size]uint8) [Size * Size]uint8 {
	var m00, m10, m01 float64
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			v := float64(buf[y*Size+x]) / 255
			m00 += v
			m10 += float64(x) * v
			m01 += float64(y) * v
		}
	}
	if m00 == 0 {
		return buf
	}

	cx := m10 / m00
	cy := m01 / m00
	dx := int(math.Round(center - cx))
	dy := int(math.Round(center - cy))
	if dx == 0 && dy == 0 {
		return buf
	}

	var out [Size * Size]uint8
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			sx := x - dx
			sy := y - dy
			if sx < 0 || sx >= Size || sy < 0 || sy >= Size {
				continue
			}
			out[y*Size+x] = buf[sy*Size+sx]
		}
	}
	return out
}
