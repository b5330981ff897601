package raster

import (
	"fmt"
	"image"
	"math"
)

// Luminance weights per ITU-R BT.601.
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// polarityMean is the mean-intensity cutoff above which a frame is considered
// light-background and gets inverted to the bright-on-dark convention.
const polarityMean = 120.0

// Image is a grayscale raster with one byte per pixel (0-255), row-major.
//
// Binary masks produced by thresholding reuse this type with values
// restricted to {0, 255}.
type Image struct {
	Width  int
	Height int
	Pix    []uint8
}

// New allocates a zero-filled (all background) image.
//
// Returns an error for non-positive dimensions; the pipeline never proceeds
// stage-by-stage on garbage dimensions.
func New(width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}
	return &Image{Width: width, Height: height, Pix: make([]uint8, width*height)}, nil
}

// At returns the pixel value at (x, y). No bounds checking is performed.
func (m *Image) At(x, y int) uint8 {
	return m.Pix[y*m.Width+x]
}

// Set writes the pixel value at (x, y). No bounds checking is performed.
func (m *Image) Set(x, y int, v uint8) {
	m.Pix[y*m.Width+x] = v
}

// Clone returns a deep copy. Stages that must not alias a caller's buffer
// start from a clone.
func (m *Image) Clone() *Image {
	pix := make([]uint8, len(m.Pix))
	copy(pix, m.Pix)
	return &Image{Width: m.Width, Height: m.Height, Pix: pix}
}

// Mean returns the average pixel intensity over the whole frame.
func (m *Image) Mean() float64 {
	var sum uint64
	for _, v := range m.Pix {
		sum += uint64(v)
	}
	return float64(sum) / float64(len(m.Pix))
}

// Invert replaces every value v with 255-v in place.
func (m *Image) Invert() {
	for i, v := range m.Pix {
		m.Pix[i] = 255 - v
	}
}

// FromRGBA converts a packed RGBA buffer (4 bytes per pixel) to a
// polarity-normalized grayscale image.
//
// Each pixel becomes round(0.299*R + 0.587*G + 0.114*B). If the resulting
// frame's mean intensity exceeds 120 the frame is inverted, so that both
// dark-ink-on-light and light-stroke-on-dark inputs converge to
// bright-on-dark handwriting.
//
// Returns an error if dimensions are non-positive or the buffer length does
// not equal width*height*4.
func FromRGBA(pix []uint8, width, height int) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}
	if len(pix) != width*height*4 {
		return nil, fmt.Errorf("RGBA buffer length %d does not match %dx%d (want %d)",
			len(pix), width, height, width*height*4)
	}

	out := &Image{Width: width, Height: height, Pix: make([]uint8, width*height)}
	for i := 0; i < width*height; i++ {
		r := float64(pix[i*4])
		g := float64(pix[i*4+1])
		b := float64(pix[i*4+2])
		out.Pix[i] = uint8(math.Round(lumaR*r + lumaG*g + lumaB*b))
	}

	if out.Mean() > polarityMean {
		out.Invert()
	}
	return out, nil
}

// FromImage converts any image.Image to a polarity-normalized grayscale
// image, following the same luma and auto-invert rules as FromRGBA.
func FromImage(img image.Image) (*Image, error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}

	out := &Image{Width: width, Height: height, Pix: make([]uint8, width*height)}
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// 16-bit to 8-bit, then luma.
			rf := float64(r >> 8)
			gf := float64(g >> 8)
			bf := float64(b >> 8)
			out.Pix[i] = uint8(math.Round(lumaR*rf + lumaG*gf + lumaB*bf))
			i++
		}
	}

	if out.Mean() > polarityMean {
		out.Invert()
	}
	return out, nil
}

// ToGray copies the image into a stdlib *image.Gray, for handing off to
// libraries that operate on image.Image.
func (m *Image) ToGray() *image.Gray {
	g := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		copy(g.Pix[y*g.Stride:y*g.Stride+m.Width], m.Pix[y*m.Width:(y+1)*m.Width])
	}
	return g
}
