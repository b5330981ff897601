package segment

import (
	"github.com/poko950615-bit/mnist-app/internal/raster"
)

// denoiseKernel is a 3x3 near-binomial smoothing kernel, normalized by 16.
var denoiseKernel = [3][3]int{
	{1, 2, 1},
	{2, 4, 2},
	{1, 2, 1},
}

// Denoise smooths a grayscale frame with a fixed 3x3 kernel before
// thresholding, damping single-pixel sensor noise without blurring strokes
// away.
//
// Border pixels (row/col 0 and max) are copied unchanged rather than padded
// or reflected. That leaves a one-pixel ring unsmoothed, which is a
// deliberate simplification: digits of interest never hug the frame edge
// closely enough for it to matter, and it avoids edge artifacts from
// synthetic padding.
//
// The input is not modified; the returned image has the same dimensions.
func Denoise(src *raster.Image) *raster.Image {
	out := src.Clone()
	w, h := src.Width, src.Height

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			sum := 0
			for ky := -1; ky <= 1; ky++ {
				for kx := -1; kx <= 1; kx++ {
					sum += int(src.At(x+kx, y+ky)) * denoiseKernel[ky+1][kx+1]
				}
			}
			out.Set(x, y, uint8(sum/16))
		}
	}
	return out
}
