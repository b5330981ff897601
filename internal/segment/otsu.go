package segment

import (
	"github.com/poko950615-bit/mnist-app/internal/raster"
)

// OtsuThreshold computes a global binarization threshold that maximizes the
// between-class variance of pixel intensities.
//
// A 256-bin histogram is built, then every candidate threshold t from 0 to
// 255 is scored. Pixels with value < t count as background; the score is
// wB*wF*(meanB-meanF)^2. The threshold with the strictly greatest score wins,
// so on ties the earliest candidate is kept. On a clean bimodal histogram the
// returned threshold falls strictly between the two modes.
//
// # Algorithm
//
// Background weight and sum are accumulated incrementally, giving O(W*H + 256)
// total time. Candidates with an empty background class are skipped; once the
// foreground class is empty the search stops.
func OtsuThreshold(src *raster.Image) uint8 {
	var hist [256]int
	for _, v := range src.Pix {
		hist[v]++
	}

	total := len(src.Pix)
	var sumAll float64
	for i, n := range hist {
		sumAll += float64(i) * float64(n)
	}

	var (
		wB, sumB  float64
		best      float64
		threshold uint8
	)
	for t := 0; t < 256; t++ {
		if wB > 0 {
			wF := float64(total) - wB
			if wF == 0 {
				break
			}
			meanB := sumB / wB
			meanF := (sumAll - sumB) / wF
			diff := meanB - meanF
			between := wB * wF * diff * diff
			if between > best {
				best = between
				threshold = uint8(t)
			}
		}
		wB += float64(hist[t])
		sumB += float64(t) * float64(hist[t])
	}
	return threshold
}

// Binarize applies a threshold, producing a strictly two-level mask:
// v > threshold maps to 255, everything else to 0.
func Binarize(src *raster.Image, threshold uint8) *raster.Image {
	out := &raster.Image{
		Width:  src.Width,
		Height: src.Height,
		Pix:    make([]uint8, len(src.Pix)),
	}
	for i, v := range src.Pix {
		if v > threshold {
			out.Pix[i] = 255
		}
	}
	return out
}
