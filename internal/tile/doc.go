// Package tile converts an arbitrarily sized digit region into the fixed
// 28x28 normalized float tile handed to the classifier.
//
// # Normalization Steps
//
// Normalize applies, in order:
//
//  1. Re-binarize the region's mask ROI at threshold 128 (defensive, in case
//     upstream resampling introduced sub-255 values)
//  2. Dilate with a small max filter to thicken thin strokes toward the
//     stroke-width distribution a digit classifier expects
//  3. Pad with floor(max(w,h) * 0.45) background on every side, preserving
//     aspect ratio with a consistent margin regardless of glyph size
//     (mirroring the margin convention of standard digit datasets)
//  4. Resize the padded canvas to exactly 28x28. Nearest-neighbor is the
//     canonical interpolation here, chosen for speed and determinism;
//     bilinear would change edge pixel values
//  5. Recenter so the intensity centroid sits on the tile center (14, 14),
//     with the shift rounded to whole pixels and vacated pixels filled with
//     background
//  6. Scale byte values into float32 [0, 1]
//
// The output is always exactly 28x28 with every value in [0, 1], regardless
// of input ROI size. An empty ROI (zero intensity mass) skips recentering and
// returns the unshifted scaled tile.
package tile
