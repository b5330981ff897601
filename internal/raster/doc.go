// Package raster provides the grayscale image value type consumed by the
// digit-recognition pipeline, along with polarity normalization and a
// thread-safe cache of decoded image files.
//
// # The Image Type
//
// Image is a plain width/height/byte-buffer value with no dependency on any
// display, camera, or DOM concept. Every pipeline stage consumes and returns
// Image values; binary masks reuse the same type with values restricted to
// {0, 255}.
//
// # Polarity Convention
//
// Downstream stages assume handwriting is bright-on-dark. FromRGBA and
// FromImage convert pixels to grayscale using ITU-R BT.601 luminance weights
// (0.299*R + 0.587*G + 0.114*B) and then invert the whole frame when the mean
// intensity exceeds 120. This makes a paper scan (dark ink on a light page)
// and a canvas drawing (light strokes on a dark canvas) converge to the same
// convention before thresholding.
//
// # Ownership
//
// Images are ephemeral, one per invocation, owned by the caller. The pipeline
// never retains a reference to a caller's buffer after returning.
package raster
