// Package classify defines the digit classifier boundary of the pipeline.
//
// The pipeline treats classification as an opaque capability: a normalized
// 28x28 tile goes in, a probability for each of the ten digit classes comes
// out. The pipeline takes the argmax as the label and that probability as
// the confidence; it never interprets tiles itself.
//
// Two implementations ship with the module:
//
//   - Stub: returns a fixed answer, for tests and offline wiring
//   - Tesseract: shells the tile out to the Tesseract OCR engine via
//     gosseract/v2, restricted to the digit whitelist in single-character
//     page segmentation mode
//
// A classifier that cannot run at all (engine missing, not initialized)
// must return an error wrapping ErrUnavailable so callers can distinguish
// "no digits found" from "could not classify".
package classify
