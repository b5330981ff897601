// Package pipeline orchestrates the full digit-recognition flow for one
// captured frame: polarity-normalized grayscale in, ordered digit regions
// and the concatenated digit string out.
//
// # Invocation Model
//
// The pipeline is purely synchronous and side-effect free: it operates on
// caller-owned buffers and returns new values, retaining nothing between
// invocations. It is not internally reentrant-safe against a caller mutating
// the same source buffer concurrently; callers that need at-most-one-run
// semantics per capture session wrap the pipeline in a Session, which owns
// an explicit Idle/Running state. The pipeline itself stays stateless.
//
// # Ordering
//
// Output regions are always sorted by ascending X. When Workers > 1, region
// tiles are classified concurrently but results are re-joined by original
// region index, so reading order is preserved either way.
//
// # Error Semantics
//
//   - A frame with no surviving regions returns an empty result, not an
//     error
//   - Invalid input (zero area, mismatched buffer) fails the invocation
//     before any stage runs
//   - A missing or dead classifier fails fast with an error wrapping
//     classify.ErrUnavailable, distinguishing "no digits found" from "could
//     not classify"
//   - Any other per-region classification failure skips that region only
package pipeline
