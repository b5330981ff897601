// Package segment turns a polarity-normalized grayscale frame into an
// ordered list of digit candidate regions.
//
// # Stage Order
//
// The stages are pure functions, each consuming the previous stage's output:
//
//  1. Denoise: fixed 3x3 near-binomial smoothing before thresholding
//  2. OtsuThreshold + Binarize: global threshold into a {0, 255} mask
//  3. Components: 8-connected flood fill producing bounding boxes and areas
//  4. FilterComponents: heuristic accept/reject plus left-to-right ordering
//  5. Split: conditional vertical-projection split for horizontally fused
//     glyphs
//
// # Processing Profiles
//
// All filter tunables live in the named Profile struct rather than scattered
// conditionals. Two presets are provided: Interactive (camera/live input,
// noisier, higher thresholds) and SingleShot (clean canvas strokes, lower
// thresholds). Callers may start from a preset and override individual
// fields.
//
// # Ordering Invariant
//
// FilterComponents always returns regions sorted by ascending X (stable on
// ties). This ordering defines the left-to-right reading order of the final
// digit string; later stages must preserve it.
package segment
