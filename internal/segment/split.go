package segment

import (
	"github.com/poko950615-bit/mnist-app/internal/raster"
)

// splitAspect is the width/height ratio above which a region is suspected to
// be two horizontally fused digits (e.g. a touching "1" and "1").
const splitAspect = 1.3

// minSubWidth is the narrowest split half still treated as a real glyph;
// anything narrower is a degenerate sliver and silently dropped.
const minSubWidth = 5

// Split conditionally divides a region suspected of holding two touching
// digits.
//
// The split triggers only when w > h*1.3. A vertical projection profile is
// computed over the region's bounding box (per-column foreground count in the
// mask), and the central band [0.3*w, 0.7*w) is searched for the column with
// the minimum projection; on ties the first (leftmost) minimum wins. The
// region is cut into [0, splitX) and [splitX, w), so the two sub-widths
// always sum to the original width.
//
// Sub-regions narrower than 5px are discarded as degenerate. Each surviving
// sub-region carries a recounted area and is classified independently; the
// caller concatenates results in x-order as if they were ordinary regions.
//
// When the trigger condition does not hold, the region is returned unchanged
// as a single-element slice.
func Split(mask *raster.Image, c Component) []Component {
	if float64(c.W) <= float64(c.H)*splitAspect {
		return []Component{c}
	}

	proj := projection(mask, c)

	lo := int(0.3 * float64(c.W))
	hi := int(0.7 * float64(c.W))
	splitX := lo
	for x := lo; x < hi; x++ {
		if proj[x] < proj[splitX] {
			splitX = x
		}
	}

	var out []Component
	if left, ok := subRegion(mask, c, 0, splitX); ok {
		out = append(out, left)
	}
	if right, ok := subRegion(mask, c, splitX, c.W); ok {
		out = append(out, right)
	}
	return out
}

// projection counts foreground pixels per column within the component's
// bounding box.
func projection(mask *raster.Image, c Component) []int {
	proj := make([]int, c.W)
	for y := c.Y; y < c.Y+c.H; y++ {
		for x := 0; x < c.W; x++ {
			if mask.At(c.X+x, y) == 255 {
				proj[x]++
			}
		}
	}
	return proj
}

// subRegion builds the component covering columns [x0, x1) of c, recounting
// its foreground area. Returns ok=false for degenerate slivers.
func subRegion(mask *raster.Image, c Component, x0, x1 int) (Component, bool) {
	w := x1 - x0
	if w < minSubWidth {
		return Component{}, false
	}
	area := 0
	for y := c.Y; y < c.Y+c.H; y++ {
		for x := c.X + x0; x < c.X+x1; x++ {
			if mask.At(x, y) == 255 {
				area++
			}
		}
	}
	return Component{X: c.X + x0, Y: c.Y, W: w, H: c.H, Area: area}, true
}
