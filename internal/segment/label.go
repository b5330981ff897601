package segment

import (
	"github.com/poko950615-bit/mnist-app/internal/raster"
)

// Component is a maximal set of 8-connected foreground pixels, summarized by
// its minimal axis-aligned bounding box and pixel count. Components are
// immutable once returned by Components.
type Component struct {
	// X, Y is the top-left corner of the bounding box.
	X int `json:"x"`
	Y int `json:"y"`

	// W, H are the bounding box extents. Always >= 1 for a real component.
	W int `json:"w"`
	H int `json:"h"`

	// Area is the number of foreground pixels, always <= W*H.
	Area int `json:"area"`
}

// AspectRatio returns bounding-box width divided by height.
func (c Component) AspectRatio() float64 {
	return float64(c.W) / float64(c.H)
}

// Solidity returns the ratio of pixel area to bounding-box area, a measure of
// how filled-in the shape is. A solid rectangle scores 1.0; scattered pixels
// masquerading as one blob score near 0.
func (c Component) Solidity() float64 {
	return float64(c.Area) / float64(c.W*c.H)
}

type point struct {
	x, y int
}

// Components extracts all 8-connected foreground components from a binary
// mask (foreground = 255).
//
// Each unvisited foreground pixel seeds an iterative stack-based flood fill
// (not recursive, to avoid stack overflow on large blobs) that grows one
// component while tracking min/max x/y and pixel count. Pixels are marked
// visited during growth, so every foreground pixel belongs to exactly one
// component.
//
// Runs in O(W*H) time with an O(W*H) auxiliary visited buffer. The returned
// order is scan order (top-left first); use FilterComponents for the reading
// order guarantee.
func Components(mask *raster.Image) []Component {
	w, h := mask.Width, mask.Height
	visited := make([]bool, w*h)
	var comps []Component

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if visited[idx] || mask.Pix[idx] != 255 {
				continue
			}

			minX, minY := x, y
			maxX, maxY := x, y
			area := 0

			stack := []point{{x, y}}
			visited[idx] = true
			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				area++

				if p.x < minX {
					minX = p.x
				}
				if p.x > maxX {
					maxX = p.x
				}
				if p.y < minY {
					minY = p.y
				}
				if p.y > maxY {
					maxY = p.y
				}

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						nx, ny := p.x+dx, p.y+dy
						if nx < 0 || nx >= w || ny < 0 || ny >= h {
							continue
						}
						nidx := ny*w + nx
						if visited[nidx] || mask.Pix[nidx] != 255 {
							continue
						}
						visited[nidx] = true
						stack = append(stack, point{nx, ny})
					}
				}
			}

			comps = append(comps, Component{
				X:    minX,
				Y:    minY,
				W:    maxX - minX + 1,
				H:    maxY - minY + 1,
				Area: area,
			})
		}
	}
	return comps
}
