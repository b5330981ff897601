package segment

import (
	"sort"
)

// Profile names the complete set of region-filter and confidence tunables for
// one processing context. All knobs are plain exported fields so callers can
// start from a preset and override individual values; nothing is hidden in
// conditionals.
type Profile struct {
	// Name identifies the profile in logs and tool output.
	Name string

	// MinArea rejects components below this pixel count as noise specks.
	MinArea int

	// MinAspect and MaxAspect bound bounding-box width/height, rejecting
	// hairline scratches and extremely wide smears.
	MinAspect float64
	MaxAspect float64

	// MinSolidity rejects sparse scattered pixels masquerading as one blob.
	MinSolidity float64

	// BorderMargin is how close (in pixels) a bounding box may come to an
	// image edge before the border rule applies.
	BorderMargin int

	// BorderBypassArea lets a large edge-touching blob through anyway: a
	// legitimately cropped but real digit rather than partial noise.
	BorderBypassArea int

	// MinConfidence is the classification confidence floor applied
	// downstream; regions classified below it are dropped from the result.
	MinConfidence float64
}

// Interactive is the preset for live camera or drawing-surface input.
// Sensor noise pushes MinArea and the confidence floor up.
func Interactive() Profile {
	return Profile{
		Name:             "interactive",
		MinArea:          120,
		MinAspect:        0.15,
		MaxAspect:        2.5,
		MinSolidity:      0.15,
		BorderMargin:     2,
		BorderBypassArea: 600,
		MinConfidence:    0.80,
	}
}

// SingleShot is the preset for one-off clean input such as a canvas snapshot
// or an uploaded scan. Strokes are clean, so thresholds relax.
func SingleShot() Profile {
	return Profile{
		Name:             "single-shot",
		MinArea:          40,
		MinAspect:        0.15,
		MaxAspect:        2.5,
		MinSolidity:      0.15,
		BorderMargin:     1,
		BorderBypassArea: 400,
		MinConfidence:    0.55,
	}
}

// ByName returns the preset matching name ("interactive" or "single-shot"),
// or false if the name is unknown.
func ByName(name string) (Profile, bool) {
	switch name {
	case "interactive":
		return Interactive(), true
	case "single-shot":
		return SingleShot(), true
	}
	return Profile{}, false
}

// Accept reports whether a single component survives the profile's filter
// predicate within a frame of the given dimensions.
func (p Profile) Accept(c Component, width, height int) bool {
	if c.Area < p.MinArea {
		return false
	}
	ar := c.AspectRatio()
	if ar < p.MinAspect || ar > p.MaxAspect {
		return false
	}
	if c.Solidity() < p.MinSolidity {
		return false
	}
	if p.touchesBorder(c, width, height) && c.Area <= p.BorderBypassArea {
		return false
	}
	return true
}

func (p Profile) touchesBorder(c Component, width, height int) bool {
	return c.X <= p.BorderMargin ||
		c.Y <= p.BorderMargin ||
		c.X+c.W >= width-p.BorderMargin ||
		c.Y+c.H >= height-p.BorderMargin
}

// FilterComponents applies the profile predicate to every component and
// returns the survivors sorted by ascending X. The sort is stable, so
// components sharing an X keep their scan order. This ordering fixes the
// left-to-right reading order of the final digit string.
//
// An empty result is a valid terminal state (blank frame), not an error.
func FilterComponents(comps []Component, width, height int, p Profile) []Component {
	regions := make([]Component, 0, len(comps))
	for _, c := range comps {
		if p.Accept(c, width, height) {
			regions = append(regions, c)
		}
	}
	sort.SliceStable(regions, func(i, j int) bool {
		return regions[i].X < regions[j].X
	})
	return regions
}
