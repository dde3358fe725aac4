// patch_sampler.go - Locates a clean same-size source rectangle for a region

package main

// DefaultSampleGap is the pixel gap left between a region and its sampled
// source patch. Useful values sit in the 30-60px band; closer risks
// sampling the watermark's own halo, farther risks unrelated content.
const (
	DefaultSampleGap = 40
	minSampleGap     = 30
	maxSampleGap     = 60
)

// SampleSource computes the source rectangle for a region using the
// default gap. See SampleSourceGap.
func SampleSource(region Region, frameW, frameH int) Rect {
	return SampleSourceGap(region, frameW, frameH, DefaultSampleGap)
}

// SampleSourceGap starts from the region's own pixel rectangle and
// displaces it one full region extent plus gap along the hint axis, signed
// so the sample moves away from the frame edge the region sits against:
// regions in the left half sample rightward, regions in the bottom half
// sample upward, and so on. A region centered exactly on the axis falls
// back to the hint's literal direction. The result is clamped fully inside
// [0,frameW) x [0,frameH) with width and height preserved. Deterministic,
// never fails.
func SampleSourceGap(region Region, frameW, frameH int, gap int) Rect {
	if gap < 0 {
		gap = 0
	}
	r := region.PixelRect(frameW, frameH)
	s := r
	switch axisFor(region.Hint) {
	case axisX:
		if sampleRightward(region) {
			s.X = r.X + r.W + gap
		} else {
			s.X = r.X - r.W - gap
		}
	case axisY:
		if sampleDownward(region) {
			s.Y = r.Y + r.H + gap
		} else {
			s.Y = r.Y - r.H - gap
		}
	}
	return clampRect(s, frameW, frameH)
}

type sampleAxis int

const (
	axisX sampleAxis = iota
	axisY
)

func axisFor(h DirectionHint) sampleAxis {
	switch h {
	case HintTop, HintBottom, HintVertical:
		return axisY
	}
	return axisX
}

// sampleRightward decides the X-axis sign: away from the nearer vertical
// frame edge, hint literal on a dead-center tie.
func sampleRightward(region Region) bool {
	center := region.XFrac + region.WFrac/2
	if center < 0.5 {
		return true
	}
	if center > 0.5 {
		return false
	}
	return region.Hint != HintLeft
}

// sampleDownward decides the Y-axis sign the same way.
func sampleDownward(region Region) bool {
	center := region.YFrac + region.HFrac/2
	if center < 0.5 {
		return true
	}
	if center > 0.5 {
		return false
	}
	return region.Hint != HintTop
}

// clampRect slides the rectangle fully into frame bounds without changing
// its size. The region pixel rect never exceeds the frame, so a same-size
// in-bounds placement always exists.
func clampRect(r Rect, frameW, frameH int) Rect {
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	if r.X+r.W > frameW {
		r.X = frameW - r.W
	}
	if r.Y+r.H > frameH {
		r.Y = frameH - r.H
	}
	if r.X < 0 {
		r.X = 0
	}
	if r.Y < 0 {
		r.Y = 0
	}
	return r
}
