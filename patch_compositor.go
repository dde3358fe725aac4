// patch_compositor.go - Multi-pass patch synthesis over watermark regions

package main

import (
	"math/rand"
)

// Pass tuning. The three passes run in a fixed order: opaque base fill,
// translucent heavier-blurred texture blend, then grain re-injection.
const (
	baseFillSigma   = 1.1
	baseContrast    = 1.06
	textureSigma    = 2.5
	textureOpacity  = 0.45
	grainOpacity    = 0.08
	minGrainCount   = 20
	maxGrainCount   = 220
	defaultGrainCnt = 120
)

// Compositor rewrites region rectangles with synthesized content sampled
// from elsewhere in the frame. Not safe for concurrent use; the frame loop
// owns one instance, one-shot paths construct their own.
type Compositor struct {
	grainCount int
	rng        *rand.Rand
}

// NewCompositor builds a compositor with the given grain budget (clamped
// to a sane band) and a seedable noise source. Seeding makes grain
// placement reproducible for tests; production callers pass the clock.
func NewCompositor(grainCount int, seed int64) *Compositor {
	if grainCount < minGrainCount {
		grainCount = minGrainCount
	}
	if grainCount > maxGrainCount {
		grainCount = maxGrainCount
	}
	return &Compositor{
		grainCount: grainCount,
		rng:        rand.New(rand.NewSource(seed)),
	}
}

// Apply overwrites the region's pixels with reconstructed content drawn
// from src. All writes are clipped to a rounded-rectangle mask inside the
// region; pixels outside the mask are never touched. A source rectangle
// that falls outside the surface degrades to a no-op. Never fails.
func (c *Compositor) Apply(s *FrameSurface, region Region, src Rect) {
	rr := region.PixelRect(s.W, s.H)
	if rr.W < 1 || rr.H < 1 {
		return
	}
	if src.X < 0 || src.Y < 0 || src.Right() > s.W || src.Bottom() > s.H {
		return
	}
	if src.W != rr.W || src.H != rr.H {
		return
	}

	// Both patch copies are extracted before any write so a source that
	// overlaps the region still reads the raw frame, not pass-1 output.
	base := extractPatch(s, src)
	tex := extractPatch(s, src)

	// Pass 1: base fill - mild smoothing plus a touch of contrast.
	blurPatch(base, rr.W, rr.H, baseFillSigma)
	boostContrast(base, baseContrast)

	// Pass 2 source: same patch diffused much harder.
	blurPatch(tex, rr.W, rr.H, textureSigma)

	radius := maskRadius(rr)
	for y := 0; y < rr.H; y++ {
		for x := 0; x < rr.W; x++ {
			if !insideRoundedRect(x, y, rr.W, rr.H, radius) {
				continue
			}
			pi := (y*rr.W + x) * 4
			si := s.PixOffset(rr.X+x, rr.Y+y)

			// Pass 1: opaque copy.
			s.Pix[si] = base[pi]
			s.Pix[si+1] = base[pi+1]
			s.Pix[si+2] = base[pi+2]
			s.Pix[si+3] = base[pi+3]

			// Pass 2: texture blend over the fill.
			blendInto(s.Pix, si, tex[pi], tex[pi+1], tex[pi+2], textureOpacity)
		}
	}

	// Pass 3: grain re-injection. Dots alternate light/dark at very low
	// opacity to fake the sensor noise the smoothing scrubbed out.
	for i := 0; i < c.grainCount; i++ {
		gx := c.rng.Intn(rr.W)
		gy := c.rng.Intn(rr.H)
		size := 1 + c.rng.Intn(2)
		var tone byte
		if i%2 == 0 {
			tone = 255
		}
		for dy := 0; dy < size; dy++ {
			for dx := 0; dx < size; dx++ {
				x, y := gx+dx, gy+dy
				if x >= rr.W || y >= rr.H {
					continue
				}
				if !insideRoundedRect(x, y, rr.W, rr.H, radius) {
					continue
				}
				si := s.PixOffset(rr.X+x, rr.Y+y)
				blendInto(s.Pix, si, tone, tone, tone, grainOpacity)
			}
		}
	}
}

// extractPatch copies the source rectangle out of the surface into a
// dense RGBA buffer.
func extractPatch(s *FrameSurface, src Rect) []byte {
	out := make([]byte, src.W*src.H*4)
	for y := 0; y < src.H; y++ {
		from := s.PixOffset(src.X, src.Y+y)
		to := y * src.W * 4
		copy(out[to:to+src.W*4], s.Pix[from:from+src.W*4])
	}
	return out
}

// maskRadius picks the rounded-corner radius for a region rectangle:
// a quarter of the shorter side.
func maskRadius(r Rect) int {
	m := r.W
	if r.H < m {
		m = r.H
	}
	return m / 4
}

// insideRoundedRect reports whether the local coordinate lies inside the
// rounded-rectangle mask of a w x h region with the given corner radius.
func insideRoundedRect(x, y, w, h, radius int) bool {
	if x < 0 || y < 0 || x >= w || y >= h {
		return false
	}
	if radius <= 0 {
		return true
	}
	// Distance check only applies inside the corner squares.
	cx, cy := -1, -1
	if x < radius {
		cx = radius - 1
	} else if x >= w-radius {
		cx = w - radius
	}
	if y < radius {
		cy = radius - 1
	} else if y >= h-radius {
		cy = h - radius
	}
	if cx < 0 || cy < 0 {
		return true
	}
	dx := float64(x - cx)
	dy := float64(y - cy)
	return dx*dx+dy*dy <= float64(radius)*float64(radius)
}

// blendInto alpha-blends an RGB value over the destination pixel.
func blendInto(dst []byte, i int, r, g, b byte, alpha float64) {
	inv := 1 - alpha
	dst[i] = clampUint8(float64(dst[i])*inv + float64(r)*alpha)
	dst[i+1] = clampUint8(float64(dst[i+1])*inv + float64(g)*alpha)
	dst[i+2] = clampUint8(float64(dst[i+2])*inv + float64(b)*alpha)
}
