// restore.go - Region reconstruction for still images

package main

import (
	"image"
	"image/draw"
	"math"
	"math/rand"
)

// region is a fractional rectangle plus the direction its replacement
// content should be sampled from.
type region struct {
	x, y, w, h float64
	hint       string
}

func profileRegions(name string) ([]region, bool) {
	switch name {
	case "default":
		return []region{
			{0.015, 0.02, 0.22, 0.10, "right"},
			{0.70, 0.84, 0.27, 0.12, "left"},
			{0.25, 0.88, 0.50, 0.09, "top"},
		}, true
	case "stock":
		return []region{
			{0.015, 0.02, 0.22, 0.10, "right"},
			{0.70, 0.84, 0.27, 0.12, "left"},
			{0.25, 0.88, 0.50, 0.09, "top"},
			{0.0, 0.42, 1.0, 0.16, "vertical"},
			{0.30, 0.30, 0.40, 0.40, "horizontal"},
		}, true
	}
	return nil, false
}

type rect struct {
	x, y, w, h int
}

func pixelRect(r region, frameW, frameH int) rect {
	pr := rect{
		x: int(r.x * float64(frameW)),
		y: int(r.y * float64(frameH)),
		w: int(r.w * float64(frameW)),
		h: int(r.h * float64(frameH)),
	}
	if pr.w < 1 {
		pr.w = 1
	}
	if pr.h < 1 {
		pr.h = 1
	}
	return clampTo(pr, frameW, frameH)
}

// sampleRect displaces the region one extent plus gap along the hint
// axis, away from the nearer frame edge, then clamps back in bounds with
// size preserved.
func sampleRect(r region, frameW, frameH, gap int) rect {
	pr := pixelRect(r, frameW, frameH)
	s := pr
	switch r.hint {
	case "top", "bottom", "vertical":
		center := r.y + r.h/2
		if center < 0.5 || (center == 0.5 && r.hint != "top") {
			s.y = pr.y + pr.h + gap
		} else {
			s.y = pr.y - pr.h - gap
		}
	default:
		center := r.x + r.w/2
		if center < 0.5 || (center == 0.5 && r.hint != "left") {
			s.x = pr.x + pr.w + gap
		} else {
			s.x = pr.x - pr.w - gap
		}
	}
	return clampTo(s, frameW, frameH)
}

func clampTo(r rect, frameW, frameH int) rect {
	if r.w > frameW {
		r.w = frameW
	}
	if r.h > frameH {
		r.h = frameH
	}
	if r.x < 0 {
		r.x = 0
	}
	if r.y < 0 {
		r.y = 0
	}
	if r.x+r.w > frameW {
		r.x = frameW - r.w
	}
	if r.y+r.h > frameH {
		r.y = frameH - r.h
	}
	return r
}

// Restorer applies the three reconstruction passes to still images.
type Restorer struct {
	regions    []region
	gap        int
	grainCount int
	rng        *rand.Rand
}

func NewRestorer(regions []region) *Restorer {
	return &Restorer{
		regions:    regions,
		gap:        40,
		grainCount: 120,
		rng:        rand.New(rand.NewSource(1)),
	}
}

func (r *Restorer) Seed(seed int64) {
	r.rng = rand.New(rand.NewSource(seed))
}

// CleanImage returns a reconstructed copy of the input. The input is
// never modified.
func (r *Restorer) CleanImage(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)

	gap := r.gap
	if gap < 30 {
		gap = 30
	}
	if gap > 60 {
		gap = 60
	}
	for _, reg := range r.regions {
		dst := pixelRect(reg, out.Rect.Dx(), out.Rect.Dy())
		src := sampleRect(reg, out.Rect.Dx(), out.Rect.Dy(), gap)
		if src.w != dst.w || src.h != dst.h {
			continue
		}
		r.restoreRegion(out, dst, src)
	}
	return out
}

func (r *Restorer) restoreRegion(img *image.RGBA, dst, src rect) {
	base := extract(img, src)
	tex := extract(img, src)
	blur(base, src.w, src.h, 1.1)
	contrast(base, 1.06)
	blur(tex, src.w, src.h, 2.5)

	radius := dst.w
	if dst.h < radius {
		radius = dst.h
	}
	radius /= 4

	for dy := 0; dy < dst.h; dy++ {
		for dx := 0; dx < dst.w; dx++ {
			if !insideMask(dx, dy, dst.w, dst.h, radius) {
				continue
			}
			di := img.PixOffset(dst.x+dx, dst.y+dy)
			si := (dy*dst.w + dx) * 4
			img.Pix[di] = base[si]
			img.Pix[di+1] = base[si+1]
			img.Pix[di+2] = base[si+2]
			img.Pix[di+3] = 0xFF
			blend(img.Pix, di, tex[si], tex[si+1], tex[si+2], 0.45)
		}
	}

	// Grain pass: tiny alternating light/dark dots hide the repeat.
	count := r.grainCount
	if count < 20 {
		count = 20
	}
	if count > 220 {
		count = 220
	}
	for i := 0; i < count; i++ {
		gx := r.rng.Intn(dst.w)
		gy := r.rng.Intn(dst.h)
		if !insideMask(gx, gy, dst.w, dst.h, radius) {
			continue
		}
		tone := byte(0)
		if i%2 == 0 {
			tone = 0xFF
		}
		size := 1 + r.rng.Intn(2)
		for oy := 0; oy < size; oy++ {
			for ox := 0; ox < size; ox++ {
				px, py := gx+ox, gy+oy
				if px >= dst.w || py >= dst.h {
					continue
				}
				di := img.PixOffset(dst.x+px, dst.y+py)
				blend(img.Pix, di, tone, tone, tone, 0.08)
			}
		}
	}
}

func extract(img *image.RGBA, r rect) []byte {
	out := make([]byte, r.w*r.h*4)
	for dy := 0; dy < r.h; dy++ {
		si := img.PixOffset(r.x, r.y+dy)
		copy(out[dy*r.w*4:(dy+1)*r.w*4], img.Pix[si:si+r.w*4])
	}
	return out
}

// insideMask tests a rounded-rectangle hit: full coverage except circular
// corner cutouts.
func insideMask(x, y, w, h, radius int) bool {
	if radius <= 0 {
		return true
	}
	cx, cy := x, y
	var ox, oy int
	switch {
	case x < radius && y < radius:
		ox, oy = radius-1, radius-1
	case x >= w-radius && y < radius:
		ox, oy = w-radius, radius-1
	case x < radius && y >= h-radius:
		ox, oy = radius-1, h-radius
	case x >= w-radius && y >= h-radius:
		ox, oy = w-radius, h-radius
	default:
		return true
	}
	dx, dy := cx-ox, cy-oy
	return dx*dx+dy*dy <= radius*radius
}

func blend(pix []byte, i int, r, g, b byte, alpha float64) {
	pix[i] = clamp8(float64(pix[i])*(1-alpha) + float64(r)*alpha + 0.5)
	pix[i+1] = clamp8(float64(pix[i+1])*(1-alpha) + float64(g)*alpha + 0.5)
	pix[i+2] = clamp8(float64(pix[i+2])*(1-alpha) + float64(b)*alpha + 0.5)
	pix[i+3] = 0xFF
}

// blur runs a separable gaussian over an RGBA patch in place.
func blur(pix []byte, w, h int, sigma float64) {
	kernel := gaussianKernel(sigma)
	half := len(kernel) / 2
	tmp := make([]byte, len(pix))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b float64
			for k, kv := range kernel {
				sx := x + k - half
				if sx < 0 {
					sx = 0
				}
				if sx >= w {
					sx = w - 1
				}
				si := (y*w + sx) * 4
				r += float64(pix[si]) * kv
				g += float64(pix[si+1]) * kv
				b += float64(pix[si+2]) * kv
			}
			di := (y*w + x) * 4
			tmp[di] = clamp8(r + 0.5)
			tmp[di+1] = clamp8(g + 0.5)
			tmp[di+2] = clamp8(b + 0.5)
			tmp[di+3] = pix[di+3]
		}
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b float64
			for k, kv := range kernel {
				sy := y + k - half
				if sy < 0 {
					sy = 0
				}
				if sy >= h {
					sy = h - 1
				}
				si := (sy*w + x) * 4
				r += float64(tmp[si]) * kv
				g += float64(tmp[si+1]) * kv
				b += float64(tmp[si+2]) * kv
			}
			di := (y*w + x) * 4
			pix[di] = clamp8(r + 0.5)
			pix[di+1] = clamp8(g + 0.5)
			pix[di+2] = clamp8(b + 0.5)
			pix[di+3] = tmp[di+3]
		}
	}
}

func gaussianKernel(sigma float64) []float64 {
	size := 2*int(math.Ceil(3*sigma)) + 1
	kernel := make([]float64, size)
	half := size / 2
	var sum float64
	for i := range kernel {
		d := float64(i - half)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}
	return kernel
}

func contrast(pix []byte, factor float64) {
	for i := 0; i < len(pix); i += 4 {
		pix[i] = clamp8((float64(pix[i])-128)*factor + 128 + 0.5)
		pix[i+1] = clamp8((float64(pix[i+1])-128)*factor + 128 + 0.5)
		pix[i+2] = clamp8((float64(pix[i+2])-128)*factor + 128 + 0.5)
	}
}

func clamp8(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v)
}
