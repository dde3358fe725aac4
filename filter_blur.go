// filter_blur.go - Separable Gaussian blur and tone helpers for patch buffers

package main

import "math"

// gaussianKernel builds a normalized 1D kernel covering three standard
// deviations each side. Size is always odd: 2*ceil(3*sigma)+1.
func gaussianKernel(sigma float64) []float64 {
	if sigma <= 0 {
		return []float64{1}
	}
	radius := int(math.Ceil(sigma * 3))
	size := radius*2 + 1
	k := make([]float64, size)
	sum := 0.0
	twoSigmaSq := 2 * sigma * sigma
	for i := 0; i < size; i++ {
		d := float64(i - radius)
		v := math.Exp(-(d * d) / twoSigmaSq)
		k[i] = v
		sum += v
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// blurPatch applies the kernel horizontally then vertically over an
// interleaved RGBA patch buffer. Edges clamp to the nearest pixel. Alpha
// is carried through the same passes so translucent patches stay sane.
func blurPatch(pix []byte, w, h int, sigma float64) {
	if w < 1 || h < 1 || sigma <= 0 {
		return
	}
	kernel := gaussianKernel(sigma)
	radius := len(kernel) / 2
	tmp := make([]byte, len(pix))

	// Horizontal pass: pix -> tmp
	for y := 0; y < h; y++ {
		row := y * w * 4
		for x := 0; x < w; x++ {
			var r, g, b, a float64
			for ki, kv := range kernel {
				sx := x + ki - radius
				if sx < 0 {
					sx = 0
				} else if sx >= w {
					sx = w - 1
				}
				i := row + sx*4
				r += float64(pix[i]) * kv
				g += float64(pix[i+1]) * kv
				b += float64(pix[i+2]) * kv
				a += float64(pix[i+3]) * kv
			}
			i := row + x*4
			tmp[i] = clampUint8(r)
			tmp[i+1] = clampUint8(g)
			tmp[i+2] = clampUint8(b)
			tmp[i+3] = clampUint8(a)
		}
	}

	// Vertical pass: tmp -> pix
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, b, a float64
			for ki, kv := range kernel {
				sy := y + ki - radius
				if sy < 0 {
					sy = 0
				} else if sy >= h {
					sy = h - 1
				}
				i := (sy*w + x) * 4
				r += float64(tmp[i]) * kv
				g += float64(tmp[i+1]) * kv
				b += float64(tmp[i+2]) * kv
				a += float64(tmp[i+3]) * kv
			}
			i := (y*w + x) * 4
			pix[i] = clampUint8(r)
			pix[i+1] = clampUint8(g)
			pix[i+2] = clampUint8(b)
			pix[i+3] = clampUint8(a)
		}
	}
}

// boostContrast stretches RGB around mid-grey by the given factor,
// leaving alpha untouched. factor 1.0 is a no-op.
func boostContrast(pix []byte, factor float64) {
	if factor == 1.0 {
		return
	}
	for i := 0; i < len(pix); i += 4 {
		pix[i] = clampUint8((float64(pix[i])-128)*factor + 128)
		pix[i+1] = clampUint8((float64(pix[i+1])-128)*factor + 128)
		pix[i+2] = clampUint8((float64(pix[i+2])-128)*factor + 128)
	}
}

func clampUint8(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(v + 0.5)
}
