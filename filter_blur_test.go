// filter_blur_test.go - Tests for the Gaussian blur and contrast helpers

package main

import (
	"math"
	"testing"
)

// TestGaussianKernel_Shape verifies kernel sizing and normalization for a
// range of sigmas.
func TestGaussianKernel_Shape(t *testing.T) {
	cases := []struct {
		sigma    float64
		wantSize int
	}{
		{1.1, 9},  // ceil(3.3)=4 -> 9 taps
		{2.5, 17}, // ceil(7.5)=8 -> 17 taps
		{0.5, 5},  // ceil(1.5)=2 -> 5 taps
	}
	for _, c := range cases {
		k := gaussianKernel(c.sigma)
		if len(k) != c.wantSize {
			t.Errorf("sigma %.1f: kernel size %d, expected %d", c.sigma, len(k), c.wantSize)
		}
		sum := 0.0
		for _, v := range k {
			sum += v
		}
		if math.Abs(sum-1.0) > 1e-9 {
			t.Errorf("sigma %.1f: kernel sums to %f, expected 1.0", c.sigma, sum)
		}
		mid := len(k) / 2
		for i := 1; i <= mid; i++ {
			if k[mid-i] > k[mid] || k[mid+i] > k[mid] {
				t.Errorf("sigma %.1f: tap %d exceeds center", c.sigma, i)
			}
			if math.Abs(k[mid-i]-k[mid+i]) > 1e-12 {
				t.Errorf("sigma %.1f: kernel asymmetric at offset %d", c.sigma, i)
			}
		}
	}
}

// TestGaussianKernel_ZeroSigma: non-positive sigma collapses to the
// identity kernel.
func TestGaussianKernel_ZeroSigma(t *testing.T) {
	for _, sigma := range []float64{0, -1} {
		k := gaussianKernel(sigma)
		if len(k) != 1 || k[0] != 1 {
			t.Errorf("sigma %.0f: kernel %v, expected [1]", sigma, k)
		}
	}
}

// TestBlurPatch_FlattensEdge blurs a hard black/white vertical edge and
// expects intermediate values to appear where the edge was.
func TestBlurPatch_FlattensEdge(t *testing.T) {
	const w, h = 16, 8
	pix := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * 4
			var v byte
			if x >= w/2 {
				v = 255
			}
			pix[i], pix[i+1], pix[i+2], pix[i+3] = v, v, v, 255
		}
	}
	blurPatch(pix, w, h, 1.5)

	i := (3*w + w/2) * 4
	if pix[i] == 0 || pix[i] == 255 {
		t.Errorf("edge pixel stayed at %d, expected an intermediate value", pix[i])
	}
	left := (3 * w) * 4
	right := (3*w + w - 1) * 4
	if pix[left] >= pix[right] {
		t.Errorf("gradient lost: left %d, right %d", pix[left], pix[right])
	}
}

// TestBlurPatch_UniformUnchanged: blurring a flat patch must not shift
// its tone.
func TestBlurPatch_UniformUnchanged(t *testing.T) {
	const w, h = 12, 12
	pix := make([]byte, w*h*4)
	for i := range pix {
		pix[i] = 90
	}
	blurPatch(pix, w, h, 2.5)
	for i, v := range pix {
		if v != 90 {
			t.Fatalf("byte %d changed to %d, expected 90", i, v)
		}
	}
}

// TestBlurPatch_PreservesOpaqueAlpha: fully opaque input stays fully
// opaque after both passes.
func TestBlurPatch_PreservesOpaqueAlpha(t *testing.T) {
	const w, h = 10, 6
	pix := make([]byte, w*h*4)
	for i := 0; i < len(pix); i += 4 {
		pix[i] = byte(i % 251)
		pix[i+1] = byte((i * 3) % 251)
		pix[i+2] = byte((i * 7) % 251)
		pix[i+3] = 255
	}
	blurPatch(pix, w, h, 1.1)
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 255 {
			t.Fatalf("alpha at byte %d dropped to %d", i, pix[i])
		}
	}
}

// TestBlurPatch_GuardsDegenerateInput: zero dimensions or sigma leave the
// buffer alone instead of panicking.
func TestBlurPatch_GuardsDegenerateInput(t *testing.T) {
	pix := []byte{10, 20, 30, 255}
	blurPatch(pix, 0, 1, 1.0)
	blurPatch(pix, 1, 0, 1.0)
	blurPatch(pix, 1, 1, 0)
	if pix[0] != 10 || pix[1] != 20 || pix[2] != 30 || pix[3] != 255 {
		t.Fatalf("degenerate blur modified the buffer: %v", pix)
	}
}

// TestBoostContrast_StretchesAroundMid: values above 128 rise, values
// below fall, 128 itself is a fixed point and alpha is untouched.
func TestBoostContrast_StretchesAroundMid(t *testing.T) {
	pix := []byte{
		128, 200, 60, 77,
		0, 255, 128, 200,
	}
	boostContrast(pix, 1.5)
	if pix[0] != 128 {
		t.Errorf("mid-grey moved to %d, expected 128", pix[0])
	}
	if pix[1] <= 200 {
		t.Errorf("bright value %d did not rise above 200", pix[1])
	}
	if pix[2] >= 60 {
		t.Errorf("dark value %d did not fall below 60", pix[2])
	}
	if pix[3] != 77 || pix[7] != 200 {
		t.Errorf("alpha changed: %d, %d", pix[3], pix[7])
	}
	if pix[4] != 0 || pix[5] != 255 {
		t.Errorf("extremes not clamped: %d, %d", pix[4], pix[5])
	}
}

// TestBoostContrast_UnityNoop confirms factor 1.0 leaves every byte in
// place.
func TestBoostContrast_UnityNoop(t *testing.T) {
	pix := []byte{1, 2, 3, 4, 250, 128, 9, 0}
	want := append([]byte(nil), pix...)
	boostContrast(pix, 1.0)
	for i := range pix {
		if pix[i] != want[i] {
			t.Fatalf("byte %d changed from %d to %d", i, want[i], pix[i])
		}
	}
}

// TestClampUint8 covers rounding and both saturation ends.
func TestClampUint8(t *testing.T) {
	cases := []struct {
		in   float64
		want byte
	}{
		{-10, 0},
		{0, 0},
		{0.4, 0},
		{0.6, 1},
		{127.5, 128},
		{254.4, 254},
		{255, 255},
		{300, 255},
	}
	for _, c := range cases {
		if got := clampUint8(c.in); got != c.want {
			t.Errorf("clampUint8(%.1f) = %d, expected %d", c.in, got, c.want)
		}
	}
}
