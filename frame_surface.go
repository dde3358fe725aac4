// frame_surface.go - Mutable RGBA pixel buffer sized to the playing media

package main

import (
	"image"
	"time"

	xdraw "golang.org/x/image/draw"
)

// FrameSurface is the working pixel buffer the frame loop draws raw media
// into and the compositor mutates in place. RGBA32, stride W*4, owned by
// exactly one goroutine while the loop runs.
type FrameSurface struct {
	W, H int
	Pix  []byte
}

func NewFrameSurface(w, h int) *FrameSurface {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &FrameSurface{W: w, H: h, Pix: make([]byte, w*h*4)}
}

// Resize reallocates the buffer when the observed media dimensions change.
// Returns true when a reallocation happened; contents are undefined after.
func (s *FrameSurface) Resize(w, h int) bool {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w == s.W && h == s.H {
		return false
	}
	s.W, s.H = w, h
	s.Pix = make([]byte, w*h*4)
	return true
}

// PixOffset returns the byte index of the pixel at (x, y).
func (s *FrameSurface) PixOffset(x, y int) int {
	return (y*s.W + x) * 4
}

// Fill floods the whole surface with one color.
func (s *FrameSurface) Fill(r, g, b, a byte) {
	for i := 0; i < len(s.Pix); i += 4 {
		s.Pix[i] = r
		s.Pix[i+1] = g
		s.Pix[i+2] = b
		s.Pix[i+3] = a
	}
}

// SetFrame copies a raw RGBA frame of identical dimensions into the
// surface. Short frames are tolerated by copying what fits.
func (s *FrameSurface) SetFrame(raw []byte) {
	copy(s.Pix, raw)
}

// At reads one pixel. Caller guarantees bounds.
func (s *FrameSurface) At(x, y int) (r, g, b, a byte) {
	i := s.PixOffset(x, y)
	return s.Pix[i], s.Pix[i+1], s.Pix[i+2], s.Pix[i+3]
}

// Set writes one pixel. Caller guarantees bounds.
func (s *FrameSurface) Set(x, y int, r, g, b, a byte) {
	i := s.PixOffset(x, y)
	s.Pix[i] = r
	s.Pix[i+1] = g
	s.Pix[i+2] = b
	s.Pix[i+3] = a
}

// DrawImage scales an arbitrary decoded image onto the full surface.
// Used by the still source path; the video path hands raw bytes straight
// to SetFrame.
func (s *FrameSurface) DrawImage(img image.Image) {
	dst := &image.RGBA{
		Pix:    s.Pix,
		Stride: s.W * 4,
		Rect:   image.Rect(0, 0, s.W, s.H),
	}
	b := img.Bounds()
	if b.Dx() == s.W && b.Dy() == s.H {
		xdraw.Draw(dst, dst.Rect, img, b.Min, xdraw.Src)
		return
	}
	xdraw.ApproxBiLinear.Scale(dst, dst.Rect, img, b, xdraw.Src, nil)
}

// Snapshot returns a deep copy of the current pixels for export paths and
// the display backend. The surface itself keeps sole ownership of Pix.
func (s *FrameSurface) Snapshot() FrameSnapshot {
	buf := make([]byte, len(s.Pix))
	copy(buf, s.Pix)
	return FrameSnapshot{
		Buffer:    buf,
		Width:     s.W,
		Height:    s.H,
		Timestamp: time.Now(),
	}
}
