// media_source.go - Playback frame suppliers feeding the frame loop

package main

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	xdraw "golang.org/x/image/draw"
)

// MediaSource supplies raw RGBA frames at native media dimensions. The
// frame loop polls it once per display refresh; implementations return
// the current frame without blocking. Frame buffers stay valid until the
// next Frame call.
type MediaSource interface {
	Dims() (w, h int)
	Playing() bool
	Frame() []byte
	Play()
	Pause()
	Close() error
}

// PatternSource synthesizes an animated test signal: a drifting diagonal
// gradient with bright overlay slabs stamped where typical watermarks sit.
// It stands in for real decode in the default build and carries most of
// the pipeline tests.
type PatternSource struct {
	w, h    int
	tick    uint64
	playing atomic.Bool
	buf     []byte
}

func NewPatternSource(w, h int) *PatternSource {
	if w < 16 {
		w = 16
	}
	if h < 16 {
		h = 16
	}
	return &PatternSource{w: w, h: h, buf: make([]byte, w*h*4)}
}

func (p *PatternSource) Dims() (int, int) { return p.w, p.h }

func (p *PatternSource) Playing() bool { return p.playing.Load() }

func (p *PatternSource) Play() { p.playing.Store(true) }

func (p *PatternSource) Pause() { p.playing.Store(false) }

func (p *PatternSource) Close() error { return nil }

// Frame renders the next animation step. Deterministic in the number of
// calls made since construction.
func (p *PatternSource) Frame() []byte {
	t := p.tick
	p.tick++
	phase := float64(t) * 0.02
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w; x++ {
			i := (y*p.w + x) * 4
			g := 0.5 + 0.5*math.Sin(float64(x+y)/48.0+phase)
			p.buf[i] = byte(40 + 150*g)
			p.buf[i+1] = byte(60 + 120*g)
			p.buf[i+2] = byte(90 + 140*g)
			p.buf[i+3] = 255
		}
	}
	// Overlay slabs approximating embedded brand marks.
	p.stampSlab(int(0.03*float64(p.w)), int(0.04*float64(p.h)), p.w/6, p.h/12)
	p.stampSlab(int(0.74*float64(p.w)), int(0.86*float64(p.h)), p.w/5, p.h/10)
	return p.buf
}

func (p *PatternSource) stampSlab(x0, y0, w, h int) {
	for y := y0; y < y0+h && y < p.h; y++ {
		for x := x0; x < x0+w && x < p.w; x++ {
			i := (y*p.w + x) * 4
			p.buf[i] = byte(min(255, int(p.buf[i])+130))
			p.buf[i+1] = byte(min(255, int(p.buf[i+1])+130))
			p.buf[i+2] = byte(min(255, int(p.buf[i+2])+130))
		}
	}
}

// StillSource plays a single decoded image: every tick yields the same
// frame at the image's native dimensions.
type StillSource struct {
	w, h    int
	playing atomic.Bool
	buf     []byte
}

// NewStillSource decodes a PNG or JPEG from disk.
func NewStillSource(path string) (*StillSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &EngineError{Operation: "still open", Details: path, Err: err}
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &EngineError{Operation: "still decode", Details: path, Err: err}
	}
	return NewStillSourceFromImage(img), nil
}

// NewStillSourceFromImage wraps an already-decoded image.
func NewStillSourceFromImage(img image.Image) *StillSource {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	rgba := &image.RGBA{Pix: make([]byte, w*h*4), Stride: w * 4, Rect: image.Rect(0, 0, w, h)}
	xdraw.Draw(rgba, rgba.Rect, img, b.Min, xdraw.Src)
	return &StillSource{w: w, h: h, buf: rgba.Pix}
}

func (s *StillSource) Dims() (int, int) { return s.w, s.h }

func (s *StillSource) Playing() bool { return s.playing.Load() }

func (s *StillSource) Play() { s.playing.Store(true) }

func (s *StillSource) Pause() { s.playing.Store(false) }

func (s *StillSource) Close() error { return nil }

func (s *StillSource) Frame() []byte { return s.buf }

// isStillPath reports whether a file path looks like a decodable still.
func isStillPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg":
		return true
	}
	return false
}
