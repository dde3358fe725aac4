//go:build !gst

// media_source_default_test.go - Tests for pure-Go playback source selection

package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// TestOpenPlaybackSource_StillPlaysItself: a decodable still becomes a
// StillSource at native dimensions.
func TestOpenPlaybackSource_StillPlaysItself(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 24, 18))
	for y := 0; y < 18; y++ {
		for x := 0; x < 24; x++ {
			img.Set(x, y, color.RGBA{128, 128, 128, 255})
		}
	}
	path := filepath.Join(t.TempDir(), "frame.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	f.Close()

	src, err := openPlaybackSource(path, "")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer src.Close()
	if _, ok := src.(*StillSource); !ok {
		t.Fatalf("source type %T, expected *StillSource", src)
	}
	w, h := src.Dims()
	if w != 24 || h != 18 {
		t.Errorf("dims %dx%d, expected native 24x18", w, h)
	}
}

// TestOpenPlaybackSource_VideoFallsBackToPattern: without real decode,
// video paths and links get the synthesized signal at the stand-in
// resolution.
func TestOpenPlaybackSource_VideoFallsBackToPattern(t *testing.T) {
	cases := []struct{ path, url string }{
		{"/tmp/clip.mp4", ""},
		{"", "https://www.youtube.com/watch?v=abc"},
		{"", ""},
	}
	for _, c := range cases {
		src, err := openPlaybackSource(c.path, c.url)
		if err != nil {
			t.Fatalf("open(%q, %q) failed: %v", c.path, c.url, err)
		}
		if _, ok := src.(*PatternSource); !ok {
			t.Errorf("open(%q, %q) type %T, expected *PatternSource", c.path, c.url, src)
		}
		w, h := src.Dims()
		if w != 1280 || h != 720 {
			t.Errorf("dims %dx%d, expected 1280x720", w, h)
		}
		src.Close()
	}
}

// TestOpenPlaybackSource_BadStill surfaces the decode error rather than
// silently falling back.
func TestOpenPlaybackSource_BadStill(t *testing.T) {
	junk := filepath.Join(t.TempDir(), "junk.png")
	if err := os.WriteFile(junk, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("write junk: %v", err)
	}
	if _, err := openPlaybackSource(junk, ""); err == nil {
		t.Error("corrupt still accepted")
	}
}
