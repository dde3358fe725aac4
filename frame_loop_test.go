// frame_loop_test.go - Tests for the per-refresh reconstruction loop

package main

import (
	"bytes"
	"testing"
	"time"
)

// newTestLoop wires a pattern source into a headless output with a seeded
// compositor over the default regions.
func newTestLoop(t *testing.T, w, h int) (*FrameLoop, *HeadlessVideoOutput, *PatternSource) {
	t.Helper()
	source := NewPatternSource(w, h)
	out, err := NewHeadlessOutput()
	if err != nil {
		t.Fatalf("headless output: %v", err)
	}
	headless := out.(*HeadlessVideoOutput)
	comp := NewCompositor(defaultGrainCnt, 5)
	loop := NewFrameLoop(source, headless, comp, DefaultProfile().Regions, 60)
	return loop, headless, source
}

// TestFrameLoop_TickPushesFrame: one manual tick lands a full frame of
// media dimensions on the display backend.
func TestFrameLoop_TickPushesFrame(t *testing.T) {
	loop, out, source := newTestLoop(t, 320, 240)
	source.Play()

	if !loop.Tick() {
		t.Fatal("tick reported skipped")
	}
	if out.GetFrameCount() != 1 {
		t.Errorf("frame count %d, expected 1", out.GetFrameCount())
	}
	snap, err := out.GetSnapshot()
	if err != nil {
		t.Fatalf("snapshot failed: %v", err)
	}
	if snap.Width != 320 || snap.Height != 240 {
		t.Errorf("snapshot dims %dx%d, expected media dims 320x240", snap.Width, snap.Height)
	}
	if len(snap.Buffer) != 320*240*4 {
		t.Errorf("snapshot buffer %d bytes", len(snap.Buffer))
	}
}

// TestFrameLoop_CompositesOverlayAway: with compare off, the overlay slab
// region in the displayed frame must differ from the raw media frame.
func TestFrameLoop_CompositesOverlayAway(t *testing.T) {
	loop, out, source := newTestLoop(t, 320, 240)
	source.Play()
	loop.SetCompare(false)
	loop.Tick()

	raw := NewPatternSource(320, 240)
	raw.Play()
	rawFrame := raw.Frame()

	snap, _ := out.GetSnapshot()
	// Compare inside the first default region, which covers the synthetic
	// top-left slab.
	rr := DefaultProfile().Regions[0].PixelRect(320, 240)
	cx, cy := rr.X+rr.W/2, rr.Y+rr.H/2
	i := (cy*320 + cx) * 4
	if snap.Buffer[i] == rawFrame[i] && snap.Buffer[i+1] == rawFrame[i+1] && snap.Buffer[i+2] == rawFrame[i+2] {
		t.Error("region center identical to raw frame; compositing did not run")
	}
}

// TestFrameLoop_CompareShowsOriginal: compare mode must hand the raw frame
// through untouched.
func TestFrameLoop_CompareShowsOriginal(t *testing.T) {
	loop, out, source := newTestLoop(t, 320, 240)
	source.Play()
	loop.SetCompare(true)
	if !loop.CompareOriginal() {
		t.Fatal("compare flag not set")
	}
	loop.Tick()

	raw := NewPatternSource(320, 240)
	raw.Play()
	rawFrame := raw.Frame()

	snap, _ := out.GetSnapshot()
	if !bytes.Equal(snap.Buffer, rawFrame) {
		t.Error("compare mode altered the frame")
	}
}

// TestFrameLoop_PausedHoldsFrame: pausing skips the draw/composite body,
// so nothing new reaches the display and the backend keeps the last
// frame; resuming pushes fresh frames again.
func TestFrameLoop_PausedHoldsFrame(t *testing.T) {
	loop, out, source := newTestLoop(t, 320, 240)
	source.Play()
	loop.Tick()
	first, _ := out.GetSnapshot()

	source.Pause()
	if !loop.Tick() {
		t.Fatal("paused tick reported skipped")
	}
	if out.GetFrameCount() != 1 {
		t.Errorf("frame count %d after a paused tick, expected 1", out.GetFrameCount())
	}
	second, _ := out.GetSnapshot()
	if !bytes.Equal(first.Buffer, second.Buffer) {
		t.Error("paused tick altered the displayed frame")
	}

	source.Play()
	loop.Tick()
	if out.GetFrameCount() != 2 {
		t.Errorf("frame count %d after resume, expected 2", out.GetFrameCount())
	}
	third, _ := out.GetSnapshot()
	if bytes.Equal(second.Buffer, third.Buffer) {
		t.Error("resumed playback did not advance the frame")
	}
}

// TestFrameLoop_ResizesToSourceDims: swapping in a source with different
// dimensions resizes the working surfaces on the next tick.
func TestFrameLoop_ResizesToSourceDims(t *testing.T) {
	loop, out, source := newTestLoop(t, 320, 240)
	source.Play()
	loop.Tick()

	small := NewPatternSource(64, 48)
	small.Play()
	loop.SetSource(small)
	loop.Tick()

	snap, _ := out.GetSnapshot()
	if snap.Width != 64 || snap.Height != 48 {
		t.Errorf("snapshot dims %dx%d after source swap, expected 64x48", snap.Width, snap.Height)
	}
}

// TestFrameLoop_StartStopToken: stopping needs the live token; a stale one
// is refused and a fresh run hands out a new generation.
func TestFrameLoop_StartStopToken(t *testing.T) {
	loop, _, source := newTestLoop(t, 64, 48)
	source.Play()

	tok1, err := loop.Start()
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := loop.Start(); err == nil {
		t.Error("second start accepted while running")
	}
	if !loop.Stop(tok1) {
		t.Error("stop with the live token refused")
	}
	if loop.Stop(tok1) {
		t.Error("stop with a spent token accepted")
	}

	tok2, err := loop.Start()
	if err != nil {
		t.Fatalf("restart failed: %v", err)
	}
	if tok2 == tok1 {
		t.Error("restart reissued the old token")
	}
	if loop.Stop(tok1) {
		t.Error("old token stopped the new run")
	}
	if !loop.Stop(tok2) {
		t.Error("stop with the current token refused")
	}
}

// TestFrameLoop_RunningLoopTicks: a started loop pushes frames on its own.
func TestFrameLoop_RunningLoopTicks(t *testing.T) {
	loop, out, source := newTestLoop(t, 64, 48)
	source.Play()
	tok, err := loop.Start()
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	defer loop.Stop(tok)

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if out.GetFrameCount() >= 3 {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("loop pushed %d frames, expected at least 3", out.GetFrameCount())
}

// TestFrameLoop_SetSampleGapClamps keeps the gap in the usable band.
func TestFrameLoop_SetSampleGapClamps(t *testing.T) {
	loop, _, _ := newTestLoop(t, 64, 48)
	cases := []struct{ in, want int }{
		{10, minSampleGap},
		{45, 45},
		{500, maxSampleGap},
	}
	for _, c := range cases {
		loop.SetSampleGap(c.in)
		loop.mu.Lock()
		got := loop.gap
		loop.mu.Unlock()
		if got != c.want {
			t.Errorf("gap %d clamped to %d, expected %d", c.in, got, c.want)
		}
	}
}

// TestFrameLoop_CleanSnapshotMatchesOutput: the export snapshot equals the
// most recent composited frame pushed to the display.
func TestFrameLoop_CleanSnapshotMatchesOutput(t *testing.T) {
	loop, out, source := newTestLoop(t, 320, 240)
	source.Play()
	loop.Tick()

	clean := loop.CleanSnapshot()
	pushed, _ := out.GetSnapshot()
	if !bytes.Equal(clean.Buffer, pushed.Buffer) {
		t.Error("clean snapshot differs from the displayed frame")
	}
	if clean.Width != pushed.Width || clean.Height != pushed.Height {
		t.Errorf("snapshot dims %dx%d vs %dx%d", clean.Width, clean.Height, pushed.Width, pushed.Height)
	}
}

// TestFrameLoop_OverlappingTickSkipped: a tick arriving while another is
// in flight reports false instead of queueing.
func TestFrameLoop_OverlappingTickSkipped(t *testing.T) {
	loop, _, source := newTestLoop(t, 64, 48)
	source.Play()

	loop.ticking.Store(true)
	if loop.Tick() {
		t.Error("tick ran while another was marked in flight")
	}
	loop.ticking.Store(false)
	if !loop.Tick() {
		t.Error("tick refused after the in-flight marker cleared")
	}
}

// TestFrameLoop_NilOutputTolerated: ticking without a display backend
// still composites for snapshot consumers.
func TestFrameLoop_NilOutputTolerated(t *testing.T) {
	source := NewPatternSource(64, 48)
	source.Play()
	loop := NewFrameLoop(source, nil, NewCompositor(defaultGrainCnt, 5), DefaultProfile().Regions, 60)
	if !loop.Tick() {
		t.Fatal("tick skipped with nil output")
	}
	snap := loop.CleanSnapshot()
	if snap.Width != 64 || snap.Height != 48 {
		t.Errorf("snapshot dims %dx%d", snap.Width, snap.Height)
	}
}
