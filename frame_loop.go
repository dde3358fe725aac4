// frame_loop.go - Per-refresh playback tick driving reconstruction over live frames

package main

import (
	"sync"
	"sync/atomic"
	"time"
)

// TickToken is the capability returned by Start. Stopping requires the
// token of the generation being stopped, so a stale owner cannot cancel a
// loop it no longer runs.
type TickToken struct {
	gen uint64
}

// FrameLoop repeatedly pulls the current media frame, redraws it raw and
// composites the reconstruction passes over every cataloged region before
// handing the result to the display. One tick is in flight at a time;
// a tick that would overlap the previous one is skipped, never queued.
type FrameLoop struct {
	mu      sync.Mutex
	source  MediaSource
	output  VideoOutput
	comp    *Compositor
	regions []Region
	gap     int
	refresh int

	raw  *FrameSurface
	work *FrameSurface

	compare atomic.Bool
	ticking atomic.Bool
	gen     atomic.Uint64
	running bool
	done    chan struct{}
	wg      sync.WaitGroup
}

func NewFrameLoop(source MediaSource, output VideoOutput, comp *Compositor, regions []Region, refreshHz int) *FrameLoop {
	if refreshHz <= 0 {
		refreshHz = 60
	}
	w, h := source.Dims()
	return &FrameLoop{
		source:  source,
		output:  output,
		comp:    comp,
		regions: regions,
		gap:     DefaultSampleGap,
		refresh: refreshHz,
		raw:     NewFrameSurface(w, h),
		work:    NewFrameSurface(w, h),
	}
}

// SetRegions swaps the active region catalog, taking effect on the next
// tick.
func (l *FrameLoop) SetRegions(regions []Region) {
	l.mu.Lock()
	l.regions = regions
	l.mu.Unlock()
}

// SetSampleGap adjusts the sampling gap, clamped to the usable band.
func (l *FrameLoop) SetSampleGap(gap int) {
	if gap < minSampleGap {
		gap = minSampleGap
	}
	if gap > maxSampleGap {
		gap = maxSampleGap
	}
	l.mu.Lock()
	l.gap = gap
	l.mu.Unlock()
}

// SetSource replaces the media source mid-run. The caller keeps ownership
// of the old source.
func (l *FrameLoop) SetSource(source MediaSource) {
	l.mu.Lock()
	l.source = source
	l.mu.Unlock()
}

// SetCompare switches between the reconstructed view and the untouched
// original.
func (l *FrameLoop) SetCompare(on bool) {
	l.compare.Store(on)
}

func (l *FrameLoop) CompareOriginal() bool {
	return l.compare.Load()
}

// Start begins ticking at the configured refresh rate and returns the
// cancellation token for this run.
func (l *FrameLoop) Start() (TickToken, error) {
	l.mu.Lock()
	if l.running {
		l.mu.Unlock()
		return TickToken{}, &EngineError{Operation: "frame loop start", Details: "already running"}
	}
	l.running = true
	l.done = make(chan struct{})
	tok := TickToken{gen: l.gen.Add(1)}
	done := l.done
	l.mu.Unlock()

	l.wg.Add(1)
	go l.loop(tok, done)
	return tok, nil
}

func (l *FrameLoop) loop(tok TickToken, done chan struct{}) {
	defer l.wg.Done()
	ticker := time.NewTicker(time.Second / time.Duration(l.refresh))
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if l.gen.Load() != tok.gen {
				return
			}
			l.Tick()
		}
	}
}

// Stop cancels the run the token belongs to and waits for the loop
// goroutine to exit. A stale or foreign token is refused.
func (l *FrameLoop) Stop(tok TickToken) bool {
	l.mu.Lock()
	if !l.running || tok.gen != l.gen.Load() {
		l.mu.Unlock()
		return false
	}
	l.running = false
	close(l.done)
	l.done = nil
	l.gen.Add(1)
	l.mu.Unlock()
	l.wg.Wait()
	return true
}

// Tick performs one full refresh pass. It reports false when skipped
// because another tick was still in flight. The draw/composite body
// runs only while the source is playing; the display holds the last
// pushed frame across a pause.
func (l *FrameLoop) Tick() bool {
	if !l.ticking.CompareAndSwap(false, true) {
		return false
	}
	defer l.ticking.Store(false)

	l.mu.Lock()
	source := l.source
	output := l.output
	comp := l.comp
	regions := l.regions
	gap := l.gap
	l.mu.Unlock()

	if !source.Playing() {
		return true
	}
	w, h := source.Dims()
	if w <= 0 || h <= 0 {
		return true
	}
	l.raw.Resize(w, h)
	l.work.Resize(w, h)
	l.raw.SetFrame(source.Frame())
	l.work.SetFrame(l.raw.Pix)
	if !l.compare.Load() {
		for _, region := range regions {
			src := SampleSourceGap(region, w, h, gap)
			comp.Apply(l.work, region, src)
		}
	}
	if output != nil {
		output.UpdateFrame(l.work.Pix, w, h)
	}
	return true
}

// CleanSnapshot deep-copies the most recently composited frame for still
// export.
func (l *FrameLoop) CleanSnapshot() FrameSnapshot {
	return l.work.Snapshot()
}
