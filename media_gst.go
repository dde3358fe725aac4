//go:build gst

// media_gst.go - GStreamer-backed media source (build with -tags gst)

package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/tinyzimmer/go-gst/gst"
	"github.com/tinyzimmer/go-gst/gst/app"
)

// GstSource decodes real media through a uridecodebin pipeline and keeps
// the latest RGBA frame in a double buffer the frame loop polls.
//
// Pipeline: uridecodebin -> videoconvert -> capsfilter(RGBA) -> appsink
type GstSource struct {
	pipeline *gst.Pipeline
	sink     *app.Sink

	mu      sync.Mutex
	cur     []byte
	w, h    int
	playing bool
}

// openPlaybackSource builds a GstSource for the file or URL; stills keep
// the lightweight decoder.
func openPlaybackSource(path, url string) (MediaSource, error) {
	if path != "" && isStillPath(path) {
		return NewStillSource(path)
	}
	uri := url
	if uri == "" {
		uri = "file://" + path
	}
	return NewGstSource(uri)
}

// NewGstSource constructs the pipeline in the NULL state; Play() starts it.
func NewGstSource(uri string) (*GstSource, error) {
	gst.Init(nil)

	pipeline, err := gst.NewPipeline("")
	if err != nil {
		return nil, &EngineError{Operation: "gst pipeline", Details: "create", Err: err}
	}

	src, err := gst.NewElement("uridecodebin")
	if err != nil {
		return nil, &EngineError{Operation: "gst pipeline", Details: "uridecodebin", Err: err}
	}
	src.SetProperty("uri", uri)

	convert, err := gst.NewElement("videoconvert")
	if err != nil {
		return nil, &EngineError{Operation: "gst pipeline", Details: "videoconvert", Err: err}
	}

	capsfilter, err := gst.NewElement("capsfilter")
	if err != nil {
		return nil, &EngineError{Operation: "gst pipeline", Details: "capsfilter", Err: err}
	}
	capsfilter.SetProperty("caps", gst.NewCapsFromString("video/x-raw,format=RGBA"))

	sink, err := app.NewAppSink()
	if err != nil {
		return nil, &EngineError{Operation: "gst pipeline", Details: "appsink", Err: err}
	}
	sink.SetProperty("sync", true)
	sink.SetProperty("max-buffers", 2)
	sink.SetProperty("drop", true)

	if err := pipeline.AddMany(src, convert, capsfilter, sink.Element); err != nil {
		return nil, &EngineError{Operation: "gst pipeline", Details: "add elements", Err: err}
	}
	if err := gst.ElementLinkMany(convert, capsfilter, sink.Element); err != nil {
		return nil, &EngineError{Operation: "gst pipeline", Details: "link", Err: err}
	}

	// uridecodebin exposes pads only once the stream type is known.
	src.Connect("pad-added", func(self *gst.Element, pad *gst.Pad) {
		caps := pad.GetCurrentCaps()
		if caps == nil || caps.GetSize() == 0 {
			return
		}
		if !strings.HasPrefix(caps.GetStructureAt(0).Name(), "video/") {
			return
		}
		sinkPad := convert.GetStaticPad("sink")
		if sinkPad == nil || sinkPad.IsLinked() {
			return
		}
		if ret := pad.Link(sinkPad); ret != gst.PadLinkOK {
			log.Warn().Str("result", fmt.Sprint(ret)).Msg("gst pad link failed")
		}
	})

	gs := &GstSource{pipeline: pipeline, sink: sink}

	sink.SetCallbacks(&app.SinkCallbacks{
		NewSampleFunc: func(s *app.Sink) gst.FlowReturn {
			sample := s.PullSample()
			if sample == nil {
				return gst.FlowOK
			}
			buffer := sample.GetBuffer()
			if buffer == nil {
				return gst.FlowOK
			}
			mapInfo := buffer.Map(gst.MapRead)
			data := mapInfo.Bytes()
			if len(data) == 0 {
				buffer.Unmap()
				return gst.FlowOK
			}
			w, h := dimsFromSink(s)
			frame := make([]byte, len(data))
			copy(frame, data)
			buffer.Unmap()

			gs.mu.Lock()
			gs.cur = frame
			if w > 0 && h > 0 {
				gs.w, gs.h = w, h
			}
			gs.mu.Unlock()
			return gst.FlowOK
		},
	})

	return gs, nil
}

// dimsFromSink reads the negotiated frame size off the appsink pad. Zero
// dims mean caps are not negotiated yet.
func dimsFromSink(s *app.Sink) (int, int) {
	pad := s.GetStaticPad("sink")
	if pad == nil {
		return 0, 0
	}
	caps := pad.GetCurrentCaps()
	if caps == nil || caps.GetSize() == 0 {
		return 0, 0
	}
	st := caps.GetStructureAt(0)
	w, werr := st.GetValue("width")
	h, herr := st.GetValue("height")
	if werr != nil || herr != nil {
		return 0, 0
	}
	wi, _ := w.(int)
	hi, _ := h.(int)
	return wi, hi
}

func (g *GstSource) Dims() (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.w == 0 || g.h == 0 {
		return 1280, 720
	}
	return g.w, g.h
}

func (g *GstSource) Playing() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.playing
}

func (g *GstSource) Play() {
	g.mu.Lock()
	g.playing = true
	g.mu.Unlock()
	if err := g.pipeline.SetState(gst.StatePlaying); err != nil {
		log.Warn().Err(err).Msg("gst set playing failed")
	}
}

func (g *GstSource) Pause() {
	g.mu.Lock()
	g.playing = false
	g.mu.Unlock()
	if err := g.pipeline.SetState(gst.StatePaused); err != nil {
		log.Warn().Err(err).Msg("gst set paused failed")
	}
}

// Frame hands back the latest decoded frame; the previous buffer stays
// untouched so the caller may keep copying from it until the next call.
func (g *GstSource) Frame() []byte {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.cur
}

func (g *GstSource) Close() error {
	g.mu.Lock()
	g.playing = false
	g.mu.Unlock()
	if err := g.pipeline.SetState(gst.StateNull); err != nil {
		return &EngineError{Operation: "gst teardown", Details: "set null", Err: err}
	}
	return nil
}
