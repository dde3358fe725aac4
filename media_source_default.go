//go:build !gst

// media_source_default.go - Playback source selection for the pure-Go build

package main

// openPlaybackSource picks a frame supplier for the ready result. Without
// the gst build tag there is no real demux/decode: stills play as
// themselves and any other media is represented by the synthesized
// pattern signal at a stand-in resolution.
func openPlaybackSource(path, url string) (MediaSource, error) {
	if path != "" && isStillPath(path) {
		return NewStillSource(path)
	}
	return NewPatternSource(1280, 720), nil
}
