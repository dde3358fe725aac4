// video_interface.go - Display backend interface for composited playback

package main

import (
	"fmt"
	"time"
)

// FrameSnapshot encapsulates the data needed to represent a complete frame
type FrameSnapshot struct {
	Buffer    []byte // Raw RGBA frame data
	Width     int    // Frame width in pixels
	Height    int    // Frame height in pixels
	Timestamp time.Time
}

// DisplayConfig contains backend-independent configuration
type DisplayConfig struct {
	Width       int
	Height      int
	Scale       int // Integer scaling factor for output
	RefreshRate int // Target refresh rate in Hz
	VSync       bool
	Fullscreen  bool
}

// StatusSnapshot is the footer state a backend renders under the frame.
type StatusSnapshot struct {
	Source  string
	Stage   StageKind
	Message string
	Percent int
	Compare bool
	Playing bool
}

// VideoOutput defines the minimal interface that display backends must
// implement
type VideoOutput interface {
	// Lifecycle management
	Start() error
	Stop() error
	Close() error
	IsStarted() bool

	// Core display operations - kept minimal
	SetDisplayConfig(config DisplayConfig) error
	GetDisplayConfig() DisplayConfig
	UpdateFrame(buffer []byte, width, height int) error // Raw RGBA pixels only
	SetStatus(status StatusSnapshot)
	GetSnapshot() (FrameSnapshot, error)

	// Input routing
	SetKeyHandler(handler func(key byte))
	SetPasteHandler(handler func(text string))

	// Timing and synchronization
	WaitForVSync() error
	GetFrameCount() uint64
	GetRefreshRate() int
}

// Command keys every backend feeds through the key handler.
const (
	KeyProcess  = 'p'
	KeyCompare  = 'c'
	KeyReset    = 'r'
	KeySnapshot = 's'
	KeyPlayback = ' '
)

// Predefined video backend types
const (
	VIDEO_BACKEND_EBITEN   = iota // Graphical Ebiten backend
	VIDEO_BACKEND_HEADLESS        // Off-screen backend for servers and tests
)

// NewVideoOutput creates a new video output instance using the specified
// backend
func NewVideoOutput(backend int) (VideoOutput, error) {
	switch backend {
	case VIDEO_BACKEND_EBITEN:
		return NewEbitenOutput()
	case VIDEO_BACKEND_HEADLESS:
		return NewHeadlessOutput()
	}
	return nil, &EngineError{
		Operation: "backend creation",
		Details:   fmt.Sprintf("unknown backend type: %d", backend),
	}
}
