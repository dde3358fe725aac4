// video_backend_headless.go - Off-screen display backend

package main

import (
	"sync"
	"sync/atomic"
	"time"
)

// HeadlessVideoOutput satisfies VideoOutput without a window. It keeps the
// last pushed frame so snapshots and tests can inspect what would have
// been displayed.
type HeadlessVideoOutput struct {
	started     bool
	config      DisplayConfig
	frameCount  uint64
	refreshRate int

	mu           sync.RWMutex
	frame        []byte
	width        int
	height       int
	status       StatusSnapshot
	keyHandler   func(byte)
	pasteHandler func(string)
	done         chan struct{}
}

func NewHeadlessOutput() (VideoOutput, error) {
	return &HeadlessVideoOutput{
		refreshRate: 60,
		done:        make(chan struct{}),
	}, nil
}

func (h *HeadlessVideoOutput) Start() error {
	h.started = true
	return nil
}

func (h *HeadlessVideoOutput) Stop() error {
	h.started = false
	h.mu.Lock()
	select {
	case <-h.done:
	default:
		close(h.done)
	}
	h.mu.Unlock()
	return nil
}

func (h *HeadlessVideoOutput) Close() error {
	return h.Stop()
}

func (h *HeadlessVideoOutput) Done() <-chan struct{} {
	h.mu.RLock()
	done := h.done
	h.mu.RUnlock()
	return done
}

func (h *HeadlessVideoOutput) IsStarted() bool {
	return h.started
}

func (h *HeadlessVideoOutput) SetDisplayConfig(config DisplayConfig) error {
	h.config = config
	return nil
}

func (h *HeadlessVideoOutput) GetDisplayConfig() DisplayConfig {
	return h.config
}

func (h *HeadlessVideoOutput) UpdateFrame(buffer []byte, width, height int) error {
	if width <= 0 || height <= 0 || len(buffer) < width*height*4 {
		return &EngineError{Operation: "frame update", Details: "undersized frame buffer"}
	}
	h.mu.Lock()
	size := width * height * 4
	if len(h.frame) != size {
		h.frame = make([]byte, size)
	}
	copy(h.frame, buffer[:size])
	h.width = width
	h.height = height
	h.mu.Unlock()
	atomic.AddUint64(&h.frameCount, 1)
	return nil
}

func (h *HeadlessVideoOutput) SetStatus(status StatusSnapshot) {
	h.mu.Lock()
	h.status = status
	h.mu.Unlock()
}

// Status returns the last status pushed to the backend.
func (h *HeadlessVideoOutput) Status() StatusSnapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.status
}

func (h *HeadlessVideoOutput) GetSnapshot() (FrameSnapshot, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	snapshot := FrameSnapshot{
		Buffer:    make([]byte, len(h.frame)),
		Width:     h.width,
		Height:    h.height,
		Timestamp: time.Now(),
	}
	copy(snapshot.Buffer, h.frame)
	return snapshot, nil
}

func (h *HeadlessVideoOutput) SetKeyHandler(fn func(byte)) {
	h.mu.Lock()
	h.keyHandler = fn
	h.mu.Unlock()
}

func (h *HeadlessVideoOutput) SetPasteHandler(fn func(string)) {
	h.mu.Lock()
	h.pasteHandler = fn
	h.mu.Unlock()
}

// InjectKey feeds a byte through the registered key handler as if it had
// been typed.
func (h *HeadlessVideoOutput) InjectKey(b byte) {
	h.mu.RLock()
	handler := h.keyHandler
	h.mu.RUnlock()
	if handler != nil {
		handler(b)
	}
}

// InjectPaste feeds text through the registered paste handler.
func (h *HeadlessVideoOutput) InjectPaste(text string) {
	h.mu.RLock()
	paste := h.pasteHandler
	h.mu.RUnlock()
	if paste != nil {
		paste(text)
	}
}

func (h *HeadlessVideoOutput) WaitForVSync() error {
	return nil
}

func (h *HeadlessVideoOutput) GetFrameCount() uint64 {
	return atomic.LoadUint64(&h.frameCount)
}

func (h *HeadlessVideoOutput) GetRefreshRate() int {
	if h.refreshRate == 0 {
		return 60
	}
	return h.refreshRate
}
