//go:build !headless

// video_backend_ebiten.go - Ebiten display backend

package main

import (
	"fmt"
	"image/color"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.design/x/clipboard"
	"golang.org/x/image/font/basicfont"
)

const statusBarHeight = 31

type EbitenOutput struct {
	running      bool
	window       *ebiten.Image
	width        int
	height       int
	fullscreen   bool
	scale        int
	windowedW    int
	windowedH    int
	frameBuffer  []byte
	bufferMutex  sync.RWMutex
	frameCount   uint64
	refreshRate  int
	vsyncChan    chan struct{}
	done         chan struct{}
	keyHandler   func(byte)
	pasteHandler func(string)
	status       StatusSnapshot

	clipboardOnce sync.Once
	clipboardOK   bool
	showStatusBar bool
}

func NewEbitenOutput() (VideoOutput, error) {
	return &EbitenOutput{
		width:         1280,
		height:        720,
		scale:         1,
		windowedW:     1280,
		windowedH:     720,
		frameBuffer:   make([]byte, 1280*720*4),
		refreshRate:   60,
		vsyncChan:     make(chan struct{}, 1),
		done:          make(chan struct{}),
		showStatusBar: true,
	}, nil
}

func (eo *EbitenOutput) Start() error {
	if eo.running {
		return nil
	}
	eo.bufferMutex.Lock()
	eo.done = make(chan struct{})
	eo.bufferMutex.Unlock()
	eo.running = true
	ebiten.SetWindowSize(eo.windowedW, eo.windowedH)
	ebiten.SetWindowTitle("ClearFrame")
	ebiten.SetWindowResizable(true)
	ebiten.SetRunnableOnUnfocused(true)
	ebiten.SetVsyncEnabled(true)
	if eo.fullscreen {
		ebiten.SetFullscreen(true)
	}

	go func() {
		defer func() {
			eo.running = false
			eo.bufferMutex.RLock()
			done := eo.done
			eo.bufferMutex.RUnlock()
			select {
			case <-done:
			default:
				close(done)
			}
		}()
		if err := ebiten.RunGame(eo); err != nil {
			fmt.Printf("Ebiten error: %v\n", err)
		}
	}()

	// Wait for first Draw call to ensure Ebiten is ready
	<-eo.vsyncChan
	return nil
}

func (eo *EbitenOutput) Stop() error {
	eo.running = false
	return nil
}

func (eo *EbitenOutput) Close() error {
	return eo.Stop()
}

func (eo *EbitenOutput) Done() <-chan struct{} {
	eo.bufferMutex.RLock()
	done := eo.done
	eo.bufferMutex.RUnlock()
	return done
}

// UpdateFrame replaces the presented frame. The backing buffer and the
// window geometry track the incoming media dimensions.
func (eo *EbitenOutput) UpdateFrame(data []byte, width, height int) error {
	if width <= 0 || height <= 0 || len(data) < width*height*4 {
		return &EngineError{Operation: "frame update", Details: "undersized frame buffer"}
	}
	eo.bufferMutex.Lock()
	if width != eo.width || height != eo.height {
		eo.width = width
		eo.height = height
		eo.frameBuffer = make([]byte, width*height*4)
		eo.windowedW = width * eo.scale
		eo.windowedH = height * eo.scale
		if !eo.fullscreen {
			ebiten.SetWindowSize(eo.windowedW, eo.windowedH)
		}
		if eo.window != nil {
			eo.window.Dispose()
			eo.window = nil
		}
	}
	copy(eo.frameBuffer, data[:width*height*4])
	eo.bufferMutex.Unlock()
	return nil
}

func (eo *EbitenOutput) SetDisplayConfig(config DisplayConfig) error {
	eo.bufferMutex.Lock()
	defer eo.bufferMutex.Unlock()

	width := config.Width
	height := config.Height
	if width <= 0 {
		width = eo.width
	}
	if height <= 0 {
		height = eo.height
	}
	eo.width = width
	eo.height = height
	eo.scale = clampScale(config.Scale)
	if config.RefreshRate > 0 {
		eo.refreshRate = config.RefreshRate
	}
	newSize := eo.width * eo.height * 4

	if len(eo.frameBuffer) != newSize {
		eo.frameBuffer = make([]byte, newSize)
	}

	eo.windowedW = eo.width * eo.scale
	eo.windowedH = eo.height * eo.scale
	eo.fullscreen = config.Fullscreen
	ebiten.SetFullscreen(eo.fullscreen)
	if !eo.fullscreen {
		ebiten.SetWindowSize(eo.windowedW, eo.windowedH)
	}
	if eo.window != nil {
		eo.window.Dispose()
		eo.window = nil
	}
	return nil
}

func (eo *EbitenOutput) GetDisplayConfig() DisplayConfig {
	eo.bufferMutex.RLock()
	defer eo.bufferMutex.RUnlock()
	return DisplayConfig{
		Width:       eo.width,
		Height:      eo.height,
		Scale:       eo.scale,
		RefreshRate: eo.refreshRate,
		VSync:       true,
		Fullscreen:  eo.fullscreen,
	}
}

func (eo *EbitenOutput) WaitForVSync() error {
	<-eo.vsyncChan
	return nil
}

func (eo *EbitenOutput) GetFrameCount() uint64 {
	return eo.frameCount
}

func (eo *EbitenOutput) GetRefreshRate() int {
	return eo.refreshRate
}

func (eo *EbitenOutput) GetSnapshot() (FrameSnapshot, error) {
	eo.bufferMutex.RLock()
	defer eo.bufferMutex.RUnlock()

	snapshot := FrameSnapshot{
		Buffer:    make([]byte, len(eo.frameBuffer)),
		Width:     eo.width,
		Height:    eo.height,
		Timestamp: time.Now(),
	}
	copy(snapshot.Buffer, eo.frameBuffer)
	return snapshot, nil
}

func (eo *EbitenOutput) IsStarted() bool {
	return eo.running
}

func (eo *EbitenOutput) SetStatus(status StatusSnapshot) {
	eo.bufferMutex.Lock()
	eo.status = status
	eo.bufferMutex.Unlock()
}

func (eo *EbitenOutput) Update() error {
	// Check if the window was closed using Ebiten's built-in detection
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}

	// Normal update path when window is open
	if !eo.running {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		eo.bufferMutex.Lock()
		eo.fullscreen = !eo.fullscreen
		ebiten.SetFullscreen(eo.fullscreen)
		if !eo.fullscreen {
			ebiten.SetWindowSize(eo.windowedW, eo.windowedH)
		}
		eo.bufferMutex.Unlock()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		eo.bufferMutex.Lock()
		eo.showStatusBar = !eo.showStatusBar
		eo.bufferMutex.Unlock()
	}
	eo.handleKeyboardInput()
	return nil
}

func (eo *EbitenOutput) SetKeyHandler(fn func(byte)) {
	eo.bufferMutex.Lock()
	eo.keyHandler = fn
	eo.bufferMutex.Unlock()
}

func (eo *EbitenOutput) SetPasteHandler(fn func(string)) {
	eo.bufferMutex.Lock()
	eo.pasteHandler = fn
	eo.bufferMutex.Unlock()
}

func (eo *EbitenOutput) emitByte(b byte) {
	eo.bufferMutex.RLock()
	handler := eo.keyHandler
	eo.bufferMutex.RUnlock()
	if handler != nil {
		handler(b)
	}
}

func (eo *EbitenOutput) handleKeyboardInput() {
	eo.bufferMutex.RLock()
	hasHandler := eo.keyHandler != nil
	eo.bufferMutex.RUnlock()
	if !hasHandler {
		return
	}

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight)
	shift := ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight)

	// Clipboard paste: Ctrl+Shift+V
	if ctrl && shift && inpututil.IsKeyJustPressed(ebiten.KeyV) {
		eo.handleClipboardPaste()
	}

	// Printable input path.
	for _, r := range ebiten.AppendInputChars(nil) {
		if b, ok := runeToInputByte(r); ok {
			eo.emitByte(b)
		}
	}

	specialKeys := []ebiten.Key{
		ebiten.KeyEnter,
		ebiten.KeyNumpadEnter,
		ebiten.KeyBackspace,
		ebiten.KeyEscape,
	}
	for _, key := range specialKeys {
		if inpututil.IsKeyJustPressed(key) {
			if b, ok := translateSpecialKey(key); ok {
				eo.emitByte(b)
			}
		}
	}
}

func runeToInputByte(r rune) (byte, bool) {
	if r <= 0 || r > 0xFF {
		return 0, false
	}
	return byte(r), true
}

func translateSpecialKey(key ebiten.Key) (byte, bool) {
	switch key {
	case ebiten.KeyEnter, ebiten.KeyNumpadEnter:
		return '\n', true
	case ebiten.KeyBackspace:
		return '\b', true
	case ebiten.KeyEscape:
		return 0x1B, true
	default:
		return 0, false
	}
}

func normalizePasteText(raw []byte) []byte {
	norm := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\r' {
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
			norm = append(norm, '\n')
			continue
		}
		norm = append(norm, raw[i])
	}
	return norm
}

func capPasteText(raw []byte, max int) []byte {
	if len(raw) <= max {
		return raw
	}
	return raw[:max]
}

func (eo *EbitenOutput) handleClipboardPaste() {
	eo.clipboardOnce.Do(func() {
		eo.clipboardOK = clipboard.Init() == nil
	})
	if !eo.clipboardOK {
		return
	}
	data := clipboard.Read(clipboard.FmtText)
	if len(data) == 0 {
		return
	}
	data = normalizePasteText(data)
	data = capPasteText(data, 4096)

	eo.bufferMutex.RLock()
	paste := eo.pasteHandler
	eo.bufferMutex.RUnlock()
	if paste != nil {
		paste(string(data))
	}
}

func (eo *EbitenOutput) Draw(screen *ebiten.Image) {
	if eo.window == nil {
		eo.window = ebiten.NewImage(eo.width, eo.height)
	}

	eo.bufferMutex.RLock()
	eo.window.WritePixels(eo.frameBuffer)
	showStatusBar := eo.showStatusBar
	status := eo.status
	eo.bufferMutex.RUnlock()
	screen.DrawImage(eo.window, nil)
	if showStatusBar {
		eo.drawSessionStatusBar(screen, status)
	}

	eo.frameCount++
	select {
	case eo.vsyncChan <- struct{}{}:
	default:
	}
}

func (eo *EbitenOutput) Layout(_, _ int) (int, int) {
	return eo.width, eo.height
}

type statusToken struct {
	name    string
	enabled bool
}

func drawStatusLine(screen *ebiten.Image, x, baselineY int, label string, tokens []statusToken) {
	face := basicfont.Face7x13
	labelColor := color.RGBA{190, 190, 190, 255}
	offColor := color.RGBA{120, 120, 120, 255}
	onColor := color.RGBA{0, 220, 90, 255}

	text.Draw(screen, label, face, x, baselineY, labelColor)
	cursorX := x + text.BoundString(face, label).Dx() + 6

	for _, token := range tokens {
		c := offColor
		if token.enabled {
			c = onColor
		}
		text.Draw(screen, token.name, face, cursorX, baselineY, c)
		cursorX += text.BoundString(face, token.name).Dx() + 8
	}
}

func (eo *EbitenOutput) drawSessionStatusBar(screen *ebiten.Image, s StatusSnapshot) {
	if statusBarHeight >= eo.height {
		return
	}
	y := eo.height - statusBarHeight
	ebitenutil.DrawRect(screen, 0, float64(y), float64(eo.width), float64(statusBarHeight), color.RGBA{0, 0, 0, 180})

	source := s.Source
	if source == "" {
		source = "no source"
	}
	drawStatusLine(screen, 6, y+13, "SRC  ", []statusToken{
		{name: source, enabled: s.Stage != StageEmpty},
		{name: "|", enabled: false},
		{name: "PLAY", enabled: s.Playing},
		{name: "|", enabled: false},
		{name: "ORIG", enabled: s.Compare},
	})

	message := s.Message
	if message == "" {
		message = s.Stage.String()
	}
	drawStatusLine(screen, 6, y+26, "STAGE", []statusToken{
		{name: fmt.Sprintf("%s %d%%", message, s.Percent), enabled: s.Stage == StageRunning || s.Stage == StageReady},
	})

	// Thin progress strip along the bar's top edge.
	if s.Percent > 0 {
		w := float64(eo.width) * float64(min(s.Percent, 100)) / 100.0
		ebitenutil.DrawRect(screen, 0, float64(y), w, 2, color.RGBA{0, 220, 90, 255})
	}

	legendColor := color.RGBA{160, 160, 160, 255}
	legend := "P Process  C Compare  R Reset  S Still  Space Pause  F11 Fullscreen  F12 Bar"
	legendW := text.BoundString(basicfont.Face7x13, legend).Dx()
	legendX := max(eo.width-legendW-6, 6)
	legendOpts := &ebiten.DrawImageOptions{}
	legendOpts.GeoM.Translate(float64(legendX), float64(y+26))
	legendOpts.ColorScale.ScaleWithColor(legendColor)
	text.DrawWithOptions(screen, legend, basicfont.Face7x13, legendOpts)
}
