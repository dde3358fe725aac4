// app_controller.go - Key routing and session/playback wiring

package main

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// AppController connects the session engine, the frame loop and the
// display backend. All control keys land here, from the GUI and the
// terminal host alike.
type AppController struct {
	engine *SessionEngine
	loop   *FrameLoop
	output VideoOutput
	cfg    AppConfig

	source MediaSource

	entryMode byte // 0 idle, 'u' url entry, 'o' file entry
	entryBuf  []byte
}

func NewAppController(engine *SessionEngine, loop *FrameLoop, output VideoOutput, source MediaSource, cfg AppConfig) *AppController {
	ac := &AppController{
		engine: engine,
		loop:   loop,
		output: output,
		cfg:    cfg,
		source: source,
	}
	engine.SetOnChange(ac.onSessionChange)
	output.SetKeyHandler(ac.HandleKey)
	output.SetPasteHandler(ac.HandlePaste)
	return ac
}

// onSessionChange pushes the new session into the status bar and keeps
// the loop's comparison flag in step with the record.
func (ac *AppController) onSessionChange(s Session) {
	ac.loop.SetCompare(s.Compare)
	ac.pushStatus(s)
}

func (ac *AppController) pushStatus(s Session) {
	ac.output.SetStatus(StatusSnapshot{
		Source:  s.SourceName,
		Stage:   s.Stage.Kind,
		Message: ac.statusMessage(s),
		Percent: s.Percent,
		Compare: s.Compare,
		Playing: ac.source != nil && ac.source.Playing(),
	})
}

func (ac *AppController) statusMessage(s Session) string {
	switch ac.entryMode {
	case 'u':
		return "URL> " + string(ac.entryBuf)
	case 'o':
		return "File> " + string(ac.entryBuf)
	}
	if s.LastErr != nil {
		return s.Message + ": " + s.LastErr.Error()
	}
	return s.Message
}

// HandleKey routes one input byte. Entry modes consume everything until
// newline or escape; outside them single letters are commands.
func (ac *AppController) HandleKey(b byte) {
	if ac.entryMode != 0 {
		ac.handleEntryByte(b)
		return
	}
	switch b {
	case KeyProcess, 'P':
		if err := ac.engine.Process(); err != nil {
			log.Warn().Err(err).Msg("process refused")
			ac.pushStatus(ac.engine.Current())
		}
	case KeyCompare, 'C':
		ac.engine.ToggleCompare()
	case KeyReset, 'R':
		ac.reset()
	case KeySnapshot, 'S':
		ac.saveSnapshot()
	case KeyPlayback:
		ac.togglePlayback()
	case 'd', 'D':
		ac.download()
	case 'u', 'U':
		ac.beginEntry('u')
	case 'o', 'O':
		ac.beginEntry('o')
	}
}

// HandlePaste treats clipboard text as a source selection: anything that
// parses as a link becomes a URL source, anything else a file path.
func (ac *AppController) HandlePaste(text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		return
	}
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		text = text[:i]
	}
	ac.selectSource(text)
}

func (ac *AppController) beginEntry(mode byte) {
	ac.entryMode = mode
	ac.entryBuf = ac.entryBuf[:0]
	ac.pushStatus(ac.engine.Current())
}

func (ac *AppController) handleEntryByte(b byte) {
	switch b {
	case '\n':
		line := strings.TrimSpace(string(ac.entryBuf))
		ac.entryMode = 0
		ac.entryBuf = ac.entryBuf[:0]
		if line != "" {
			ac.selectSource(line)
			return
		}
	case 0x1B:
		ac.entryMode = 0
		ac.entryBuf = ac.entryBuf[:0]
	case 0x08:
		if len(ac.entryBuf) > 0 {
			ac.entryBuf = ac.entryBuf[:len(ac.entryBuf)-1]
		}
	default:
		if b >= 0x20 && b < 0x7F && len(ac.entryBuf) < 2048 {
			ac.entryBuf = append(ac.entryBuf, b)
		}
	}
	ac.pushStatus(ac.engine.Current())
}

func looksLikeURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// selectSource applies a typed or pasted source string and swaps playback
// over to it.
func (ac *AppController) selectSource(text string) {
	var err error
	if looksLikeURL(text) {
		err = ac.engine.SelectURL(text)
	} else {
		err = ac.engine.SelectFile(text)
	}
	if err != nil {
		log.Warn().Err(err).Str("source", text).Msg("source rejected")
		ac.pushStatus(ac.engine.Current())
		return
	}
	ac.swapPlayback(text)
}

func (ac *AppController) swapPlayback(text string) {
	var (
		next MediaSource
		err  error
	)
	if looksLikeURL(text) {
		next, err = openPlaybackSource("", text)
	} else {
		next, err = openPlaybackSource(text, "")
	}
	if err != nil {
		log.Warn().Err(err).Msg("playback source unavailable, keeping current")
		return
	}
	old := ac.source
	ac.source = next
	ac.loop.SetSource(next)
	next.Play()
	if old != nil {
		old.Close()
	}
	ac.pushStatus(ac.engine.Current())
}

func (ac *AppController) togglePlayback() {
	if ac.source == nil {
		return
	}
	if ac.source.Playing() {
		ac.source.Pause()
	} else {
		ac.source.Play()
	}
	ac.pushStatus(ac.engine.Current())
}

func (ac *AppController) reset() {
	ac.engine.Reset()
	fallback := NewPatternSource(1280, 720)
	old := ac.source
	ac.source = fallback
	ac.loop.SetSource(fallback)
	if old != nil {
		old.Close()
	}
	ac.pushStatus(ac.engine.Current())
}

// saveSnapshot captures the current composited frame losslessly.
func (ac *AppController) saveSnapshot() {
	snap := ac.loop.CleanSnapshot()
	path := filepath.Join(ac.cfg.SnapshotDir, SnapshotFilename(time.Now()))
	if err := WriteSnapshotPNG(snap, path); err != nil {
		log.Error().Err(err).Msg("snapshot failed")
		return
	}
	log.Info().Str("path", path).Msg("snapshot saved")
}

// download copies the finished result next to the configured download
// directory, or reports the pass-through link for URL sessions.
func (ac *AppController) download() {
	s := ac.engine.Current()
	if s.Stage.Kind != StageReady {
		log.Warn().Msg("nothing to download yet")
		return
	}
	if s.ResultURL != "" {
		log.Info().Str("url", s.ResultURL).Msg("result available at source link")
		return
	}
	path, err := ExportResult(s.Result, ac.cfg.DownloadDir, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("download failed")
		return
	}
	log.Info().Str("path", path).Msg("result saved")
}

// Shutdown releases playback resources. Engine and store teardown happen
// in main.
func (ac *AppController) Shutdown() {
	if ac.source != nil {
		ac.source.Close()
	}
	_ = os.Stdout.Sync()
}
