// export.go - Result download naming and still-frame capture

package main

import (
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const exportTimeFormat = "20060102-150405"

// ExportFilename builds the download name for a cleaned result:
// clean_<base>_<timestamp><ext>. Extension-less sources default to .mp4.
func ExportFilename(sourceName string, now time.Time) string {
	ext := filepath.Ext(sourceName)
	base := strings.TrimSuffix(filepath.Base(sourceName), ext)
	if base == "" || base == "." {
		base = "video"
	}
	if ext == "" {
		ext = ".mp4"
	}
	return "clean_" + base + "_" + now.Format(exportTimeFormat) + ext
}

// SnapshotFilename names a captured still.
func SnapshotFilename(now time.Time) string {
	return "frame_" + now.Format(exportTimeFormat) + ".png"
}

// ExportResult copies a transient result into destDir under the handle's
// staged download name and returns the written path. URL results have
// nothing local to copy; callers hand the URL itself to the user instead.
func ExportResult(h *MediaHandle, destDir string, now time.Time) (string, error) {
	if h == nil || h.Released() {
		return "", &EngineError{Operation: "export", Details: "no transient result to export"}
	}
	src, err := os.Open(h.Path)
	if err != nil {
		return "", &EngineError{Operation: "export", Details: h.Path, Err: err}
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", &EngineError{Operation: "export", Details: destDir, Err: err}
	}
	name := h.Name
	if name == "" {
		name = ExportFilename("", now)
	}
	outPath := filepath.Join(destDir, name)
	dst, err := os.Create(outPath)
	if err != nil {
		return "", &EngineError{Operation: "export", Details: outPath, Err: err}
	}
	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(outPath)
		return "", &EngineError{Operation: "export", Details: "copy to " + outPath, Err: err}
	}
	if err := dst.Close(); err != nil {
		return "", &EngineError{Operation: "export", Details: "close " + outPath, Err: err}
	}
	log.Info().Str("path", outPath).Msg("result exported")
	return outPath, nil
}

// WriteSnapshotPNG encodes a frame snapshot losslessly.
func WriteSnapshotPNG(snap FrameSnapshot, path string) error {
	if snap.Width < 1 || snap.Height < 1 || len(snap.Buffer) < snap.Width*snap.Height*4 {
		return &EngineError{Operation: "snapshot", Details: "empty or undersized frame"}
	}
	img := &image.RGBA{
		Pix:    snap.Buffer,
		Stride: snap.Width * 4,
		Rect:   image.Rect(0, 0, snap.Width, snap.Height),
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &EngineError{Operation: "snapshot", Details: dir, Err: err}
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return &EngineError{Operation: "snapshot", Details: path, Err: err}
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return &EngineError{Operation: "snapshot", Details: "encode " + path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &EngineError{Operation: "snapshot", Details: "close " + path, Err: err}
	}
	log.Info().Str("path", path).Int("w", snap.Width).Int("h", snap.Height).Msg("still captured")
	return nil
}
