//go:build headless

// video_backend_ebiten_stub.go - Headless builds resolve the graphical backend off-screen

package main

func NewEbitenOutput() (VideoOutput, error) {
	return NewHeadlessOutput()
}
