//go:build headless

// notify_chime_headless.go - Silent chime for headless builds

package main

type ChimeNotifier struct{}

func NewChimeNotifier() *ChimeNotifier {
	return &ChimeNotifier{}
}

func (c *ChimeNotifier) Play() {}
