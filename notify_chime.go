//go:build !headless

// notify_chime.go - Completion chime through OTO v3

package main

import (
	"bytes"
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

const chimeSampleRate = 44100

// ChimeNotifier plays a short two-note blip when a processing run
// finishes. The audio context is created on first use and kept for the
// process lifetime; one context per process is an OTO constraint.
type ChimeNotifier struct {
	once sync.Once
	ctx  *oto.Context
	ok   bool
	pcm  []byte
}

func NewChimeNotifier() *ChimeNotifier {
	return &ChimeNotifier{}
}

func (c *ChimeNotifier) init() {
	op := &oto.NewContextOptions{
		SampleRate:   chimeSampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   4,
	}
	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return
	}
	<-ready
	c.ctx = ctx
	c.pcm = renderChime(chimeSampleRate)
	c.ok = true
}

// Play fires the chime asynchronously. Audio device failures are
// swallowed; a missing sound card never blocks the session.
func (c *ChimeNotifier) Play() {
	c.once.Do(c.init)
	if !c.ok {
		return
	}
	player := c.ctx.NewPlayer(bytes.NewReader(c.pcm))
	player.Play()
	go func() {
		for player.IsPlaying() {
			time.Sleep(10 * time.Millisecond)
		}
		player.Close()
	}()
}

// renderChime synthesizes the blip: A5 into D6 with an exponential decay
// on each note, mono float32 little-endian.
func renderChime(sampleRate int) []byte {
	notes := []struct {
		freq float64
		dur  time.Duration
	}{
		{880.0, 120 * time.Millisecond},
		{1174.66, 180 * time.Millisecond},
	}

	var samples []float32
	for _, note := range notes {
		n := int(float64(sampleRate) * note.dur.Seconds())
		for i := 0; i < n; i++ {
			t := float64(i) / float64(sampleRate)
			env := math.Exp(-6.0 * float64(i) / float64(n))
			samples = append(samples, float32(0.25*env*math.Sin(2*math.Pi*note.freq*t)))
		}
	}

	buf := make([]byte, len(samples)*4)
	for i, s := range samples {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(s))
	}
	return buf
}
