package main

import (
	"log"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/knapsack-ga/parameter"
)

// chime plays short sine tones; a nil or uninitialized chime is silent
type chime struct {
	ready      bool
	sampleRate beep.SampleRate
}

// newChime opens the speaker. Failure is non-fatal: the view runs without sound
func newChime() *chime {
	sampleRate := beep.SampleRate(parameter.AudioSampleRate)
	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		log.Printf("Audio initialization failed: %v", err)
		return &chime{}
	}
	return &chime{ready: true, sampleRate: sampleRate}
}

func (c *chime) play(freq float64) {
	if c == nil || !c.ready {
		return
	}

	sine, err := generators.SineTone(c.sampleRate, freq)
	if err != nil {
		log.Printf("Tone generation failed: %v", err)
		return
	}
	speaker.Play(beep.Take(c.sampleRate.N(parameter.ChimeDuration), sine))
}

func (c *chime) close() {
	if c == nil || !c.ready {
		return
	}
	speaker.Close()
	c.ready = false
}
