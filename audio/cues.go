// Package audio turns locomotion cues into sound. Playback is headless: the
// cue mix is rendered tick by tick and can be recorded to a WAV file.
package audio

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

const (
	DefaultSampleRate = beep.SampleRate(44100)

	footstepDuration = 90 * time.Millisecond
	landDuration     = 220 * time.Millisecond
	landFrequency    = 70.0
)

// Cues mixes footstep and landing sounds. One Cues is shared by every
// pedestrian of a runtime.
type Cues struct {
	mu     sync.Mutex
	format beep.Format
	mixer  *beep.Mixer
	buffer *beep.Buffer // nil unless recording
	seed   int64

	footsteps int
	lands     int
}

func NewCues(rate beep.SampleRate) *Cues {
	return &Cues{
		format: beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2},
		mixer:  &beep.Mixer{},
	}
}

// Footstep plays a footstep at volume in [0, 1].
func (c *Cues) Footstep(volume float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seed++
	c.mixer.Add(withVolume(newScuff(c.format.SampleRate, footstepDuration, c.seed), volume))
	c.footsteps++
}

// Land plays a landing thump at volume in [0, 1].
func (c *Cues) Land(volume float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.mixer.Add(withVolume(newThump(c.format.SampleRate, landFrequency, landDuration), volume))
	c.lands++
}

// Record starts capturing everything rendered from now on.
func (c *Cues) Record() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.buffer == nil {
		c.buffer = beep.NewBuffer(c.format)
	}
}

// Advance renders dt seconds of the mix, dropping it unless recording.
func (c *Cues) Advance(dt time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := c.format.SampleRate.N(dt)
	if n <= 0 {
		return
	}
	if c.buffer != nil {
		c.buffer.Append(beep.Take(n, c.mixer))
		return
	}
	scratch := make([][2]float64, n)
	c.mixer.Stream(scratch)
}

// Playing returns the number of cues still sounding.
func (c *Cues) Playing() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mixer.Len()
}

// Counts returns how many footsteps and landings were triggered.
func (c *Cues) Counts() (footsteps, lands int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.footsteps, c.lands
}

// Recorded returns the length of the recording.
func (c *Cues) Recorded() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.buffer == nil {
		return 0
	}
	return c.format.SampleRate.D(c.buffer.Len())
}

// WriteWAV encodes the recording.
func (c *Cues) WriteWAV(w io.WriteSeeker) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.buffer == nil {
		return fmt.Errorf("audio: not recording")
	}
	if err := wav.Encode(w, c.buffer.Streamer(0, c.buffer.Len()), c.format); err != nil {
		return fmt.Errorf("encode wav: %w", err)
	}
	return nil
}
