package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// thump is a decaying sine whose pitch falls over its length.
type thump struct {
	rate     beep.SampleRate
	freq     float64
	phase    float64
	position int
	total    int
}

func newThump(rate beep.SampleRate, freq float64, d time.Duration) beep.Streamer {
	return &thump{rate: rate, freq: freq, total: rate.N(d)}
}

func (t *thump) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if t.position >= t.total {
			return i, i > 0
		}
		progress := float64(t.position) / float64(t.total)
		val := math.Sin(2*math.Pi*t.phase) * (1 - progress) * (1 - progress)

		samples[i][0] = val
		samples[i][1] = val

		t.phase += t.freq * (1 - 0.5*progress) / float64(t.rate)
		t.phase -= math.Floor(t.phase)
		t.position++
	}
	return len(samples), true
}

func (t *thump) Err() error { return nil }

// scuff is band-limited noise with a linear release, a shoe on pavement.
type scuff struct {
	rng      *rand.Rand
	prev     float64
	position int
	total    int
}

func newScuff(rate beep.SampleRate, d time.Duration, seed int64) beep.Streamer {
	return &scuff{rng: rand.New(rand.NewSource(seed)), total: rate.N(d)}
}

func (s *scuff) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.total {
			return i, i > 0
		}
		// one-pole low pass keeps it from hissing
		s.prev += 0.3 * (s.rng.Float64()*2 - 1 - s.prev)
		val := s.prev * (1 - float64(s.position)/float64(s.total))

		samples[i][0] = val
		samples[i][1] = val
		s.position++
	}
	return len(samples), true
}

func (s *scuff) Err() error { return nil }

// withVolume scales a streamer linearly. Zero or negative volume is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}
