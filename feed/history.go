package feed

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

const historySize = 64

// Sample is an authoritative state plus the time it arrived.
type Sample struct {
	State      AgentState
	ReceivedAt time.Time
}

// History is a ring buffer of recent samples for one agent, keyed by
// snapshot sequence.
type History struct {
	samples [historySize]Sample
	nextSeq uint32
	filled  bool
}

// Store saves a sample under its state sequence number.
func (h *History) Store(s Sample) {
	idx := s.State.Seq % historySize
	h.samples[idx] = s
	h.nextSeq = s.State.Seq + 1
	h.filled = true
}

// Get retrieves a sample by sequence. Returns false if not found or if the
// slot has been overwritten.
func (h *History) Get(seq uint32) (Sample, bool) {
	if !h.filled {
		return Sample{}, false
	}
	s := h.samples[seq%historySize]
	if s.State.Seq != seq || s.ReceivedAt.IsZero() {
		return Sample{}, false
	}
	return s, true
}

// Latest returns the most recent sample.
func (h *History) Latest() (Sample, bool) {
	if !h.filled {
		return Sample{}, false
	}
	return h.Get(h.nextSeq - 1)
}

// EstimateVelocity differentiates the two most recent samples. Used when a
// snapshot arrives without velocity.
func (h *History) EstimateVelocity() (mgl64.Vec2, bool) {
	latest, ok := h.Latest()
	if !ok {
		return mgl64.Vec2{}, false
	}
	for seq := latest.State.Seq; seq > 0; seq-- {
		prev, ok := h.Get(seq - 1)
		if !ok {
			break
		}
		dt := latest.ReceivedAt.Sub(prev.ReceivedAt).Seconds()
		if dt <= 0 {
			continue
		}
		return latest.State.Position.Sub(prev.State.Position).Mul(1 / dt), true
	}
	return mgl64.Vec2{}, false
}
