package controller

import (
	"fmt"

	cfg "github.com/automoto/pedsync/config"
	"github.com/automoto/pedsync/feed"
	"github.com/go-gl/mathgl/mgl64"
)

// callTrace records collaborator calls in order across fakes.
type callTrace []string

func (t *callTrace) add(name string) {
	if t != nil {
		*t = append(*t, name)
	}
}

type fakeFeed struct {
	occupied bool
	position mgl64.Vec2
	out      feed.ControlOutput
	err      error
	requests []feed.ControlRequest

	// occErr and posErr fail a single call while the others succeed.
	occErr error
	posErr error
	trace  *callTrace
}

func (f *fakeFeed) Occupied(id feed.AgentID) (bool, error) {
	f.trace.add("Occupied")
	if f.err != nil {
		return false, fmt.Errorf("occupancy %s: %w", id, f.err)
	}
	if f.occErr != nil {
		return false, f.occErr
	}
	return f.occupied, nil
}

func (f *fakeFeed) AuthoritativePosition(id feed.AgentID) (mgl64.Vec2, error) {
	f.trace.add("AuthoritativePosition")
	if f.err != nil {
		return mgl64.Vec2{}, f.err
	}
	if f.posErr != nil {
		return mgl64.Vec2{}, f.posErr
	}
	return f.position, nil
}

func (f *fakeFeed) ComputeControl(req feed.ControlRequest) (feed.ControlOutput, error) {
	f.trace.add("ComputeControl")
	f.requests = append(f.requests, req)
	if f.err != nil {
		return feed.ControlOutput{LookAhead: req.LookAhead}, f.err
	}
	return f.out, nil
}

// fakeBody moves exactly as asked and rests on the plane y = 0.
type fakeBody struct {
	pos       mgl64.Vec3
	yaw       float64
	setYaws   int
	moves     []mgl64.Vec3
	teleports []mgl64.Vec3
	trace     *callTrace
}

func (b *fakeBody) Position() mgl64.Vec3 { return b.pos }
func (b *fakeBody) Yaw() float64         { return b.yaw }

func (b *fakeBody) SetYaw(deg float64) {
	b.yaw = deg
	b.setYaws++
}

func (b *fakeBody) Move(d mgl64.Vec3) {
	b.trace.add("Move")
	b.moves = append(b.moves, d)
	b.pos = b.pos.Add(d)
	if b.pos.Y() < 0 {
		b.pos[1] = 0
	}
}

func (b *fakeBody) Teleport(p mgl64.Vec3) {
	b.teleports = append(b.teleports, p)
	b.pos = p
}

type fakeSpace struct {
	grounded bool
	centers  []mgl64.Vec3
	masks    [][]string
	trace    *callTrace
}

func (s *fakeSpace) CheckGroundOverlap(center mgl64.Vec3, _ float64, mask ...string) bool {
	s.trace.add("CheckGroundOverlap")
	s.centers = append(s.centers, center)
	s.masks = append(s.masks, mask)
	return s.grounded
}

type recordingAnim struct {
	floats map[string]float64
	bools  map[string]bool
}

func newRecordingAnim() *recordingAnim {
	return &recordingAnim{floats: map[string]float64{}, bools: map[string]bool{}}
}

func (a *recordingAnim) SetFloat(name string, v float64) { a.floats[name] = v }
func (a *recordingAnim) SetBool(name string, v bool)     { a.bools[name] = v }

type countingAudio struct {
	footsteps int
	lands     int
}

func (a *countingAudio) Footstep(float64) { a.footsteps++ }
func (a *countingAudio) Land(float64)     { a.lands++ }

type harness struct {
	ctl   *Controller
	feed  *fakeFeed
	body  *fakeBody
	space *fakeSpace
	anim  *recordingAnim
	audio *countingAudio
	logs  []string
}

func newHarness(mutate func(*cfg.ControllerConfig)) *harness {
	c := cfg.Controller
	if mutate != nil {
		mutate(&c)
	}
	h := &harness{
		feed:  &fakeFeed{},
		body:  &fakeBody{},
		space: &fakeSpace{grounded: true},
		anim:  newRecordingAnim(),
		audio: &countingAudio{},
	}
	ctl, err := New(c, cfg.Physics, Deps{
		ID:        "agentA",
		Feed:      h.feed,
		Space:     h.space,
		Body:      h.body,
		Animation: h.anim,
		Audio:     h.audio,
		Logf: func(format string, args ...any) {
			h.logs = append(h.logs, fmt.Sprintf(format, args...))
		},
	})
	if err != nil {
		panic(err)
	}
	h.ctl = ctl
	ctl.Init()
	return h
}
