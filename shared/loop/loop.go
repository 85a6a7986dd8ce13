// Package loop runs a fixed-rate tick on a time.Ticker. The pedestrian
// runtime and the feed simulator both drive their ECS worlds with it.
package loop

import (
	"log"
	"sync"
	"time"
)

type Loop struct {
	name     string
	tickRate int
	tick     func(dt float64)

	running  bool
	mu       sync.Mutex
	stopChan chan struct{}
	stopOnce sync.Once
	ticks    uint64
}

// New creates a loop calling tick tickRate times per second with the fixed
// step 1/tickRate.
func New(name string, tickRate int, tick func(dt float64)) *Loop {
	if tickRate <= 0 {
		tickRate = 1
	}
	return &Loop{
		name:     name,
		tickRate: tickRate,
		tick:     tick,
		stopChan: make(chan struct{}),
	}
}

// Run blocks until Stop is called.
func (l *Loop) Run() {
	l.setRunning(true)
	ticker := time.NewTicker(time.Second / time.Duration(l.tickRate))
	defer ticker.Stop()

	log.Printf("[%s] loop started at %d ticks/second", l.name, l.tickRate)

	dt := l.Step()
	for {
		select {
		case <-l.stopChan:
			l.setRunning(false)
			log.Printf("[%s] loop stopped after %d ticks", l.name, l.Ticks())
			return
		case <-ticker.C:
			l.tick(dt)
			l.mu.Lock()
			l.ticks++
			l.mu.Unlock()
		}
	}
}

// Stop ends Run. Safe to call more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopChan) })
}

// Step is the fixed tick duration in seconds.
func (l *Loop) Step() float64 {
	return 1 / float64(l.tickRate)
}

func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.running
}

func (l *Loop) Ticks() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.ticks
}

func (l *Loop) setRunning(v bool) {
	l.mu.Lock()
	l.running = v
	l.mu.Unlock()
}
