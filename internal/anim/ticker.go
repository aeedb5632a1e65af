package anim

import (
	"sync"
	"time"
)

// DefaultPeriod is the tick interval of the bundled sprites, about 6 ticks per
// second.
const DefaultPeriod = 160 * time.Millisecond

// Ticker is a periodic clock with an idempotent Stop. The owner of the
// animating component stops it on teardown.
type Ticker struct {
	t    *time.Ticker
	once sync.Once
	done chan struct{}
}

// NewTicker starts a clock firing every period. Non-positive periods fall back
// to DefaultPeriod.
func NewTicker(period time.Duration) *Ticker {
	if period <= 0 {
		period = DefaultPeriod
	}
	return &Ticker{
		t:    time.NewTicker(period),
		done: make(chan struct{}),
	}
}

// C delivers ticks.
func (t *Ticker) C() <-chan time.Time {
	return t.t.C
}

// Done is closed once Stop has been called.
func (t *Ticker) Done() <-chan struct{} {
	return t.done
}

// Stop releases the clock. Calling it again does nothing.
func (t *Ticker) Stop() {
	t.once.Do(func() {
		t.t.Stop()
		close(t.done)
	})
}
