// Package anim drives the pie reveal progress over wall-clock time.
package anim

import (
	"context"
	"sync"
	"time"

	"github.com/huangsam/spendchart/schema"
)

// DefaultDuration is the reveal duration used when none is configured.
const DefaultDuration = 1000 * time.Millisecond

// DefaultFrameInterval is the tick period of the driver (about 60 frames per second).
const DefaultFrameInterval = 16 * time.Millisecond

// Reveal holds the progress fraction in [0, 1] that the pie planner draws up to.
// It is safe for concurrent use.
type Reveal struct {
	mu       sync.RWMutex
	progress float64
}

// NewReveal returns a reveal state at the given progress.
func NewReveal(progress float64) *Reveal {
	r := &Reveal{}
	r.Set(progress)
	return r
}

// Progress returns the current progress fraction.
func (r *Reveal) Progress() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.progress
}

// Set stores progress clamped to [0, 1].
func (r *Reveal) Set(progress float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = min(max(progress, 0), 1)
}

// Ticker delivers frame ticks.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// Clock is the time source of a driver.
type Clock interface {
	Now() time.Time
	NewTicker(d time.Duration) Ticker
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) NewTicker(d time.Duration) Ticker { return realTicker{time.NewTicker(d)} }

type realTicker struct{ t *time.Ticker }

func (r realTicker) C() <-chan time.Time { return r.t.C }

func (r realTicker) Stop() { r.t.Stop() }

// Driver animates a Reveal linearly between two angles. Starting a new
// animation cancels the one in flight; a cancelled run never writes again.
type Driver struct {
	mu       sync.Mutex
	reveal   *Reveal
	clock    Clock
	interval time.Duration
	onFrame  func(progress float64)
	cancel   context.CancelFunc
	gen      uint64
}

// Option configures a Driver.
type Option func(*Driver)

// WithClock replaces the wall clock, mainly for tests.
func WithClock(c Clock) Option {
	return func(d *Driver) { d.clock = c }
}

// WithFrameInterval sets the tick period.
func WithFrameInterval(interval time.Duration) Option {
	return func(d *Driver) {
		if interval > 0 {
			d.interval = interval
		}
	}
}

// WithOnFrame registers a callback run after every progress update, typically
// a redraw request. It runs under the driver lock and must not call Start or Stop.
func WithOnFrame(fn func(progress float64)) Option {
	return func(d *Driver) { d.onFrame = fn }
}

// NewDriver returns a driver writing to reveal.
func NewDriver(reveal *Reveal, opts ...Option) *Driver {
	d := &Driver{reveal: reveal, clock: realClock{}, interval: DefaultFrameInterval}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Reveal returns the state this driver writes to.
func (d *Driver) Reveal() *Reveal {
	return d.reveal
}

// Start animates progress from from/360 to to/360 over duration, superseding
// any running animation. The returned channel is closed when this run ends,
// either at the endpoint or on cancellation. A non-positive duration jumps
// straight to the endpoint.
func (d *Driver) Start(ctx context.Context, from, to float64, duration time.Duration) <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		d.cancel()
	}
	d.gen++
	gen := d.gen
	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel

	done := make(chan struct{})
	start, end := from/schema.FullRotation, to/schema.FullRotation

	if duration <= 0 {
		d.writeLocked(end)
		cancel()
		close(done)
		return done
	}
	d.writeLocked(start)

	began := d.clock.Now()
	ticker := d.clock.NewTicker(d.interval)

	go func() {
		defer close(done)
		defer ticker.Stop()
		defer cancel()
		for {
			select {
			case <-runCtx.Done():
				return
			case now := <-ticker.C():
				frac := float64(now.Sub(began)) / float64(duration)
				if frac >= 1 {
					d.write(gen, end)
					return
				}
				if !d.write(gen, start+(end-start)*max(frac, 0)) {
					return
				}
			}
		}
	}()
	return done
}

// Stop cancels the running animation, leaving progress where it is.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.gen++
}

// write stores progress only if gen is still the current run.
func (d *Driver) write(gen uint64, progress float64) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		return false
	}
	d.writeLocked(progress)
	return true
}

func (d *Driver) writeLocked(progress float64) {
	d.reveal.Set(progress)
	if d.onFrame != nil {
		d.onFrame(d.reveal.Progress())
	}
}
