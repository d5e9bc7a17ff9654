package gvigil

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Config configures a new Vigil.
type Config struct {
	// Interval is the expected maximum gap between heartbeats.
	// Each watcher tick is spaced by the current interval,
	// so escalation by one rung takes one interval without a heartbeat.
	Interval time.Duration

	// Callbacks to invoke at each escalation point.
	// Every slot is optional.
	Callbacks CallbackSet

	// SuppressRescuedCallbacks controls a narrow race at the tick boundary.
	// If a heartbeat arrives at the exact instant the watcher decides to
	// escalate, the escalation itself is correctly abandoned, but by default
	// the callback for that tick still fires once.
	// Setting SuppressRescuedCallbacks skips the callback in that case.
	SuppressRescuedCallbacks bool
}

func (c Config) validate() error {
	var err error
	if c.Interval <= 0 {
		err = errors.Join(err, errors.New("Config.Interval must be positive"))
	}

	return err
}

// Vigil is the handle given to monitored code.
// It reports heartbeats and interval changes into state
// shared with a single background watcher goroutine;
// the watcher escalates the alarm level when heartbeats stop arriving.
type Vigil struct {
	log *slog.Logger

	shared *vigilShared

	// The watcher is a single goroutine,
	// but a WaitGroup gives callers an obvious Wait.
	wg sync.WaitGroup
}

// New returns a Vigil whose watcher goroutine is already running.
//
// The watcher begins in the [Uninitialized] level,
// so no callback can fire before the first call to [*Vigil.Notify];
// the vigil may safely be created ahead of the worker it monitors.
//
// The watcher stops when ctx is canceled or when [*Vigil.Close] is called.
// Close never blocks; callers that need deterministic shutdown
// must separately call [*Vigil.Wait].
func New(ctx context.Context, log *slog.Logger, cfg Config) (*Vigil, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("gvigil.New: invalid config: %w", err)
	}

	v := &Vigil{
		log:    log,
		shared: new(vigilShared),
	}
	v.shared.storeLevel(Uninitialized)
	v.shared.storeInterval(cfg.Interval)

	v.wg.Add(1)
	go watch(ctx, log, v.shared, cfg, &v.wg)

	return v, nil
}

// Notify indicates that the monitored code is still active and alive,
// resetting the alarm level to [Live] from any level, including [Stalled].
// It never blocks.
//
// Notify must be called from the same goroutine that performs the
// monitored work, never from a dedicated keepalive goroutine:
// a keepalive goroutine keeps notifying while the real work is deadlocked,
// which masks exactly the stalls the vigil exists to catch.
// That obligation is on the caller; the API cannot enforce it.
func (v *Vigil) Notify() {
	v.shared.storeLevel(Live)
}

// SetInterval changes the expected gap between heartbeats,
// then behaves as [*Vigil.Notify].
// It is intended for a worker that is about to block on a known
// long-running operation (a blocking request, a large computation)
// and cannot notify in the meantime.
// The caller must restore a shorter interval once the operation completes,
// or the vigil stays insensitive for the rest of its life.
//
// The new interval takes effect on the watcher's next sleep;
// it does not shorten or extend a sleep already in progress.
//
// SetInterval panics if d is not positive.
func (v *Vigil) SetInterval(d time.Duration) {
	if d <= 0 {
		panic(fmt.Errorf("(*Vigil).SetInterval: interval must be positive (got %s)", d))
	}

	v.shared.storeInterval(d)
	v.Notify()
}

// Level reports the alarm level at the time of the call.
// A corrupted out-of-range value reads as [Uninitialized].
//
// Level is an observer for embedding applications and tests;
// the vigil's primary outputs remain the escalation callbacks.
func (v *Vigil) Level() AlarmLevel {
	l := v.shared.loadLevel()
	if !l.inLadder() {
		return Uninitialized
	}
	return l
}

// Close requests that the watcher goroutine stop.
//
// Close never blocks and never waits for the watcher:
// the watcher observes termination at the top of its next tick,
// so it exits within one interval of the call.
// Callers that require the watcher to be fully stopped
// must call [*Vigil.Wait] after Close.
// Forgetting Wait does not leak anything beyond the watcher goroutine
// for at most one further interval.
//
// Close is safe to call more than once.
func (v *Vigil) Close() {
	v.shared.terminated.Store(true)
}

// Wait blocks until the watcher goroutine has exited,
// whether due to [*Vigil.Close] or cancellation of the context
// passed to [New].
func (v *Vigil) Wait() {
	v.wg.Wait()
}
