package gvigil

import (
	"sync/atomic"
	"time"
)

// vigilShared is the state shared between the Vigil handle
// and its watcher goroutine.
// Each field is independently atomic; there is no lock
// and no cross-field ordering guarantee.
// None is needed: the vigil's purpose is approximate liveness signaling,
// and the races it tolerates are benign.
type vigilShared struct {
	// Current rung on the escalation ladder.
	// The handle stores Live on every heartbeat;
	// the watcher advances the ladder with Store and CompareAndSwap.
	level atomic.Int32

	// Expected maximum gap between heartbeats, in nanoseconds.
	// Written only by the handle, read freshly on every tick.
	interval atomic.Int64

	// Set exactly once, by Close.
	// The watcher checks it at the top of every iteration,
	// so teardown latency is bounded by one interval.
	terminated atomic.Bool
}

func (s *vigilShared) loadLevel() AlarmLevel {
	return AlarmLevel(s.level.Load())
}

func (s *vigilShared) storeLevel(l AlarmLevel) {
	s.level.Store(int32(l))
}

// advanceLevel attempts the opportunistic from->to escalation.
// It reports false if a concurrent heartbeat already rescued the level,
// in which case the level is correctly left at Live.
func (s *vigilShared) advanceLevel(from, to AlarmLevel) bool {
	return s.level.CompareAndSwap(int32(from), int32(to))
}

func (s *vigilShared) loadInterval() time.Duration {
	return time.Duration(s.interval.Load())
}

func (s *vigilShared) storeInterval(d time.Duration) {
	s.interval.Store(int64(d))
}
