package gvigil

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// watch runs in its own goroutine for the life of the vigil,
// one iteration per tick.
func watch(
	ctx context.Context,
	log *slog.Logger,
	shared *vigilShared,
	cfg Config,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for {
		if shared.terminated.Load() {
			log.Info("Vigil is terminating")
			return
		}

		tick(log, shared, cfg)

		// Read the interval freshly each tick
		// so a mid-flight SetInterval applies to the very next sleep.
		timer := time.NewTimer(shared.loadInterval())

		select {
		case <-ctx.Done():
			timer.Stop()
			log.Info("Stopping due to context cancellation", "cause", context.Cause(ctx))
			return
		case <-timer.C:
			// Next tick.
		}
	}
}

// tick applies one step of the escalation state machine
// and invokes the callback for the observed level, if any.
func tick(log *slog.Logger, shared *vigilShared, cfg Config) {
	switch level := shared.loadLevel(); level {
	case Uninitialized:
		log.Info("Liveness not initialized; waiting for first heartbeat")
	case Live:
		log.Info("Software is live; re-testing")
		shared.storeLevel(Tested)
	case Tested:
		log.Warn("Software missed a liveness test; temporary glitch or slowdown?")
		escalated := shared.advanceLevel(Tested, AtRisk)
		if escalated || !cfg.SuppressRescuedCallbacks {
			invoke(log, "missed", cfg.Callbacks.OnMissed)
		}
	case AtRisk:
		log.Error("Software missed multiple liveness tests; stall suspected")
		escalated := shared.advanceLevel(AtRisk, Stalled)
		if escalated || !cfg.SuppressRescuedCallbacks {
			invoke(log, "at_risk", cfg.Callbacks.OnAtRisk)
		}
	case Stalled:
		log.Error("Software is still unresponsive; likely stalled")
		invoke(log, "stalled", cfg.Callbacks.OnStalled)
	default:
		// Never expected in normal operation;
		// an out-of-range level self-heals rather than poisoning the watcher.
		log.Warn("Alarm level had unexpected value; resetting", "value", int32(level))
		shared.storeLevel(Uninitialized)
	}
}
