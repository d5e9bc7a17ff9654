package gvigil

import "log/slog"

// Callback is a user-supplied side effect invoked at one escalation point.
//
// Callbacks run synchronously on the watcher goroutine, one at a time.
// A slow callback delays every subsequent tick and defeats the vigil's
// timeliness, so callbacks must return promptly;
// anything long-running belongs on a goroutine the callback starts.
type Callback func()

// CallbackSet holds the three optional escalation callbacks.
// A nil slot means no callback at that point.
// The set is supplied once through [Config] and never changes
// for the life of the vigil.
type CallbackSet struct {
	// OnMissed fires when one tick elapses without a heartbeat.
	OnMissed Callback

	// OnAtRisk fires when a second consecutive tick elapses without a heartbeat.
	OnAtRisk Callback

	// OnStalled fires on the third tick without a heartbeat,
	// and again on every further tick until a heartbeat arrives.
	OnStalled Callback
}

// invoke runs cb inside a recover boundary.
// A panicking callback must not kill the watcher;
// a dead watcher would leave the vigil permanently inert.
func invoke(log *slog.Logger, point string, cb Callback) {
	if cb == nil {
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Error("Recovered from panicking callback", "point", point, "panic", r)
		}
	}()

	cb()
}
