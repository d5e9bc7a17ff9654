package gvigil

import (
	"fmt"
	"log/slog"
)

// AlarmLevel indicates how suspicious the vigil currently is
// that the monitored code has stopped making progress.
//
// The levels form an ordered ladder.
// The watcher advances one rung per tick without a heartbeat,
// and any heartbeat resets the level to [Live] from any rung,
// including [Stalled].
type AlarmLevel int32

const (
	// Uninitialized is the level before the first heartbeat.
	// No callback fires while Uninitialized,
	// so a Vigil may be created ahead of the worker it monitors
	// without causing spurious callbacks or alarming logs.
	Uninitialized AlarmLevel = iota

	// Live means a heartbeat arrived since the previous tick.
	Live

	// Tested means one tick elapsed without a heartbeat.
	Tested

	// AtRisk means two consecutive ticks elapsed without a heartbeat.
	AtRisk

	// Stalled means three or more consecutive ticks elapsed without a heartbeat.
	// The level does not advance past Stalled,
	// but the stall callback fires again on every further tick.
	Stalled
)

func (l AlarmLevel) String() string {
	switch l {
	case Uninitialized:
		return "Uninitialized"
	case Live:
		return "Live"
	case Tested:
		return "Tested"
	case AtRisk:
		return "AtRisk"
	case Stalled:
		return "Stalled"
	default:
		return fmt.Sprintf("AlarmLevel(%d)", int32(l))
	}
}

// LogValue ensures the level serializes as its name in log output,
// not as a bare integer.
func (l AlarmLevel) LogValue() slog.Value {
	return slog.StringValue(l.String())
}

// inLadder reports whether l is one of the defined levels.
// Any other value is treated as corruption and self-heals to Uninitialized.
func (l AlarmLevel) inLadder() bool {
	return l >= Uninitialized && l <= Stalled
}
