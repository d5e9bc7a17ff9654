// Package gvigil provides a Vigil type that watches over actively-running code
// and ensures it is still making progress.
// The code under the vigil notifies it at regular intervals;
// if enough intervals pass without a notification,
// the vigil escalates through a ladder of alarm levels
// and invokes the callbacks registered for each escalation point,
// which may attempt to produce diagnostics or abort the stalled work.
// If the code under the vigil knows it will be unable to notify
// for a longer than usual period, it can pre-declare this
// by extending the check interval with [*Vigil.SetInterval].
package gvigil
