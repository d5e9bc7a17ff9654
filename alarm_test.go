package gvigil_test

import (
	"testing"

	"github.com/gordian-engine/gvigil"
	"github.com/stretchr/testify/require"
)

func TestAlarmLevel_String(t *testing.T) {
	t.Parallel()

	require.Equal(t, "Uninitialized", gvigil.Uninitialized.String())
	require.Equal(t, "Live", gvigil.Live.String())
	require.Equal(t, "Tested", gvigil.Tested.String())
	require.Equal(t, "AtRisk", gvigil.AtRisk.String())
	require.Equal(t, "Stalled", gvigil.Stalled.String())

	// Out-of-range values still format without panicking.
	require.Equal(t, "AlarmLevel(99)", gvigil.AlarmLevel(99).String())
}

func TestAlarmLevel_ordering(t *testing.T) {
	t.Parallel()

	// The escalation ladder relies on the declaration order of the levels.
	require.Less(t, gvigil.Uninitialized, gvigil.Live)
	require.Less(t, gvigil.Live, gvigil.Tested)
	require.Less(t, gvigil.Tested, gvigil.AtRisk)
	require.Less(t, gvigil.AtRisk, gvigil.Stalled)
}
