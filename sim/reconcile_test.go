package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func threeWayTotal(returns []Parcel, above *Column, losses []Parcel) float64 {
	return TotalVolume(returns) + above.TotalVolume() + TotalVolume(losses)
}

func TestReconcile_MoreRealLoss_MovesReturnsToLosses(t *testing.T) {
	// GIVEN simulated returns of [Mud 3, Spacer 2] and no simulated losses
	returns := []Parcel{mud(3.0), spacer(2.0)}
	above := NewColumn(10.0, mud(0))
	var losses []Parcel
	before := threeWayTotal(returns, above, losses)

	// WHEN 4.0 m3 more loss than simulated is observed
	returns, losses = ReconcileStreams(returns, above, losses, 4.0)

	// THEN the three-way total is unchanged
	assert.InDelta(t, before, threeWayTotal(returns, above, losses), EpsVolume)

	// AND 4.0 m3 moved out of returns into losses through the column
	assert.InDelta(t, 1.0, TotalVolume(returns), EpsVolume)
	assert.InDelta(t, 4.0, TotalVolume(losses), EpsVolume)
	assert.True(t, above.IsFull())

	// AND the most recently returned fluid went back down first: Spacer 2
	// re-entered the top before the split Mud 2 landed above it
	n := len(above.Parcels)
	require.GreaterOrEqual(t, n, 2)
	assert.Equal(t, "Spacer", above.Parcels[n-2].Name)
	assert.InDelta(t, 2.0, above.Parcels[n-2].Volume, EpsVolume)
	assert.Equal(t, "Mud", above.Parcels[n-1].Name)
	assert.InDelta(t, 2.0, above.Parcels[n-1].Volume, EpsVolume)
}

func TestReconcile_FewerRealLosses_MovesLossesToReturns(t *testing.T) {
	// GIVEN simulated losses of [Cement 2] and returns of [Mud 1]
	returns := []Parcel{mud(1.0)}
	above := NewColumn(10.0, mud(0))
	losses := []Parcel{{Volume: 2.0, Name: "Cement", Density: 1900, IsCement: true}}
	before := threeWayTotal(returns, above, losses)

	// WHEN 1.5 m3 fewer losses than simulated are observed
	returns, losses = ReconcileStreams(returns, above, losses, -1.5)

	// THEN the three-way total is unchanged and 1.5 m3 moved back
	assert.InDelta(t, before, threeWayTotal(returns, above, losses), EpsVolume)
	assert.InDelta(t, 0.5, TotalVolume(losses), EpsVolume)
	assert.InDelta(t, 2.5, TotalVolume(returns), EpsVolume)
	assert.True(t, above.IsFull())

	// AND the recovered loss re-entered the bottom of the column with its
	// identity intact
	assert.Equal(t, "Cement", above.Parcels[0].Name)
	assert.True(t, above.Parcels[0].IsCement)
	assert.InDelta(t, 1.5, above.Parcels[0].Volume, EpsVolume)
}

func TestReconcile_AdjustmentLimitedByAvailableReturns(t *testing.T) {
	// GIVEN only 2.0 m3 of returns
	returns := []Parcel{mud(2.0)}
	above := NewColumn(10.0, mud(0))
	var losses []Parcel
	before := threeWayTotal(returns, above, losses)

	// WHEN a 5.0 m3 adjustment is requested
	returns, losses = ReconcileStreams(returns, above, losses, 5.0)

	// THEN only the available volume moves; conservation still holds
	assert.Empty(t, returns)
	assert.InDelta(t, 2.0, TotalVolume(losses), EpsVolume)
	assert.InDelta(t, before, threeWayTotal(returns, above, losses), EpsVolume)
}

func TestReconcile_DeadBandLeavesStreamsUntouched(t *testing.T) {
	returns := []Parcel{mud(3.0)}
	above := NewColumn(10.0, mud(0))
	losses := []Parcel{spacer(1.0)}

	gotReturns, gotLosses := ReconcileStreams(returns, above, losses, 0.005)

	assert.Equal(t, returns, gotReturns)
	assert.Equal(t, losses, gotLosses)
}

func TestTrimTail_RemovesMostRecentlyPumpedFirst(t *testing.T) {
	// GIVEN pumped parcels [Mud 3, Spacer 2] (Spacer most recent)
	parcels := []Parcel{mud(3.0), spacer(2.0)}

	// WHEN trimming 2.5 m3
	remaining, trimmed := TrimTail(parcels, 2.5)

	// THEN Spacer 2 leaves whole, then Mud 0.5 is split off
	require.Len(t, trimmed, 2)
	assert.Equal(t, "Spacer", trimmed[0].Name)
	assert.InDelta(t, 2.0, trimmed[0].Volume, EpsVolume)
	assert.Equal(t, "Mud", trimmed[1].Name)
	assert.InDelta(t, 0.5, trimmed[1].Volume, EpsVolume)

	require.Len(t, remaining, 1)
	assert.InDelta(t, 2.5, remaining[0].Volume, EpsVolume)
}
