// Tank-volume reconciliation: when the operator-observed tank volume
// disagrees with simulated losses, volume is reshuffled among the surface
// returns, the above-zone column and the formation losses without changing
// the three-way total. The "conveyor belt": a parcel pulled off one stream is
// pushed onto one end of the above-zone column while an equal volume is
// removed from the opposite end into the other stream.

package sim

// reconcileThreshold is the dead band below which a tank discrepancy is
// accepted as rounding rather than reshuffled.
const reconcileThreshold = 0.01 // m^3

// ReconcileStreams redistributes volume among returns, the above-zone column
// and losses to absorb adjustment (= actual losses - simulated losses).
// Positive adjustment converts returned fluid into losses; negative converts
// losses back into returns. Parcels are split as needed with identity
// preserved, and the three-way volume total is unchanged.
func ReconcileStreams(returns []Parcel, above *Column, losses []Parcel, adjustment float64) ([]Parcel, []Parcel) {
	switch {
	case adjustment > reconcileThreshold:
		// More real loss than simulated: walk returned fluid back down the
		// above-zone column and push an equal volume out the bottom.
		remaining := adjustment
		for remaining > EpsVolume && len(returns) > 0 {
			last := returns[len(returns)-1]
			returns = returns[:len(returns)-1]
			take := last.Volume
			if take > remaining {
				var kept Parcel
				kept, last = last.Split(last.Volume - remaining)
				returns = append(returns, kept)
				take = remaining
			}
			above.PushTop(last)
			losses = append(losses, above.TakeBottom(take)...)
			remaining -= take
		}
	case adjustment < -reconcileThreshold:
		// Fewer real losses than simulated: the mirror operation.
		remaining := -adjustment
		for remaining > EpsVolume && len(losses) > 0 {
			last := losses[len(losses)-1]
			losses = losses[:len(losses)-1]
			take := last.Volume
			if take > remaining {
				var kept Parcel
				kept, last = last.Split(last.Volume - remaining)
				losses = append(losses, kept)
				take = remaining
			}
			above.PushBottom(last)
			returns = append(returns, above.TakeTop(take)...)
			remaining -= take
		}
	}
	return returns, losses
}

// TrimTail removes up to v volume from the tail (most recently pumped end) of
// a parcel sequence, splitting the boundary parcel as needed, and returns the
// remaining and removed parcels. Used for the one-sided reconciliation when
// no loss zone is active: a tank deficit trims fluid before it ever reaches
// the annulus.
func TrimTail(parcels []Parcel, v float64) (remaining, trimmed []Parcel) {
	for v > EpsVolume && len(parcels) > 0 {
		last := parcels[len(parcels)-1]
		if last.Volume <= v+EpsVolume {
			parcels = parcels[:len(parcels)-1]
			trimmed = append(trimmed, last)
			v -= last.Volume
			continue
		}
		kept, cut := last.Split(last.Volume - v)
		parcels[len(parcels)-1] = kept
		trimmed = append(trimmed, cut)
		v = 0
	}
	return parcels, trimmed
}
