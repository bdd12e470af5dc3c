// Surface tank state. When auto-tracking, the current volume is derived from
// the simulation; when overridden by an operator reading it drives the
// reconciliation step instead.

package sim

// TankState holds the operator-side tank bookkeeping carried between
// recompute passes. It is an input to the pass, never mutated by it.
type TankState struct {
	InitialVolume float64 // m^3 at the start of the job
	CurrentVolume float64 // m^3; operator-entered when AutoTracking is false
	AutoTracking  bool
	StageReadings map[int]float64 // stage index -> recorded tank volume
}

// NewTankState returns an auto-tracking tank at the given initial volume.
func NewTankState(initial float64) *TankState {
	return &TankState{
		InitialVolume: initial,
		CurrentVolume: initial,
		AutoTracking:  true,
		StageReadings: make(map[int]float64),
	}
}

// RecordReading stores an operator reading for a stage and switches the tank
// to manual tracking with that reading as the current volume.
func (t *TankState) RecordReading(stageIndex int, volume float64) {
	if t.StageReadings == nil {
		t.StageReadings = make(map[int]float64)
	}
	t.StageReadings[stageIndex] = volume
	t.CurrentVolume = volume
	t.AutoTracking = false
}

// ObservedVolume returns the tank volume to reconcile against at the given
// cursor stage: the per-stage reading when one exists, otherwise the current
// volume. Only meaningful when AutoTracking is false.
func (t *TankState) ObservedVolume(stageIndex int) float64 {
	if v, ok := t.StageReadings[stageIndex]; ok {
		return v
	}
	return t.CurrentVolume
}

// ExpectedVolume is the tank volume the simulation would predict with zero
// losses: both columns start full, so every cubic meter pumped comes back as
// returns.
func (t *TankState) ExpectedVolume(cumulativePumped float64) float64 {
	return t.InitialVolume + cumulativePumped
}
