// The pumping program: an ordered, append-only list of stages and the cursor
// that is the single source of truth for how much has been pumped.

package sim

// Stage is one entry of the pumping program. Non-volumetric "operation"
// stages (pressure tests, plug drops) are skipped by the fluid engine but
// retained for sequencing and reporting.
type Stage struct {
	Name             string
	Volume           float64 // total stage volume, m^3
	Density          float64 // kg/m^3
	IsCement         bool
	PlasticViscosity float64 // cP
	YieldPoint       float64 // Pa
	IsOperation      bool    // true = no fluid is pumped for this stage
}

// Parcel returns the fluid parcel for pumping v cubic meters of this stage.
func (s Stage) Parcel(v float64) Parcel {
	return Parcel{
		Volume:           v,
		Name:             s.Name,
		Density:          s.Density,
		IsCement:         s.IsCement,
		PlasticViscosity: s.PlasticViscosity,
		YieldPoint:       s.YieldPoint,
	}
}

// SimulationCursor identifies the scrub position within the stage program.
type SimulationCursor struct {
	StageIndex int
	Progress   float64 // fraction of the current stage pumped, in [0,1]
}

// clamped returns the cursor normalized against the program bounds.
func (c SimulationCursor) clamped(stages []Stage) SimulationCursor {
	if c.StageIndex < 0 {
		return SimulationCursor{}
	}
	if c.StageIndex >= len(stages) {
		return SimulationCursor{StageIndex: len(stages), Progress: 0}
	}
	if c.Progress < 0 {
		c.Progress = 0
	}
	if c.Progress > 1 {
		c.Progress = 1
	}
	return c
}

// PumpedVolumes returns the pumped volume of each stage at the cursor: full
// volumes for stages before the cursor, the fractional volume for the cursor
// stage, zero beyond. Operation stages always contribute zero.
func PumpedVolumes(stages []Stage, cursor SimulationCursor) []float64 {
	cursor = cursor.clamped(stages)
	pumped := make([]float64, len(stages))
	for i, s := range stages {
		if s.IsOperation {
			continue
		}
		switch {
		case i < cursor.StageIndex:
			pumped[i] = s.Volume
		case i == cursor.StageIndex:
			pumped[i] = cursor.Progress * s.Volume
		}
	}
	return pumped
}

// CumulativePumped is the sum of full volumes of all stages before the
// cursor's stage plus the fractional volume of the cursor stage.
func CumulativePumped(stages []Stage, cursor SimulationCursor) float64 {
	total := 0.0
	for _, v := range PumpedVolumes(stages, cursor) {
		total += v
	}
	return total
}
