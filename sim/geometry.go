// Geometry injection points and the depth<->volume bisection solver. The
// engine never hard-codes a geometry assumption; correctness depends only on
// monotonicity of the provider's volume functions in depth.

package sim

// AnnulusSection describes one discrete annular geometry interval, used by
// the friction model. Diameters are in meters.
type AnnulusSection struct {
	TopMD    float64 // m
	BottomMD float64 // m
	HoleID   float64 // hole or casing inner diameter, m
	PipeOD   float64 // drill pipe outer diameter, m
}

// GeometryProvider supplies wellbore volumes and annular sections as a
// function of the current well/casing/drill-string configuration. Opaque to
// the engine.
type GeometryProvider interface {
	// VolumeInString returns the drill-string interior volume between two
	// measured depths, m^3.
	VolumeInString(topMD, bottomMD float64) float64

	// VolumeInAnnulus returns the annular volume between two measured
	// depths, m^3.
	VolumeInAnnulus(topMD, bottomMD float64) float64

	// AnnulusSections returns the annular geometry sections overlapping
	// [topMD, bottomMD], clipped to that interval.
	AnnulusSections(topMD, bottomMD float64) []AnnulusSection

	// TotalDepth returns the well's total measured depth, m.
	TotalDepth() float64
}

// DepthConverter maps measured depth to true vertical depth, derived
// externally from directional survey data.
type DepthConverter interface {
	TrueVerticalDepth(md float64) float64
}

// FracPressureLookup resolves the formation fracture pressure at a true
// vertical depth. The second return is false when no value is available at
// that depth.
type FracPressureLookup interface {
	FracPressureAt(tvd float64) (float64, bool)
}

// bisectionIterations caps the bracket-narrowing loop; combined with the
// EpsDepth bracket width this bounds the solver at ~50 volume evaluations.
const bisectionIterations = 50

// LengthForVolume finds the interval length L such that volumeAt(L) equals
// target, by bisection over [0, maxLength]. volumeAt must be monotonically
// non-decreasing in length; it is typically a closure over a GeometryProvider
// with one endpoint fixed. Returns the midpoint of the final bracket.
// Degenerate inputs (non-positive target or span) resolve to zero.
func LengthForVolume(volumeAt func(length float64) float64, maxLength, target float64) float64 {
	if target <= EpsVolume || maxLength <= EpsDepth {
		return 0
	}
	lo, hi := 0.0, maxLength
	for i := 0; i < bisectionIterations && hi-lo > EpsDepth; i++ {
		mid := (lo + hi) / 2
		if volumeAt(mid) < target {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}
