// Implements the Parcel, a contiguous slug of a single named fluid.
// Parcels carry no positional information; position is implied solely by
// index within a Column.

package sim

import "fmt"

// Volume comparison tolerances. Repeated splitting accumulates floating-point
// drift, so every comparison against zero runs through an epsilon band.
const (
	// EpsParcel is the threshold below which a parcel is treated as empty
	// and must not be inserted into a column.
	EpsParcel = 1e-12

	// EpsVolume is the general-purpose volume comparison tolerance.
	EpsVolume = 1e-9

	// EpsDepth is the depth tolerance for segment merging and the bisection
	// bracket width.
	EpsDepth = 1e-6
)

// Parcel is a volume-bounded slug of one fluid with uniform density and
// rheology. Parcels are value types: operations replace parcels rather than
// mutate fields in place.
type Parcel struct {
	Volume           float64 // m^3, >= 0
	Name             string  // fluid identity
	Density          float64 // kg/m^3
	IsCement         bool    // true for cement slurries
	PlasticViscosity float64 // cP
	YieldPoint       float64 // Pa
}

// WithVolume returns a copy of p carrying volume v, all identity fields
// unchanged. Negative v clamps to zero.
func (p Parcel) WithVolume(v float64) Parcel {
	if v < 0 {
		v = 0
	}
	p.Volume = v
	return p
}

// Split divides p by volume v into (head, tail) whose volumes sum to
// p.Volume, identity fields copied unchanged. v is clamped to [0, p.Volume].
func (p Parcel) Split(v float64) (Parcel, Parcel) {
	if v < 0 {
		v = 0
	}
	if v > p.Volume {
		v = p.Volume
	}
	return p.WithVolume(v), p.WithVolume(p.Volume - v)
}

// IsEmpty reports whether the parcel is below the insertion threshold.
func (p Parcel) IsEmpty() bool {
	return p.Volume <= EpsParcel
}

func (p Parcel) String() string {
	return fmt.Sprintf("%s(%.4f m3, %.0f kg/m3)", p.Name, p.Volume, p.Density)
}

// MergeSameName coalesces consecutive parcels with identical names into one
// entry each, preserving order. This is a presentation concern layered on top
// of the conservation model; the merged parcel keeps the identity fields of
// the first parcel in each run.
func MergeSameName(parcels []Parcel) []Parcel {
	merged := make([]Parcel, 0, len(parcels))
	for _, p := range parcels {
		if p.IsEmpty() {
			continue
		}
		if n := len(merged); n > 0 && merged[n-1].Name == p.Name {
			merged[n-1].Volume += p.Volume
			continue
		}
		merged = append(merged, p)
	}
	return merged
}

// TotalVolume sums parcel volumes.
func TotalVolume(parcels []Parcel) float64 {
	total := 0.0
	for _, p := range parcels {
		total += p.Volume
	}
	return total
}

// CementVolume sums the volume of parcels flagged as cement.
func CementVolume(parcels []Parcel) float64 {
	total := 0.0
	for _, p := range parcels {
		if p.IsCement {
			total += p.Volume
		}
	}
	return total
}
