// Depth-indexed rendering of columns for downstream consumers. A presentation
// concern layered on top of the conservation model: parcels carry no depth,
// so each segment boundary is recovered from parcel volume via the bisection
// solver against the injected geometry.

package sim

import "math"

// FluidSegment is one depth interval occupied by a single fluid.
type FluidSegment struct {
	TopMD    float64 // m
	BottomMD float64 // m
	Name     string
	Density  float64 // kg/m^3
	IsCement bool
}

func segmentFor(p Parcel, topMD, bottomMD float64) FluidSegment {
	return FluidSegment{
		TopMD:    topMD,
		BottomMD: bottomMD,
		Name:     p.Name,
		Density:  p.Density,
		IsCement: p.IsCement,
	}
}

// StringSegments renders the string column (shallow-first) as depth segments
// from surface downward.
func StringSegments(col *Column, geom GeometryProvider) []FluidSegment {
	segs := make([]FluidSegment, 0, len(col.Parcels))
	top := 0.0
	bottomLimit := geom.TotalDepth()
	for _, p := range col.Parcels {
		if p.IsEmpty() {
			continue
		}
		span := bottomLimit - top
		length := LengthForVolume(func(l float64) float64 {
			return geom.VolumeInString(top, top+l)
		}, span, p.Volume)
		segs = append(segs, segmentFor(p, top, top+length))
		top += length
	}
	return mergeSegments(segs)
}

// AnnulusSegments renders an annulus column (deep-first) as depth segments
// from bottomMD upward toward topLimit. For a zoned pass the below-zone
// column renders with bottomMD = total depth and topLimit = zone depth, the
// above-zone column with bottomMD = zone depth and topLimit = 0.
func AnnulusSegments(col *Column, geom GeometryProvider, bottomMD, topLimit float64) []FluidSegment {
	segs := make([]FluidSegment, 0, len(col.Parcels))
	bottom := bottomMD
	for _, p := range col.Parcels {
		if p.IsEmpty() {
			continue
		}
		span := bottom - topLimit
		length := LengthForVolume(func(l float64) float64 {
			return geom.VolumeInAnnulus(bottom-l, bottom)
		}, span, p.Volume)
		segs = append(segs, segmentFor(p, bottom-length, bottom))
		bottom -= length
	}
	return mergeSegments(segs)
}

// mergeSegments coalesces adjacent same-name segments whose boundaries touch
// within the depth tolerance.
func mergeSegments(segs []FluidSegment) []FluidSegment {
	merged := make([]FluidSegment, 0, len(segs))
	for _, s := range segs {
		if n := len(merged); n > 0 && merged[n-1].Name == s.Name && touching(merged[n-1], s) {
			if s.BottomMD > merged[n-1].BottomMD {
				merged[n-1].BottomMD = s.BottomMD
			}
			if s.TopMD < merged[n-1].TopMD {
				merged[n-1].TopMD = s.TopMD
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

func touching(a, b FluidSegment) bool {
	return math.Abs(a.BottomMD-b.TopMD) <= EpsDepth || math.Abs(b.BottomMD-a.TopMD) <= EpsDepth
}
