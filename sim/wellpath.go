// Sectional implementations of the geometry injection points: cylindrical
// volumes from a depth-ordered section table, piecewise-linear TVD from survey
// stations, and a piecewise-linear fracture-pressure table.

package sim

import "math"

// WellSection is one interval of constant geometry. Diameters are in meters.
type WellSection struct {
	TopMD    float64 // m
	BottomMD float64 // m
	HoleID   float64 // hole or casing inner diameter, m
	PipeOD   float64 // drill pipe outer diameter, m
	PipeID   float64 // drill pipe inner diameter, m
}

// WellGeometry implements GeometryProvider over an ordered, non-overlapping
// list of sections covering [0, TotalDepth].
type WellGeometry struct {
	Sections []WellSection
}

func (g *WellGeometry) TotalDepth() float64 {
	if len(g.Sections) == 0 {
		return 0
	}
	return g.Sections[len(g.Sections)-1].BottomMD
}

// stringArea returns the drill-string interior flow area of a section, m^2.
func (s WellSection) stringArea() float64 {
	a := math.Pi / 4 * s.PipeID * s.PipeID
	if a < 0 {
		return 0
	}
	return a
}

// annulusArea returns the annular flow area of a section, m^2. Negative
// areas from degenerate diameters clamp to zero.
func (s WellSection) annulusArea() float64 {
	a := math.Pi / 4 * (s.HoleID*s.HoleID - s.PipeOD*s.PipeOD)
	if a < 0 {
		return 0
	}
	return a
}

// overlap returns the length of the section inside [topMD, bottomMD].
func (s WellSection) overlap(topMD, bottomMD float64) float64 {
	top := math.Max(s.TopMD, topMD)
	bottom := math.Min(s.BottomMD, bottomMD)
	if bottom <= top {
		return 0
	}
	return bottom - top
}

func (g *WellGeometry) VolumeInString(topMD, bottomMD float64) float64 {
	total := 0.0
	for _, s := range g.Sections {
		total += s.stringArea() * s.overlap(topMD, bottomMD)
	}
	return total
}

func (g *WellGeometry) VolumeInAnnulus(topMD, bottomMD float64) float64 {
	total := 0.0
	for _, s := range g.Sections {
		total += s.annulusArea() * s.overlap(topMD, bottomMD)
	}
	return total
}

func (g *WellGeometry) AnnulusSections(topMD, bottomMD float64) []AnnulusSection {
	var out []AnnulusSection
	for _, s := range g.Sections {
		if s.overlap(topMD, bottomMD) <= 0 {
			continue
		}
		out = append(out, AnnulusSection{
			TopMD:    math.Max(s.TopMD, topMD),
			BottomMD: math.Min(s.BottomMD, bottomMD),
			HoleID:   s.HoleID,
			PipeOD:   s.PipeOD,
		})
	}
	return out
}

// SurveyStation is one directional-survey point.
type SurveyStation struct {
	MD  float64 // m
	TVD float64 // m
}

// SurveyPath implements DepthConverter by piecewise-linear interpolation over
// ordered survey stations. Depths beyond the last station extrapolate along
// the final station pair; an empty survey treats the well as vertical.
type SurveyPath struct {
	Stations []SurveyStation
}

func (sp *SurveyPath) TrueVerticalDepth(md float64) float64 {
	n := len(sp.Stations)
	if n == 0 {
		return md
	}
	if md <= sp.Stations[0].MD {
		return sp.Stations[0].TVD * safeRatio(md, sp.Stations[0].MD)
	}
	for i := 1; i < n; i++ {
		a, b := sp.Stations[i-1], sp.Stations[i]
		if md <= b.MD {
			return a.TVD + (b.TVD-a.TVD)*safeRatio(md-a.MD, b.MD-a.MD)
		}
	}
	// Extrapolate along the final pair.
	if n == 1 {
		return sp.Stations[0].TVD
	}
	a, b := sp.Stations[n-2], sp.Stations[n-1]
	return b.TVD + (b.TVD-a.TVD)*safeRatio(md-b.MD, b.MD-a.MD)
}

// FracStation is one fracture-pressure table entry.
type FracStation struct {
	TVD      float64 // m
	Pressure float64 // kPa
}

// FracGradientTable implements FracPressureLookup by piecewise-linear
// interpolation between stations. Depths outside the tabulated range have no
// value; zone creation at such a depth does not proceed.
type FracGradientTable struct {
	Stations []FracStation
}

func (ft *FracGradientTable) FracPressureAt(tvd float64) (float64, bool) {
	n := len(ft.Stations)
	if n == 0 {
		return 0, false
	}
	if tvd < ft.Stations[0].TVD || tvd > ft.Stations[n-1].TVD {
		return 0, false
	}
	for i := 1; i < n; i++ {
		a, b := ft.Stations[i-1], ft.Stations[i]
		if tvd <= b.TVD {
			return a.Pressure + (b.Pressure-a.Pressure)*safeRatio(tvd-a.TVD, b.TVD-a.TVD), true
		}
	}
	return ft.Stations[n-1].Pressure, true
}

// safeRatio divides with a near-zero denominator guard.
func safeRatio(num, den float64) float64 {
	if math.Abs(den) < EpsDepth {
		return 0
	}
	return num / den
}
