// Loss-zone pressure evaluation and the per-parcel valve decision. The
// hydrostatic model is deliberately a fast linear mapping (one average
// length-per-volume ratio and one average TVD/MD ratio for the whole
// above-zone interval) rather than an exact per-parcel TVD integration: the
// recompute pass runs on every scrub tick and must stay cheap. The friction
// model is a steady-state laminar Bingham-plastic approximation per annular
// geometry section.

package sim

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Gravity is the standard gravitational acceleration, m/s^2.
const Gravity = 9.80665

const (
	// defaultPlasticViscosity and defaultYieldPoint back-fill rheology when
	// no fluid sits above the zone yet.
	defaultPlasticViscosity = 20.0 // cP
	defaultYieldPoint       = 8.0  // Pa

	// valveOpeningThreshold: a transition volume at or below this is treated
	// as a fully opening valve and the whole parcel is lost.
	valveOpeningThreshold = 0.01 // m^3

	// minAboveCapacity guards the length-per-volume ratio against a
	// degenerate above-zone interval.
	minAboveCapacity = 0.001 // m^3
)

// LossZone is a depth at which fluid escapes into the formation once local
// pressure meets the fracture pressure. At most one zone is honored per
// simulation pass; see ActiveZone.
type LossZone struct {
	Depth        float64 // MD, m
	TVD          float64 // m
	FracPressure float64 // kPa
	FracGradient float64 // kPa/m of TVD
	IsActive     bool
}

// NewLossZone creates a zone at the given measured depth, resolving TVD and
// fracture pressure through the injected collaborators. The second return is
// false when no fracture-pressure value exists at that depth; the zone is not
// created and no error is raised.
func NewLossZone(md float64, conv DepthConverter, frac FracPressureLookup) (*LossZone, bool) {
	tvd := conv.TrueVerticalDepth(md)
	pressure, ok := frac.FracPressureAt(tvd)
	if !ok {
		return nil, false
	}
	gradient := 0.0
	if tvd > EpsDepth {
		gradient = pressure / tvd
	}
	return &LossZone{
		Depth:        md,
		TVD:          tvd,
		FracPressure: pressure,
		FracGradient: gradient,
		IsActive:     true,
	}, true
}

// ActiveZone returns the deepest active zone, or nil when none is active.
func ActiveZone(zones []*LossZone) *LossZone {
	var deepest *LossZone
	for _, z := range zones {
		if z == nil || !z.IsActive {
			continue
		}
		if deepest == nil || z.Depth > deepest.Depth {
			deepest = z
		}
	}
	return deepest
}

// zoneHydraulics caches the linear depth<->volume mapping for the above-zone
// interval of one recompute pass.
type zoneHydraulics struct {
	zone            *LossZone
	lengthPerVolume float64 // m of annulus per m^3, averaged over the interval
	tvdRatio        float64 // average TVD-to-MD ratio over the interval
	sections        []AnnulusSection
}

func newZoneHydraulics(zone *LossZone, geom GeometryProvider) zoneHydraulics {
	aboveCapacity := geom.VolumeInAnnulus(0, zone.Depth)
	tvdRatio := 1.0
	if zone.Depth > EpsDepth {
		tvdRatio = zone.TVD / zone.Depth
	}
	return zoneHydraulics{
		zone:            zone,
		lengthPerVolume: zone.Depth / math.Max(aboveCapacity, minAboveCapacity),
		tvdRatio:        tvdRatio,
		sections:        geom.AnnulusSections(0, zone.Depth),
	}
}

// hydrostaticKPa sums density*g*height over the above-zone parcels using the
// linear mapping, returning kPa.
func (zh zoneHydraulics) hydrostaticKPa(above *Column) float64 {
	total := 0.0
	for _, p := range above.Parcels {
		height := p.Volume * zh.lengthPerVolume * zh.tvdRatio
		total += p.Density * Gravity * height
	}
	return total / 1000
}

// frictionKPa evaluates the laminar Bingham-plastic annular pressure loss
// above the zone at the given pump rate (m^3/min), returning kPa. Rheology is
// the volume-weighted average of the above-zone parcels.
func (zh zoneHydraulics) frictionKPa(above *Column, pumpRate float64) float64 {
	if pumpRate <= 0 {
		return 0
	}
	pv, yp := averageRheology(above.Parcels)
	pvPaS := pv / 1000 // cP -> Pa.s
	flowRate := pumpRate / 60

	totalPa := 0.0
	for _, s := range zh.sections {
		dh := s.HoleID - s.PipeOD
		area := math.Pi / 4 * (s.HoleID*s.HoleID - s.PipeOD*s.PipeOD)
		if dh <= EpsDepth || area <= EpsVolume {
			continue
		}
		velocity := flowRate / area
		gradient := 4*yp/dh + 8*pvPaS*velocity/(dh*dh)
		totalPa += gradient * (s.BottomMD - s.TopMD)
	}
	return totalPa / 1000
}

// averageRheology returns the volume-weighted mean plastic viscosity and
// yield point of the parcels, or the defaults when the list is empty.
func averageRheology(parcels []Parcel) (pv, yp float64) {
	var pvs, yps, weights []float64
	for _, p := range parcels {
		if p.IsEmpty() {
			continue
		}
		pvs = append(pvs, p.PlasticViscosity)
		yps = append(yps, p.YieldPoint)
		weights = append(weights, p.Volume)
	}
	if len(weights) == 0 {
		return defaultPlasticViscosity, defaultYieldPoint
	}
	return stat.Mean(pvs, weights), stat.Mean(yps, weights)
}

// TotalPressureKPa returns hydrostatic plus friction pressure at the zone for
// the current above-zone column.
func (zh zoneHydraulics) totalPressureKPa(above *Column, pumpRate float64) float64 {
	return zh.hydrostaticKPa(above) + zh.frictionKPa(above, pumpRate)
}

// volumeToTransition computes how much incoming volume can be added before
// total pressure reaches the fracture pressure, by inverting the linear
// hydrostatic mapping. Adding lighter-or-equal fluid (relative to the fluid
// it displaces at the surface end) never raises pressure, so the result is
// unbounded in that case.
func (zh zoneHydraulics) volumeToTransition(incoming Parcel, above *Column, margin float64) float64 {
	displacedDensity := 0.0
	if n := len(above.Parcels); n > 0 {
		displacedDensity = above.Parcels[n-1].Density
	}
	deltaDensity := incoming.Density - displacedDensity
	if deltaDensity <= 0 {
		return math.Inf(1)
	}
	perVolume := deltaDensity * Gravity * zh.lengthPerVolume * zh.tvdRatio / 1000 // kPa per m^3
	if perVolume <= EpsVolume {
		return math.Inf(1)
	}
	return margin / perVolume
}

// RouteParcel decides, for one parcel arriving at the zone, how much volume
// passes into the above-zone column and how much is lost to the formation.
// The decision granularity equals the granularity of inbound parcels (one per
// overflow event at the zone boundary); this is a known quantization of the
// source model, not a defect.
func (zh zoneHydraulics) RouteParcel(incoming Parcel, above *Column, pumpRate float64) (passed, lost float64) {
	total := zh.totalPressureKPa(above, pumpRate)
	if total >= zh.zone.FracPressure {
		// Valve fully open: the formation takes the whole parcel.
		return 0, incoming.Volume
	}
	threshold := zh.volumeToTransition(incoming, above, zh.zone.FracPressure-total)
	switch {
	case threshold <= valveOpeningThreshold:
		// Valve is opening: effectively no headroom left.
		return 0, incoming.Volume
	case threshold >= incoming.Volume-EpsVolume:
		return incoming.Volume, 0
	default:
		return threshold, incoming.Volume - threshold
	}
}
