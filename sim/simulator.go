// sim/simulator.go
//
// The full recompute pass. Every observable mutation (cursor movement, pump
// rate change, loss-zone edit, tank override) replays the entire stage
// program from stage 0 against freshly built columns; no state is carried
// between passes. The pass is O(stages x geometry sections), which together
// with the linear pressure approximations in losszone.go keeps a scrub tick
// cheap.

package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// Simulator holds the pure inputs of one recompute pass.
type Simulator struct {
	Geometry GeometryProvider
	Depths   DepthConverter
	Stages   []Stage
	Zones    []*LossZone
	Cursor   SimulationCursor
	PumpRate float64 // m^3/min
	Tank     *TankState
	// InitialFluid fills both columns at stage 0; its volume field is ignored.
	InitialFluid Parcel
}

// Result is the complete output of one pass.
type Result struct {
	StringColumn *Column
	// AboveZone/BelowZone are the annulus columns when a zone is active;
	// with no active zone BelowZone spans the whole annulus and AboveZone
	// is nil.
	AboveZone *Column
	BelowZone *Column

	StringSegments  []FluidSegment
	AnnulusSegments []FluidSegment

	Returns        []Parcel // fluids that exited at surface, arrival order
	ReturnsSummary []Parcel // same, consecutive same-name entries merged
	Losses         []Parcel // fluids taken by the formation

	Accounting Accounting
}

// Accounting carries the derived volume and return metrics of a pass.
type Accounting struct {
	CumulativePumped float64
	ActualReturned   float64 // max(0, tank current - tank initial)
	ReturnRatio      float64 // 1.0 when nothing has been pumped
	ReturnDifference float64 // pumped - returned
	SimulatedLosses  float64
	CementInReturns  float64
	TankExpected     float64
	TankCurrent      float64
}

// Print displays the pass accounting for CLI reporting.
func (a Accounting) Print() {
	fmt.Println("=== Displacement Accounting ===")
	fmt.Printf("Cumulative Pumped    : %.3f m3\n", a.CumulativePumped)
	fmt.Printf("Actual Returned      : %.3f m3\n", a.ActualReturned)
	fmt.Printf("Return Ratio         : %.3f\n", a.ReturnRatio)
	fmt.Printf("Return Difference    : %.3f m3\n", a.ReturnDifference)
	fmt.Printf("Simulated Losses     : %.3f m3\n", a.SimulatedLosses)
	fmt.Printf("Cement In Returns    : %.3f m3\n", a.CementInReturns)
	fmt.Printf("Tank (expected)      : %.3f m3\n", a.TankExpected)
	fmt.Printf("Tank (current)       : %.3f m3\n", a.TankCurrent)
}

// Recompute runs one full pass and returns the derived state.
func (s *Simulator) Recompute() *Result {
	if s.Tank == nil {
		s.Tank = NewTankState(0)
	}
	totalDepth := s.Geometry.TotalDepth()
	zone := ActiveZone(s.Zones)
	pumped := CumulativePumped(s.Stages, s.Cursor)

	// Replay the program through the string; collect what leaves at the bit.
	stringCol := NewColumn(s.Geometry.VolumeInString(0, totalDepth), s.InitialFluid)
	var bitParcels []Parcel
	for i, v := range PumpedVolumes(s.Stages, s.Cursor) {
		if v <= EpsParcel {
			continue
		}
		bitParcels = append(bitParcels, stringCol.PushAtInflowEnd(s.Stages[i].Parcel(v))...)
	}
	logrus.Debugf("recompute: pumped=%.3f m3, %d parcels at bit, zone=%v", pumped, len(bitParcels), zone != nil)

	res := &Result{StringColumn: stringCol}
	expected := s.Tank.ExpectedVolume(pumped)
	observed := s.Tank.ObservedVolume(s.Cursor.StageIndex)

	if zone == nil {
		// One-sided reconciliation: a manual tank deficit trims the most
		// recently pumped fluid before it ever reaches the annulus.
		if !s.Tank.AutoTracking {
			if deficit := expected - observed; deficit > reconcileThreshold {
				var trimmed []Parcel
				bitParcels, trimmed = TrimTail(bitParcels, deficit)
				res.Losses = append(res.Losses, trimmed...)
			}
		}
		annulus := NewColumn(s.Geometry.VolumeInAnnulus(0, totalDepth), s.InitialFluid)
		for _, p := range bitParcels {
			res.Returns = append(res.Returns, annulus.PushAtInflowEnd(p)...)
		}
		res.BelowZone = annulus
		res.AnnulusSegments = AnnulusSegments(annulus, s.Geometry, totalDepth, 0)
	} else {
		below := NewColumn(s.Geometry.VolumeInAnnulus(zone.Depth, totalDepth), s.InitialFluid)
		above := NewColumn(s.Geometry.VolumeInAnnulus(0, zone.Depth), s.InitialFluid)
		zh := newZoneHydraulics(zone, s.Geometry)

		// Valve decision once per parcel crossing the zone, in arrival order.
		for _, p := range bitParcels {
			for _, atZone := range below.PushAtInflowEnd(p) {
				passed, lost := zh.RouteParcel(atZone, above, s.PumpRate)
				if passed > EpsParcel {
					res.Returns = append(res.Returns, above.PushAtInflowEnd(atZone.WithVolume(passed))...)
				}
				if lost > EpsParcel {
					res.Losses = append(res.Losses, atZone.WithVolume(lost))
				}
			}
		}

		if !s.Tank.AutoTracking {
			actualLosses := expected - observed
			adjustment := actualLosses - TotalVolume(res.Losses)
			logrus.Debugf("reconcile: actual=%.3f simulated=%.3f adjustment=%.3f",
				actualLosses, TotalVolume(res.Losses), adjustment)
			res.Returns, res.Losses = ReconcileStreams(res.Returns, above, res.Losses, adjustment)
		}

		res.AboveZone, res.BelowZone = above, below
		res.AnnulusSegments = mergeSegments(append(
			AnnulusSegments(below, s.Geometry, totalDepth, zone.Depth),
			AnnulusSegments(above, s.Geometry, zone.Depth, 0)...))
	}

	res.StringSegments = StringSegments(stringCol, s.Geometry)
	res.ReturnsSummary = MergeSameName(res.Returns)
	res.Accounting = s.account(pumped, expected, observed, res)
	return res
}

func (s *Simulator) account(pumped, expected, observed float64, res *Result) Accounting {
	simulatedLosses := TotalVolume(res.Losses)
	current := expected - simulatedLosses
	if !s.Tank.AutoTracking {
		current = observed
	}
	returned := math.Max(0, current-s.Tank.InitialVolume)
	ratio := 1.0
	if pumped > EpsVolume {
		ratio = returned / pumped
	}
	return Accounting{
		CumulativePumped: pumped,
		ActualReturned:   returned,
		ReturnRatio:      ratio,
		ReturnDifference: pumped - returned,
		SimulatedLosses:  simulatedLosses,
		CementInReturns:  CementVolume(res.Returns),
		TankExpected:     expected,
		TankCurrent:      current,
	}
}
