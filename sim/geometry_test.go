package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testGeometry builds a uniform 1000 m well with exact string and annulus
// capacities of 10.0 and 20.0 m3.
func testGeometry() *WellGeometry {
	pipeID := math.Sqrt(4 * 0.01 / math.Pi) // 0.01 m2 string area
	pipeOD := 0.12
	holeID := math.Sqrt(4*0.02/math.Pi + pipeOD*pipeOD) // 0.02 m2 annular area
	return &WellGeometry{Sections: []WellSection{
		{TopMD: 0, BottomMD: 1000, HoleID: holeID, PipeOD: pipeOD, PipeID: pipeID},
	}}
}

func TestLengthForVolume_BisectionAccuracy(t *testing.T) {
	// GIVEN a monotonically increasing volume function
	geom := testGeometry()
	target := 7.3
	volumeAt := func(l float64) float64 { return geom.VolumeInString(0, l) }

	// WHEN solving for the length holding the target volume
	length := LengthForVolume(volumeAt, geom.TotalDepth(), target)

	// THEN the bracketed volume matches within the solver tolerance
	assert.InDelta(t, target, volumeAt(length), 1e-6*math.Max(target, 1))
}

func TestLengthForVolume_DegenerateInputs(t *testing.T) {
	geom := testGeometry()
	volumeAt := func(l float64) float64 { return geom.VolumeInAnnulus(0, l) }

	assert.Zero(t, LengthForVolume(volumeAt, 1000, 0))
	assert.Zero(t, LengthForVolume(volumeAt, 0, 5))
	assert.Zero(t, LengthForVolume(volumeAt, 1000, -2))
}

func TestWellGeometry_Volumes(t *testing.T) {
	// GIVEN the uniform 1000 m test well
	geom := testGeometry()

	// THEN capacities match the constructed areas
	assert.InDelta(t, 10.0, geom.VolumeInString(0, 1000), EpsVolume)
	assert.InDelta(t, 20.0, geom.VolumeInAnnulus(0, 1000), EpsVolume)
	assert.InDelta(t, 5.0, geom.VolumeInString(250, 750), EpsVolume)

	// AND degenerate intervals contribute nothing
	assert.Zero(t, geom.VolumeInString(800, 300))
}

func TestWellGeometry_AnnulusSections_ClippedToInterval(t *testing.T) {
	geom := &WellGeometry{Sections: []WellSection{
		{TopMD: 0, BottomMD: 400, HoleID: 0.25, PipeOD: 0.12, PipeID: 0.1},
		{TopMD: 400, BottomMD: 1000, HoleID: 0.20, PipeOD: 0.12, PipeID: 0.1},
	}}

	sections := geom.AnnulusSections(200, 600)
	require.Len(t, sections, 2)
	assert.Equal(t, 200.0, sections[0].TopMD)
	assert.Equal(t, 400.0, sections[0].BottomMD)
	assert.Equal(t, 400.0, sections[1].TopMD)
	assert.Equal(t, 600.0, sections[1].BottomMD)
}

func TestSurveyPath_Interpolation(t *testing.T) {
	sp := &SurveyPath{Stations: []SurveyStation{
		{MD: 0, TVD: 0},
		{MD: 1000, TVD: 1000},
		{MD: 2000, TVD: 1500}, // build section: 0.5 TVD per MD
	}}

	assert.InDelta(t, 500.0, sp.TrueVerticalDepth(500), EpsDepth)
	assert.InDelta(t, 1250.0, sp.TrueVerticalDepth(1500), EpsDepth)
	// Beyond the last station: extrapolate along the final pair.
	assert.InDelta(t, 1750.0, sp.TrueVerticalDepth(2500), EpsDepth)
}

func TestSurveyPath_EmptyTreatsWellAsVertical(t *testing.T) {
	sp := &SurveyPath{}
	assert.Equal(t, 1234.5, sp.TrueVerticalDepth(1234.5))
}

func TestFracGradientTable_LookupAndAbsence(t *testing.T) {
	ft := &FracGradientTable{Stations: []FracStation{
		{TVD: 500, Pressure: 8000},
		{TVD: 1500, Pressure: 20000},
	}}

	p, ok := ft.FracPressureAt(1000)
	require.True(t, ok)
	assert.InDelta(t, 14000.0, p, EpsVolume)

	// Outside the tabulated range: no value.
	_, ok = ft.FracPressureAt(100)
	assert.False(t, ok)
	_, ok = ft.FracPressureAt(3000)
	assert.False(t, ok)
}
