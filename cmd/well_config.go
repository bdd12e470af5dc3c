package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	sim "github.com/e1tester2019/JoshWellControl-MacOS-sub007/sim"
)

// Define structs for the YAML well-program file.
type WellFile struct {
	Well         WellConfig    `yaml:"well"`
	InitialFluid FluidConfig   `yaml:"initial_fluid"`
	Stages       []StageConfig `yaml:"stages"`
	LossZones    []ZoneConfig  `yaml:"loss_zones"`
	Tank         TankConfig    `yaml:"tank"`
}

type WellConfig struct {
	Sections []SectionConfig `yaml:"sections"`
	Survey   []StationConfig `yaml:"survey"`
	Frac     []FracConfig    `yaml:"frac_table"`
}

type SectionConfig struct {
	TopMD    float64 `yaml:"top_md"`
	BottomMD float64 `yaml:"bottom_md"`
	HoleID   float64 `yaml:"hole_id"`
	PipeOD   float64 `yaml:"pipe_od"`
	PipeID   float64 `yaml:"pipe_id"`
}

type StationConfig struct {
	MD  float64 `yaml:"md"`
	TVD float64 `yaml:"tvd"`
}

type FracConfig struct {
	TVD      float64 `yaml:"tvd"`
	Pressure float64 `yaml:"pressure"`
}

type FluidConfig struct {
	Name             string  `yaml:"name"`
	Density          float64 `yaml:"density"`
	IsCement         bool    `yaml:"is_cement"`
	PlasticViscosity float64 `yaml:"plastic_viscosity"`
	YieldPoint       float64 `yaml:"yield_point"`
}

type StageConfig struct {
	Name             string  `yaml:"name"`
	Volume           float64 `yaml:"volume"`
	Density          float64 `yaml:"density"`
	IsCement         bool    `yaml:"is_cement"`
	PlasticViscosity float64 `yaml:"plastic_viscosity"`
	YieldPoint       float64 `yaml:"yield_point"`
	IsOperation      bool    `yaml:"is_operation"`
}

type ZoneConfig struct {
	MD     float64 `yaml:"md"`
	Active bool    `yaml:"active"`
}

type TankConfig struct {
	InitialVolume float64         `yaml:"initial_volume"`
	CurrentVolume float64         `yaml:"current_volume"`
	AutoTracking  bool            `yaml:"auto"`
	Readings      map[int]float64 `yaml:"readings"`
}

// WellProgram is the loaded, engine-ready form of a well file.
type WellProgram struct {
	Geometry     *sim.WellGeometry
	Survey       *sim.SurveyPath
	FracTable    *sim.FracGradientTable
	InitialFluid sim.Parcel
	Stages       []sim.Stage
	Zones        []*sim.LossZone
	Tank         *sim.TankState
}

// LoadWellProgram reads and converts a YAML well-program file into engine
// inputs. Loss zones with no fracture-pressure value at their depth are not
// created; that outcome is logged at warn level rather than raised as an
// error.
func LoadWellProgram(path string) (*WellProgram, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading well file: %w", err)
	}
	var wf WellFile
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("parsing well file: %w", err)
	}
	if len(wf.Well.Sections) == 0 {
		return nil, fmt.Errorf("well file %s has no geometry sections", path)
	}

	wp := &WellProgram{
		Geometry:  &sim.WellGeometry{},
		Survey:    &sim.SurveyPath{},
		FracTable: &sim.FracGradientTable{},
	}
	for _, s := range wf.Well.Sections {
		wp.Geometry.Sections = append(wp.Geometry.Sections, sim.WellSection{
			TopMD: s.TopMD, BottomMD: s.BottomMD,
			HoleID: s.HoleID, PipeOD: s.PipeOD, PipeID: s.PipeID,
		})
	}
	for _, st := range wf.Well.Survey {
		wp.Survey.Stations = append(wp.Survey.Stations, sim.SurveyStation{MD: st.MD, TVD: st.TVD})
	}
	for _, f := range wf.Well.Frac {
		wp.FracTable.Stations = append(wp.FracTable.Stations, sim.FracStation{TVD: f.TVD, Pressure: f.Pressure})
	}

	wp.InitialFluid = sim.Parcel{
		Name:             wf.InitialFluid.Name,
		Density:          wf.InitialFluid.Density,
		IsCement:         wf.InitialFluid.IsCement,
		PlasticViscosity: wf.InitialFluid.PlasticViscosity,
		YieldPoint:       wf.InitialFluid.YieldPoint,
	}

	for _, sc := range wf.Stages {
		wp.Stages = append(wp.Stages, sim.Stage{
			Name:             sc.Name,
			Volume:           sc.Volume,
			Density:          sc.Density,
			IsCement:         sc.IsCement,
			PlasticViscosity: sc.PlasticViscosity,
			YieldPoint:       sc.YieldPoint,
			IsOperation:      sc.IsOperation,
		})
	}

	for _, zc := range wf.LossZones {
		zone, ok := sim.NewLossZone(zc.MD, wp.Survey, wp.FracTable)
		if !ok {
			logrus.Warnf("loss zone at %.1f m not created: no fracture-pressure data at this depth", zc.MD)
			continue
		}
		zone.IsActive = zc.Active
		wp.Zones = append(wp.Zones, zone)
	}

	tank := sim.NewTankState(wf.Tank.InitialVolume)
	if !wf.Tank.AutoTracking {
		tank.AutoTracking = false
		tank.CurrentVolume = wf.Tank.CurrentVolume
	}
	for idx, v := range wf.Tank.Readings {
		tank.StageReadings[idx] = v
	}
	wp.Tank = tank

	return wp, nil
}
