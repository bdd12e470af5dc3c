package cmd

import (
	"fmt"
	"math"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/e1tester2019/JoshWellControl-MacOS-sub007/sim"
)

var (
	// CLI flags for the replay position and rig state
	wellFile   string  // Path to the YAML well-program file
	stageIndex int     // Cursor stage index
	progress   float64 // Fractional progress within the cursor stage [0,1]
	pumpRate   float64 // Pump rate in m3/min
	tankVolume float64 // Operator tank reading override (m3); NaN = use file
	logLevel   string  // Log verbosity level
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "wellsim",
	Short: "Wellbore fluid-displacement and loss-zone simulator",
}

// runCmd replays the well program at the given cursor and prints the derived state
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Replay the pumping program at a cursor position",
	Run: func(cmd *cobra.Command, args []string) {
		// Set up logging
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)

		if wellFile == "" {
			logrus.Fatalf("Well-program file not provided. Exiting simulation.")
		}
		program, err := LoadWellProgram(wellFile)
		if err != nil {
			logrus.Fatalf("Unable to load well program: %v", err)
		}

		if !math.IsNaN(tankVolume) {
			program.Tank.RecordReading(stageIndex, tankVolume)
		}

		logrus.Infof("Replaying %d stages at cursor %d+%.2f, rate=%.2f m3/min, %d loss zones",
			len(program.Stages), stageIndex, progress, pumpRate, len(program.Zones))

		s := &sim.Simulator{
			Geometry:     program.Geometry,
			Depths:       program.Survey,
			Stages:       program.Stages,
			Zones:        program.Zones,
			Cursor:       sim.SimulationCursor{StageIndex: stageIndex, Progress: progress},
			PumpRate:     pumpRate,
			Tank:         program.Tank,
			InitialFluid: program.InitialFluid,
		}
		res := s.Recompute()

		res.Accounting.Print()
		printSegments("String", res.StringSegments)
		printSegments("Annulus", res.AnnulusSegments)
		if len(res.ReturnsSummary) > 0 {
			fmt.Println("=== Surface Returns ===")
			for _, p := range res.ReturnsSummary {
				fmt.Printf("%-12s : %.3f m3\n", p.Name, p.Volume)
			}
		}

		logrus.Info("Simulation complete.")
	},
}

func printSegments(label string, segs []sim.FluidSegment) {
	fmt.Printf("=== %s Column ===\n", label)
	for _, seg := range segs {
		fmt.Printf("%8.1f - %8.1f m : %s (%.0f kg/m3)\n", seg.TopMD, seg.BottomMD, seg.Name, seg.Density)
	}
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	runCmd.Flags().StringVar(&wellFile, "well", "", "Path to the YAML well-program file")
	runCmd.Flags().IntVar(&stageIndex, "stage", 0, "Cursor stage index")
	runCmd.Flags().Float64Var(&progress, "progress", 0, "Fractional progress within the cursor stage (0-1)")
	runCmd.Flags().Float64Var(&pumpRate, "pump-rate", 1.0, "Pump rate in m3/min")
	runCmd.Flags().Float64Var(&tankVolume, "tank-volume", math.NaN(), "Operator tank reading override (m3)")
	runCmd.Flags().StringVar(&logLevel, "log", "error", "Log level (trace, debug, info, warn, error, fatal, panic)")

	// Attach `run` as a subcommand to `root`
	rootCmd.AddCommand(runCmd)
}
