// Package sim provides the core wellbore fluid-displacement simulation engine.
//
// # Reading Guide
//
// Start with these three files to understand the engine:
//   - parcel.go: the Parcel value type, a volume-bounded slug of one fluid
//   - column.go: the capacity-bounded FIFO column used for the string and annulus
//   - simulator.go: the full recompute pass that replays the stage program
//
// # Architecture
//
// The engine is single-threaded and synchronous. Every observable mutation
// (cursor movement, pump-rate change, loss-zone edit, tank override) triggers
// one full blocking recompute that replays the entire stage list from stage 0.
// There is no incremental update path and no state carried between passes
// other than the stage program, loss-zone set, cursor, pump rate and tank
// reading, all of which are pure inputs to Recompute.
//
// # Key Interfaces
//
// Geometry is injected; the engine's correctness depends only on monotonicity
// of the geometry functions in depth:
//   - GeometryProvider: string/annulus volumes between depths, annulus sections
//   - DepthConverter: measured depth to true vertical depth
//   - FracPressureLookup: fracture pressure at a true vertical depth
//
// wellpath.go carries the sectional implementations used by the CLI and tests.
package sim
