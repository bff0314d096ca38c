// Package sim provides the discrete-time container port simulation.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - ship.go: Ship identity, ship classes and the arrival class mix
//   - berth.go: the per-berth operation cycle (mooring -> service -> unmooring)
//   - simulator.go: Run, the one-minute tick, and Step
//
// # Tick order
//
// Each simulated minute runs, in order: weather, arrival, pilotage,
// departures, berths. After the ticks of one Step, every series gets one
// point and maintenance is checked once.
//
// # Key Interfaces
//
//   - RandomSource: every stochastic decision (arrival, class, weather)
//   - BerthScheduler: order the queue before a dispatch (FCFS or class priority)
//
// Sub-packages:
//   - sim/trace/: ship lifecycle trace recording and summary
//   - sim/record/: zstd JSONL snapshot recording
package sim
