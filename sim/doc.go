// Package sim provides the discrete-event simulation kernel for delta-sim.
//
// # Reading Guide
//
// Start with these three files to understand the kernel:
//   - signal.go: the Signal cell, pending-write vs. committed value, waiter sets
//   - process.go: the Process state machine and the Suspend directives
//   - scheduler.go: the delta-cycle loop (run, batch commit, wake)
//
// # Architecture
//
// The kernel executes a model that has already been elaborated into a
// static graph of signals and processes (see builder.go). One simulated
// time step is a sequence of delta cycles: every runnable process runs to
// its next suspension point, all pending signal writes commit together,
// and the waiters matching the committed transitions become runnable.
// When a time step quiesces, simulated time advances to the earliest timed
// wake-up (event.go) and the cycle repeats (simulator.go).
//
// Scheduling is single-threaded and cooperative; determinism is a
// contract: a fixed model with a fixed seed reproduces its commit sequence
// bit for bit. The sub-package sim/trace records that sequence for
// external consumers (waveform writers, golden tests).
package sim
