package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/delta-sim/delta-sim/sim"
)

func TestKernelConfig_AssemblesFromFlags(t *testing.T) {
	origSeed, origHorizon, origStrict, origIters := seed, simulationHorizon, strictMode, maxDeltaIters
	defer func() {
		seed, simulationHorizon, strictMode, maxDeltaIters = origSeed, origHorizon, origStrict, origIters
	}()

	seed = 7
	simulationHorizon = 1000
	strictMode = true
	maxDeltaIters = 99

	got := kernelConfig()
	want := sim.Config{
		Scheduler: sim.SchedulerConfig{Strict: true, MaxDeltaIterations: 99},
		Run:       sim.RunConfig{Horizon: 1000, Seed: 7},
	}
	assert.Equal(t, want, got)
}
