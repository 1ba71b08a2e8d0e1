package sim

// DefaultMaxDeltaIterations bounds delta-cycle convergence per time step.
// Any acyclic model converges in at most its longest combinational chain;
// hitting this ceiling means a combinational loop.
const DefaultMaxDeltaIterations = 10000

// SchedulerConfig groups delta-cycle scheduler parameters.
type SchedulerConfig struct {
	Strict             bool // escalate multiple-driver conflicts to fatal errors
	MaxDeltaIterations int  // divergence ceiling per time step (0 = default)
}

// RunConfig groups top-level run parameters.
type RunConfig struct {
	Horizon int64 // simulated-time limit in ticks (0 = unbounded)
	Seed    int64 // master seed for random stimulus processes
}

// Config is the full kernel configuration.
type Config struct {
	Scheduler SchedulerConfig
	Run       RunConfig
}

// NewSchedulerConfig creates a SchedulerConfig.
func NewSchedulerConfig(strict bool, maxDeltaIterations int) SchedulerConfig {
	return SchedulerConfig{
		Strict:             strict,
		MaxDeltaIterations: maxDeltaIterations,
	}
}

// NewRunConfig creates a RunConfig.
func NewRunConfig(horizon int64, seed int64) RunConfig {
	return RunConfig{
		Horizon: horizon,
		Seed:    seed,
	}
}

// NewConfig creates a Config from its parts.
func NewConfig(scheduler SchedulerConfig, run RunConfig) Config {
	return Config{
		Scheduler: scheduler,
		Run:       run,
	}
}

// DefaultConfig returns a non-strict, unbounded-horizon configuration.
func DefaultConfig() Config {
	return Config{
		Scheduler: SchedulerConfig{
			Strict:             false,
			MaxDeltaIterations: DefaultMaxDeltaIterations,
		},
		Run: RunConfig{
			Horizon: 0,
			Seed:    42,
		},
	}
}

// maxDeltaIterations resolves the configured ceiling, applying the default.
func (c SchedulerConfig) maxDeltaIterations() int {
	if c.MaxDeltaIterations <= 0 {
		return DefaultMaxDeltaIterations
	}
	return c.MaxDeltaIterations
}
