// Implements the model construction API. Elaboration is external to the
// kernel: callers declare a static set of signals and processes, then Build
// validates the model and produces a Simulation. No dynamic signal or
// process creation is possible after Build.

package sim

import "fmt"

// Builder accumulates the elaborated model. Single-use: after Build the
// builder is sealed and further declarations panic.
type Builder struct {
	signals []*Signal
	procs   []*Process

	signalNames map[string]bool
	procNames   map[string]bool
	issues      []string
	built       bool
}

// NewBuilder creates an empty model builder.
func NewBuilder() *Builder {
	return &Builder{
		signalNames: make(map[string]bool),
		procNames:   make(map[string]bool),
	}
}

// ProcessOpt configures a process declaration.
type ProcessOpt func(*Process)

// Reads declares the signals the process reads, for the topology export.
// Runtime sensitivity is independent of this declaration.
func Reads(sigs ...*Signal) ProcessOpt {
	return func(p *Process) {
		p.declReads = append(p.declReads, sigs...)
	}
}

// Drives declares the signals the process writes, for the topology export.
func Drives(sigs ...*Signal) ProcessOpt {
	return func(p *Process) {
		p.declDrives = append(p.declDrives, sigs...)
	}
}

// Signal declares a signal with its name and initial value.
func (b *Builder) Signal(name string, init Value) *Signal {
	if b.built {
		panic("sim: Signal declared after Build")
	}
	if name == "" {
		b.issues = append(b.issues, "signal with empty name")
	} else if b.signalNames[name] {
		b.issues = append(b.issues, fmt.Sprintf("duplicate signal name %q", name))
	}
	b.signalNames[name] = true

	sig := &Signal{
		id:      SignalID(len(b.signals)),
		name:    name,
		current: init,
	}
	b.signals = append(b.signals, sig)
	return sig
}

// Process declares a root process. All root processes start Runnable at
// simulated time zero, in declaration order.
func (b *Builder) Process(name string, body ProcessFunc, opts ...ProcessOpt) *Process {
	if b.built {
		panic("sim: Process declared after Build")
	}
	if name == "" {
		b.issues = append(b.issues, "process with empty name")
	} else if b.procNames[name] {
		b.issues = append(b.issues, fmt.Sprintf("duplicate process name %q", name))
	}
	b.procNames[name] = true
	if body == nil {
		b.issues = append(b.issues, fmt.Sprintf("process %q has nil body", name))
	}

	p := &Process{
		id:       ProcessID(len(b.procs)),
		name:     name,
		body:     body,
		state:    StateRunnable,
		readSeen: make(map[SignalID]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	b.procs = append(b.procs, p)
	return p
}

// Build validates the model and produces a single-use Simulation.
// Validation failures are fatal to this construction attempt only: the
// returned *ModelError lists every issue at once.
func (b *Builder) Build(cfg Config) (*Simulation, error) {
	if b.built {
		panic("sim: Build called twice")
	}
	b.built = true

	if len(b.procs) == 0 {
		b.issues = append(b.issues, "model has no processes")
	}
	if len(b.issues) > 0 {
		return nil, &ModelError{Issues: b.issues}
	}

	return &Simulation{
		cfg:     cfg,
		signals: b.signals,
		procs:   b.procs,
		rng:     NewPartitionedRNG(NewSimulationKey(cfg.Run.Seed)),
	}, nil
}
