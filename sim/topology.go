// Implements the read-only traversal over the static signal/process graph,
// consumed by external exporters (netlist generators, documentation tools).
// Topology exposes elaboration-time structure only, never runtime state.

package sim

// SignalInfo describes one signal node of the static graph.
type SignalInfo struct {
	ID      SignalID
	Name    string
	Readers []string // names of processes declaring a read of this signal
	Drivers []string // names of processes declaring a drive of this signal
}

// ProcessInfo describes one process node of the static graph.
type ProcessInfo struct {
	ID     ProcessID
	Name   string
	Reads  []string // declared read signal names
	Drives []string // declared driven signal names
}

// Topology is an immutable snapshot of the elaborated graph.
type Topology struct {
	signals   []SignalInfo
	processes []ProcessInfo
}

// Topology builds the snapshot from the model's declarations. Safe to call
// at any point; the static graph never changes during a run.
func (s *Simulation) Topology() *Topology {
	readers := make(map[SignalID][]string)
	drivers := make(map[SignalID][]string)

	procs := make([]ProcessInfo, 0, len(s.procs))
	for _, p := range s.procs {
		info := ProcessInfo{ID: p.id, Name: p.name}
		for _, sig := range p.declReads {
			info.Reads = append(info.Reads, sig.name)
			readers[sig.id] = append(readers[sig.id], p.name)
		}
		for _, sig := range p.declDrives {
			info.Drives = append(info.Drives, sig.name)
			drivers[sig.id] = append(drivers[sig.id], p.name)
		}
		procs = append(procs, info)
	}

	sigs := make([]SignalInfo, 0, len(s.signals))
	for _, sig := range s.signals {
		sigs = append(sigs, SignalInfo{
			ID:      sig.id,
			Name:    sig.name,
			Readers: readers[sig.id],
			Drivers: drivers[sig.id],
		})
	}

	return &Topology{signals: sigs, processes: procs}
}

// Signals returns the signal nodes in elaboration order.
func (t *Topology) Signals() []SignalInfo {
	out := make([]SignalInfo, len(t.signals))
	copy(out, t.signals)
	return out
}

// Processes returns the process nodes in elaboration order.
func (t *Topology) Processes() []ProcessInfo {
	out := make([]ProcessInfo, len(t.processes))
	copy(out, t.processes)
	return out
}

// WalkSignals visits every signal node in elaboration order.
func (t *Topology) WalkSignals(fn func(SignalInfo)) {
	for _, s := range t.signals {
		fn(s)
	}
}

// WalkProcesses visits every process node in elaboration order.
func (t *Topology) WalkProcesses(fn func(ProcessInfo)) {
	for _, p := range t.processes {
		fn(p)
	}
}
