// Package trace provides commit-trace recording for waveform export and
// post-mortem analysis. This package has no dependencies on sim/ — it
// stores pure data types.
package trace

// CommitRecord captures one committed signal transition.
type CommitRecord struct {
	Clock  int64
	Signal string
	Old    int64
	New    int64
}

// HazardRecord captures a multiple-driver conflict.
type HazardRecord struct {
	Clock     int64
	Signal    string
	Processes []string // offending process names, detection order
}
