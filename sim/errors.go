// Defines the error taxonomy of the kernel. Every run-time error carries
// the simulated time at which it was raised, which is what makes post-mortem
// debugging of clocked models tractable.

package sim

import (
	"fmt"
	"strings"
)

// ModelError reports construction-time validation failures (duplicate
// names, nil bodies, use after Build). It is fatal to the construction
// attempt only; nothing has started running.
type ModelError struct {
	Issues []string
}

func (e *ModelError) Error() string {
	return fmt.Sprintf("invalid model: %s", strings.Join(e.Issues, "; "))
}

// DriverConflict reports two processes writing different values to the
// same signal within one delta cycle. Non-fatal unless strict mode is
// enabled, in which case the run halts at the end of the delta cycle.
type DriverConflict struct {
	Clock  int64
	Signal string
	First  string // process already driving the signal
	Second string // process whose write collided
}

func (e *DriverConflict) Error() string {
	return fmt.Sprintf("tick %d: multiple drivers on %s: %s and %s",
		e.Clock, e.Signal, e.First, e.Second)
}

// DivergenceError reports a delta cycle that failed to converge within the
// configured iteration ceiling, i.e. a combinational loop. Signals names
// the signals still changing in the last iteration; empty when the loop
// commits no writes.
type DivergenceError struct {
	Clock      int64
	Iterations int
	Signals    []string
}

func (e *DivergenceError) Error() string {
	if len(e.Signals) == 0 {
		// Divergence without committed changes: processes respinning
		// (zero-delay timers, already-true level waits) with no writes.
		return fmt.Sprintf("tick %d: delta cycle did not converge after %d iterations",
			e.Clock, e.Iterations)
	}
	return fmt.Sprintf("tick %d: delta cycle did not converge after %d iterations (still changing: %s)",
		e.Clock, e.Iterations, strings.Join(e.Signals, ", "))
}

// ProcessFault reports an unrecoverable error raised by a process body.
// Fatal to the run; the run stops at the end of the current batch commit.
type ProcessFault struct {
	Clock   int64
	Process string
	Err     error
}

func (e *ProcessFault) Error() string {
	return fmt.Sprintf("tick %d: process %s failed: %v", e.Clock, e.Process, e.Err)
}

func (e *ProcessFault) Unwrap() error { return e.Err }
