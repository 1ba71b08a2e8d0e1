// Defines the Signal struct: the named memory cell processes communicate
// through. A signal holds a committed current value and, between a process
// write and the scheduler's batch commit, a pending next value.

package sim

import "fmt"

// SignalID is the arena index of a signal inside its Simulation.
type SignalID int

// edgeWaiter records one suspended process waiting on this signal.
// Either edge-qualified (level == nil) or level-qualified (level != nil,
// checked against the committed value on every change).
type edgeWaiter struct {
	proc  *Process
	edge  Edge
	level func(Value) bool
}

// Signal is a single communication cell in the elaborated model.
// Reads always return the committed value; writes park a pending value
// that becomes visible only when the scheduler commits the whole batch.
type Signal struct {
	id   SignalID
	name string

	current Value

	// Write-side state, valid only between write and commit.
	pending    Value
	hasPending bool
	drivers    []*Process // distinct writers this delta cycle, in write order

	// Waiters in registration order. A process appears at most once.
	waiters []edgeWaiter

	changeCount uint64
}

// ID returns the signal's arena index.
func (s *Signal) ID() SignalID { return s.id }

// Name returns the signal's elaboration-time name.
func (s *Signal) Name() string { return s.name }

// Read returns the committed value. Never blocks and never observes
// a pending write from the current delta cycle.
func (s *Signal) Read() Value { return s.current }

// ChangeCount returns the number of value-changing commits so far.
func (s *Signal) ChangeCount() uint64 { return s.changeCount }

func (s *Signal) String() string {
	return fmt.Sprintf("%s=%d", s.name, s.current)
}

// setPending stores a pending next value on behalf of proc.
// Multiple writes in one delta cycle are legal; the last one wins.
// Returns the previous distinct-value writer when proc conflicts with
// another driver, so the scheduler can report the hazard.
func (s *Signal) setPending(v Value, proc *Process) (conflicting *Process) {
	if s.hasPending && s.pending != v {
		for _, d := range s.drivers {
			if d != proc {
				conflicting = d
				break
			}
		}
	}
	s.pending = v
	s.hasPending = true
	seen := false
	for _, d := range s.drivers {
		if d == proc {
			seen = true
			break
		}
	}
	if !seen {
		s.drivers = append(s.drivers, proc)
	}
	return conflicting
}

// commit publishes the pending value. Scheduler-only: this is the single
// mutator of the committed value. Calling it twice without an intervening
// write is a no-op. A pending value equal to the current value clears the
// write-side state without counting as a change.
func (s *Signal) commit() (changed bool, old Value) {
	old = s.current
	if !s.hasPending {
		return false, old
	}
	next := s.pending
	s.hasPending = false
	s.drivers = s.drivers[:0]
	if next == s.current {
		return false, old
	}
	s.current = next
	s.changeCount++
	return true, old
}

// addWaiter registers proc at the back of the waiter set.
func (s *Signal) addWaiter(w edgeWaiter) {
	s.waiters = append(s.waiters, w)
}

// removeWaiter drops proc from the waiter set, preserving the order of
// the remaining entries.
func (s *Signal) removeWaiter(proc *Process) {
	kept := s.waiters[:0]
	for _, w := range s.waiters {
		if w.proc != proc {
			kept = append(kept, w)
		}
	}
	s.waiters = kept
}
