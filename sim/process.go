// Defines the Process struct that models a suspendable unit of sequential
// logic, its suspension-state machine, and the Suspend directives a process
// body returns at each suspension point.
//
// Process bodies in the source ecosystem are interpreter coroutines; here
// each body is an explicit resumable function: the scheduler calls it once
// per execution segment and the returned Suspend directive tells the
// scheduler how to re-register the process. Local state between segments
// lives in the body's closure.

package sim

import "fmt"

// ProcessID is the arena index of a process inside its Simulation.
type ProcessID int

// ProcessState is the suspension state of a process.
// A process is in exactly one state at any time.
type ProcessState int

const (
	// StateRunnable: scheduled for execution in the current delta cycle.
	StateRunnable ProcessState = iota
	// StateWaitEdge: suspended on one or more signal edges
	// (possibly with an armed timeout racing the edges).
	StateWaitEdge
	// StateWaitLevel: suspended until a signal's committed value
	// satisfies a predicate.
	StateWaitLevel
	// StateWaitTimeout: suspended on the passage of simulated time only.
	StateWaitTimeout
	// StateTerminated: body completed or force-terminated; never reactivated.
	StateTerminated
)

func (s ProcessState) String() string {
	switch s {
	case StateRunnable:
		return "runnable"
	case StateWaitEdge:
		return "wait-edge"
	case StateWaitLevel:
		return "wait-level"
	case StateWaitTimeout:
		return "wait-timeout"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("ProcessState(%d)", int(s))
	}
}

// WakeCause identifies what resumed a suspended process.
type WakeCause int

const (
	// WakeStart: first activation at simulated time zero.
	WakeStart WakeCause = iota
	// WakeEdge: a watched signal committed a matching transition.
	WakeEdge
	// WakeLevel: a watched signal's committed value satisfied the predicate.
	WakeLevel
	// WakeTimeout: the armed timeout expired.
	WakeTimeout
)

func (c WakeCause) String() string {
	switch c {
	case WakeStart:
		return "start"
	case WakeEdge:
		return "edge"
	case WakeLevel:
		return "level"
	case WakeTimeout:
		return "timeout"
	default:
		return fmt.Sprintf("WakeCause(%d)", int(c))
	}
}

// Wake describes why the current execution segment was entered.
// Signal is non-nil for WakeEdge and WakeLevel.
type Wake struct {
	Cause  WakeCause
	Signal *Signal
}

// ProcessFunc is one execution segment of a process body. The scheduler
// calls it each time the process resumes; it runs without suspension to the
// next suspension point and returns the Suspend directive for that point.
// A non-nil error is a process fault and fails the whole run.
type ProcessFunc func(ctx *ExecContext) (Suspend, error)

// suspendKind tags the Suspend variants.
type suspendKind int

const (
	suspendEdge suspendKind = iota
	suspendLevel
	suspendTimeout
	suspendAnyRead
	suspendDone
)

// EdgeWait is one (signal, edge) entry in a sensitivity list.
type EdgeWait struct {
	Signal *Signal
	Edge   Edge
}

// Posedge waits for a rising edge of sig.
func Posedge(sig *Signal) EdgeWait { return EdgeWait{Signal: sig, Edge: Rising} }

// Negedge waits for a falling edge of sig.
func Negedge(sig *Signal) EdgeWait { return EdgeWait{Signal: sig, Edge: Falling} }

// Changed waits for any value change of sig.
func Changed(sig *Signal) EdgeWait { return EdgeWait{Signal: sig, Edge: AnyChange} }

// Suspend is the directive a process body returns at a suspension point.
// Construct it with OnEdge, OnLevel, After, OnAnyRead or Done; the zero
// value is not meaningful.
type Suspend struct {
	kind       suspendKind
	edges      []EdgeWait
	timeout    int64
	hasTimeout bool
	levelSig   *Signal
	levelPred  func(Value) bool
}

// OnEdge suspends until the first matching transition among waits commits.
// Multiple waits on the same signal (even with different edge directions)
// are legal; the first match wins.
func OnEdge(waits ...EdgeWait) Suspend {
	return Suspend{kind: suspendEdge, edges: waits}
}

// WithTimeout arms a timeout racing the edge waits: the process resumes on
// whichever fires first. Only meaningful on an OnEdge suspension.
func (s Suspend) WithTimeout(delay int64) Suspend {
	s.timeout = delay
	s.hasTimeout = true
	return s
}

// OnLevel suspends until pred holds for sig's committed value. The predicate
// is checked immediately at the suspension point: if it already holds the
// process does not suspend and runs again in the next delta iteration.
func OnLevel(sig *Signal, pred func(Value) bool) Suspend {
	return Suspend{kind: suspendLevel, levelSig: sig, levelPred: pred}
}

// After suspends for a fixed simulated-time delay with no signal dependency.
func After(delay int64) Suspend {
	return Suspend{kind: suspendTimeout, timeout: delay, hasTimeout: true}
}

// OnAnyRead suspends until any signal read during the segment that just
// finished commits a change. This is the combinational (non-clocked) wait:
// the sensitivity list is inferred from the segment's reads.
func OnAnyRead() Suspend {
	return Suspend{kind: suspendAnyRead}
}

// Done terminates the process. Writes made in the final segment still
// commit with the batch.
func Done() Suspend {
	return Suspend{kind: suspendDone}
}

// Process is one suspendable unit of sequential logic. All fields are
// owned by the scheduler; external callers interact with processes only
// through the Builder and Topology APIs.
type Process struct {
	id    ProcessID
	name  string
	body  ProcessFunc
	state ProcessState

	// Signals whose waiter sets currently contain this process.
	// Cleared the instant the process resumes.
	watching []*Signal

	// Read set of the last execution segment, in first-read order.
	// Consumed by OnAnyRead.
	reads    []*Signal
	readSeen map[SignalID]bool

	// generation increments on every resume and termination; a timed
	// wake-up entry carrying a stale generation is ignored, which is how
	// an edge win cancels the losing timeout of a mixed wait.
	generation uint64

	wake Wake

	// Declared topology (elaboration-time, optional). Runtime behavior
	// does not depend on these; they only feed the export traversal.
	declReads  []*Signal
	declDrives []*Signal
}

// ID returns the process's arena index.
func (p *Process) ID() ProcessID { return p.id }

// Name returns the process's elaboration-time name.
func (p *Process) Name() string { return p.name }

// State returns the current suspension state.
func (p *Process) State() ProcessState { return p.state }

func (p *Process) String() string {
	return fmt.Sprintf("%s[%s]", p.name, p.state)
}

// noteRead records a signal read for combinational sensitivity inference.
func (p *Process) noteRead(s *Signal) {
	if p.readSeen[s.id] {
		return
	}
	p.readSeen[s.id] = true
	p.reads = append(p.reads, s)
}

// clearReads resets the read set before a new execution segment.
func (p *Process) clearReads() {
	p.reads = p.reads[:0]
	for id := range p.readSeen {
		delete(p.readSeen, id)
	}
}

// detach removes the process from every waiter set it registered on.
// Must run the instant the process resumes or terminates so a second
// matching commit in the same delta cycle cannot wake it twice.
func (p *Process) detach() {
	for _, s := range p.watching {
		s.removeWaiter(p)
	}
	p.watching = p.watching[:0]
}
