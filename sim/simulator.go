// sim/simulator.go
package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/delta-sim/delta-sim/sim/trace"
)

// RunStatus is the terminal status of a simulation run.
type RunStatus int

const (
	// StatusCompleted: natural quiescence, no timed entries and no
	// runnable process remained.
	StatusCompleted RunStatus = iota
	// StatusStoppedByRequest: Stop was called from a process body or
	// externally.
	StatusStoppedByRequest
	// StatusStoppedByTimeLimit: the next timed entry lay beyond the
	// configured horizon.
	StatusStoppedByTimeLimit
	// StatusFailed: a process fault, divergence, or strict-mode driver
	// conflict halted the run.
	StatusFailed
)

func (s RunStatus) String() string {
	switch s {
	case StatusCompleted:
		return "completed"
	case StatusStoppedByRequest:
		return "stopped-by-request"
	case StatusStoppedByTimeLimit:
		return "stopped-by-time-limit"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result summarizes a finished run.
type Result struct {
	Status      RunStatus
	FinalTime   int64 // simulated time at which the run ended (ticks)
	Commits     uint64
	DeltaCycles uint64
	Err         error // non-nil iff Status == StatusFailed
}

// CommitEvent is the change notification delivered to observers on every
// value-changing signal commit.
type CommitEvent struct {
	Clock  int64
	Signal *Signal
	Old    Value
	New    Value
}

// CommitObserver receives commit notifications. Observers must not block;
// a panicking observer is logged and the event is skipped, it never aborts
// the simulation.
type CommitObserver func(CommitEvent)

// Simulation is the core object that holds simulated time, the elaborated
// model, and the event loop. Build one with a Builder; it is single-use.
//
// Scheduling is strictly single-threaded and cooperative: process bodies
// never run in parallel, and all determinism rests on the FIFO run queue,
// the stable timer queue and the batch-commit discipline.
type Simulation struct {
	Clock int64

	cfg     Config
	signals []*Signal
	procs   []*Process

	runq     RunQueue   // delta layer: processes runnable at the current time
	timers   timerQueue // future layer: pending timeout wake-ups
	timerSeq uint64

	// Signals holding a pending write this delta cycle, in first-write
	// order. Drained by the batch commit.
	dirty []*Signal

	// First driver conflict of the current delta cycle; fatal in strict
	// mode once the batch commit has finished.
	deltaConflict *DriverConflict
	hazards       []*DriverConflict

	observers []CommitObserver
	tr        *trace.SimulationTrace
	rng       *PartitionedRNG

	started       bool
	stopRequested bool
	status        RunStatus

	commitCount uint64
	deltaCount  uint64

	// Delta iterations at the current simulated time, accumulated across
	// settle rounds separated only by zero-delay timer wake-ups. Reset
	// when the clock advances; checked against the divergence ceiling.
	stepIters int
}

// Now returns the current simulated time in ticks.
func (s *Simulation) Now() int64 { return s.Clock }

// Status returns the run status. Meaningful only after Run returns;
// before that it reports StatusCompleted.
func (s *Simulation) Status() RunStatus { return s.status }

// Hazards returns the driver conflicts recorded so far, in detection order.
func (s *Simulation) Hazards() []*DriverConflict { return s.hazards }

// Observe registers a commit observer. Must be called before Run.
func (s *Simulation) Observe(fn CommitObserver) {
	s.observers = append(s.observers, fn)
}

// SetTrace attaches a trace recorder that receives a record per commit and
// per hazard. Must be called before Run.
func (s *Simulation) SetTrace(tr *trace.SimulationTrace) {
	s.tr = tr
}

// Stop requests termination. Callable from a process body (via
// ExecContext.Stop) or externally. Takes effect at the end of the current
// delta cycle, after the batch commit, never mid-cycle.
func (s *Simulation) Stop() {
	s.stopRequested = true
}

// Run drives the simulation to completion: delta-cycle convergence at the
// current time, then time advance to the earliest timed entry, repeated
// until a stop request, the horizon, natural quiescence, or a fatal error.
func (s *Simulation) Run() Result {
	if s.started {
		panic("sim: Run called twice on the same Simulation")
	}
	s.started = true

	logrus.Infof("[tick %07d] starting simulation: %d signals, %d processes",
		s.Clock, len(s.signals), len(s.procs))

	// All root processes start Runnable at time zero, in elaboration order.
	for _, p := range s.procs {
		p.wake = Wake{Cause: WakeStart}
		s.runq.Enqueue(p)
	}

	for {
		if err := s.settle(); err != nil {
			return s.finish(StatusFailed, err)
		}
		if s.stopRequested {
			return s.finish(StatusStoppedByRequest, nil)
		}

		next := s.timers.peekLive()
		if next == nil {
			// Natural quiescence: no runnable process, no timed entry.
			return s.finish(StatusCompleted, nil)
		}
		if s.cfg.Run.Horizon > 0 && next.time > s.cfg.Run.Horizon {
			s.Clock = s.cfg.Run.Horizon
			return s.finish(StatusStoppedByTimeLimit, nil)
		}

		// Advance time and activate every live entry at the new time,
		// in arming order. They feed the next delta cycle together.
		// A zero-delay timer leaves the clock in place; its wake-up
		// continues the current time step's iteration budget rather than
		// resetting it, so a zero-delay respin loop trips the divergence
		// ceiling instead of spinning forever below the horizon.
		if next.time > s.Clock {
			s.Clock = next.time
			s.stepIters = 0
			logrus.Debugf("[tick %07d] time advance", s.Clock)
		}
		for {
			e := s.timers.peekLive()
			if e == nil || e.time != s.Clock {
				break
			}
			s.timers.popNext()
			s.wakeProcess(e.proc, Wake{Cause: WakeTimeout})
		}
	}
}

// finish tears the run down and builds the Result. All processes are
// marked Terminated and both queue layers are drained.
func (s *Simulation) finish(status RunStatus, err error) Result {
	s.status = status
	for _, p := range s.procs {
		if p.state != StateTerminated {
			s.terminate(p)
		}
	}
	for s.runq.Len() > 0 {
		s.runq.Dequeue()
	}
	s.timers = s.timers[:0]

	if err != nil {
		logrus.Errorf("[tick %07d] simulation failed: %v", s.Clock, err)
	} else {
		logrus.Infof("[tick %07d] simulation ended: %s", s.Clock, status)
	}
	return Result{
		Status:      status,
		FinalTime:   s.Clock,
		Commits:     s.commitCount,
		DeltaCycles: s.deltaCount,
		Err:         err,
	}
}

// wakeProcess resumes a suspended process: it leaves every waiter set
// immediately (no duplicate wake-ups within the delta cycle), its pending
// timer entries are invalidated, and it joins the back of the run queue.
func (s *Simulation) wakeProcess(p *Process, wake Wake) {
	p.generation++
	p.detach()
	p.state = StateRunnable
	p.wake = wake
	s.runq.Enqueue(p)
}

// terminate force-terminates a process: off every waiter set, timers
// invalidated, never reactivated. No cancellation signal is broadcast.
func (s *Simulation) terminate(p *Process) {
	p.generation++
	p.detach()
	p.state = StateTerminated
}

// armTimer schedules a timeout wake-up for p at Clock+delay.
// A non-positive delay fires at the current time, i.e. after the current
// delta activity quiesces it is the nearest timed entry.
func (s *Simulation) armTimer(p *Process, delay int64) {
	if delay < 0 {
		delay = 0
	}
	s.timerSeq++
	s.timers.schedule(&timerEntry{
		time:       s.Clock + delay,
		seq:        s.timerSeq,
		proc:       p,
		generation: p.generation,
	})
}

// notifyCommit fans a committed transition out to observers and the trace
// recorder. Best-effort: observer panics are logged, never propagated.
func (s *Simulation) notifyCommit(sig *Signal, old Value) {
	if s.tr != nil {
		s.tr.RecordCommit(trace.CommitRecord{
			Clock:  s.Clock,
			Signal: sig.name,
			Old:    int64(old),
			New:    int64(sig.current),
		})
	}
	for _, fn := range s.observers {
		s.safeNotify(fn, CommitEvent{Clock: s.Clock, Signal: sig, Old: old, New: sig.current})
	}
}

// trHazard converts a DriverConflict to its trace record form.
func trHazard(hz *DriverConflict) trace.HazardRecord {
	return trace.HazardRecord{
		Clock:     hz.Clock,
		Signal:    hz.Signal,
		Processes: []string{hz.First, hz.Second},
	}
}

func (s *Simulation) safeNotify(fn CommitObserver, ev CommitEvent) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Warnf("[tick %07d] commit observer panicked: %v", s.Clock, r)
		}
	}()
	fn(ev)
}
