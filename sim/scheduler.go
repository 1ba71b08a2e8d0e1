// Implements the delta-cycle scheduler: the loop that brings the model to
// a fixed point at a single simulated time. One delta cycle is
//
//  1. run every currently Runnable process to its next suspension point,
//  2. batch-commit all pending signal writes,
//  3. wake the waiters matching the committed transitions,
//
// repeated until no process becomes Runnable. Reads during step 1 observe
// only pre-commit values: processes read old values, compute new values,
// and the scheduler publishes the new values together.

package sim

import (
	"math/rand"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ExecContext is the capability a process body receives for one execution
// segment. All signal access from process code goes through it: reads are
// recorded for combinational sensitivity inference, writes are parked as
// pending values for the batch commit.
type ExecContext struct {
	sim  *Simulation
	proc *Process
}

// Now returns the current simulated time in ticks.
func (ctx *ExecContext) Now() int64 { return ctx.sim.Clock }

// Wake reports what resumed this segment (start, edge, level or timeout).
func (ctx *ExecContext) Wake() Wake { return ctx.proc.wake }

// Read returns sig's committed value and records the read for a later
// OnAnyRead suspension.
func (ctx *ExecContext) Read(sig *Signal) Value {
	ctx.proc.noteRead(sig)
	return sig.current
}

// Write parks v as sig's pending next value. It never blocks and has no
// visible effect until the batch commit at the end of the delta cycle.
// Last writer wins; a second process driving a different value is recorded
// as a multiple-driver hazard.
func (ctx *ExecContext) Write(sig *Signal, v Value) {
	s := ctx.sim
	wasDirty := sig.hasPending
	if other := sig.setPending(v, ctx.proc); other != nil {
		s.recordConflict(sig, other, ctx.proc)
	}
	if !wasDirty {
		s.dirty = append(s.dirty, sig)
	}
}

// Rand returns this process's deterministic random source, derived from
// the run seed and the process name. Used by random stimulus bodies.
func (ctx *ExecContext) Rand() *rand.Rand {
	return ctx.sim.rng.Get(SubsystemProcess(ctx.proc.name))
}

// Stop requests a simulation stop at the end of the current delta cycle.
func (ctx *ExecContext) Stop() { ctx.sim.Stop() }

// recordConflict registers a multiple-driver hazard. Non-fatal here even in
// strict mode: escalation happens after the batch commit so the invariant
// "the run stops only at a delta-cycle boundary" holds.
func (s *Simulation) recordConflict(sig *Signal, first, second *Process) {
	hz := &DriverConflict{
		Clock:  s.Clock,
		Signal: sig.name,
		First:  first.name,
		Second: second.name,
	}
	s.hazards = append(s.hazards, hz)
	if s.deltaConflict == nil {
		s.deltaConflict = hz
	}
	if s.tr != nil {
		s.tr.RecordHazard(trHazard(hz))
	}
	logrus.Warnf("%v", hz)
}

// changedSignal pairs a committed signal with its pre-commit value.
type changedSignal struct {
	sig *Signal
	old Value
}

// settle runs delta cycles at the current simulated time until quiescence.
// Returns a fatal error on process fault, strict-mode conflict, or
// divergence past the configured iteration ceiling. The iteration count
// lives on the Simulation and survives zero-delay timer wake-ups at the
// same clock, so all activity at one simulated time shares one budget.
func (s *Simulation) settle() error {
	maxIters := s.cfg.Scheduler.maxDeltaIterations()
	var lastChanged []changedSignal

	for s.runq.Len() > 0 {
		s.stepIters++
		s.deltaCount++
		if s.stepIters > maxIters {
			names := make([]string, 0, len(lastChanged))
			for _, c := range lastChanged {
				names = append(names, c.sig.name)
			}
			return &DivergenceError{Clock: s.Clock, Iterations: s.stepIters - 1, Signals: names}
		}

		s.deltaConflict = nil

		// Step 1: run the current runnable batch in FIFO order. Processes
		// woken during this iteration run in the next one. On a fault the
		// rest of the batch is not resumed, but the batch commit below
		// still runs: the run stops at the commit boundary.
		n := s.runq.Len()
		var fault error
		for i := 0; i < n && fault == nil; i++ {
			p := s.runq.Dequeue()
			if p.state != StateRunnable {
				continue
			}
			fault = s.execute(p)
		}

		// Step 2: batch commit.
		changed := s.commitBatch()
		lastChanged = changed

		// Step 3: wake matching waiters, feeding the next iteration.
		s.wakeWaiters(changed)

		if fault != nil {
			return fault
		}
		if s.cfg.Scheduler.Strict && s.deltaConflict != nil {
			return errors.Wrap(s.deltaConflict, "strict mode")
		}
		if s.stopRequested {
			return nil
		}
	}
	return nil
}

// execute runs one segment of p and applies the returned suspension.
func (s *Simulation) execute(p *Process) error {
	p.clearReads()
	logrus.Debugf("[tick %07d] running %s (wake: %s)", s.Clock, p.name, p.wake.Cause)

	ctx := ExecContext{sim: s, proc: p}
	sus, err := p.body(&ctx)
	if err != nil {
		s.terminate(p)
		return &ProcessFault{Clock: s.Clock, Process: p.name, Err: err}
	}
	return s.applySuspend(p, sus)
}

// applySuspend re-registers p's sensitivity according to the directive
// returned by its body.
func (s *Simulation) applySuspend(p *Process, sus Suspend) error {
	switch sus.kind {
	case suspendDone:
		s.terminate(p)

	case suspendTimeout:
		p.state = StateWaitTimeout
		s.armTimer(p, sus.timeout)

	case suspendEdge:
		if len(sus.edges) == 0 && !sus.hasTimeout {
			// No sensitivity and no further way to run: the process is done.
			s.terminate(p)
			return nil
		}
		p.state = StateWaitEdge
		for _, ew := range sus.edges {
			if ew.Signal == nil {
				s.terminate(p)
				return &ProcessFault{
					Clock:   s.Clock,
					Process: p.name,
					Err:     errors.New("edge wait on nil signal"),
				}
			}
			s.watch(p, ew.Signal, edgeWaiter{proc: p, edge: ew.Edge})
		}
		if sus.hasTimeout {
			s.armTimer(p, sus.timeout)
		}

	case suspendLevel:
		if sus.levelSig == nil || sus.levelPred == nil {
			s.terminate(p)
			return &ProcessFault{
				Clock:   s.Clock,
				Process: p.name,
				Err:     errors.New("level wait without signal or predicate"),
			}
		}
		if sus.levelPred(sus.levelSig.current) {
			// Already satisfied: do not suspend. The process runs again in
			// the next delta iteration.
			p.generation++
			p.wake = Wake{Cause: WakeLevel, Signal: sus.levelSig}
			s.runq.Enqueue(p)
			return nil
		}
		p.state = StateWaitLevel
		s.watch(p, sus.levelSig, edgeWaiter{proc: p, level: sus.levelPred})

	case suspendAnyRead:
		if len(p.reads) == 0 {
			// A combinational wait with an empty read set can never fire.
			s.terminate(p)
			return nil
		}
		p.state = StateWaitEdge
		for _, sig := range p.reads {
			s.watch(p, sig, edgeWaiter{proc: p, edge: AnyChange})
		}

	default:
		s.terminate(p)
		return &ProcessFault{
			Clock:   s.Clock,
			Process: p.name,
			Err:     errors.Errorf("invalid suspend directive %d", sus.kind),
		}
	}
	return nil
}

// watch registers p on sig's waiter set and records the registration on p
// so a resume can drop it from every set at once.
func (s *Simulation) watch(p *Process, sig *Signal, w edgeWaiter) {
	sig.addWaiter(w)
	for _, ws := range p.watching {
		if ws == sig {
			return
		}
	}
	p.watching = append(p.watching, sig)
}

// commitBatch publishes all pending writes of the delta cycle together and
// emits change notifications. Signals commit in first-write order, which
// fixes the notification order across runs.
func (s *Simulation) commitBatch() []changedSignal {
	var changed []changedSignal
	for _, sig := range s.dirty {
		ok, old := sig.commit()
		if !ok {
			// Pending value equal to current: no transition, no wake-ups.
			continue
		}
		s.commitCount++
		logrus.Debugf("[tick %07d] commit %s: %d -> %d", s.Clock, sig.name, old, sig.current)
		changed = append(changed, changedSignal{sig: sig, old: old})
		s.notifyCommit(sig, old)
	}
	s.dirty = s.dirty[:0]
	return changed
}

// wakeWaiters marks Runnable every waiter matching a committed transition.
// Waiters wake in commit order, then registration order within a signal.
// A process already woken by an earlier signal in the same step is no
// longer waiting and is skipped, so one delta cycle wakes it at most once.
func (s *Simulation) wakeWaiters(changed []changedSignal) {
	for _, c := range changed {
		waiters := make([]edgeWaiter, len(c.sig.waiters))
		copy(waiters, c.sig.waiters)
		for _, w := range waiters {
			if w.proc.state != StateWaitEdge && w.proc.state != StateWaitLevel {
				continue
			}
			if w.level != nil {
				if w.level(c.sig.current) {
					s.wakeProcess(w.proc, Wake{Cause: WakeLevel, Signal: c.sig})
				}
				continue
			}
			if w.edge.Matches(c.old, c.sig.current) {
				s.wakeProcess(w.proc, Wake{Cause: WakeEdge, Signal: c.sig})
			}
		}
	}
}
