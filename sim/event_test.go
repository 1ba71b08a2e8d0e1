package sim

import "testing"

func TestTimerQueue_OrdersByTime(t *testing.T) {
	// GIVEN entries armed out of time order
	var tq timerQueue
	p := testProcess("p")
	tq.schedule(&timerEntry{time: 30, seq: 1, proc: p})
	tq.schedule(&timerEntry{time: 10, seq: 2, proc: p})
	tq.schedule(&timerEntry{time: 20, seq: 3, proc: p})

	// WHEN they are popped
	// THEN they come out in time order
	want := []int64{10, 20, 30}
	for i, wt := range want {
		e := tq.popNext()
		if e.time != wt {
			t.Errorf("pop[%d]: got time %d, want %d", i, e.time, wt)
		}
	}
}

func TestTimerQueue_SameTimeEntriesPopFIFO(t *testing.T) {
	// GIVEN four entries at the same simulated time
	var tq timerQueue
	procs := []*Process{testProcess("a"), testProcess("b"), testProcess("c"), testProcess("d")}
	for i, p := range procs {
		tq.schedule(&timerEntry{time: 5, seq: uint64(i + 1), proc: p})
	}

	// WHEN they are popped
	// THEN arming order is preserved
	for i, p := range procs {
		e := tq.popNext()
		if e.proc != p {
			t.Errorf("pop[%d]: got %s, want %s", i, e.proc.name, p.name)
		}
	}
}

func TestTimerQueue_PeekLiveSkipsStaleEntries(t *testing.T) {
	// GIVEN an entry whose process has resumed since arming
	var tq timerQueue
	stale := testProcess("stale")
	stale.state = StateWaitTimeout
	tq.schedule(&timerEntry{time: 5, seq: 1, proc: stale, generation: stale.generation})
	stale.generation++ // process resumed for another reason

	live := testProcess("live")
	live.state = StateWaitTimeout
	tq.schedule(&timerEntry{time: 9, seq: 2, proc: live, generation: live.generation})

	// WHEN peekLive runs
	head := tq.peekLive()

	// THEN the stale entry is discarded and the live one surfaces
	if head == nil || head.proc != live {
		t.Fatalf("peekLive: got %v, want entry for live", head)
	}
	if tq.Len() != 1 {
		t.Errorf("stale entry not discarded: len=%d", tq.Len())
	}
}

func TestTimerQueue_PeekLiveEmpty(t *testing.T) {
	var tq timerQueue
	if tq.peekLive() != nil {
		t.Error("peekLive on empty queue: got entry, want nil")
	}
}

func TestTimerQueue_TerminatedProcessEntryIsStale(t *testing.T) {
	// GIVEN an entry for a process that has since terminated
	var tq timerQueue
	p := testProcess("p")
	tq.schedule(&timerEntry{time: 5, seq: 1, proc: p, generation: p.generation})
	p.state = StateTerminated

	// WHEN peekLive runs
	// THEN the entry is discarded
	if got := tq.peekLive(); got != nil {
		t.Errorf("peekLive: got entry for %s, want nil", got.proc.name)
	}
}
