package sim

import "testing"

func testSignal(name string, init Value) *Signal {
	return &Signal{id: 0, name: name, current: init}
}

func testProcess(name string) *Process {
	return &Process{name: name, readSeen: make(map[SignalID]bool)}
}

func TestSignal_WriteInvisibleUntilCommit(t *testing.T) {
	// GIVEN a signal at 0 with a pending write of 1
	sig := testSignal("s", 0)
	sig.setPending(1, testProcess("p"))

	// WHEN it is read before commit
	// THEN the committed value is still observed
	if got := sig.Read(); got != 0 {
		t.Errorf("Read before commit: got %d, want 0", got)
	}

	// WHEN commit runs
	changed, old := sig.commit()

	// THEN the pending value is published and reported as a change
	if !changed || old != 0 || sig.Read() != 1 {
		t.Errorf("commit: changed=%v old=%d value=%d, want true/0/1", changed, old, sig.Read())
	}
	if sig.ChangeCount() != 1 {
		t.Errorf("ChangeCount: got %d, want 1", sig.ChangeCount())
	}
}

func TestSignal_LastWriterWins(t *testing.T) {
	// GIVEN two writes from the same process in one delta cycle
	sig := testSignal("s", 0)
	p := testProcess("p")
	sig.setPending(1, p)
	sig.setPending(2, p)

	// WHEN the batch commits
	sig.commit()

	// THEN the last write is the published value
	if sig.Read() != 2 {
		t.Errorf("last-writer-wins: got %d, want 2", sig.Read())
	}
}

func TestSignal_SameValueCommitIsNotAChange(t *testing.T) {
	// GIVEN a pending write equal to the current value
	sig := testSignal("s", 5)
	sig.setPending(5, testProcess("p"))

	// WHEN commit runs
	changed, _ := sig.commit()

	// THEN no change is reported and the change counter stays put
	if changed {
		t.Error("commit of identical value reported a change")
	}
	if sig.ChangeCount() != 0 {
		t.Errorf("ChangeCount: got %d, want 0", sig.ChangeCount())
	}
}

func TestSignal_CommitIdempotentWithoutWrite(t *testing.T) {
	// GIVEN a committed write
	sig := testSignal("s", 0)
	sig.setPending(1, testProcess("p"))
	sig.commit()

	// WHEN commit runs again with no intervening write
	changed, _ := sig.commit()

	// THEN nothing happens
	if changed || sig.Read() != 1 || sig.ChangeCount() != 1 {
		t.Errorf("second commit: changed=%v value=%d count=%d", changed, sig.Read(), sig.ChangeCount())
	}
}

func TestSignal_ConflictDetection(t *testing.T) {
	// GIVEN two processes writing different values in one delta cycle
	sig := testSignal("x", 0)
	p1 := testProcess("p1")
	p2 := testProcess("p2")

	// WHEN the second distinct value arrives
	if other := sig.setPending(1, p1); other != nil {
		t.Errorf("first write flagged a conflict with %s", other.name)
	}
	other := sig.setPending(2, p2)

	// THEN the earlier driver is reported
	if other != p1 {
		t.Errorf("conflict: got %v, want p1", other)
	}
}

func TestSignal_SameValueFromSecondDriverIsNoConflict(t *testing.T) {
	// GIVEN two processes writing the same value
	sig := testSignal("x", 0)
	sig.setPending(1, testProcess("p1"))

	// WHEN the second write agrees with the pending value
	other := sig.setPending(1, testProcess("p2"))

	// THEN no conflict is flagged
	if other != nil {
		t.Errorf("agreeing write flagged a conflict with %s", other.name)
	}
}

func TestSignal_WaiterRemovalPreservesOrder(t *testing.T) {
	// GIVEN three registered waiters
	sig := testSignal("s", 0)
	p1, p2, p3 := testProcess("p1"), testProcess("p2"), testProcess("p3")
	sig.addWaiter(edgeWaiter{proc: p1, edge: Rising})
	sig.addWaiter(edgeWaiter{proc: p2, edge: Falling})
	sig.addWaiter(edgeWaiter{proc: p3, edge: AnyChange})

	// WHEN the middle one is removed
	sig.removeWaiter(p2)

	// THEN the remaining waiters keep their registration order
	if len(sig.waiters) != 2 || sig.waiters[0].proc != p1 || sig.waiters[1].proc != p3 {
		t.Errorf("waiters after removal: %v", sig.waiters)
	}
}
