package trace

import "testing"

func TestSimulationTrace_RecordsCommitsAtCommitsLevel(t *testing.T) {
	// GIVEN a trace at commits level
	st := NewSimulationTrace(Config{Level: LevelCommits})

	// WHEN a commit and a hazard are recorded
	st.RecordCommit(CommitRecord{Clock: 5, Signal: "clk", Old: 0, New: 1})
	st.RecordHazard(HazardRecord{Clock: 5, Signal: "x", Processes: []string{"a", "b"}})

	// THEN only the commit is kept
	if len(st.Commits) != 1 {
		t.Errorf("commits: got %d, want 1", len(st.Commits))
	}
	if len(st.Hazards) != 0 {
		t.Errorf("hazards: got %d, want 0 at commits level", len(st.Hazards))
	}
}

func TestSimulationTrace_RecordsEverythingAtAllLevel(t *testing.T) {
	st := NewSimulationTrace(Config{Level: LevelAll})
	st.RecordCommit(CommitRecord{Clock: 5, Signal: "clk", Old: 0, New: 1})
	st.RecordHazard(HazardRecord{Clock: 5, Signal: "x", Processes: []string{"a", "b"}})

	if len(st.Commits) != 1 || len(st.Hazards) != 1 {
		t.Errorf("got %d commits, %d hazards; want 1/1", len(st.Commits), len(st.Hazards))
	}
}

func TestSimulationTrace_NoneLevelRecordsNothing(t *testing.T) {
	st := NewSimulationTrace(Config{Level: LevelNone})
	st.RecordCommit(CommitRecord{Clock: 5, Signal: "clk", Old: 0, New: 1})
	st.RecordHazard(HazardRecord{Clock: 5, Signal: "x"})

	if len(st.Commits) != 0 || len(st.Hazards) != 0 {
		t.Errorf("got %d commits, %d hazards; want 0/0", len(st.Commits), len(st.Hazards))
	}
}

func TestSimulationTrace_RunIDsAreUnique(t *testing.T) {
	a := NewSimulationTrace(Config{Level: LevelCommits})
	b := NewSimulationTrace(Config{Level: LevelCommits})
	if a.RunID == "" || a.RunID == b.RunID {
		t.Errorf("run IDs not unique: %q vs %q", a.RunID, b.RunID)
	}
}

func TestIsValidLevel(t *testing.T) {
	for _, level := range []string{"none", "commits", "all", ""} {
		if !IsValidLevel(level) {
			t.Errorf("IsValidLevel(%q): got false, want true", level)
		}
	}
	if IsValidLevel("waveform") {
		t.Error(`IsValidLevel("waveform"): got true, want false`)
	}
}
