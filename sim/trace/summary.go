package trace

// Summary aggregates statistics from a SimulationTrace.
type Summary struct {
	RunID         string
	TotalCommits  int
	TotalHazards  int
	FinalTime     int64          // clock of the last commit (0 for empty traces)
	UniqueSignals int
	ToggleCounts  map[string]int // signal name → number of committed changes
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *Summary {
	summary := &Summary{
		ToggleCounts: make(map[string]int),
	}
	if st == nil {
		return summary
	}

	summary.RunID = st.RunID
	summary.TotalCommits = len(st.Commits)
	summary.TotalHazards = len(st.Hazards)
	for _, c := range st.Commits {
		summary.ToggleCounts[c.Signal]++
		if c.Clock > summary.FinalTime {
			summary.FinalTime = c.Clock
		}
	}
	summary.UniqueSignals = len(summary.ToggleCounts)

	return summary
}
