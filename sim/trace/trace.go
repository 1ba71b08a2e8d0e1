package trace

import "github.com/google/uuid"

// Level controls the verbosity of trace recording.
type Level string

const (
	// LevelNone disables recording (zero overhead).
	LevelNone Level = "none"
	// LevelCommits captures every committed signal transition.
	LevelCommits Level = "commits"
	// LevelAll captures commits and hazards.
	LevelAll Level = "all"
)

// validLevels maps accepted trace level strings.
var validLevels = map[Level]bool{
	LevelNone:    true,
	LevelCommits: true,
	LevelAll:     true,
	"":           true, // empty defaults to none
}

// IsValidLevel returns true if the given level string is recognized.
func IsValidLevel(level string) bool {
	return validLevels[Level(level)]
}

// Config controls trace collection behavior.
type Config struct {
	Level Level
}

// SimulationTrace collects commit and hazard records during a run.
// Each trace carries a unique run ID so exported artifacts from different
// runs can be told apart.
type SimulationTrace struct {
	RunID   string
	Config  Config
	Commits []CommitRecord
	Hazards []HazardRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config Config) *SimulationTrace {
	return &SimulationTrace{
		RunID:   uuid.NewString(),
		Config:  config,
		Commits: make([]CommitRecord, 0),
		Hazards: make([]HazardRecord, 0),
	}
}

// RecordCommit appends a commit record, subject to the configured level.
func (st *SimulationTrace) RecordCommit(record CommitRecord) {
	if st.Config.Level != LevelCommits && st.Config.Level != LevelAll {
		return
	}
	st.Commits = append(st.Commits, record)
}

// RecordHazard appends a hazard record, subject to the configured level.
func (st *SimulationTrace) RecordHazard(record HazardRecord) {
	if st.Config.Level != LevelAll {
		return
	}
	st.Hazards = append(st.Hazards, record)
}
