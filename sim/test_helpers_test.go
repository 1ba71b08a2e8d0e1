package sim

import "testing"

// collectCommits attaches an observer that records every commit event.
func collectCommits(s *Simulation) *[]CommitEvent {
	events := &[]CommitEvent{}
	s.Observe(func(ev CommitEvent) {
		*events = append(*events, ev)
	})
	return events
}

// mustBuild builds the model or fails the test.
func mustBuild(t *testing.T, b *Builder, cfg Config) *Simulation {
	t.Helper()
	s, err := b.Build(cfg)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return s
}
