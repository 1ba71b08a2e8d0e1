package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSchedulerConfig_FieldEquivalence(t *testing.T) {
	got := NewSchedulerConfig(true, 500)
	want := SchedulerConfig{
		Strict:             true,
		MaxDeltaIterations: 500,
	}
	assert.Equal(t, want, got)
}

func TestNewRunConfig_FieldEquivalence(t *testing.T) {
	got := NewRunConfig(1000, 42)
	want := RunConfig{
		Horizon: 1000,
		Seed:    42,
	}
	assert.Equal(t, want, got)
}

func TestNewConfig_FieldEquivalence(t *testing.T) {
	sched := NewSchedulerConfig(false, 100)
	run := NewRunConfig(10, 7)
	got := NewConfig(sched, run)
	want := Config{Scheduler: sched, Run: run}
	assert.Equal(t, want, got)
}

func TestSchedulerConfig_MaxDeltaIterationsDefault(t *testing.T) {
	assert.Equal(t, DefaultMaxDeltaIterations, SchedulerConfig{}.maxDeltaIterations())
	assert.Equal(t, DefaultMaxDeltaIterations, SchedulerConfig{MaxDeltaIterations: -1}.maxDeltaIterations())
	assert.Equal(t, 25, SchedulerConfig{MaxDeltaIterations: 25}.maxDeltaIterations())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Scheduler.Strict)
	assert.Equal(t, DefaultMaxDeltaIterations, cfg.Scheduler.MaxDeltaIterations)
	assert.Equal(t, int64(0), cfg.Run.Horizon)
}
