package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_ValidModel(t *testing.T) {
	b := NewBuilder()
	sig := b.Signal("clk", 0)
	b.Process("clkgen", Clock(sig, 5))

	s, err := b.Build(DefaultConfig())
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, int64(0), s.Now())
	assert.Equal(t, SignalID(0), sig.ID())
	assert.Equal(t, "clk", sig.Name())
}

func TestBuilder_ReportsAllIssuesAtOnce(t *testing.T) {
	b := NewBuilder()
	b.Signal("s", 0)
	b.Signal("s", 0) // duplicate
	b.Signal("", 0)  // empty name
	b.Process("p", nil)
	b.Process("p", func(ctx *ExecContext) (Suspend, error) { return Done(), nil })

	s, err := b.Build(DefaultConfig())
	assert.Nil(t, s)
	var me *ModelError
	require.ErrorAs(t, err, &me)
	assert.Len(t, me.Issues, 4)
	assert.Contains(t, me.Error(), `duplicate signal name "s"`)
	assert.Contains(t, me.Error(), `duplicate process name "p"`)
	assert.Contains(t, me.Error(), `nil body`)
}

func TestBuilder_EmptyModelRejected(t *testing.T) {
	b := NewBuilder()
	b.Signal("s", 0)

	s, err := b.Build(DefaultConfig())
	assert.Nil(t, s)
	var me *ModelError
	require.ErrorAs(t, err, &me)
	assert.Contains(t, me.Error(), "no processes")
}

func TestBuilder_SealedAfterBuild(t *testing.T) {
	b := NewBuilder()
	b.Process("p", func(ctx *ExecContext) (Suspend, error) { return Done(), nil })
	_, err := b.Build(DefaultConfig())
	require.NoError(t, err)

	assert.Panics(t, func() { b.Signal("late", 0) })
	assert.Panics(t, func() {
		b.Process("late", func(ctx *ExecContext) (Suspend, error) { return Done(), nil })
	})
	assert.Panics(t, func() { b.Build(DefaultConfig()) }) //nolint:errcheck
}

func TestBuilder_SignalInitialValue(t *testing.T) {
	b := NewBuilder()
	sig := b.Signal("bus", 42)
	b.Process("p", func(ctx *ExecContext) (Suspend, error) { return Done(), nil })
	_, err := b.Build(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, Value(42), sig.Read())
}
