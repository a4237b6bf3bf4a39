package router

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingLifecycle struct {
	BaseLifecycle
	entered int
}

func (c *countingLifecycle) OnEntering(Transition) { c.entered++ }

func (c *countingLifecycle) Prepare(context.Context) error { return nil }

func TestReadinessGate_SignalIsSingleUse(t *testing.T) {
	queue := NewQueue()
	s, err := NewStack(NewScreen("root", nil),
		WithScheduler(queue),
		WithLogger(slog.New(slog.DiscardHandler)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	lc := &countingLifecycle{}
	child := NewScreen("child", lc)
	require.NoError(t, s.root.Push(child))
	p, ok := s.gate.pending[child.id]
	require.True(t, ok)

	s.gate.complete(p, nil)
	s.gate.complete(p, nil)

	assert.Equal(t, 1, lc.entered)
	assert.True(t, child.IsCurrent())

	// the worker's own signal arrives late and is ignored as well
	require.NoError(t, queue.Await(context.Background()))
	assert.Equal(t, 1, lc.entered)
	assert.Zero(t, s.gate.len())
}

func TestReadinessGate_CancelForMatchesParentAndTarget(t *testing.T) {
	s, err := NewStack(NewScreen("root", nil),
		WithScheduler(NewQueue()),
		WithLogger(slog.New(slog.DiscardHandler)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	a := NewScreen("a", &countingLifecycle{})
	b := NewScreen("b", &countingLifecycle{})
	require.NoError(t, s.root.Push(a))
	require.NoError(t, s.root.Push(b))
	require.Equal(t, 2, s.gate.len())

	s.gate.cancelFor(a)
	assert.Equal(t, 1, s.gate.len())
	assert.Equal(t, StateExited, a.State())

	s.gate.cancelFor(s.root)
	assert.Zero(t, s.gate.len())
	assert.Equal(t, StateExited, b.State())
}
