package router_test

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/router"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

const testExitLifetime = 500 * time.Millisecond

// eventLog collects lifecycle callbacks from every screen of a test, in order.
type eventLog struct {
	entries []string
}

func (l *eventLog) add(format string, args ...any) {
	l.entries = append(l.entries, fmt.Sprintf(format, args...))
}

// testScreen records what happened to it.
type testScreen struct {
	name string
	log  *eventLog

	veto     int // number of exits to veto
	onResume func()

	enteredFrom *router.Screen
	resumedFrom *router.Screen
	suspendedTo *router.Screen
	exitedTo    *router.Screen

	entered, exiting, suspended, resumed int
}

func (s *testScreen) OnEntering(e router.Transition) {
	s.entered++
	s.enteredFrom = e.Source
	s.log.add("%s entering from %s", s.name, nameOr(e.Source))
}

func (s *testScreen) OnExiting(e router.Transition) bool {
	s.exiting++
	if s.veto > 0 {
		s.veto--
		s.log.add("%s vetoed exit", s.name)
		return true
	}
	s.exitedTo = e.Destination
	s.log.add("%s exiting to %s", s.name, nameOr(e.Destination))
	return false
}

func (s *testScreen) OnSuspending(e router.Transition) {
	s.suspended++
	s.suspendedTo = e.Destination
	s.log.add("%s suspending for %s", s.name, nameOr(e.Destination))
}

func (s *testScreen) OnResuming(e router.Transition) {
	s.resumed++
	s.resumedFrom = e.Source
	s.log.add("%s resuming from %s", s.name, nameOr(e.Source))
	if s.onResume != nil {
		s.onResume()
	}
}

// loadingScreen must be prepared by the stack's loader before it is entered.
type loadingScreen struct {
	*testScreen
}

func (loadingScreen) Prepare(context.Context) error { return nil }

func nameOr(s *router.Screen) string {
	if s == nil {
		return "<nil>"
	}
	return s.Name()
}

type fixture struct {
	t     *testing.T
	log   *eventLog
	stack *router.Stack
	root  *router.Screen
	state map[string]*testScreen
}

func newFixture(t *testing.T, opts ...router.Option) *fixture {
	t.Helper()
	f := &fixture{t: t, log: &eventLog{}, state: make(map[string]*testScreen)}
	f.root = f.screen("root")

	base := []router.Option{
		router.WithLogger(slog.New(slog.DiscardHandler)),
		router.WithClock(func() time.Time { return testNow }),
		router.WithExitLifetime(testExitLifetime),
	}
	stack, err := router.NewStack(f.root, append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = stack.Close() })
	f.stack = stack
	return f
}

// screen returns a preloaded screen, which enters synchronously whatever loader
// the stack uses.
func (f *fixture) screen(name string, opts ...router.ScreenOption) *router.Screen {
	ts := &testScreen{name: name, log: f.log}
	f.state[name] = ts
	s := router.NewScreen(name, ts, opts...)
	require.NoError(f.t, s.Preload(context.Background()))
	return s
}

func (f *fixture) loadingScreen(name string, opts ...router.ScreenOption) *router.Screen {
	ts := &testScreen{name: name, log: f.log}
	f.state[name] = ts
	return router.NewScreen(name, loadingScreen{ts}, opts...)
}

// pushChain pushes the named screens, each on top of the previous one.
func (f *fixture) pushChain(names ...string) []*router.Screen {
	f.t.Helper()
	parent := f.stack.CurrentScreen()
	screens := make([]*router.Screen, 0, len(names))
	for _, name := range names {
		s := f.screen(name)
		require.NoError(f.t, f.stack.Push(parent, s))
		screens = append(screens, s)
		parent = s
	}
	return screens
}

func (f *fixture) of(s *router.Screen) *testScreen {
	return f.state[s.Name()]
}

func (f *fixture) reset() {
	f.log.entries = nil
}

// requireInvariants checks that the chain has exactly one current screen at its
// leaf, every ancestor is suspended and every child points back at its parent.
func (f *fixture) requireInvariants() {
	f.t.Helper()
	chain := f.stack.Screens()
	for i, s := range chain {
		if i == len(chain)-1 {
			require.Equal(f.t, router.StateCurrent, s.State(), "leaf %s", s.Name())
			require.Nil(f.t, s.Child())
			require.Same(f.t, s, f.stack.CurrentScreen())
			continue
		}
		require.Equal(f.t, router.StateSuspended, s.State(), "ancestor %s", s.Name())
		require.Same(f.t, chain[i+1], s.Child())
		require.Same(f.t, s, s.Child().Parent())
	}
}

// gatedLoader holds every load until the test releases it.
type gatedLoader struct {
	mu    sync.Mutex
	gates map[uint64]chan error
	calls int
}

func newGatedLoader() *gatedLoader {
	return &gatedLoader{gates: make(map[uint64]chan error)}
}

func (l *gatedLoader) gate(s *router.Screen) chan error {
	l.mu.Lock()
	defer l.mu.Unlock()
	ch, ok := l.gates[s.ID()]
	if !ok {
		ch = make(chan error, 1)
		l.gates[s.ID()] = ch
	}
	return ch
}

func (l *gatedLoader) Load(ctx context.Context, s *router.Screen) error {
	l.mu.Lock()
	l.calls++
	l.mu.Unlock()

	select {
	case err := <-l.gate(s):
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (l *gatedLoader) callCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.calls
}

func (l *gatedLoader) release(s *router.Screen, err error) {
	l.gate(s) <- err
}

// countingUnbinder counts how often the bindings it hands out are released.
type countingUnbinder struct {
	released int
}

func (c *countingUnbinder) binding() router.Unbinder {
	return router.UnbindFunc(func() { c.released++ })
}

// recordingHost keeps the notifications a host would receive.
type recordingHost struct {
	router.NopHost
	events  []string
	states  []string
	expired map[string]time.Time
	failed  map[string]error
}

func newRecordingHost() *recordingHost {
	return &recordingHost{expired: make(map[string]time.Time), failed: make(map[string]error)}
}

func (h *recordingHost) ScreenPushed(prev, next *router.Screen) {
	h.events = append(h.events, fmt.Sprintf("pushed %s -> %s", nameOr(prev), nameOr(next)))
}

func (h *recordingHost) ScreenExited(prev, next *router.Screen) {
	h.events = append(h.events, fmt.Sprintf("exited %s -> %s", nameOr(prev), nameOr(next)))
}

func (h *recordingHost) StateChanged(s *router.Screen, from, to router.State) {
	h.states = append(h.states, fmt.Sprintf("%s %s -> %s", s.Name(), from, to))
}

func (h *recordingHost) Expire(s *router.Screen, at time.Time) {
	h.expired[s.Name()] = at
}

func (h *recordingHost) LoadFailed(s *router.Screen, err error) {
	h.failed[s.Name()] = err
}

func awaitCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}
