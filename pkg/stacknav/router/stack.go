package router

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Stack owns a chain of screens, from a fixed root up to the current leaf.
// It must be driven from a single goroutine.
type Stack struct {
	root *Screen

	// arena holds every screen that has been pushed and not yet exited.
	// enteredFrom links are resolved through it and never own a screen.
	arena map[uint64]*Screen

	gate    *readinessGate
	unbind  *unbindCoordinator
	queue   *Queue // set when the stack created its own scheduler
	host    Host
	logger  *slog.Logger
	tracer  trace.Tracer
	now     func() time.Time
	lifeEnd time.Duration

	ctx    context.Context
	cancel context.CancelFunc
	closed bool

	// walkFrom is the child most recently exited off a resumed screen during a
	// make-current walk.
	walkFrom *Screen
}

// NewStack creates a stack and pushes root as its bottom screen.
// If root has to be prepared, it becomes current once its load completes.
func NewStack(root *Screen, opts ...Option) (*Stack, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Stack{
		root:    root,
		arena:   make(map[uint64]*Screen),
		host:    cfg.host,
		logger:  cfg.logger,
		tracer:  cfg.tracer,
		now:     cfg.now,
		lifeEnd: cfg.exitLifetime,
	}
	if cfg.scheduler == nil {
		s.queue = NewQueue()
		cfg.scheduler = s.queue
	}
	s.ctx, s.cancel = context.WithCancel(cfg.ctx)
	s.unbind = &unbindCoordinator{hook: cfg.unbindHook, logger: cfg.logger}
	s.gate = newReadinessGate(s.ctx, s, cfg)

	if !root.validForPush {
		s.cancel()
		return nil, usage("new stack", root, ErrRootRejected)
	}
	if err := s.Push(nil, root); err != nil {
		s.cancel()
		return nil, err
	}
	return s, nil
}

// Root returns the bottom screen.
func (s *Stack) Root() *Screen { return s.root }

// Push registers child on top of parent and activates it once it is prepared.
// parent is nil only for the root, which NewStack pushes.
//
// A child that is not valid for push is dropped: it is marked exited without
// any lifecycle callback and Push returns nil.
func (s *Stack) Push(parent, child *Screen) error {
	if s.closed {
		return usage("push", child, ErrStackClosed)
	}
	if child.stack != nil || child.state != StateUnloaded {
		return structural("push", child, ErrAlreadyEntered)
	}
	if parent != nil {
		if parent.stack != s || s.arena[parent.id] != parent {
			return usage("push", parent, ErrNotInStack)
		}
		if parent.state != StateCurrent || parent.child != nil {
			return structural("push", parent, ErrNotLeaf)
		}
	} else if child != s.root || len(s.arena) > 0 || s.root.state != StateUnloaded {
		return usage("push", child, ErrNotInStack)
	}
	if !child.claim() {
		return usage("push", child, ErrPreparing)
	}

	span := s.startSpan("push", child)
	child.stack = s

	if !child.validForPush {
		s.logger.Debug("push rejected", "screen", child.name, "id", child.id)
		s.retire(child, s.now())
		endSpan(span, outcomeRejected)
		return nil
	}

	s.arena[child.id] = child
	s.setState(child, StateLoading)

	p := s.gate.open(child, parent, span)
	s.gate.request(p)
	return nil
}

// activate enters a prepared screen. Runs on the coordinating goroutine.
func (s *Stack) activate(p *pendingPush) {
	parent, child := p.parent, p.target

	if parent != nil && (parent.state != StateCurrent || parent.child != nil) {
		// parent lost the leaf while child was loading
		s.discard(p, outcomeCancelled)
		return
	}

	if parent != nil {
		parent.child = child
		child.enteredFrom = parent.id
		s.setState(parent, StateSuspended)
		parent.lifecycle.OnSuspending(Transition{Source: parent, Destination: child})
	}

	s.setState(child, StateCurrent)
	child.lifecycle.OnEntering(Transition{Source: parent, Destination: child})

	s.host.ScreenPushed(parent, child)
	endSpan(p.span, outcomeEntered)
}

// discard drops a pending screen without firing any lifecycle callback.
func (s *Stack) discard(p *pendingPush, outcome string) {
	delete(s.arena, p.target.id)
	if p.target.state != StateExited {
		s.retire(p.target, s.now())
	}
	s.logger.Debug("pending push discarded", "screen", p.target.name, "id", p.target.id, "reason", outcome)
	endSpan(p.span, outcome)
}

func (s *Stack) loadFailed(p *pendingPush, err error) {
	s.logger.Error("screen failed to load", "screen", p.target.name, "id", p.target.id, "error", err)
	p.span.RecordError(err)
	s.discard(p, outcomeFailed)
	s.host.LoadFailed(p.target, err)
}

// Exit exits screen and resumes its parent. If the parent is not valid for
// resume it exits as well, and so on down the chain.
//
// A vetoed exit is not an error: the stack is simply left unchanged.
// Exiting a screen that is still loading abandons its push.
func (s *Stack) Exit(screen *Screen) error {
	if screen.stack != s {
		return usage("exit", screen, ErrNotInStack)
	}

	switch screen.state {
	case StateExited:
		return nil
	case StateLoading:
		if p, ok := s.gate.pending[screen.id]; ok {
			s.gate.cancelPending(p)
		}
		return nil
	}

	if screen.child != nil {
		return structural("exit", screen, ErrHasChild)
	}

	s.exitFrom(screen, nil)
	return nil
}

type exitOutcome int

const (
	exitCompleted exitOutcome = iota
	exitVetoed
	// exitHalted means the screen exited, but an ancestor that declined to resume
	// vetoed its own exit and became the leaf.
	exitHalted
)

// exitFrom runs the exit pipeline for a childless screen. walkTarget is nil for a
// plain exit; during MakeCurrent it is the target and resume callbacks are
// deferred to the end of the walk.
func (s *Stack) exitFrom(screen, walkTarget *Screen) exitOutcome {
	span := s.startSpan("exit", screen)
	parent := s.parentOf(screen)

	if screen.lifecycle.OnExiting(Transition{Source: screen, Destination: parent}) {
		s.logger.Debug("exit vetoed", "screen", screen.name, "id", screen.id)
		endSpan(span, outcomeVetoed)
		return exitVetoed
	}

	s.finishExit(screen, parent)
	endSpan(span, outcomeExited)

	if parent == nil {
		return exitCompleted
	}

	if parent.validForResume {
		s.resume(parent, screen, walkTarget == nil)
		return exitCompleted
	}

	switch outcome := s.exitFrom(parent, walkTarget); outcome {
	case exitVetoed:
		s.resume(parent, screen, walkTarget == nil)
		return exitHalted
	default:
		return outcome
	}
}

func (s *Stack) finishExit(screen, parent *Screen) {
	s.gate.cancelFor(screen)
	s.retire(screen, s.now().Add(s.lifeEnd))
	if parent != nil {
		parent.child = nil
	}
	delete(s.arena, screen.id)

	s.host.ScreenExited(screen, parent)
}

// retire releases what screen owns and marks it exited, whether it left the
// chain or never joined it.
func (s *Stack) retire(screen *Screen, end time.Time) {
	s.unbind.release(screen)
	screen.lifetimeEnd = end
	s.setState(screen, StateExited)
	s.host.Expire(screen, end)
}

func (s *Stack) resume(screen, from *Screen, notify bool) {
	s.setState(screen, StateCurrent)
	s.walkFrom = from
	if notify {
		screen.lifecycle.OnResuming(Transition{Source: from, Destination: screen})
	}
}

// MakeCurrent exits every screen above target, top down. Each exit may be
// vetoed, which stops the walk where it is; exits that already happened are not
// undone. target receives a single OnResuming once the walk reaches it.
func (s *Stack) MakeCurrent(target *Screen) error {
	if target.stack != s || !target.state.InChain() || s.arena[target.id] != target {
		return usage("make current", target, ErrNotInStack)
	}

	leaf := s.CurrentScreen()
	if leaf == target {
		return nil
	}

	span := s.startSpan("make_current", target)
	outcome := outcomeExited
	s.walkFrom = nil

	for cur := leaf; cur != nil && cur != target; cur = s.CurrentScreen() {
		if o := s.exitFrom(cur, target); o != exitCompleted {
			outcome = outcomeHalted
			break
		}
		if target.state == StateExited {
			break
		}
	}

	if final := s.CurrentScreen(); final != nil && final != leaf && s.walkFrom != nil {
		final.lifecycle.OnResuming(Transition{Source: s.walkFrom, Destination: final})
	}
	s.walkFrom = nil

	endSpan(span, outcome)
	return nil
}

// IsCurrent reports whether screen is the leaf of this stack's chain.
func (s *Stack) IsCurrent(screen *Screen) bool {
	return screen != nil && screen.stack == s && screen.state == StateCurrent
}

// CurrentScreen returns the leaf of the chain, or nil before the root has been
// entered and after it has exited.
func (s *Stack) CurrentScreen() *Screen {
	if !s.root.state.InChain() {
		return nil
	}
	cur := s.root
	for cur.child != nil {
		cur = cur.child
	}
	if cur.state != StateCurrent {
		return nil
	}
	return cur
}

// Screens returns the chain from the root to the current leaf.
func (s *Stack) Screens() []*Screen {
	if !s.root.state.InChain() {
		return nil
	}
	var chain []*Screen
	for cur := s.root; cur != nil; cur = cur.child {
		chain = append(chain, cur)
	}
	return chain
}

// Len returns the number of screens in the chain.
func (s *Stack) Len() int {
	return len(s.Screens())
}

// Pending returns the number of pushes waiting for their screen to load.
func (s *Stack) Pending() int {
	return s.gate.len()
}

// Update runs completed loads when the stack uses its built-in Queue.
// Returns the number of completions processed.
func (s *Stack) Update() int {
	if s.queue == nil {
		return 0
	}
	return s.queue.Drain()
}

// Close abandons pending pushes and waits for in-flight loads to return.
// Screens already in the chain are left as they are.
func (s *Stack) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.gate.cancelAll()
	s.cancel()
	return s.gate.wait()
}

func (s *Stack) parentOf(screen *Screen) *Screen {
	if screen.enteredFrom == 0 {
		return nil
	}
	return s.arena[screen.enteredFrom]
}

func (s *Stack) setState(screen *Screen, to State) {
	from := screen.state
	if from == to {
		return
	}
	screen.state = to
	s.logger.Debug("screen transition", "screen", screen.name, "id", screen.id, "from", from.String(), "to", to.String())
	s.host.StateChanged(screen, from, to)
}
