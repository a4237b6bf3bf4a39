package router

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// pendingPush is a screen waiting for its content before activation.
type pendingPush struct {
	target *Screen
	parent *Screen // nil for the root

	ctx    context.Context
	cancel context.CancelFunc
	span   trace.Span

	fired     atomic.Bool
	cancelled bool
}

// readinessGate defers activation of pushed screens until the loader has
// prepared them. Loads run on workers; completions come back through the
// scheduler so activation always happens on the coordinating goroutine.
type readinessGate struct {
	stack     *Stack
	loader    Loader
	custom    bool // loader was set with WithLoader
	scheduler Scheduler
	sem       *semaphore.Weighted
	group     *errgroup.Group
	ctx       context.Context

	pending map[uint64]*pendingPush
}

func newReadinessGate(ctx context.Context, s *Stack, cfg *config) *readinessGate {
	group, gctx := errgroup.WithContext(ctx)
	loader := cfg.loader
	if loader == nil {
		loader = PrepareLoader
	}
	return &readinessGate{
		stack:     s,
		loader:    loader,
		custom:    cfg.loader != nil,
		scheduler: cfg.scheduler,
		sem:       semaphore.NewWeighted(int64(cfg.maxConcurrentLoads)),
		group:     group,
		ctx:       gctx,
		pending:   make(map[uint64]*pendingPush),
	}
}

func (g *readinessGate) open(target, parent *Screen, span trace.Span) *pendingPush {
	ctx, cancel := context.WithCancel(g.ctx)
	p := &pendingPush{
		target: target,
		parent: parent,
		ctx:    ctx,
		cancel: cancel,
		span:   span,
	}
	g.pending[target.id] = p
	return p
}

// request starts preparing p.target. A target that was preloaded, or that has
// nothing to prepare and no custom loader to go through, completes
// synchronously, before request returns.
func (g *readinessGate) request(p *pendingPush) {
	if p.target.Prepared() || (!g.custom && !isPreparer(p.target)) {
		g.complete(p, nil)
		return
	}

	g.group.Go(func() error {
		if err := g.sem.Acquire(p.ctx, 1); err != nil {
			g.signal(p, err)
			return nil
		}
		err := g.loader.Load(p.ctx, p.target)
		g.sem.Release(1)
		g.signal(p, err)
		return nil
	})
}

func isPreparer(s *Screen) bool {
	_, ok := s.lifecycle.(Preparer)
	return ok
}

func (g *readinessGate) signal(p *pendingPush, err error) {
	g.scheduler.Post(func() { g.complete(p, err) })
}

// complete consumes the single readiness signal of p.
func (g *readinessGate) complete(p *pendingPush, err error) {
	if !p.fired.CompareAndSwap(false, true) {
		g.stack.logger.Warn("duplicate readiness signal ignored", "screen", p.target.name, "id", p.target.id)
		return
	}
	p.cancel()

	if p.cancelled {
		return
	}
	delete(g.pending, p.target.id)

	if err != nil {
		if errors.Is(err, context.Canceled) && g.ctx.Err() != nil {
			g.stack.discard(p, "closed")
			return
		}
		g.stack.loadFailed(p, err)
		return
	}

	p.target.prepared.Store(true)
	g.stack.activate(p)
}

// cancelFor cancels every pending push requested by, or targeting, s.
func (g *readinessGate) cancelFor(s *Screen) {
	for _, p := range g.pending {
		if p.parent == s || p.target == s {
			g.cancelPending(p)
		}
	}
}

func (g *readinessGate) cancelPending(p *pendingPush) {
	p.cancelled = true
	p.cancel()
	delete(g.pending, p.target.id)
	g.stack.discard(p, "cancelled")
}

func (g *readinessGate) cancelAll() {
	for _, p := range g.pending {
		g.cancelPending(p)
	}
}

func (g *readinessGate) wait() error {
	return g.group.Wait()
}

func (g *readinessGate) len() int {
	return len(g.pending)
}
