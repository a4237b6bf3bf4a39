package router

import (
	"context"
	"time"

	"go.uber.org/atomic"
)

// NeverEnds is the LifetimeEnd of a screen that has not exited.
var NeverEnds = time.Date(9999, time.December, 31, 23, 59, 59, 0, time.UTC)

var screenIDs atomic.Uint64

// Screen is one navigable unit in a Stack.
// A Screen may be pushed onto exactly one stack, exactly once.
type Screen struct {
	id        uint64
	name      string
	lifecycle Lifecycle

	validForPush   bool
	validForResume bool

	stack *Stack
	state State

	child       *Screen
	enteredFrom uint64 // parent id, resolved through the stack's arena; 0 for none

	lifetimeEnd time.Time
	prepared    atomic.Bool
	claimed     atomic.Bool // held by Preload while it runs, and by Push for good

	bindings []Unbinder
}

// ScreenOption configures a Screen at construction.
type ScreenOption func(*Screen)

// WithValidForPush sets whether the screen may be pushed at all.
// A screen that is not valid for push is dropped without any callback.
func WithValidForPush(valid bool) ScreenOption {
	return func(s *Screen) { s.validForPush = valid }
}

// WithValidForResume sets whether the screen resumes when its child exits.
func WithValidForResume(valid bool) ScreenOption {
	return func(s *Screen) { s.validForResume = valid }
}

// NewScreen creates an unloaded screen. The name is used in logs, traces and
// host breadcrumbs only; identity is the screen's ID.
func NewScreen(name string, lifecycle Lifecycle, opts ...ScreenOption) *Screen {
	if lifecycle == nil {
		lifecycle = BaseLifecycle{}
	}
	s := &Screen{
		id:             screenIDs.Inc(),
		name:           name,
		lifecycle:      lifecycle,
		validForPush:   true,
		validForResume: true,
		lifetimeEnd:    NeverEnds,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Screen) ID() uint64           { return s.id }
func (s *Screen) Name() string         { return s.name }
func (s *Screen) Lifecycle() Lifecycle { return s.lifecycle }
func (s *Screen) State() State         { return s.state }

// LifetimeEnd is NeverEnds until the screen exits, then the time at which the
// host should have finished removing it.
func (s *Screen) LifetimeEnd() time.Time { return s.lifetimeEnd }

func (s *Screen) ValidForPush() bool   { return s.validForPush }
func (s *Screen) ValidForResume() bool { return s.validForResume }

// SetValidForPush only has an effect before the screen is pushed.
func (s *Screen) SetValidForPush(valid bool) { s.validForPush = valid }

// SetValidForResume is consulted each time the screen's child exits.
func (s *Screen) SetValidForResume(valid bool) { s.validForResume = valid }

// Stack returns the stack the screen was pushed onto, or nil.
func (s *Screen) Stack() *Stack { return s.stack }

// Child returns the active screen pushed on top of this one, or nil.
func (s *Screen) Child() *Screen { return s.child }

// Parent returns the live screen this one was entered from, or nil.
func (s *Screen) Parent() *Screen {
	if s.stack == nil {
		return nil
	}
	return s.stack.parentOf(s)
}

// Prepared reports whether the screen's content is ready for activation: it
// was preloaded, or the stack's loader completed for it.
func (s *Screen) Prepared() bool { return s.prepared.Load() }

// Preload prepares the screen's content ahead of time so that a later push
// enters it synchronously, without going through the stack's loader. It may
// be called from any goroutine, but only before Push: once the screen is
// pushed, or while another Preload runs, it returns ErrPreparing.
func (s *Screen) Preload(ctx context.Context) error {
	if s.prepared.Load() {
		return nil
	}
	if !s.claim() {
		return usage("preload", s, ErrPreparing)
	}
	defer s.claimed.Store(false)

	if p, ok := s.lifecycle.(Preparer); ok {
		if err := p.Prepare(ctx); err != nil {
			return err
		}
	}
	s.prepared.Store(true)
	return nil
}

func (s *Screen) claim() bool {
	return s.claimed.CompareAndSwap(false, true)
}

// Push pushes child on top of this screen.
func (s *Screen) Push(child *Screen) error {
	if s.stack == nil {
		return usage("push", s, ErrNoStack)
	}
	return s.stack.Push(s, child)
}

// Exit exits this screen, resuming its parent.
func (s *Screen) Exit() error {
	if s.stack == nil {
		return usage("exit", s, ErrNoStack)
	}
	return s.stack.Exit(s)
}

// MakeCurrent exits every screen above this one.
func (s *Screen) MakeCurrent() error {
	if s.stack == nil {
		return usage("make current", s, ErrNoStack)
	}
	return s.stack.MakeCurrent(s)
}

// IsCurrent reports whether this screen is the current leaf of its stack.
func (s *Screen) IsCurrent() bool {
	return s.stack != nil && s.stack.IsCurrent(s)
}

// Own registers a binding that is released when the screen exits.
// Bindings are released in reverse registration order. Owning on an exited
// screen releases the binding immediately.
func (s *Screen) Own(u Unbinder) {
	if s.state == StateExited {
		u.Unbind()
		return
	}
	s.bindings = append(s.bindings, u)
}

func (s *Screen) String() string {
	return s.name
}
