package router

import "context"

// Transition describes one edge of the chain changing.
//
// For OnEntering, Source is the screen that pushed (nil for the root) and
// Destination is the entering screen. For OnSuspending, Source is the suspending
// screen and Destination its new child. For OnResuming, Source is the child that
// exited and Destination the resuming screen. For OnExiting, Source is the exiting
// screen and Destination its parent (nil for the root), also when the exit is one
// step of a MakeCurrent walk.
type Transition struct {
	Source      *Screen
	Destination *Screen
}

// Lifecycle receives the transitions of a single screen.
// Embed BaseLifecycle to only override the callbacks a screen cares about.
type Lifecycle interface {
	OnEntering(e Transition)
	// OnExiting returns true to veto the exit.
	OnExiting(e Transition) bool
	OnSuspending(e Transition)
	OnResuming(e Transition)
}

// Preparer is implemented by lifecycles whose content must be prepared before
// the screen can be entered. Prepare runs on a worker goroutine and must not
// touch the stack.
type Preparer interface {
	Prepare(ctx context.Context) error
}

// BaseLifecycle is the default, do-nothing Lifecycle. It never vetoes an exit.
type BaseLifecycle struct{}

func (BaseLifecycle) OnEntering(Transition)     {}
func (BaseLifecycle) OnExiting(Transition) bool { return false }
func (BaseLifecycle) OnSuspending(Transition)   {}
func (BaseLifecycle) OnResuming(Transition)     {}
