package router

import "time"

// Host is the container that places screens visually and routes input to them.
// The stack only notifies it; rendering and focus arbitration are the host's job.
// Every method is called on the coordinating goroutine.
type Host interface {
	// ScreenPushed is called after next has been entered on top of prev.
	// prev is nil for the root.
	ScreenPushed(prev, next *Screen)
	// ScreenExited is called after prev has exited. next is the screen it
	// returned to, or nil.
	ScreenExited(prev, next *Screen)
	// StateChanged is called for every state transition of a screen in the chain.
	StateChanged(s *Screen, from, to State)
	// Expire is called once per exited screen with its now finite LifetimeEnd.
	Expire(s *Screen, at time.Time)
	// LoadFailed is called when a pushed screen could not be prepared.
	LoadFailed(s *Screen, err error)
}

// NopHost ignores every notification. Embed it to implement part of Host.
type NopHost struct{}

func (NopHost) ScreenPushed(prev, next *Screen)        {}
func (NopHost) ScreenExited(prev, next *Screen)        {}
func (NopHost) StateChanged(s *Screen, from, to State) {}
func (NopHost) Expire(s *Screen, at time.Time)         {}
func (NopHost) LoadFailed(s *Screen, err error)        {}
