package router

import "log/slog"

// Unbinder releases one externally owned binding.
type Unbinder interface {
	Unbind()
}

// UnbindFunc adapts a plain function to Unbinder.
type UnbindFunc func()

func (f UnbindFunc) Unbind() { f() }

// unbindCoordinator releases a screen's bindings before it leaves the chain.
type unbindCoordinator struct {
	hook   func(*Screen)
	logger *slog.Logger
}

// release runs synchronously. Everything bound by the screen is gone before the
// caller continues, so a resuming ancestor never sees a half torn down child.
func (c *unbindCoordinator) release(s *Screen) {
	bindings := s.bindings
	s.bindings = nil

	for i := len(bindings) - 1; i >= 0; i-- {
		bindings[i].Unbind()
	}

	if len(bindings) > 0 {
		c.logger.Debug("released bindings", "screen", s.name, "id", s.id, "count", len(bindings))
	}

	if c.hook != nil {
		c.hook(s)
	}
}
