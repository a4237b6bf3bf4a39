package router

import "context"

// Loader prepares a screen's content on a worker goroutine. Load returns once,
// which is the screen's single readiness signal.
type Loader interface {
	Load(ctx context.Context, s *Screen) error
}

// LoaderFunc adapts a plain function to Loader.
type LoaderFunc func(ctx context.Context, s *Screen) error

func (f LoaderFunc) Load(ctx context.Context, s *Screen) error { return f(ctx, s) }

// PrepareLoader calls the screen lifecycle's Prepare, if it has one.
var PrepareLoader Loader = LoaderFunc(func(ctx context.Context, s *Screen) error {
	if p, ok := s.lifecycle.(Preparer); ok {
		return p.Prepare(ctx)
	}
	return nil
})
