package router

import (
	"context"
	"log/slog"
	"time"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/constants"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/internal"
	"go.opentelemetry.io/otel/trace"
)

type config struct {
	ctx                context.Context
	host               Host
	loader             Loader
	scheduler          Scheduler
	logger             *slog.Logger
	tracer             trace.Tracer
	now                func() time.Time
	exitLifetime       time.Duration
	maxConcurrentLoads int
	unbindHook         func(*Screen)
}

// Option configures a Stack.
type Option func(*config)

func defaultConfig() *config {
	return &config{
		ctx:                context.Background(),
		host:               NopHost{},
		logger:             internal.GetInternalLogger(),
		tracer:             defaultTracer(),
		now:                time.Now,
		exitLifetime:       constants.DefaultExitLifetime,
		maxConcurrentLoads: constants.DefaultMaxConcurrentLoads,
	}
}

// WithContext sets the parent context of every load. Cancelling it abandons
// pending pushes the same way Close does.
func WithContext(ctx context.Context) Option {
	return func(c *config) { c.ctx = ctx }
}

// WithHost sets the container notified of pushes, exits and expiry.
func WithHost(h Host) Option {
	return func(c *config) { c.host = h }
}

// WithLoader replaces PrepareLoader. The loader is called on a worker for
// every pushed screen that was not preloaded, whether or not its lifecycle is
// a Preparer.
func WithLoader(l Loader) Option {
	return func(c *config) { c.loader = l }
}

// WithScheduler sets how load completions get back to the coordinating
// goroutine. Defaults to a Queue drained by Stack.Update.
func WithScheduler(s Scheduler) Option {
	return func(c *config) { c.scheduler = s }
}

// WithLogger sets the logger for transition debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) { c.logger = l }
}

// WithTracer sets the tracer used for push, exit and make-current spans.
func WithTracer(t trace.Tracer) Option {
	return func(c *config) { c.tracer = t }
}

// WithClock sets the time source used for LifetimeEnd.
func WithClock(now func() time.Time) Option {
	return func(c *config) { c.now = now }
}

// WithExitLifetime sets how long an exited screen stays with the host before
// its LifetimeEnd.
func WithExitLifetime(d time.Duration) Option {
	return func(c *config) { c.exitLifetime = d }
}

// WithMaxConcurrentLoads limits how many screens are prepared at once.
func WithMaxConcurrentLoads(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.maxConcurrentLoads = n
		}
	}
}

// WithUnbindHook is called after a screen's bindings have been released,
// before anything else happens to the exiting screen.
func WithUnbindHook(fn func(*Screen)) Option {
	return func(c *config) { c.unbindHook = fn }
}
