package router

import (
	"context"
	"sync"

	"go.uber.org/atomic"
)

// Scheduler hands work back to the goroutine that drives the stack.
// Post may be called from any goroutine.
type Scheduler interface {
	Post(fn func())
}

// SchedulerFunc adapts a plain function to Scheduler.
type SchedulerFunc func(fn func())

func (f SchedulerFunc) Post(fn func()) { f(fn) }

// Queue is a Scheduler whose work runs when the owner drains it.
type Queue struct {
	mu     sync.Mutex
	fns    []func()
	signal chan struct{}
	ran    atomic.Int64
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{signal: make(chan struct{}, 1)}
}

func (q *Queue) Post(fn func()) {
	q.mu.Lock()
	q.fns = append(q.fns, fn)
	q.mu.Unlock()

	select {
	case q.signal <- struct{}{}:
	default:
	}
}

// Len returns the number of queued functions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.fns)
}

// Ran returns how many functions the queue has executed.
func (q *Queue) Ran() int64 {
	return q.ran.Load()
}

// Drain runs everything queued, including work posted while draining, on the
// calling goroutine. Returns the number of functions run.
func (q *Queue) Drain() int {
	n := 0
	for {
		q.mu.Lock()
		fns := q.fns
		q.fns = nil
		q.mu.Unlock()

		if len(fns) == 0 {
			return n
		}
		for _, fn := range fns {
			fn()
			q.ran.Inc()
			n++
		}
	}
}

// Await blocks until at least one function has been posted, then drains.
func (q *Queue) Await(ctx context.Context) error {
	for {
		if q.Drain() > 0 {
			return nil
		}
		select {
		case <-q.signal:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Run drains the queue as work arrives until ctx is done.
func (q *Queue) Run(ctx context.Context) error {
	for {
		q.Drain()
		select {
		case <-q.signal:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
