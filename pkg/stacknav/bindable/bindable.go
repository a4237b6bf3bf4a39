// Package bindable provides observable values that screens share with each
// other through explicit bindings.
//
// Bindable[T] wraps a value and notifies bindings when it changes. A binding is
// released through its Binding handle, which satisfies router.Unbinder, so a
// screen can hand the handle to Screen.Own and have it released on exit:
//
//	volume := bindable.New(0.5)
//	screen.Own(volume.Bind(func(v float64) {
//	    slider.SetValue(v)
//	}))
//
// BindTo links two bindables so that a change to either reaches the other.
//
// Set must be called from the goroutine driving the stack; Get is safe from
// any goroutine.
package bindable

import (
	"sync"

	"go.uber.org/atomic"
)

// bindingIDs keeps binding IDs unique across every Bindable instance.
var bindingIDs atomic.Uint64

// Bindable is an observable value.
type Bindable[T any] struct {
	mu       sync.RWMutex
	value    T
	bindings []*subscription[T]
	// setting guards against a BindTo pair echoing a value back and forth.
	setting bool
}

type subscription[T any] struct {
	id     uint64
	fn     func(T)
	active atomic.Bool
}

// Binding is the handle of one registered callback or link.
type Binding struct {
	id       uint64
	release  func()
	released atomic.Bool
}

// ID returns the binding's unique id.
func (b *Binding) ID() uint64 { return b.id }

// Unbind stops future callbacks. Calling it more than once is harmless.
func (b *Binding) Unbind() {
	if b.released.CompareAndSwap(false, true) {
		b.release()
	}
}

// Released reports whether Unbind has been called.
func (b *Binding) Released() bool { return b.released.Load() }

// New creates a bindable holding initial.
func New[T any](initial T) *Bindable[T] {
	return &Bindable[T]{value: initial}
}

// Get returns the current value.
func (b *Bindable[T]) Get() T {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.value
}

// Set stores v and calls every active binding, in registration order.
// A Set of b from inside one of b's own callbacks is ignored.
func (b *Bindable[T]) Set(v T) {
	b.mu.Lock()
	if b.setting {
		b.mu.Unlock()
		return
	}
	b.setting = true
	b.value = v
	active := b.bindings[:0:0]
	for _, s := range b.bindings {
		if s.active.Load() {
			active = append(active, s)
		}
	}
	b.bindings = active
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		b.setting = false
		b.mu.Unlock()
	}()

	for _, s := range active {
		// a callback may unbind a later one
		if s.active.Load() {
			s.fn(v)
		}
	}
}

// Update applies fn to the current value and sets the result.
func (b *Bindable[T]) Update(fn func(T) T) {
	b.Set(fn(b.Get()))
}

// Bind registers fn to be called with each new value.
// It is not called on registration.
func (b *Bindable[T]) Bind(fn func(T)) *Binding {
	s := &subscription[T]{id: bindingIDs.Inc(), fn: fn}
	s.active.Store(true)

	b.mu.Lock()
	b.bindings = append(b.bindings, s)
	b.mu.Unlock()

	return &Binding{
		id:      s.id,
		release: func() { s.active.Store(false) },
	}
}

// BindTo links b to other: b takes other's value now, and later changes to
// either side are copied to the other. The returned Binding removes both
// directions.
func (b *Bindable[T]) BindTo(other *Bindable[T]) *Binding {
	b.Set(other.Get())

	toOther := b.Bind(other.Set)
	fromOther := other.Bind(b.Set)

	return &Binding{
		id: bindingIDs.Inc(),
		release: func() {
			toOther.Unbind()
			fromOther.Unbind()
		},
	}
}

// UnbindAll releases every binding registered on b.
func (b *Bindable[T]) UnbindAll() {
	b.mu.Lock()
	bindings := b.bindings
	b.bindings = nil
	b.mu.Unlock()

	for _, s := range bindings {
		s.active.Store(false)
	}
}

// Bindings returns the number of active bindings.
func (b *Bindable[T]) Bindings() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, s := range b.bindings {
		if s.active.Load() {
			n++
		}
	}
	return n
}
