package router

import (
	"errors"
	"fmt"
)

// Sentinel errors for violated preconditions.
var (
	// ErrAlreadyEntered indicates a screen was pushed after it already joined a stack.
	ErrAlreadyEntered = errors.New("screen has already been entered")

	// ErrHasChild indicates an exit was requested for a screen that still has a live child.
	// Exit the child first, or use MakeCurrent.
	ErrHasChild = errors.New("screen still has a live child")

	// ErrNotLeaf indicates a push from a screen that is not the current leaf.
	ErrNotLeaf = errors.New("screen is not the current leaf")

	// ErrNoStack indicates an operation through a screen not attached to any stack.
	ErrNoStack = errors.New("screen is not attached to a stack")

	// ErrNotInStack indicates the screen belongs to another stack or has left the chain.
	ErrNotInStack = errors.New("screen is not part of this stack's chain")

	// ErrRootRejected indicates the root screen was not valid for push.
	ErrRootRejected = errors.New("root screen is not valid for push")

	// ErrStackClosed indicates an operation on a closed stack.
	ErrStackClosed = errors.New("stack is closed")

	// ErrPreparing indicates a screen was pushed while Preload was still running
	// for it, or preloaded after it was pushed.
	ErrPreparing = errors.New("screen is already being prepared")
)

// Kind classifies a ViolationError.
type Kind int

const (
	// KindStructural violations break the shape of the chain.
	KindStructural Kind = iota
	// KindUsage violations call the stack through the wrong surface.
	KindUsage
)

func (k Kind) String() string {
	if k == KindStructural {
		return "structural"
	}
	return "usage"
}

// ViolationError is returned when a push, exit or make-current breaks a
// precondition. It is a programming error: retrying cannot succeed.
type ViolationError struct {
	Op     string // Operation that was refused (e.g., "push", "exit")
	Kind   Kind
	Screen string // Name of the screen the operation was called with
	Err    error  // One of the sentinel errors above
}

func (e *ViolationError) Error() string {
	if e.Screen != "" {
		return fmt.Sprintf("router: %s %q: %v", e.Op, e.Screen, e.Err)
	}
	return fmt.Sprintf("router: %s: %v", e.Op, e.Err)
}

func (e *ViolationError) Unwrap() error {
	return e.Err
}

func structural(op string, s *Screen, err error) error {
	return &ViolationError{Op: op, Kind: KindStructural, Screen: nameOf(s), Err: err}
}

func usage(op string, s *Screen, err error) error {
	return &ViolationError{Op: op, Kind: KindUsage, Screen: nameOf(s), Err: err}
}

// IsStructural checks if an error is a structural violation.
func IsStructural(err error) bool {
	var v *ViolationError
	return errors.As(err, &v) && v.Kind == KindStructural
}

// IsUsage checks if an error is a usage violation.
func IsUsage(err error) bool {
	var v *ViolationError
	return errors.As(err, &v) && v.Kind == KindUsage
}

func nameOf(s *Screen) string {
	if s == nil {
		return ""
	}
	return s.name
}
