package router

import "fmt"

// State is the lifecycle position of a Screen.
type State int32

const (
	StateUnloaded  State = iota // Not yet pushed
	StateLoading                // Pushed, waiting for its content to be prepared
	StateCurrent                // Leaf of the chain, receives input
	StateSuspended              // Has a child on top of it
	StateExited                 // Terminal
)

func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoading:
		return "loading"
	case StateCurrent:
		return "current"
	case StateSuspended:
		return "suspended"
	case StateExited:
		return "exited"
	default:
		return fmt.Sprintf("State(%d)", int32(s))
	}
}

// InChain reports whether a screen in this state is part of the live chain.
func (s State) InChain() bool {
	return s == StateCurrent || s == StateSuspended
}
