// Package router provides the screen stack: an ordered chain of screens with a
// per-screen lifecycle and the push, exit and make-current protocols between them.
//
// Unlike a plain history stack, every screen moves through an explicit state
// machine (Unloaded, Loading, Current, Suspended, Exited) and is told about each
// transition through its Lifecycle. Activation of a pushed screen is deferred
// until its content has been prepared, so a slow screen never leaves the chain in
// a half-entered state.
//
// # Basic Usage
//
//	type menu struct {
//	    router.BaseLifecycle
//	}
//
//	func (m *menu) OnResuming(e router.Transition) {
//	    fmt.Println("back from", e.Source.Name())
//	}
//
//	root := router.NewScreen("menu", &menu{})
//	stack, err := router.NewStack(root)
//	if err != nil {
//	    return err
//	}
//
//	detail := router.NewScreen("detail", router.BaseLifecycle{})
//	if err := root.Push(detail); err != nil {
//	    return err
//	}
//
//	_ = detail.Exit() // menu resumes
//
// # Asynchronous Loading
//
// A Lifecycle that also implements Preparer is prepared on a worker goroutine
// before it is entered. Completion is handed back to the coordinating goroutine
// through a Scheduler; the default Scheduler is a Queue that the owner drains
// with Stack.Update. Screens prepared ahead of time with Screen.Preload are
// entered synchronously inside Push. So are screens with nothing to prepare,
// unless the stack was given its own Loader with WithLoader, which then sees
// every screen that was not preloaded.
//
// # Exit Protocol
//
// OnExiting may veto an exit by returning true. Bindings owned by an exiting
// screen (see Screen.Own) are released last-registered-first before its parent's
// OnResuming runs. A parent that is not ValidForResume is exited as well, and the
// cascade continues until a willing ancestor is found.
//
// The stack is driven from a single goroutine and is not safe for concurrent use.
package router
