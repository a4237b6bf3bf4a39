package router_test

import (
	"context"
	"fmt"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/router"
)

// Domain types
type Game struct {
	ID   int
	Name string
}

// gameList remembers its selection across a visit to the detail screen.
type gameList struct {
	router.BaseLifecycle
	games    []Game
	selected int
}

func (l *gameList) OnEntering(router.Transition) {
	fmt.Printf("List: showing %d games\n", len(l.games))
}

func (l *gameList) OnSuspending(e router.Transition) {
	fmt.Printf("List: suspended at index %d for %s\n", l.selected, e.Destination.Name())
}

func (l *gameList) OnResuming(e router.Transition) {
	fmt.Printf("List: restored to index %d after %s\n", l.selected, e.Source.Name())
}

type gameDetail struct {
	router.BaseLifecycle
	game Game
}

func (d *gameDetail) OnEntering(router.Transition) {
	fmt.Printf("Detail: showing %s\n", d.game.Name)
}

func (d *gameDetail) OnExiting(e router.Transition) bool {
	fmt.Printf("Detail: going back to %s\n", e.Destination.Name())
	return false
}

// Example demonstrates a push and an exit between two screens.
func Example() {
	list := &gameList{games: []Game{{ID: 1, Name: "Portal"}, {ID: 2, Name: "Half-Life"}}, selected: 1}

	root := router.NewScreen("games", list)
	stack, err := router.NewStack(root)
	if err != nil {
		fmt.Println(err)
		return
	}
	defer stack.Close()

	detail := router.NewScreen("detail", &gameDetail{game: list.games[list.selected]})
	if err := root.Push(detail); err != nil {
		fmt.Println(err)
		return
	}

	_ = detail.Exit()
	fmt.Println("Current:", stack.CurrentScreen().Name())

	// Output:
	// List: showing 2 games
	// List: suspended at index 1 for detail
	// Detail: showing Half-Life
	// Detail: going back to games
	// List: restored to index 1 after detail
	// Current: games
}

// confirmExit vetoes the first exit and allows the next one.
type confirmExit struct {
	router.BaseLifecycle
	asked bool
}

func (c *confirmExit) OnExiting(router.Transition) bool {
	if !c.asked {
		c.asked = true
		fmt.Println("Settings: unsaved changes, exit again to discard")
		return true
	}
	return false
}

// Example_veto demonstrates a screen vetoing its own exit.
func Example_veto() {
	stack, _ := router.NewStack(router.NewScreen("menu", nil))
	defer stack.Close()

	settings := router.NewScreen("settings", &confirmExit{})
	_ = stack.Root().Push(settings)

	_ = settings.Exit()
	fmt.Println("Current:", stack.CurrentScreen().Name())

	_ = settings.Exit()
	fmt.Println("Current:", stack.CurrentScreen().Name())

	// Output:
	// Settings: unsaved changes, exit again to discard
	// Current: settings
	// Current: menu
}

// Example_makeCurrent demonstrates returning to the root from deep in the chain.
func Example_makeCurrent() {
	root := router.NewScreen("home", &gameList{})
	stack, _ := router.NewStack(root)
	defer stack.Close()

	parent := root
	for _, name := range []string{"library", "game", "achievements"} {
		s := router.NewScreen(name, nil)
		_ = parent.Push(s)
		parent = s
	}
	fmt.Println("Depth:", stack.Len())

	_ = root.MakeCurrent()
	fmt.Println("Depth:", stack.Len())

	// Output:
	// List: showing 0 games
	// List: suspended at index 0 for library
	// Depth: 4
	// List: restored to index 0 after library
	// Depth: 1
}

// catalog fetches its content before it is entered.
type catalog struct {
	router.BaseLifecycle
	games []Game
}

func (c *catalog) Prepare(context.Context) error {
	c.games = []Game{{ID: 3, Name: "Portal 2"}}
	return nil
}

func (c *catalog) OnEntering(router.Transition) {
	fmt.Printf("Catalog: %d games ready\n", len(c.games))
}

// Example_asyncLoading demonstrates deferred activation of a screen that has to
// be prepared first.
func Example_asyncLoading() {
	queue := router.NewQueue()
	stack, _ := router.NewStack(router.NewScreen("home", nil), router.WithScheduler(queue))
	defer stack.Close()

	screen := router.NewScreen("catalog", &catalog{})
	_ = stack.Root().Push(screen)
	fmt.Println("State:", screen.State())

	_ = queue.Await(context.Background())
	fmt.Println("State:", screen.State())

	// Output:
	// State: loading
	// Catalog: 1 games ready
	// State: current
}
