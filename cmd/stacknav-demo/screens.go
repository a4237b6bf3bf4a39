package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/bindable"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/router"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type game struct {
	Name string
	Year int
}

var games = []game{
	{Name: "Portal", Year: 2007},
	{Name: "Half-Life", Year: 1998},
	{Name: "Celeste", Year: 2018},
	{Name: "Outer Wilds", Year: 2019},
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#5FAFFF")).Bold(true)
	noteStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#7A7A7A")).Italic(true)
	warnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFAA00"))
)

var listKeys = struct {
	Up, Down, Select, Toggle key.Binding
}{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Select: key.NewBinding(key.WithKeys("enter")),
	Toggle: key.NewBinding(key.WithKeys("f", " ")),
}

// demo holds state shared between screens.
type demo struct {
	favourites *bindable.Bindable[[]string]
	logger     *slog.Logger
}

func newDemo(logger *slog.Logger) *demo {
	return &demo{favourites: bindable.New[[]string](nil), logger: logger}
}

// list is a cursor over a few lines of text.
type list struct {
	items  []string
	cursor int
}

// handle moves the cursor, or returns the selected index on enter.
func (l *list) handle(msg tea.KeyMsg) (selected int, handled bool) {
	switch {
	case key.Matches(msg, listKeys.Up):
		l.cursor = max(l.cursor-1, 0)
		return -1, true
	case key.Matches(msg, listKeys.Down):
		l.cursor = min(l.cursor+1, len(l.items)-1)
		return -1, true
	case key.Matches(msg, listKeys.Select):
		return l.cursor, true
	}
	return -1, false
}

func (l *list) view(title string) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	for i, item := range l.items {
		if i == l.cursor {
			b.WriteString(selectedStyle.Render("> " + item))
		} else {
			b.WriteString("  " + item)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// self remembers the screen a lifecycle belongs to.
type self struct {
	router.BaseLifecycle
	demo   *demo
	screen *router.Screen
}

func (s *self) OnEntering(e router.Transition) { s.screen = e.Destination }

func (s *self) push(name string, lc router.Lifecycle, opts ...router.ScreenOption) {
	if err := s.screen.Push(router.NewScreen(name, lc, opts...)); err != nil {
		s.demo.logger.Error("push failed", "from", s.screen.Name(), "to", name, "error", err)
	}
}

// child returns the base for a screen pushed from this one.
func (s *self) child() self { return self{demo: s.demo} }

func (s *self) exit() {
	if err := s.screen.Exit(); err != nil {
		s.demo.logger.Error("exit failed", "screen", s.screen.Name(), "error", err)
	}
}

type menuScreen struct {
	self
	list     list
	backFrom string
}

func (d *demo) menu() *menuScreen {
	return &menuScreen{
		self: self{demo: d},
		list: list{items: []string{
			"Library",
			"Catalog (slow to load)",
			"Settings (asks before leaving)",
			"Checkout (two steps)",
			"Broken screen",
		}},
	}
}

func (m *menuScreen) OnResuming(e router.Transition) {
	m.backFrom = e.Source.Name()
}

func (m *menuScreen) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	selected, handled := m.list.handle(msg)
	switch selected {
	case 0:
		m.push("library", &libraryScreen{self: m.child(), list: list{items: gameNames()}})
	case 1:
		m.push("catalog", &catalogScreen{self: m.child(), delay: 1500 * time.Millisecond})
	case 2:
		m.push("settings", &settingsScreen{self: m.child()})
	case 3:
		m.push("checkout", &checkoutScreen{self: m.child()}, router.WithValidForResume(false))
	case 4:
		m.push("broken", &brokenScreen{self: m.child()})
	}
	return nil, handled
}

func (m *menuScreen) View(int, int) string {
	out := m.list.view("stacknav demo")
	if n := len(m.demo.favourites.Get()); n > 0 {
		out += "\n" + noteStyle.Render(fmt.Sprintf("%d favourite(s)", n))
	}
	if m.backFrom != "" {
		out += "\n" + noteStyle.Render("back from "+m.backFrom)
	}
	return out
}

func gameNames() []string {
	names := make([]string, len(games))
	for i, g := range games {
		names[i] = g.Name
	}
	return names
}

type libraryScreen struct {
	self
	list list
}

func (l *libraryScreen) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	selected, handled := l.list.handle(msg)
	if selected >= 0 {
		g := games[selected]
		l.push(strings.ToLower(g.Name), &detailScreen{self: l.child(), game: g})
	}
	return nil, handled
}

func (l *libraryScreen) View(int, int) string {
	return l.list.view("Library")
}

// detailScreen shows one game and its favourite mark, kept up to date through
// a binding it owns.
type detailScreen struct {
	self
	game      game
	favourite bool
}

func (d *detailScreen) OnEntering(e router.Transition) {
	d.self.OnEntering(e)
	d.favourite = slices.Contains(d.demo.favourites.Get(), d.game.Name)
	d.screen.Own(d.demo.favourites.Bind(func(names []string) {
		d.favourite = slices.Contains(names, d.game.Name)
	}))
}

func (d *detailScreen) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if !key.Matches(msg, listKeys.Toggle) {
		return nil, false
	}
	d.demo.favourites.Update(func(names []string) []string {
		if i := slices.Index(names, d.game.Name); i >= 0 {
			return slices.Delete(slices.Clone(names), i, i+1)
		}
		return append(slices.Clone(names), d.game.Name)
	})
	return nil, true
}

func (d *detailScreen) View(int, int) string {
	mark := "☆"
	if d.favourite {
		mark = "★"
	}
	return titleStyle.Render(fmt.Sprintf("%s %s", mark, d.game.Name)) + "\n" +
		fmt.Sprintf("Released %d\n\n", d.game.Year) +
		noteStyle.Render("f toggles favourite")
}

// catalogScreen fetches its content before it is entered.
type catalogScreen struct {
	self
	delay time.Duration
	games []game
}

func (c *catalogScreen) Prepare(ctx context.Context) error {
	select {
	case <-time.After(c.delay):
	case <-ctx.Done():
		return ctx.Err()
	}
	c.games = slices.Clone(games)
	slices.Reverse(c.games)
	return nil
}

func (c *catalogScreen) View(int, int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Catalog"))
	b.WriteString("\n")
	for _, g := range c.games {
		fmt.Fprintf(&b, "%d  %s\n", g.Year, g.Name)
	}
	return b.String()
}

// settingsScreen asks once before discarding unsaved changes.
type settingsScreen struct {
	self
	sound  bool
	dirty  bool
	warned bool
}

func (s *settingsScreen) OnExiting(router.Transition) bool {
	if s.dirty && !s.warned {
		s.warned = true
		return true
	}
	return false
}

func (s *settingsScreen) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if !key.Matches(msg, listKeys.Toggle) {
		return nil, false
	}
	s.sound = !s.sound
	s.dirty = true
	s.warned = false
	return nil, true
}

func (s *settingsScreen) View(int, int) string {
	state := "off"
	if s.sound {
		state = "on"
	}
	out := titleStyle.Render("Settings") + "\n" + fmt.Sprintf("Sound: %s  (space toggles)\n", state)
	if s.warned {
		out += "\n" + warnStyle.Render("Unsaved changes. Press esc again to discard them.")
	}
	return out
}

// checkoutScreen is not valid for resume: once its confirmation step exits,
// it exits too and the menu resumes.
type checkoutScreen struct {
	self
}

func (c *checkoutScreen) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if !key.Matches(msg, listKeys.Select) {
		return nil, false
	}
	c.push("confirm", &confirmScreen{self: c.child()})
	return nil, true
}

func (c *checkoutScreen) View(int, int) string {
	return titleStyle.Render("Checkout") + "\n" + "Press enter to continue to confirmation."
}

type confirmScreen struct {
	self
}

func (c *confirmScreen) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if !key.Matches(msg, listKeys.Select) {
		return nil, false
	}
	c.exit()
	return nil, true
}

func (c *confirmScreen) View(int, int) string {
	return titleStyle.Render("Confirm") + "\n" + "Press enter to place the order."
}

var errUnreachable = errors.New("content server unreachable")

// brokenScreen never finishes preparing.
type brokenScreen struct {
	self
}

func (brokenScreen) Prepare(context.Context) error {
	return errUnreachable
}
