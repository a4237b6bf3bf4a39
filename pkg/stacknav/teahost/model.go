// Package teahost runs a router.Stack inside a Bubble Tea program.
//
// The Model is the stack's Host and its Scheduler: load completions posted by
// worker goroutines arrive as messages and run on the Bubble Tea goroutine, and
// keys are routed to the current screen before the host's own bindings.
//
//	root := router.NewScreen("menu", &menu{})
//	m, err := teahost.New(root, teahost.Options{Language: "en"})
//	if err != nil {
//	    return err
//	}
//	defer m.Close()
//
//	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
package teahost

import (
	"log/slog"
	"sync"
	"time"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/internal"
	"github.com/BrandonKowalski/stacknav/pkg/stacknav/router"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyHandler is implemented by lifecycles that take input while current.
// handled reports whether the host should skip its own bindings.
type KeyHandler interface {
	HandleKey(msg tea.KeyMsg) (cmd tea.Cmd, handled bool)
}

// Viewer is implemented by lifecycles that render a body.
type Viewer interface {
	View(width, height int) string
}

// Options configures a Model.
type Options struct {
	Language     string          // BCP 47 tag for host strings
	Keys         *KeyMap         // Defaults to DefaultKeyMap()
	Theme        string          // Built-in theme name, see ThemeNames
	Styles       *Styles         // Overrides Theme
	StackOptions []router.Option // Passed to router.NewStack; host and scheduler are set by the Model
	Logger       *slog.Logger    // Defaults to the internal logger
}

// postedMsg wakes the model to run work posted by load workers.
type postedMsg struct{}

// expiredMsg is delivered once an exited screen's lifetime has ended.
type expiredMsg struct {
	id uint64
}

type fadingScreen struct {
	name  string
	until time.Time
}

// Model is a tea.Model hosting a router.Stack.
type Model struct {
	stack     *router.Stack
	keys      KeyMap
	styles    Styles
	localizer *internal.Localizer
	logger    *slog.Logger

	mu      sync.Mutex
	posted  []func()
	signal  chan struct{}
	done    chan struct{}
	closeMu sync.Once

	// cmds collects commands raised by Host callbacks during one Update.
	cmds []tea.Cmd

	width, height int
	loading       map[uint64]string
	fading        map[uint64]fadingScreen
	fadingOrder   []uint64
	status        string
}

// New creates a Model and a stack with root as its bottom screen.
func New(root *router.Screen, opts Options) (*Model, error) {
	m := &Model{
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		localizer: internal.NewLocalizer(opts.Language),
		logger:    opts.Logger,
		signal:    make(chan struct{}, 1),
		done:      make(chan struct{}),
		loading:   make(map[uint64]string),
		fading:    make(map[uint64]fadingScreen),
	}
	if opts.Keys != nil {
		m.keys = *opts.Keys
	}
	if opts.Theme != "" {
		theme, err := ThemeByName(opts.Theme)
		if err != nil {
			return nil, err
		}
		m.styles = theme.Styles()
	}
	if opts.Styles != nil {
		m.styles = *opts.Styles
	}
	if m.logger == nil {
		m.logger = internal.GetInternalLogger()
	}

	stackOpts := append([]router.Option{}, opts.StackOptions...)
	stackOpts = append(stackOpts, router.WithHost(m), router.WithScheduler(m))

	stack, err := router.NewStack(root, stackOpts...)
	if err != nil {
		return nil, err
	}
	m.stack = stack
	return m, nil
}

// Stack returns the hosted stack.
func (m *Model) Stack() *router.Stack { return m.stack }

// Close stops waiting for posted work and closes the stack.
func (m *Model) Close() error {
	m.closeMu.Do(func() { close(m.done) })
	return m.stack.Close()
}

// Post queues fn to run on the Bubble Tea goroutine. It never blocks.
func (m *Model) Post(fn func()) {
	m.mu.Lock()
	m.posted = append(m.posted, fn)
	m.mu.Unlock()

	select {
	case m.signal <- struct{}{}:
	default:
	}
}

func (m *Model) waitForPosted() tea.Cmd {
	return func() tea.Msg {
		select {
		case <-m.signal:
			return postedMsg{}
		case <-m.done:
			return nil
		}
	}
}

func (m *Model) runPosted() {
	for {
		m.mu.Lock()
		fns := m.posted
		m.posted = nil
		m.mu.Unlock()

		if len(fns) == 0 {
			return
		}
		for _, fn := range fns {
			fn()
		}
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(append(m.takeCmds(), m.waitForPosted())...)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case postedMsg:
		m.runPosted()
		cmd = m.waitForPosted()

	case expiredMsg:
		m.dropFading(msg.id)

	case tea.KeyMsg:
		var quit bool
		cmd, quit = m.handleKey(msg)
		if quit {
			_ = m.Close()
			return m, tea.Quit
		}
	}

	if m.stack.CurrentScreen() == nil && m.stack.Pending() == 0 {
		_ = m.Close()
		return m, tea.Quit
	}

	return m, tea.Batch(append(m.takeCmds(), cmd)...)
}

// handleKey routes a key to the current screen first, then to the host's own
// bindings.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return nil, true
	}

	current := m.stack.CurrentScreen()
	if current == nil {
		return nil, false
	}

	if h, ok := current.Lifecycle().(KeyHandler); ok {
		if cmd, handled := h.HandleKey(msg); handled {
			return cmd, false
		}
	}

	switch {
	case key.Matches(msg, m.keys.Back):
		m.status = ""
		if err := current.Exit(); err != nil {
			m.logger.Error("exit failed", "screen", current.Name(), "error", err)
		}

	case key.Matches(msg, m.keys.Top):
		m.status = ""
		if err := m.stack.Root().MakeCurrent(); err != nil {
			m.logger.Error("make current failed", "screen", m.stack.Root().Name(), "error", err)
		}
	}

	return nil, false
}

func (m *Model) takeCmds() []tea.Cmd {
	cmds := m.cmds
	m.cmds = nil
	return cmds
}

func (m *Model) dropFading(id uint64) {
	delete(m.fading, id)
	for i, fid := range m.fadingOrder {
		if fid == id {
			m.fadingOrder = append(m.fadingOrder[:i], m.fadingOrder[i+1:]...)
			break
		}
	}
}

// Host

func (m *Model) ScreenPushed(prev, next *router.Screen) {
	m.logger.Debug("host: pushed", "from", nameOf(prev), "to", next.Name())
}

func (m *Model) ScreenExited(prev, next *router.Screen) {
	m.logger.Debug("host: exited", "from", prev.Name(), "to", nameOf(next))
}

func (m *Model) StateChanged(s *router.Screen, from, to router.State) {
	if to == router.StateLoading {
		m.loading[s.ID()] = s.Name()
		return
	}
	delete(m.loading, s.ID())
}

// Expire keeps s in the breadcrumb until at, then drops it. Screens that
// expire at once, such as those whose load failed, are not shown.
func (m *Model) Expire(s *router.Screen, at time.Time) {
	if !at.After(time.Now()) {
		return
	}
	id := s.ID()
	m.fading[id] = fadingScreen{name: s.Name(), until: at}
	m.fadingOrder = append(m.fadingOrder, id)
	m.cmds = append(m.cmds, tea.Tick(max(time.Until(at), 0), func(time.Time) tea.Msg {
		return expiredMsg{id: id}
	}))
}

func (m *Model) LoadFailed(s *router.Screen, err error) {
	m.status = m.localizer.Text("StatusLoadFailed", map[string]any{
		"Screen": s.Name(),
		"Error":  err.Error(),
	})
}

func nameOf(s *router.Screen) string {
	if s == nil {
		return ""
	}
	return s.Name()
}
