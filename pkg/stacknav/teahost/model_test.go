package teahost

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/BrandonKowalski/stacknav/pkg/stacknav/router"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var discard = slog.New(slog.DiscardHandler)

func newTestModel(t *testing.T, root *router.Screen, opts Options) *Model {
	t.Helper()
	opts.Logger = discard
	opts.StackOptions = append([]router.Option{router.WithLogger(discard)}, opts.StackOptions...)
	m, err := New(root, opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = m.Close() })
	return m
}

func keyMsg(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func runeMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func requireQuit(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

// page renders a fixed body.
type page struct {
	router.BaseLifecycle
	body string
}

func (p *page) View(int, int) string { return p.body }

// opener pushes a new screen when "o" is pressed and swallows "x".
type opener struct {
	router.BaseLifecycle
	self   *router.Screen
	opened int
}

func (o *opener) OnEntering(e router.Transition) { o.self = e.Destination }

func (o *opener) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "o":
		o.opened++
		_ = o.self.Push(router.NewScreen("opened", nil))
		return nil, true
	case "x":
		return nil, true
	}
	return nil, false
}

type slowPage struct {
	router.BaseLifecycle
	err error
}

func (p *slowPage) Prepare(context.Context) error { return p.err }

func TestModel_View(t *testing.T) {
	root := router.NewScreen("menu", &page{body: "menu body"})
	m := newTestModel(t, root, Options{})

	view := m.View()
	assert.Contains(t, view, "menu")
	assert.Contains(t, view, "menu body")
	assert.Contains(t, view, "1 screen")
	assert.Contains(t, view, "esc back")

	require.NoError(t, root.Push(router.NewScreen("detail", nil)))

	view = m.View()
	assert.Contains(t, view, "menu › detail")
	assert.Contains(t, view, "2 screens")
	assert.NotContains(t, view, "menu body")
}

func TestModel_ViewLocalized(t *testing.T) {
	m := newTestModel(t, router.NewScreen("menu", nil), Options{Language: "es"})

	view := m.View()
	assert.Contains(t, view, "1 pantalla")
	assert.Contains(t, view, "esc atrás")
}

func TestModel_BackExitsCurrentScreen(t *testing.T) {
	root := router.NewScreen("menu", nil)
	m := newTestModel(t, root, Options{})
	detail := router.NewScreen("detail", nil)
	require.NoError(t, root.Push(detail))

	_, cmd := m.Update(keyMsg(tea.KeyEsc))

	assert.True(t, root.IsCurrent())
	assert.Equal(t, router.StateExited, detail.State())
	require.NotNil(t, cmd, "expiry tick")
	assert.Contains(t, m.View(), "detail")
	require.Contains(t, m.fading, detail.ID())

	m.Update(expiredMsg{id: detail.ID()})

	assert.Empty(t, m.fading)
	assert.Empty(t, m.fadingOrder)
	assert.NotContains(t, m.View(), "detail")
}

func TestModel_BackOnRootQuits(t *testing.T) {
	m := newTestModel(t, router.NewScreen("menu", nil), Options{})

	_, cmd := m.Update(keyMsg(tea.KeyEsc))

	requireQuit(t, cmd)
	assert.Nil(t, m.Stack().CurrentScreen())
}

func TestModel_ForceQuit(t *testing.T) {
	m := newTestModel(t, router.NewScreen("menu", nil), Options{})

	_, cmd := m.Update(keyMsg(tea.KeyCtrlC))

	requireQuit(t, cmd)
	assert.True(t, m.Stack().Root().IsCurrent())
}

func TestModel_TopMakesRootCurrent(t *testing.T) {
	root := router.NewScreen("menu", nil)
	m := newTestModel(t, root, Options{})
	parent := root
	for _, name := range []string{"a", "b", "c"} {
		s := router.NewScreen(name, nil)
		require.NoError(t, parent.Push(s))
		parent = s
	}

	m.Update(keyMsg(tea.KeyHome))

	assert.True(t, root.IsCurrent())
	assert.Equal(t, 1, m.Stack().Len())
	assert.Len(t, m.fadingOrder, 3)
}

func TestModel_CurrentScreenSeesKeysFirst(t *testing.T) {
	lc := &opener{}
	root := router.NewScreen("menu", lc)
	m := newTestModel(t, root, Options{})

	m.Update(runeMsg("o"))

	assert.Equal(t, 1, lc.opened)
	require.Equal(t, 2, m.Stack().Len())
	assert.Equal(t, "opened", m.Stack().CurrentScreen().Name())

	// keys the current screen does not handle reach the host
	m.Update(keyMsg(tea.KeyEsc))
	assert.True(t, root.IsCurrent())

	// the root handles "x" itself, so nothing happens
	_, cmd := m.Update(runeMsg("x"))
	assert.Nil(t, cmd)
	assert.True(t, root.IsCurrent())
}

func TestModel_LoadCompletesThroughPostedMsg(t *testing.T) {
	root := router.NewScreen("menu", nil)
	m := newTestModel(t, root, Options{})
	slow := router.NewScreen("slow", &slowPage{})

	require.NoError(t, root.Push(slow))

	assert.Equal(t, router.StateLoading, slow.State())
	assert.Contains(t, m.View(), "Loading… slow")

	msg := m.waitForPosted()()
	require.IsType(t, postedMsg{}, msg)
	_, cmd := m.Update(msg)

	assert.NotNil(t, cmd, "waits for the next post")
	assert.True(t, slow.IsCurrent())
	assert.NotContains(t, m.View(), "Loading…")
}

func TestModel_LoadFailedShowsStatus(t *testing.T) {
	root := router.NewScreen("menu", nil)
	m := newTestModel(t, root, Options{})
	broken := router.NewScreen("broken", &slowPage{err: errors.New("boom")})

	require.NoError(t, root.Push(broken))
	m.Update(m.waitForPosted()())

	assert.True(t, root.IsCurrent())
	assert.Contains(t, m.View(), "Could not open broken: boom")
	assert.Empty(t, m.fading, "never entered, nothing to fade")

	// the next navigation clears it
	m.Update(keyMsg(tea.KeyHome))
	assert.NotContains(t, m.View(), "Could not open")
}

func TestModel_PostNeverBlocks(t *testing.T) {
	m := newTestModel(t, router.NewScreen("menu", nil), Options{})

	ran := 0
	for range 10 {
		m.Post(func() { ran++ })
	}
	m.Update(m.waitForPosted()())

	assert.Equal(t, 10, ran)
}

func TestModel_CloseReleasesWaiter(t *testing.T) {
	m := newTestModel(t, router.NewScreen("menu", nil), Options{})

	require.NoError(t, m.Close())

	assert.Nil(t, m.waitForPosted()())
}

func TestModel_RejectedRoot(t *testing.T) {
	_, err := New(router.NewScreen("menu", nil, router.WithValidForPush(false)), Options{Logger: discard})

	require.ErrorIs(t, err, router.ErrRootRejected)
}
