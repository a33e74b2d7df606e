// Package tui hosts the login and hello screens in a terminal using
// bubbletea. All state lives in the store; the model only keeps the last
// projections it was sent plus local input state.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"hellod/internal/app"
	"hellod/internal/store"
	"hellod/internal/view"
	"hellod/pkg/types"
)

// Fetcher loads a user into the store.
type Fetcher interface {
	FetchUser(ctx context.Context, id int) (types.User, error)
}

type screen int

const (
	screenLogin screen = iota
	screenHello
)

type fetchDoneMsg struct {
	seq int
	id  int
	err error
}

type dispatchDoneMsg struct {
	action string
	err    error
}

// Model is the bubbletea model for the whole application.
type Model struct {
	ctx        context.Context
	dispatcher store.Dispatcher
	fetcher    Fetcher
	renders    <-chan tea.Msg

	screen  screen
	hello   view.HelloProps
	login   view.LoginProps
	input   textinput.Model
	loading int // id being fetched, 0 when idle
	seq     int
	cancel  context.CancelFunc
	err     error
	width   int
	styles  styles
}

// New builds the model. renders is the channel returned by Mount.
func New(ctx context.Context, d store.Dispatcher, f Fetcher, renders <-chan tea.Msg) Model {
	in := textinput.New()
	in.Placeholder = "user id, e.g. 2"
	in.CharLimit = 9
	in.Width = 20
	in.Focus()
	return Model{
		ctx:        ctx,
		dispatcher: d,
		fetcher:    f,
		renders:    renders,
		input:      in,
		hello:      view.HelloProps{Name: view.DefaultName, EnthusiasmLevel: app.MinEnthusiasm},
		styles:     defaultStyles(),
	}
}

// Init starts listening for view renders.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForRender(m.renders))
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case helloMsg:
		m.hello = view.HelloProps(msg)
		return m, waitForRender(m.renders)

	case loginMsg:
		m.login = view.LoginProps(msg)
		if m.login.LoggedIn {
			m.screen = screenHello
			m.input.Blur()
		} else {
			m.screen = screenLogin
			m.input.Focus()
		}
		return m, waitForRender(m.renders)

	case fetchDoneMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.stopFetch()
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.err = fmt.Errorf("load user #%d: %w", msg.id, msg.err)
		}
		return m, nil

	case dispatchDoneMsg:
		if msg.err != nil {
			m.err = fmt.Errorf("%s: %w", msg.action, msg.err)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.stopFetch()
			return m, tea.Quit
		}
		if m.screen == screenHello {
			return m.updateHello(msg)
		}
		return m.updateLogin(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		id, err := view.ParseUserID(m.input.Value())
		if err != nil {
			m.err = err
			return m, nil
		}
		return m.startFetch(id)
	case "esc":
		if m.loading != 0 {
			m.stopFetch()
			m.seq++
			return m, nil
		}
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateHello(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "+", "up", "k":
		return m, m.dispatch(app.IncrementEnthusiasm{})
	case "-", "down", "j":
		return m, m.dispatch(app.DecrementEnthusiasm{})
	case "l":
		m.input.SetValue("")
		return m, m.dispatch(app.ClearUser{})
	case "q", "esc":
		return m, tea.Quit
	}
	return m, nil
}

// startFetch cancels any fetch in flight and starts a new one. Responses of
// cancelled fetches are dropped by the fetcher and ignored here by seq.
func (m Model) startFetch(id int) (tea.Model, tea.Cmd) {
	m.stopFetch()
	m.seq++
	ctx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.loading = id
	m.err = nil
	seq, f := m.seq, m.fetcher
	return m, func() tea.Msg {
		_, err := f.FetchUser(ctx, id)
		return fetchDoneMsg{seq: seq, id: id, err: err}
	}
}

func (m *Model) stopFetch() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.loading = 0
}

func (m Model) dispatch(a store.Action) tea.Cmd {
	ctx, d := m.ctx, m.dispatcher
	return func() tea.Msg {
		return dispatchDoneMsg{action: a.Type(), err: d.DispatchContext(ctx, a)}
	}
}

// View renders the current screen.
func (m Model) View() string {
	var b strings.Builder
	switch m.screen {
	case screenHello:
		b.WriteString(m.styles.Title.Render("Hello") + "\n\n")
		greeting, err := view.Greeting(m.hello)
		if err != nil {
			b.WriteString(m.styles.Error.Render(err.Error()) + "\n")
		} else {
			b.WriteString(m.styles.Greeting.Render(greeting) + "\n")
		}
		b.WriteString(m.styles.Status.Render(view.LoginText(m.login)) + "\n")
		if m.login.Avatar != "" {
			b.WriteString(m.styles.Status.Render("avatar: "+m.login.Avatar) + "\n")
		}
		m.writeErr(&b)
		b.WriteString("\n" + m.styles.Help.Render("+/- enthusiasm • l log out • q quit"))
	default:
		b.WriteString(m.styles.Title.Render("Log in") + "\n\n")
		b.WriteString(m.styles.Status.Render(view.LoginText(m.login)) + "\n\n")
		b.WriteString(m.input.View() + "\n")
		if m.loading != 0 {
			b.WriteString(m.styles.Status.Render(fmt.Sprintf("Loading user #%d…", m.loading)) + "\n")
		}
		m.writeErr(&b)
		b.WriteString("\n" + m.styles.Help.Render("enter log in • esc cancel/quit"))
	}
	frame := m.styles.Frame
	if m.width > 0 {
		frame = frame.MaxWidth(m.width)
	}
	return frame.Render(b.String())
}

func (m Model) writeErr(b *strings.Builder) {
	if m.err != nil {
		b.WriteString(m.styles.Error.Render("error: "+m.err.Error()) + "\n")
	}
}
