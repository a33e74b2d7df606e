package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"hellod/internal/app"
	"hellod/internal/store"
	"hellod/internal/view"
)

// Messages carrying view renders into the program.
type (
	helloMsg view.HelloProps
	loginMsg view.LoginProps
)

// renderBuffer bounds how many renders may queue before the loop blocks.
const renderBuffer = 16

// Mount connects the hello and login views to the store behind loop. Their
// renders arrive as tea messages on the returned channel. The returned
// unmount function detaches both views and closes the channel.
func Mount(ctx context.Context, loop *store.Loop[*app.State]) (<-chan tea.Msg, func() error, error) {
	out := make(chan tea.Msg, renderBuffer)
	send := func(msg tea.Msg) {
		select {
		case out <- msg:
		case <-ctx.Done():
		}
	}

	var (
		hello *view.Connected[*app.State, view.HelloProps]
		login *view.Connected[*app.State, view.LoginProps]
	)
	err := loop.Do(ctx, func(s *store.Store[*app.State]) {
		hello = view.Connect(s, view.SelectHello, view.Equal[view.HelloProps], func(p view.HelloProps) { send(helloMsg(p)) })
		login = view.Connect(s, view.SelectLogin, view.Equal[view.LoginProps], func(p view.LoginProps) { send(loginMsg(p)) })
		hello.Mount()
		login.Mount()
	})
	if err != nil {
		return nil, nil, err
	}

	unmount := func() error {
		err := loop.Do(context.Background(), func(*store.Store[*app.State]) {
			hello.Unmount()
			login.Unmount()
		})
		// Renders are only sent from the loop goroutine, so once the views
		// are detached (or the loop is gone) nothing writes to out anymore.
		close(out)
		return err
	}
	return out, unmount, nil
}

// waitForRender delivers the next render to the program.
func waitForRender(ch <-chan tea.Msg) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return nil
		}
		return msg
	}
}
