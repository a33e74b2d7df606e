package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"hellod/internal/app"
	"hellod/internal/store"
)

// Run mounts the views on loop and runs the program until the user quits or
// ctx is done. Any fetch still in flight is abandoned on exit.
func Run(ctx context.Context, loop *store.Loop[*app.State], f Fetcher, opts ...tea.ProgramOption) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	renders, unmount, err := Mount(runCtx, loop)
	if err != nil {
		return fmt.Errorf("mount views: %w", err)
	}

	p := tea.NewProgram(New(runCtx, loop, f, renders), append([]tea.ProgramOption{tea.WithContext(runCtx)}, opts...)...)
	_, runErr := p.Run()

	cancel()
	if err := unmount(); err != nil && !errors.Is(err, store.ErrLoopClosed) {
		return errors.Join(runErr, fmt.Errorf("unmount views: %w", err))
	}
	if errors.Is(runErr, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return runErr
}
