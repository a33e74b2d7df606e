package main

import (
	"context"
	"errors"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"hellod/internal/app"
	"hellod/internal/store"
	"hellod/internal/tui"
	"hellod/internal/userapi"
)

func newTUICmd(opts *options) *cobra.Command {
	var logFile string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Log in and get greeted in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The terminal belongs to the UI; logs go to a file or nowhere.
			opts.log = zerolog.Nop()
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				defer f.Close()
				opts.log = newLogger(f, opts.cfg.LogLevel)
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return runTUI(ctx, opts)
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "Write logs to this file while the UI runs")
	return cmd
}

func runTUI(parent context.Context, opts *options) error {
	loop := store.NewLoop(app.NewStore(storePublisher(opts)))
	client := userapi.New(userapi.Config{
		BaseURL: opts.cfg.APIURL,
		Timeout: opts.cfg.RequestTimeout(),
		Logger:  opts.log.With().Str("component", "userapi").Logger(),
	}, loop)

	ctx, cancel := context.WithCancel(parent)
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := loop.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		defer cancel()
		return tui.Run(gctx, loop, client)
	})
	return g.Wait()
}
