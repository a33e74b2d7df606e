package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"hellod/internal/app"
	"hellod/internal/store"
	"hellod/internal/userapi"
	"hellod/internal/view"
)

func newFetchUserCmd(opts *options) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:     "fetch-user <id>",
		Short:   "Load one user from the users API and print the greeting",
		Example: "  hellod fetch-user 2\n  hellod fetch-user 2 --json",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := view.ParseUserID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return fetchUser(ctx, opts, id, asJSON, cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the resulting state as JSON")
	return cmd
}

func fetchUser(parent context.Context, opts *options, id int, asJSON bool, out io.Writer) error {
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
		if _, err := client.FetchUser(gctx, id); err != nil {
			return err
		}
		st, err := loop.Snapshot(gctx)
		if err != nil {
			return err
		}
		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(app.Response(st))
		}
		greeting, err := view.Greeting(view.SelectHello(st))
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n%s\n", greeting, view.LoginText(view.SelectLogin(st)))
		return err
	})
	return g.Wait()
}
