package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"hellod/internal/app"
	"hellod/internal/hello"
	"hellod/internal/httpapi"
	"hellod/internal/store"
	"hellod/internal/userapi"
)

func newServeCmd(opts *options) *cobra.Command {
	var (
		addr        string
		apiURL      string
		corsOrigins string
		devTools    bool
	)
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Run the HTTP API",
		Example: "  hellod serve --addr :8080\n  HELLOD_API_URL=http://localhost:9000 hellod serve",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := cmd.Flags()
			if f.Changed("addr") {
				opts.cfg.Addr = addr
			}
			if f.Changed("api-url") {
				opts.cfg.APIURL = apiURL
			}
			if f.Changed("cors-origins") {
				opts.cfg.CORSEnabled = true
				opts.cfg.CORSAllowedOrigins = splitCSV(corsOrigins)
			}
			if f.Changed("dev-tools") {
				opts.cfg.DevTools = devTools
			}
			if err := opts.cfg.Validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "HTTP listen address, e.g. :8080")
	cmd.Flags().StringVar(&apiURL, "api-url", "", "Base URL of the users API")
	cmd.Flags().StringVar(&corsOrigins, "cors-origins", "", "Comma-separated allowed CORS origins (enables CORS)")
	cmd.Flags().BoolVar(&devTools, "dev-tools", false, "Log every dispatched action with the resulting state")
	return cmd
}

func serve(parent context.Context, opts *options) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg, log := opts.cfg, opts.log

	loop := store.NewLoop(app.NewStore(storePublisher(opts)))
	client := userapi.New(userapi.Config{
		BaseURL: cfg.APIURL,
		Timeout: cfg.RequestTimeout(),
		Logger:  log.With().Str("component", "userapi").Logger(),
	}, loop)
	svc := hello.New(loop, client)

	httpapi.SetLogger(log)
	httpapi.SetDefaultLogLevel(cfg.LogLevel)
	httpapi.SetMaxBodyBytes(cfg.MaxBodyBytes)
	httpapi.SetLoadTimeout(cfg.RequestTimeout())
	httpapi.SetCORSOptions(cfg.CORSEnabled, cfg.CORSAllowedOrigins, cfg.CORSAllowedMethods, cfg.CORSAllowedHeaders)
	httpapi.SetLoadRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)
	httpapi.SetTrustProxy(cfg.TrustProxy)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()
	httpapi.SetBaseContext(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.NewMux(svc),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// The loop outlives the server so in-flight requests can finish.
	loopCtx, stopLoop := context.WithCancel(context.Background())
	defer stopLoop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := loop.Run(loopCtx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info().Str("addr", cfg.Addr).Str("api_url", cfg.APIURL).Bool("dev_tools", cfg.DevTools).Msg("hellod listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		defer stopLoop()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutCtx); err != nil {
			log.Warn().Err(err).Msg("graceful shutdown error")
		}
		log.Info().Dur("uptime", svc.Uptime()).Msg("hellod stopped")
		return nil
	})
	return g.Wait()
}
