package main

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"hellod/internal/config"
	"hellod/internal/store"
)

// options is filled by the root command before any subcommand runs.
type options struct {
	configPath string
	logLevel   string
	cfg        config.Config
	log        zerolog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "hellod",
		Short:         "Greets a remote user from a single state store",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, used, err := config.Resolve(opts.configPath)
			if err != nil {
				return err
			}
			if opts.logLevel != "" {
				cfg.LogLevel = opts.logLevel
			}
			opts.cfg = cfg
			opts.log = newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			if used != "" {
				opts.log.Debug().Str("path", used).Msg("config loaded")
			}
			return nil
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Config file (.yaml/.yml/.json/.toml); defaults to ./hellod.yaml or ~/.config/hellod/config.yaml")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug|info|warn|error|off (overrides config and HELLOD_LOG_LEVEL)")

	root.AddCommand(newServeCmd(opts), newTUICmd(opts), newFetchUserCmd(opts))
	return root
}

// newLogger builds the process logger. "off" disables logging.
func newLogger(w io.Writer, level string) zerolog.Logger {
	if strings.EqualFold(level, "off") {
		return zerolog.Nop()
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if f, ok := w.(*os.File); !ok || f != os.Stderr {
		return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	}
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(cw).Level(lvl).With().Timestamp().Logger()
}

// storePublisher logs every dispatch with its state when dev tools are on.
func storePublisher(o *options) store.EventPublisher {
	if !o.cfg.DevTools {
		return nil
	}
	return store.NewLogPublisher(o.log.With().Str("component", "store").Logger().Level(zerolog.DebugLevel), true)
}

// splitCSV splits a comma-separated list, trimming blanks and dropping empties.
func splitCSV(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
