// Package cli wires the emoji-life commands together.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"emoji-life/internal/config"
	"emoji-life/internal/pattern"
)

// RootOptions holds global flags and the state PersistentPreRunE prepares
// for every subcommand.
type RootOptions struct {
	ConfigPath string
	LogLevel   string

	Config config.Config
	Logger zerolog.Logger
}

// NewRootCommand creates the root command for the life CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "life",
		Short: "Conway's Game of Life on a tiny ECS",
		Long: `emoji-life runs Conway's Game of Life as entities, components and systems,
drawn with emoji in the terminal or shared with many viewers over SSH.

Settings come from defaults, then --config (key=value lines), then LIFE_*
environment variables, then flags.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.prepare(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "path to a key=value config file")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", "", "log level (trace|debug|info|warn|error)")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewBenchCommand(opts))
	cmd.AddCommand(NewPatternsCommand(opts))

	return cmd
}

// prepare loads the configuration and the console logger.
func (o *RootOptions) prepare(cmd *cobra.Command) error {
	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = o.LogLevel
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	o.Config = cfg
	o.Logger = newLogger(cmd.ErrOrStderr(), level)
	return nil
}

// newLogger returns a human readable logger at level. The global level is
// raised or lowered to match so trace output from the schedule gets through.
func newLogger(out io.Writer, level zerolog.Level) zerolog.Logger {
	zerolog.SetGlobalLevel(level)
	return zerolog.New(zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

// loadPatterns returns the built-ins plus any patterns from file.
func loadPatterns(file string) (*pattern.Set, error) {
	set := pattern.NewSet()
	if file == "" {
		return set, nil
	}
	extra, err := pattern.LoadFile(file)
	if err != nil {
		return nil, err
	}
	for _, p := range extra {
		set.Add(p)
	}
	return set, nil
}

// Execute runs the root command with args and exits non-zero on failure.
func Execute(args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := NewRootCommand()
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
