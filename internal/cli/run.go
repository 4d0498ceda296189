package cli

import (
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"emoji-life/internal/config"
	"emoji-life/internal/game"
)

// NewRunCommand creates the run command.
func NewRunCommand(root *RootOptions) *cobra.Command {
	board := &boardFlags{}
	var logFile string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Watch a board evolve in this terminal",
		Long: `Run the simulation in the current terminal.

The terminal belongs to the board while it runs, so logs go to --log-file
(or LIFE_LOG_FILE) and are discarded when neither is set.

Example:
  life run --pattern pulsar --theme space
  life run --width 80 --height 40 --density 0.3 --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.Config
			board.apply(cmd.Flags(), &cfg)
			if cmd.Flags().Changed("log-file") {
				cfg.LogFile = logFile
			}
			return runLocal(cmd, cfg)
		},
	}

	board.bind(cmd.Flags())
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")

	return cmd
}

func runLocal(cmd *cobra.Command, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger, closeLog, err := fileLogger(cfg.LogFile, level)
	if err != nil {
		return err
	}
	defer closeLog()

	patterns, err := loadPatterns(cfg.PatternFile)
	if err != nil {
		return err
	}
	sim, err := game.NewSim(cfg, patterns, logger)
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return eris.Wrap(err, "open terminal")
	}
	if err := screen.Init(); err != nil {
		return eris.Wrap(err, "init terminal")
	}
	g, err := game.New(screen, sim, cfg, logger)
	if err != nil {
		screen.Fini()
		return err
	}
	logger.Info().Str("pattern", sim.PatternName()).Int64("seed", sim.Seed()).Msg("run started")
	return g.Run(cmd.Context())
}

// fileLogger appends JSON logs to path. An empty path discards them.
func fileLogger(path string, level zerolog.Level) (zerolog.Logger, func(), error) {
	if path == "" {
		return zerolog.Nop(), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), func() {}, eris.Wrapf(err, "open log file %s", path)
	}
	logger := zerolog.New(f).Level(level).With().Timestamp().Logger()
	return logger, func() { _ = f.Close() }, nil
}
