package cli

import (
	"errors"
	"fmt"

	gossh "github.com/gliderlabs/ssh"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"emoji-life/internal/config"
	"emoji-life/internal/game"
	"emoji-life/internal/server"
)

// defaultHostKey is where serve keeps its key when none is configured.
const defaultHostKey = "life_host_key"

// NewServeCommand creates the serve command.
func NewServeCommand(root *RootOptions) *cobra.Command {
	board := &boardFlags{}
	var (
		port        int
		hostKey     string
		maxSessions int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Share one board with viewers over SSH",
		Long: `Serve a single shared board over SSH. Every viewer sees the same world and
may pause, step, reseed or drop patterns; theme and panning are per viewer.

Example:
  life serve --port 2222 --pattern soup --spawn-every 50
  ssh -t -p 2222 localhost`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := root.Config
			board.apply(cmd.Flags(), &cfg)
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("host-key") {
				cfg.HostKey = hostKey
			}
			if cmd.Flags().Changed("max-sessions") {
				cfg.MaxSessions = maxSessions
			}
			return serve(cmd, root, cfg)
		},
	}

	def := config.Default()
	board.bind(cmd.Flags())
	cmd.Flags().IntVar(&port, "port", def.Port, "SSH listen port")
	cmd.Flags().StringVar(&hostKey, "host-key", defaultHostKey, "PEM host key path (generated when absent)")
	cmd.Flags().IntVar(&maxSessions, "max-sessions", def.MaxSessions, "maximum concurrent viewers")

	return cmd
}

func serve(cmd *cobra.Command, root *RootOptions, cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.HostKey == "" {
		cfg.HostKey = defaultHostKey
	}
	logger := root.Logger

	patterns, err := loadPatterns(cfg.PatternFile)
	if err != nil {
		return err
	}
	sim, err := game.NewSim(cfg, patterns, logger)
	if err != nil {
		return err
	}
	srv, err := server.New(sim, cfg, logger)
	if err != nil {
		return err
	}
	signer, err := server.LoadOrCreateHostKey(cfg.HostKey, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	go srv.Run(ctx)

	sshSrv := srv.NewSSHServer(fmt.Sprintf(":%d", cfg.Port), signer)
	go func() {
		<-ctx.Done()
		_ = sshSrv.Close()
	}()

	logger.Info().
		Int("port", cfg.Port).
		Int("max_sessions", cfg.MaxSessions).
		Str("pattern", sim.PatternName()).
		Msgf("listening, connect with: ssh -t -p %d localhost", cfg.Port)
	if err := sshSrv.ListenAndServe(); err != nil && !errors.Is(err, gossh.ErrServerClosed) {
		return eris.Wrap(err, "ssh server")
	}
	logger.Info().Msg("server stopped")
	return nil
}
