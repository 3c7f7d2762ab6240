package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/okian/finsim/internal/config"
	"github.com/okian/finsim/pkg/logger"
)

// cli carries state shared by every subcommand once the root pre-run has
// loaded configuration.
type cli struct {
	configPath string
	cfg        *config.Config
	log        logger.Logger
}

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "finsim",
		Short:         "Deterministic personal-finance simulation tools",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return c.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "",
		"YAML config file (defaults to $FINSIM_CONFIG)")

	root.AddCommand(
		newProjectCmd(c),
		newInflateCmd(c),
		newClaimCmd(c),
		newRatesCmd(c),
	)
	return root
}

// setup loads configuration (defaults -> optional file -> env) and
// initializes logging on stderr so stdout stays machine-readable.
func (c *cli) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()

	var err error
	if c.configPath != "" {
		c.cfg, err = config.LoadFile(ctx, c.configPath)
	} else {
		c.cfg, err = config.Load(ctx)
	}
	if err != nil {
		return err
	}

	if err := logger.Init(logger.WithOutput(cmd.ErrOrStderr()), logger.WithFormat(c.cfg.LogFormat)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	c.log = logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(c.cfg.LogLevel); err != nil {
		c.log.Warn(ctx, "invalid log_level; falling back to info",
			logger.String("log_level", c.cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}
	return nil
}
