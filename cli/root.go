package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/izouxv/goShamir/config"
	"github.com/izouxv/goShamir/logging"
)

// NewRootCommand creates the root command of the shamir CLI.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shamir",
		Short: "Reconstruct secrets from Shamir shares",
		Long: `Reconstruct a secret from a threshold of shares by Lagrange
interpolation at zero, using exact integer arithmetic.`,
		SilenceUsage:  true,
		SilenceErrors: true, // Execute reports errors raised before a command runs
	}

	config.AddGlobalFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewSolveCommand())
	cmd.AddCommand(NewSplitCommand())

	return cmd
}

// Execute runs cmd and returns an error carrying the process exit code.
// Errors the commands did not report themselves (unknown commands, bad flags,
// wrong argument counts) are printed to stderr and exit with ExitCommandError.
func Execute(ctx context.Context, cmd *cobra.Command) error {
	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
	fmt.Fprintf(cmd.ErrOrStderr(), "Run '%s --help' for usage.\n", cmd.CommandPath())
	return WrapExitError(ExitCommandError, "invalid command", err)
}

// env is what every command needs once its flags are parsed.
type env struct {
	cfg       config.Config
	log       *zap.Logger
	formatter *OutputFormatter
}

// setup resolves the configuration of cmd and builds its logger and formatter.
// Configuration errors are reported in text form since the format itself may
// be the invalid setting.
func setup(cmd *cobra.Command) (*env, error) {
	formatter := &OutputFormatter{
		Format:    "text",
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
	}

	v, err := config.GetViper(cmd.Flags())
	if err != nil {
		return nil, formatter.Fail("invalid configuration", err)
	}
	cfg, err := config.FromViper(v, cmd.Flags())
	if err != nil {
		return nil, formatter.Fail("invalid configuration", err)
	}
	formatter.Format = cfg.Format
	formatter.Verbose = cfg.Verbose

	logger, err := logging.New(logging.Config{
		Level:  cfg.LogLevel,
		JSON:   cfg.LogFormat == "json",
		Writer: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, formatter.Fail("invalid configuration", err)
	}
	logger = logger.With(
		zap.String("run_id", uuid.NewString()),
		zap.String("command", cmd.Name()),
	)

	return &env{cfg: cfg, log: logger, formatter: formatter}, nil
}
