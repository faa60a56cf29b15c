package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/curveforge/internal/config"
	"github.com/roach88/curveforge/internal/ctxlog"
	"github.com/roach88/curveforge/internal/ir"
)

// RootOptions holds global flags for all commands. After the persistent
// pre-run, Format, DB and Logger hold the resolved configuration.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigFile string
	DB         string
	LogLevel   string
	LogFormat  string

	Config config.Config
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the curveforge CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:     "curveforge",
		Short:   "curveforge - build market curves from CUE definitions",
		Long:    "Compile curve definitions, bootstrap them through the builder registry, and keep every build in a SQLite log.",
		Version: ir.Version,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return resolveConfig(opts, cmd)
		},
	}

	// Global flags
	pf := cmd.PersistentFlags()
	pf.BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	pf.StringVar(&opts.Format, "format", "text", "output format (json|text)")
	pf.StringVar(&opts.ConfigFile, "config", "", "config file (default: ./curveforge.yaml or the user config dir)")
	pf.StringVar(&opts.DB, "db", "", "build log database path (default: curveforge.db)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "log level (debug|info|warn|error)")
	pf.StringVar(&opts.LogFormat, "log-format", "", "log format (text|json)")

	cmd.AddCommand(NewTypesCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewBuildCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))
	cmd.AddCommand(NewConfigCommand(opts))

	return cmd
}

// resolveConfig layers defaults, config file, environment and flags, then
// attaches a logger to the command context.
func resolveConfig(opts *RootOptions, cmd *cobra.Command) error {
	cfg, err := config.Load[config.Config](cmd.Flags(), config.Defaults(), opts.ConfigFile)
	if err != nil {
		return NewExitError(ExitCommandError, err.Error())
	}
	if !isValidFormat(cfg.Format) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", cfg.Format, ValidFormats))
	}
	if err := cfg.Validate(); err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid configuration: %v", err))
	}

	opts.Config = cfg
	opts.Format = cfg.Format
	opts.DB = cfg.DB
	opts.LogLevel = cfg.Log.Level
	opts.LogFormat = cfg.Log.Format
	opts.Logger = ctxlog.New(cfg.Log.Level, cfg.Log.Format, cmd.ErrOrStderr())

	cmd.SetContext(ctxlog.WithLogger(cmd.Context(), opts.Logger))
	opts.Logger.Debug("configuration resolved", "db", cfg.DB, "format", cfg.Format, "command", cmd.Name())
	return nil
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}

// formatterFor builds the output formatter for a command. Verbose logs go
// to stderr so they never corrupt JSON output.
func formatterFor(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
