package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/roach88/curveforge/internal/config"
)

// NewConfigCommand creates the config command group.
func NewConfigCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	cmd.AddCommand(newConfigShowCommand(rootOpts))
	cmd.AddCommand(newConfigInitCommand(rootOpts))

	return cmd
}

func newConfigShowCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show",
		Short:         "Print the resolved configuration",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := formatterFor(rootOpts, cmd)
			cfg := resolvedConfig(rootOpts)

			if formatter.IsJSON() {
				return formatter.Success(cfg)
			}
			data, err := yaml.Marshal(cfg)
			if err != nil {
				return WrapExitError(ExitCommandError, "encode config", err)
			}
			_, err = formatter.Writer.Write(data)
			return err
		},
	}
}

func newConfigInitCommand(rootOpts *RootOptions) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write the resolved configuration to a file",
		Long: `Write the resolved configuration to a YAML file.

Without a path the file is written to the user config directory, where it
is picked up by every later invocation.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := formatterFor(rootOpts, cmd)

			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				p, err := config.UserConfigPath()
				if err != nil {
					return WrapExitError(ExitCommandError, "locate user config directory", err)
				}
				path = p
			}

			if _, err := os.Stat(path); err == nil && !force {
				msg := fmt.Sprintf("%s already exists (use --force to overwrite)", path)
				_ = formatter.Error("E_EXISTS", msg, nil)
				return markReported(NewExitError(ExitCommandError, msg))
			} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
				return WrapExitError(ExitCommandError, "stat config file", err)
			}

			cfg := resolvedConfig(rootOpts)
			if err := config.WriteFile(&cfg, path); err != nil {
				_ = formatter.Error("E_WRITE", err.Error(), nil)
				return markReported(WrapExitError(ExitCommandError, "write config", err))
			}

			if formatter.IsJSON() {
				return formatter.Success(map[string]string{"path": path})
			}
			fmt.Fprintf(formatter.Writer, "✓ Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	return cmd
}

// resolvedConfig returns the configuration from the persistent pre-run, or
// the defaults when it did not execute.
func resolvedConfig(opts *RootOptions) config.Config {
	if opts.Config == (config.Config{}) {
		return config.DefaultConfig()
	}
	return opts.Config
}
