package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/curveforge/internal/builder"
	"github.com/roach88/curveforge/internal/ctxlog"
	"github.com/roach88/curveforge/internal/curvespec"
	"github.com/roach88/curveforge/internal/ir"
	"github.com/roach88/curveforge/internal/pipeline"
	"github.com/roach88/curveforge/internal/store"
)

// BuildOptions holds options for the build command.
type BuildOptions struct {
	*RootOptions
	Output string
}

// BuildReport is the record of one build run.
type BuildReport struct {
	RunID  string     `json:"run_id"`
	Built  int        `json:"built"`
	Failed int        `json:"failed"`
	Builds []ir.Build `json:"builds"`
}

// NewBuildCommand creates the build command.
func NewBuildCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &BuildOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "build <specs-dir>",
		Short: "Build every curve in a definitions directory",
		Long: `Build every curve defined in a directory of CUE files.

Each definition is dispatched on its curve type to the registered builder.
Every attempt, successful or not, is appended to the build log under a new
run id. The command exits 1 when any curve failed to build.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "also write the run report as JSON to this file")

	return cmd
}

func runBuild(opts *BuildOptions, specsDir string, cmd *cobra.Command) error {
	formatter := formatterFor(opts.RootOptions, cmd)
	ctx := cmd.Context()
	logger := loggerFor(opts.RootOptions, cmd)

	result, loadErrs := curvespec.Load(specsDir, curvespec.LoadModeCollectAll)
	if len(loadErrs) > 0 {
		code, message := curvespec.ErrCodeGeneric, loadErrs[0].Error()
		var loadErr *curvespec.LoadError
		if errors.As(loadErrs[0], &loadErr) {
			code, message = loadErr.Code, loadErr.Message
		}
		details := make([]string, len(loadErrs))
		for i, err := range loadErrs {
			details[i] = err.Error()
		}
		_ = formatter.Error(code, message, details)
		return markReported(NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message)))
	}
	formatter.VerboseLog("Loaded %d curve definition(s) from %s", len(result.Definitions), specsDir)

	st, err := openStore(opts.RootOptions)
	if err != nil {
		_ = formatter.Error("E_STORE", err.Error(), nil)
		return markReported(err)
	}
	defer st.Close()

	p := pipeline.New(builder.Default(), st, pipeline.WithLogger(logger))
	run, err := p.Run(ctx, result.Definitions)
	if err != nil {
		_ = formatter.Error("E_BUILD", err.Error(), nil)
		return markReported(WrapExitError(ExitCommandError, "build interrupted", err))
	}

	builds, err := st.ReadRun(ctx, run.RunID)
	if err != nil {
		_ = formatter.Error("E_STORE", err.Error(), nil)
		return markReported(WrapExitError(ExitCommandError, "read run", err))
	}
	report := BuildReport{RunID: run.RunID, Built: run.Built, Failed: run.Failed, Builds: builds}

	if opts.Output != "" {
		if err := writeReport(report, opts.Output); err != nil {
			_ = formatter.Error("E_OUTPUT", err.Error(), nil)
			return markReported(WrapExitError(ExitCommandError, "write report", err))
		}
		formatter.VerboseLog("Wrote run report to %s", opts.Output)
	}

	return outputBuildReport(formatter, report)
}

func outputBuildReport(formatter *OutputFormatter, report BuildReport) error {
	var failed error
	if report.Failed > 0 {
		failed = NewExitError(ExitFailure, fmt.Sprintf("%d of %d curve(s) failed to build", report.Failed, report.Built+report.Failed)).reported()
	}

	if formatter.IsJSON() {
		if failed != nil {
			if err := formatter.Failure("E_BUILD_FAILED", failed.Error(), report); err != nil {
				return err
			}
			return failed
		}
		return formatter.Success(report)
	}

	for _, b := range report.Builds {
		if b.Status == ir.BuildOK {
			fmt.Fprintf(formatter.Writer, "✓ %s %s (%d pillars, %s)\n", b.CurveName, b.CurveType, len(b.Pillars), b.Interpolation)
		} else {
			fmt.Fprintf(formatter.Writer, "✗ %s %s %s: %s\n", b.CurveName, b.CurveType, b.ErrorCode, b.ErrorMessage)
		}
	}
	fmt.Fprintln(formatter.Writer)
	fmt.Fprintf(formatter.Writer, "Run %s: %d built, %d failed\n", report.RunID, report.Built, report.Failed)

	return failed
}

func writeReport(report BuildReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// openStore opens the build log named by the resolved configuration.
func openStore(opts *RootOptions) (*store.Store, error) {
	path := opts.DB
	if path == "" {
		path = opts.Config.DB
	}
	if path == "" {
		return nil, NewExitError(ExitCommandError, "no build log configured: set --db or db in the config file")
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open build log", err)
	}
	return st, nil
}

// loggerFor returns the resolved logger, or the one on the command context
// when the persistent pre-run did not execute.
func loggerFor(opts *RootOptions, cmd *cobra.Command) *slog.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return ctxlog.FromContext(cmd.Context())
}
