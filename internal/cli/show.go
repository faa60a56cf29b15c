package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/curveforge/internal/instrument"
	"github.com/roach88/curveforge/internal/ir"
	"github.com/roach88/curveforge/internal/pipeline"
	"github.com/roach88/curveforge/internal/store"
)

// ShowOptions holds options for the show command.
type ShowOptions struct {
	*RootOptions
	At []string
}

// PointValue is the curve value at one tenor.
type PointValue struct {
	Tenor string  `json:"tenor"`
	Time  float64 `json:"time"`
	Value float64 `json:"value"`
}

// ShowResult is the latest successful build of a curve.
type ShowResult struct {
	Build  ir.Build     `json:"build"`
	Values []PointValue `json:"values,omitempty"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show <curve-name>",
		Short: "Show the latest successful build of a curve",
		Long: `Show the pillars of the most recent successful build of a curve.

With --at, the stored curve is restored and evaluated at each point on its
time axis (for example --at 6M,18M,7Y). For IRS curves that is the payment
date. For RPI_SWAP_INFLATION curves it is the index reference time, the
swap maturity minus the index lag: with a 6 month lag the 5Y swap's pillar
sits at 4Y6M, so --at 5Y returns a projected index beyond that pillar.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringSliceVar(&opts.At, "at", nil, "times to evaluate the curve at, as tenors (comma-separated; RPI curves use index reference time)")

	return cmd
}

func runShow(opts *ShowOptions, name string, cmd *cobra.Command) error {
	formatter := formatterFor(opts.RootOptions, cmd)

	tenors := make([]instrument.Tenor, 0, len(opts.At))
	for _, s := range opts.At {
		t, err := instrument.ParseTenor(s)
		if err != nil {
			_ = formatter.Error("E_INVALID_TENOR", err.Error(), nil)
			return markReported(WrapExitError(ExitCommandError, "invalid --at", err))
		}
		tenors = append(tenors, t)
	}

	st, err := openStore(opts.RootOptions)
	if err != nil {
		_ = formatter.Error("E_STORE", err.Error(), nil)
		return markReported(err)
	}
	defer st.Close()

	b, err := st.LatestBuild(cmd.Context(), name)
	if errors.Is(err, store.ErrNotFound) {
		msg := fmt.Sprintf("no successful build of %s", name)
		_ = formatter.Error("E_NOT_FOUND", msg, nil)
		return markReported(NewExitError(ExitFailure, msg))
	}
	if err != nil {
		_ = formatter.Error("E_STORE", err.Error(), nil)
		return markReported(WrapExitError(ExitCommandError, "read build log", err))
	}

	result := ShowResult{Build: b}
	if len(tenors) > 0 {
		c, err := pipeline.Restore(b)
		if err != nil {
			_ = formatter.Error("E_RESTORE", err.Error(), nil)
			return markReported(WrapExitError(ExitCommandError, "restore curve", err))
		}
		for _, t := range tenors {
			result.Values = append(result.Values, PointValue{Tenor: t.String(), Time: t.Years(), Value: c.ValueAt(t.Years())})
		}
	}

	if formatter.IsJSON() {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "%s %s %s (seq %d, run %s)\n", b.CurveName, b.CurveType, b.Interpolation, b.Seq, b.RunID)
	fmt.Fprintf(formatter.Writer, "build %s\n", b.ID)
	for _, p := range b.Pillars {
		fmt.Fprintf(formatter.Writer, "  %-6s t=%.6f value=%.10f\n", p.Tenor, p.Time, p.Value)
	}
	if len(result.Values) > 0 {
		fmt.Fprintln(formatter.Writer, "values:")
		for _, v := range result.Values {
			fmt.Fprintf(formatter.Writer, "  %-6s t=%.6f value=%.10f\n", v.Tenor, v.Time, v.Value)
		}
	}
	return nil
}
