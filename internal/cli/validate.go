package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/curveforge/internal/builder"
	"github.com/roach88/curveforge/internal/curvespec"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                         `json:"valid"`
	Curves int                          `json:"curves"`
	Errors []curvespec.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <specs-dir>",
		Short: "Validate curve definitions without building",
		Long: `Validate CUE curve definitions without building them.

Checks that every definition decodes, passes the semantic checks the curve
constructors apply, and names a curve type with a registered builder.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, specsDir string, cmd *cobra.Command) error {
	formatter := formatterFor(opts, cmd)

	result, errs, fatal := ValidateSpecsDir(specsDir, builder.Default())
	if fatal != nil {
		var loadErr *curvespec.LoadError
		if errors.As(fatal, &loadErr) {
			return outputValidateError(formatter, loadErr.Code, loadErr.Message)
		}
		return outputValidateError(formatter, curvespec.ErrCodeGeneric, fatal.Error())
	}

	formatter.VerboseLog("Found %d CUE file(s) in %s", result.FileCount, specsDir)

	if len(errs) > 0 {
		return outputValidationErrors(formatter, errs, len(result.Definitions))
	}
	return outputValidateSuccess(formatter, len(result.Definitions))
}

// ValidateSpecsDir loads specsDir and returns every problem found, including
// definitions whose type has no builder in registry. The error return is
// set only when the directory could not be loaded at all.
func ValidateSpecsDir(specsDir string, registry *builder.Registry) (*curvespec.LoadResult, []curvespec.ValidationError, error) {
	result, loadErrs := curvespec.Load(specsDir, curvespec.LoadModeCollectAll)
	if result == nil {
		if len(loadErrs) == 0 {
			return nil, nil, fmt.Errorf("failed to load %s", specsDir)
		}
		return nil, nil, loadErrs[0]
	}

	var errs []curvespec.ValidationError
	for _, err := range loadErrs {
		errs = append(errs, loadErrorToValidation(err))
	}

	registered := registry.Types()
	for _, def := range result.Definitions {
		errs = append(errs, curvespec.Validate(def)...)
		errs = append(errs, curvespec.CheckBuildable(def, registered)...)
	}
	return result, errs, nil
}

func loadErrorToValidation(err error) curvespec.ValidationError {
	var loadErr *curvespec.LoadError
	if errors.As(err, &loadErr) {
		line := 0
		if loadErr.Pos.IsValid() {
			line = loadErr.Pos.Line()
		}
		return curvespec.ValidationError{Field: "load", Message: loadErr.Message, Code: loadErr.Code, Line: line}
	}
	return curvespec.ValidationError{Field: "load", Message: err.Error(), Code: curvespec.ErrCodeGeneric}
}

func outputValidateSuccess(formatter *OutputFormatter, curves int) error {
	if formatter.IsJSON() {
		return formatter.Success(ValidationResult{Valid: true, Curves: curves})
	}

	fmt.Fprintf(formatter.Writer, "✓ %d curve definition(s) valid\n", curves)
	return nil
}

func outputValidateError(formatter *OutputFormatter, code, message string) error {
	_ = formatter.Error(code, message, nil)
	return markReported(NewExitError(ExitCommandError, fmt.Sprintf("%s: %s", code, message)))
}

func outputValidationErrors(formatter *OutputFormatter, errs []curvespec.ValidationError, curves int) error {
	failed := NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs))).reported()

	if formatter.IsJSON() {
		if err := formatter.Failure(errs[0].Code, errs[0].Message, ValidationResult{Curves: curves, Errors: errs}); err != nil {
			return err
		}
		return failed
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, err := range errs {
		if err.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", err.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", err.Code, err.Field, err.Message)
	}
	return failed
}
