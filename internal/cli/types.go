package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/curveforge/internal/builder"
	"github.com/roach88/curveforge/internal/curve"
)

// TypeInfo describes one known curve type.
type TypeInfo struct {
	Type       curve.Type `json:"type"`
	Registered bool       `json:"registered"`
}

// NewTypesCommand creates the types command.
func NewTypesCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "types",
		Short:         "List curve types and whether a builder is registered",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTypes(rootOpts, cmd, builder.Default())
		},
	}
}

func runTypes(opts *RootOptions, cmd *cobra.Command, registry *builder.Registry) error {
	formatter := formatterFor(opts, cmd)
	infos := listTypes(registry)

	if formatter.IsJSON() {
		return formatter.Success(infos)
	}

	for _, info := range infos {
		state := "no builder"
		if info.Registered {
			state = "registered"
		}
		fmt.Fprintf(formatter.Writer, "%-20s %s\n", info.Type, state)
	}
	return nil
}

// listTypes returns every known type in declaration order. The registry
// only accepts known types, so nothing registered is left out.
func listTypes(registry *builder.Registry) []TypeInfo {
	registered := registry.Types()
	known := curve.Types()

	infos := make([]TypeInfo, 0, len(known))
	for _, t := range known {
		infos = append(infos, TypeInfo{Type: t, Registered: slices.Contains(registered, t)})
	}
	return infos
}
