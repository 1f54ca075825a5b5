package cli

import (
	"github.com/spf13/cobra"

	"rostree/internal/app"
)

type treeOptions struct {
	Depth     int
	Runtime   bool
	Buildtool bool
	Sources   []string
	JSON      bool
}

func newTreeCommand() *cobra.Command {
	opts := treeOptions{}
	cmd := &cobra.Command{
		Use:   "tree <package>",
		Short: "Show dependency tree for a package",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTree(cmd, args[0], opts)
		},
	}
	cmd.Flags().IntVarP(&opts.Depth, "depth", "d", -1, "Maximum tree depth (-1 = unlimited)")
	cmd.Flags().BoolVarP(&opts.Runtime, "runtime", "r", false, "Show only runtime dependencies (depend, exec_depend)")
	cmd.Flags().BoolVar(&opts.Buildtool, "buildtool", false, "Also traverse buildtool_depend")
	cmd.Flags().StringArrayVarP(&opts.Sources, "source", "s", nil, "Additional source directories to scan (can be repeated)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON")
	return cmd
}

func runTree(cmd *cobra.Command, pkg string, opts treeOptions) error {
	service := newAppService()
	node, err := service.Tree(cmd.Context(), app.TreeRequest{
		Package:          pkg,
		MaxDepth:         opts.Depth,
		RuntimeOnly:      opts.Runtime,
		IncludeBuildtool: opts.Buildtool,
		ExtraRoots:       resolveExtraRoots(opts.Sources),
	})
	if err != nil {
		return err
	}

	// A root that could not be resolved is still a valid result; the
	// marker in the output carries the diagnosis.
	if opts.JSON {
		return printJSON(cmd.OutOrStdout(), node)
	}
	writeTree(cmd.OutOrStdout(), node)
	return nil
}
