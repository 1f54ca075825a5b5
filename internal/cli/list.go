package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"

	"rostree/internal/app"
	"rostree/internal/types"
)

type listOptions struct {
	Sources  []string
	BySource bool
	Verbose  bool
	JSON     bool
}

func newListCommand() *cobra.Command {
	opts := listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known ROS 2 packages",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, opts)
		},
	}
	cmd.Flags().StringArrayVarP(&opts.Sources, "source", "s", nil, "Additional source directories to scan (can be repeated)")
	cmd.Flags().BoolVar(&opts.BySource, "by-source", false, "Group packages by source (System, Workspace, etc.)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show package paths")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON")
	return cmd
}

func runList(cmd *cobra.Command, opts listOptions) error {
	service := newAppService()
	req := app.ListRequest{ExtraRoots: resolveExtraRoots(opts.Sources)}
	out := cmd.OutOrStdout()

	if opts.BySource {
		groups, err := service.ListBySource(cmd.Context(), req)
		if err != nil {
			return err
		}
		if opts.JSON {
			return printJSON(out, groupsToJSON(groups))
		}
		if len(groups) == 0 {
			return errNoPackages()
		}
		total := 0
		for _, group := range groups {
			total += len(group.Packages)
		}
		fmt.Fprintf(out, "Found %d package(s) from %d source(s):\n\n", total, len(groups))
		for _, group := range groups {
			fmt.Fprintf(out, "  %s (%d)\n", group.Label(), len(group.Packages))
			if opts.Verbose {
				for i, pkg := range group.Packages {
					if i == 50 {
						fmt.Fprintf(out, "    ... and %d more\n", len(group.Packages)-50)
						break
					}
					fmt.Fprintf(out, "    - %s\n", pkg)
				}
			}
			fmt.Fprintln(out)
		}
		return nil
	}

	packages, err := service.List(cmd.Context(), req)
	if err != nil {
		return err
	}
	if opts.JSON {
		return printJSON(out, packages)
	}
	if len(packages) == 0 {
		return errNoPackages()
	}
	names := make([]string, 0, len(packages))
	for name := range packages {
		names = append(names, name)
	}
	sort.Strings(names)
	fmt.Fprintf(out, "Found %d package(s):\n\n", len(packages))
	for _, name := range names {
		if opts.Verbose {
			fmt.Fprintf(out, "  %s: %s\n", name, packages[name])
		} else {
			fmt.Fprintf(out, "  %s\n", name)
		}
	}
	return nil
}

// groupsToJSON keys each group by its display label, matching the text
// output's grouping.
func groupsToJSON(groups []types.SourceGroup) map[string][]string {
	result := map[string][]string{}
	for _, group := range groups {
		result[group.Label()] = group.Packages
	}
	return result
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func errNoPackages() error {
	return errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg("no packages found; is your ROS 2 environment sourced?")
}
