package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"rostree/internal/app"
	"rostree/internal/core"
)

// Guardrails for workspace-wide graphs; they bound rendering cost only,
// single-package graphs stay unlimited.
const (
	graphDefaultDepth = 4
	graphMaxPackages  = 50
)

type graphOptions struct {
	Workspace string
	Format    string
	Output    string
	Depth     int
	Runtime   bool
	Sources   []string
	NoTitle   bool
	Render    string
}

func newGraphCommand() *cobra.Command {
	opts := graphOptions{}
	cmd := &cobra.Command{
		Use:   "graph [package]",
		Short: "Generate a dependency graph (DOT/Mermaid format)",
		Long: "Generate a visual dependency graph. Without arguments, graphs all " +
			"workspace packages. Specify a package name to graph just that package.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg := ""
			if len(args) == 1 {
				pkg = args[0]
			}
			return runGraph(cmd, pkg, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.Workspace, "workspace", "w", "", "Scan and graph packages from this workspace path")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "dot", "Output format: dot (Graphviz) or mermaid")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "Output file (default: stdout)")
	cmd.Flags().IntVarP(&opts.Depth, "depth", "d", -1, "Maximum tree depth (default: 4 for workspace, unlimited for single package)")
	cmd.Flags().BoolVarP(&opts.Runtime, "runtime", "r", false, "Show only runtime dependencies (depend, exec_depend)")
	cmd.Flags().StringArrayVarP(&opts.Sources, "source", "s", nil, "Additional source directories to scan (can be repeated)")
	cmd.Flags().BoolVar(&opts.NoTitle, "no-title", false, "Don't include a title in the graph")
	cmd.Flags().StringVar(&opts.Render, "render", "", "Render to image (svg, png)")
	return cmd
}

func runGraph(cmd *cobra.Command, pkg string, opts graphOptions) error {
	service := newAppService()
	extraRoots := resolveExtraRoots(opts.Sources)

	packages, err := graphPackages(cmd, service, pkg, opts.Workspace, extraRoots)
	if err != nil {
		return err
	}
	if len(packages) > graphMaxPackages && pkg == "" {
		fmt.Fprintf(cmd.ErrOrStderr(),
			"Warning: limiting to first %d packages (found %d); use -d to limit depth\n",
			graphMaxPackages, len(packages))
		packages = packages[:graphMaxPackages]
	}

	depth := opts.Depth
	if !cmd.Flags().Changed("depth") && pkg == "" {
		depth = graphDefaultDepth
	}

	result, err := service.Graph(cmd.Context(), app.GraphRequest{
		Packages:    packages,
		MaxDepth:    depth,
		RuntimeOnly: opts.Runtime,
		ExtraRoots:  extraRoots,
		Format:      opts.Format,
		Title:       graphTitle(pkg, opts),
	})
	if err != nil {
		return err
	}

	if opts.Render != "" {
		return renderGraphImage(cmd, pkg, result.Output, opts)
	}
	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, []byte(result.Output), 0644); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Graph written to: %s\n", opts.Output)
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), result.Output)
	return nil
}

// graphPackages decides the roots of the graphed forest: an explicit
// package, a workspace path, or every non-system package in the current
// environment.
func graphPackages(cmd *cobra.Command, service *app.Service, pkg, workspace string, extraRoots []string) ([]string, error) {
	if pkg != "" {
		return []string{pkg}, nil
	}
	packages, err := service.WorkspacePackages(cmd.Context(), workspace, extraRoots)
	if err != nil {
		return nil, err
	}
	return packages, nil
}

func graphTitle(pkg string, opts graphOptions) string {
	switch {
	case opts.NoTitle:
		return ""
	case pkg != "":
		return pkg + " dependencies"
	case opts.Workspace != "":
		return "Workspace: " + filepath.Base(opts.Workspace)
	default:
		return "Workspace dependencies"
	}
}

// renderGraphImage rasterizes the DOT description with the embedded
// Graphviz engine and writes the image file.
func renderGraphImage(cmd *cobra.Command, pkg, dot string, opts graphOptions) error {
	if opts.Format == "mermaid" {
		return fmt.Errorf("--render only works with DOT format; remove -f mermaid")
	}

	outPath := opts.Output
	if outPath == "" {
		base := "workspace_deps"
		if pkg != "" {
			base = strings.ReplaceAll(pkg, "/", "_")
		} else if opts.Workspace != "" {
			base = filepath.Base(opts.Workspace)
		}
		outPath = base + "." + opts.Render
	} else if ext := filepath.Ext(outPath); ext != "."+opts.Render {
		outPath = strings.TrimSuffix(outPath, ext) + "." + opts.Render
	}

	image, err := core.RenderImage(cmd.Context(), dot, opts.Render)
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, image, 0644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Graph image saved to: %s\n", outPath)
	return nil
}
