package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"rostree/internal/app"
)

type scanOptions struct {
	Depth    int
	NoHome   bool
	NoSystem bool
	Verbose  bool
	JSON     bool
}

func newScanCommand() *cobra.Command {
	opts := scanOptions{}
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Scan for ROS 2 workspaces on the host machine",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScan(cmd, args, opts)
		},
	}
	cmd.Flags().IntVarP(&opts.Depth, "depth", "d", 4, "Maximum recursion depth")
	cmd.Flags().BoolVar(&opts.NoHome, "no-home", false, "Don't scan home directory locations")
	cmd.Flags().BoolVar(&opts.NoSystem, "no-system", false, "Don't scan /opt/ros system installs")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show packages in each workspace")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON")
	return cmd
}

func runScan(cmd *cobra.Command, paths []string, opts scanOptions) error {
	service := newAppService()
	workspaces, err := service.Scan(cmd.Context(), app.ScanRequest{
		Roots:         paths,
		MaxDepth:      opts.Depth,
		IncludeHome:   !opts.NoHome,
		IncludeSystem: !opts.NoSystem,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.JSON {
		data, err := json.MarshalIndent(workspaces, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(workspaces) == 0 {
		fmt.Fprintln(out, "No ROS 2 workspaces found.")
		return nil
	}
	fmt.Fprintf(out, "Found %d workspace(s):\n\n", len(workspaces))
	for _, ws := range workspaces {
		var status []string
		if ws.HasSource {
			status = append(status, "src")
		}
		if ws.HasInstall {
			status = append(status, "install")
		}
		if ws.HasBuild {
			status = append(status, "build")
		}
		statusStr := "empty"
		if len(status) > 0 {
			statusStr = strings.Join(status, ", ")
		}
		fmt.Fprintf(out, "  %s\n", ws.Path)
		fmt.Fprintf(out, "    Status: %s\n", statusStr)
		fmt.Fprintf(out, "    Packages: %d\n", len(ws.Packages))
		if opts.Verbose {
			for i, pkg := range ws.Packages {
				if i == 20 {
					fmt.Fprintf(out, "      ... and %d more\n", len(ws.Packages)-20)
					break
				}
				fmt.Fprintf(out, "      - %s\n", pkg)
			}
		}
		fmt.Fprintln(out)
	}
	return nil
}
