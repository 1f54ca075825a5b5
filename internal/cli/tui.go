package cli

import (
	"github.com/spf13/cobra"

	"rostree/internal/tui"
)

func newTUICommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tui [package]",
		Short: "Launch the interactive terminal UI",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pkg := ""
			if len(args) == 1 {
				pkg = args[0]
			}
			return tui.Run(newAppService(), pkg)
		},
	}
	return cmd
}
