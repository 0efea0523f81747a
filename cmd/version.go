package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	avv "airvend/pkg/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print CLI version info",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "AirVend CLI\n")
			fmt.Fprintf(cmd.OutOrStdout(), " - version: %s\n", avv.Version)
			fmt.Fprintf(cmd.OutOrStdout(), " - git: %s\n", avv.GetShortCommit())
			fmt.Fprintf(cmd.OutOrStdout(), " - built: %s\n", avv.BuildDate)
			return nil
		},
	}
}
