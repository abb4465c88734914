package cli

import (
	"github.com/spf13/cobra"

	"github.com/andrii-bodnar/vibesdk-templates/internal/buildinfo"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	}
}
