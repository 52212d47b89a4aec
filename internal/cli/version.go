package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hapfel1/fscheckup/pkg/types"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "fscheckup v%s\n", types.Version)
			fmt.Fprintln(cmd.OutOrStdout(), types.Disclaimer)
			return nil
		},
	}
}
