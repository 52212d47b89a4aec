package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hapfel1/fscheckup/internal/profile"
)

func newGamesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List supported games",
		RunE: func(cmd *cobra.Command, args []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KEY\tNAME\tSTEAM APP ID")
			for _, key := range profile.Keys() {
				p, err := profile.ByKey(key)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%d\n", key, p.GameName, p.SteamAppID)
			}
			return tw.Flush()
		},
	}
}
