package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hapfel1/fscheckup/internal/profile"
)

func newScanCommand(global *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scan",
		Short: "Detect installed games and their save files",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(global)

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "GAME\tINSTALL\tSAVE FILE")
			found := 0
			for _, p := range profile.All() {
				gameFolder, saveFile := s.locator.Autoscan(p)
				if gameFolder == "" && saveFile == "" {
					continue
				}
				found++
				fmt.Fprintf(tw, "%s\t%s\t%s\n", p.GameName, orDash(gameFolder), orDash(saveFile))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			if found == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No supported games found in the Steam libraries.")
			}
			return nil
		},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
