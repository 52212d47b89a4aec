package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hapfel1/fscheckup/internal/profile"
)

// buildids compares the installed Steam build of every supported game
// against the reference build the size manifest was generated from.
func newBuildIDsCommand(global *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "buildids",
		Short: "Show installed vs reference Steam build ids",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(global)
			ctx := cmd.Context()

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "GAME\tINSTALLED\tREFERENCE\tSTATUS")
			for _, p := range profile.All() {
				if p.SteamAppID == 0 {
					continue
				}
				installed, ok := s.locator.BuildID(p.SteamAppID)
				ref := s.provider.BuildID(ctx, p.ManifestKey)

				status := "not installed"
				installedStr, refStr := "-", "-"
				if ok {
					installedStr = fmt.Sprintf("%d", installed)
				}
				if ref != 0 {
					refStr = fmt.Sprintf("%d", ref)
				}
				switch {
				case !ok:
				case ref == 0:
					status = "no reference"
				case installed == ref:
					status = "current"
				default:
					status = "differs"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.GameName, installedStr, refStr, status)
			}
			return tw.Flush()
		},
	}
}
