package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hapfel1/fscheckup/internal/doctor"
)

func newDoctorCommand(global *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Interactive guided diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(global)
			code, err := doctor.RunInteractive(cmd.Context(), doctor.Deps{
				Log:      s.log,
				Locator:  s.locator,
				Intro:    s.intro,
				Provider: s.provider,
			}, os.Stdin, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return exitWithCode(code)
		},
	}
}
