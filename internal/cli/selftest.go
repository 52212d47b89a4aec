package cli

import (
	"github.com/spf13/cobra"

	"github.com/hapfel1/fscheckup/internal/selftest"
)

func newSelfTestCommand(global *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "self-test",
		Short: "Verify the tool's own environment",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(global)
			code := selftest.Run(cmd.Context(), selftest.Deps{
				Locator:  s.locator,
				Intro:    s.intro,
				Provider: s.provider,
			}, cmd.OutOrStdout())
			return exitWithCode(code)
		},
	}
}
