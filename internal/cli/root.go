// Package cli wires the cobra command tree for fscheckup.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// GlobalOptions are shared flags across subcommands.
type GlobalOptions struct {
	Verbose      bool
	ManifestURL  string
	ManifestFile string
}

// Logger builds the console logger honoring --verbose.
func (o *GlobalOptions) Logger() zerolog.Logger {
	level := zerolog.WarnLevel
	if o.Verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).With().Timestamp().Logger()
}

func NewRootCommand() *cobra.Command {
	opts := &GlobalOptions{}

	cmd := &cobra.Command{
		Use:           "fscheckup",
		Short:         "Troubleshooting tool for FromSoftware PC games",
		Long:          "fscheckup inspects a FromSoftware game install and the host environment\nfor known crash and connectivity causes, and suggests fixes.",
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.PersistentFlags().BoolVar(&opts.Verbose, "verbose", false, "Enable verbose logging")
	cmd.PersistentFlags().StringVar(&opts.ManifestURL, "manifest-url", "", "Override the size manifest URL")
	cmd.PersistentFlags().StringVar(&opts.ManifestFile, "manifest-file", "", "Use a local size manifest file")

	cmd.AddCommand(
		newRunCommand(opts),
		newScanCommand(opts),
		newGamesCommand(),
		newBuildIDsCommand(opts),
		newDoctorCommand(opts),
		newSelfTestCommand(opts),
		newVersionCommand(),
	)

	return cmd
}
