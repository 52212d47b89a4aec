package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/hapfel1/fscheckup/internal/bundle"
	"github.com/hapfel1/fscheckup/internal/redact"
	"github.com/hapfel1/fscheckup/internal/report"
	"github.com/hapfel1/fscheckup/pkg/types"
)

type runOptions struct {
	GameFolder string
	SaveFile   string
	OutDir     string
	Text       bool
	JSON       bool
	Markdown   bool
	Zip        bool
	NoRedact   bool
	Timeout    int
}

func newRunCommand(global *GlobalOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run <game>",
		Short: "Run all diagnostics for a game",
		Long:  "Run all diagnostics for a game. Install and save locations are\nauto-detected from the Steam libraries unless given explicitly.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s := newSession(global)
			e, p, gameFolder, saveFile, err := s.engineFor(args[0], opts.GameFolder, opts.SaveFile)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "fscheckup v%s — %s\n", types.Version, p.GameName)
			if gameFolder != "" {
				fmt.Fprintf(out, "Game folder: %s\n", gameFolder)
			}
			if saveFile != "" {
				fmt.Fprintf(out, "Save file:   %s\n", saveFile)
			}
			fmt.Fprintln(out)

			ctx := cmd.Context()
			if opts.Timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, time.Duration(opts.Timeout)*time.Second)
				defer cancel()
			}

			results := e.RunAll(ctx)
			for _, r := range results {
				report.WriteResult(out, r)
			}
			report.WriteSummary(out, results)

			export := report.NewExport(p.GameName, gameFolder, saveFile, results)
			if err := writeExports(out, export, opts); err != nil {
				return err
			}
			return exitWithCode(report.ExitCode(results))
		},
	}

	cmd.Flags().StringVar(&opts.GameFolder, "game-folder", "", "Game install folder (default: auto-detect)")
	cmd.Flags().StringVar(&opts.SaveFile, "save-file", "", "Save file path (default: auto-detect)")
	cmd.Flags().StringVar(&opts.OutDir, "out", ".", "Output directory for exported reports")
	cmd.Flags().BoolVar(&opts.Text, "text", false, "Export report.txt")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Export report.json")
	cmd.Flags().BoolVar(&opts.Markdown, "md", false, "Export report.md")
	cmd.Flags().BoolVar(&opts.Zip, "zip", false, "Bundle exported reports into a zip")
	cmd.Flags().BoolVar(&opts.NoRedact, "no-redact", false, "Keep username and hostname in exported reports")
	cmd.Flags().IntVar(&opts.Timeout, "timeout", 0, "Overall run timeout in seconds (0 = none)")

	return cmd
}

func writeExports(out io.Writer, export *report.Export, opts *runOptions) error {
	if !opts.Text && !opts.JSON && !opts.Markdown {
		return nil
	}
	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return err
	}
	scrubber := redact.New(!opts.NoRedact)

	var written []string
	write := func(name, content string) error {
		path := filepath.Join(opts.OutDir, name)
		if err := os.WriteFile(path, []byte(scrubber.Redact(content)), 0644); err != nil {
			return err
		}
		fmt.Fprintf(out, "Written: %s\n", path)
		written = append(written, path)
		return nil
	}
	if opts.Text {
		if err := write("report.txt", report.GenerateText(export)); err != nil {
			return err
		}
	}
	if opts.Markdown {
		if err := write("report.md", report.GenerateMarkdown(export)); err != nil {
			return err
		}
	}
	if opts.JSON {
		content, err := report.GenerateJSON(export)
		if err != nil {
			return err
		}
		if err := write("report.json", content); err != nil {
			return err
		}
	}
	if opts.Zip && len(written) > 0 {
		zipPath, err := bundle.CreateZip(opts.OutDir, written)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Bundle:  %s\n", zipPath)
	}
	fmt.Fprintln(out, scrubber.Summary())
	return nil
}
