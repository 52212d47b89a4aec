// Package doctor provides an interactive guided diagnostic mode.
package doctor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hapfel1/fscheckup/internal/engine"
	"github.com/hapfel1/fscheckup/internal/host"
	"github.com/hapfel1/fscheckup/internal/manifest"
	"github.com/hapfel1/fscheckup/internal/profile"
	"github.com/hapfel1/fscheckup/internal/report"
	"github.com/hapfel1/fscheckup/internal/steam"
	"github.com/hapfel1/fscheckup/pkg/types"
)

// Deps are the collaborators the guide runs diagnostics with.
type Deps struct {
	Log      zerolog.Logger
	Locator  *steam.Locator
	Intro    host.Introspector
	Provider *manifest.Provider
}

// RunInteractive walks the user through selecting a game and runs the
// full diagnostic suite, streaming results as they complete.
func RunInteractive(ctx context.Context, deps Deps, in io.Reader, out io.Writer) (int, error) {
	reader := bufio.NewReader(in)
	fmt.Fprintf(out, "fscheckup v%s — Interactive Diagnostic Guide\n", types.Version)
	fmt.Fprintln(out, strings.Repeat("─", 50))
	fmt.Fprintln(out)

	keys := profile.Keys()
	fmt.Fprintln(out, "Which game are you troubleshooting?")
	for i, key := range keys {
		p, err := profile.ByKey(key)
		if err != nil {
			return 0, err
		}
		fmt.Fprintf(out, "   %d) %s\n", i+1, p.GameName)
	}
	fmt.Fprint(out, "   > ")
	choice := readInput(reader)
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(keys) {
		return 0, fmt.Errorf("invalid selection: %q", choice)
	}
	key := keys[idx-1]
	p, err := profile.ByKey(key)
	if err != nil {
		return 0, err
	}

	gameFolder, saveFile := deps.Locator.Autoscan(p)
	if gameFolder != "" {
		fmt.Fprintf(out, "\nFound install: %s\n", gameFolder)
	} else {
		fmt.Fprintln(out, "\nCould not auto-detect the install folder.")
		fmt.Fprint(out, "Game folder path (blank to skip install checks): ")
		gameFolder = readInput(reader)
	}
	if saveFile != "" {
		fmt.Fprintf(out, "Found save:    %s\n", saveFile)
	} else {
		fmt.Fprint(out, "Save file path (blank to skip save checks): ")
		saveFile = readInput(reader)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("─", 50))
	fmt.Fprintln(out, "Running diagnostics...")
	fmt.Fprintln(out)

	e := engine.New(deps.Log, p, gameFolder, saveFile, deps.Provider, deps.Intro,
		profile.ExtraChecks(key)...)
	runner := engine.NewRunner()

	var results []types.DiagnosticResult
	for r := range runner.Start(ctx, e) {
		report.WriteResult(out, r)
		results = append(results, r)
	}
	report.WriteSummary(out, results)

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run `fscheckup run` with --text, --md, or --json to export a shareable report.")
	return report.ExitCode(results), nil
}

func readInput(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
