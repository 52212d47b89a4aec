package report

import (
	"fmt"
	"strings"

	"github.com/hapfel1/fscheckup/pkg/types"
)

// GenerateText produces a human-readable report suitable for pasting
// into a support thread. Passing checks are folded into the summary
// counts; only findings that need attention are listed in full.
func GenerateText(export *Export) string {
	var sb strings.Builder
	w := func(format string, args ...interface{}) {
		sb.WriteString(fmt.Sprintf(format, args...))
	}
	line := func() { sb.WriteString(strings.Repeat("─", 72) + "\n") }

	line()
	w("  fscheckup v%s — %s Diagnostic Report\n", export.ToolVersion, export.Game)
	w("  %s\n", types.Disclaimer)
	line()
	w("  Generated:   %s\n", export.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	if export.GameFolder != "" {
		w("  Game Folder: %s\n", export.GameFolder)
	}
	if export.SaveFile != "" {
		w("  Save File:   %s\n", export.SaveFile)
	}
	line()

	s := export.Summary
	w("\n== SUMMARY ==\n\n")
	w("  %d passed, %d informational, %d warning(s), %d error(s)\n",
		s.OK, s.Info, s.Warnings, s.Errors)
	line()

	w("\n== FINDINGS ==\n\n")
	flagged := issues(export.Results)
	if len(flagged) == 0 {
		w("  No issues detected. All checks passed.\n")
	}
	for i, r := range flagged {
		w("  [%s] #%d: %s\n", strings.ToUpper(string(r.Status)), i+1, r.Name)
		w("    %s\n", r.Message)
		for _, item := range r.BulletItems {
			w("      • %s\n", item)
		}
		if r.FixAvailable {
			w("    Fix:\n")
			for _, fix := range strings.Split(r.FixAction, "\n") {
				if types.IsCommandLine(fix) {
					w("      $ %s\n", fix)
				} else {
					w("      %s\n", fix)
				}
			}
		}
		w("\n")
	}
	line()

	w("\n  This report was generated locally. No data was sent anywhere.\n")
	w("  fscheckup does not modify your game, saves, or settings.\n\n")
	line()
	w("  %s\n", types.Disclaimer)
	line()

	return sb.String()
}
