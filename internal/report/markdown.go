package report

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hapfel1/fscheckup/pkg/types"
)

// GenerateMarkdown produces a GitHub/Reddit-ready markdown report.
func GenerateMarkdown(export *Export) string {
	var sb strings.Builder
	w := func(format string, args ...interface{}) {
		sb.WriteString(fmt.Sprintf(format, args...))
	}

	w("# fscheckup Diagnostic Report: %s\n\n", export.Game)
	w("> %s\n\n", types.Disclaimer)
	w("**Generated:** %s | **Tool:** v%s\n\n",
		export.GeneratedAt.Format("2006-01-02 15:04:05"), export.ToolVersion)

	s := export.Summary
	w("## Summary\n\n")
	w("%d passed, %d informational, %d warning(s), %d error(s)\n\n",
		s.OK, s.Info, s.Warnings, s.Errors)

	w("## Findings\n\n")
	flagged := issues(export.Results)
	if len(flagged) == 0 {
		w("No issues detected. All checks passed.\n\n")
	} else {
		w("| Status | Check | Detail |\n")
		w("|--------|-------|--------|\n")
		for _, r := range flagged {
			detail := r.Message
			if len(r.BulletItems) > 0 {
				detail += ": " + strings.Join(r.BulletItems, ", ")
			}
			w("| **%s** | %s | %s |\n",
				strings.ToUpper(string(r.Status)), r.Name, truncate(detail, 100))
		}
		w("\n")

		w("### Details\n\n")
		for i, r := range flagged {
			w("<details>\n<summary><b>[%s] #%d: %s</b></summary>\n\n",
				strings.ToUpper(string(r.Status)), i+1, r.Name)
			w("%s\n\n", r.Message)
			for _, item := range r.BulletItems {
				w("- %s\n", item)
			}
			if r.FixAvailable {
				w("\n**Fix:**\n\n```\n%s\n```\n", r.FixAction)
			}
			w("\n</details>\n\n")
		}
	}

	w("---\n\n")
	w("*This report was generated locally. No data was transmitted. %s*\n", types.Disclaimer)

	return sb.String()
}

// truncate shortens s to at most maxLen bytes, backing up to a rune
// boundary so a multi-byte character is never split.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
