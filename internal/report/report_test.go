package report

import (
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hapfel1/fscheckup/pkg/types"
)

func sampleResults() []types.DiagnosticResult {
	return []types.DiagnosticResult{
		types.Result("Game Version", types.StatusOK, "Installed build 12345 matches the reference build"),
		types.Result("Game Installation", types.StatusOK, "Game folder found: /games/ELDEN RING"),
		{
			Name:         "VPN Detected",
			Status:       types.StatusWarning,
			Message:      "Running VPN client(s) may cause multiplayer issues",
			BulletItems:  []string{"NordVPN.exe"},
			FixAvailable: true,
			FixAction:    "Disable or exit your VPN before playing online.",
		},
		types.FixableResult("Steam Running as Administrator", types.StatusError,
			"Steam is running with elevated privileges. This can cause save file permission issues.",
			"1. Exit Steam\ntakeown /F \"/games/ELDEN RING\" /R /D Y"),
	}
}

func TestNewExportDropsNotApplicable(t *testing.T) {
	na := types.Result("Steam Elevation Check", types.StatusInfo, "not applicable here")
	na.NotApplicable = true
	export := NewExport("Elden Ring", "", "", []types.DiagnosticResult{
		types.Result("Game Version", types.StatusOK, "ok"),
		na,
	})
	require.Len(t, export.Results, 1)
	assert.Equal(t, "Game Version", export.Results[0].Name)
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleResults())
	assert.Equal(t, Summary{OK: 2, Info: 0, Warnings: 1, Errors: 1}, s)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, types.ExitErrors, ExitCode(sampleResults()))
	assert.Equal(t, types.ExitWarnings, ExitCode(sampleResults()[:3]))
	assert.Equal(t, types.ExitOK, ExitCode(sampleResults()[:2]))

	na := types.Result("x", types.StatusError, "ignored")
	na.NotApplicable = true
	assert.Equal(t, types.ExitOK, ExitCode([]types.DiagnosticResult{na}))
}

func TestGenerateTextStructure(t *testing.T) {
	export := NewExport("Elden Ring", "/games/ELDEN RING", "", sampleResults())
	out := GenerateText(export)

	assert.Contains(t, out, "Elden Ring Diagnostic Report")
	assert.Contains(t, out, types.Disclaimer)
	assert.Contains(t, out, "== SUMMARY ==")
	assert.Contains(t, out, "2 passed, 0 informational, 1 warning(s), 1 error(s)")
	assert.Contains(t, out, "== FINDINGS ==")

	// Passing checks are folded into the summary, not listed.
	assert.NotContains(t, out, "Game folder found")
	assert.Contains(t, out, "[WARNING] #1: VPN Detected")
	assert.Contains(t, out, "• NordVPN.exe")
	assert.Contains(t, out, "[ERROR] #2: Steam Running as Administrator")
}

func TestGenerateTextRendersCommandLines(t *testing.T) {
	export := NewExport("Elden Ring", "", "", sampleResults())
	out := GenerateText(export)
	assert.Contains(t, out, "$ takeown /F")
	assert.NotContains(t, out, "$ 1. Exit Steam")
}

func TestGenerateTextAllClean(t *testing.T) {
	export := NewExport("Elden Ring", "", "", sampleResults()[:2])
	out := GenerateText(export)
	assert.Contains(t, out, "No issues detected")
}

func TestGenerateMarkdownStructure(t *testing.T) {
	export := NewExport("Elden Ring", "", "", sampleResults())
	out := GenerateMarkdown(export)

	assert.Contains(t, out, "# fscheckup Diagnostic Report: Elden Ring")
	assert.Contains(t, out, "| **WARNING** | VPN Detected |")
	assert.Contains(t, out, "<details>")
	assert.Contains(t, out, "```\n1. Exit Steam")
}

func TestTruncateKeepsRunesIntact(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 100))

	// Multi-byte runes straddling the cut must not be split.
	long := strings.Repeat("—", 40) // 120 bytes
	out := truncate(long, 100)
	assert.True(t, utf8.ValidString(out))
	assert.True(t, strings.HasSuffix(out, "..."))
	assert.LessOrEqual(t, len(out), 100)

	mixed := strings.Repeat("a", 96) + "—tail"
	out = truncate(mixed, 100)
	assert.True(t, utf8.ValidString(out))
}

func TestGenerateJSONRoundTrip(t *testing.T) {
	export := NewExport("Elden Ring", "/games/ELDEN RING", "", sampleResults())
	out, err := GenerateJSON(export)
	require.NoError(t, err)

	var decoded Export
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "fscheckup", decoded.Tool)
	assert.Equal(t, export.Summary, decoded.Summary)
	assert.Len(t, decoded.Results, 4)
}

func TestWriteResultConsole(t *testing.T) {
	var sb strings.Builder
	WriteResult(&sb, sampleResults()[2])
	out := sb.String()
	assert.Contains(t, out, "[WARN] VPN Detected:")
	assert.Contains(t, out, "• NordVPN.exe")
	assert.Contains(t, out, "Fix:")
}

func TestWriteSummaryConsole(t *testing.T) {
	var sb strings.Builder
	WriteSummary(&sb, sampleResults())
	assert.Contains(t, sb.String(), "2 ok, 0 info, 1 warning(s), 1 error(s)")
}
