// Package report renders diagnostic results for the console and
// exports them as text, markdown, and JSON.
package report

import (
	"time"

	"github.com/hapfel1/fscheckup/pkg/types"
)

// Export is the complete payload of one diagnostic run.
type Export struct {
	Tool        string                   `json:"tool"`
	ToolVersion string                   `json:"tool_version"`
	Game        string                   `json:"game"`
	GameFolder  string                   `json:"game_folder,omitempty"`
	SaveFile    string                   `json:"save_file,omitempty"`
	GeneratedAt time.Time                `json:"generated_at"`
	Summary     Summary                  `json:"summary"`
	Results     []types.DiagnosticResult `json:"results"`
}

// Summary counts results per status.
type Summary struct {
	OK       int `json:"ok"`
	Info     int `json:"info"`
	Warnings int `json:"warnings"`
	Errors   int `json:"errors"`
}

// NewExport assembles the export payload. Results flagged not
// applicable on this platform are dropped; they carry no signal for
// whoever reads the report.
func NewExport(game, gameFolder, saveFile string, results []types.DiagnosticResult) *Export {
	kept := make([]types.DiagnosticResult, 0, len(results))
	for _, r := range results {
		if r.NotApplicable {
			continue
		}
		kept = append(kept, r)
	}
	return &Export{
		Tool:        "fscheckup",
		ToolVersion: types.Version,
		Game:        game,
		GameFolder:  gameFolder,
		SaveFile:    saveFile,
		GeneratedAt: time.Now(),
		Summary:     Summarize(kept),
		Results:     kept,
	}
}

// Summarize tallies results per status.
func Summarize(results []types.DiagnosticResult) Summary {
	var s Summary
	for _, r := range results {
		switch r.Status {
		case types.StatusOK:
			s.OK++
		case types.StatusInfo:
			s.Info++
		case types.StatusWarning:
			s.Warnings++
		case types.StatusError:
			s.Errors++
		}
	}
	return s
}

// ExitCode maps a run's worst status to the process exit code.
func ExitCode(results []types.DiagnosticResult) int {
	worst := types.StatusOK
	for _, r := range results {
		if r.NotApplicable {
			continue
		}
		if r.Status.Rank() > worst.Rank() {
			worst = r.Status
		}
	}
	switch worst {
	case types.StatusError:
		return types.ExitErrors
	case types.StatusWarning:
		return types.ExitWarnings
	default:
		return types.ExitOK
	}
}

// issues returns the actionable subset: everything except ok.
func issues(results []types.DiagnosticResult) []types.DiagnosticResult {
	var out []types.DiagnosticResult
	for _, r := range results {
		if r.Status != types.StatusOK {
			out = append(out, r)
		}
	}
	return out
}
