// Package types defines the shared data structures for fscheckup.
package types

import (
	"path/filepath"
	"strings"
)

// Version of fscheckup
const Version = "0.5.0"

// Disclaimer shown in exported reports
const Disclaimer = "fscheckup is an unofficial community tool, not affiliated with FromSoftware or Bandai Namco."

// Status classifies a diagnostic result.
type Status string

const (
	StatusOK      Status = "ok"
	StatusInfo    Status = "info"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
)

// Rank orders statuses by severity for summary counts and display
// sorting. Higher means more severe.
func (s Status) Rank() int {
	switch s {
	case StatusError:
		return 3
	case StatusWarning:
		return 2
	case StatusInfo:
		return 1
	default:
		return 0
	}
}

// ExitCode for CLI
const (
	ExitOK       = 0
	ExitWarnings = 1
	ExitErrors   = 2
	ExitUsage    = 3
)

// DiagnosticResult is the immutable record every check produces.
type DiagnosticResult struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Message string `json:"message"`

	// BulletItems carries a variable-length collection of offending
	// items (process names, file names). Empty when not applicable.
	BulletItems []string `json:"bullet_items,omitempty"`

	// FixAvailable is true iff FixAction holds a concrete,
	// user-actionable remediation step.
	FixAvailable bool   `json:"fix_available"`
	FixAction    string `json:"fix_action,omitempty"`

	// NotApplicable marks informational results that only say the
	// check has no meaning on this platform. The export path skips
	// them.
	NotApplicable bool `json:"not_applicable,omitempty"`
}

// Result builds a DiagnosticResult without a remediation.
func Result(name string, status Status, message string) DiagnosticResult {
	return DiagnosticResult{Name: name, Status: status, Message: message}
}

// FixableResult builds a DiagnosticResult with a remediation attached.
// An empty fixAction leaves FixAvailable false, preserving the
// FixAvailable <=> non-empty FixAction invariant.
func FixableResult(name string, status Status, message, fixAction string) DiagnosticResult {
	return DiagnosticResult{
		Name:         name,
		Status:       status,
		Message:      message,
		FixAvailable: fixAction != "",
		FixAction:    fixAction,
	}
}

// commandPrefixes are the literal command prefixes a remediation may
// embed. The presentation layer renders lines starting with one of
// these as commands instead of prose.
var commandPrefixes = []string{"takeown", "icacls"}

// IsCommandLine reports whether a remediation line is a literal shell
// command.
func IsCommandLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	for _, p := range commandPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

// GameProfile is the static per-title configuration. Instances are
// built once by the profile registry and never mutated.
type GameProfile struct {
	GameName     string
	ManifestKey  string
	ExeName      string
	SaveFileName string

	// GameSubfolder is the subfolder containing the exe and packaged
	// data. Empty for flat install layouts (Dark Souls Remastered).
	GameSubfolder string

	// PiracyFolders and PiracyFiles are names whose presence inside
	// the game subfolder indicates a modified or cracked install.
	PiracyFolders []string
	PiracyFiles   []string

	// SteamAppID looks up the installed build id from Steam's
	// appmanifest records. Zero means no app id is configured.
	SteamAppID uint32
}

// GameDir resolves the directory holding the executable and packaged
// data files for a given install folder.
func (p GameProfile) GameDir(gameFolder string) string {
	if gameFolder == "" {
		return ""
	}
	if p.GameSubfolder == "" {
		return gameFolder
	}
	return filepath.Join(gameFolder, p.GameSubfolder)
}
