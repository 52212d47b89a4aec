// Package redact scrubs identifying details from shareable reports.
// Exported reports embed install and save paths, which carry the local
// username; people paste these into public support threads.
package redact

import (
	"os"
	"os/user"
	"regexp"
	"runtime"
	"strings"
)

// Redactor replaces the local username, home directory, and hostname
// in report text. Disabled, it passes text through unchanged.
type Redactor struct {
	enabled  bool
	patterns []pattern
}

type pattern struct {
	re          *regexp.Regexp
	replacement string
}

// New builds a Redactor from the current user and host.
func New(enabled bool) *Redactor {
	r := &Redactor{enabled: enabled}
	if !enabled {
		return r
	}

	var username, homeDir string
	if u, err := user.Current(); err == nil {
		username = u.Username
		homeDir = u.HomeDir
		// Windows reports "DOMAIN\user".
		if idx := strings.LastIndex(username, `\`); idx >= 0 {
			username = username[idx+1:]
		}
	}
	hostname, _ := os.Hostname()

	flags := ""
	if runtime.GOOS == "windows" {
		flags = "(?i)"
	}
	if homeDir != "" {
		r.patterns = append(r.patterns, pattern{
			re:          regexp.MustCompile(flags + regexp.QuoteMeta(homeDir)),
			replacement: "<home>",
		})
	}
	if username != "" {
		r.patterns = append(r.patterns, pattern{
			re:          regexp.MustCompile(flags + `([/\\])` + regexp.QuoteMeta(username) + `([/\\])`),
			replacement: "${1}<user>${2}",
		})
	}
	if hostname != "" {
		r.patterns = append(r.patterns, pattern{
			re:          regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(hostname) + `\b`),
			replacement: "<host>",
		})
	}
	return r
}

// Redact applies every pattern to the input.
func (r *Redactor) Redact(s string) string {
	if !r.enabled || s == "" {
		return s
	}
	for _, p := range r.patterns {
		s = p.re.ReplaceAllString(s, p.replacement)
	}
	return s
}

// Summary describes the redaction state for the console.
func (r *Redactor) Summary() string {
	if !r.enabled {
		return "Redaction is DISABLED. Exported reports may contain your username and hostname."
	}
	return "Redaction is enabled: username, home directory, and hostname are scrubbed from exports."
}
