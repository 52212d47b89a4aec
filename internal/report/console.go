package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/hapfel1/fscheckup/pkg/types"
)

var statusTags = map[types.Status]string{
	types.StatusOK:      "[ OK ]",
	types.StatusInfo:    "[INFO]",
	types.StatusWarning: "[WARN]",
	types.StatusError:   "[FAIL]",
}

// WriteResult renders one result for the console, bullets and fix
// included. Used by the live run output and the interactive guide.
func WriteResult(w io.Writer, r types.DiagnosticResult) {
	fmt.Fprintf(w, "%s %s: %s\n", statusTags[r.Status], r.Name, r.Message)
	for _, item := range r.BulletItems {
		fmt.Fprintf(w, "         • %s\n", item)
	}
	if r.FixAvailable {
		fmt.Fprintln(w, "         Fix:")
		for _, line := range strings.Split(r.FixAction, "\n") {
			if types.IsCommandLine(line) {
				fmt.Fprintf(w, "           $ %s\n", line)
			} else {
				fmt.Fprintf(w, "           %s\n", line)
			}
		}
	}
}

// WriteSummary renders the closing tally line.
func WriteSummary(w io.Writer, results []types.DiagnosticResult) {
	s := Summarize(results)
	fmt.Fprintf(w, "\nSummary: %d ok, %d info, %d warning(s), %d error(s)\n",
		s.OK, s.Info, s.Warnings, s.Errors)
}
