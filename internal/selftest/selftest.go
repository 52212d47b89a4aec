// Package selftest verifies the tool's own environment: Steam library
// discovery, manifest availability, and the OS facilities the checks
// rely on.
package selftest

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/hapfel1/fscheckup/internal/host"
	"github.com/hapfel1/fscheckup/internal/manifest"
	"github.com/hapfel1/fscheckup/internal/steam"
	"github.com/hapfel1/fscheckup/internal/util"
	"github.com/hapfel1/fscheckup/pkg/types"
)

// CheckResult holds a single self-test check result.
type CheckResult struct {
	Name   string
	Status string // "OK", "WARN", "FAIL"
	Detail string
}

// Deps are the collaborators the self-test probes.
type Deps struct {
	Locator  *steam.Locator
	Intro    host.Introspector
	Provider *manifest.Provider
}

// Run executes all self-test checks, prints them, and returns the
// process exit code.
func Run(ctx context.Context, deps Deps, out io.Writer) int {
	fmt.Fprintln(out, "fscheckup Self-Test")
	fmt.Fprintln(out, strings.Repeat("─", 50))
	fmt.Fprintln(out)

	results := []CheckResult{
		checkOS(),
		checkSteamLibraries(deps.Locator),
		checkManifest(ctx, deps.Provider),
		checkProcessEnumeration(ctx, deps.Intro),
	}
	if runtime.GOOS == "windows" {
		results = append(results, checkSchtasks())
	}

	okCount, warnCount, failCount := 0, 0, 0
	for _, r := range results {
		switch r.Status {
		case "OK":
			okCount++
		case "WARN":
			warnCount++
		case "FAIL":
			failCount++
		}
		fmt.Fprintf(out, "  [%-4s] %-24s %s\n", r.Status, r.Name, r.Detail)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("─", 50))
	fmt.Fprintf(out, "  Results: %d OK, %d WARN, %d FAIL\n", okCount, warnCount, failCount)
	fmt.Fprintln(out)

	switch {
	case failCount > 0:
		fmt.Fprintln(out, "  Some checks failed. Diagnostics will still run but may produce")
		fmt.Fprintln(out, "  incomplete results.")
		return types.ExitErrors
	case warnCount > 0:
		fmt.Fprintln(out, "  Some facilities are unavailable. Diagnostics will work but some")
		fmt.Fprintln(out, "  checks may be skipped.")
		return types.ExitWarnings
	default:
		fmt.Fprintln(out, "  All checks passed.")
		return types.ExitOK
	}
}

func checkOS() CheckResult {
	return CheckResult{
		Name:   "Operating System",
		Status: "OK",
		Detail: fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

func checkSteamLibraries(locator *steam.Locator) CheckResult {
	roots := locator.Roots()
	if len(roots) == 0 {
		return CheckResult{
			Name:   "Steam Libraries",
			Status: "WARN",
			Detail: "None found; install detection and build id checks will be skipped",
		}
	}
	return CheckResult{
		Name:   "Steam Libraries",
		Status: "OK",
		Detail: fmt.Sprintf("%d librar(ies) found", len(roots)),
	}
}

func checkManifest(ctx context.Context, provider *manifest.Provider) CheckResult {
	m := provider.Load(ctx)
	if len(m) == 0 {
		return CheckResult{
			Name:   "Size Manifest",
			Status: "WARN",
			Detail: "Unavailable (offline?); file size checks will be informational only",
		}
	}
	return CheckResult{
		Name:   "Size Manifest",
		Status: "OK",
		Detail: fmt.Sprintf("%d game entr(ies) loaded", len(m)),
	}
}

func checkProcessEnumeration(ctx context.Context, intro host.Introspector) CheckResult {
	procs, err := intro.RunningProcesses(ctx)
	if err != nil {
		return CheckResult{
			Name:   "Process Enumeration",
			Status: "FAIL",
			Detail: fmt.Sprintf("Cannot list processes: %v", err),
		}
	}
	return CheckResult{
		Name:   "Process Enumeration",
		Status: "OK",
		Detail: fmt.Sprintf("%d processes visible", len(procs)),
	}
}

func checkSchtasks() CheckResult {
	if !util.CommandExists("schtasks") {
		return CheckResult{
			Name:   "Task Scheduler",
			Status: "WARN",
			Detail: "schtasks not found; scheduled task checks will be skipped",
		}
	}
	return CheckResult{
		Name:   "Task Scheduler",
		Status: "OK",
		Detail: "schtasks available",
	}
}
