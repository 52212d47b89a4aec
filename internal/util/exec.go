// Package util provides shared utilities for fscheckup.
package util

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandResult holds the output of a command execution
type CommandResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Err      error
	TimedOut bool
}

// Run executes a command under the given context. Never panics; always
// returns a result. Callers bound the run with context.WithTimeout.
func Run(ctx context.Context, name string, args ...string) CommandResult {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	result := CommandResult{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}

	if ctx.Err() == context.DeadlineExceeded {
		result.TimedOut = true
		result.Err = fmt.Errorf("command timed out: %s", name)
		result.ExitCode = -1
		return result
	}

	if err != nil {
		result.Err = err
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			result.ExitCode = -1
		}
	}

	return result
}

// CommandExists reports whether a command is available in PATH.
func CommandExists(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// NormalizeProcessName lower-cases a process name and strips the
// Windows executable suffix so names compare across platforms.
func NormalizeProcessName(name string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(name)), ".exe")
}

// HumanMB renders a byte count as megabytes with one decimal.
func HumanMB(size int64) string {
	return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
}
