package cli

import "fmt"

// ExitError carries a specific process exit code up to main without
// printing a duplicate error message for diagnostic findings.
type ExitError struct {
	Code   int
	Silent bool
	Msg    string
}

func (e *ExitError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("exit code %d", e.Code)
}

func exitWithCode(code int) error {
	if code == 0 {
		return nil
	}
	return &ExitError{Code: code, Silent: true}
}
