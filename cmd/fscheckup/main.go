// fscheckup — troubleshooting tool for FromSoftware PC games.
// Unofficial community tool, not affiliated with FromSoftware or
// Bandai Namco.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/hapfel1/fscheckup/internal/cli"
	"github.com/hapfel1/fscheckup/pkg/types"
)

func main() {
	err := cli.NewRootCommand().Execute()
	if err == nil {
		return
	}
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		if !exitErr.Silent {
			fmt.Fprintf(os.Stderr, "error: %v\n", exitErr)
		}
		os.Exit(exitErr.Code)
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(types.ExitUsage)
}
