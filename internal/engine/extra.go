package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hapfel1/fscheckup/internal/util"
	"github.com/hapfel1/fscheckup/pkg/types"
)

// DataFileCheck validates a title-specific critical data file (for
// example regulation.bin) against the manifest's size range. Mods
// commonly corrupt these files, so an out-of-range size gets a
// delete-and-verify remediation, stronger than the executable's
// verify-only one. Registered per title via the profile registry.
func DataFileCheck(fileName, displayName string) CheckFactory {
	return func(e *Engine) Check {
		return Check{
			Name: displayName,
			Run: func(ctx context.Context) []types.DiagnosticResult {
				return e.checkDataFile(ctx, fileName, displayName)
			},
		}
	}
}

func (e *Engine) checkDataFile(ctx context.Context, fileName, displayName string) []types.DiagnosticResult {
	if !e.folderExists() {
		return nil
	}
	path := filepath.Join(e.gameDir(), fileName)
	info, err := os.Stat(path)
	if err != nil {
		return []types.DiagnosticResult{types.FixableResult("Critical File Missing",
			types.StatusError,
			fmt.Sprintf("%s is missing from game folder", fileName),
			e.verifyIntegrityFix())}
	}
	sizeKB := info.Size() / 1024
	sr, ok := e.manifest.Entry(ctx, e.profile.ManifestKey, fileName)
	if !ok {
		return []types.DiagnosticResult{types.Result(displayName, types.StatusInfo,
			fmt.Sprintf("%s found (%s, size manifest unavailable)",
				fileName, util.HumanMB(info.Size())))}
	}
	if sr.Contains(sizeKB) {
		return []types.DiagnosticResult{types.Result(displayName, types.StatusOK,
			fmt.Sprintf("%s is valid (%s)", fileName, util.HumanMB(info.Size())))}
	}
	return []types.DiagnosticResult{types.FixableResult(displayName, types.StatusWarning,
		fmt.Sprintf("%s size is unusual (%d KB, expected %d-%d KB). May indicate modified game files.",
			fileName, sizeKB, sr.MinKB, sr.MaxKB),
		"Delete the file and verify game integrity via Steam.")}
}
