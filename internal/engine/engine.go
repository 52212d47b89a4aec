// Package engine orchestrates the diagnostic checks for one selected
// game profile. Checks are independent, read-only queries; each yields
// zero or more DiagnosticResults and never fails the run. Order is a
// display concern only.
package engine

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/hapfel1/fscheckup/internal/host"
	"github.com/hapfel1/fscheckup/internal/manifest"
	"github.com/hapfel1/fscheckup/pkg/types"
)

// Check is one named diagnostic operation.
type Check struct {
	Name string
	Run  func(ctx context.Context) []types.DiagnosticResult
}

// CheckFactory builds a per-title extra check bound to an engine.
// Extra checks are registered by the profile registry, keyed by title,
// instead of being overridden per game.
type CheckFactory func(*Engine) Check

// Engine holds the collaborators and paths for one diagnostic run.
// Paths are not validated at construction; a missing folder produces a
// reported result, not a failure.
type Engine struct {
	profile    types.GameProfile
	gameFolder string
	saveFile   string
	manifest   *manifest.Provider
	host       host.Introspector
	extras     []CheckFactory
	log        zerolog.Logger
}

// New builds an engine for one run. gameFolder and saveFile may be
// empty when unknown.
func New(lg zerolog.Logger, profile types.GameProfile, gameFolder, saveFile string,
	provider *manifest.Provider, intro host.Introspector, extras ...CheckFactory) *Engine {
	return &Engine{
		profile:    profile,
		gameFolder: gameFolder,
		saveFile:   saveFile,
		manifest:   provider,
		host:       intro,
		extras:     extras,
		log:        lg.With().Str("component", "engine").Str("game", profile.ManifestKey).Logger(),
	}
}

// Checks returns the run's checks in display order. The integrity and
// executable checks only apply when the game folder exists on disk.
func (e *Engine) Checks() []Check {
	checks := []Check{
		{Name: "Game Version", Run: e.checkVersion},
		{Name: "Game Installation", Run: e.checkInstallation},
	}
	if e.folderExists() {
		checks = append(checks,
			Check{Name: "Game Integrity", Run: e.checkIntegrity},
			Check{Name: "Game Executable", Run: e.checkExecutable},
		)
	}
	checks = append(checks,
		Check{Name: "Process Check", Run: e.checkProcesses},
		Check{Name: "VPN Check", Run: e.checkVPN},
		Check{Name: "Steam Elevation Check", Run: e.checkElevation},
		Check{Name: "Save File Health", Run: e.checkSaveFile},
	)
	for _, factory := range e.extras {
		checks = append(checks, factory(e))
	}
	return checks
}

// RunAll executes every check in order and concatenates the results.
func (e *Engine) RunAll(ctx context.Context) []types.DiagnosticResult {
	var results []types.DiagnosticResult
	for _, c := range e.Checks() {
		e.log.Debug().Str("check", c.Name).Msg("running check")
		results = append(results, c.Run(ctx)...)
	}
	return results
}

func (e *Engine) folderExists() bool {
	if e.gameFolder == "" {
		return false
	}
	info, err := os.Stat(e.gameFolder)
	return err == nil && info.IsDir()
}

// gameDir is the directory holding the exe and packaged data.
func (e *Engine) gameDir() string {
	return e.profile.GameDir(e.gameFolder)
}
