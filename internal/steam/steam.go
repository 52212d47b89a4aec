// Package steam locates Steam library folders and reads per-title
// appmanifest (ACF) records. It is straightforward filesystem
// scanning; the diagnostic engine treats everything it returns as
// untrusted input and re-validates existence.
package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/adrg/xdg"
	"github.com/andygrunwald/vdf"
	"github.com/rs/zerolog"
)

// Locator scans a fixed set of Steam library roots, expanded with the
// extra libraries registered in libraryfolders.vdf.
type Locator struct {
	roots []string
	log   zerolog.Logger
}

// NewLocator discovers the steamapps roots present on this host.
func NewLocator(lg zerolog.Logger) *Locator {
	l := &Locator{log: lg.With().Str("component", "steam").Logger()}
	l.roots = discoverRoots(l.log)
	return l
}

// NewLocatorWithRoots builds a locator over explicit roots. Used by
// tests and by callers that already know the library layout.
func NewLocatorWithRoots(lg zerolog.Logger, roots []string) *Locator {
	return &Locator{roots: roots, log: lg.With().Str("component", "steam").Logger()}
}

// Roots returns the discovered steamapps directories.
func (l *Locator) Roots() []string {
	return l.roots
}

func discoverRoots(lg zerolog.Logger) []string {
	var candidates []string
	if runtime.GOOS == "windows" {
		for _, drive := range []string{"C", "D", "E", "F"} {
			candidates = append(candidates,
				drive+`:\Program Files (x86)\Steam\steamapps`,
				drive+`:\Steam\steamapps`,
			)
		}
	} else {
		home, _ := os.UserHomeDir()
		candidates = append(candidates,
			filepath.Join(xdg.DataHome, "Steam", "steamapps"),
			filepath.Join(home, ".steam", "steam", "steamapps"),
			filepath.Join(home, ".var", "app", "com.valvesoftware.Steam",
				".local", "share", "Steam", "steamapps"),
		)
	}

	var roots []string
	for _, c := range candidates {
		if dirExists(c) {
			roots = append(roots, c)
		}
	}

	// Secondary libraries registered in libraryfolders.vdf.
	for _, root := range roots {
		for _, vdfPath := range []string{
			filepath.Join(root, "libraryfolders.vdf"),
			filepath.Join(filepath.Dir(root), "config", "libraryfolders.vdf"),
		} {
			extra, err := parseLibraryFolders(vdfPath)
			if err != nil {
				continue
			}
			for _, lib := range extra {
				steamapps := filepath.Join(lib, "steamapps")
				if dirExists(steamapps) {
					roots = append(roots, steamapps)
				}
			}
			break
		}
	}

	deduped := dedupeResolved(roots)
	lg.Debug().Strs("roots", deduped).Msg("steam libraries discovered")
	return deduped
}

// parseLibraryFolders extracts the "path" values from a
// libraryfolders.vdf document.
func parseLibraryFolders(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := vdf.NewParser(f).Parse()
	if err != nil {
		return nil, err
	}
	folders, ok := doc["libraryfolders"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("no libraryfolders block in %s", path)
	}

	var paths []string
	for _, entry := range folders {
		lib, ok := entry.(map[string]interface{})
		if !ok {
			continue
		}
		if p, ok := lib["path"].(string); ok && p != "" {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

// appState parses an appmanifest ACF file and returns its AppState
// block.
func appState(path string) (map[string]interface{}, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := vdf.NewParser(f).Parse()
	if err != nil {
		return nil, err
	}
	state, ok := doc["AppState"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("no AppState block in %s", path)
	}
	return state, nil
}

// BuildID reads the installed build id for a Steam app from its ACF
// record, scanning all known library roots. Returns false when the
// title is not installed anywhere.
func (l *Locator) BuildID(appID uint32) (int64, bool) {
	state, _, ok := l.findAppState(appID)
	if !ok {
		return 0, false
	}
	raw, ok := state["buildid"].(string)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// InstallDir resolves the installation folder for a Steam app:
// <steamapps>/common/<installdir>. Returns false when not installed.
func (l *Locator) InstallDir(appID uint32) (string, bool) {
	state, root, ok := l.findAppState(appID)
	if !ok {
		return "", false
	}
	dir, ok := state["installdir"].(string)
	if !ok || dir == "" {
		return "", false
	}
	return filepath.Join(root, "common", dir), true
}

func (l *Locator) findAppState(appID uint32) (map[string]interface{}, string, bool) {
	name := fmt.Sprintf("appmanifest_%d.acf", appID)
	for _, root := range l.roots {
		acf := filepath.Join(root, name)
		state, err := appState(acf)
		if err != nil {
			continue
		}
		return state, root, true
	}
	return nil, "", false
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func dedupeResolved(paths []string) []string {
	seen := make(map[string]bool, len(paths))
	var out []string
	for _, p := range paths {
		key := p
		if resolved, err := filepath.EvalSymlinks(p); err == nil {
			key = resolved
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}
