package steam

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/hapfel1/fscheckup/pkg/types"
)

// Autoscan locates a title's installation folder and save file without
// user input. Either result may be empty when nothing was found;
// callers must re-validate existence before trusting a path.
func (l *Locator) Autoscan(profile types.GameProfile) (gameFolder, saveFile string) {
	if profile.SteamAppID != 0 {
		if dir, ok := l.InstallDir(profile.SteamAppID); ok {
			gameFolder = dir
		}
	}
	saveFile = l.findSaveFile(profile)
	if gameFolder != "" || saveFile != "" {
		l.log.Debug().
			Str("game", profile.GameName).
			Str("folder", gameFolder).
			Str("save", saveFile).
			Msg("autoscan result")
	}
	return gameFolder, saveFile
}

// findSaveFile walks the per-title save-location conventions: a
// roaming-appdata folder named after the game, holding one numeric
// per-Steam-account subfolder with the save inside. On Linux the same
// layout lives inside the Proton prefix under compatdata.
func (l *Locator) findSaveFile(profile types.GameProfile) string {
	if profile.SaveFileName == "" {
		return ""
	}
	for _, base := range l.saveBaseDirs(profile) {
		if found := scanSaveDir(base, profile.SaveFileName); found != "" {
			return found
		}
	}
	return ""
}

func (l *Locator) saveBaseDirs(profile types.GameProfile) []string {
	var bases []string
	if runtime.GOOS == "windows" {
		if appdata := os.Getenv("APPDATA"); appdata != "" {
			bases = append(bases, filepath.Join(appdata, profile.GameName))
		}
		return bases
	}
	if profile.SteamAppID == 0 {
		return nil
	}
	for _, root := range l.roots {
		bases = append(bases, filepath.Join(root, "compatdata",
			strconv.FormatUint(uint64(profile.SteamAppID), 10),
			"pfx", "drive_c", "users", "steamuser",
			"AppData", "Roaming", profile.GameName))
	}
	return bases
}

// scanSaveDir looks for the save directly under base, then one level
// down inside per-account subfolders.
func scanSaveDir(base, saveName string) string {
	direct := filepath.Join(base, saveName)
	if fileExists(direct) {
		return direct
	}
	entries, err := os.ReadDir(base)
	if err != nil {
		return ""
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		candidate := filepath.Join(base, entry.Name(), saveName)
		if fileExists(candidate) {
			return candidate
		}
	}
	return ""
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
