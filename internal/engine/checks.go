package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hapfel1/fscheckup/internal/host"
	"github.com/hapfel1/fscheckup/internal/manifest"
	"github.com/hapfel1/fscheckup/internal/util"
	"github.com/hapfel1/fscheckup/pkg/types"
)

// criticalSharedLib is checked during the integrity scan; a cracked
// install almost always replaces or strips it.
const criticalSharedLib = "steam_api64.dll"

// fallbackSharedLibRange covers installs when the manifest has no
// steam_api64.dll entry; genuine copies sit in this window.
var fallbackSharedLibRange = manifest.SizeRange{MinKB: 258, MaxKB: 266}

// saveMinPlausibleBytes is the floor below which a save file is almost
// certainly truncated or corrupted.
const saveMinPlausibleBytes = 1000

// lowDiskBytes triggers the free-space warning for save backups.
const lowDiskBytes = 1 << 30

// problematicProcesses are known, high-confidence crash causes while a
// FromSoftware game runs.
var problematicProcesses = []string{
	"vgtray.exe", "Overwolf.exe", "RTSS.exe", "RTSSHooksLoader64.exe",
	"SystemExplorer.exe", "MSIAfterburner.exe", "ProcessLasso.exe",
}

// informationalProcesses are overlay-style apps worth ruling out but
// rarely the cause on their own.
var informationalProcesses = []string{
	"Discord.exe", "Medal.exe", "SignalRgb.exe", "GeForceExperience.exe",
}

// vpnProcesses are known VPN clients and their background services.
var vpnProcesses = []string{
	"NordVPN.exe", "nordvpn-service.exe", "expressvpn.exe", "expressvpnd.exe",
	"surfshark.exe", "SurfsharkService.exe", "protonvpn.exe", "ProtonVPN.exe",
	"CyberGhost.exe", "CG7Service.exe", "pia-client.exe", "pia-service.exe",
	"windscribe.exe", "windscribeservice.exe", "TunnelBear.exe",
	"TunnelBearService.exe", "hsscp.exe", "IPVanish.exe", "AtlasVPN.exe",
	"Cloudflare WARP.exe", "warp-svc.exe", "hamachi-2.exe", "hamachi-2-ui.exe",
	"Radmin VPN.exe", "RvpnService.exe",
}

func (e *Engine) verifyIntegrityFix() string {
	return fmt.Sprintf("Verify game integrity via Steam: Right-click %s > Properties > Installed Files > Verify",
		e.profile.GameName)
}

// checkVersion compares the manifest's reference build id against the
// installed Steam build id. A mismatch means the size references below
// may be stale.
func (e *Engine) checkVersion(ctx context.Context) []types.DiagnosticResult {
	const name = "Game Version"
	if e.profile.SteamAppID == 0 {
		return []types.DiagnosticResult{types.Result(name, types.StatusInfo,
			fmt.Sprintf("No Steam app id configured for %s", e.profile.GameName))}
	}
	ref := e.manifest.BuildID(ctx, e.profile.ManifestKey)
	if ref == 0 {
		return []types.DiagnosticResult{types.Result(name, types.StatusInfo,
			"No reference build id available")}
	}
	installed, ok := e.host.InstalledBuildID(e.profile.SteamAppID)
	if !ok {
		return []types.DiagnosticResult{types.Result(name, types.StatusInfo,
			fmt.Sprintf("%s not found in any Steam library", e.profile.GameName))}
	}
	if installed != ref {
		return []types.DiagnosticResult{types.Result(name, types.StatusWarning,
			fmt.Sprintf("Installed build %d differs from reference build %d; file size checks may be stale",
				installed, ref))}
	}
	return []types.DiagnosticResult{types.Result(name, types.StatusOK,
		fmt.Sprintf("Installed build %d matches the reference build", installed))}
}

func (e *Engine) checkInstallation(ctx context.Context) []types.DiagnosticResult {
	const name = "Game Installation"
	if e.gameFolder == "" {
		return []types.DiagnosticResult{types.Result(name, types.StatusWarning,
			"Game folder not specified")}
	}
	if !e.folderExists() {
		return []types.DiagnosticResult{types.Result(name, types.StatusError,
			fmt.Sprintf("Game folder not found: %s", e.gameFolder))}
	}
	return []types.DiagnosticResult{types.Result(name, types.StatusOK,
		fmt.Sprintf("Game folder found: %s", e.gameFolder))}
}

// checkIntegrity scans the game dir for piracy indicators and
// validates the critical shared library's size. Only runs when the
// game folder exists.
func (e *Engine) checkIntegrity(ctx context.Context) []types.DiagnosticResult {
	var results []types.DiagnosticResult
	gameDir := e.gameDir()

	var foundFolders []string
	for _, folder := range e.profile.PiracyFolders {
		if info, err := os.Stat(filepath.Join(gameDir, folder)); err == nil && info.IsDir() {
			foundFolders = append(foundFolders, folder)
		}
	}
	if len(foundFolders) > 0 {
		results = append(results, types.DiagnosticResult{
			Name:        "Unsupported Folders Detected",
			Status:      types.StatusWarning,
			Message:     "Found folders associated with unsupported game copies",
			BulletItems: foundFolders,
		})
	}

	var foundFiles []string
	for _, file := range e.profile.PiracyFiles {
		if _, err := os.Stat(filepath.Join(gameDir, file)); err == nil {
			foundFiles = append(foundFiles, file)
		}
	}

	sharedLib := filepath.Join(gameDir, criticalSharedLib)
	if info, err := os.Stat(sharedLib); err == nil {
		sizeKB := info.Size() / 1024
		sr, ok := e.manifest.Entry(ctx, e.profile.ManifestKey, criticalSharedLib)
		if !ok {
			sr = fallbackSharedLibRange
		}
		if !sr.Contains(sizeKB) {
			foundFiles = append(foundFiles,
				fmt.Sprintf("%s (modified — %d KiB)", criticalSharedLib, sizeKB))
		}
	} else {
		results = append(results, types.FixableResult("Critical File Missing",
			types.StatusError,
			fmt.Sprintf("%s is missing from game folder", criticalSharedLib),
			e.verifyIntegrityFix()))
	}

	if len(foundFiles) > 0 {
		results = append(results, types.DiagnosticResult{
			Name:         "Unsupported/Damaged Files Detected",
			Status:       types.StatusError,
			Message:      "Found unsupported or damaged files in the game folder",
			BulletItems:  foundFiles,
			FixAvailable: true,
			FixAction:    "Delete the unsupported files and verify game integrity via Steam.",
		})
	} else {
		results = append(results, types.Result("Game Integrity", types.StatusOK,
			"No integrity issues detected"))
	}
	return results
}

func (e *Engine) checkExecutable(ctx context.Context) []types.DiagnosticResult {
	const name = "Game Executable"
	exePath := filepath.Join(e.gameDir(), e.profile.ExeName)
	info, err := os.Stat(exePath)
	if err != nil {
		return []types.DiagnosticResult{types.FixableResult(name, types.StatusError,
			fmt.Sprintf("%s not found", e.profile.ExeName),
			e.verifyIntegrityFix())}
	}
	sizeKB := info.Size() / 1024
	sr, ok := e.manifest.Entry(ctx, e.profile.ManifestKey, "exe")
	if !ok {
		return []types.DiagnosticResult{types.Result(name, types.StatusInfo,
			fmt.Sprintf("%s found (%s, size manifest unavailable)",
				e.profile.ExeName, util.HumanMB(info.Size())))}
	}
	if sr.Contains(sizeKB) {
		return []types.DiagnosticResult{types.Result(name, types.StatusOK,
			fmt.Sprintf("%s found (%s)", e.profile.ExeName, util.HumanMB(info.Size())))}
	}
	return []types.DiagnosticResult{types.FixableResult(name, types.StatusWarning,
		fmt.Sprintf("%s size is unusual (%d KB, expected %d-%d KB)",
			e.profile.ExeName, sizeKB, sr.MinKB, sr.MaxKB),
		e.verifyIntegrityFix())}
}

// checkProcesses intersects the live process table with the known
// crash-causing list and the informational list.
func (e *Engine) checkProcesses(ctx context.Context) []types.DiagnosticResult {
	const name = "Process Check"
	names, err := e.host.RunningProcesses(ctx)
	if err != nil {
		return []types.DiagnosticResult{types.Result(name, types.StatusWarning,
			fmt.Sprintf("Could not check processes: %v", err))}
	}
	running := matchProcesses(names, problematicProcesses)
	background := matchProcesses(names, informationalProcesses)

	var results []types.DiagnosticResult

	lassoScheduled := false
	scheduled, err := e.host.ScheduledTaskQuery(ctx, "processlasso")
	switch {
	case err == nil:
		lassoScheduled = scheduled
	case errors.Is(err, host.ErrNotSupported):
		// no scheduled-task facility here
	default:
		results = append(results, types.Result(name, types.StatusWarning,
			fmt.Sprintf("Could not check scheduled tasks: %v", err)))
	}
	if len(running) > 0 {
		results = append(results, types.DiagnosticResult{
			Name:         "Problematic Processes Running",
			Status:       types.StatusWarning,
			Message:      "Found processes that can cause crashes",
			BulletItems:  running,
			FixAvailable: true,
			FixAction:    "Close these apps before playing, and disable them in Task Manager > Startup tab.",
		})
	}
	lassoRunning := false
	for _, p := range running {
		if strings.Contains(strings.ToLower(p), "processlasso") {
			lassoRunning = true
		}
	}
	if lassoRunning || lassoScheduled {
		results = append(results, types.FixableResult("Process Lasso Detected",
			types.StatusError,
			"Process Lasso can cause flashbang crashes on launch",
			"1. Close Process Lasso if running\n"+
				"2. Disable in Task Manager > Startup tab\n"+
				"3. Remove from Task Scheduler > Task Scheduler Library"))
	}
	if len(background) > 0 {
		results = append(results, types.DiagnosticResult{
			Name:        "Background Apps Detected",
			Status:      types.StatusInfo,
			Message:     "Overlay or capture apps are running; usually harmless, but worth ruling out",
			BulletItems: background,
		})
	}
	if len(results) == 0 {
		results = append(results, types.Result(name, types.StatusOK,
			"No problematic processes detected"))
	}
	return results
}

// checkVPN intersects running processes with known VPN clients,
// deduplicated so a client and its background service count once.
func (e *Engine) checkVPN(ctx context.Context) []types.DiagnosticResult {
	const name = "VPN Check"
	names, err := e.host.RunningProcesses(ctx)
	if err != nil {
		return []types.DiagnosticResult{types.Result(name, types.StatusWarning,
			fmt.Sprintf("Could not check for VPN processes: %v", err))}
	}
	matched := matchProcesses(names, vpnProcesses)

	seen := make(map[string]bool)
	var vpns []string
	for _, proc := range matched {
		base := vpnBaseName(proc)
		if seen[base] {
			continue
		}
		seen[base] = true
		vpns = append(vpns, proc)
	}
	if len(vpns) > 0 {
		return []types.DiagnosticResult{{
			Name:         "VPN Detected",
			Status:       types.StatusWarning,
			Message:      "Running VPN client(s) may cause multiplayer issues",
			BulletItems:  vpns,
			FixAvailable: true,
			FixAction:    "Disable or exit your VPN before playing online.",
		}}
	}
	return []types.DiagnosticResult{types.Result(name, types.StatusOK,
		"No VPN clients detected")}
}

func (e *Engine) checkElevation(ctx context.Context) []types.DiagnosticResult {
	const name = "Steam Elevation Check"
	if !e.host.HasElevationConcept() {
		r := types.Result(name, types.StatusInfo,
			"Steam elevation check not applicable on this platform")
		r.NotApplicable = true
		return []types.DiagnosticResult{r}
	}
	switch e.host.ProcessElevation(ctx, "steam.exe") {
	case host.ElevationNotRunning:
		return []types.DiagnosticResult{types.Result(name, types.StatusInfo,
			"Steam is not currently running")}
	case host.ElevationNormal:
		return []types.DiagnosticResult{types.Result(name, types.StatusOK,
			"Steam is running with normal privileges")}
	case host.ElevationElevated:
		return []types.DiagnosticResult{types.FixableResult(
			"Steam Running as Administrator", types.StatusError,
			"Steam is running with elevated privileges. This can cause save file permission issues.",
			e.elevationFix())}
	default:
		return []types.DiagnosticResult{types.Result(name, types.StatusWarning,
			"Could not determine if Steam is elevated")}
	}
}

// elevationFix builds the ownership-reset remediation. Command lines
// stay on their own lines so the presentation layer can render them as
// commands.
func (e *Engine) elevationFix() string {
	var b strings.Builder
	b.WriteString("Steam is running with administrator privileges.\n\n")
	b.WriteString("1. Exit Steam, right-click steam.exe > Properties > Compatibility\n")
	b.WriteString("   Uncheck 'Run this program as an administrator'\n\n")
	b.WriteString("2. Take Ownership (PowerShell as Admin):\n\n")
	if e.gameFolder != "" {
		fmt.Fprintf(&b, "takeown /F %q /R /D Y\n", e.gameFolder)
		fmt.Fprintf(&b, "icacls %q /grant %%USERNAME%%:F /T\n\n", e.gameFolder)
	}
	savedData := filepath.Join(os.Getenv("APPDATA"), e.profile.GameName)
	fmt.Fprintf(&b, "takeown /F %q /R /D Y\n", savedData)
	fmt.Fprintf(&b, "icacls %q /grant %%USERNAME%%:F /T", savedData)
	return b.String()
}

func (e *Engine) checkSaveFile(ctx context.Context) []types.DiagnosticResult {
	if e.saveFile == "" {
		return []types.DiagnosticResult{types.Result("Save File", types.StatusInfo,
			"No save file loaded")}
	}
	info, err := os.Stat(e.saveFile)
	if err != nil {
		return []types.DiagnosticResult{types.Result("Save File", types.StatusError,
			fmt.Sprintf("Save file not found: %s", e.saveFile))}
	}

	var results []types.DiagnosticResult
	if f, err := os.Open(e.saveFile); err != nil {
		results = append(results, types.FixableResult("Save File Permissions",
			types.StatusError,
			"Cannot read save file — check file permissions",
			"Run as administrator or check file permissions"))
	} else {
		f.Close()
		results = append(results, types.Result("Save File Permissions", types.StatusOK,
			"Save file is readable"))
	}

	if info.Size() < saveMinPlausibleBytes {
		results = append(results, types.Result("Save File Size", types.StatusError,
			fmt.Sprintf("Save file suspiciously small (%d bytes) — may be corrupted", info.Size())))
	} else {
		results = append(results, types.Result("Save File Size", types.StatusOK,
			fmt.Sprintf("Save file size is normal (%d KB)", info.Size()/1024)))
	}

	free, err := e.host.FreeDiskSpace(filepath.Dir(e.saveFile))
	switch {
	case errors.Is(err, host.ErrNotSupported):
		// disk space only checked on the primary platform
	case err != nil:
		results = append(results, types.Result("Disk Space", types.StatusWarning,
			fmt.Sprintf("Could not check disk space: %v", err)))
	case free < lowDiskBytes:
		results = append(results, types.FixableResult("Disk Space", types.StatusWarning,
			fmt.Sprintf("Low disk space: %d GB free", free>>30),
			"Free up disk space for save backups"))
	default:
		results = append(results, types.Result("Disk Space", types.StatusOK,
			fmt.Sprintf("Sufficient disk space: %d GB free", free>>30)))
	}
	return results
}

// matchProcesses returns the candidates present in the running set.
// Matching is case-insensitive and tolerant of the Windows ".exe"
// suffix, so lists written with Windows names match on Linux too.
func matchProcesses(running, candidates []string) []string {
	set := make(map[string]bool, len(running))
	for _, r := range running {
		set[util.NormalizeProcessName(r)] = true
	}
	var matched []string
	for _, c := range candidates {
		if set[util.NormalizeProcessName(c)] {
			matched = append(matched, c)
		}
	}
	return matched
}

// vpnBaseName normalizes a VPN process name for deduplication: strip
// the .exe suffix, cut at the first dash, and drop a trailing
// "service"/"svc"/daemon qualifier. "NordVPN.exe" and
// "nordvpn-service.exe" share the base "nordvpn".
func vpnBaseName(name string) string {
	base := util.NormalizeProcessName(name)
	if i := strings.IndexByte(base, '-'); i > 0 {
		base = base[:i]
	}
	for _, suffix := range []string{"service", "svc"} {
		if trimmed := strings.TrimSuffix(base, suffix); trimmed != base && trimmed != "" {
			base = trimmed
			break
		}
	}
	if len(base) > 4 && strings.HasSuffix(base, "d") {
		base = base[:len(base)-1]
	}
	return base
}
