// Package profile is the registry of supported titles. Adding a game
// means adding a record here (and optionally registering extra
// checks); no check logic changes.
package profile

import (
	"fmt"
	"sort"

	"github.com/hapfel1/fscheckup/internal/engine"
	"github.com/hapfel1/fscheckup/pkg/types"
)

// standardPiracyFiles shows up in nearly every cracked FromSoftware
// release; dinput8.dll is added per title because some games use it
// legitimately for mod loaders.
var standardPiracyFiles = []string{
	"dlllist.txt", "OnlineFix.ini", "OnlineFix64.dll",
	"steam_api64.rne", "steam_emu.ini", "winmm.dll",
}

func withDinput8(files []string) []string {
	out := make([]string, 0, len(files)+1)
	out = append(out, files...)
	return append(out, "dinput8.dll")
}

var profiles = map[string]types.GameProfile{
	"elden_ring": {
		GameName:      "Elden Ring",
		ManifestKey:   "elden_ring",
		ExeName:       "eldenring.exe",
		SaveFileName:  "ER0000.sl2",
		GameSubfolder: "Game",
		PiracyFolders: []string{"_CommonRedist", "AdvGuide", "ArtbookOST"},
		PiracyFiles:   withDinput8(standardPiracyFiles),
		SteamAppID:    1245620,
	},
	"nightreign": {
		GameName:      "Elden Ring Nightreign",
		ManifestKey:   "nightreign",
		ExeName:       "nightreign.exe",
		SaveFileName:  "NR0000.sl2",
		GameSubfolder: "Game",
		PiracyFolders: []string{"_CommonRedist", "AdvGuide"},
		PiracyFiles:   withDinput8(standardPiracyFiles),
		SteamAppID:    2622380,
	},
	"dark_souls_remastered": {
		GameName:      "Dark Souls Remastered",
		ManifestKey:   "dark_souls_remastered",
		ExeName:       "DarkSoulsRemastered.exe",
		SaveFileName:  "DRAKS0005.sl2",
		GameSubfolder: "", // flat layout
		PiracyFolders: []string{"_CommonRedist"},
		PiracyFiles:   standardPiracyFiles,
		SteamAppID:    570940,
	},
	"dark_souls_2": {
		GameName:      "Dark Souls II: Scholar of the First Sin",
		ManifestKey:   "dark_souls_2",
		ExeName:       "DarkSoulsII.exe",
		SaveFileName:  "DS2SOFS0000.sl2",
		GameSubfolder: "Game",
		PiracyFolders: []string{"_CommonRedist"},
		PiracyFiles:   standardPiracyFiles,
		SteamAppID:    335300,
	},
	"dark_souls_3": {
		GameName:      "Dark Souls III",
		ManifestKey:   "dark_souls_3",
		ExeName:       "DarkSoulsIII.exe",
		SaveFileName:  "DS30000.sl2",
		GameSubfolder: "Game",
		PiracyFolders: []string{"_CommonRedist"},
		PiracyFiles:   withDinput8(standardPiracyFiles),
		SteamAppID:    374320,
	},
}

// extraChecks registers per-title optional checks, keyed by manifest
// key. The regulation archive only exists in the titles listed here.
var extraChecks = map[string][]engine.CheckFactory{
	"elden_ring":   {engine.DataFileCheck("regulation.bin", "Regulation File")},
	"nightreign":   {engine.DataFileCheck("regulation.bin", "Regulation File")},
	"dark_souls_3": {engine.DataFileCheck("regulation.bin", "Regulation File")},
}

// ByKey looks up a profile. An unrecognized key is the one sanctioned
// fatal condition; it fails fast at the boundary.
func ByKey(key string) (types.GameProfile, error) {
	p, ok := profiles[key]
	if !ok {
		return types.GameProfile{}, fmt.Errorf("unknown game key %q (known: %v)", key, Keys())
	}
	return p, nil
}

// Keys returns the supported game keys, sorted.
func Keys() []string {
	keys := make([]string, 0, len(profiles))
	for k := range profiles {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// All returns every profile in key order.
func All() []types.GameProfile {
	var out []types.GameProfile
	for _, k := range Keys() {
		out = append(out, profiles[k])
	}
	return out
}

// ExtraChecks returns the per-title extra check factories; empty for
// titles without any.
func ExtraChecks(key string) []engine.CheckFactory {
	return extraChecks[key]
}
