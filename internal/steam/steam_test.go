package steam

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hapfel1/fscheckup/pkg/types"
)

const eldenRingACF = `"AppState"
{
	"appid"		"1245620"
	"name"		"ELDEN RING"
	"installdir"		"ELDEN RING"
	"buildid"		"12345678"
	"StateFlags"		"4"
}`

const libraryFoldersVDF = `"libraryfolders"
{
	"0"
	{
		"path"		"%s"
		"label"		""
	}
}`

func newTestRoot(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "steamapps")
	require.NoError(t, os.MkdirAll(root, 0755))
	return root
}

func writeACF(t *testing.T, root, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(content), 0644))
}

func TestBuildIDFromACF(t *testing.T) {
	root := newTestRoot(t)
	writeACF(t, root, "appmanifest_1245620.acf", eldenRingACF)

	l := NewLocatorWithRoots(zerolog.Nop(), []string{root})
	id, ok := l.BuildID(1245620)
	require.True(t, ok)
	assert.Equal(t, int64(12345678), id)
}

func TestBuildIDNotInstalled(t *testing.T) {
	l := NewLocatorWithRoots(zerolog.Nop(), []string{newTestRoot(t)})
	_, ok := l.BuildID(374320)
	assert.False(t, ok)
}

func TestBuildIDScansAllRoots(t *testing.T) {
	empty := newTestRoot(t)
	second := newTestRoot(t)
	writeACF(t, second, "appmanifest_1245620.acf", eldenRingACF)

	l := NewLocatorWithRoots(zerolog.Nop(), []string{empty, second})
	id, ok := l.BuildID(1245620)
	require.True(t, ok)
	assert.Equal(t, int64(12345678), id)
}

func TestInstallDir(t *testing.T) {
	root := newTestRoot(t)
	writeACF(t, root, "appmanifest_1245620.acf", eldenRingACF)

	l := NewLocatorWithRoots(zerolog.Nop(), []string{root})
	dir, ok := l.InstallDir(1245620)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(root, "common", "ELDEN RING"), dir)
}

func TestBuildIDMalformedACF(t *testing.T) {
	root := newTestRoot(t)
	writeACF(t, root, "appmanifest_1245620.acf", `"AppState" { "buildid" `)

	l := NewLocatorWithRoots(zerolog.Nop(), []string{root})
	_, ok := l.BuildID(1245620)
	assert.False(t, ok)
}

func TestParseLibraryFolders(t *testing.T) {
	lib := t.TempDir()
	vdfPath := filepath.Join(t.TempDir(), "libraryfolders.vdf")
	content := []byte(`"libraryfolders"
{
	"0"
	{
		"path"		"` + lib + `"
	}
}`)
	require.NoError(t, os.WriteFile(vdfPath, content, 0644))

	paths, err := parseLibraryFolders(vdfPath)
	require.NoError(t, err)
	assert.Equal(t, []string{lib}, paths)
}

func TestAutoscanFindsInstallAndSave(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("exercises the proton save layout")
	}
	root := newTestRoot(t)
	writeACF(t, root, "appmanifest_1245620.acf", eldenRingACF)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "common", "ELDEN RING"), 0755))

	saveDir := filepath.Join(root, "compatdata", "1245620", "pfx", "drive_c",
		"users", "steamuser", "AppData", "Roaming", "Elden Ring", "76561198000000000")
	require.NoError(t, os.MkdirAll(saveDir, 0755))
	savePath := filepath.Join(saveDir, "ER0000.sl2")
	require.NoError(t, os.WriteFile(savePath, make([]byte, 4096), 0644))

	profile := types.GameProfile{
		GameName:     "Elden Ring",
		SaveFileName: "ER0000.sl2",
		SteamAppID:   1245620,
	}
	l := NewLocatorWithRoots(zerolog.Nop(), []string{root})
	folder, save := l.Autoscan(profile)
	assert.Equal(t, filepath.Join(root, "common", "ELDEN RING"), folder)
	assert.Equal(t, savePath, save)
}

func TestAutoscanNothingFound(t *testing.T) {
	l := NewLocatorWithRoots(zerolog.Nop(), []string{newTestRoot(t)})
	folder, save := l.Autoscan(types.GameProfile{
		GameName:     "Dark Souls III",
		SaveFileName: "DS30000.sl2",
		SteamAppID:   374320,
	})
	assert.Empty(t, folder)
	assert.Empty(t, save)
}
