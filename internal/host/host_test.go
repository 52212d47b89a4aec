package host

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hapfel1/fscheckup/internal/steam"
)

func newIntrospector(t *testing.T, roots []string) Introspector {
	t.Helper()
	return New(zerolog.Nop(), steam.NewLocatorWithRoots(zerolog.Nop(), roots))
}

func TestRunningProcessesIncludesSelf(t *testing.T) {
	h := newIntrospector(t, nil)
	names, err := h.RunningProcesses(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, names)
}

func TestInstalledBuildIDMemoized(t *testing.T) {
	root := filepath.Join(t.TempDir(), "steamapps")
	require.NoError(t, os.MkdirAll(root, 0755))
	acf := `"AppState"
{
	"appid"		"374320"
	"installdir"		"DARK SOULS III"
	"buildid"		"4246591"
}`
	acfPath := filepath.Join(root, "appmanifest_374320.acf")
	require.NoError(t, os.WriteFile(acfPath, []byte(acf), 0644))

	h := newIntrospector(t, []string{root})
	id, ok := h.InstalledBuildID(374320)
	require.True(t, ok)
	assert.Equal(t, int64(4246591), id)

	// Removing the ACF must not change the answer mid-run.
	require.NoError(t, os.Remove(acfPath))
	id, ok = h.InstalledBuildID(374320)
	assert.True(t, ok)
	assert.Equal(t, int64(4246591), id)
}

func TestInstalledBuildIDAbsent(t *testing.T) {
	root := filepath.Join(t.TempDir(), "steamapps")
	require.NoError(t, os.MkdirAll(root, 0755))

	h := newIntrospector(t, []string{root})
	_, ok := h.InstalledBuildID(1245620)
	assert.False(t, ok)
}

func TestPlatformCapabilities(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("covers the non-windows degradation path")
	}
	h := newIntrospector(t, nil)
	assert.False(t, h.HasElevationConcept())
	assert.Equal(t, ElevationNotSupported, h.ProcessElevation(context.Background(), "steam"))

	_, err := h.ScheduledTaskQuery(context.Background(), "processlasso")
	assert.ErrorIs(t, err, ErrNotSupported)

	_, err = h.FreeDiskSpace(t.TempDir())
	assert.ErrorIs(t, err, ErrNotSupported)
}

func TestElevationString(t *testing.T) {
	assert.Equal(t, "elevated", ElevationElevated.String())
	assert.Equal(t, "not_running", ElevationNotRunning.String())
	assert.Equal(t, "unknown", ElevationUnknown.String())
}
