package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hapfel1/fscheckup/pkg/types"
)

func checkNames(checks []Check) []string {
	names := make([]string, 0, len(checks))
	for _, c := range checks {
		names = append(names, c.Name)
	}
	return names
}

func TestChecksSkipFolderScansWhenFolderAbsent(t *testing.T) {
	e := newTestEngine(t, "", "", quietHost(), testManifestJSON)
	names := checkNames(e.Checks())
	assert.NotContains(t, names, "Game Integrity")
	assert.NotContains(t, names, "Game Executable")
	assert.Contains(t, names, "Game Version")
	assert.Contains(t, names, "Save File Health")
}

func TestChecksIncludeFolderScansWhenFolderExists(t *testing.T) {
	e := newTestEngine(t, newGameDir(t, 150, 260), "", quietHost(), testManifestJSON)
	names := checkNames(e.Checks())
	assert.Contains(t, names, "Game Integrity")
	assert.Contains(t, names, "Game Executable")
}

func TestChecksAppendExtras(t *testing.T) {
	e := newTestEngine(t, newGameDir(t, 150, 260), "", quietHost(), testManifestJSON,
		DataFileCheck("regulation.bin", "Regulation File"))
	names := checkNames(e.Checks())
	require.NotEmpty(t, names)
	assert.Equal(t, "Regulation File", names[len(names)-1])
}

// Running the same engine twice against an unchanged host must yield
// identical results.
func TestRunAllIdempotent(t *testing.T) {
	folder := newGameDir(t, 150, 260)
	save := filepath.Join(t.TempDir(), "ER0000.sl2")
	require.NoError(t, os.WriteFile(save, make([]byte, 4096), 0644))

	h := quietHost()
	h.procs = []string{"Discord.exe", "NordVPN.exe"}
	h.buildID, h.buildOK = 12345, true
	e := newTestEngine(t, folder, save, h, testManifestJSON)

	first := e.RunAll(context.Background())
	second := e.RunAll(context.Background())
	assert.Equal(t, first, second)
}

func TestRunAllNeverEmpty(t *testing.T) {
	e := newTestEngine(t, "", "", quietHost(), testManifestJSON)
	results := e.RunAll(context.Background())
	assert.NotEmpty(t, results)
	for _, r := range results {
		assert.NotEmpty(t, r.Name)
		assert.NotEmpty(t, r.Message)
	}
}

func TestRunnerStreamsAllResults(t *testing.T) {
	e := newTestEngine(t, newGameDir(t, 150, 260), "", quietHost(), testManifestJSON)
	r := NewRunner()

	var streamed []types.DiagnosticResult
	for res := range r.Start(context.Background(), e) {
		streamed = append(streamed, res)
	}

	want := e.RunAll(context.Background())
	assert.Len(t, streamed, len(want))
}

// blockingCheck emits a sentinel result only after release is closed,
// so a test can order a supersession before the result arrives.
func blockingCheck(release <-chan struct{}) CheckFactory {
	return func(e *Engine) Check {
		return Check{
			Name: "Sentinel",
			Run: func(ctx context.Context) []types.DiagnosticResult {
				<-release
				return []types.DiagnosticResult{types.Result("Sentinel", types.StatusInfo, "late arrival")}
			},
		}
	}
}

func TestRunnerDropsSupersededResults(t *testing.T) {
	release := make(chan struct{})
	e := newTestEngine(t, "", "", quietHost(), testManifestJSON, blockingCheck(release))
	r := NewRunner()

	ctx := context.Background()
	firstCh := r.Start(ctx, e)
	firstDone := make(chan []string)
	go func() {
		var names []string
		for res := range firstCh {
			names = append(names, res.Name)
		}
		firstDone <- names
	}()

	// Supersede the first run while its sentinel check is still blocked,
	// then let both runs finish.
	secondCh := r.Start(ctx, e)
	close(release)

	var secondNames []string
	for res := range secondCh {
		secondNames = append(secondNames, res.Name)
	}
	assert.Contains(t, secondNames, "Sentinel")

	select {
	case firstNames := <-firstDone:
		assert.NotContains(t, firstNames, "Sentinel")
	case <-time.After(5 * time.Second):
		t.Fatal("superseded run never closed its channel")
	}
}

func TestRunnerClosesAfterContextCancel(t *testing.T) {
	e := newTestEngine(t, "", "", quietHost(), testManifestJSON)
	r := NewRunner()

	ctx, cancel := context.WithCancel(context.Background())
	ch := r.Start(ctx, e)
	cancel()

	done := make(chan struct{})
	go func() {
		for range ch {
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("cancelled run never closed its channel")
	}
}

func TestRunnerGenerationAdvances(t *testing.T) {
	e := newTestEngine(t, "", "", quietHost(), testManifestJSON)
	r := NewRunner()
	ctx := context.Background()

	ch1 := r.Start(ctx, e)
	g1 := r.Generation()
	ch2 := r.Start(ctx, e)
	assert.Greater(t, r.Generation(), g1)

	for range ch1 {
	}
	for range ch2 {
	}
}
