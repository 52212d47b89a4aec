package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hapfel1/fscheckup/pkg/types"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestGamesCommandListsAllTitles(t *testing.T) {
	out, err := execute(t, "games")
	require.NoError(t, err)
	assert.Contains(t, out, "elden_ring")
	assert.Contains(t, out, "Elden Ring")
	assert.Contains(t, out, "1245620")
	assert.Contains(t, out, "nightreign")
	assert.Contains(t, out, "dark_souls_3")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, types.Version)
	assert.Contains(t, out, types.Disclaimer)
}

func TestRunCommandUnknownGame(t *testing.T) {
	_, err := execute(t, "run", "sekiro")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sekiro")
}

func TestRunCommandRequiresGameArg(t *testing.T) {
	_, err := execute(t, "run")
	require.Error(t, err)
}

func TestExitWithCode(t *testing.T) {
	assert.NoError(t, exitWithCode(0))

	err := exitWithCode(types.ExitErrors)
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, types.ExitErrors, exitErr.Code)
	assert.True(t, exitErr.Silent)
}

func TestLoggerLevelFollowsVerbose(t *testing.T) {
	quiet := (&GlobalOptions{}).Logger()
	verbose := (&GlobalOptions{Verbose: true}).Logger()
	assert.Greater(t, int(quiet.GetLevel()), int(verbose.GetLevel()))
}
