package util

import (
	"context"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunEcho(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("echo builtin differs on windows")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	r := Run(ctx, "echo", "hello")
	require.NoError(t, r.Err)
	assert.Equal(t, "hello", r.Stdout)
	assert.Equal(t, 0, r.ExitCode)
	assert.False(t, r.TimedOut)
}

func TestRunMissingCommand(t *testing.T) {
	ctx := context.Background()
	r := Run(ctx, "definitely-not-a-real-command-xyz")
	assert.Error(t, r.Err)
	assert.Equal(t, -1, r.ExitCode)
}

func TestRunTimeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("sleep not available on windows")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	r := Run(ctx, "sleep", "5")
	assert.True(t, r.TimedOut)
	assert.Equal(t, -1, r.ExitCode)
}

func TestNormalizeProcessName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"NordVPN.exe", "nordvpn"},
		{"steam.exe", "steam"},
		{"steam", "steam"},
		{"  RTSS.EXE ", "rtss"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeProcessName(tt.in))
	}
}

func TestHumanMB(t *testing.T) {
	assert.Equal(t, "1.5 MB", HumanMB(1572864))
}
