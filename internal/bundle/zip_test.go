package bundle

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateZip(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "report.txt")
	b := filepath.Join(dir, "report.json")
	require.NoError(t, os.WriteFile(a, []byte("text report"), 0644))
	require.NoError(t, os.WriteFile(b, []byte("{}"), 0644))

	zipPath, err := CreateZip(dir, []string{a, b, filepath.Join(dir, "missing.md")})
	require.NoError(t, err)

	r, err := zip.OpenReader(zipPath)
	require.NoError(t, err)
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{"report.txt", "report.json"}, names)
}
