// Package bundle creates zip archives of exported reports.
package bundle

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// CreateZip bundles the given files into a timestamped zip in outDir
// and returns its path. A file that cannot be read is skipped rather
// than failing the whole bundle.
func CreateZip(outDir string, files []string) (string, error) {
	zipName := fmt.Sprintf("fscheckup-%s.zip", time.Now().Format("20060102-150405"))
	zipPath := filepath.Join(outDir, zipName)

	zipFile, err := os.Create(zipPath)
	if err != nil {
		return "", fmt.Errorf("cannot create zip file: %w", err)
	}
	defer zipFile.Close()

	w := zip.NewWriter(zipFile)
	defer w.Close()

	for _, filePath := range files {
		if err := addFileToZip(w, filePath); err != nil {
			fmt.Fprintf(os.Stderr, "  Warning: could not add %s to zip: %v\n", filePath, err)
			continue
		}
	}

	return zipPath, nil
}

func addFileToZip(w *zip.Writer, filePath string) error {
	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return err
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}

	// Flatten paths inside the archive.
	header.Name = filepath.Base(filePath)
	header.Method = zip.Deflate

	writer, err := w.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = io.Copy(writer, file)
	return err
}
