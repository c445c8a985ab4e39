// Package placement moves finished files into the destination folder.
package placement

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrPlacementFailed is returned when a file could not be moved.
var ErrPlacementFailed = errors.New("placement failed")

// Place moves the file at src into destDir, keeping its name, and returns
// the final path. An empty destDir leaves the file where it is and returns
// src unchanged. A same-named file in destDir is replaced.
func Place(src, destDir string) (string, error) {
	if destDir == "" {
		return src, nil
	}

	info, err := os.Stat(destDir)
	if err != nil {
		return "", fmt.Errorf("%w: destination: %v", ErrPlacementFailed, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: destination %s is not a directory", ErrPlacementFailed, destDir)
	}

	if _, err := os.Stat(src); err != nil {
		return "", fmt.Errorf("%w: source: %v", ErrPlacementFailed, err)
	}

	dst := filepath.Join(destDir, filepath.Base(src))
	if same, err := samePath(src, dst); err == nil && same {
		return dst, nil
	}

	if err := moveFile(src, dst); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPlacementFailed, err)
	}
	return dst, nil
}

// moveFile moves a file from src to dst.
// Uses os.Rename if possible, otherwise copies and deletes.
func moveFile(src, dst string) error {
	// Try rename first (works if same filesystem)
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	// Fall back to copy + delete
	if err := copyFile(src, dst); err != nil {
		return err
	}

	return os.Remove(src)
}

// copyFile copies src to a temp file beside dst and renames it into place.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.part")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath) //nolint:errcheck // no-op once renamed

	if _, err := io.Copy(tmp, srcFile); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if info, err := srcFile.Stat(); err == nil {
		_ = os.Chmod(tmpPath, info.Mode().Perm())
	}

	return os.Rename(tmpPath, dst)
}

func samePath(a, b string) (bool, error) {
	ai, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	bi, err := os.Stat(b)
	if err != nil {
		return false, err
	}
	return os.SameFile(ai, bi), nil
}
