package orchestrator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ScorpionResponse/pelican/internal/paths"
)

// CanEraseOutput reports whether the output directory may be erased. It may
// not when either path lies within the other: erasing would destroy sources.
// Both paths must already be canonical.
func CanEraseOutput(contentPath, outputPath string) bool {
	if contentPath == "" || outputPath == "" {
		return false
	}
	return !paths.Within(contentPath, outputPath) && !paths.Within(outputPath, contentPath)
}

// CleanOutputDir removes everything inside path, keeping the directory itself.
// A missing directory is not an error; a path that is a file is removed.
func CleanOutputDir(path string) error {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return os.Remove(path)
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if err := os.RemoveAll(filepath.Join(path, e.Name())); err != nil {
			return fmt.Errorf("remove %s: %w", e.Name(), err)
		}
	}
	return nil
}
