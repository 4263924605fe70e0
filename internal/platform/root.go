package platform

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindRoot recursively looks upwards for a definition root indicator.
// Indicators are: a metakit.yaml file, a .metakit directory, or a .git
// directory. If found, returns the absolute path to the root.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, "metakit.yaml") || hasFile(dir, ".metakit") || hasFile(dir, ".git") {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("definition root not found")
}

func hasFile(dir, name string) bool {
	path := filepath.Join(dir, name)
	_, err := os.Stat(path)
	return err == nil
}
