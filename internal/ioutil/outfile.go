// Package ioutil holds small filesystem helpers shared by the pipeline:
// output-path validation.
package ioutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// ValidateOutputPath checks that outfile's parent directory exists and is
// writable by creating and removing a probe file there. Called on startup,
// before any ingest work begins, so a permissions problem fails fast.
func ValidateOutputPath(outfile string) error {
	dir := filepath.Dir(outfile)
	if dir == "" {
		dir = "."
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("output directory does not exist: %s", dir)
	}
	if !info.IsDir() {
		return fmt.Errorf("output path's parent is not a directory: %s", dir)
	}

	probe, err := os.CreateTemp(dir, ".sansa-outfile-probe-*")
	if err != nil {
		return fmt.Errorf("output directory %s is not writable: %w", dir, err)
	}
	probePath := probe.Name()
	probe.Close()
	if err := os.Remove(probePath); err != nil {
		return fmt.Errorf("cleaning up probe file: %w", err)
	}
	return nil
}
