// Package output writes analysis results to files.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"armra/internal/render"
)

// WriteText writes s to path, creating parent directories.
func WriteText(path, s string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("output: mkdir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(s), 0644); err != nil {
		return fmt.Errorf("output: write %s: %w", path, err)
	}
	return nil
}

// WriteSummaryJSON writes the per-function summary as indented JSON.
func WriteSummaryJSON(path string, funcs []render.FuncSummary) error {
	if funcs == nil {
		funcs = []render.FuncSummary{}
	}
	return writeJSON(path, funcs)
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("output: create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("output: encode %s: %w", path, err)
	}
	return nil
}
