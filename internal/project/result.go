package project

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/packforge/atlaspack/internal/model"
)

// SaveResult persists a pack result to the given path as JSON. It creates
// any missing parent directories automatically. The stored result lets the
// report and DXF exporters run again without repacking.
func SaveResult(path string, result model.PackResult) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadResult reads a pack result from the given path.
func LoadResult(path string) (model.PackResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.PackResult{}, err
	}
	var result model.PackResult
	if err := json.Unmarshal(data, &result); err != nil {
		return model.PackResult{}, err
	}
	return result, nil
}
