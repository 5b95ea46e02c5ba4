// Package project reads and writes the files that describe a packing job:
// the TOML manifest a user edits and the JSON result of a finished pack.
package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/packforge/atlaspack/internal/model"
)

// Manifest describes one packing job. It is what atlaspack.toml contains.
type Manifest struct {
	// Name is the base name of the generated sheet images and metadata.
	Name string `toml:"name"`

	// InputDir holds the sprite images, OutputDir receives the atlas.
	// Relative paths are resolved against the manifest location.
	InputDir  string `toml:"input_dir"`
	OutputDir string `toml:"output_dir"`

	Settings model.Settings `toml:"settings"`

	// Export names optional extra outputs. Empty fields mean the export
	// is skipped; the paths are resolved like InputDir and OutputDir.
	Export ExportTargets `toml:"export"`
}

// ExportTargets holds the optional report outputs of a job.
type ExportTargets struct {
	PDF string `toml:"pdf"`
	DXF string `toml:"dxf"`
}

// DefaultManifest returns a manifest with every field at its default.
func DefaultManifest() Manifest {
	return Manifest{
		Name:      "atlas",
		InputDir:  "sprites",
		OutputDir: "out",
		Settings:  model.DefaultSettings(),
	}
}

// LoadManifest reads a manifest from the given path. A missing file yields
// the default manifest with no error, so a fresh working directory behaves
// the same as one holding an all-defaults manifest.
func LoadManifest(path string) (Manifest, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultManifest(), nil
	}

	manifest := DefaultManifest()
	if _, err := toml.DecodeFile(path, &manifest); err != nil {
		return Manifest{}, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	if manifest.Name == "" {
		manifest.Name = "atlas"
	}
	return manifest, nil
}

// SaveManifest writes the manifest as TOML, creating missing parent
// directories.
func SaveManifest(path string, manifest Manifest) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return toml.NewEncoder(file).Encode(manifest)
}

// Resolve turns the manifest's relative paths into absolute ones, anchored
// at the directory the manifest was loaded from.
func (m *Manifest) Resolve(manifestPath string) {
	base := filepath.Dir(manifestPath)
	if !filepath.IsAbs(m.InputDir) {
		m.InputDir = filepath.Join(base, m.InputDir)
	}
	if !filepath.IsAbs(m.OutputDir) {
		m.OutputDir = filepath.Join(base, m.OutputDir)
	}
	if m.Export.PDF != "" && !filepath.IsAbs(m.Export.PDF) {
		m.Export.PDF = filepath.Join(base, m.Export.PDF)
	}
	if m.Export.DXF != "" && !filepath.IsAbs(m.Export.DXF) {
		m.Export.DXF = filepath.Join(base, m.Export.DXF)
	}
}
