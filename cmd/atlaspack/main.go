// atlaspack — texture atlas packer
//
// Packs a directory of sprite images onto as few texture sheets as
// possible and writes the sheet images together with JSON metadata.
// Optionally exports a PDF report or a DXF drawing of the layout.
//
// Build:
//   go build -o atlaspack ./cmd/atlaspack
//
// Typical usage:
//   atlaspack -in sprites/ -out atlas/
//   atlaspack -manifest game/atlaspack.toml
//   atlaspack -list sprites.csv -dry-run -pdf layout.pdf

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/packforge/atlaspack/internal/atlas"
	"github.com/packforge/atlaspack/internal/export"
	"github.com/packforge/atlaspack/internal/importer"
	"github.com/packforge/atlaspack/internal/model"
	"github.com/packforge/atlaspack/internal/project"
)

const version = "1.0.0"

func main() {
	log.SetFlags(0)
	log.SetPrefix("atlaspack: ")

	var (
		manifestPath = flag.String("manifest", "atlaspack.toml", "path to the job manifest")
		initManifest = flag.Bool("init", false, "write a default manifest and exit")
		inputDir     = flag.String("in", "", "sprite directory (overrides the manifest)")
		outputDir    = flag.String("out", "", "output directory (overrides the manifest)")
		name         = flag.String("name", "", "atlas base name (overrides the manifest)")
		listPath     = flag.String("list", "", "pack a CSV/XLSX sprite list instead of images")
		dryRun       = flag.Bool("dry-run", false, "compute the layout without writing sheet images")
		pdfPath      = flag.String("pdf", "", "also write a PDF layout report to this path")
		dxfPath      = flag.String("dxf", "", "also write a DXF layout drawing to this path")
		showVersion  = flag.Bool("version", false, "print the version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("atlaspack " + version)
		return
	}

	if *initManifest {
		if err := project.SaveManifest(*manifestPath, project.DefaultManifest()); err != nil {
			log.Fatalf("writing manifest: %v", err)
		}
		log.Printf("wrote %s", *manifestPath)
		return
	}

	manifest, err := project.LoadManifest(*manifestPath)
	if err != nil {
		log.Fatal(err)
	}
	manifest.Resolve(*manifestPath)
	if *inputDir != "" {
		manifest.InputDir = *inputDir
	}
	if *outputDir != "" {
		manifest.OutputDir = *outputDir
	}
	if *name != "" {
		manifest.Name = *name
	}
	if *pdfPath == "" {
		*pdfPath = manifest.Export.PDF
	}
	if *dxfPath == "" {
		*dxfPath = manifest.Export.DXF
	}

	sources, err := loadSources(*listPath, manifest)
	if err != nil {
		log.Fatal(err)
	}

	// Sprite lists carry no pixels, so they imply a dry run.
	if *listPath != "" {
		*dryRun = true
	}

	result, err := atlas.Pack(sources, manifest.Settings)
	if err != nil {
		log.Fatal(err)
	}

	for _, sheet := range result.Sheets {
		log.Printf("sheet %d: %dx%d px, %d sprites, %.1f%% efficiency",
			sheet.Index+1, sheet.Width, sheet.Height, len(sheet.Placements), sheet.Efficiency())
	}
	if len(result.Unplaced) > 0 {
		log.Printf("warning: %d sprites did not fit", len(result.Unplaced))
		for _, sprite := range result.Unplaced {
			log.Printf("  unplaced: %s (%dx%d)", sprite.Name, sprite.Width, sprite.Height)
		}
	}

	if err := writeOutputs(result, sources, manifest, *dryRun); err != nil {
		log.Fatal(err)
	}

	if *pdfPath != "" {
		if err := export.ExportPDF(*pdfPath, result, manifest.Settings); err != nil {
			log.Fatalf("PDF export: %v", err)
		}
		log.Printf("wrote %s", *pdfPath)
	}
	if *dxfPath != "" {
		if err := export.ExportDXF(*dxfPath, result); err != nil {
			log.Fatalf("DXF export: %v", err)
		}
		log.Printf("wrote %s", *dxfPath)
	}
}

// loadSources reads sprites either from a CSV/XLSX list or from the input
// directory named by the manifest.
func loadSources(listPath string, manifest project.Manifest) ([]atlas.Source, error) {
	if listPath == "" {
		return atlas.LoadDir(manifest.InputDir, manifest.Settings)
	}

	var imported importer.ImportResult
	switch strings.ToLower(filepath.Ext(listPath)) {
	case ".xlsx", ".xls":
		imported = importer.ImportExcel(listPath)
	default:
		imported = importer.ImportCSV(listPath)
	}
	for _, warning := range imported.Warnings {
		log.Printf("warning: %s", warning)
	}
	if len(imported.Errors) > 0 {
		for _, e := range imported.Errors {
			log.Printf("error: %s", e)
		}
		return nil, fmt.Errorf("sprite list %s has errors", listPath)
	}

	sources := make([]atlas.Source, len(imported.Sprites))
	for i, sprite := range imported.Sprites {
		sources[i] = atlas.Source{Sprite: sprite}
	}
	return sources, nil
}

// writeOutputs renders and saves the sheet images, metadata and the stored
// pack result. With dryRun set only the result file is written.
func writeOutputs(result model.PackResult, sources []atlas.Source, manifest project.Manifest, dryRun bool) error {
	if err := os.MkdirAll(manifest.OutputDir, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	resultPath := filepath.Join(manifest.OutputDir, manifest.Name+".result.json")
	if err := project.SaveResult(resultPath, result); err != nil {
		return fmt.Errorf("saving pack result: %w", err)
	}

	if dryRun {
		log.Printf("dry run: wrote %s", resultPath)
		return nil
	}

	sheets, err := atlas.Render(result, sources)
	if err != nil {
		return err
	}
	names, err := atlas.SaveSheets(sheets, manifest.OutputDir, manifest.Name)
	if err != nil {
		return err
	}
	for _, n := range names {
		log.Printf("wrote %s", filepath.Join(manifest.OutputDir, n))
	}

	meta, err := atlas.BuildMetadata(result, names, version)
	if err != nil {
		return err
	}
	metaPath := filepath.Join(manifest.OutputDir, manifest.Name+".json")
	if err := atlas.WriteMetadata(metaPath, meta); err != nil {
		return err
	}
	log.Printf("wrote %s", metaPath)
	return nil
}
