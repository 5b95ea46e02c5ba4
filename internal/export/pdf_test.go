package export

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/packforge/atlaspack/internal/model"
)

// buildTestResult creates a realistic pack result for testing.
func buildTestResult() model.PackResult {
	return model.PackResult{
		Sheets: []model.AtlasSheet{
			{
				Index:  0,
				Width:  512,
				Height: 512,
				Placements: []model.Placement{
					{
						Sprite: model.Sprite{ID: "s1", Name: "hero-idle", Width: 128, Height: 196, SourceWidth: 128, SourceHeight: 196},
						X:      0, Y: 0, Rotated: false,
					},
					{
						Sprite: model.Sprite{ID: "s2", Name: "coin", Width: 64, Height: 64, SourceWidth: 64, SourceHeight: 64},
						X:      128, Y: 0, Rotated: false,
					},
					{
						Sprite: model.Sprite{ID: "s3", Name: "banner", Width: 300, Height: 90, SourceWidth: 300, SourceHeight: 90},
						X:      0, Y: 200, Rotated: true,
					},
				},
			},
			{
				Index:  1,
				Width:  512,
				Height: 256,
				Placements: []model.Placement{
					{
						Sprite: model.Sprite{ID: "s4", Name: "background", Width: 400, Height: 240, SourceWidth: 400, SourceHeight: 240},
						X:      0, Y: 0, Rotated: false,
					},
				},
			},
		},
		Unplaced: nil,
	}
}

func TestExportPDF_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test_output.pdf")

	result := buildTestResult()
	settings := model.DefaultSettings()

	err := ExportPDF(path, result, settings)
	if err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
	// A valid PDF with 3 pages (2 sheets + summary) should be a reasonable size
	if info.Size() < 500 {
		t.Errorf("PDF file seems too small: %d bytes", info.Size())
	}
}

func TestExportPDF_EmptyResult(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.pdf")

	result := model.PackResult{Sheets: nil}
	settings := model.DefaultSettings()

	err := ExportPDF(path, result, settings)
	if err == nil {
		t.Fatal("expected error for empty result, got nil")
	}
}

func TestExportPDF_WithUnplacedSprites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "unplaced.pdf")

	result := buildTestResult()
	result.Unplaced = []model.Sprite{
		{ID: "u1", Name: "too-big", Width: 3000, Height: 2000},
		{ID: "u2", Name: "another", Width: 1500, Height: 1500},
	}
	settings := model.DefaultSettings()

	err := ExportPDF(path, result, settings)
	if err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
}

func TestExportPDF_SingleSheet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "single.pdf")

	result := model.PackResult{
		Sheets: []model.AtlasSheet{
			{
				Index:  0,
				Width:  256,
				Height: 128,
				Placements: []model.Placement{
					{
						Sprite: model.Sprite{ID: "s1", Name: "a", Width: 60, Height: 60},
						X:      0, Y: 0, Rotated: false,
					},
				},
			},
		},
	}
	settings := model.DefaultSettings()

	err := ExportPDF(path, result, settings)
	if err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
}

func TestExportPDF_ManySprites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "many_sprites.pdf")

	// Generate more sprites than colors to test color cycling
	placements := make([]model.Placement, 20)
	for i := range placements {
		placements[i] = model.Placement{
			Sprite: model.Sprite{
				ID:     fmt.Sprintf("s%d", i),
				Name:   fmt.Sprintf("sprite-%d", i+1),
				Width:  100,
				Height: 80,
			},
			X:       (i % 5) * 110,
			Y:       (i / 5) * 90,
			Rotated: i%3 == 0,
		}
	}

	result := model.PackResult{
		Sheets: []model.AtlasSheet{
			{
				Index:      0,
				Width:      600,
				Height:     400,
				Placements: placements,
			},
		},
	}
	settings := model.DefaultSettings()

	err := ExportPDF(path, result, settings)
	if err != nil {
		t.Fatalf("ExportPDF returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("PDF file was not created: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("PDF file is empty")
	}
}

func TestLabelFontSize(t *testing.T) {
	tests := []struct {
		w, h float64
		want float64
	}{
		{50, 50, 8},
		{30, 25, 7},
		{10, 15, 6},
	}
	for _, tt := range tests {
		got := labelFontSize(tt.w, tt.h)
		if got != tt.want {
			t.Errorf("labelFontSize(%v, %v) = %v, want %v", tt.w, tt.h, got, tt.want)
		}
	}
}
