package atlas

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"

	"github.com/packforge/atlaspack/internal/model"
)

// Render draws every sheet of the result into an NRGBA image. Sources must
// be the same slice that produced the result; sprites are matched by ID.
func Render(result model.PackResult, sources []Source) ([]*image.NRGBA, error) {
	byID := make(map[string]image.Image, len(sources))
	for _, src := range sources {
		byID[src.Sprite.ID] = src.Image
	}

	sheets := make([]*image.NRGBA, len(result.Sheets))
	for i, sheet := range result.Sheets {
		canvas := image.NewNRGBA(image.Rect(0, 0, sheet.Width, sheet.Height))
		for _, placement := range sheet.Placements {
			src := byID[placement.Sprite.ID]
			if src == nil {
				return nil, fmt.Errorf("sprite %q has no image to render", placement.Sprite.Name)
			}
			if placement.Sprite.Trimmed {
				src = imaging.Crop(src, image.Rect(
					placement.Sprite.SourceX,
					placement.Sprite.SourceY,
					placement.Sprite.SourceX+placement.Sprite.Width,
					placement.Sprite.SourceY+placement.Sprite.Height,
				))
			}
			if placement.Rotated {
				src = imaging.Rotate90(src)
			}
			target := image.Rect(
				placement.X,
				placement.Y,
				placement.X+placement.PlacedWidth(),
				placement.Y+placement.PlacedHeight(),
			)
			draw.Draw(canvas, target, src, src.Bounds().Min, draw.Src)
		}
		sheets[i] = canvas
	}
	return sheets, nil
}

// SaveSheets writes each sheet as <baseName>-<index>.png into outDir and
// returns the file names in sheet order. A single sheet is written without
// the index suffix.
func SaveSheets(sheets []*image.NRGBA, outDir, baseName string) ([]string, error) {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	names := make([]string, len(sheets))
	for i, sheet := range sheets {
		name := baseName + ".png"
		if len(sheets) > 1 {
			name = fmt.Sprintf("%s-%d.png", baseName, i)
		}
		if err := imaging.Save(sheet, filepath.Join(outDir, name)); err != nil {
			return nil, fmt.Errorf("saving sheet %s: %w", name, err)
		}
		names[i] = name
	}
	return names, nil
}
