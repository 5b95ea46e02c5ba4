package atlas

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/packforge/atlaspack/internal/model"
)

// Metadata describes a packed atlas in a JSON shape that sprite runtimes
// commonly consume: one entry per sheet, each mapping sprite names to
// their frame on the sheet plus the untrimmed source geometry.
type Metadata struct {
	Meta   MetaInfo    `json:"meta"`
	Sheets []SheetMeta `json:"sheets"`
}

type MetaInfo struct {
	App       string `json:"app"`
	Version   string `json:"version"`
	Generated string `json:"generated"`
}

type SheetMeta struct {
	Image   string                `json:"image"`
	Width   int                   `json:"width"`
	Height  int                   `json:"height"`
	Sprites map[string]SpriteMeta `json:"sprites"`
}

type SpriteMeta struct {
	Frame            FrameMeta `json:"frame"`
	Rotated          bool      `json:"rotated"`
	Trimmed          bool      `json:"trimmed"`
	SpriteSourceSize FrameMeta `json:"spriteSourceSize"`
	SourceSize       SizeMeta  `json:"sourceSize"`
}

type FrameMeta struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

type SizeMeta struct {
	W int `json:"w"`
	H int `json:"h"`
}

// BuildMetadata assembles the metadata document for a pack result.
// imageNames must have one entry per sheet, in sheet order.
func BuildMetadata(result model.PackResult, imageNames []string, appVersion string) (Metadata, error) {
	if len(imageNames) != len(result.Sheets) {
		return Metadata{}, fmt.Errorf("have %d sheet names for %d sheets", len(imageNames), len(result.Sheets))
	}

	meta := Metadata{
		Meta: MetaInfo{
			App:       "atlaspack",
			Version:   appVersion,
			Generated: time.Now().Format(time.RFC3339),
		},
	}
	for i, sheet := range result.Sheets {
		sheetMeta := SheetMeta{
			Image:   imageNames[i],
			Width:   sheet.Width,
			Height:  sheet.Height,
			Sprites: make(map[string]SpriteMeta, len(sheet.Placements)),
		}
		for _, placement := range sheet.Placements {
			sprite := placement.Sprite
			sheetMeta.Sprites[sprite.Name] = SpriteMeta{
				Frame: FrameMeta{
					X: placement.X,
					Y: placement.Y,
					W: placement.PlacedWidth(),
					H: placement.PlacedHeight(),
				},
				Rotated: placement.Rotated,
				Trimmed: sprite.Trimmed,
				SpriteSourceSize: FrameMeta{
					X: sprite.SourceX,
					Y: sprite.SourceY,
					W: sprite.Width,
					H: sprite.Height,
				},
				SourceSize: SizeMeta{
					W: sprite.SourceWidth,
					H: sprite.SourceHeight,
				},
			}
		}
		meta.Sheets = append(meta.Sheets, sheetMeta)
	}
	return meta, nil
}

// WriteMetadata marshals the metadata with indentation and writes it to path.
func WriteMetadata(path string, meta Metadata) error {
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding atlas metadata: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing atlas metadata: %w", err)
	}
	return nil
}
