package export

import (
	"fmt"

	"github.com/yofu/dxf"
	dxfcolor "github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"
	"github.com/yofu/dxf/table"

	"github.com/packforge/atlaspack/internal/model"
)

// sheetGap is the horizontal spacing between sheets in drawing units.
const sheetGap = 64.0

// ExportDXF writes the pack result as a DXF drawing. Each sheet gets its
// own layer holding the sheet frame and one closed polyline per placed
// sprite, with a text label at the sprite origin. Sheets are laid out side
// by side along the X axis.
//
// DXF uses a Y-up coordinate system, so placements are mirrored vertically
// to keep the drawing visually identical to the rendered atlas.
func ExportDXF(path string, result model.PackResult) error {
	if len(result.Sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	d := dxf.NewDrawing()

	offsetX := 0.0
	for _, sheet := range result.Sheets {
		layer := fmt.Sprintf("SHEET_%d", sheet.Index+1)
		if _, err := d.AddLayer(layer, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
			return fmt.Errorf("adding layer %s: %w", layer, err)
		}

		if err := drawRect(d, offsetX, 0, float64(sheet.Width), float64(sheet.Height)); err != nil {
			return err
		}

		for _, placement := range sheet.Placements {
			w := float64(placement.PlacedWidth())
			h := float64(placement.PlacedHeight())
			x := offsetX + float64(placement.X)
			y := float64(sheet.Height) - float64(placement.Y) - h

			if err := drawRect(d, x, y, w, h); err != nil {
				return err
			}
			if _, err := d.Text(placement.Sprite.Name, x+1, y+1, 0, textHeight(h)); err != nil {
				return fmt.Errorf("drawing label for %s: %w", placement.Sprite.Name, err)
			}
		}

		offsetX += float64(sheet.Width) + sheetGap
	}

	// Unplaced sprites are listed on their own layer so the drawing still
	// tells the whole story.
	if len(result.Unplaced) > 0 {
		if _, err := d.AddLayer("UNPLACED", dxfcolor.Red, table.LT_CONTINUOUS, true); err != nil {
			return fmt.Errorf("adding layer UNPLACED: %w", err)
		}
		y := -sheetGap
		for _, sprite := range result.Unplaced {
			label := fmt.Sprintf("unplaced: %s (%dx%d)", sprite.Name, sprite.Width, sprite.Height)
			if _, err := d.Text(label, 0, y, 0, 10); err != nil {
				return fmt.Errorf("drawing unplaced label: %w", err)
			}
			y -= 14
		}
	}

	return d.SaveAs(path)
}

// drawRect adds an axis-aligned rectangle as a closed lightweight polyline.
func drawRect(d *drawing.Drawing, x, y, w, h float64) error {
	_, err := d.LwPolyline(true,
		[]float64{x, y},
		[]float64{x + w, y},
		[]float64{x + w, y + h},
		[]float64{x, y + h},
	)
	if err != nil {
		return fmt.Errorf("drawing rectangle: %w", err)
	}
	return nil
}

// textHeight picks a label height that stays inside the sprite rectangle.
func textHeight(h float64) float64 {
	height := h / 4
	if height > 12 {
		height = 12
	}
	if height < 2 {
		height = 2
	}
	return height
}
