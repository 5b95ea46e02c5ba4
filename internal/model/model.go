// Package model holds the domain types shared by the atlas pipeline:
// sprites, placements, atlas sheets and pipeline settings.
package model

import (
	"github.com/google/uuid"

	"github.com/packforge/atlaspack/pack"
)

// Sprite represents a single source image to pack into an atlas.
type Sprite struct {
	ID   string `json:"id"`
	Name string `json:"name"` // Display name, usually the file name without extension
	Path string `json:"path"` // Source file path; empty for dry-run sprites

	Width  int `json:"width"`  // Packed width in pixels (after trimming)
	Height int `json:"height"` // Packed height in pixels (after trimming)

	// Source geometry before trimming. For untrimmed sprites SourceX and
	// SourceY are zero and SourceWidth/SourceHeight equal Width/Height.
	SourceX      int  `json:"source_x"`
	SourceY      int  `json:"source_y"`
	SourceWidth  int  `json:"source_width"`
	SourceHeight int  `json:"source_height"`
	Trimmed      bool `json:"trimmed"`
}

func NewSprite(name string, w, h int) Sprite {
	return Sprite{
		ID:           uuid.New().String()[:8],
		Name:         name,
		Width:        w,
		Height:       h,
		SourceWidth:  w,
		SourceHeight: h,
	}
}

// Area returns the sprite's packed pixel area.
func (s Sprite) Area() int {
	return s.Width * s.Height
}

// Placement represents a single sprite placed on an atlas sheet.
type Placement struct {
	Sprite  Sprite `json:"sprite"`
	X       int    `json:"x"`       // Position from the left edge in pixels
	Y       int    `json:"y"`       // Position from the top edge in pixels
	Rotated bool   `json:"rotated"` // Whether the sprite was rotated 90° counter-clockwise
}

// PlacedWidth returns the horizontal extent of the placement, accounting
// for rotation.
func (p Placement) PlacedWidth() int {
	if p.Rotated {
		return p.Sprite.Height
	}
	return p.Sprite.Width
}

// PlacedHeight returns the vertical extent of the placement, accounting
// for rotation.
func (p Placement) PlacedHeight() int {
	if p.Rotated {
		return p.Sprite.Width
	}
	return p.Sprite.Height
}

// AtlasSheet represents one destination image with its placed sprites.
type AtlasSheet struct {
	Index      int         `json:"index"`
	Width      int         `json:"width"`
	Height     int         `json:"height"`
	Placements []Placement `json:"placements"`
}

// UsedArea sums the pixel area of all placed sprites.
func (a AtlasSheet) UsedArea() int {
	total := 0
	for _, p := range a.Placements {
		total += p.Sprite.Area()
	}
	return total
}

// Efficiency returns the sheet's usage percentage.
func (a AtlasSheet) Efficiency() float64 {
	if a.Width == 0 || a.Height == 0 {
		return 0
	}
	return float64(a.UsedArea()) / float64(a.Width*a.Height) * 100.0
}

// PackResult holds the full outcome of a pipeline run.
type PackResult struct {
	Sheets   []AtlasSheet `json:"sheets"`
	Unplaced []Sprite     `json:"unplaced,omitempty"`
}

// TotalEfficiency returns the usage percentage across all sheets.
func (r PackResult) TotalEfficiency() float64 {
	usedArea, totalArea := 0, 0
	for _, s := range r.Sheets {
		usedArea += s.UsedArea()
		totalArea += s.Width * s.Height
	}
	if totalArea == 0 {
		return 0
	}
	return float64(usedArea) / float64(totalArea) * 100.0
}

// SpriteCount returns the number of placed sprites across all sheets.
func (r PackResult) SpriteCount() int {
	count := 0
	for _, s := range r.Sheets {
		count += len(s.Placements)
	}
	return count
}

// Settings holds the pipeline configuration.
type Settings struct {
	// Atlas geometry
	MaxWidth  int `json:"max_width" toml:"max_width"`   // Destination sheet width in pixels
	MaxHeight int `json:"max_height" toml:"max_height"` // Destination sheet height in pixels
	Padding   int `json:"padding" toml:"padding"`       // Gap reserved around each sprite in pixels

	// Packer behavior
	AllowRotation   bool            `json:"allow_rotation" toml:"allow_rotation"`
	SortBy          pack.SortMetric `json:"sort_by" toml:"sort_by"`
	FailPolicy      pack.FailPolicy `json:"fail_policy" toml:"fail_policy"`
	ReduceImageSize bool            `json:"reduce_image_size" toml:"reduce_image_size"`

	// PowerOfTwo rounds every sheet dimension up to the next power of
	// two, which some GPU formats require. Applied after shrinking.
	PowerOfTwo bool `json:"power_of_two" toml:"power_of_two"`

	// Source image handling
	TrimTransparent bool  `json:"trim_transparent" toml:"trim_transparent"`
	AlphaThreshold  uint8 `json:"alpha_threshold" toml:"alpha_threshold"`
}

// DefaultSettings returns the settings used when nothing is configured.
// 4096 is the safe maximum texture size on current GPUs.
func DefaultSettings() Settings {
	return Settings{
		MaxWidth:        4096,
		MaxHeight:       4096,
		Padding:         0,
		AllowRotation:   false,
		SortBy:          pack.SortPerimeter,
		FailPolicy:      pack.NewImage,
		ReduceImageSize: false,
		PowerOfTwo:      false,
		TrimTransparent: true,
		AlphaThreshold:  0,
	}
}
