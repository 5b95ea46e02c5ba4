package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSprite(t *testing.T) {
	s := NewSprite("hero_idle", 64, 48)
	assert.Len(t, s.ID, 8)
	assert.Equal(t, "hero_idle", s.Name)
	assert.Equal(t, 64, s.Width)
	assert.Equal(t, 48, s.Height)
	assert.Equal(t, 64, s.SourceWidth)
	assert.Equal(t, 48, s.SourceHeight)
	assert.False(t, s.Trimmed)
	assert.Equal(t, 64*48, s.Area())
}

func TestPlacement_PlacedDimensionsRespectRotation(t *testing.T) {
	p := Placement{Sprite: NewSprite("a", 30, 10)}
	assert.Equal(t, 30, p.PlacedWidth())
	assert.Equal(t, 10, p.PlacedHeight())

	p.Rotated = true
	assert.Equal(t, 10, p.PlacedWidth())
	assert.Equal(t, 30, p.PlacedHeight())
}

func TestAtlasSheet_Efficiency(t *testing.T) {
	sheet := AtlasSheet{
		Width:  100,
		Height: 100,
		Placements: []Placement{
			{Sprite: NewSprite("a", 50, 50)},
			{Sprite: NewSprite("b", 50, 50)},
		},
	}
	assert.Equal(t, 5000, sheet.UsedArea())
	assert.InDelta(t, 50.0, sheet.Efficiency(), 0.001)

	empty := AtlasSheet{}
	assert.Zero(t, empty.Efficiency())
}

func TestPackResult_TotalEfficiencyAndCount(t *testing.T) {
	result := PackResult{
		Sheets: []AtlasSheet{
			{Width: 100, Height: 100, Placements: []Placement{{Sprite: NewSprite("a", 100, 100)}}},
			{Width: 100, Height: 100, Placements: []Placement{{Sprite: NewSprite("b", 50, 100)}}},
		},
	}
	assert.Equal(t, 2, result.SpriteCount())
	assert.InDelta(t, 75.0, result.TotalEfficiency(), 0.001)

	assert.Zero(t, PackResult{}.TotalEfficiency())
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	assert.Equal(t, 4096, s.MaxWidth)
	assert.Equal(t, 4096, s.MaxHeight)
	assert.True(t, s.TrimTransparent)
	assert.False(t, s.AllowRotation)
}
