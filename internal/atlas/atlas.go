// Package atlas loads sprite images from disk, packs them onto texture
// sheets and renders the resulting atlas images plus their metadata.
package atlas

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/maruel/natural"

	"github.com/packforge/atlaspack/internal/model"
	"github.com/packforge/atlaspack/pack"
)

// Source pairs a sprite description with its decoded image. Image is nil
// for sprites that were imported from a list instead of loaded from disk;
// those can be packed but not rendered.
type Source struct {
	Sprite model.Sprite
	Image  image.Image
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
}

// LoadDir reads every supported image in dir (non-recursive) and returns
// one Source per file, ordered by natural filename sort so that
// "frame2.png" comes before "frame10.png". Transparent borders are trimmed
// when the settings ask for it.
func LoadDir(dir string, settings model.Settings) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading sprite directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if imageExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no sprite images found in %s", dir)
	}
	sort.Sort(natural.StringSlice(names))

	sources := make([]Source, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		img, err := imaging.Open(path)
		if err != nil {
			return nil, fmt.Errorf("loading sprite %s: %w", name, err)
		}
		sources = append(sources, NewSource(name, path, img, settings))
	}
	return sources, nil
}

// NewSource builds a Source from a decoded image, applying transparent
// border trimming according to the settings. The sprite name is the file
// name without its extension.
func NewSource(fileName, path string, img image.Image, settings model.Settings) Source {
	name := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	bounds := img.Bounds()

	sprite := model.NewSprite(name, bounds.Dx(), bounds.Dy())
	sprite.Path = path
	sprite.SourceWidth = bounds.Dx()
	sprite.SourceHeight = bounds.Dy()

	if settings.TrimTransparent {
		if trimmed := TrimBounds(img, settings.AlphaThreshold); !trimmed.Empty() && trimmed != bounds {
			sprite.Trimmed = true
			sprite.SourceX = trimmed.Min.X - bounds.Min.X
			sprite.SourceY = trimmed.Min.Y - bounds.Min.Y
			sprite.Width = trimmed.Dx()
			sprite.Height = trimmed.Dy()
		}
	}

	return Source{Sprite: sprite, Image: img}
}

// Pack arranges the sources onto as few sheets as the fail policy allows.
// Sprite dimensions are padded on the right and bottom so that neighbouring
// sprites stay settings.Padding pixels apart; the padding never bleeds into
// the reported placements.
func Pack(sources []Source, settings model.Settings) (model.PackResult, error) {
	if len(sources) == 0 {
		return model.PackResult{}, fmt.Errorf("nothing to pack")
	}
	for _, src := range sources {
		w := src.Sprite.Width + settings.Padding
		h := src.Sprite.Height + settings.Padding
		if w > settings.MaxWidth || h > settings.MaxHeight {
			if !settings.AllowRotation || (h > settings.MaxWidth || w > settings.MaxHeight) {
				return model.PackResult{}, fmt.Errorf("sprite %q (%dx%d) exceeds the %dx%d sheet size",
					src.Sprite.Name, src.Sprite.Width, src.Sprite.Height, settings.MaxWidth, settings.MaxHeight)
			}
		}
	}

	packer, err := pack.NewPacker(len(sources), settings.MaxWidth, settings.MaxHeight)
	if err != nil {
		return model.PackResult{}, err
	}
	packer.Options.AllowRotation = settings.AllowRotation
	packer.Options.SortBy = settings.SortBy
	packer.Options.FailPolicy = settings.FailPolicy
	packer.Options.ReduceImageSize = settings.ReduceImageSize

	rects := packer.Rects()
	for i, src := range sources {
		rects[i].Width = src.Sprite.Width + settings.Padding
		rects[i].Height = src.Sprite.Height + settings.Padding
	}

	if _, err := packer.Pack(); err != nil {
		return model.PackResult{}, err
	}

	// A Stop abort returns before the image counter is advanced, so the
	// sheet count also has to cover the highest image index actually used.
	sheetCount := packer.Result.ImagesNeeded
	for i := range rects {
		if rects[i].Packed && rects[i].ImageIndex+1 > sheetCount {
			sheetCount = rects[i].ImageIndex + 1
		}
	}

	result := model.PackResult{}
	sheets := make([]*model.AtlasSheet, sheetCount)
	for i := range sheets {
		width, height := settings.MaxWidth, settings.MaxHeight
		// An aborted pack never fills in the last-image size, so fall
		// back to the nominal dimensions when it is still zero.
		if settings.ReduceImageSize && i == packer.Result.ImagesNeeded-1 && packer.Result.LastImageWidth > 0 {
			width, height = packer.Result.LastImageWidth, packer.Result.LastImageHeight
		}
		if settings.PowerOfTwo {
			width = nextPowerOfTwo(width)
			height = nextPowerOfTwo(height)
		}
		sheets[i] = &model.AtlasSheet{Index: i, Width: width, Height: height}
	}

	for i := range rects {
		rect := &rects[i]
		if !rect.Packed || rect.ImageIndex >= sheetCount {
			result.Unplaced = append(result.Unplaced, sources[i].Sprite)
			continue
		}
		sheets[rect.ImageIndex].Placements = append(sheets[rect.ImageIndex].Placements, model.Placement{
			Sprite:  sources[i].Sprite,
			X:       rect.X,
			Y:       rect.Y,
			Rotated: rect.Rotated,
		})
	}

	for _, sheet := range sheets {
		result.Sheets = append(result.Sheets, *sheet)
	}
	return result, nil
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
