package atlas

import "image"

// TrimBounds returns the bounding box of all pixels whose alpha exceeds the
// threshold. When the image has no such pixel the zero rectangle is
// returned and the caller should keep the sprite untrimmed.
//
// NRGBA and RGBA images are scanned through their raw pixel buffers, which
// is what decoded PNGs almost always are. Everything else falls back to the
// generic At interface.
func TrimBounds(img image.Image, alphaThreshold uint8) image.Rectangle {
	bounds := img.Bounds()
	if bounds.Empty() {
		return image.Rectangle{}
	}

	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X, bounds.Min.Y
	found := false

	grow := func(x, y int) {
		found = true
		if x < minX {
			minX = x
		}
		if y < minY {
			minY = y
		}
		if x > maxX {
			maxX = x
		}
		if y > maxY {
			maxY = y
		}
	}

	switch src := img.(type) {
	case *image.NRGBA:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			i := src.PixOffset(bounds.Min.X, y)
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if src.Pix[i+3] > alphaThreshold {
					grow(x, y)
				}
				i += 4
			}
		}
	case *image.RGBA:
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			i := src.PixOffset(bounds.Min.X, y)
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if src.Pix[i+3] > alphaThreshold {
					grow(x, y)
				}
				i += 4
			}
		}
	default:
		// 16-bit alpha from RGBA() against an 8-bit threshold.
		threshold := uint32(alphaThreshold) << 8
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				if _, _, _, a := img.At(x, y).RGBA(); a > threshold {
					grow(x, y)
				}
			}
		}
	}

	if !found {
		return image.Rectangle{}
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}
