package pack

import "fmt"

// Options configure a packing run. They may be changed between calls to
// Pack. The zero value holds every default.
type Options struct {
	// AllowRotation permits rotating a rectangle 90 degrees when it does
	// not fit in its original orientation. Defaults to false.
	AllowRotation bool

	// RectsAreSorted tells the packer the caller already ordered the
	// rectangles descending by the chosen metric, skipping the internal
	// sort. Defaults to false.
	RectsAreSorted bool

	// AlwaysRepack forces every rectangle to be packed again on repeated
	// Pack calls, instead of only the ones that are still unpacked.
	// Defaults to false.
	AlwaysRepack bool

	// ReduceImageSize shrinks the last destination image to the smallest
	// size that still fits its rectangles after a successful pack. This
	// repacks the rectangles several times, so only enable it when
	// packing efficiency matters more than speed. Defaults to false.
	ReduceImageSize bool

	// SortBy selects the ordering metric for rectangles and empty areas.
	// Defaults to SortPerimeter.
	SortBy SortMetric

	// FailPolicy selects what happens when a rectangle does not fit.
	// Defaults to Stop.
	FailPolicy FailPolicy
}

// Result carries the outcome of the latest Pack call.
type Result struct {
	// ImagesNeeded is the number of destination images used. It only
	// exceeds one with the NewImage fail policy.
	ImagesNeeded int

	// LastImageWidth and LastImageHeight are the effective dimensions of
	// the last destination image. They differ from the configured size
	// only when Options.ReduceImageSize shrank it.
	LastImageWidth  int
	LastImageHeight int
}

// Packer places a fixed set of rectangles into one or more destination
// images. All storage is allocated by NewPacker and reused across Pack
// calls; steady-state packing performs no further allocation.
//
// A Packer must not be used from multiple goroutines at once. Independent
// Packer instances share no state and may run concurrently.
type Packer struct {
	rects  []Rect
	sorted []*Rect

	imageWidth  int
	imageHeight int

	areas *emptyAreaStore

	// Options can be adjusted between Pack calls.
	Options Options

	// Result is filled in by Pack.
	Result Result
}

// NewPacker allocates a packer for numRects rectangles and a destination
// image of the given size. Fill in the Width and Height of each element of
// Rects before calling Pack.
func NewPacker(numRects, width, height int) (*Packer, error) {
	if numRects <= 0 || width <= 0 || height <= 0 {
		return nil, fmt.Errorf("pack: rectangle count and image dimensions must be greater than 0 (given %d rects, %dx%d)",
			numRects, width, height)
	}
	return &Packer{
		rects:       make([]Rect, numRects),
		imageWidth:  width,
		imageHeight: height,
		// A placement consumes one empty area and creates at most one
		// new one, so numRects+1 slots always suffice.
		areas: newEmptyAreaStore(numRects + 1),
	}, nil
}

// Rects exposes the rectangle slice. The caller writes Width and Height
// before packing and reads the output fields afterward. The slice keeps the
// order the caller filled it in; packing never reorders it.
func (p *Packer) Rects() []Rect {
	return p.rects
}

// ResizeImage changes the destination image size for future Pack calls.
// Rectangles that are already packed are not moved. To repack them at the
// new size, set Options.AlwaysRepack and call Pack again.
func (p *Packer) ResizeImage(width, height int) {
	p.imageWidth = width
	p.imageHeight = height
}

// Pack places the rectangles into the destination image according to the
// configured options. It can be called repeatedly. With AlwaysRepack unset,
// only rectangles that are still unpacked are placed, which allows packing
// manually across several destination images.
//
// It returns the total number of rectangles successfully packed by this
// call, or ErrInvalidConfig when the packer is not properly set up.
func (p *Packer) Pack() (int, error) {
	if len(p.rects) == 0 || p.imageWidth <= 0 || p.imageHeight <= 0 ||
		p.areas == nil || len(p.areas.list) != len(p.rects)+1 {
		return 0, ErrInvalidConfig
	}

	// With everything already packed and no forced repack there is
	// nothing to do. Bail out before touching any state so repeated
	// calls are true no-ops.
	if !p.Options.AlwaysRepack {
		alreadyPacked := 0
		for i := range p.rects {
			if p.rects[i].Packed {
				alreadyPacked++
			}
		}
		if alreadyPacked == len(p.rects) {
			return alreadyPacked, nil
		}
	}

	if !p.Options.RectsAreSorted || p.sorted == nil {
		p.sortRects()
	}

	// A forced full repack starts over, so no image holds rectangles yet.
	if p.Options.AlwaysRepack {
		p.Result.ImagesNeeded = 0
	}

	packedRects := 0
	areaUsedInLastImage := 0

	for {
		// A fresh destination image is one single empty area.
		p.areas.reset(p.imageWidth, p.imageHeight)

		requestNewImage := false
		areaUsedInLastImage = 0

		for i, rect := range p.sorted {
			// Rectangles placed by earlier images or earlier calls
			// are skipped, unless this pass is the start of a
			// forced repack.
			if rect.Packed && (!p.Options.AlwaysRepack || p.Result.ImagesNeeded != 0) {
				continue
			}
			rect.Packed = false

			if !p.packRect(rect, p.Options.AllowRotation) {
				switch p.Options.FailPolicy {
				case Continue:
					// Smaller rectangles may still fit here.
					continue
				case NewImage:
					requestNewImage = true
				default:
					// Stop: everything before this rectangle
					// stayed packed, the current image is not
					// counted as used.
					return i, nil
				}

				// A rectangle that cannot fit a pristine image
				// will never fit anywhere, so give up. The
				// image counter is corrected because no new
				// image was actually needed. An empty area list
				// means the image was filled exactly, which is
				// anything but pristine.
				if p.areas.first != nil &&
					p.areas.first.width == p.imageWidth &&
					p.areas.first.height == p.imageHeight {
					p.Result.ImagesNeeded--
					return packedRects, nil
				}
				continue
			}

			rect.ImageIndex = p.Result.ImagesNeeded
			rect.Packed = true
			areaUsedInLastImage += rect.Width * rect.Height
			packedRects++
		}

		p.Result.ImagesNeeded++

		if !requestNewImage {
			break
		}
	}

	// The last image starts out at the nominal destination size. Shrink
	// to fit may reduce it below that.
	p.Result.LastImageWidth = p.imageWidth
	p.Result.LastImageHeight = p.imageHeight

	if p.Options.ReduceImageSize {
		p.reduceLastImageSize(areaUsedInLastImage)
	}

	return packedRects, nil
}

// packRect places a single rectangle into the smallest empty area it fits.
//
// The empty-area list is walked from smallest to largest, so the first fit
// is also the best fit by the configured metric. Depending on how the
// rectangle relates to the chosen area it is consumed exactly, shrunk along
// one axis, or split in two. When nothing fits and rotation is allowed, the
// rectangle is retried once with its dimensions swapped.
func (p *Packer) packRect(rect *Rect, allowRotation bool) bool {
	var width, height int
	if !rect.Rotated {
		width = rect.Width
		height = rect.Height
	} else {
		width = rect.Height
		height = rect.Width
	}

	for area := p.areas.first; area != nil; area = area.next {
		if height > area.height || width > area.width {
			continue
		}

		rect.X = area.x
		rect.Y = area.y
		rect.Packed = true

		// An exact fit consumes the whole area.
		if height == area.height && width == area.width {
			p.areas.unlink(area)
			return true
		}

		// Same height: the area shrinks in width and shifts past the
		// rectangle. It may now merge with a neighbor, in which case
		// the reinsertion search must start at the list tail because
		// merging can only have grown the comparator.
		if height == area.height {
			area.x += width
			area.width -= width
			prev := area.prev
			p.areas.unlink(area)
			if p.areas.mergeAdjacent(area) {
				prev = p.areas.last
			}
			p.areas.setComparator(area)
			p.areas.insertSorted(area, prev)
			return true
		}

		// Same width: symmetric shrink along the vertical axis.
		if width == area.width {
			area.y += height
			area.height -= height
			prev := area.prev
			p.areas.unlink(area)
			if p.areas.mergeAdjacent(area) {
				prev = p.areas.last
			}
			p.areas.setComparator(area)
			p.areas.insertSorted(area, prev)
			return true
		}

		// Strictly smaller in both dimensions: split the area in two.
		p.areas.split(area, width, height)
		return true
	}

	if allowRotation {
		rect.Rotated = true
		return p.packRect(rect, false)
	}

	// The rotation attempt may have failed as well. Reset the flag so a
	// retry against a fresh image starts unrotated.
	rect.Rotated = false
	return false
}

// DstOffset translates a pixel coordinate local to a packed rectangle into
// the linear offset of that pixel in a row-major destination buffer.
//
// Rotation follows a counter-clockwise convention: the local coordinate
// frame is rotated so that the local x axis runs up the destination image,
// which places local (0,0) at the bottom-left corner of the rectangle's
// footprint. When several images were produced, the offset is computed for
// the image the rectangle landed on, using the shrunk size only for the
// last image when ReduceImageSize is enabled.
//
// This helper is convenient but slower than direct pixel arithmetic, so
// avoid it in hot loops.
func (p *Packer) DstOffset(rect *Rect, x, y int) int {
	var dstWidth int
	if p.Options.ReduceImageSize && rect.ImageIndex == p.Result.ImagesNeeded-1 {
		dstWidth = p.Result.LastImageWidth
	} else {
		dstWidth = p.imageWidth
	}
	if !rect.Rotated {
		return (y+rect.Y)*dstWidth + rect.X + x
	}
	// Counter-clockwise: local (x, y) lands on destination row
	// rect.Y + (width-1) - x, column rect.X + y.
	return (rect.Y+rect.Width-1)*dstWidth + y + rect.X - x*dstWidth
}
