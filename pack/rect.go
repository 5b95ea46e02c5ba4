package pack

import "errors"

// ErrInvalidConfig is returned by Pack when the packer was not constructed
// through NewPacker or has been left with zero rectangles or a zero-sized
// destination image.
var ErrInvalidConfig = errors.New("pack: packer is not properly configured")

// SortMetric selects the scalar used to order rectangles and empty areas.
//
// Rectangles are always sorted in descending order (largest first) while
// empty areas are kept in ascending order, so the largest rectangles probe
// the smallest empty areas first and stop at the tightest fit.
//
// Packing efficiency varies with the metric. As a rule of thumb, perimeter
// and area sorting beat width or height sorting.
type SortMetric int

const (
	SortPerimeter SortMetric = iota // width + height, the default
	SortArea                        // width * height
	SortHeight
	SortWidth
)

func (m SortMetric) String() string {
	switch m {
	case SortArea:
		return "area"
	case SortHeight:
		return "height"
	case SortWidth:
		return "width"
	default:
		return "perimeter"
	}
}

// FailPolicy controls what happens when a rectangle does not fit the
// current destination image.
type FailPolicy int

const (
	// Stop aborts packing immediately. This is the default.
	Stop FailPolicy = iota
	// Continue skips the rectangle and keeps packing the remaining ones
	// that fit on the current image.
	Continue
	// NewImage spills rectangles that do not fit onto additional images.
	// New images are used until every rectangle is placed, unless a
	// rectangle is too large to fit even an empty image.
	NewImage
)

func (p FailPolicy) String() string {
	switch p {
	case Continue:
		return "continue"
	case NewImage:
		return "new-image"
	default:
		return "stop"
	}
}

// Rect represents one image to place in the destination atlas.
//
// The caller provides Width and Height before packing. The algorithm never
// mutates them, even when the rectangle is rotated. The remaining fields
// are outputs and should be treated as read-only.
type Rect struct {
	// Width and Height are input dimensions, set by the caller.
	Width  int
	Height int

	// X and Y are the position of the packed rectangle in the
	// destination image.
	X int
	Y int

	// Packed reports whether the rectangle was placed.
	Packed bool

	// Rotated reports whether the rectangle had to be rotated 90 degrees
	// to fit. It is only ever set when Options.AllowRotation is enabled.
	// Width and Height keep their original values; when drawing, the
	// width is used as the height and vice versa.
	Rotated bool

	// ImageIndex is the index of the destination image the rectangle was
	// packed to. Only meaningful with the NewImage fail policy, otherwise
	// it is always zero.
	ImageIndex int
}
