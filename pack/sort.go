package pack

import "sort"

// rectMetric returns the descending-sort key of a rectangle for the given
// metric.
func rectMetric(r *Rect, metric SortMetric) int {
	switch metric {
	case SortArea:
		return r.Width * r.Height
	case SortHeight:
		return r.Height
	case SortWidth:
		return r.Width
	default:
		return r.Width + r.Height
	}
}

// areaComparator functions precompute the sort scalar of an empty area so
// that list maintenance never recalculates it. One of these is installed on
// the store according to Options.SortBy.

func setPerimeterComparator(a *emptyArea) { a.comparator = a.width + a.height }

func setAreaComparator(a *emptyArea) { a.comparator = a.width * a.height }

func setWidthComparator(a *emptyArea) { a.comparator = a.width }

func setHeightComparator(a *emptyArea) { a.comparator = a.height }

// sortRects builds the sorted view over the caller's rectangles and installs
// the matching empty-area comparator on the store.
//
// The view is an array of pointers into the caller-visible rectangle slice,
// so sorting it never disturbs the order the caller indexes by. When the
// caller asserts the rectangles are already sorted, the actual sort is
// skipped but the view is still built, since packing always iterates it.
func (p *Packer) sortRects() {
	p.sorted = make([]*Rect, len(p.rects))
	for i := range p.rects {
		p.sorted[i] = &p.rects[i]
	}

	switch p.Options.SortBy {
	case SortArea:
		p.areas.setComparator = setAreaComparator
	case SortHeight:
		p.areas.setComparator = setHeightComparator
	case SortWidth:
		p.areas.setComparator = setWidthComparator
	default:
		p.areas.setComparator = setPerimeterComparator
	}

	if !p.Options.RectsAreSorted {
		metric := p.Options.SortBy
		sort.Slice(p.sorted, func(i, j int) bool {
			return rectMetric(p.sorted[i], metric) > rectMetric(p.sorted[j], metric)
		})
		p.Options.RectsAreSorted = true
	}
}
