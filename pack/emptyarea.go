package pack

// emptyArea describes one rectangular free region of the destination image.
//
// Areas live in a preallocated arena (emptyAreaStore.list) and are threaded
// into a doubly linked list kept sorted by comparator, ascending. The
// comparator is precomputed from the configured sort metric whenever the
// area's dimensions settle, so list walks never recompute it.
type emptyArea struct {
	x, y          int
	width, height int

	// comparator is the scalar the sorted list is ordered by. It is only
	// valid after the store's setComparator ran on the area's final
	// dimensions, which is why merging always happens first.
	comparator int

	prev, next *emptyArea
}

// emptyAreaStore owns the arena of empty areas for one packer.
//
// The arena has a fixed capacity of numRects+1: each placement consumes one
// area and creates at most one new one, because the second half of a split
// reshapes the consumed area in place. Slots are never freed individually;
// reset reclaims the whole arena at once.
type emptyAreaStore struct {
	// list is the backing arena. It is allocated once and never grows,
	// so pointers into it stay valid for the packer's lifetime.
	list []emptyArea

	// first and last are the smallest and largest areas in the sorted list.
	first *emptyArea
	last  *emptyArea

	// index is the high-water mark of arena slots in use.
	index int

	// setComparator computes the sort scalar for an area from the
	// configured metric. It must only run after any merging is done,
	// since merges can enlarge an area.
	setComparator func(*emptyArea)
}

func newEmptyAreaStore(capacity int) *emptyAreaStore {
	return &emptyAreaStore{list: make([]emptyArea, capacity)}
}

// reset reclaims the whole arena and starts over with a single empty area
// spanning the full destination image.
func (s *emptyAreaStore) reset(width, height int) {
	clear(s.list)
	s.index = 0

	s.first = &s.list[0]
	s.last = &s.list[0]
	s.first.width = width
	s.first.height = height
	if s.setComparator != nil {
		s.setComparator(s.first)
	}
}

// unlink removes an area from the sorted list, fixing up the first and last
// heads and the neighbor links. The area's arena slot stays allocated so it
// can be reshaped and reinserted.
func (s *emptyAreaStore) unlink(area *emptyArea) {
	if area == s.first {
		s.first = area.next
	}
	if area == s.last {
		s.last = area.prev
	}
	if area.prev != nil {
		area.prev.next = area.next
	}
	if area.next != nil {
		area.next.prev = area.prev
	}
	area.prev = nil
	area.next = nil
}

// insertSorted places area into the sorted list, walking backward from the
// given start node until it finds the first area with a smaller comparator,
// and inserting right after it.
//
// The backward walk is the reason the list stays cheap to maintain: a new
// empty area is carved out of a larger one, so it can never sort higher than
// its parent did. Callers pass the parent's old predecessor as the start, or
// the current list tail when a merge may have grown the area beyond it.
func (s *emptyAreaStore) insertSorted(area, start *emptyArea) {
	// An empty list means this area becomes the only one.
	if s.first == nil {
		s.first = area
		s.last = area
		return
	}

	for current := start; current != nil; current = current.prev {
		if current.comparator < area.comparator {
			if current == s.last {
				s.last = area
			} else {
				area.next = current.next
				area.next.prev = area
			}
			area.prev = current
			current.next = area
			return
		}
	}

	// No smaller area exists, so this becomes the new smallest.
	s.first.prev = area
	area.next = s.first
	s.first = area
}

// mergeAdjacent coalesces area with any list member that shares a full edge
// with it, in any of the four directions. Every successful merge unlinks the
// absorbed neighbor and restarts the scan, since the grown area may now touch
// further neighbors. Reports whether at least one merge happened.
//
// Merging keeps free-space fragmentation low and shortens the list that
// placement searches have to walk.
func (s *emptyAreaStore) mergeAdjacent(area *emptyArea) bool {
	merged := false
restart:
	for current := s.first; current != nil; current = current.next {
		sameHeight := current.y == area.y && current.height == area.height
		if sameHeight && current.x+current.width == area.x {
			// Neighbor directly to the left.
			area.x = current.x
			area.width += current.width
			s.unlink(current)
			merged = true
			goto restart
		}
		if sameHeight && area.x+area.width == current.x {
			// Neighbor directly to the right.
			area.width += current.width
			s.unlink(current)
			merged = true
			goto restart
		}
		sameWidth := current.x == area.x && current.width == area.width
		if sameWidth && current.y+current.height == area.y {
			// Neighbor directly above.
			area.y = current.y
			area.height += current.height
			s.unlink(current)
			merged = true
			goto restart
		}
		if sameWidth && area.y+area.height == current.y {
			// Neighbor directly below.
			area.height += current.height
			s.unlink(current)
			merged = true
			goto restart
		}
	}
	return merged
}

// split divides area in two after a rectangle of the given size was placed
// flush at its origin, strictly smaller than the area in both dimensions.
//
// One new area is taken from the arena and the existing area is reshaped in
// place to become the other half, which is what keeps the numRects+1
// capacity bound exact. The larger leftover dimension decides the shape: the
// bigger side gets the full-length strip, the smaller one the remainder
// under or next to the rectangle.
func (s *emptyAreaStore) split(area *emptyArea, width, height int) {
	s.index++
	newArea := &s.list[s.index]

	remainingWidth := area.width - width
	remainingHeight := area.height - height

	if remainingWidth > remainingHeight {
		// The strip to the right is larger, so the reshaped area takes
		// all of it and the new area gets the space directly below the
		// rectangle.
		newArea.x = area.x
		newArea.y = area.y + height
		newArea.width = width
		newArea.height = area.height - height
		area.x += width
		area.width -= width
	} else {
		// The strip below is larger, so the reshaped area takes all of
		// it and the new area gets the space directly to the right of
		// the rectangle.
		newArea.x = area.x + width
		newArea.y = area.y
		newArea.width = area.width - width
		newArea.height = height
		area.y += height
		area.height -= height
	}

	originalPrev := area.prev
	s.unlink(area)

	// Merge both halves with whatever neighbors they now touch. The
	// comparators can only be set afterward because merging may enlarge
	// either area.
	mergedReshaped := s.mergeAdjacent(area)
	mergedNew := s.mergeAdjacent(newArea)
	s.setComparator(area)
	s.setComparator(newArea)

	if !mergedReshaped && !mergedNew {
		// Without merges neither half can sort higher than the original
		// area did, so the larger half may start its backward walk at
		// the original predecessor. Which half is larger depends on the
		// metric, so compare first; the smaller half then starts right
		// before where the larger one landed.
		if newArea.comparator < area.comparator {
			s.insertSorted(area, originalPrev)
			s.insertSorted(newArea, area.prev)
		} else {
			s.insertSorted(newArea, originalPrev)
			s.insertSorted(area, newArea.prev)
		}
		return
	}

	// After a merge either half may have outgrown everything walked from
	// the old position, so the larger one has to start at the list tail.
	// The smaller one can still start just before the larger one.
	if newArea.comparator < area.comparator {
		s.insertSorted(area, s.last)
		s.insertSorted(newArea, area.prev)
	} else {
		s.insertSorted(newArea, s.last)
		s.insertSorted(area, newArea.prev)
	}
}
