package pack

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// listAreas walks the sorted list front to back.
func listAreas(s *emptyAreaStore) []*emptyArea {
	var out []*emptyArea
	for a := s.first; a != nil; a = a.next {
		out = append(out, a)
	}
	return out
}

// assertListConsistent checks the doubly linked list invariants: ascending
// comparators, symmetric prev/next links, and correct first/last heads.
func assertListConsistent(t *testing.T, s *emptyAreaStore) {
	t.Helper()
	areas := listAreas(s)
	if len(areas) == 0 {
		assert.Nil(t, s.first)
		assert.Nil(t, s.last)
		return
	}
	assert.Nil(t, s.first.prev)
	assert.Nil(t, s.last.next)
	assert.Same(t, areas[len(areas)-1], s.last)
	for i := 1; i < len(areas); i++ {
		assert.Same(t, areas[i-1], areas[i].prev, "prev link of element %d", i)
		assert.GreaterOrEqual(t, areas[i].comparator, areas[i-1].comparator,
			"list must be comparator-ascending at element %d", i)
	}
}

type region struct{ x, y, w, h int }

func regionsOverlap(a, b region) bool {
	return a.x < b.x+b.w && b.x < a.x+a.w && a.y < b.y+b.h && b.y < a.y+a.h
}

// assertTiling checks that the empty areas plus the placed rectangles
// exactly tile the destination image: total area matches and no two regions
// overlap.
func assertTiling(t *testing.T, p *Packer, imageWidth, imageHeight int) {
	t.Helper()
	var regions []region
	for _, a := range listAreas(p.areas) {
		regions = append(regions, region{a.x, a.y, a.width, a.height})
	}
	for i := range p.rects {
		if !p.rects[i].Packed {
			continue
		}
		x, y, w, h := footprint(&p.rects[i])
		regions = append(regions, region{x, y, w, h})
	}

	total := 0
	for i, r := range regions {
		require.GreaterOrEqual(t, r.x, 0)
		require.GreaterOrEqual(t, r.y, 0)
		require.LessOrEqual(t, r.x+r.w, imageWidth)
		require.LessOrEqual(t, r.y+r.h, imageHeight)
		total += r.w * r.h
		for j := i + 1; j < len(regions); j++ {
			require.False(t, regionsOverlap(r, regions[j]),
				"regions %v and %v overlap", r, regions[j])
		}
	}
	require.Equal(t, imageWidth*imageHeight, total,
		"empty areas and placed rects must cover the image exactly")
}

func TestEmptyAreaStore_ResetYieldsSingleFullArea(t *testing.T) {
	s := newEmptyAreaStore(5)
	s.setComparator = setPerimeterComparator
	s.reset(640, 480)

	areas := listAreas(s)
	require.Len(t, areas, 1)
	assert.Equal(t, region{0, 0, 640, 480}, region{areas[0].x, areas[0].y, areas[0].width, areas[0].height})
	assert.Same(t, s.first, s.last)
	assert.Equal(t, 0, s.index)
}

func TestEmptyAreaStore_UnlinkMiddleAndEnds(t *testing.T) {
	s := newEmptyAreaStore(3)
	s.setComparator = setAreaComparator

	// Hand-build three areas with distinct comparators.
	dims := []region{{0, 0, 10, 10}, {0, 20, 20, 20}, {0, 50, 30, 30}}
	for i, d := range dims {
		a := &s.list[i]
		a.x, a.y, a.width, a.height = d.x, d.y, d.w, d.h
		s.setComparator(a)
		s.insertSorted(a, s.last)
	}
	assertListConsistent(t, s)
	require.Len(t, listAreas(s), 3)

	s.unlink(&s.list[1])
	assertListConsistent(t, s)
	assert.Len(t, listAreas(s), 2)
	assert.Nil(t, s.list[1].prev)
	assert.Nil(t, s.list[1].next)

	s.unlink(&s.list[0])
	assertListConsistent(t, s)
	assert.Same(t, &s.list[2], s.first)

	s.unlink(&s.list[2])
	assert.Nil(t, s.first)
	assert.Nil(t, s.last)
}

func TestEmptyAreaStore_MergeAbsorbsFullEdgeNeighbors(t *testing.T) {
	s := newEmptyAreaStore(4)
	s.setComparator = setAreaComparator

	// b sits to the right of a, c spans the full width below both. After
	// merging, a must have grown to the whole 100x100 square through a
	// chain of two merges.
	b := &s.list[1]
	b.x, b.y, b.width, b.height = 50, 0, 50, 50
	s.setComparator(b)
	s.insertSorted(b, s.last)

	c := &s.list[2]
	c.x, c.y, c.width, c.height = 0, 50, 100, 50
	s.setComparator(c)
	s.insertSorted(c, s.last)

	a := &s.list[0]
	a.x, a.y, a.width, a.height = 0, 0, 50, 50

	require.True(t, s.mergeAdjacent(a))
	assert.Equal(t, region{0, 0, 100, 100}, region{a.x, a.y, a.width, a.height})
	assert.Nil(t, s.first, "both neighbors were absorbed and unlinked")
}

func TestEmptyAreaStore_NoMergeAcrossPartialEdges(t *testing.T) {
	s := newEmptyAreaStore(3)
	s.setComparator = setAreaComparator

	// b touches a but only along part of a's edge, so they must not merge.
	b := &s.list[1]
	b.x, b.y, b.width, b.height = 50, 0, 50, 30
	s.setComparator(b)
	s.insertSorted(b, s.last)

	a := &s.list[0]
	a.x, a.y, a.width, a.height = 0, 0, 50, 50

	assert.False(t, s.mergeAdjacent(a))
	assert.Len(t, listAreas(s), 1)
}

func TestEmptyAreaStore_SplitOrdersHalvesWhenNewHalfIsLarger(t *testing.T) {
	// A split can produce a new half that sorts above the reshaped one:
	// placing 82x45 in a 108x57 area leaves an 82x12 strip below (the new
	// half, comparator 94) and a 26x57 strip to the right (the reshaped
	// half, comparator 83). Insertion must follow the comparators, not the
	// arena roles, or an area with a comparator in between ends up on the
	// wrong side.
	s := newEmptyAreaStore(4)
	s.setComparator = setPerimeterComparator

	bystander := &s.list[0]
	bystander.x, bystander.y, bystander.width, bystander.height = 200, 200, 44, 40
	s.setComparator(bystander)
	s.insertSorted(bystander, s.last)

	target := &s.list[1]
	target.x, target.y, target.width, target.height = 0, 0, 108, 57
	s.setComparator(target)
	s.insertSorted(target, s.last)
	s.index = 1

	s.split(target, 82, 45)

	assertListConsistent(t, s)
	areas := listAreas(s)
	require.Len(t, areas, 3)
	assert.Equal(t, region{82, 0, 26, 57}, region{areas[0].x, areas[0].y, areas[0].width, areas[0].height})
	assert.Equal(t, region{200, 200, 44, 40}, region{areas[1].x, areas[1].y, areas[1].width, areas[1].height})
	assert.Equal(t, region{0, 45, 82, 12}, region{areas[2].x, areas[2].y, areas[2].width, areas[2].height})
}

func TestPack_TilingInvariantHoldsAfterEveryPlacement(t *testing.T) {
	// Spec'd property of the store: at any point while packing one image,
	// empty areas plus placed rectangles tile the destination exactly,
	// and the list stays sorted even through merge reinsertions that walk
	// backward from a caller-chosen start.
	const imageWidth, imageHeight = 256, 256

	for seed := int64(1); seed <= 8; seed++ {
		for _, metric := range []SortMetric{SortPerimeter, SortArea, SortHeight, SortWidth} {
			t.Run(fmt.Sprintf("seed%d_%s", seed, metric), func(t *testing.T) {
				rng := rand.New(rand.NewSource(seed))
				n := 30 + rng.Intn(30)

				p, err := NewPacker(n, imageWidth, imageHeight)
				require.NoError(t, err)
				for i := range p.Rects() {
					p.Rects()[i].Width = rng.Intn(90) + 1
					p.Rects()[i].Height = rng.Intn(90) + 1
				}
				p.Options.SortBy = metric
				p.sortRects()
				p.areas.reset(imageWidth, imageHeight)

				for _, rect := range p.sorted {
					if !p.packRect(rect, true) {
						continue
					}
					assertListConsistent(t, p.areas)
					assertTiling(t, p, imageWidth, imageHeight)
				}
			})
		}
	}
}

func TestPack_ArenaNeverExceedsCapacityBound(t *testing.T) {
	// The arena holds numRects+1 slots. No input and no fail policy may
	// push the high-water mark past it.
	for _, policy := range []FailPolicy{Stop, Continue, NewImage} {
		t.Run(policy.String(), func(t *testing.T) {
			rng := rand.New(rand.NewSource(99))
			const n = 120

			p, err := NewPacker(n, 300, 300)
			require.NoError(t, err)
			for i := range p.Rects() {
				p.Rects()[i].Width = rng.Intn(70) + 1
				p.Rects()[i].Height = rng.Intn(70) + 1
			}
			p.Options.FailPolicy = policy
			p.Options.AllowRotation = true

			_, err = p.Pack()
			require.NoError(t, err)
			assert.Less(t, p.areas.index, len(p.areas.list))
		})
	}
}
