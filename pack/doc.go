// Package pack places a set of rectangles into one or more fixed-size
// destination images without overlap, for texture atlas generation and
// similar asset-pipeline work.
//
// The destination image is tracked as a set of empty areas, kept in a list
// sorted from smallest to largest. Rectangles are sorted from largest to
// smallest and each one is placed at the origin of the smallest empty area
// it fits, which then shrinks or splits around it. Adjacent empty areas are
// merged back together to keep fragmentation low. After the first placement
// a destination image looks like this:
//
//	 ____________________
//	|       |            |
//	|   A   |            |        A - packed rectangle
//	|       |            |
//	|_______|            |
//	|       |      C     |        B - smaller empty area
//	|       |            |
//	|   B   |            |
//	|       |            |        C - larger empty area
//	|_______|____________|
//
// The empty areas live in an arena allocated up front. A placement consumes
// one area and creates at most one new one, because the second half of every
// split reuses the consumed area's slot, so the arena never needs more than
// one slot per rectangle plus one for the initial image. All memory is
// allocated by NewPacker; packing itself allocates nothing.
//
// The packer only assigns coordinates. Moving the actual pixels is the
// caller's job, with DstOffset available as a translation helper. Bin
// packing is NP-hard; this is a fast deterministic heuristic, not an
// optimal solver.
//
// Basic use:
//
//	p, err := pack.NewPacker(len(images), 2048, 2048)
//	if err != nil {
//		return err
//	}
//	p.Options.AllowRotation = true
//	for i, img := range images {
//		p.Rects()[i].Width = img.Bounds().Dx()
//		p.Rects()[i].Height = img.Bounds().Dy()
//	}
//	packed, err := p.Pack()
//	if err != nil {
//		return err
//	}
//	for i := range p.Rects() {
//		r := &p.Rects()[i]
//		if r.Packed {
//			draw(images[i], r.X, r.Y, r.Rotated)
//		}
//	}
package pack
