package engine

import "github.com/piwi3910/plycut/internal/units"

// freeRect is an available placement rectangle in sheet coordinates
// (origin top-left, x right, y down), in fixed-point units.
type freeRect struct {
	x, y, w, h units.Dim
}

func (r freeRect) area() int64 {
	return int64(r.w) * int64(r.h)
}

func (r freeRect) right() units.Dim  { return r.x + r.w }
func (r freeRect) bottom() units.Dim { return r.y + r.h }

// contains reports whether r fully contains other.
func (r freeRect) contains(other freeRect) bool {
	return r.x <= other.x && r.y <= other.y &&
		r.right() >= other.right() && r.bottom() >= other.bottom()
}

// overlaps reports whether two rectangles share interior area (touching
// edges do not count).
func (r freeRect) overlaps(other freeRect) bool {
	return r.x < other.right() && r.right() > other.x &&
		r.y < other.bottom() && r.bottom() > other.y
}

// freeRectSet tracks the free rectangles of one sheet as an indexed arena.
// Rectangles may overlap each other (maximal-rectangles style) but never a
// committed placement. Split and prune work by index removal and append, so
// there are no pointer-linked nodes to dangle.
type freeRectSet struct {
	rects []freeRect
}

// newFreeRectSet starts with a single rectangle spanning the whole
// placement area.
func newFreeRectSet(w, h units.Dim) *freeRectSet {
	return &freeRectSet{rects: []freeRect{{x: 0, y: 0, w: w, h: h}}}
}

// candidate is one viable (rectangle, orientation) pair for a piece.
type candidate struct {
	rectIdx int
	rect    freeRect
	orient  Orientation
}

// findCandidates returns every (rectangle, orientation) pair whose free
// rectangle can hold the oriented piece material. The kerf-inflated
// footprint is allowed to spill past the rectangle; commit clamps the
// consumed region, so the trailing kerf lands in adjacent waste.
func (s *freeRectSet) findCandidates(ep effectivePiece) []candidate {
	var out []candidate
	for i, r := range s.rects {
		for _, o := range ep.orientations {
			sz := ep.size(o)
			if sz.w <= r.w && sz.h <= r.h {
				out = append(out, candidate{rectIdx: i, rect: r, orient: o})
			}
		}
	}
	return out
}

// commit places a footprint at the origin of the chosen rectangle. The
// chosen rectangle is replaced by its two guillotine successors (leftover
// width to the right at full height, leftover height below at full width);
// every other free rectangle overlapping the consumed region is clipped
// into its maximal remainders; contained and empty rectangles are pruned.
// Returns the placement origin.
func (s *freeRectSet) commit(rectIdx int, fp footprint) (units.Dim, units.Dim) {
	chosen := s.rects[rectIdx]
	px, py := chosen.x, chosen.y

	consumed := freeRect{
		x: px,
		y: py,
		w: minDim(fp.w, chosen.w),
		h: minDim(fp.h, chosen.h),
	}

	next := make([]freeRect, 0, len(s.rects)+2)

	// Guillotine successors of the chosen rectangle.
	if leftover := chosen.w - consumed.w; leftover > 0 {
		next = append(next, freeRect{x: px + consumed.w, y: py, w: leftover, h: chosen.h})
	}
	if leftover := chosen.h - consumed.h; leftover > 0 {
		next = append(next, freeRect{x: px, y: py + consumed.h, w: chosen.w, h: leftover})
	}

	// Clip every other rectangle that overlaps the consumed region.
	for i, r := range s.rects {
		if i == rectIdx {
			continue
		}
		if !r.overlaps(consumed) {
			next = append(next, r)
			continue
		}
		next = append(next, clipAround(r, consumed)...)
	}

	s.rects = pruneContained(next)
	return px, py
}

// clipAround splits r into up to four maximal rectangles not overlapping
// the placed region.
func clipAround(r, placed freeRect) []freeRect {
	var out []freeRect
	if placed.x > r.x {
		out = append(out, freeRect{x: r.x, y: r.y, w: placed.x - r.x, h: r.h})
	}
	if placed.right() < r.right() {
		out = append(out, freeRect{x: placed.right(), y: r.y, w: r.right() - placed.right(), h: r.h})
	}
	if placed.y > r.y {
		out = append(out, freeRect{x: r.x, y: r.y, w: r.w, h: placed.y - r.y})
	}
	if placed.bottom() < r.bottom() {
		out = append(out, freeRect{x: r.x, y: placed.bottom(), w: r.w, h: r.bottom() - placed.bottom()})
	}
	return out
}

// pruneContained removes empty rectangles and any rectangle fully contained
// within another, keeping the free set small without losing placement room.
func pruneContained(rects []freeRect) []freeRect {
	kept := make([]freeRect, 0, len(rects))
	for i, a := range rects {
		if a.w <= 0 || a.h <= 0 {
			continue
		}
		contained := false
		for j, b := range rects {
			if i == j {
				continue
			}
			if b.contains(a) {
				// Identical rectangles contain each other; keep the first.
				if a.contains(b) && i < j {
					continue
				}
				contained = true
				break
			}
		}
		if !contained {
			kept = append(kept, a)
		}
	}
	return kept
}

func minDim(a, b units.Dim) units.Dim {
	if a < b {
		return a
	}
	return b
}
