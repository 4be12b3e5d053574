// Package engine implements the heuristic 2D bin-packing core: dimension
// normalization, per-sheet free-rectangle tracking, first-fit-decreasing
// placement with best-area-fit selection, and bounded multi-sheet
// allocation. A run is synchronous and deterministic; independent runs
// share no state and may execute concurrently.
package engine

import (
	"fmt"
	"sort"

	"github.com/piwi3910/plycut/internal/model"
	"github.com/piwi3910/plycut/internal/units"
)

// runState tracks the phases of a single optimization run.
type runState int

const (
	statePending runState = iota
	statePlacing
	stateDone
)

// Optimizer runs the 2D bin-packing algorithm for a fixed configuration.
// It holds no per-run state; a single Optimizer may serve concurrent runs.
type Optimizer struct {
	cfg model.RunConfig
}

func New(cfg model.RunConfig) *Optimizer {
	return &Optimizer{cfg: cfg}
}

// packingJob owns the mutable state of one run: the sorted work list, the
// allocator with its open sheets, and the unplaced accounting.
type packingJob struct {
	state    runState
	sheetW   units.Dim
	sheetL   units.Dim
	pieces   []effectivePiece
	order    []int
	alloc    *sheetAllocator
	unplaced []model.UnplacedPiece
}

// Optimize assigns the pieces to as few sheets as the heuristic manages,
// honoring grain constraints and the kerf allowance. The returned run
// reports every input piece exactly once, either as a placement or in the
// unplaced list. It fails only when the configuration or a piece carries
// invalid dimensions.
func (o *Optimizer) Optimize(pieces []model.Piece) (*model.PackingRun, error) {
	if err := o.cfg.Validate(); err != nil {
		return nil, err
	}

	job, err := o.newJob(pieces)
	if err != nil {
		return nil, err
	}
	job.placeAll()

	run := assembleRun(o.cfg, job.alloc.sheets, job.unplaced)
	if err := checkConservation(run, len(pieces)); err != nil {
		return nil, err
	}
	return run, nil
}

// newJob normalizes the pieces and fixes the placement order: footprint
// area descending, then longer footprint edge descending, then original
// input order. Sorted once, before any placement.
func (o *Optimizer) newJob(pieces []model.Piece) (*packingJob, error) {
	kerf := units.FromInches(o.cfg.Kerf)

	effective := make([]effectivePiece, 0, len(pieces))
	for _, p := range pieces {
		ep, err := normalizePiece(p, kerf)
		if err != nil {
			return nil, err
		}
		effective = append(effective, ep)
	}

	order := make([]int, len(effective))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		ea, eb := effective[order[a]], effective[order[b]]
		aa, ab := ea.footprint(OrientAsGiven).area(), eb.footprint(OrientAsGiven).area()
		if aa != ab {
			return aa > ab
		}
		if ea.maxEdge() != eb.maxEdge() {
			return ea.maxEdge() > eb.maxEdge()
		}
		return order[a] < order[b]
	})

	return &packingJob{
		state:  statePending,
		sheetW: units.FromInches(o.cfg.Sheet.Width),
		sheetL: units.FromInches(o.cfg.Sheet.Length),
		pieces: effective,
		order:  order,
		alloc:  newSheetAllocator(o.cfg.Sheet, kerf, o.cfg.MaxSheets),
	}, nil
}

// placeAll processes every piece in sorted order. Each piece ends up either
// committed to a sheet or recorded as unplaced with a reason; neither
// condition aborts the run.
func (j *packingJob) placeAll() {
	j.state = statePlacing

	for _, idx := range j.order {
		ep := j.pieces[idx]

		// A piece whose kerf-inflated footprint exceeds the sheet in every
		// allowed orientation can never be placed; skip it without opening
		// a sheet for it.
		if !j.fitsSheet(ep) {
			j.markUnplaced(ep, model.ReasonPieceExceedsSheet)
			continue
		}

		if placeOnSheets(j.alloc.sheets, ep) {
			continue
		}

		sheet, err := j.alloc.openNewSheet()
		if err != nil {
			j.markUnplaced(ep, model.ReasonSheetLimitExceeded)
			continue
		}
		// Retry against only the new sheet's single full-area rectangle.
		if !placeOnSheets([]*openSheet{sheet}, ep) {
			// Unreachable given the footprint pre-check, but a piece must
			// never vanish from the accounting.
			j.markUnplaced(ep, model.ReasonPieceExceedsSheet)
		}
	}

	j.state = stateDone
}

func (j *packingJob) markUnplaced(ep effectivePiece, reason model.UnplacedReason) {
	j.unplaced = append(j.unplaced, model.UnplacedPiece{
		PieceID: ep.piece.ID,
		Reason:  reason,
	})
}

// fitsSheet reports whether some allowed orientation's footprint fits the
// raw sheet dimensions.
func (j *packingJob) fitsSheet(ep effectivePiece) bool {
	for _, o := range ep.orientations {
		fp := ep.footprint(o)
		if fp.w <= j.sheetW && fp.h <= j.sheetL {
			return true
		}
	}
	return false
}

// placeOnSheets selects the best (sheet, rectangle, orientation) candidate
// across the given sheets and commits it. Selection is best-area-fit with a
// short-side tiebreak, then lowest sheet index, then rectangle scan order
// (top-to-bottom, left-to-right), then the as-given orientation, making the
// result deterministic.
func placeOnSheets(sheets []*openSheet, ep effectivePiece) bool {
	type choice struct {
		sheet *openSheet
		cand  candidate
	}
	var best *choice
	var bestScore scoreKey

	for _, sheet := range sheets {
		for _, c := range sheet.free.findCandidates(ep) {
			s := scoreCandidate(sheet.index, c, ep)
			if best == nil || s.less(bestScore) {
				bestScore = s
				best = &choice{sheet: sheet, cand: c}
			}
		}
	}
	if best == nil {
		return false
	}

	fp := ep.footprint(best.cand.orient)
	sz := ep.size(best.cand.orient)
	x, y := best.sheet.free.commit(best.cand.rectIdx, fp)
	best.sheet.placements = append(best.sheet.placements, placementRec{
		piece:  ep.piece,
		x:      x,
		y:      y,
		matW:   sz.w,
		matH:   sz.h,
		fpW:    fp.w,
		fpH:    fp.h,
		orient: best.cand.orient,
	})
	return true
}

// scoreKey orders candidates: smaller is better, field by field.
type scoreKey struct {
	leftoverArea int64
	shortSide    int64
	sheetIdx     int
	rectY        units.Dim
	rectX        units.Dim
	orient       Orientation
}

func (s scoreKey) less(t scoreKey) bool {
	if s.leftoverArea != t.leftoverArea {
		return s.leftoverArea < t.leftoverArea
	}
	if s.shortSide != t.shortSide {
		return s.shortSide < t.shortSide
	}
	if s.sheetIdx != t.sheetIdx {
		return s.sheetIdx < t.sheetIdx
	}
	if s.rectY != t.rectY {
		return s.rectY < t.rectY
	}
	if s.rectX != t.rectX {
		return s.rectX < t.rectX
	}
	return s.orient < t.orient
}

func scoreCandidate(sheetIdx int, c candidate, ep effectivePiece) scoreKey {
	fp := ep.footprint(c.orient)
	leftW := int64(c.rect.w) - int64(fp.w)
	leftH := int64(c.rect.h) - int64(fp.h)
	short := leftW
	if leftH < short {
		short = leftH
	}
	return scoreKey{
		leftoverArea: c.rect.area() - fp.area(),
		shortSide:    short,
		sheetIdx:     sheetIdx,
		rectY:        c.rect.y,
		rectX:        c.rect.x,
		orient:       c.orient,
	}
}

// checkConservation verifies that every input piece landed in exactly one
// of the placement tables or the unplaced list.
func checkConservation(run *model.PackingRun, inputs int) error {
	if got := run.PlacedCount() + len(run.Unplaced); got != inputs {
		return fmt.Errorf("placement accounting mismatch: %d of %d pieces", got, inputs)
	}
	return nil
}
