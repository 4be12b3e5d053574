package engine

import (
	"fmt"

	"github.com/piwi3910/plycut/internal/model"
	"github.com/piwi3910/plycut/internal/units"
)

// placementRec is an internal placement in fixed-point units. The material
// extent excludes kerf; the footprint extent includes it.
type placementRec struct {
	piece  model.Piece
	x, y   units.Dim
	matW   units.Dim
	matH   units.Dim
	fpW    units.Dim
	fpH    units.Dim
	orient Orientation
}

// openSheet is one sheet opened during a run, with its free-rectangle set
// and committed placements in placement order.
type openSheet struct {
	index      int
	free       *freeRectSet
	placements []placementRec
}

// sheetAllocator opens identically sized sheets on demand, up to the
// configured maximum. The placement area of each sheet is the material size
// inflated by one kerf per axis, so kerf is charged between pieces while a
// row's trailing cut may exit through the sheet edge.
type sheetAllocator struct {
	areaW  units.Dim
	areaH  units.Dim
	max    int
	sheets []*openSheet
}

func newSheetAllocator(sheet model.SheetSpec, kerf units.Dim, max int) *sheetAllocator {
	return &sheetAllocator{
		areaW: units.FromInches(sheet.Width) + kerf,
		areaH: units.FromInches(sheet.Length) + kerf,
		max:   max,
	}
}

// openNewSheet appends a sheet with a single full-area free rectangle.
// It fails once the configured maximum is reached.
func (a *sheetAllocator) openNewSheet() (*openSheet, error) {
	if len(a.sheets) >= a.max {
		return nil, fmt.Errorf("%d sheets open: %w", len(a.sheets), model.ErrSheetLimitExceeded)
	}
	s := &openSheet{
		index: len(a.sheets),
		free:  newFreeRectSet(a.areaW, a.areaH),
	}
	a.sheets = append(a.sheets, s)
	return s, nil
}
