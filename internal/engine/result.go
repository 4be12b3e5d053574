package engine

import "github.com/piwi3910/plycut/internal/model"

// assembleRun converts the internal fixed-point placements into the public
// result, in inches with the kerf allowance stripped. Sheets appear in the
// order they were opened; placements in the order they were committed.
func assembleRun(cfg model.RunConfig, sheets []*openSheet, unplaced []model.UnplacedPiece) *model.PackingRun {
	run := model.NewPackingRun(cfg)
	run.Unplaced = unplaced

	for _, sheet := range sheets {
		layout := model.SheetLayout{
			Index:      sheet.index,
			Sheet:      cfg.Sheet,
			Placements: make([]model.Placement, 0, len(sheet.placements)),
		}
		for _, rec := range sheet.placements {
			layout.Placements = append(layout.Placements, model.Placement{
				PieceID: rec.piece.ID,
				X:       rec.x.Inches(),
				Y:       rec.y.Inches(),
				Width:   rec.matW.Inches(),
				Height:  rec.matH.Inches(),
				// A square placement is indistinguishable from the as-given
				// one, so it is never reported as rotated.
				Rotated: rec.orient == OrientRotated90 && rec.matW != rec.matH,
			})
		}
		run.Sheets = append(run.Sheets, layout)
	}
	return run
}
