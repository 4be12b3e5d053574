package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/plycut/internal/model"
)

// WriteExcel writes the packing run as an .xlsx workbook with one
// "Placements" sheet mirroring the CSV summary and a "Summary" sheet with
// per-sheet statistics.
func WriteExcel(path string, run *model.PackingRun, pieces []model.Piece) error {
	f := excelize.NewFile()
	defer f.Close()

	const placementsSheet = "Placements"
	if err := f.SetSheetName("Sheet1", placementsSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(placementsSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	byID := pieceIndex(pieces)
	rowNum := 2
	for _, sheet := range run.Sheets {
		for _, p := range sheet.Placements {
			piece := byID[p.PieceID]
			row := []interface{}{
				sheet.Index + 1,
				p.PieceID,
				piece.Label,
				p.X,
				p.Y,
				p.Width,
				p.Height,
				p.Rotated,
				piece.Grain.String(),
			}
			cell, err := excelize.CoordinatesToCellName(1, rowNum)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(placementsSheet, cell, &row); err != nil {
				return fmt.Errorf("write row %d: %w", rowNum, err)
			}
			rowNum++
		}
	}

	const summarySheet = "Summary"
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("create summary sheet: %w", err)
	}
	summaryHeader := []interface{}{"Sheet", "Pieces", "Used (sq in)", "Total (sq in)", "Efficiency (%)"}
	if err := f.SetSheetRow(summarySheet, "A1", &summaryHeader); err != nil {
		return fmt.Errorf("write summary header: %w", err)
	}
	for i, sheet := range run.Sheets {
		row := []interface{}{
			sheet.Index + 1,
			len(sheet.Placements),
			sheet.UsedArea(),
			sheet.TotalArea(),
			sheet.Efficiency(),
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("write summary row: %w", err)
		}
	}

	return f.SaveAs(path)
}
