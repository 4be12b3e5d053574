package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/piwi3910/plycut/internal/model"
)

// csvHeader matches the column order of the downloadable placement summary.
var csvHeader = []string{"Sheet", "Piece", "Label", "X (in)", "Y (in)", "Width (in)", "Height (in)", "Rotated", "Grain Pref"}

// WriteCSV writes the placement summary as comma-separated rows, one row
// per placed piece. The pieces slice supplies labels and grain preferences
// for the placed ids.
func WriteCSV(path string, run *model.PackingRun, pieces []model.Piece) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	byID := pieceIndex(pieces)
	for _, sheet := range run.Sheets {
		for _, p := range sheet.Placements {
			piece := byID[p.PieceID]
			row := []string{
				strconv.Itoa(sheet.Index + 1),
				strconv.Itoa(p.PieceID),
				piece.Label,
				formatInches(p.X),
				formatInches(p.Y),
				formatInches(p.Width),
				formatInches(p.Height),
				strconv.FormatBool(p.Rotated),
				piece.Grain.String(),
			}
			if err := w.Write(row); err != nil {
				return fmt.Errorf("write csv row: %w", err)
			}
		}
	}

	w.Flush()
	return w.Error()
}

// pieceIndex builds a lookup table from piece id to the full request record.
func pieceIndex(pieces []model.Piece) map[int]model.Piece {
	byID := make(map[int]model.Piece, len(pieces))
	for _, p := range pieces {
		byID[p.ID] = p
	}
	return byID
}

// formatInches renders an inch value without trailing zeros.
func formatInches(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
