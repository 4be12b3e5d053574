package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/plycut/internal/model"
)

// WriteDXF writes the layout of one sheet as a DXF drawing with the sheet
// outline on a SHEET layer and each piece outline on a PIECES layer. DXF
// uses a bottom-left origin with Y up, so placement Y coordinates are
// flipped against the sheet length.
func WriteDXF(path string, run *model.PackingRun, sheetIndex int) error {
	if sheetIndex < 0 || sheetIndex >= len(run.Sheets) {
		return fmt.Errorf("sheet index %d out of range (%d sheets)", sheetIndex, len(run.Sheets))
	}
	sheet := run.Sheets[sheetIndex]

	d := dxf.NewDrawing()

	if _, err := d.AddLayer("SHEET", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add sheet layer: %w", err)
	}
	drawRect(d, 0, 0, sheet.Sheet.Width, sheet.Sheet.Length)

	if _, err := d.AddLayer("PIECES", dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("add pieces layer: %w", err)
	}
	for _, p := range sheet.Placements {
		y := sheet.Sheet.Length - p.Y - p.Height
		drawRect(d, p.X, y, p.Width, p.Height)
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("save dxf: %w", err)
	}
	return nil
}

// drawRect emits the four edges of an axis-aligned rectangle on the
// drawing's current layer.
func drawRect(d *drawing.Drawing, x, y, w, h float64) {
	d.Line(x, y, 0, x+w, y, 0)
	d.Line(x+w, y, 0, x+w, y+h, 0)
	d.Line(x+w, y+h, 0, x, y+h, 0)
	d.Line(x, y+h, 0, x, y, 0)
}
