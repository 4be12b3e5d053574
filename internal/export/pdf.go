// Package export writes packing run results to the cut-shop file formats:
// PDF layout drawings, CSV and Excel cut lists, DXF outlines, and printable
// part labels.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/plycut/internal/model"
)

// pieceColor represents an RGB color for a placed piece.
type pieceColor struct {
	R, G, B int
}

// pieceColors is the palette cycled through for placements on a sheet.
var pieceColors = []pieceColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	statsHeight  = 20.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// WritePDF generates a PDF document for a packing run. Each sheet is
// rendered on its own page with a scaled layout diagram, followed by a
// summary page with overall statistics.
func WritePDF(path string, run *model.PackingRun) error {
	if len(run.Sheets) == 0 {
		return fmt.Errorf("no sheets to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	for _, sheet := range run.Sheets {
		pdf.AddPage()
		renderSheetPage(pdf, sheet)
	}

	pdf.AddPage()
	renderSummaryPage(pdf, run)

	return pdf.OutputFileAndClose(path)
}

// renderSheetPage draws a single sheet layout on the current PDF page.
func renderSheetPage(pdf *fpdf.Fpdf, sheet model.SheetLayout) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Sheet %d (%.4g x %.4g in)", sheet.Index+1, sheet.Sheet.Length, sheet.Sheet.Width)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Pieces: %d | Used area: %.1f sq in | Total area: %.1f sq in | Efficiency: %.1f%%",
		len(sheet.Placements), sheet.UsedArea(), sheet.TotalArea(), sheet.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - statsHeight

	// Scale to fit the sheet within the drawing area. The sheet's width
	// axis runs horizontally, its length axis vertically.
	scaleX := drawWidth / sheet.Sheet.Width
	scaleY := drawHeight / sheet.Sheet.Length
	scale := math.Min(scaleX, scaleY)

	canvasW := sheet.Sheet.Width * scale
	canvasH := sheet.Sheet.Length * scale

	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Sheet background in a wood tone.
	pdf.SetFillColor(210, 180, 140)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	for i, p := range sheet.Placements {
		col := pieceColors[i%len(pieceColors)]
		pw := p.Width * scale
		ph := p.Height * scale
		px := offsetX + p.X*scale
		py := offsetY + p.Y*scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(px, py, pw, ph, "FD")

		// Labels only when the rectangle is large enough to hold them.
		if pw > 15 && ph > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(pw, ph))
			pdf.SetTextColor(0, 0, 0)

			label := fmt.Sprintf("#%d", p.PieceID)
			dims := fmt.Sprintf("%.4gx%.4g", p.Height, p.Width)

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < pw-2 {
				pdf.SetXY(px+(pw-labelW)/2, py+ph/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if ph > 14 && dimsW < pw-2 {
				pdf.SetXY(px+(pw-dimsW)/2, py+ph/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}

	drawDimensionAnnotations(pdf, sheet.Sheet, offsetX, offsetY, canvasW, canvasH)
	drawPieceLegend(pdf, sheet, offsetY+canvasH+5)
}

// drawDimensionAnnotations adds dimension labels outside the sheet rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, sheet model.SheetSpec, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	// Width annotation below the sheet.
	widthLabel := fmt.Sprintf("%.4g in", sheet.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	// Length annotation to the left of the sheet, rotated.
	lengthLabel := fmt.Sprintf("%.4g in", sheet.Length)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	lLabelW := pdf.GetStringWidth(lengthLabel)
	pdf.SetXY(offsetX-3-lLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(lLabelW, 4, lengthLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	pdf.SetTextColor(0, 0, 0)
}

// drawPieceLegend renders a compact legend of placed pieces below the diagram.
func drawPieceLegend(pdf *fpdf.Fpdf, sheet model.SheetLayout, startY float64) {
	if len(sheet.Placements) == 0 {
		return
	}

	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, startY)
	pdf.CellFormat(30, 4, "Pieces placed:", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	xPos := marginLeft + 32
	maxX := pageWidth - marginRight

	for i, p := range sheet.Placements {
		col := pieceColors[i%len(pieceColors)]
		label := fmt.Sprintf("#%d (%.4gx%.4g)", p.PieceID, p.Height, p.Width)
		if p.Rotated {
			label += " R"
		}
		labelW := pdf.GetStringWidth(label) + 6

		if xPos+labelW > maxX {
			startY += 5
			xPos = marginLeft
		}

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.Rect(xPos, startY+0.5, 3, 3, "F")

		pdf.SetXY(xPos+4, startY)
		pdf.CellFormat(labelW-4, 4, label, "", 0, "L", false, 0, "")

		xPos += labelW + 2
	}
}

// renderSummaryPage draws the final summary page with overall statistics.
func renderSummaryPage(pdf *fpdf.Fpdf, run *model.PackingRun) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18.0

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Run ID", run.ID},
		{"Total Sheets Used", fmt.Sprintf("%d", len(run.Sheets))},
		{"Overall Efficiency", fmt.Sprintf("%.1f%%", run.TotalEfficiency())},
		{"Total Pieces Placed", fmt.Sprintf("%d", run.PlacedCount())},
		{"Unplaced Pieces", fmt.Sprintf("%d", len(run.Unplaced))},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Sheet Breakdown", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{25, 60, 40, 40, 60}
	headers := []string{"Sheet", "Dimensions", "Pieces", "Efficiency", "Used / Total Area"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	pdf.SetFont("Helvetica", "", 9)
	for i, sheet := range run.Sheets {
		xPos = marginLeft
		rowData := []string{
			fmt.Sprintf("%d", sheet.Index+1),
			fmt.Sprintf("%.4g x %.4g in", sheet.Sheet.Length, sheet.Sheet.Width),
			fmt.Sprintf("%d", len(sheet.Placements)),
			fmt.Sprintf("%.1f%%", sheet.Efficiency()),
			fmt.Sprintf("%.1f / %.1f sq in", sheet.UsedArea(), sheet.TotalArea()),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	if len(run.Unplaced) > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 11)
		pdf.SetTextColor(200, 0, 0)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(200, 7, "WARNING: Unplaced Pieces", "", 0, "L", false, 0, "")
		y += 8

		pdf.SetFont("Helvetica", "", 9)
		pdf.SetTextColor(0, 0, 0)

		for _, u := range run.Unplaced {
			pdf.SetXY(marginLeft+5, y)
			text := fmt.Sprintf("- Piece #%d: %s", u.PieceID, u.Reason)
			pdf.CellFormat(200, 5, text, "", 0, "L", false, 0, "")
			y += 5
		}
	}

	y += 8
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Run Settings", "", 0, "L", false, 0, "")
	y += 9

	settingsItems := []struct {
		label string
		value string
	}{
		{"Sheet Size", fmt.Sprintf("%.4g x %.4g in", run.Config.Sheet.Length, run.Config.Sheet.Width)},
		{"Kerf Width", fmt.Sprintf("%.4g in", run.Config.Kerf)},
		{"Max Sheets", fmt.Sprintf("%d", run.Config.MaxSheets)},
	}

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range settingsItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(50, 5, item.label+":", "", 0, "L", false, 0, "")
		pdf.CellFormat(30, 5, item.value, "", 0, "L", false, 0, "")
		y += 5
	}

	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by PlyCut - Plywood Cut List Optimizer", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size for a piece rectangle.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
