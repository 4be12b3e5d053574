package export

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-pdf/fpdf"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/piwi3910/plycut/internal/model"
)

// LabelInfo holds the data encoded into each piece label's QR code.
type LabelInfo struct {
	PieceID    int     `json:"piece_id"`
	PieceLabel string  `json:"label,omitempty"`
	Width      float64 `json:"width_in"`
	Height     float64 `json:"height_in"`
	SheetIndex int     `json:"sheet"`
	Rotated    bool    `json:"rotated"`
	X          float64 `json:"x_in"`
	Y          float64 `json:"y_in"`
}

// Label layout constants for Avery 5160-compatible labels (3 columns, 10 rows
// per page). Each label cell is approximately 66.7mm x 25.4mm on US Letter.
const (
	labelMarginTop  = 12.7
	labelMarginLeft = 4.8
	labelWidth      = 66.7
	labelHeight     = 25.4
	labelCols       = 3
	labelRows       = 10
	labelsPerPage   = labelCols * labelRows
	qrSize          = 20.0
	labelPadding    = 2.0
)

// WriteLabels generates a PDF of QR-coded labels for all placed pieces.
// Each label contains the piece id, cut dimensions, and a QR code encoding
// placement metadata as JSON, laid out on an Avery 5160 sheet.
func WriteLabels(path string, run *model.PackingRun, pieces []model.Piece) error {
	labels := CollectLabelInfos(run, pieces)
	if len(labels) == 0 {
		return fmt.Errorf("no pieces placed to generate labels for")
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetAutoPageBreak(false, 0)

	for i, label := range labels {
		if i%labelsPerPage == 0 {
			pdf.AddPage()
		}

		posOnPage := i % labelsPerPage
		col := posOnPage % labelCols
		row := posOnPage / labelCols

		x := labelMarginLeft + float64(col)*labelWidth
		y := labelMarginTop + float64(row)*labelHeight

		if err := renderLabel(pdf, x, y, label); err != nil {
			return fmt.Errorf("failed to render label for piece %d: %w", label.PieceID, err)
		}
	}

	return pdf.OutputFileAndClose(path)
}

// renderLabel draws a single label at the given position.
func renderLabel(pdf *fpdf.Fpdf, x, y float64, info LabelInfo) error {
	// Light border as a cutting guide.
	pdf.SetDrawColor(200, 200, 200)
	pdf.SetLineWidth(0.1)
	pdf.Rect(x, y, labelWidth, labelHeight, "D")

	qrData, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("failed to marshal label info: %w", err)
	}

	qrPNG, err := qrcode.Encode(string(qrData), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}

	imgName := fmt.Sprintf("qr_%d_%d", info.SheetIndex, info.PieceID)
	pdf.RegisterImageOptionsReader(imgName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))

	qrX := x + labelWidth - qrSize - labelPadding
	qrY := y + (labelHeight-qrSize)/2
	pdf.ImageOptions(imgName, qrX, qrY, qrSize, qrSize, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	textX := x + labelPadding
	textW := labelWidth - qrSize - 3*labelPadding

	title := fmt.Sprintf("Piece #%d", info.PieceID)
	if info.PieceLabel != "" {
		title = info.PieceLabel
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(textX, y+labelPadding)

	if pdf.GetStringWidth(title) > textW {
		for len(title) > 0 && pdf.GetStringWidth(title+"...") > textW {
			title = title[:len(title)-1]
		}
		title += "..."
	}
	pdf.CellFormat(textW, 4.5, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	pdf.SetXY(textX, y+labelPadding+5)
	dims := fmt.Sprintf("%.4g x %.4g in", info.Height, info.Width)
	pdf.CellFormat(textW, 3.5, dims, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 6)
	pdf.SetTextColor(100, 100, 100)
	pdf.SetXY(textX, y+labelPadding+9)
	sheetInfo := fmt.Sprintf("Sheet %d @ (%.4g, %.4g)", info.SheetIndex, info.X, info.Y)
	pdf.CellFormat(textW, 3, sheetInfo, "", 1, "L", false, 0, "")

	if info.Rotated {
		pdf.SetXY(textX, y+labelPadding+12.5)
		pdf.SetFont("Helvetica", "I", 6)
		pdf.SetTextColor(150, 100, 0)
		pdf.CellFormat(textW, 3, "Rotated 90\xb0", "", 0, "L", false, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)

	return nil
}

// CollectLabelInfos flattens a run into per-placement label records, in
// sheet then placement order.
func CollectLabelInfos(run *model.PackingRun, pieces []model.Piece) []LabelInfo {
	byID := pieceIndex(pieces)
	var labels []LabelInfo
	for _, sheet := range run.Sheets {
		for _, p := range sheet.Placements {
			labels = append(labels, LabelInfo{
				PieceID:    p.PieceID,
				PieceLabel: byID[p.PieceID].Label,
				Width:      p.Width,
				Height:     p.Height,
				SheetIndex: sheet.Index + 1,
				Rotated:    p.Rotated,
				X:          p.X,
				Y:          p.Y,
			})
		}
	}
	return labels
}
