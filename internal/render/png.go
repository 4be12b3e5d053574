// Package render rasterizes sheet layouts into PNG previews.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"

	"github.com/piwi3910/plycut/internal/model"
)

// pixelsPerInch controls the raster resolution before final scaling.
const pixelsPerInch = 10

// palette matches the color cycle of the PDF layout pages.
var palette = []color.RGBA{
	{R: 76, G: 175, B: 80, A: 255},
	{R: 33, G: 150, B: 243, A: 255},
	{R: 255, G: 152, B: 0, A: 255},
	{R: 156, G: 39, B: 176, A: 255},
	{R: 0, G: 188, B: 212, A: 255},
	{R: 244, G: 67, B: 54, A: 255},
	{R: 255, G: 235, B: 59, A: 255},
	{R: 121, G: 85, B: 72, A: 255},
}

var (
	sheetFill   = color.RGBA{R: 210, G: 180, B: 140, A: 255}
	borderColor = color.RGBA{R: 30, G: 30, B: 30, A: 255}
)

// SheetImage rasterizes one sheet layout. The image is drawn at 10 pixels
// per inch and then resized so its longer edge is maxEdge pixels, keeping
// the sheet's aspect ratio.
func SheetImage(sheet model.SheetLayout, maxEdge int) (image.Image, error) {
	if maxEdge < 1 {
		return nil, fmt.Errorf("max edge %d must be positive", maxEdge)
	}

	w := int(sheet.Sheet.Width * pixelsPerInch)
	h := int(sheet.Sheet.Length * pixelsPerInch)
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("sheet %.4g x %.4g too small to render", sheet.Sheet.Length, sheet.Sheet.Width)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: sheetFill}, image.Point{}, draw.Src)

	for i, p := range sheet.Placements {
		fill := palette[i%len(palette)]
		r := image.Rect(
			int(p.X*pixelsPerInch),
			int(p.Y*pixelsPerInch),
			int((p.X+p.Width)*pixelsPerInch),
			int((p.Y+p.Height)*pixelsPerInch),
		).Intersect(img.Bounds())

		draw.Draw(img, r, &image.Uniform{C: borderColor}, image.Point{}, draw.Src)
		if inner := r.Inset(1); !inner.Empty() {
			draw.Draw(img, inner, &image.Uniform{C: fill}, image.Point{}, draw.Src)
		}
	}

	if w >= h {
		return imaging.Resize(img, maxEdge, 0, imaging.Lanczos), nil
	}
	return imaging.Resize(img, 0, maxEdge, imaging.Lanczos), nil
}

// WritePNG renders one sheet of a run into a PNG file.
func WritePNG(path string, run *model.PackingRun, sheetIndex, maxEdge int) error {
	if sheetIndex < 0 || sheetIndex >= len(run.Sheets) {
		return fmt.Errorf("sheet index %d out of range (%d sheets)", sheetIndex, len(run.Sheets))
	}
	img, err := SheetImage(run.Sheets[sheetIndex], maxEdge)
	if err != nil {
		return err
	}
	return imaging.Save(img, path)
}
