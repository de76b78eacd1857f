package render

import (
	"image"
	"image/color"
)

// Surface is a 2D drawing context. Save and Restore bracket changes to
// the stroke, fill, line width and dash settings.
type Surface interface {
	Size() (width, height int)
	Clear()
	DrawImage(img image.Image, x, y int)

	Save()
	Restore()

	SetStrokeColor(c color.Color)
	SetFillColor(c color.Color)
	SetLineWidth(w float64)
	SetLineDash(dash []float64)

	StrokeRect(x, y, w, h float64)
	FillRect(x, y, w, h float64)
	FillText(text string, x, y float64)
}
