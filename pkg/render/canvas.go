package render

import (
	"image"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// LabelFontSize is the point size used for box labels
const LabelFontSize = 12.0

var (
	labelFaceOnce sync.Once
	labelFace     font.Face
	labelFaceErr  error
)

func loadLabelFace() (font.Face, error) {
	labelFaceOnce.Do(func() {
		ttf, err := truetype.Parse(gomono.TTF)
		if err != nil {
			labelFaceErr = err
			return
		}
		labelFace = truetype.NewFace(ttf, &truetype.Options{
			Size:    LabelFontSize,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	})
	return labelFace, labelFaceErr
}

type paint struct {
	stroke color.Color
	fill   color.Color
}

// Canvas is a software Surface backed by a gg context
type Canvas struct {
	dc    *gg.Context
	paint paint
	saved []paint
}

// NewCanvas creates a transparent canvas of the given size
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{
		dc:    gg.NewContext(width, height),
		paint: paint{stroke: color.Black, fill: color.Transparent},
	}
	if face, err := loadLabelFace(); err == nil {
		c.dc.SetFontFace(face)
	}
	return c
}

func (c *Canvas) Size() (int, int) {
	return c.dc.Width(), c.dc.Height()
}

// Clear resets every pixel to transparent
func (c *Canvas) Clear() {
	c.dc.Push()
	c.dc.SetColor(color.Transparent)
	c.dc.Clear()
	c.dc.Pop()
}

func (c *Canvas) DrawImage(img image.Image, x, y int) {
	c.dc.DrawImage(img, x, y)
}

func (c *Canvas) Save() {
	c.dc.Push()
	c.saved = append(c.saved, c.paint)
}

// Restore pops the last Save. An unbalanced Restore is ignored.
func (c *Canvas) Restore() {
	if len(c.saved) == 0 {
		return
	}
	c.paint = c.saved[len(c.saved)-1]
	c.saved = c.saved[:len(c.saved)-1]
	c.dc.Pop()
}

func (c *Canvas) SetStrokeColor(col color.Color) { c.paint.stroke = col }

func (c *Canvas) SetFillColor(col color.Color) { c.paint.fill = col }

func (c *Canvas) SetLineWidth(w float64) { c.dc.SetLineWidth(w) }

func (c *Canvas) SetLineDash(dash []float64) { c.dc.SetDash(dash...) }

func (c *Canvas) StrokeRect(x, y, w, h float64) {
	c.dc.SetColor(c.paint.stroke)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Stroke()
}

func (c *Canvas) FillRect(x, y, w, h float64) {
	c.dc.SetColor(c.paint.fill)
	c.dc.DrawRectangle(x, y, w, h)
	c.dc.Fill()
}

// FillText draws text with its baseline at y using the stroke color
func (c *Canvas) FillText(text string, x, y float64) {
	c.dc.SetColor(c.paint.stroke)
	c.dc.DrawString(text, x, y)
}

// Image returns the current frame
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// SavePNG writes the current frame to path
func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}
