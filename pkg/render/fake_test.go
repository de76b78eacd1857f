package render

import (
	"fmt"
	"image"
	"image/color"
)

// recorder is a Surface that logs every call
type recorder struct {
	w, h  int
	ops   []string
	depth int
	max   int
}

func newRecorder(w, h int) *recorder { return &recorder{w: w, h: h} }

func (r *recorder) log(format string, args ...any) {
	r.ops = append(r.ops, fmt.Sprintf(format, args...))
}

func (r *recorder) Size() (int, int) { return r.w, r.h }
func (r *recorder) Clear()           { r.log("clear") }
func (r *recorder) DrawImage(img image.Image, x, y int) {
	r.log("image %v @%d,%d", img.Bounds().Size(), x, y)
}
func (r *recorder) Save() {
	r.depth++
	if r.depth > r.max {
		r.max = r.depth
	}
	r.log("save")
}
func (r *recorder) Restore() {
	r.depth--
	r.log("restore")
}
func (r *recorder) SetStrokeColor(c color.Color) { r.log("stroke-color %v", c) }
func (r *recorder) SetFillColor(c color.Color)   { r.log("fill-color %v", c) }
func (r *recorder) SetLineWidth(w float64)       { r.log("line-width %v", w) }
func (r *recorder) SetLineDash(d []float64)      { r.log("dash %v", d) }
func (r *recorder) StrokeRect(x, y, w, h float64) {
	r.log("stroke-rect %v,%v %vx%v", x, y, w, h)
}
func (r *recorder) FillRect(x, y, w, h float64) {
	r.log("fill-rect %v,%v %vx%v", x, y, w, h)
}
func (r *recorder) FillText(text string, x, y float64) {
	r.log("text %q %v,%v", text, x, y)
}
