package geometry

import (
	"github.com/menta2k/box-annotator/pkg/types"
)

// Rect is an axis-aligned rectangle. Width and Height may be negative,
// in which case the rectangle extends left/up from its origin.
type Rect struct {
	X, Y, Width, Height float64
}

// RectOf extracts the geometry of a canvas box
func RectOf(b types.CanvasBox) Rect {
	return Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

// Apply writes the rectangle geometry back into a canvas box
func (r Rect) Apply(b types.CanvasBox) types.CanvasBox {
	b.X, b.Y, b.Width, b.Height = r.X, r.Y, r.Width, r.Height
	return b
}

// Normalize flips negative dimensions so that Width and Height are
// non-negative and the origin is the top-left corner.
func (r Rect) Normalize() Rect {
	if r.Width < 0 {
		r.X += r.Width
		r.Width = -r.Width
	}
	if r.Height < 0 {
		r.Y += r.Height
		r.Height = -r.Height
	}
	return r
}

// Contains reports whether p lies inside r, edges included
func (r Rect) Contains(p types.Point) bool {
	n := r.Normalize()
	return p.X >= n.X && p.X <= n.X+n.Width &&
		p.Y >= n.Y && p.Y <= n.Y+n.Height
}

// Translate moves the origin by d
func (r Rect) Translate(d types.Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Scale multiplies origin and size by per-axis factors
func (r Rect) Scale(sx, sy float64) Rect {
	return Rect{X: r.X * sx, Y: r.Y * sy, Width: r.Width * sx, Height: r.Height * sy}
}

// NormalizeBox returns b with non-negative width and height
func NormalizeBox(b types.CanvasBox) types.CanvasBox {
	return RectOf(b).Normalize().Apply(b)
}
