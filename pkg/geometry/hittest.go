package geometry

import "github.com/menta2k/box-annotator/pkg/types"

// FindBoxAt returns the index of the topmost box containing (x, y).
// Boxes later in the slice are on top, so the scan runs back to front.
func FindBoxAt(x, y float64, boxes []types.CanvasBox) (int, bool) {
	p := types.Point{X: x, Y: y}
	for i := len(boxes) - 1; i >= 0; i-- {
		if RectOf(boxes[i]).Contains(p) {
			return i, true
		}
	}
	return -1, false
}
