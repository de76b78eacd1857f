// Package interaction turns pointer and key input into box creation,
// box movement and deletion.
//
// A Machine holds an ordered set of committed boxes (later boxes are drawn
// on top) and at most one selection. A selection is either a box being
// created, which lives outside the committed set until the pointer is
// released, or a committed box being moved in place.
package interaction

import (
	"github.com/menta2k/box-annotator/pkg/geometry"
	"github.com/menta2k/box-annotator/pkg/types"
)

// selection is nil, creating or moving
type selection interface {
	state() types.BoxState
}

type creating struct {
	box types.CanvasBox
}

func (creating) state() types.BoxState { return types.Creating }

type moving struct {
	index  int
	offset types.Point
	origin types.Point
}

func (moving) state() types.BoxState { return types.Moving }

// Machine is the box interaction state machine. It is not safe for
// concurrent use; callers serialize access.
type Machine struct {
	boxes    []types.CanvasBox
	selected selection
	start    types.Point
	last     types.Point
	label    string
}

// New creates a machine whose new boxes carry label
func New(label string) *Machine {
	return &Machine{label: label}
}

// Label returns the label given to newly created boxes
func (m *Machine) Label() string {
	return m.label
}

// SetLabel changes the label for boxes created from now on.
// Existing boxes keep their label.
func (m *Machine) SetLabel(label string) {
	m.label = label
}

// PointerDown starts either a move of the topmost box under p or the
// creation of a new box at p. It always reports a redraw.
func (m *Machine) PointerDown(p types.Point) bool {
	if m.selected != nil {
		m.PointerUp(m.last)
	}
	m.start = p
	m.last = p

	if idx, ok := geometry.FindBoxAt(p.X, p.Y, m.boxes); ok {
		m.boxes[idx].State = types.Moving
		origin := m.boxes[idx].Origin()
		m.selected = moving{index: idx, offset: p.Sub(origin), origin: origin}
		return true
	}

	m.selected = creating{box: types.CanvasBox{
		Label: m.label,
		X:     p.X,
		Y:     p.Y,
		State: types.Creating,
	}}
	return true
}

// PointerMove resizes the box being created or relocates the box being
// moved. Without a selection it does nothing and returns false.
func (m *Machine) PointerMove(p types.Point) bool {
	m.last = p
	switch sel := m.selected.(type) {
	case creating:
		sel.box.Width = p.X - sel.box.X
		sel.box.Height = p.Y - sel.box.Y
		m.selected = sel
		return true
	case moving:
		box := m.boxes[sel.index]
		delta := p.Sub(sel.offset).Sub(box.Origin())
		m.boxes[sel.index] = geometry.RectOf(box).Translate(delta).Apply(box)
		return true
	}
	return false
}

// PointerUp finishes the current selection. Geometry is taken from the
// last move, not from p. A release at the press position is a plain
// click: a new box is dropped and a selected box returns to where it was
// pressed. Otherwise a new box is normalized and committed.
func (m *Machine) PointerUp(p types.Point) bool {
	if m.selected == nil {
		return false
	}
	m.last = p
	click := p == m.start

	switch sel := m.selected.(type) {
	case creating:
		if !click {
			box := geometry.NormalizeBox(sel.box)
			box.State = types.Idle
			m.boxes = append(m.boxes, box)
		}
	case moving:
		if click {
			m.boxes[sel.index].X = sel.origin.X
			m.boxes[sel.index].Y = sel.origin.Y
		}
		m.boxes[sel.index].State = types.Idle
	}
	m.selected = nil
	return true
}

// DeleteLast removes the most recently committed box. It returns false
// when there is nothing to delete.
func (m *Machine) DeleteLast() bool {
	n := len(m.boxes)
	if n == 0 {
		return false
	}
	if sel, ok := m.selected.(moving); ok && sel.index == n-1 {
		m.selected = nil
	}
	m.boxes = m.boxes[:n-1]
	return true
}

// Selected returns the state of the in-progress box
func (m *Machine) Selected() (types.BoxState, bool) {
	if m.selected == nil {
		return types.Idle, false
	}
	return m.selected.state(), true
}

// Len returns the number of committed boxes
func (m *Machine) Len() int {
	return len(m.boxes)
}

// Committed returns a copy of the committed boxes in z-order
func (m *Machine) Committed() []types.CanvasBox {
	return append([]types.CanvasBox(nil), m.boxes...)
}

// Frame returns every box to draw, bottom to top: the committed set and
// then the box in progress, if any. A box being moved is lifted out of
// its slot and drawn last.
func (m *Machine) Frame() []types.CanvasBox {
	out := make([]types.CanvasBox, 0, len(m.boxes)+1)
	switch sel := m.selected.(type) {
	case creating:
		out = append(out, m.boxes...)
		out = append(out, sel.box)
	case moving:
		out = append(out, m.boxes[:sel.index]...)
		out = append(out, m.boxes[sel.index+1:]...)
		out = append(out, m.boxes[sel.index])
	default:
		out = append(out, m.boxes...)
	}
	return out
}
