package types

import (
	"fmt"
	"strings"
)

// Point is a 2D position in surface or client space
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Sub returns p - q
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p + q
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Box is an exported region in image-pixel coordinates.
// Width and Height are never negative.
type Box struct {
	Label  string  `json:"label"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// BoxState is the display state of a box
type BoxState int

const (
	Idle BoxState = iota
	Creating
	Moving
)

// BoxStates lists every state in declaration order
func BoxStates() []BoxState {
	return []BoxState{Idle, Creating, Moving}
}

func (s BoxState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Creating:
		return "creating"
	case Moving:
		return "moving"
	}
	return fmt.Sprintf("BoxState(%d)", int(s))
}

// ParseBoxState maps a state name back to its BoxState
func ParseBoxState(name string) (BoxState, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "idle":
		return Idle, nil
	case "creating":
		return Creating, nil
	case "moving":
		return Moving, nil
	}
	return Idle, fmt.Errorf("unknown box state %q", name)
}

// CanvasBox is a box in surface coordinates together with its display state.
// Width and Height may be negative while the box is being drawn.
type CanvasBox struct {
	Label  string
	X      float64
	Y      float64
	Width  float64
	Height float64
	State  BoxState
}

// Origin returns the top-left corner as stored (not normalized)
func (b CanvasBox) Origin() Point {
	return Point{X: b.X, Y: b.Y}
}

// Style holds the drawing parameters for one display state
type Style struct {
	FillStyle   string    `json:"fill_style" yaml:"fill_style"`
	StrokeStyle string    `json:"stroke_style" yaml:"stroke_style"`
	LineWidth   float64   `json:"line_width" yaml:"line_width"`
	LineDash    []float64 `json:"line_dash,omitempty" yaml:"line_dash,omitempty"`
}

// Clone returns a copy that does not share the dash slice
func (s Style) Clone() Style {
	if s.LineDash != nil {
		s.LineDash = append([]float64(nil), s.LineDash...)
	}
	return s
}

// StyleSet maps every display state to its style
type StyleSet map[BoxState]Style

// DefaultStyles returns the built-in style table
func DefaultStyles() StyleSet {
	return StyleSet{
		Idle: {
			FillStyle:   "#ff000022",
			StrokeStyle: "#ff0000",
			LineWidth:   2,
		},
		Creating: {
			FillStyle:   "#00ff0022",
			StrokeStyle: "#00ff00",
			LineWidth:   2,
			LineDash:    []float64{6, 4},
		},
		Moving: {
			FillStyle:   "#0000ff22",
			StrokeStyle: "#0000ff",
			LineWidth:   2,
			LineDash:    []float64{6, 4},
		},
	}
}

// Clone returns a deep copy of the set
func (ss StyleSet) Clone() StyleSet {
	out := make(StyleSet, len(ss))
	for k, v := range ss {
		out[k] = v.Clone()
	}
	return out
}

// WithDefaults fills any missing state from DefaultStyles
func (ss StyleSet) WithDefaults() StyleSet {
	out := ss.Clone()
	for state, style := range DefaultStyles() {
		if _, ok := out[state]; !ok {
			out[state] = style
		}
	}
	return out
}
