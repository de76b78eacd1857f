package render

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	"github.com/mazznoer/csscolorparser"

	"github.com/menta2k/box-annotator/pkg/types"
)

// ErrInvalidStyle is returned for styles that cannot be drawn
var ErrInvalidStyle = errors.New("invalid style")

// ParseColor parses a CSS color: named colors, hex, rgb(), rgba(),
// hsl() and the keyword "transparent". An empty string is transparent.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{}, nil
	}
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: %v", ErrInvalidStyle, err)
	}
	r, g, b, a := c.RGBA255()
	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// resolved is a style with its colors parsed
type resolved struct {
	fill   color.NRGBA
	stroke color.NRGBA
	width  float64
	dash   []float64
}

func resolve(st types.Style) (resolved, error) {
	fill, err := ParseColor(st.FillStyle)
	if err != nil {
		return resolved{}, fmt.Errorf("fill_style: %w", err)
	}
	stroke, err := ParseColor(st.StrokeStyle)
	if err != nil {
		return resolved{}, fmt.Errorf("stroke_style: %w", err)
	}
	if st.LineWidth < 0 {
		return resolved{}, fmt.Errorf("%w: line_width %v is negative", ErrInvalidStyle, st.LineWidth)
	}
	for _, d := range st.LineDash {
		if d < 0 {
			return resolved{}, fmt.Errorf("%w: line_dash segment %v is negative", ErrInvalidStyle, d)
		}
	}
	return resolved{
		fill:   fill,
		stroke: stroke,
		width:  st.LineWidth,
		dash:   append([]float64(nil), st.LineDash...),
	}, nil
}

// ValidateStyle reports whether st can be drawn
func ValidateStyle(st types.Style) error {
	_, err := resolve(st)
	return err
}
