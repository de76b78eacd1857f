package mapper

import (
	"fmt"
	"math"

	"github.com/menta2k/box-annotator/pkg/geometry"
	"github.com/menta2k/box-annotator/pkg/types"
)

// AspectTolerance is the allowed relative difference between the surface
// and image aspect ratios.
const AspectTolerance = 0.01

// DefaultCalibration is added to client coordinates to compensate for the
// visual offset of the crosshair cursor.
var DefaultCalibration = types.Point{X: -10, Y: -10}

// ClientToSurface converts a client-space pointer position to surface space
func ClientToSurface(x, y float64, calibration types.Point) types.Point {
	return types.Point{X: x, Y: y}.Add(calibration)
}

// Size is a width/height pair in pixels
type Size struct {
	Width  int
	Height int
}

// AspectRatio returns width divided by height
func (s Size) AspectRatio() float64 {
	return float64(s.Width) / float64(s.Height)
}

func (s Size) valid() bool {
	return s.Width > 0 && s.Height > 0
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Mapper converts surface-space geometry to image space
type Mapper struct {
	surface Size
	natural Size
	scaleX  float64
	scaleY  float64
}

// New validates the surface against the image natural size and returns a
// mapper between them.
func New(surface, natural Size) (*Mapper, error) {
	if !surface.valid() {
		return nil, &ConfigError{Op: "surface " + surface.String(), Err: ErrInvalidDimensions}
	}
	if !natural.valid() {
		return nil, &ConfigError{Op: "image " + natural.String(), Err: ErrInvalidDimensions}
	}
	if err := CheckAspect(surface, natural); err != nil {
		return nil, err
	}
	return &Mapper{
		surface: surface,
		natural: natural,
		scaleX:  float64(natural.Width) / float64(surface.Width),
		scaleY:  float64(natural.Height) / float64(surface.Height),
	}, nil
}

// CheckAspect returns a ConfigError when the two aspect ratios differ by
// more than AspectTolerance relative to the image ratio.
func CheckAspect(surface, natural Size) error {
	sr := surface.AspectRatio()
	ir := natural.AspectRatio()
	if math.Abs(sr-ir)/ir > AspectTolerance {
		return &ConfigError{
			Op:  fmt.Sprintf("surface %s (%.3f) vs image %s (%.3f)", surface, sr, natural, ir),
			Err: ErrAspectMismatch,
		}
	}
	return nil
}

// Scale returns the natural/surface factor per axis
func (m *Mapper) Scale() (float64, float64) {
	return m.scaleX, m.scaleY
}

// Surface returns the surface size the mapper was built for
func (m *Mapper) Surface() Size {
	return m.surface
}

// Natural returns the image natural size
func (m *Mapper) Natural() Size {
	return m.natural
}

// ToImage maps a surface-space box to an image-space box
func (m *Mapper) ToImage(b types.CanvasBox) types.Box {
	r := geometry.RectOf(b).Normalize().Scale(m.scaleX, m.scaleY)
	return types.Box{
		Label:  b.Label,
		X:      r.X,
		Y:      r.Y,
		Width:  r.Width,
		Height: r.Height,
	}
}
