package render

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/menta2k/box-annotator/pkg/geometry"
	"github.com/menta2k/box-annotator/pkg/types"
)

// ErrNoSurface is returned when there is nothing to draw on
var ErrNoSurface = errors.New("no drawing surface")

// labelPadding is the gap between a box corner and its label
const labelPadding = 3.0

// Renderer redraws the base image and the boxes with the style of each
// box's display state. Styles can be replaced at any time and apply from
// the next Draw.
type Renderer struct {
	mu         sync.RWMutex
	styles     types.StyleSet
	resolved   map[types.BoxState]resolved
	showLabels bool
}

// NewRenderer creates a renderer. Missing states use the default styles.
func NewRenderer(styles types.StyleSet) (*Renderer, error) {
	r := &Renderer{
		styles:   types.StyleSet{},
		resolved: map[types.BoxState]resolved{},
	}
	for state, st := range styles.WithDefaults() {
		if err := r.SetStyle(state, st); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Style returns a copy of the style drawn for state
func (r *Renderer) Style(state types.BoxState) types.Style {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.styles[state].Clone()
}

// SetStyle replaces the style for state. Invalid styles are rejected and
// the previous style stays in place.
func (r *Renderer) SetStyle(state types.BoxState, st types.Style) error {
	res, err := resolve(st)
	if err != nil {
		return fmt.Errorf("%s style: %w", state, err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.styles[state] = st.Clone()
	r.resolved[state] = res
	return nil
}

// ShowLabels toggles drawing each box label inside its top-left corner
func (r *Renderer) ShowLabels(show bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.showLabels = show
}

// Draw clears s, draws base at the origin and then every box in order
func (r *Renderer) Draw(s Surface, base image.Image, boxes []types.CanvasBox) error {
	if s == nil {
		return ErrNoSurface
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	s.Clear()
	if base != nil {
		s.DrawImage(base, 0, 0)
	}
	for _, b := range boxes {
		st, ok := r.resolved[b.State]
		if !ok {
			st = r.resolved[types.Idle]
		}
		err := scoped(s, st, func() error {
			rect := geometry.RectOf(b).Normalize()
			s.StrokeRect(rect.X, rect.Y, rect.Width, rect.Height)
			s.FillRect(rect.X, rect.Y, rect.Width, rect.Height)
			if r.showLabels && b.Label != "" {
				s.FillText(b.Label, rect.X+labelPadding, rect.Y+LabelFontSize+labelPadding)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// WithStyle applies st to s for the duration of fn. The surface state is
// restored when fn returns, fails or panics.
func WithStyle(s Surface, st types.Style, fn func() error) error {
	res, err := resolve(st)
	if err != nil {
		return err
	}
	return scoped(s, res, fn)
}

func scoped(s Surface, st resolved, fn func() error) error {
	s.Save()
	defer s.Restore()

	s.SetLineWidth(st.width)
	s.SetLineDash(st.dash)
	s.SetStrokeColor(st.stroke)
	s.SetFillColor(st.fill)
	return fn()
}
