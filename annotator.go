// Package boxannotator provides interactive bounding-box annotation over
// an image.
//
// An Annotator draws an image onto a Surface and lets a user draw, move
// and delete labelled rectangles with pointer and keyboard events. The
// host reads the committed rectangles back in image-pixel coordinates.
//
// Basic usage:
//
//	package main
//
//	import (
//		"context"
//		"fmt"
//		"log"
//
//		boxannotator "github.com/menta2k/box-annotator"
//		"github.com/menta2k/box-annotator/pkg/input"
//		"github.com/menta2k/box-annotator/pkg/loader"
//		"github.com/menta2k/box-annotator/pkg/render"
//	)
//
//	func main() {
//		surface := render.NewCanvas(400, 300)
//		events := input.NewBus()
//
//		ann, err := boxannotator.New(surface, loader.Path("photo.jpg"),
//			boxannotator.WithLabel("person"),
//			boxannotator.WithInput(events))
//		if err != nil {
//			log.Fatal(err)
//		}
//		if err := ann.Wait(context.Background()); err != nil {
//			log.Fatal(err)
//		}
//
//		events.Pointer(input.PointerEvent{Kind: input.PointerDown, X: 20, Y: 20, Button: input.ButtonLeft})
//		events.Pointer(input.PointerEvent{Kind: input.PointerMove, X: 120, Y: 90})
//		events.Pointer(input.PointerEvent{Kind: input.PointerUp, X: 120, Y: 90, Button: input.ButtonLeft})
//
//		for _, b := range ann.Boxes() {
//			fmt.Printf("%s %.0f,%.0f %.0fx%.0f\n", b.Label, b.X, b.Y, b.Width, b.Height)
//		}
//	}
//
// The package consists of these components:
//
// 1. Geometry (pkg/geometry): rectangle normalization and topmost-first hit testing
// 2. Mapper (pkg/mapper): client/surface/image coordinate conversion and the aspect check
// 3. Interaction (pkg/interaction): the create/move/delete state machine
// 4. Render (pkg/render): the drawing surface, a gg-backed canvas and the styled renderer
// 5. Loader (pkg/loader): image sources (files, URLs, readers) including WebP
//
// The surface must have the same aspect ratio as the image (within 1%).
// A mismatch is a configuration error and leaves the annotator inert.
package boxannotator

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/samber/lo"

	"github.com/menta2k/box-annotator/pkg/cropper"
	"github.com/menta2k/box-annotator/pkg/input"
	"github.com/menta2k/box-annotator/pkg/interaction"
	"github.com/menta2k/box-annotator/pkg/loader"
	"github.com/menta2k/box-annotator/pkg/mapper"
	"github.com/menta2k/box-annotator/pkg/render"
	"github.com/menta2k/box-annotator/pkg/types"
)

// Version of the box annotator library
const Version = "1.0.0"

var (
	ErrAspectMismatch    = mapper.ErrAspectMismatch
	ErrInvalidDimensions = mapper.ErrInvalidDimensions
	ErrNoSurface         = render.ErrNoSurface
	ErrInvalidStyle      = render.ErrInvalidStyle
	ErrImageLoad         = loader.ErrImageLoad
	ErrNoSource          = errors.New("no image source")
	ErrClosed            = errors.New("annotator closed")
)

// ConfigError reports a misconfiguration that halts initialization
type ConfigError = mapper.ConfigError

// Config holds the per-instance annotator settings
type Config struct {
	Label       string
	Styles      types.StyleSet
	Calibration types.Point
	ShowLabels  bool
}

// DefaultConfig returns the built-in styles, an empty label and the
// default cursor calibration.
func DefaultConfig() Config {
	return Config{
		Styles:      types.DefaultStyles(),
		Calibration: mapper.DefaultCalibration,
	}
}

// Annotator owns the box set of one image on one surface
type Annotator struct {
	mu sync.Mutex

	surface  render.Surface
	source   loader.Source
	renderer *render.Renderer
	machine  *interaction.Machine
	calib    types.Point
	logger   *slog.Logger
	input    input.Source
	onError  func(error)
	onLoad   func(loader.ImageInfo)

	img     image.Image
	display image.Image
	mapper  *mapper.Mapper
	loaded  bool
	closed  bool
	unsub   func()
	cancel  context.CancelFunc
	done    chan struct{}
	loadErr error
}

// New validates the setup and starts loading the image in the background.
// Interaction is possible once Wait returns nil.
func New(surface render.Surface, source loader.Source, opts ...Option) (*Annotator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	if surface == nil {
		return nil, &ConfigError{Op: "new annotator", Err: ErrNoSurface}
	}
	if source == nil {
		return nil, &ConfigError{Op: "new annotator", Err: ErrNoSource}
	}
	renderer, err := render.NewRenderer(o.config.Styles)
	if err != nil {
		return nil, &ConfigError{Op: "styles", Err: err}
	}
	renderer.ShowLabels(o.config.ShowLabels)

	ctx, cancel := context.WithCancel(o.ctx)
	a := &Annotator{
		surface:  surface,
		source:   source,
		renderer: renderer,
		machine:  interaction.New(o.config.Label),
		calib:    o.config.Calibration,
		logger:   o.logger,
		input:    o.input,
		onError:  o.onError,
		onLoad:   o.onLoad,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	go a.load(ctx)
	return a, nil
}

func (a *Annotator) load(ctx context.Context) {
	defer close(a.done)
	a.logger.Debug("loading image", "source", a.source.String())

	img, err := a.source.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrImageLoad) {
			err = fmt.Errorf("%w: %v", ErrImageLoad, err)
		}
		a.fail(err)
		return
	}

	info := loader.Info(img)
	sw, sh := a.surface.Size()
	m, err := mapper.New(mapper.Size{Width: sw, Height: sh}, mapper.Size{Width: info.Width, Height: info.Height})
	if err != nil {
		a.fail(err)
		return
	}

	a.mu.Lock()
	if a.closed {
		a.mu.Unlock()
		a.fail(ErrClosed)
		return
	}
	a.img = img
	a.display = loader.Fit(img, sw, sh)
	a.mapper = m
	a.loaded = true
	a.redraw()
	a.mu.Unlock()

	if a.input != nil {
		unsub := a.input.Subscribe(a)
		a.mu.Lock()
		if a.closed {
			unsub()
		} else {
			a.unsub = unsub
		}
		a.mu.Unlock()
	}

	a.logger.Info("image loaded", "source", a.source.String(),
		"width", info.Width, "height", info.Height, "surface_width", sw, "surface_height", sh)
	if a.onLoad != nil {
		a.onLoad(info)
	}
}

func (a *Annotator) fail(err error) {
	a.mu.Lock()
	a.loadErr = err
	a.mu.Unlock()

	var cfgErr *ConfigError
	if errors.As(err, &cfgErr) {
		a.logger.Error("configuration error", "source", a.source.String(), "error", err)
	} else {
		a.logger.Error("image load failed", "source", a.source.String(), "error", err)
	}
	if a.onError != nil {
		a.onError(err)
	}
}

// Done is closed when the load attempt has finished, successfully or not
func (a *Annotator) Done() <-chan struct{} {
	return a.done
}

// Wait blocks until the image is loaded and returns the load error, if any
func (a *Annotator) Wait(ctx context.Context) error {
	select {
	case <-a.done:
		return a.Err()
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Err returns the load or configuration error. It is nil while loading.
func (a *Annotator) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loadErr
}

// Close detaches the annotator from its input source and stops a pending load
func (a *Annotator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.closed = true
	a.loaded = false
	a.cancel()
	if a.unsub != nil {
		a.unsub()
		a.unsub = nil
	}
}

// HandlePointer feeds a pointer event given in client coordinates
func (a *Annotator) HandlePointer(e input.PointerEvent) {
	if !e.Primary() {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.loaded {
		return
	}

	p := mapper.ClientToSurface(e.X, e.Y, a.calib)
	var changed bool
	switch e.Kind {
	case input.PointerDown:
		changed = a.machine.PointerDown(p)
		if state, ok := a.machine.Selected(); ok {
			a.logger.Debug("selection started", "state", state, "x", p.X, "y", p.Y)
		}
	case input.PointerMove:
		changed = a.machine.PointerMove(p)
	case input.PointerUp:
		before := a.machine.Len()
		state, active := a.machine.Selected()
		changed = a.machine.PointerUp(p)
		switch {
		case a.machine.Len() > before:
			a.logger.Debug("box committed", "label", a.machine.Label(), "count", a.machine.Len())
		case active && state == types.Moving:
			a.logger.Debug("box moved", "x", p.X, "y", p.Y)
		}
	}
	if changed {
		a.redraw()
	}
}

// HandleKey feeds a key event. Backspace and Delete remove the most
// recently committed box.
func (a *Annotator) HandleKey(e input.KeyEvent) {
	if !e.IsDelete() {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.loaded {
		return
	}
	if a.machine.DeleteLast() {
		a.logger.Debug("box deleted", "count", a.machine.Len())
		a.redraw()
	}
}

// redraw must be called with mu held
func (a *Annotator) redraw() {
	if err := a.renderer.Draw(a.surface, a.display, a.machine.Frame()); err != nil {
		a.logger.Error("redraw failed", "error", err)
	}
}

// Label returns the label applied to new boxes
func (a *Annotator) Label() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.machine.Label()
}

// SetLabel sets the label for boxes created from now on
func (a *Annotator) SetLabel(label string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.machine.SetLabel(label)
}

// Style returns the style drawn for state
func (a *Annotator) Style(state types.BoxState) types.Style {
	return a.renderer.Style(state)
}

// SetStyle replaces the style for state. It takes effect on the next redraw.
func (a *Annotator) SetStyle(state types.BoxState, st types.Style) error {
	return a.renderer.SetStyle(state, st)
}

// Boxes returns the committed boxes in creation order, in image pixels
func (a *Annotator) Boxes() []types.Box {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.mapper == nil {
		return []types.Box{}
	}
	return lo.Map(a.machine.Committed(), func(b types.CanvasBox, _ int) types.Box {
		return a.mapper.ToImage(b)
	})
}

// Len returns the number of committed boxes
func (a *Annotator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.machine.Len()
}

// Image returns the natural image, or nil before it has loaded
func (a *Annotator) Image() image.Image {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.img
}

// Crops cuts every committed box out of the natural image
func (a *Annotator) Crops() ([]cropper.CropResult, error) {
	img := a.Image()
	if img == nil {
		return nil, ErrImageLoad
	}
	return cropper.CropAll(img, a.Boxes())
}

// Frame returns a copy of the last rendered frame when the surface is a
// render.Canvas.
func (a *Annotator) Frame() (image.Image, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	c, ok := a.surface.(*render.Canvas)
	if !ok {
		return nil, false
	}
	return imaging.Clone(c.Image()), true
}
