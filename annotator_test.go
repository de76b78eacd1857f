package boxannotator

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/menta2k/box-annotator/pkg/input"
	"github.com/menta2k/box-annotator/pkg/loader"
	"github.com/menta2k/box-annotator/pkg/render"
	"github.com/menta2k/box-annotator/pkg/types"
)

// createTestImage creates a solid test image
func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{64, 64, 64, 255})
		}
	}
	return img
}

type failingSource struct{ err error }

func (f failingSource) Load(context.Context) (image.Image, error) { return nil, f.err }
func (f failingSource) String() string                            { return "failing" }

func waitReady(t *testing.T, a *Annotator) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, a.Wait(ctx))
}

func newLoaded(t *testing.T, surfaceW, surfaceH, imgW, imgH int, opts ...Option) (*Annotator, *input.Bus) {
	t.Helper()
	bus := input.NewBus()
	opts = append([]Option{WithInput(bus)}, opts...)
	a, err := New(render.NewCanvas(surfaceW, surfaceH), loader.Static{Image: createTestImage(imgW, imgH)}, opts...)
	require.NoError(t, err)
	waitReady(t, a)
	return a, bus
}

func down(x, y float64) input.PointerEvent {
	return input.PointerEvent{Kind: input.PointerDown, X: x, Y: y, Button: input.ButtonLeft}
}

func move(x, y float64) input.PointerEvent {
	return input.PointerEvent{Kind: input.PointerMove, X: x, Y: y}
}

func up(x, y float64) input.PointerEvent {
	return input.PointerEvent{Kind: input.PointerUp, X: x, Y: y, Button: input.ButtonLeft}
}

func dragClient(bus *input.Bus, x0, y0, x1, y1 float64) {
	bus.Pointer(down(x0, y0))
	bus.Pointer(move(x1, y1))
	bus.Pointer(up(x1, y1))
}

func TestScenarioScaledExport(t *testing.T) {
	a, bus := newLoaded(t, 200, 100, 400, 200)
	defer a.Close()

	dragClient(bus, 10, 10, 60, 40)

	boxes := a.Boxes()
	require.Len(t, boxes, 1)
	assert.Equal(t, types.Box{X: 0, Y: 0, Width: 100, Height: 60}, boxes[0])
}

func TestScenarioAspectMismatch(t *testing.T) {
	bus := input.NewBus()
	var reported error
	a, err := New(render.NewCanvas(100, 100), loader.Static{Image: createTestImage(400, 100)},
		WithInput(bus), WithErrorHandler(func(err error) { reported = err }))
	require.NoError(t, err)

	err = a.Wait(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAspectMismatch))
	var cfgErr *ConfigError
	assert.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, err, reported)

	// inert: no listener attached, no boxes creatable
	assert.Equal(t, 0, bus.Len())
	a.HandlePointer(down(10, 10))
	a.HandlePointer(up(60, 40))
	assert.Empty(t, a.Boxes())
}

func TestLoadFailureLeavesInert(t *testing.T) {
	bus := input.NewBus()
	a, err := New(render.NewCanvas(100, 100), failingSource{err: errors.New("404")}, WithInput(bus))
	require.NoError(t, err)

	err = a.Wait(context.Background())
	assert.ErrorIs(t, err, ErrImageLoad)
	assert.Equal(t, err, a.Err())
	assert.Equal(t, 0, bus.Len())
	assert.Nil(t, a.Image())

	_, err = a.Crops()
	assert.Error(t, err)
}

func TestNewValidation(t *testing.T) {
	_, err := New(nil, loader.Static{Image: createTestImage(10, 10)})
	assert.ErrorIs(t, err, ErrNoSurface)

	_, err = New(render.NewCanvas(10, 10), nil)
	assert.ErrorIs(t, err, ErrNoSource)

	_, err = New(render.NewCanvas(10, 10), loader.Static{Image: createTestImage(10, 10)},
		WithStyles(types.StyleSet{types.Idle: {StrokeStyle: "crimsonish"}}))
	assert.ErrorIs(t, err, ErrInvalidStyle)
	var cfgErr *ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestEventsBeforeLoadAreIgnored(t *testing.T) {
	release := make(chan struct{})
	src := blockingSource{release: release, img: createTestImage(200, 100)}
	a, err := New(render.NewCanvas(200, 100), src)
	require.NoError(t, err)

	a.HandlePointer(down(10, 10))
	a.HandlePointer(up(60, 40))
	close(release)
	waitReady(t, a)
	assert.Empty(t, a.Boxes())
}

type blockingSource struct {
	release chan struct{}
	img     image.Image
}

func (b blockingSource) Load(ctx context.Context) (image.Image, error) {
	select {
	case <-b.release:
		return b.img, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
func (b blockingSource) String() string { return "blocking" }

func TestBoxesInCreationOrder(t *testing.T) {
	a, bus := newLoaded(t, 300, 200, 900, 600)
	defer a.Close()

	a.SetLabel("a")
	dragClient(bus, 20, 20, 40, 40)
	a.SetLabel("b")
	dragClient(bus, 110, 60, 60, 30)
	a.SetLabel("c")
	dragClient(bus, 200, 150, 250, 190)

	boxes := a.Boxes()
	require.Len(t, boxes, 3)
	assert.Equal(t, types.Box{Label: "a", X: 30, Y: 30, Width: 60, Height: 60}, boxes[0])
	assert.Equal(t, types.Box{Label: "b", X: 150, Y: 60, Width: 150, Height: 90}, boxes[1])
	assert.Equal(t, types.Box{Label: "c", X: 570, Y: 420, Width: 150, Height: 120}, boxes[2])
	assert.Equal(t, 3, a.Len())
}

func TestClickDoesNotCommit(t *testing.T) {
	a, bus := newLoaded(t, 200, 100, 200, 100)
	defer a.Close()

	bus.Pointer(down(30, 30))
	bus.Pointer(up(30, 30))
	assert.Empty(t, a.Boxes())
}

func TestDeleteKey(t *testing.T) {
	a, bus := newLoaded(t, 200, 100, 200, 100)
	defer a.Close()

	bus.Key(input.KeyEvent{Key: input.KeyBackspace})
	assert.Empty(t, a.Boxes())

	dragClient(bus, 20, 20, 40, 40)
	dragClient(bus, 80, 20, 100, 40)
	bus.Key(input.KeyEvent{Key: "Enter"})
	assert.Len(t, a.Boxes(), 2)

	bus.Key(input.KeyEvent{Key: input.KeyDelete})
	boxes := a.Boxes()
	require.Len(t, boxes, 1)
	assert.Equal(t, 10.0, boxes[0].X)
}

func TestRightButtonIgnored(t *testing.T) {
	a, bus := newLoaded(t, 200, 100, 200, 100)
	defer a.Close()

	bus.Pointer(input.PointerEvent{Kind: input.PointerDown, X: 20, Y: 20, Button: input.ButtonRight})
	bus.Pointer(move(60, 60))
	bus.Pointer(input.PointerEvent{Kind: input.PointerUp, X: 60, Y: 60, Button: input.ButtonRight})
	assert.Empty(t, a.Boxes())
}

func TestLabelAndStyleAccessors(t *testing.T) {
	a, _ := newLoaded(t, 100, 100, 100, 100, WithLabel("dog"))
	defer a.Close()

	assert.Equal(t, "dog", a.Label())
	a.SetLabel("cat")
	assert.Equal(t, "cat", a.Label())

	st := types.Style{StrokeStyle: "#123456", FillStyle: "transparent", LineWidth: 4}
	require.NoError(t, a.SetStyle(types.Moving, st))
	assert.Equal(t, st, a.Style(types.Moving))
	assert.Error(t, a.SetStyle(types.Moving, types.Style{StrokeStyle: "x"}))
	assert.Equal(t, st, a.Style(types.Moving))
}

func TestFrameShowsBoxes(t *testing.T) {
	a, bus := newLoaded(t, 100, 100, 100, 100, WithStyles(types.StyleSet{
		types.Idle: {StrokeStyle: "#ff0000", FillStyle: "#ffffff", LineWidth: 2},
	}))
	defer a.Close()

	frame, ok := a.Frame()
	require.True(t, ok)
	r, g, b, _ := frame.At(50, 50).RGBA()
	assert.Equal(t, uint32(64), r>>8)
	assert.Equal(t, uint32(64), g>>8)
	assert.Equal(t, uint32(64), b>>8)

	dragClient(bus, 30, 30, 90, 90)
	frame, _ = a.Frame()
	r, g, b, _ = frame.At(50, 50).RGBA()
	assert.Equal(t, uint32(255), r>>8)
	assert.Equal(t, uint32(255), g>>8)
	assert.Equal(t, uint32(255), b>>8)
}

func TestCrops(t *testing.T) {
	a, bus := newLoaded(t, 200, 100, 400, 200)
	defer a.Close()

	dragClient(bus, 10, 10, 60, 40)
	crops, err := a.Crops()
	require.NoError(t, err)
	require.Len(t, crops, 1)
	assert.Equal(t, image.Rect(0, 0, 100, 60), crops[0].Rect)
}

func TestCloseDetaches(t *testing.T) {
	a, bus := newLoaded(t, 200, 100, 200, 100)
	assert.Equal(t, 1, bus.Len())
	a.Close()
	a.Close()
	assert.Equal(t, 0, bus.Len())

	dragClient(bus, 20, 20, 40, 40)
	a.HandlePointer(down(20, 20))
	assert.Empty(t, a.Boxes())
}

func TestCloseBeforeLoad(t *testing.T) {
	release := make(chan struct{})
	a, err := New(render.NewCanvas(200, 100), blockingSource{release: release, img: createTestImage(200, 100)})
	require.NoError(t, err)
	a.Close()
	assert.Error(t, a.Wait(context.Background()))
}

func TestLoadHandler(t *testing.T) {
	var got loader.ImageInfo
	a, _ := newLoaded(t, 200, 100, 400, 200, WithLoadHandler(func(info loader.ImageInfo) { got = info }))
	defer a.Close()
	assert.Equal(t, 400, got.Width)
	assert.Equal(t, 200, got.Height)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, types.Point{X: -10, Y: -10}, cfg.Calibration)
	assert.Len(t, cfg.Styles, 3)
	assert.Equal(t, "1.0.0", Version)
}
