package cropper

import (
	"fmt"
	"image"
	"math"

	"github.com/disintegration/imaging"

	"github.com/menta2k/box-annotator/pkg/types"
)

// CropResult is one annotated region cut out of the natural image
type CropResult struct {
	Box   types.Box
	Rect  image.Rectangle
	Image image.Image
}

// PixelRect rounds an image-space box outwards to whole pixels and clips
// it to bounds.
func PixelRect(b types.Box, bounds image.Rectangle) image.Rectangle {
	x0 := int(math.Floor(b.X))
	y0 := int(math.Floor(b.Y))
	x1 := int(math.Ceil(b.X + b.Width))
	y1 := int(math.Ceil(b.Y + b.Height))
	return image.Rect(x0, y0, x1, y1).Add(bounds.Min).Intersect(bounds)
}

// Crop cuts a single box out of img
func Crop(img image.Image, b types.Box) (CropResult, error) {
	rect := PixelRect(b, img.Bounds())
	if rect.Empty() {
		return CropResult{}, fmt.Errorf("box %q at %.1f,%.1f %.1fx%.1f is outside the image",
			b.Label, b.X, b.Y, b.Width, b.Height)
	}
	return CropResult{
		Box:   b,
		Rect:  rect,
		Image: imaging.Crop(img, rect),
	}, nil
}

// CropAll crops every box in order
func CropAll(img image.Image, boxes []types.Box) ([]CropResult, error) {
	results := make([]CropResult, 0, len(boxes))
	for i, b := range boxes {
		res, err := Crop(img, b)
		if err != nil {
			return nil, fmt.Errorf("failed to crop box %d: %w", i, err)
		}
		results = append(results, res)
	}
	return results, nil
}
