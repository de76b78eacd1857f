package loader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// ErrImageLoad wraps every failure to obtain a decodable image
var ErrImageLoad = errors.New("image load failed")

// Source produces the image an annotator works on
type Source interface {
	Load(ctx context.Context) (image.Image, error)
	String() string
}

// Path loads an image from the local filesystem
type Path string

// URL downloads an image over http or https
type URL string

// Static serves an already decoded image
type Static struct {
	Image image.Image
	Name  string
}

type readerSource struct {
	r    io.Reader
	name string
}

// Reader decodes an image from r. The reader is consumed on first Load.
func Reader(r io.Reader, name string) Source {
	return &readerSource{r: r, name: name}
}

// FromString returns a URL source for http(s) addresses and a Path otherwise
func FromString(source string) Source {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return URL(source)
	}
	return Path(source)
}

func (p Path) String() string { return string(p) }

// Load tries imaging.Open first and falls back to an explicit WebP decode
func (p Path) Load(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	path := string(p)
	if img, err := imaging.Open(path); err == nil {
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	defer f.Close()

	if strings.HasSuffix(strings.ToLower(path), ".webp") {
		if img, err := webp.Decode(f); err == nil {
			return img, nil
		}
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
		}
	}
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: unknown format: %v", ErrImageLoad, path, err)
	}
	return img, nil
}

func (u URL) String() string { return string(u) }

// Load downloads the image, checking scheme, status and content type
func (u URL) Load(ctx context.Context) (image.Image, error) {
	parsed, err := url.Parse(string(u))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid URL: %v", ErrImageLoad, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: unsupported URL scheme: %s (only http and https are supported)", ErrImageLoad, parsed.Scheme)
	}

	client := &http.Client{Timeout: 30 * time.Second}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, string(u), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrImageLoad, err)
	}
	req.Header.Set("User-Agent", "box-annotator/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to download image: %v", ErrImageLoad, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: failed to download image: HTTP %s", ErrImageLoad, resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("%w: URL does not point to an image (Content-Type: %s)", ErrImageLoad, ct)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read image data: %v", ErrImageLoad, err)
	}
	return Decode(data)
}

func (s Static) String() string {
	if s.Name != "" {
		return s.Name
	}
	return "static image"
}

func (s Static) Load(ctx context.Context) (image.Image, error) {
	if s.Image == nil {
		return nil, fmt.Errorf("%w: no image", ErrImageLoad)
	}
	return s.Image, nil
}

func (r *readerSource) String() string { return r.name }

func (r *readerSource) Load(ctx context.Context) (image.Image, error) {
	data, err := io.ReadAll(r.r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageLoad, err)
	}
	return Decode(data)
}

// Decode decodes image bytes with the registered decoders, then WebP
func Decode(data []byte) (image.Image, error) {
	if img, _, err := image.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	if img, err := webp.Decode(bytes.NewReader(data)); err == nil {
		return img, nil
	}
	return nil, fmt.Errorf("%w: unknown or unsupported format", ErrImageLoad)
}

// ImageInfo contains basic image metadata
type ImageInfo struct {
	Width       int     `json:"width"`
	Height      int     `json:"height"`
	AspectRatio float64 `json:"aspect_ratio"`
}

// Info returns the natural size of img
func Info(img image.Image) ImageInfo {
	b := img.Bounds()
	info := ImageInfo{Width: b.Dx(), Height: b.Dy()}
	if info.Height > 0 {
		info.AspectRatio = float64(info.Width) / float64(info.Height)
	}
	return info
}

// Fit scales img to exactly width x height for display. The source is
// returned unchanged when it already has that size.
func Fit(img image.Image, width, height int) image.Image {
	b := img.Bounds()
	if b.Dx() == width && b.Dy() == height && b.Min == (image.Point{}) {
		return img
	}
	return imaging.Resize(img, width, height, imaging.Linear)
}
