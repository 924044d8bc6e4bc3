package imaging

import (
	"context"
	"image"
	_ "image/jpeg" // registers JPEG decoding
	_ "image/png"  // registers PNG decoding
	"io/fs"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/image/draw"
)

// ImageNotFoundError reports a path that does not resolve to a file.
type ImageNotFoundError struct {
	Path  string
	cause error
}

func (e *ImageNotFoundError) Error() string {
	return "image not found: " + e.Path
}

func (e *ImageNotFoundError) Unwrap() error { return e.cause }

// Loader decodes image files, resizes them to a square target and scales
// intensities into [0,1]. Decoded sources are cached by path, so loading the
// grayscale and color variants of one file decodes it once.
type Loader struct {
	cache  *lru.Cache[string, image.Image]
	logger *zap.Logger
}

// NewLoader creates a Loader caching up to cacheSize decoded files.
func NewLoader(cacheSize int, logger *zap.Logger) (*Loader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cache, err := lru.New[string, image.Image](max(cacheSize, 1))
	if err != nil {
		return nil, errors.Wrap(err, "new loader")
	}
	return &Loader{cache: cache, logger: logger}, nil
}

// LoadGray loads path as a size×size grayscale image.
func (l *Loader) LoadGray(ctx context.Context, path string, size int) (Gray, error) {
	src, err := l.decode(ctx, path)
	if err != nil {
		return nil, err
	}
	return ToGray(src, size), nil
}

// LoadRGB loads path as a size×size color image.
func (l *Loader) LoadRGB(ctx context.Context, path string, size int) (RGB, error) {
	src, err := l.decode(ctx, path)
	if err != nil {
		return nil, err
	}
	return ToRGB(src, size), nil
}

func (l *Loader) decode(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if img, ok := l.cache.Get(path); ok {
		l.logger.Debug("image cache hit", zap.String("path", path))
		return img, nil
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ImageNotFoundError{Path: path, cause: err}
		}
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	l.logger.Debug("decoded image",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	l.cache.Add(path, img)
	return img, nil
}

func resize(src image.Image, size int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.BiLinear.Scale(dst, dst.Rect, src, src.Bounds(), draw.Over, nil)
	return dst
}

// ToGray resizes src to size×size and converts it to normalized luminance
// using the ITU-R BT.601 weights.
func ToGray(src image.Image, size int) Gray {
	dst := resize(src, size)
	out := make(Gray, size)
	for y := range size {
		out[y] = make([]float64, size)
		for x := range size {
			r, g, b, _ := dst.At(x, y).RGBA()
			lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
			out[y][x] = min(lum/255.0, 1)
		}
	}
	return out
}

// ToRGB resizes src to size×size and normalizes every channel.
func ToRGB(src image.Image, size int) RGB {
	dst := resize(src, size)
	out := make(RGB, size)
	for y := range size {
		out[y] = make([]Pixel, size)
		for x := range size {
			r, g, b, _ := dst.At(x, y).RGBA()
			out[y][x] = Pixel{float64(r>>8) / 255.0, float64(g>>8) / 255.0, float64(b>>8) / 255.0}
		}
	}
	return out
}
