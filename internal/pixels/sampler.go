package pixels

import (
	"fmt"
	"image"
	"math"

	"github.com/san-kum/pixtext/internal/logging"
)

// SampledImage is a source image rasterized at a target width and vertical
// stretch. It is read-only after New.
type SampledImage struct {
	width   int
	height  int
	surface Surface
}

type settings struct {
	provider SurfaceProvider
}

// Option configures New.
type Option func(*settings)

// WithProvider injects the surface provider. The default is
// NewRasterProvider(nil).
func WithProvider(p SurfaceProvider) Option {
	return func(s *settings) {
		if p != nil {
			s.provider = p
		}
	}
}

/*
New rasterizes img onto a surface of targetWidth columns.

A targetWidth of 0 selects the intrinsic width of img, and a stretch of 0
selects 1. The row count is

	targetWidth * (img height / img width) * stretch

so it follows the source aspect ratio scaled by stretch, never the source
height itself. Both dimensions are truncated toward zero before the
surface is allocated. The image is stretched to fill the surface with no
letterboxing or cropping.
*/
func New(img image.Image, targetWidth, stretch float64, opts ...Option) (*SampledImage, error) {
	cfg := settings{}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.provider == nil {
		cfg.provider = NewRasterProvider(nil)
	}

	fail := func(err error) (*SampledImage, error) {
		ce := &ConstructionError{TargetWidth: targetWidth, Stretch: stretch, Wrapped: err}
		if img != nil {
			ce.SourceWidth, ce.SourceHeight = img.Bounds().Dx(), img.Bounds().Dy()
		}
		return nil, ce
	}

	if img == nil {
		return fail(fmt.Errorf("%w: nil image", ErrInvalidDimensions))
	}
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()
	if srcW <= 0 || srcH <= 0 {
		return fail(fmt.Errorf("%w: source is %dx%d", ErrInvalidDimensions, srcW, srcH))
	}

	if !finite(targetWidth) || targetWidth < 0 {
		return fail(fmt.Errorf("%w: target width %g", ErrInvalidDimensions, targetWidth))
	}
	if targetWidth == 0 {
		targetWidth = float64(srcW)
	}
	if !finite(stretch) || stretch < 0 {
		return fail(fmt.Errorf("%w: stretch %g", ErrInvalidDimensions, stretch))
	}
	if stretch == 0 {
		stretch = 1
	}

	h := targetWidth * (float64(srcH) / float64(srcW)) * stretch
	if !finite(h) || h > math.MaxInt32 || targetWidth > math.MaxInt32 {
		return fail(fmt.Errorf("%w: computed size %gx%g", ErrInvalidDimensions, targetWidth, h))
	}
	width, height := int(targetWidth), int(h)
	if width == 0 || height == 0 {
		logging.Logger().Debug("sampled grid is empty",
			"target_width", targetWidth, "target_height", h, "stretch", stretch)
	}

	surface, err := cfg.provider.NewSurface(width, height)
	if err != nil {
		return fail(err)
	}
	surface.DrawScaled(img)

	logging.Logger().Debug("sampled image",
		"source_width", srcW, "source_height", srcH,
		"width", width, "height", height, "stretch", stretch)

	return &SampledImage{width: width, height: height, surface: surface}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Width is the number of output columns.
func (s *SampledImage) Width() int { return s.width }

// Height is the number of output rows.
func (s *SampledImage) Height() int { return s.height }

// Get returns the pixel at column x, row y. Coordinates outside the grid
// are never clamped; they yield an *OutOfBoundsError.
func (s *SampledImage) Get(x, y int) (Pixel, error) {
	if x < 0 || y < 0 || x >= s.width || y >= s.height {
		return Pixel{}, &OutOfBoundsError{X: x, Y: y, Width: s.width, Height: s.height}
	}
	return s.surface.PixelAt(x, y), nil
}
