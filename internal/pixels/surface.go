package pixels

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// DefaultMaxPixels bounds the surfaces RasterProvider will allocate.
const DefaultMaxPixels = 1 << 26

// Surface is an offscreen drawing target of fixed size.
type Surface interface {
	// DrawScaled draws src stretched to cover the whole surface.
	DrawScaled(src image.Image)
	// PixelAt reads one pixel. Callers keep x and y inside the surface.
	PixelAt(x, y int) Pixel
}

// SurfaceProvider allocates surfaces for SampledImage.
type SurfaceProvider interface {
	NewSurface(width, height int) (Surface, error)
}

// RasterProvider allocates in-memory NRGBA surfaces and scales with an
// x/image/draw scaler.
type RasterProvider struct {
	Scaler    draw.Scaler
	MaxPixels int
}

// NewRasterProvider returns a provider using the given scaler. A nil scaler
// selects draw.ApproxBiLinear.
func NewRasterProvider(s draw.Scaler) *RasterProvider {
	if s == nil {
		s = draw.ApproxBiLinear
	}
	return &RasterProvider{Scaler: s, MaxPixels: DefaultMaxPixels}
}

func (p *RasterProvider) NewSurface(width, height int) (Surface, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: surface %dx%d", ErrInvalidDimensions, width, height)
	}
	limit := p.MaxPixels
	if limit <= 0 {
		limit = DefaultMaxPixels
	}
	if height > 0 && width > limit/height {
		return nil, fmt.Errorf("%w: %dx%d > %d", ErrSurfaceTooLarge, width, height, limit)
	}
	scaler := p.Scaler
	if scaler == nil {
		scaler = draw.ApproxBiLinear
	}
	return &rasterSurface{
		img:    image.NewNRGBA(image.Rect(0, 0, width, height)),
		scaler: scaler,
	}, nil
}

type rasterSurface struct {
	img    *image.NRGBA
	scaler draw.Scaler
}

func (s *rasterSurface) DrawScaled(src image.Image) {
	dr := s.img.Bounds()
	if dr.Empty() {
		return
	}
	s.scaler.Scale(s.img, dr, src, src.Bounds(), draw.Over, nil)
}

func (s *rasterSurface) PixelAt(x, y int) Pixel {
	return FromNRGBA(s.img.NRGBAAt(x, y))
}
