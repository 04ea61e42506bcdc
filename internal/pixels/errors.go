package pixels

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions indicates a zero, negative or non-finite size.
	ErrInvalidDimensions = errors.New("pixels: invalid dimensions")

	// ErrOutOfBounds indicates a sample query outside the grid.
	ErrOutOfBounds = errors.New("pixels: coordinate out of bounds")

	// ErrSurfaceTooLarge indicates the provider refused to allocate a surface.
	ErrSurfaceTooLarge = errors.New("pixels: surface exceeds pixel limit")
)

// ConstructionError wraps a failure to build a SampledImage.
type ConstructionError struct {
	SourceWidth  int
	SourceHeight int
	TargetWidth  float64
	Stretch      float64
	Wrapped      error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("pixels: cannot sample %dx%d image at width %g stretch %g: %v",
		e.SourceWidth, e.SourceHeight, e.TargetWidth, e.Stretch, e.Wrapped)
}

func (e *ConstructionError) Unwrap() error {
	return e.Wrapped
}

// OutOfBoundsError reports the offending coordinate and the grid size.
type OutOfBoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("pixels: (%d, %d) outside %dx%d grid", e.X, e.Y, e.Width, e.Height)
}

func (e *OutOfBoundsError) Unwrap() error {
	return ErrOutOfBounds
}
