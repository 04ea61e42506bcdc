package render

import "github.com/san-kum/pixtext/internal/pixels"

const (
	// AlphaThreshold is the alpha below which a pixel counts as background.
	AlphaThreshold = 0.1
	// WhiteThreshold is the channel value all of r, g and b must exceed for
	// a pixel to count as white.
	WhiteThreshold = 250
)

// IsWhiteOrTransparent reports whether a color is background: nearly
// transparent, or nearly white.
func IsWhiteOrTransparent(r, g, b uint8, a float64) bool {
	return a < AlphaThreshold || IsWhite(r, g, b)
}

// IsWhite ignores alpha.
func IsWhite(r, g, b uint8) bool {
	return r > WhiteThreshold && g > WhiteThreshold && b > WhiteThreshold
}

// IsInk is the default foreground test.
func IsInk(p pixels.Pixel) bool {
	return !IsWhiteOrTransparent(p.R, p.G, p.B, p.A)
}

// IsNotWhite treats any non-white pixel as ink, transparent ones included.
func IsNotWhite(p pixels.Pixel) bool {
	return !IsWhite(p.R, p.G, p.B)
}

// IsOpaque treats any pixel at or above AlphaThreshold as ink.
func IsOpaque(p pixels.Pixel) bool {
	return p.A >= AlphaThreshold
}

// DarkerThan returns a predicate matching visible pixels whose luminance
// is below threshold (0-255).
func DarkerThan(threshold float64) func(pixels.Pixel) bool {
	return func(p pixels.Pixel) bool {
		return p.A >= AlphaThreshold && p.Luminance() < threshold
	}
}

// Glyphs builds a CharForPixel that writes ink for pixels matching pred and
// blank otherwise. A nil pred means IsInk.
func Glyphs(ink, blank string, pred func(pixels.Pixel) bool) func(pixels.Pixel, int) string {
	if pred == nil {
		pred = IsInk
	}
	return func(p pixels.Pixel, _ int) string {
		if pred(p) {
			return ink
		}
		return blank
	}
}

// DefaultCharForPixel writes "x" for ink and a space for background.
func DefaultCharForPixel(p pixels.Pixel, _ int) string {
	if IsInk(p) {
		return "x"
	}
	return " "
}
