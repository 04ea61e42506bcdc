package pixels

import "image/color"

// Pixel is one sampled color. R, G and B are straight (non-premultiplied)
// channel values; A is alpha normalized to [0, 1].
type Pixel struct {
	R, G, B uint8
	A       float64
}

// FromNRGBA converts a non-premultiplied color.
func FromNRGBA(c color.NRGBA) Pixel {
	return Pixel{R: c.R, G: c.G, B: c.B, A: float64(c.A) / 255}
}

// FromColor converts any color through the NRGBA model.
func FromColor(c color.Color) Pixel {
	return FromNRGBA(color.NRGBAModel.Convert(c).(color.NRGBA))
}

// Luminance is the Rec. 709 weighted sum of the channels, in [0, 255].
// Alpha is ignored.
func (p Pixel) Luminance() float64 {
	return 0.2126*float64(p.R) + 0.7152*float64(p.G) + 0.0722*float64(p.B)
}

// NRGBA returns the pixel as a color with alpha rounded back to 8 bits.
func (p Pixel) NRGBA() color.NRGBA {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: uint8(p.A*255 + 0.5)}
}
