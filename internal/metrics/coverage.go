package metrics

import (
	"github.com/san-kum/pixtext/internal/pixels"
	"github.com/san-kum/pixtext/internal/render"
)

// InkCoverage is the fraction of pixels matching the ink predicate.
type InkCoverage struct {
	name    string
	ink     func(pixels.Pixel) bool
	hits    int
	samples int
}

// NewInkCoverage uses render.IsInk when ink is nil.
func NewInkCoverage(ink func(pixels.Pixel) bool) *InkCoverage {
	if ink == nil {
		ink = render.IsInk
	}
	return &InkCoverage{name: "ink_coverage", ink: ink}
}

func (c *InkCoverage) Name() string { return c.name }

func (c *InkCoverage) Observe(p pixels.Pixel, x, y int) {
	c.samples++
	if c.ink(p) {
		c.hits++
	}
}

func (c *InkCoverage) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return float64(c.hits) / float64(c.samples)
}

func (c *InkCoverage) Reset() {
	c.hits = 0
	c.samples = 0
}

// Transparency is the fraction of pixels below render.AlphaThreshold.
type Transparency struct {
	name    string
	count   int
	samples int
}

func NewTransparency() *Transparency {
	return &Transparency{name: "transparency"}
}

func (t *Transparency) Name() string { return t.name }

func (t *Transparency) Observe(p pixels.Pixel, x, y int) {
	t.samples++
	if p.A < render.AlphaThreshold {
		t.count++
	}
}

func (t *Transparency) Value() float64 {
	if t.samples == 0 {
		return 0
	}
	return float64(t.count) / float64(t.samples)
}

func (t *Transparency) Reset() {
	t.count = 0
	t.samples = 0
}
