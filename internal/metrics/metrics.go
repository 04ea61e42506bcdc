// Package metrics summarizes a sampled grid: how much of it is ink, how
// bright it is, and how the ink is spread across rows.
package metrics

import (
	"fmt"

	"github.com/san-kum/pixtext/internal/pixels"
	"github.com/san-kum/pixtext/internal/render"
)

type Metric interface {
	Name() string
	Observe(p pixels.Pixel, x, y int)
	Value() float64
	Reset()
}

// Defaults returns the metrics recorded with every stored render.
func Defaults(ink func(pixels.Pixel) bool) []Metric {
	return []Metric{
		NewInkCoverage(ink),
		NewMeanLuminance(),
		NewTransparency(),
	}
}

// Collect walks g once in row-major order, feeding every metric, and
// returns their values keyed by name.
func Collect(g render.Grid, ms ...Metric) (map[string]float64, error) {
	for _, m := range ms {
		m.Reset()
	}
	w, h := g.Width(), g.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p, err := g.Get(x, y)
			if err != nil {
				return nil, fmt.Errorf("metrics: %w", err)
			}
			for _, m := range ms {
				m.Observe(p, x, y)
			}
		}
	}

	values := make(map[string]float64, len(ms))
	for _, m := range ms {
		values[m.Name()] = m.Value()
	}
	return values, nil
}

// Clone returns a fresh, reset metric of the same kind and predicate.
// Metrics of unknown types are returned as is.
func Clone(m Metric) Metric {
	switch m := m.(type) {
	case *InkCoverage:
		return NewInkCoverage(m.ink)
	case *MeanLuminance:
		return NewMeanLuminance()
	case *Transparency:
		return NewTransparency()
	case *RowProfile:
		return NewRowProfile(m.ink)
	}
	return m
}
