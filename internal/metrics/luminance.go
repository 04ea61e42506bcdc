package metrics

import "github.com/san-kum/pixtext/internal/pixels"

// MeanLuminance averages the alpha-weighted luminance of every pixel, so
// fully transparent pixels contribute 0.
type MeanLuminance struct {
	name    string
	total   float64
	samples int
}

func NewMeanLuminance() *MeanLuminance {
	return &MeanLuminance{name: "mean_luminance"}
}

func (m *MeanLuminance) Name() string { return m.name }

func (m *MeanLuminance) Observe(p pixels.Pixel, x, y int) {
	m.total += p.Luminance() * p.A
	m.samples++
}

func (m *MeanLuminance) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanLuminance) Reset() {
	m.total = 0
	m.samples = 0
}
