package metrics

import (
	"github.com/san-kum/pixtext/internal/pixels"
	"github.com/san-kum/pixtext/internal/render"
)

// RowProfile counts ink pixels per row. Value is the mean count per row;
// Series exposes the full profile for plotting.
type RowProfile struct {
	name   string
	ink    func(pixels.Pixel) bool
	counts []float64
}

func NewRowProfile(ink func(pixels.Pixel) bool) *RowProfile {
	if ink == nil {
		ink = render.IsInk
	}
	return &RowProfile{name: "row_ink_mean", ink: ink}
}

func (r *RowProfile) Name() string { return r.name }

func (r *RowProfile) Observe(p pixels.Pixel, x, y int) {
	for len(r.counts) <= y {
		r.counts = append(r.counts, 0)
	}
	if r.ink(p) {
		r.counts[y]++
	}
}

func (r *RowProfile) Value() float64 {
	if len(r.counts) == 0 {
		return 0
	}
	sum := 0.0
	for _, c := range r.counts {
		sum += c
	}
	return sum / float64(len(r.counts))
}

func (r *RowProfile) Reset() {
	r.counts = r.counts[:0]
}

// Series returns a copy of the per-row ink counts.
func (r *RowProfile) Series() []float64 {
	out := make([]float64, len(r.counts))
	copy(out, r.counts)
	return out
}
