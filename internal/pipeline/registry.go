package pipeline

import (
	"fmt"
	"sort"

	"golang.org/x/image/draw"

	"github.com/san-kum/pixtext/internal/metrics"
	"github.com/san-kum/pixtext/internal/pixels"
	"github.com/san-kum/pixtext/internal/render"
)

// Registry resolves the names used in configs and flags.
type Registry struct {
	predicates    map[string]func(threshold float64) func(pixels.Pixel) bool
	interpolators map[string]func() draw.Scaler
}

func NewRegistry() *Registry {
	r := &Registry{
		predicates:    make(map[string]func(float64) func(pixels.Pixel) bool),
		interpolators: make(map[string]func() draw.Scaler),
	}

	r.predicates["ink"] = func(float64) func(pixels.Pixel) bool { return render.IsInk }
	r.predicates["white"] = func(float64) func(pixels.Pixel) bool { return render.IsNotWhite }
	r.predicates["opaque"] = func(float64) func(pixels.Pixel) bool { return render.IsOpaque }
	r.predicates["dark"] = func(threshold float64) func(pixels.Pixel) bool { return render.DarkerThan(threshold) }

	r.interpolators["nearest"] = func() draw.Scaler { return draw.NearestNeighbor }
	r.interpolators["bilinear"] = func() draw.Scaler { return draw.ApproxBiLinear }
	r.interpolators["catmullrom"] = func() draw.Scaler { return draw.CatmullRom }

	return r
}

// GetPredicate returns the named ink test. threshold is only read by
// "dark".
func (r *Registry) GetPredicate(name string, threshold float64) (func(pixels.Pixel) bool, error) {
	fn, ok := r.predicates[name]
	if !ok {
		return nil, fmt.Errorf("unknown predicate: %s (available: %v)", name, r.ListPredicates())
	}
	return fn(threshold), nil
}

func (r *Registry) GetInterpolator(name string) (draw.Scaler, error) {
	fn, ok := r.interpolators[name]
	if !ok {
		return nil, fmt.Errorf("unknown interpolator: %s (available: %v)", name, r.ListInterpolators())
	}
	return fn(), nil
}

func (r *Registry) ListPredicates() []string {
	return sortedKeys(r.predicates)
}

func (r *Registry) ListInterpolators() []string {
	return sortedKeys(r.interpolators)
}

func (r *Registry) DefaultMetrics(ink func(pixels.Pixel) bool) []metrics.Metric {
	return metrics.Defaults(ink)
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
