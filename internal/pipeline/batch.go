package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/pixtext/internal/logging"
	"github.com/san-kum/pixtext/internal/metrics"
)

// Batch runs one pipeline per source concurrently, sharing every other
// setting of base.
type Batch struct {
	base    Config
	sources []string
	limit   int
}

// NewBatch returns a batch over sources. limit bounds concurrent runs;
// zero or less means unbounded.
func NewBatch(base Config, sources []string, limit int) *Batch {
	return &Batch{base: base, sources: sources, limit: limit}
}

// Run returns results in source order. The first failure cancels the
// remaining runs.
func (b *Batch) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, len(b.sources))

	g, ctx := errgroup.WithContext(ctx)
	if b.limit > 0 {
		g.SetLimit(b.limit)
	}
	for i, src := range b.sources {
		i, src := i, src
		g.Go(func() error {
			cfg := b.base
			cfg.Source = src
			cfg.Metrics = cloneMetrics(b.base.Metrics)

			res, err := New(cfg).Run(ctx)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	logging.Logger().Info("batch complete", "sources", len(b.sources))
	return results, nil
}

// cloneMetrics gives each run its own accumulators.
func cloneMetrics(ms []metrics.Metric) []metrics.Metric {
	if len(ms) == 0 {
		return nil
	}
	out := make([]metrics.Metric, len(ms))
	for i, m := range ms {
		out[i] = metrics.Clone(m)
	}
	return out
}
