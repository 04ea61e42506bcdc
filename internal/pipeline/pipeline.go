// Package pipeline wires loading, sampling, rendering and metrics into a
// single run.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/san-kum/pixtext/internal/config"
	"github.com/san-kum/pixtext/internal/loader"
	"github.com/san-kum/pixtext/internal/logging"
	"github.com/san-kum/pixtext/internal/metrics"
	"github.com/san-kum/pixtext/internal/pixels"
	"github.com/san-kum/pixtext/internal/render"
)

type Config struct {
	Source   string
	Width    float64
	Stretch  float64
	Provider pixels.SurfaceProvider
	Options  *render.Options
	Metrics  []metrics.Metric
	Loader   *loader.Loader
}

type Result struct {
	Text    string
	Width   int
	Height  int
	Elapsed time.Duration
	Metrics map[string]float64
	Profile []float64
	Image   *pixels.SampledImage
}

type Pipeline struct {
	cfg Config
}

func New(cfg Config) *Pipeline {
	return &Pipeline{cfg: cfg}
}

// Run loads cfg.Source and converts it. Each stage runs once; the first
// failure aborts the run.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	l := p.cfg.Loader
	if l == nil {
		l = loader.New()
	}
	start := time.Now()
	img, err := l.Load(ctx, p.cfg.Source)
	if err != nil {
		return nil, err
	}
	res, err := p.RunImage(img)
	if err != nil {
		return nil, err
	}
	res.Elapsed = time.Since(start)
	logging.Logger().Info("converted image", "source", p.cfg.Source,
		"width", res.Width, "height", res.Height, "elapsed", res.Elapsed)
	return res, nil
}

// RunImage converts an already decoded image.
func (p *Pipeline) RunImage(img image.Image) (*Result, error) {
	start := time.Now()

	var opts []pixels.Option
	if p.cfg.Provider != nil {
		opts = append(opts, pixels.WithProvider(p.cfg.Provider))
	}
	si, err := pixels.New(img, p.cfg.Width, p.cfg.Stretch, opts...)
	if err != nil {
		return nil, err
	}

	text, err := render.Render(si, p.cfg.Options)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Text:   text,
		Width:  si.Width(),
		Height: si.Height(),
		Image:  si,
	}
	if len(p.cfg.Metrics) > 0 {
		res.Metrics, err = metrics.Collect(si, p.cfg.Metrics...)
		if err != nil {
			return nil, err
		}
		for _, m := range p.cfg.Metrics {
			if rp, ok := m.(*metrics.RowProfile); ok {
				res.Profile = rp.Series()
			}
		}
	}
	res.Elapsed = time.Since(start)
	return res, nil
}

// FromConfig resolves the names in c against reg.
func FromConfig(source string, c *config.Config, reg *Registry) (Config, error) {
	if c == nil {
		c = config.DefaultConfig()
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	if reg == nil {
		reg = NewRegistry()
	}

	pred, err := reg.GetPredicate(c.Predicate, c.Threshold)
	if err != nil {
		return Config{}, err
	}
	scaler, err := reg.GetInterpolator(c.Interpolator)
	if err != nil {
		return Config{}, err
	}

	blank := c.Blank
	if blank == "" {
		blank = config.DefaultBlank
	}
	opts := render.NewOptions(
		render.WithCharForPixel(render.Glyphs(c.Glyph, blank, pred)),
		render.WithShouldInsertChar(pred),
		render.WithAsync(c.Async),
		render.WithWorkers(c.Workers),
		render.WithReverseText(c.ReverseText),
		render.WithText(c.Text),
	)

	return Config{
		Source:   source,
		Width:    c.Width,
		Stretch:  c.Stretch,
		Provider: pixels.NewRasterProvider(scaler),
		Options:  opts,
		Metrics:  append(reg.DefaultMetrics(pred), metrics.NewRowProfile(pred)),
	}, nil
}

func convert(ctx context.Context, load func(context.Context) (image.Image, error), width, stretch float64, opts *render.Options) (string, error) {
	img, err := load(ctx)
	if err != nil {
		return "", err
	}
	res, err := New(Config{Width: width, Stretch: stretch, Options: opts}).RunImage(img)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// FileToText loads an image file and converts it.
func FileToText(ctx context.Context, path string, width, stretch float64, opts *render.Options) (string, error) {
	return convert(ctx, func(context.Context) (image.Image, error) {
		return loader.New().LoadFile(path)
	}, width, stretch, opts)
}

// URLToText fetches an http(s) image and converts it.
func URLToText(ctx context.Context, rawURL string, width, stretch float64, opts *render.Options) (string, error) {
	if !loader.IsURL(rawURL) {
		return "", &loader.LoadError{Source: rawURL, Err: fmt.Errorf("%w: not an http(s) URL", loader.ErrUnsupportedSource)}
	}
	return convert(ctx, func(ctx context.Context) (image.Image, error) {
		return loader.New().LoadURL(ctx, rawURL)
	}, width, stretch, opts)
}

// ImageToText converts a decoded image.
func ImageToText(img image.Image, width, stretch float64, opts *render.Options) (string, error) {
	res, err := New(Config{Width: width, Stretch: stretch, Options: opts}).RunImage(img)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}
