// Package render scans a sampled pixel grid row by row and turns every
// pixel into one unit of text.
package render

import (
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/san-kum/pixtext/internal/logging"
	"github.com/san-kum/pixtext/internal/pixels"
)

// Grid is what the renderer reads. *pixels.SampledImage satisfies it.
type Grid interface {
	Width() int
	Height() int
	Get(x, y int) (pixels.Pixel, error)
}

// Result is delivered by RenderAsync.
type Result struct {
	Text string
	Err  error
}

type unitFunc func(p pixels.Pixel, index int) string

// Render converts g to text. Rows are separated by a single newline with no
// trailing newline. With opts.Async set, rows are rendered as concurrent
// tasks and joined in row order. A nil opts uses the defaults.
func Render(g Grid, opts *Options) (string, error) {
	o := opts.withDefaults()
	if o.Async {
		return renderRows(g, o)
	}
	return renderSync(g, o)
}

// RenderAsync renders g with rows fanned out to concurrent tasks,
// regardless of opts.Async. The channel yields exactly one Result.
func RenderAsync(g Grid, opts *Options) <-chan Result {
	o := opts.withDefaults()
	ch := make(chan Result, 1)
	go func() {
		defer close(ch)
		text, err := renderRows(g, o)
		ch <- Result{Text: text, Err: err}
	}()
	return ch
}

func unitFor(o Options) unitFunc {
	src := []rune(norm.NFC.String(o.Text))
	if len(src) == 0 {
		return o.CharForPixel
	}
	insert := o.ShouldInsertChar
	return func(p pixels.Pixel, index int) string {
		if insert(p) {
			return string(src[index%len(src)])
		}
		return " "
	}
}

func renderSync(g Grid, o Options) (string, error) {
	w, h := g.Width(), g.Height()
	if w <= 0 || h <= 0 {
		return "", nil
	}
	unit := unitFor(o)

	logging.Logger().Debug("rendering", "width", w, "height", h, "async", false, "text_mode", o.Text != "")

	var sb strings.Builder
	sb.Grow((w + 1) * h)
	for y := 0; y < h; y++ {
		if y != 0 {
			sb.WriteByte('\n')
		}
		if err := writeRow(&sb, g, unit, y, w); err != nil {
			return "", err
		}
	}
	return sb.String(), nil
}

func renderRows(g Grid, o Options) (string, error) {
	w, h := g.Width(), g.Height()
	if w <= 0 || h <= 0 {
		return "", nil
	}
	unit := unitFor(o)

	logging.Logger().Debug("rendering", "width", w, "height", h, "async", true,
		"workers", o.Workers, "text_mode", o.Text != "")

	rows := make([]string, h)
	var eg errgroup.Group
	eg.SetLimit(o.Workers)
	for y := 0; y < h; y++ {
		y := y
		eg.Go(func() error {
			var sb strings.Builder
			sb.Grow(w)
			if err := writeRow(&sb, g, unit, y, w); err != nil {
				return err
			}
			rows[y] = sb.String()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return "", err
	}
	return strings.Join(rows, "\n"), nil
}

// writeRow appends row y. The running index of (x, y) is y*w + x, which is
// the count of pixels visited before it in row-major order.
func writeRow(sb *strings.Builder, g Grid, unit unitFunc, y, w int) error {
	base := y * w
	for x := 0; x < w; x++ {
		p, err := g.Get(x, y)
		if err != nil {
			return fmt.Errorf("render: row %d: %w", y, err)
		}
		sb.WriteString(unit(p, base+x))
	}
	return nil
}
