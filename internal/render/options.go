package render

import (
	"runtime"

	"github.com/san-kum/pixtext/internal/pixels"
)

/*
Options configures a render. NewOptions fills every field with its default:

  - CharForPixel: DefaultCharForPixel ("x" for ink, " " otherwise)
  - ShouldInsertChar: IsInk
  - Async: false
  - Workers: runtime.GOMAXPROCS(0), only used when Async is set
  - ReverseText: false
  - Text: "" (fixed-glyph mode)

When Text is non-empty the renderer cycles through it and ShouldInsertChar
decides between the next character and a space; CharForPixel is not used.
Callbacks must be safe for concurrent use when Async is set.
*/
type Options struct {
	CharForPixel     func(p pixels.Pixel, index int) string
	ShouldInsertChar func(p pixels.Pixel) bool
	Async            bool
	Workers          int
	// ReverseText is accepted for configuration compatibility. It does not
	// change traversal order.
	ReverseText bool
	Text        string
}

// Option overrides one field of Options.
type Option func(*Options)

// NewOptions returns the defaults with opts applied in order.
func NewOptions(opts ...Option) *Options {
	o := &Options{
		CharForPixel:     DefaultCharForPixel,
		ShouldInsertChar: IsInk,
		Workers:          runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithCharForPixel replaces the fixed-glyph mapper. nil keeps the current one.
func WithCharForPixel(fn func(p pixels.Pixel, index int) string) Option {
	return func(o *Options) {
		if fn != nil {
			o.CharForPixel = fn
		}
	}
}

// WithShouldInsertChar replaces the text-cycling predicate. nil keeps the
// current one.
func WithShouldInsertChar(fn func(p pixels.Pixel) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.ShouldInsertChar = fn
		}
	}
}

// WithAsync fans rows out to concurrent tasks.
func WithAsync(async bool) Option {
	return func(o *Options) {
		o.Async = async
	}
}

// WithWorkers bounds the number of rows rendered at once in async mode.
// Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.Workers = n
		}
	}
}

// WithReverseText sets the reserved ReverseText flag.
func WithReverseText(reverse bool) Option {
	return func(o *Options) {
		o.ReverseText = reverse
	}
}

// WithText switches to text-cycling mode over s.
func WithText(s string) Option {
	return func(o *Options) {
		o.Text = s
	}
}

// withDefaults fills nil callbacks so a zero Options still renders.
func (o *Options) withDefaults() Options {
	if o == nil {
		return *NewOptions()
	}
	c := *o
	if c.CharForPixel == nil {
		c.CharForPixel = DefaultCharForPixel
	}
	if c.ShouldInsertChar == nil {
		c.ShouldInsertChar = IsInk
	}
	if c.Workers < 1 {
		c.Workers = runtime.GOMAXPROCS(0)
	}
	return c
}
