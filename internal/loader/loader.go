// Package loader acquires decoded images from files, URLs and data URIs.
//
// Supported formats are png, jpeg, gif, bmp, tiff and webp. Other formats
// can be added by importing their decoder for side effects.
package loader

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/san-kum/pixtext/internal/logging"
	"github.com/san-kum/pixtext/internal/pixels"
)

const (
	DefaultTimeout  = 30 * time.Second
	DefaultMaxBytes = 64 << 20
)

var (
	// ErrUnsupportedSource indicates a scheme the loader cannot fetch.
	ErrUnsupportedSource = errors.New("loader: unsupported source")

	// ErrHTTPStatus indicates a non-2xx response.
	ErrHTTPStatus = errors.New("loader: unexpected http status")

	// ErrTooLarge indicates the encoded image exceeded MaxBytes.
	ErrTooLarge = errors.New("loader: image exceeds size limit")

	// ErrTooManyPixels indicates the declared dimensions exceeded MaxPixels.
	ErrTooManyPixels = errors.New("loader: image exceeds pixel limit")
)

// LoadError reports which source failed and why.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loader: %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Loader fetches and decodes images. The zero value is usable.
type Loader struct {
	Client   *http.Client
	MaxBytes int64
	// MaxPixels bounds width*height as declared by the image header,
	// checked before the pixel buffer is allocated.
	MaxPixels int
}

// New returns a Loader with a timeout-bound HTTP client.
func New() *Loader {
	return &Loader{
		Client:    &http.Client{Timeout: DefaultTimeout},
		MaxBytes:  DefaultMaxBytes,
		MaxPixels: pixels.DefaultMaxPixels,
	}
}

var defaultLoader = New()

// Load decodes src with the default Loader.
func Load(ctx context.Context, src string) (image.Image, error) {
	return defaultLoader.Load(ctx, src)
}

// Sample loads src with the default Loader and rasterizes it.
func Sample(ctx context.Context, src string, width, stretch float64, opts ...pixels.Option) (*pixels.SampledImage, error) {
	return defaultLoader.Sample(ctx, src, width, stretch, opts...)
}

// IsURL reports whether src names an http or https resource.
func IsURL(src string) bool {
	return strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://")
}

// Load dispatches on the form of src: http(s) URL, data URI, or file path.
func (l *Loader) Load(ctx context.Context, src string) (image.Image, error) {
	switch {
	case IsURL(src):
		return l.LoadURL(ctx, src)
	case strings.HasPrefix(src, "data:"):
		return l.LoadDataURI(src)
	case strings.Contains(src, "://"):
		return nil, &LoadError{Source: src, Err: ErrUnsupportedSource}
	default:
		return l.LoadFile(src)
	}
}

// Sample defers rasterization until the image has been decoded. Decode
// failures come back as *LoadError; sampling failures as
// *pixels.ConstructionError.
func (l *Loader) Sample(ctx context.Context, src string, width, stretch float64, opts ...pixels.Option) (*pixels.SampledImage, error) {
	img, err := l.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	return pixels.New(img, width, stretch, opts...)
}

func (l *Loader) LoadFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	defer f.Close()
	return l.Decode(f, path)
}

func (l *Loader) LoadURL(ctx context.Context, rawURL string) (image.Image, error) {
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, &LoadError{Source: rawURL, Err: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &LoadError{Source: rawURL, Err: err}
	}
	req.Header.Set("Accept", "image/*")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, &LoadError{Source: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &LoadError{Source: rawURL, Err: fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status)}
	}

	logging.Logger().Debug("fetched image", "url", rawURL, "status", resp.StatusCode,
		"content_type", resp.Header.Get("Content-Type"), "elapsed", time.Since(start))

	return l.Decode(resp.Body, rawURL)
}

// LoadDataURI decodes a base64 data URI such as data:image/png;base64,....
func (l *Loader) LoadDataURI(uri string) (image.Image, error) {
	source := uri
	if len(source) > 32 {
		source = source[:32] + "..."
	}
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("%w: data URI must be base64", ErrUnsupportedSource)}
	}
	if int64(base64.StdEncoding.DecodedLen(len(payload))) > l.byteLimit() {
		return nil, &LoadError{Source: source, Err: ErrTooLarge}
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return l.Decode(bytes.NewReader(raw), source)
}

// Decode reads one image from r. source only labels errors.
func (l *Loader) Decode(r io.Reader, source string) (image.Image, error) {
	limit := l.byteLimit()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	if int64(len(data)) > limit {
		return nil, &LoadError{Source: source, Err: ErrTooLarge}
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	maxPixels := l.MaxPixels
	if maxPixels <= 0 {
		maxPixels = pixels.DefaultMaxPixels
	}
	if cfg.Width < 0 || cfg.Height < 0 || (cfg.Height > 0 && cfg.Width > maxPixels/cfg.Height) {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("%w: %dx%d > %d",
			ErrTooManyPixels, cfg.Width, cfg.Height, maxPixels)}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	b := img.Bounds()
	logging.Logger().Debug("decoded image", "source", source, "format", format,
		"width", b.Dx(), "height", b.Dy())
	return img, nil
}

func (l *Loader) byteLimit() int64 {
	if l.MaxBytes <= 0 {
		return DefaultMaxBytes
	}
	return l.MaxBytes
}
