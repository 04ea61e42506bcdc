// Package pixels rasterizes a decoded image onto a fixed-size surface and
// answers single-pixel color queries against it.
//
// The package defines:
//
//   - [Pixel]: one RGBA sample with normalized alpha
//   - [SampledImage]: the immutable sampled grid
//   - [SurfaceProvider]: the collaborator that allocates drawing surfaces
//   - [RasterProvider]: the default provider, backed by golang.org/x/image/draw
//
// # Example
//
//	img, _, _ := image.Decode(f)
//	si, err := pixels.New(img, 80, 0.5)
//	if err != nil {
//		return err
//	}
//	p, _ := si.Get(0, 0)
//
// # Thread Safety
//
// A SampledImage is never written after New returns, so Get may be called
// from any number of goroutines.
package pixels
