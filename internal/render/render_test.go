package render_test

import (
	"errors"
	"image"
	"image/color"
	"strconv"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/image/draw"

	"github.com/san-kum/pixtext/internal/pixels"
	"github.com/san-kum/pixtext/internal/render"
)

var (
	ink   = pixels.Pixel{A: 1}
	paper = pixels.Pixel{R: 255, G: 255, B: 255, A: 1}
)

// grid is built from strings where 'x' is ink and anything else is paper.
type grid struct {
	w, h int
	px   [][]pixels.Pixel
}

func gridOf(rows ...string) *grid {
	g := &grid{h: len(rows)}
	for _, r := range rows {
		g.w = len(r)
		line := make([]pixels.Pixel, len(r))
		for i, c := range r {
			if c == 'x' {
				line[i] = ink
			} else {
				line[i] = paper
			}
		}
		g.px = append(g.px, line)
	}
	return g
}

func (g *grid) Width() int  { return g.w }
func (g *grid) Height() int { return g.h }

func (g *grid) Get(x, y int) (pixels.Pixel, error) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return pixels.Pixel{}, &pixels.OutOfBoundsError{X: x, Y: y, Width: g.w, Height: g.h}
	}
	return g.px[y][x], nil
}

// lyingGrid reports one more column than it can serve.
type lyingGrid struct{ *grid }

func (g lyingGrid) Width() int { return g.grid.w + 1 }

func checker(w, h int) *grid {
	rows := make([]string, h)
	for y := range rows {
		var sb strings.Builder
		for x := 0; x < w; x++ {
			if (x*7+y*3)%5 < 2 {
				sb.WriteByte('x')
			} else {
				sb.WriteByte('.')
			}
		}
		rows[y] = sb.String()
	}
	return gridOf(rows...)
}

var _ = Describe("IsWhiteOrTransparent", func() {
	DescribeTable("classifies colors",
		func(r, g, b uint8, a float64, want bool) {
			Expect(render.IsWhiteOrTransparent(r, g, b, a)).To(Equal(want))
		},
		Entry("249 opaque", uint8(249), uint8(249), uint8(249), 1.0, false),
		Entry("250 opaque is not white", uint8(250), uint8(250), uint8(250), 1.0, false),
		Entry("251 opaque is white", uint8(251), uint8(251), uint8(251), 1.0, true),
		Entry("one channel at 250", uint8(255), uint8(250), uint8(255), 1.0, false),
		Entry("alpha exactly 0.1", uint8(0), uint8(0), uint8(0), 0.1, false),
		Entry("alpha 0.099", uint8(0), uint8(0), uint8(0), 0.099, true),
		Entry("alpha 0.05 with grey", uint8(249), uint8(249), uint8(249), 0.05, true),
		Entry("transparent white", uint8(255), uint8(255), uint8(255), 0.0, true),
	)
})

var _ = Describe("predicates", func() {
	It("treats transparent pixels as ink only for IsNotWhite", func() {
		empty := pixels.Pixel{}
		Expect(render.IsInk(empty)).To(BeFalse())
		Expect(render.IsNotWhite(empty)).To(BeTrue())
		Expect(render.IsOpaque(empty)).To(BeFalse())
	})

	It("compares luminance for DarkerThan", func() {
		dark := render.DarkerThan(128)
		Expect(dark(pixels.Pixel{R: 10, G: 10, B: 10, A: 1})).To(BeTrue())
		Expect(dark(pixels.Pixel{R: 200, G: 200, B: 200, A: 1})).To(BeFalse())
		Expect(dark(pixels.Pixel{R: 10, G: 10, B: 10, A: 0})).To(BeFalse())
	})
})

var _ = Describe("Render", func() {
	Context("fixed-glyph mode", func() {
		It("renders a single ink pixel in a 3x2 grid", func() {
			out, err := render.Render(gridOf("x..", "..."), nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("x  \n   "))
		})

		It("separates rows without leading or trailing newlines", func() {
			out, err := render.Render(checker(11, 6), render.NewOptions())
			Expect(err).NotTo(HaveOccurred())
			Expect(strings.Count(out, "\n")).To(Equal(5))
			Expect(out).NotTo(HavePrefix("\n"))
			Expect(out).NotTo(HaveSuffix("\n"))
			Expect(len(out)).To(Equal(11*6 + 5))
			for _, line := range strings.Split(out, "\n") {
				Expect(line).To(HaveLen(11))
			}
		})

		It("passes a running index that is not reset per row", func() {
			seen := []int{}
			opts := render.NewOptions(render.WithCharForPixel(func(p pixels.Pixel, i int) string {
				seen = append(seen, i)
				return strconv.Itoa(i % 10)
			}))
			out, err := render.Render(checker(4, 3), opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("0123\n4567\n8901"))
			Expect(seen).To(Equal([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}))
		})

		It("uses custom glyphs", func() {
			opts := render.NewOptions(render.WithCharForPixel(render.Glyphs("#", ".", nil)))
			out, err := render.Render(gridOf("x.x", ".x."), opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("#.#\n.#."))
		})

		It("fills defaults into a zero Options", func() {
			out, err := render.Render(gridOf("x."), &render.Options{})
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("x "))
		})
	})

	Context("text-cycling mode", func() {
		It("advances the index on background pixels", func() {
			opts := render.NewOptions(render.WithText("abc"))
			out, err := render.Render(gridOf("x.xx", "xx.x"), opts)
			Expect(err).NotTo(HaveOccurred())
			// indices 0..7 map to a b c a b c a b
			Expect(out).To(Equal("a ca\nbc b"))
		})

		It("wraps the source text with modulo indexing", func() {
			opts := render.NewOptions(render.WithText("ab"))
			out, err := render.Render(gridOf("xxx", "xxx"), opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("aba\nbab"))
		})

		It("cycles characters, not bytes", func() {
			opts := render.NewOptions(render.WithText("éß"))
			out, err := render.Render(gridOf("xxx"), opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("éßé"))
		})

		It("honours a custom insert predicate", func() {
			opts := render.NewOptions(
				render.WithText("xy"),
				render.WithShouldInsertChar(func(p pixels.Pixel) bool { return p.R == 255 }),
			)
			out, err := render.Render(gridOf("x.", ".x"), opts)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal(" y\nx "))
		})

		It("ignores ReverseText", func() {
			plain, _ := render.Render(gridOf("xxxx"), render.NewOptions(render.WithText("abcd")))
			reversed, _ := render.Render(gridOf("xxxx"), render.NewOptions(render.WithText("abcd"), render.WithReverseText(true)))
			Expect(reversed).To(Equal(plain))
		})
	})

	Context("async mode", func() {
		It("matches synchronous output byte for byte", func() {
			g := checker(37, 23)
			for _, opts := range []func(bool) *render.Options{
				func(a bool) *render.Options { return render.NewOptions(render.WithAsync(a)) },
				func(a bool) *render.Options {
					return render.NewOptions(render.WithAsync(a), render.WithText("pixtext"))
				},
				func(a bool) *render.Options {
					return render.NewOptions(render.WithAsync(a), render.WithWorkers(3),
						render.WithCharForPixel(func(p pixels.Pixel, i int) string { return strconv.Itoa(i % 7) }))
				},
			} {
				sync, err := render.Render(g, opts(false))
				Expect(err).NotTo(HaveOccurred())
				async, err := render.Render(g, opts(true))
				Expect(err).NotTo(HaveOccurred())
				Expect(async).To(Equal(sync))
			}
		})

		It("delivers one result on the channel", func() {
			ch := render.RenderAsync(gridOf("x..", "..."), nil)
			var res render.Result
			Eventually(ch).Should(Receive(&res))
			Expect(res.Err).NotTo(HaveOccurred())
			Expect(res.Text).To(Equal("x  \n   "))
			Eventually(ch).Should(BeClosed())
		})
	})

	Context("degenerate grids", func() {
		DescribeTable("render to the empty string",
			func(async bool, g render.Grid) {
				out, err := render.Render(g, render.NewOptions(render.WithAsync(async)))
				Expect(err).NotTo(HaveOccurred())
				Expect(out).To(BeEmpty())
			},
			Entry("sync zero rows", false, gridOf()),
			Entry("async zero rows", true, gridOf()),
			Entry("sync zero columns", false, gridOf("", "")),
			Entry("async zero columns", true, gridOf("", "")),
		)
	})

	Context("sampler failures", func() {
		It("propagates out-of-bounds errors in both modes", func() {
			g := lyingGrid{gridOf("x.", ".x")}
			for _, async := range []bool{false, true} {
				_, err := render.Render(g, render.NewOptions(render.WithAsync(async)))
				Expect(errors.Is(err, pixels.ErrOutOfBounds)).To(BeTrue())
			}
		})
	})

	Context("with a sampled image", func() {
		It("renders a rasterized image end to end", func() {
			img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
			for x := 0; x < 4; x++ {
				img.SetNRGBA(x, 0, color.NRGBA{A: 255})
			}
			si, err := pixels.New(img, 0, 1, pixels.WithProvider(pixels.NewRasterProvider(draw.NearestNeighbor)))
			Expect(err).NotTo(HaveOccurred())

			out, err := render.Render(si, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(out).To(Equal("xxxx\n    "))
		})
	})
})
