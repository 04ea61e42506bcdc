package export

import (
	"fmt"
	"html"
	"strings"
)

type SVGOptions struct {
	FontSize   float64
	Foreground string
	Background string
}

func DefaultSVGOptions() SVGOptions {
	return SVGOptions{FontSize: 12, Foreground: "#00ff00", Background: "#0a0a0a"}
}

// TextToSVG lays rendered text out as one monospace <text> element per row.
func TextToSVG(text string, opts SVGOptions) string {
	if opts.FontSize <= 0 {
		opts.FontSize = DefaultSVGOptions().FontSize
	}
	if opts.Foreground == "" {
		opts.Foreground = DefaultSVGOptions().Foreground
	}
	if opts.Background == "" {
		opts.Background = DefaultSVGOptions().Background
	}

	lines := strings.Split(text, "\n")
	cols := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > cols {
			cols = n
		}
	}

	// monospace advance is about 0.6em
	charW := opts.FontSize * 0.6
	lineH := opts.FontSize * 1.2
	width := float64(cols) * charW
	height := float64(len(lines)) * lineH

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="%s" font-family="monospace" font-size="%.1f" xml:space="preserve">
`, width, height, width, height, html.EscapeString(opts.Background),
		html.EscapeString(opts.Foreground), opts.FontSize))

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		y := float64(i)*lineH + opts.FontSize
		sb.WriteString(fmt.Sprintf(`<text x="0" y="%.1f">%s</text>
`, y, html.EscapeString(line)))
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// ProfileToSVG plots one value per row as a polyline, top row first.
func ProfileToSVG(values []float64, width, height int, strokeColor string) string {
	if len(values) < 2 {
		return ""
	}

	minV, maxV := values[0], values[0]
	for _, v := range values {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	rangeV := maxV - minV
	if rangeV == 0 {
		rangeV = 1
	}
	minV -= rangeV * 0.1
	maxV += rangeV * 0.1
	rangeV = maxV - minV
	last := float64(len(values) - 1)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, html.EscapeString(strokeColor)))

	for i, v := range values {
		x := float64(i) / last * float64(width)
		y := float64(height) - (v-minV)/rangeV*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
