// Package render produces diagnostic SVG snapshots of packed layouts.
//
// The output is a wireframe: one rectangle per placed section with its id and
// span as a label, plus optional column guides. Section contents are never
// drawn; the point is to eyeball packing decisions, not to render cards.
package render

import (
	"bytes"
	"fmt"

	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/grid"
)

// palette cycles across sections so adjacent cards are distinguishable.
var palette = []string{
	"#4f86c6", "#6fb98f", "#e8a87c", "#c38d9e", "#8d8741", "#659dbd",
}

const (
	framePadding = 16.0
	labelOffset  = 18.0
	minFrame     = 80.0
)

type SVGOption func(*svgRenderer)

type svgRenderer struct {
	columnGuides bool
	scale        float64
}

// WithColumnGuides draws dashed guides at every column boundary.
func WithColumnGuides() SVGOption { return func(r *svgRenderer) { r.columnGuides = true } }

// WithScale multiplies all coordinates by f. Useful for thumbnails.
func WithScale(f float64) SVGOption {
	return func(r *svgRenderer) {
		if f > 0 {
			r.scale = f
		}
	}
}

// RenderSVG renders a packed layout as an SVG wireframe.
func RenderSVG(result grid.LayoutResult, opts ...SVGOption) []byte {
	r := svgRenderer{scale: 1}
	for _, opt := range opts {
		opt(&r)
	}

	cfg := result.Config
	width := max(cfg.ContainerWidth, minFrame)*r.scale + 2*framePadding
	height := max(result.TotalHeight, minFrame)*r.scale + 2*framePadding

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#fafafa"/>`+"\n", width, height)

	fmt.Fprintf(&buf, `  <g transform="translate(%.1f, %.1f) scale(%g)">`+"\n",
		framePadding, framePadding, r.scale)

	if r.columnGuides {
		renderColumnGuides(&buf, cfg, result.TotalHeight)
	}

	for i, p := range result.Positions {
		renderSection(&buf, p, cfg, palette[i%len(palette)])
	}

	buf.WriteString("  </g>\n")
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func renderSection(buf *bytes.Buffer, p grid.Position, cfg grid.GridConfig, fill string) {
	x := cfg.ColumnOffset(p.Column)
	w := cfg.SpanWidth(p.ColSpan)

	fmt.Fprintf(buf, `    <rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="6" fill="%s" fill-opacity="0.25" stroke="%s" stroke-width="1.5"/>`+"\n",
		x, p.Top, w, p.Height, fill, fill)
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-family="monospace" font-size="13" fill="#333">%s (span %d)</text>`+"\n",
		x+8, p.Top+labelOffset, escapeText(p.SectionID), p.ColSpan)
}

func renderColumnGuides(buf *bytes.Buffer, cfg grid.GridConfig, totalHeight float64) {
	h := max(totalHeight, minFrame)
	for col := range cfg.TotalColumns {
		x := cfg.ColumnOffset(col)
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="0" x2="%.1f" y2="%.1f" stroke="#ccc" stroke-dasharray="4 4"/>`+"\n",
			x, x, h)
		right := x + cfg.ColumnWidth
		fmt.Fprintf(buf, `    <line x1="%.1f" y1="0" x2="%.1f" y2="%.1f" stroke="#ccc" stroke-dasharray="4 4"/>`+"\n",
			right, right, h)
	}
}

// escapeText escapes the XML special characters that can appear in ids.
func escapeText(s string) string {
	var buf bytes.Buffer
	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		default:
			buf.WriteRune(r)
		}
	}
	return buf.String()
}
