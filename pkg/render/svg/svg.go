// Package svg renders a layout plan as a standalone SVG document.
package svg

import (
	"fmt"
	"io"
	"math"
	"strings"

	"tableflip.dev/annals/pkg/event"
	"tableflip.dev/annals/pkg/render"
	"tableflip.dev/annals/pkg/timeline"
)

const (
	DefaultColumnWidth = 200.0
	LabelWidth         = 90.0
	HeaderHeight       = 40.0
	FontFamily         = "sans-serif"
	FontSize           = 12
)

// Options control the document size.
type Options struct {
	ColumnWidth float64
	Palette     render.Palette
}

// Render writes plan to w.
func Render(w io.Writer, plan timeline.Plan[event.Event], opts Options) error {
	_, err := io.WriteString(w, Generate(plan, opts))
	return err
}

// Generate returns plan as an SVG document. Block x positions resolve each
// geometry's percent and pixel offsets against the column width.
func Generate(plan timeline.Plan[event.Event], opts Options) string {
	colW := opts.ColumnWidth
	if colW <= 0 {
		colW = DefaultColumnWidth
	}
	width := LabelWidth + colW*float64(len(plan.Columns))
	height := HeaderHeight + plan.Height

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg width="%s" height="%s" viewBox="0 0 %s %s" xmlns="http://www.w3.org/2000/svg">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<defs>
<style>
.region { font-family: %s; font-size: %dpx; font-weight: bold; fill: #333333; }
.year { font-family: %s; font-size: %dpx; fill: #666666; }
.name { font-family: %s; font-size: %dpx; }
.malformed { stroke-dasharray: 4 2; }
</style>
</defs>
`, num(width), num(height), num(width), num(height),
		FontFamily, FontSize+2, FontFamily, FontSize-1, FontFamily, FontSize))

	for _, l := range plan.Labels {
		y := HeaderHeight + l.Top
		svg.WriteString(fmt.Sprintf(`<line x1="%s" y1="%s" x2="%s" y2="%s" stroke="#e5e5e5" stroke-width="1"/>
<text class="year" x="4" y="%s">%s</text>
`, num(LabelWidth), num(y), num(width), num(y), num(y+FontSize), escapeXML(l.Text)))
	}

	for i, c := range plan.Columns {
		x := LabelWidth + colW*float64(i)
		svg.WriteString(fmt.Sprintf(`<g class="column" data-region="%s">
<line x1="%s" y1="0" x2="%s" y2="%s" stroke="#cccccc" stroke-width="1"/>
<text class="region" x="%s" y="%s">%s</text>
`, escapeXML(c.Region), num(x), num(x), num(height), num(x+6), num(HeaderHeight-14), escapeXML(c.Region)))
		for _, b := range c.Blocks {
			writeBlock(&svg, b, c.Region, x, colW, opts.Palette)
		}
		svg.WriteString("</g>\n")
	}

	svg.WriteString("</svg>\n")
	return svg.String()
}

func writeBlock(svg *strings.Builder, b timeline.Block[event.Event], region string, colX, colW float64, p render.Palette) {
	x := colX + b.Geometry.Left.Resolve(colW)
	w := math.Max(1, b.Geometry.Width.Resolve(colW))
	y := HeaderHeight + b.Geometry.Top
	h := b.Geometry.Height
	class := "block"
	if b.Malformed {
		class += " malformed"
	}
	fill := p.Fill(region).Hex()
	stroke := p.Stroke(region).Hex()

	svg.WriteString(fmt.Sprintf(`<g class="%s" data-id="%d">
<title>%s</title>
<rect x="%s" y="%s" width="%s" height="%s" rx="3" fill="%s" stroke="%s" stroke-width="1"/>
<text class="name" x="%s" y="%s" fill="%s">%s</text>
</g>
`, class, b.Item.ID,
		escapeXML(fmt.Sprintf("%s (%s)", b.Item.Name, b.Item.Period())),
		num(x), num(y), num(w), num(h), fill, stroke,
		num(x+4), num(y+FontSize+2), stroke, escapeXML(b.Item.Name)))
}

// num prints v with at most two decimals and no trailing zeros.
func num(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	s = strings.ReplaceAll(s, "'", "&apos;")
	return s
}
