// Package render holds what the SVG and terminal renderers share.
package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/annals/pkg/event"
)

// Neutral colors columns that belong to no known main region.
var Neutral = colorful.Color{R: 0.6, G: 0.6, B: 0.6}

// Palette assigns every region name a fill color. Main regions are spread
// evenly around the hue circle in taxonomy order; subregions share their
// main region's color so related columns read as one family.
type Palette struct {
	colors map[string]colorful.Color
}

// NewPalette builds a palette for regions.
func NewPalette(regions []event.Region) Palette {
	p := Palette{colors: make(map[string]colorful.Color)}
	n := len(regions)
	for i, r := range regions {
		hue := float64(i) * 360 / float64(n)
		c := colorful.Hcl(hue, 0.35, 0.8).Clamped()
		p.colors[r.Name] = c
		for _, s := range r.Subregions {
			p.colors[s.Name] = c
		}
	}
	return p
}

// Fill is the block color for region.
func (p Palette) Fill(region string) colorful.Color {
	if c, ok := p.colors[region]; ok {
		return c
	}
	return Neutral
}

// Stroke is a darker shade of Fill for borders and text.
func (p Palette) Stroke(region string) colorful.Color {
	return p.Fill(region).BlendLab(colorful.Color{}, 0.45).Clamped()
}
