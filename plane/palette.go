// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package plane

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/gogpu/arplane"
)

// defaultGridColors are the plane grid colors, white first.
var defaultGridColors = [...]arplane.RGBA{
	arplane.RGB(1.000, 1.000, 1.000),
	arplane.RGB(0.956, 0.262, 0.211),
	arplane.RGB(0.913, 0.117, 0.388),
	arplane.RGB(0.611, 0.152, 0.654),
	arplane.RGB(0.403, 0.227, 0.717),
	arplane.RGB(0.247, 0.317, 0.709),
	arplane.RGB(0.129, 0.588, 0.952),
	arplane.RGB(0.011, 0.662, 0.956),
	arplane.RGB(0.000, 0.737, 0.831),
	arplane.RGB(0.000, 0.588, 0.533),
	arplane.RGB(0.298, 0.686, 0.313),
	arplane.RGB(0.545, 0.764, 0.290),
	arplane.RGB(0.803, 0.862, 0.223),
	arplane.RGB(1.000, 0.921, 0.231),
	arplane.RGB(1.000, 0.756, 0.027),
}

// Palette hands out grid colors in a fixed cycle.
//
// A Palette is the shared state behind color assignment: every plane that
// draws from the same Palette gets the next color in sequence, wrapping
// around after the last one. It is not safe for concurrent use.
type Palette struct {
	colors []arplane.RGBA
	next   int
}

// DefaultPalette returns a fresh palette over the 15 standard grid colors.
func DefaultPalette() *Palette {
	return NewPalette(defaultGridColors[:]...)
}

// NewPalette returns a palette cycling through colors. An empty list yields a
// palette of plain white.
func NewPalette(colors ...arplane.RGBA) *Palette {
	if len(colors) == 0 {
		colors = []arplane.RGBA{arplane.White}
	}
	return &Palette{colors: append([]arplane.RGBA(nil), colors...)}
}

// ParsePalette builds a palette from "#RRGGBB" strings.
func ParsePalette(hex ...string) (*Palette, error) {
	colors := make([]arplane.RGBA, 0, len(hex))
	for _, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			return nil, fmt.Errorf("plane: palette color %q: %w", h, err)
		}
		colors = append(colors, arplane.RGB(float32(c.R), float32(c.G), float32(c.B)))
	}
	return NewPalette(colors...), nil
}

// Next returns the next color and advances the cycle.
func (p *Palette) Next() arplane.RGBA {
	c := p.colors[p.next]
	p.next = (p.next + 1) % len(p.colors)
	return c
}

// Len returns the number of colors in the cycle.
func (p *Palette) Len() int {
	return len(p.colors)
}

// Colors returns a copy of the cycle.
func (p *Palette) Colors() []arplane.RGBA {
	return append([]arplane.RGBA(nil), p.colors...)
}

// Reset restarts the cycle at the first color.
func (p *Palette) Reset() {
	p.next = 0
}
