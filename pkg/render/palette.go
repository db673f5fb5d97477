package render

import (
	"image/color"

	"github.com/opd-ai/go-ballpit/pkg/entity"
	"github.com/opd-ai/go-ballpit/pkg/validation"
)

// fallbackColor is drawn for fills that do not parse
var fallbackColor = color.RGBA{R: 0xff, G: 0x00, B: 0xff, A: 0xff}

// Palette is the cycle of fills a double click steps a ball through
type Palette struct {
	colors []string
}

// NewPalette creates a palette from fills. Fills that do not validate
// are skipped; an empty result falls back to the default ball fill.
func NewPalette(fills ...string) *Palette {
	colors := make([]string, 0, len(fills))
	for _, f := range fills {
		canonical, err := validation.ValidateFill(f)
		if err != nil {
			continue
		}
		colors = append(colors, canonical)
	}
	if len(colors) == 0 {
		colors = append(colors, entity.DefaultFill)
	}
	return &Palette{colors: colors}
}

// Colors returns the palette fills in cycle order
func (p *Palette) Colors() []string {
	out := make([]string, len(p.colors))
	copy(out, p.colors)
	return out
}

// Next sets ball to the fill after its current one and returns it.
// A ball whose fill is not in the palette starts the cycle.
func (p *Palette) Next(ball *entity.Ball) string {
	current := -1
	if canonical, err := validation.ValidateFill(ball.Fill); err == nil {
		for i, c := range p.colors {
			if c == canonical {
				current = i
				break
			}
		}
	}

	next := p.colors[(current+1)%len(p.colors)]
	ball.Fill = next
	return next
}

// ParseFill converts a fill to an opaque color. Unknown fills map to
// magenta so they stand out.
func ParseFill(fill string) color.RGBA {
	c, err := validation.ResolveFill(fill)
	if err != nil {
		return fallbackColor
	}
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}
