package diagram

import (
	"math"

	"github.com/rivo/uniseg"
)

// Measurer reports the rendered pixel width of display text at the
// configured font. Layout depends on font metrics only through this
// capability, so it stays deterministic and testable without a rendering
// surface.
type Measurer interface {
	Width(text string) int
}

// monoAdvance is the per-glyph advance of a typical monospace face,
// as a fraction of the font size.
const monoAdvance = 0.6

// Monospace measures text for a fixed-pitch font by counting grapheme
// clusters. It is the default Measurer.
type Monospace struct {
	FontSize int
}

func (m Monospace) Width(text string) int {
	size := m.FontSize
	if size <= 0 {
		size = DefaultFontSize
	}
	n := uniseg.GraphemeClusterCount(text)
	return int(math.Ceil(float64(n) * monoAdvance * float64(size)))
}
