package svg

import (
	"fmt"
	"strings"

	"github.com/abnfkit/railroad/diagram"
)

// Options configures rendering. The zero value uses the documented
// defaults: 16px grid, 14px monospace text.
type Options struct {
	GridSize   int
	FontSize   int
	FontFamily string
	TrackColor string
	BoxFill    string
	TextColor  string
}

func (o Options) withDefaults() Options {
	if o.GridSize <= 0 {
		o.GridSize = diagram.DefaultGridSize
	}
	if o.FontSize <= 0 {
		o.FontSize = diagram.DefaultFontSize
	}
	if o.FontFamily == "" {
		o.FontFamily = diagram.DefaultFontFamily
	}
	if o.TrackColor == "" {
		o.TrackColor = "#555555"
	}
	if o.BoxFill == "" {
		o.BoxFill = "#f4f4f4"
	}
	if o.TextColor == "" {
		o.TextColor = "#111111"
	}
	return o
}

// frame margins around the outermost shape, in grid units: room for the
// endpoint markers and their lead-in tracks.
const (
	frameMarginX = 2
	frameMarginY = 1
)

// Render emits a self-contained <svg> element for a laid-out shape,
// side-effect-free. By construction it cannot fail for a shape that passed
// layout: every shape type has a defined routing rule.
func Render(name string, shape diagram.Laid, opt Options) string {
	opt = opt.withDefaults()
	c := &canvas{opt: opt, grid: opt.GridSize}

	g := shape.Geom()
	totalW := g.Width + 2*frameMarginX
	totalH := g.Height + 2*frameMarginY
	baseY := frameMarginY + g.Baseline

	// endpoint markers and lead-in/out tracks to the outermost shape
	c.track(Start(1, baseY, East).Forward(1))
	c.track(Start(frameMarginX+g.Width, baseY, East).Forward(1))
	c.endpoint(1, baseY)
	c.endpoint(totalW-1, baseY)

	c.draw(shape, frameMarginX, frameMarginY)

	var sb strings.Builder
	fmt.Fprintf(&sb,
		`<svg xmlns="http://www.w3.org/2000/svg" class="railroad" data-rule="%s" width="%d" height="%d" viewBox="0 0 %d %d">`,
		escapeXML(name), totalW*c.grid, totalH*c.grid, totalW*c.grid, totalH*c.grid)
	sb.WriteString("\n")
	for _, el := range c.elems {
		sb.WriteString("  ")
		sb.WriteString(el)
		sb.WriteString("\n")
	}
	sb.WriteString("</svg>")
	return sb.String()
}

type canvas struct {
	opt   Options
	grid  int
	elems []string
}

func (c *canvas) track(t *Turtle) {
	c.elems = append(c.elems, fmt.Sprintf(
		`<path class="track" d="%s" fill="none" stroke="%s" stroke-width="2"/>`,
		t.Finish(c.grid), c.opt.TrackColor))
}

func (c *canvas) endpoint(x, y int) {
	c.elems = append(c.elems, fmt.Sprintf(
		`<circle class="endpoint" cx="%d" cy="%d" r="%d" fill="%s"/>`,
		x*c.grid, y*c.grid, c.grid/3, c.opt.TrackColor))
}

func (c *canvas) box(x, y, w, h int, rounded bool) {
	rx := 0
	if rounded {
		rx = c.grid / 2
	}
	c.elems = append(c.elems, fmt.Sprintf(
		`<rect x="%d" y="%d" width="%d" height="%d" rx="%d" fill="%s" stroke="%s"/>`,
		x*c.grid, y*c.grid, w*c.grid, h*c.grid, rx, c.opt.BoxFill, c.opt.TrackColor))
}

func (c *canvas) text(x, y int, content string) {
	c.elems = append(c.elems, fmt.Sprintf(
		`<text x="%d" y="%d" text-anchor="middle" dominant-baseline="central" font-family="%s" font-size="%d" fill="%s">%s</text>`,
		x*c.grid, y*c.grid, escapeXML(c.opt.FontFamily), c.opt.FontSize, c.opt.TextColor, escapeXML(content)))
}

// draw renders one shape at origin (ox, oy), routing its own tracks and
// recursing into children at their computed offsets. Composites connect
// only to their own outer edge and to children's entry/exit points; nothing
// ever draws across a child's other boundary edges.
func (c *canvas) draw(s diagram.Laid, ox, oy int) {
	switch s := s.(type) {
	case *diagram.LaidTextBox:
		c.drawTextBox(s, ox, oy)
	case *diagram.LaidSequence:
		c.drawSequence(s, ox, oy)
	case *diagram.LaidStack:
		c.drawStack(s, ox, oy)
	case *diagram.LaidBypass:
		c.drawBypass(s, ox, oy)
	case *diagram.LaidLoop:
		c.drawLoop(s, ox, oy)
	default:
		panic(fmt.Sprintf("svg: unknown laid shape %T", s))
	}
}

// drawTextBox draws the box inset 1 unit from each side, with 1-unit
// tracks connecting the entry and exit points to it.
func (c *canvas) drawTextBox(s *diagram.LaidTextBox, ox, oy int) {
	w := s.G.Width
	c.track(Start(ox, oy+1, East).Forward(1))
	c.track(Start(ox+w-1, oy+1, East).Forward(1))
	c.box(ox+1, oy, w-2, 2, s.Kind == diagram.TerminalText)
	c.text(ox+w/2, oy+1, s.Text)
}

// drawSequence draws children left to right with 2-unit connective tracks
// at the common baseline. The sequence's entry coincides with the first
// child's entry and its exit with the last child's, so no outer tracks are
// needed.
func (c *canvas) drawSequence(s *diagram.LaidSequence, ox, oy int) {
	b := s.G.Baseline
	for i, child := range s.Children {
		if i > 0 {
			c.track(Start(ox+child.X-2, oy+b, East).Forward(2))
		}
		c.draw(child.Shape, ox+child.X, oy+child.Y)
	}
}

// drawStack gives the first child straight tracks to the stack's own
// edges. Every later child gets a branching track that leaves the main
// baseline, turns down to the child's baseline, and turns back, symmetric
// on the entry and exit sides.
func (c *canvas) drawStack(s *diagram.LaidStack, ox, oy int) {
	b := s.G.Baseline
	w := s.G.Width
	for i, child := range s.Children {
		cg := child.Shape.Geom()
		if i == 0 {
			c.track(Start(ox, oy+b, East).Forward(child.X))
			c.track(Start(ox+child.X+cg.Width, oy+b, East).Forward(w - child.X - cg.Width))
		} else {
			childBase := child.Y + cg.Baseline
			drop := childBase - b - 2 // 2 units consumed by the turns
			c.track(Start(ox, oy+b, East).
				TurnRight().
				Forward(drop).
				TurnLeft().
				Forward(child.X - 2))
			c.track(Start(ox+child.X+cg.Width, oy+childBase, East).
				Forward(w - 2 - child.X - cg.Width).
				TurnLeft().
				Forward(drop).
				TurnRight())
		}
		c.draw(child.Shape, ox+child.X, oy+child.Y)
	}
}

// drawBypass draws the through-tracks to the child and a skip path over
// it: up from the entry, along the top edge, and back down to the exit.
func (c *canvas) drawBypass(s *diagram.LaidBypass, ox, oy int) {
	b := s.G.Baseline
	w := s.G.Width
	cw := s.Child.Shape.Geom().Width
	c.track(Start(ox, oy+b, East).Forward(2))
	c.track(Start(ox+2+cw, oy+b, East).Forward(2))
	c.track(Start(ox, oy+b, East).
		TurnLeft().
		Forward(b - 2).
		TurnRight().
		Forward(w - 4).
		TurnRight().
		Forward(b - 2).
		TurnLeft())
	c.draw(s.Child.Shape, ox+s.Child.X, oy+s.Child.Y)
}

// drawLoop mirrors Bypass below the child. The loop-back leaves the main
// track at the child's exit, runs right-to-left along the bottom edge, and
// rejoins at the child's entry, conveying repetition.
func (c *canvas) drawLoop(s *diagram.LaidLoop, ox, oy int) {
	b := s.G.Baseline
	w := s.G.Width
	h := s.G.Height
	cw := s.Child.Shape.Geom().Width
	c.track(Start(ox, oy+b, East).Forward(2))
	c.track(Start(ox+2+cw, oy+b, East).Forward(2))
	c.track(Start(ox+w-2, oy+b, East).
		TurnRight().
		Forward(h - b - 2).
		TurnRight().
		Forward(w - 4).
		TurnRight().
		Forward(h - b - 2).
		TurnRight())
	c.draw(s.Child.Shape, ox+s.Child.X, oy+s.Child.Y)
}

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

func escapeXML(s string) string {
	return xmlEscaper.Replace(s)
}
