package diagram

import "fmt"

// Documented defaults for the injectable rendering configuration.
const (
	DefaultGridSize   = 16
	DefaultFontSize   = 14
	DefaultFontFamily = "monospace"
)

// Geom is the computed geometry of a laid-out shape, in grid units.
// Width is always even, Height is at least 2, and Baseline is the Y offset
// of the main track through the shape, with 0 <= Baseline < Height.
type Geom struct {
	Width    int
	Height   int
	Baseline int
}

// Laid is a shape after layout. Every Laid shape exposes a fixed entry
// point (0, Baseline) and exit point (Width, Baseline) in its own local
// grid coordinates.
type Laid interface {
	Geom() Geom
}

// Placed is a laid-out child together with its offset, in the parent's
// grid coordinates.
type Placed struct {
	X, Y  int
	Shape Laid
}

type LaidTextBox struct {
	G    Geom
	Text string
	Kind TextKind
}

type LaidSequence struct {
	G        Geom
	Children []Placed
}

type LaidStack struct {
	G        Geom
	Children []Placed
}

type LaidBypass struct {
	G     Geom
	Child Placed
}

type LaidLoop struct {
	G     Geom
	Child Placed
}

func (s *LaidTextBox) Geom() Geom  { return s.G }
func (s *LaidSequence) Geom() Geom { return s.G }
func (s *LaidStack) Geom() Geom    { return s.G }
func (s *LaidBypass) Geom() Geom   { return s.G }
func (s *LaidLoop) Geom() Geom     { return s.G }

// Engine computes geometry for shape trees. The zero value uses the
// documented defaults.
type Engine struct {
	Grid    int // grid unit size in pixels, used to convert measured text
	Measure Measurer
}

func (e *Engine) grid() int {
	if e.Grid > 0 {
		return e.Grid
	}
	return DefaultGridSize
}

func (e *Engine) measurer() Measurer {
	if e.Measure != nil {
		return e.Measure
	}
	return Monospace{FontSize: DefaultFontSize}
}

// Lay computes width, height, and baseline for every node of the tree,
// bottom-up, returning a new fully-populated tree. Children are always
// laid out before their parent reads their dimensions. Geometry violating
// the global invariants is an internal fault and panics.
func (e *Engine) Lay(s Shape) Laid {
	switch s := s.(type) {
	case *TextBox:
		return e.layTextBox(s)
	case *Sequence:
		return e.laySequence(s)
	case *Stack:
		return e.layStack(s)
	case *Bypass:
		child := e.Lay(s.Child)
		cg := child.Geom()
		return &LaidBypass{
			G:     checked(Geom{Width: cg.Width + 4, Height: cg.Height + 1, Baseline: cg.Baseline + 1}),
			Child: Placed{X: 2, Y: 1, Shape: child},
		}
	case *Loop:
		child := e.Lay(s.Child)
		cg := child.Geom()
		return &LaidLoop{
			G:     checked(Geom{Width: cg.Width + 4, Height: cg.Height + 1, Baseline: cg.Baseline}),
			Child: Placed{X: 2, Y: 0, Shape: child},
		}
	default:
		panic(fmt.Sprintf("diagram: unknown shape %T", s))
	}
}

// layTextBox converts the measured pixel width to grid units, adds 2 units
// of lateral track-connection padding, and rounds up to the next even
// number, with a minimum of 4.
func (e *Engine) layTextBox(s *TextBox) Laid {
	px := e.measurer().Width(s.Text)
	g := e.grid()
	units := (px+g-1)/g + 2
	if units%2 != 0 {
		units++
	}
	if units < 4 {
		units = 4
	}
	return &LaidTextBox{
		G:    checked(Geom{Width: units, Height: 2, Baseline: 1}),
		Text: s.Text,
		Kind: s.Kind,
	}
}

func (e *Engine) laySequence(s *Sequence) Laid {
	if len(s.Children) == 0 {
		return &LaidSequence{G: checked(Geom{Width: 0, Height: 2, Baseline: 1})}
	}

	children := make([]Placed, len(s.Children))
	width, height, baseline := 0, 0, 0
	for i, c := range s.Children {
		laid := e.Lay(c)
		cg := laid.Geom()
		if i > 0 {
			width += 2 // connective track between neighbors
		}
		children[i] = Placed{X: width, Shape: laid}
		width += cg.Width
		height = maxInt(height, cg.Height)
		baseline = maxInt(baseline, cg.Baseline)
	}
	// align every child's main track on the common baseline
	for i := range children {
		children[i].Y = baseline - children[i].Shape.Geom().Baseline
	}
	return &LaidSequence{
		G:        checked(Geom{Width: width, Height: height, Baseline: baseline}),
		Children: children,
	}
}

func (e *Engine) layStack(s *Stack) Laid {
	if len(s.Children) == 0 {
		panic("diagram: empty Stack")
	}

	laid := make([]Laid, len(s.Children))
	maxWidth := 0
	for i, c := range s.Children {
		laid[i] = e.Lay(c)
		maxWidth = maxInt(maxWidth, laid[i].Geom().Width)
	}

	children := make([]Placed, len(laid))
	y := 0
	for i, l := range laid {
		cg := l.Geom()
		if i > 0 {
			y++ // gap between stacked branches
		}
		// even widths keep this centering exact
		children[i] = Placed{X: 2 + (maxWidth-cg.Width)/2, Y: y, Shape: l}
		y += cg.Height
	}

	height := y
	if height%2 != 0 {
		height++
	}
	return &LaidStack{
		G:        checked(Geom{Width: maxWidth + 4, Height: height, Baseline: laid[0].Geom().Baseline}),
		Children: children,
	}
}

// checked asserts the global layout invariants. A violation signals a
// broken formula or a new shape type that does not preserve the invariant
// chain; it is a programming fault, never a user-input error.
func checked(g Geom) Geom {
	if g.Width < 0 || g.Width%2 != 0 {
		panic(fmt.Sprintf("diagram: layout produced odd width %d", g.Width))
	}
	if g.Height < 2 {
		panic(fmt.Sprintf("diagram: layout produced height %d < 2", g.Height))
	}
	if g.Baseline < 0 || g.Baseline >= g.Height {
		panic(fmt.Sprintf("diagram: layout produced baseline %d outside [0,%d)", g.Baseline, g.Height))
	}
	return g
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
