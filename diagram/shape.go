package diagram

// TextKind distinguishes the two flavors of text box.
type TextKind int

const (
	TerminalText    TextKind = iota // literal text, drawn with rounded ends
	NonterminalText                 // rule reference, drawn as a rectangle
)

// Shape is a diagram element before layout. The five constructors below are
// the whole vocabulary; every grammar construct maps onto a composition of
// them. A shape tree exclusively owns its children: strict tree, no
// sharing, no cycles.
type Shape interface {
	isShape()
}

// TextBox is a leaf displaying a terminal literal or a rule name.
type TextBox struct {
	Text string
	Kind TextKind
}

// Sequence places its children left to right on a common baseline.
// An empty Sequence is legal and draws nothing (it comes from an
// exact-count-zero repetition).
type Sequence struct {
	Children []Shape
}

// Stack places alternative branches vertically; the first child is the
// main-line choice.
type Stack struct {
	Children []Shape
}

// Bypass draws a skip track over its child (zero or one traversal).
type Bypass struct {
	Child Shape
}

// Loop draws a repeat track under its child, traversed right to left
// (one or more traversals).
type Loop struct {
	Child Shape
}

func (*TextBox) isShape()  {}
func (*Sequence) isShape() {}
func (*Stack) isShape()    {}
func (*Bypass) isShape()   {}
func (*Loop) isShape()     {}
