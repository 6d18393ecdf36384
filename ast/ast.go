package ast

import "fmt"

// SourcePos identifies a location in an ABNF source file. Line and Col are
// 1-based; Offset is the 0-based byte offset into the file contents.
type SourcePos struct {
	Filename string
	Line     int
	Col      int
	Offset   int
}

func (pos SourcePos) String() string {
	if pos.Line <= 0 || pos.Col <= 0 {
		return pos.Filename
	}
	if pos.Filename == "" {
		return fmt.Sprintf("%d:%d", pos.Line, pos.Col)
	}
	return fmt.Sprintf("%s:%d:%d", pos.Filename, pos.Line, pos.Col)
}

// Node is a node in a grammar expression tree. Exactly one tree exists per
// rule; nodes are immutable once the parser returns them.
type Node interface {
	// Start returns the position of the first token of this node.
	Start() SourcePos
}

// Terminal is a literal element: a quoted string (including any %s/%i
// prefix and the surrounding quotes) or a %x/%d numeric value. Text is the
// verbatim source spelling; it is never decoded.
type Terminal struct {
	Pos  SourcePos
	Text string
}

// Nonterminal is a reference to another rule by name.
type Nonterminal struct {
	Pos  SourcePos
	Name string
}

// Sequence is a concatenation of two or more elements.
type Sequence struct {
	Pos      SourcePos
	Elements []Node
}

// Alternation is a choice between two or more branches.
type Alternation struct {
	Pos      SourcePos
	Elements []Node
}

// Optional is a bracketed group: zero or one occurrence of Element.
type Optional struct {
	Pos     SourcePos
	Element Node
}

// Repetition is a repeat-prefixed element. Min is the minimum occurrence
// count. If Bounded is true, Max is the maximum and Min <= Max holds;
// otherwise Max is meaningless and the repetition is unbounded above.
type Repetition struct {
	Pos     SourcePos
	Min     uint32
	Max     uint32
	Bounded bool
	Element Node
}

func (n *Terminal) Start() SourcePos    { return n.Pos }
func (n *Nonterminal) Start() SourcePos { return n.Pos }
func (n *Sequence) Start() SourcePos    { return n.Pos }
func (n *Alternation) Start() SourcePos { return n.Pos }
func (n *Optional) Start() SourcePos    { return n.Pos }
func (n *Repetition) Start() SourcePos  { return n.Pos }
