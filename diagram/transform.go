package diagram

import (
	"fmt"

	"github.com/abnfkit/railroad/ast"
	"github.com/abnfkit/railroad/reporter"
)

// Transform maps a grammar expression tree onto the diagram shape
// vocabulary. It is a pure structural mapping; a malformed tree (nil node,
// missing child) indicates an upstream parser bug and panics.
//
// Repetitions with a bounded maximum greater than one cannot be expressed
// by the shape vocabulary; the bound is dropped and a warning is delivered
// through h (which may be nil).
func Transform(node ast.Node, h *reporter.Handler) Shape {
	if node == nil {
		panic("diagram: nil AST node")
	}
	switch node := node.(type) {
	case *ast.Terminal:
		return &TextBox{Text: node.Text, Kind: TerminalText}
	case *ast.Nonterminal:
		return &TextBox{Text: node.Name, Kind: NonterminalText}
	case *ast.Sequence:
		children := make([]Shape, len(node.Elements))
		for i, e := range node.Elements {
			children[i] = Transform(e, h)
		}
		return &Sequence{Children: children}
	case *ast.Alternation:
		children := make([]Shape, len(node.Elements))
		for i, e := range node.Elements {
			children[i] = Transform(e, h)
		}
		return &Stack{Children: children}
	case *ast.Optional:
		return &Bypass{Child: Transform(node.Element, h)}
	case *ast.Repetition:
		return transformRepetition(node, h)
	default:
		panic(fmt.Sprintf("diagram: unknown AST node %T", node))
	}
}

// transformRepetition expands a repetition into a composition of Sequence,
// Loop, and Bypass around the transformed element. Each occurrence is
// transformed separately so the result stays a strict tree.
func transformRepetition(rep *ast.Repetition, h *reporter.Handler) Shape {
	child := func() Shape { return Transform(rep.Element, h) }

	if rep.Bounded {
		switch {
		case rep.Max == 0:
			// exactly zero occurrences
			return &Sequence{}
		case rep.Min == rep.Max:
			if rep.Min == 1 {
				return child()
			}
			children := make([]Shape, rep.Min)
			for i := range children {
				children[i] = child()
			}
			return &Sequence{Children: children}
		case rep.Max == 1:
			// min must be 0 here
			return &Bypass{Child: child()}
		default:
			// A bounded maximum above one has no shape; fall through to the
			// unbounded expansion.
			h.HandleWarning(reporter.Warningf(rep.Pos,
				"repetition maximum %d cannot be drawn; rendering as unbounded", rep.Max))
		}
	}

	switch {
	case rep.Min == 0:
		return &Bypass{Child: &Loop{Child: child()}}
	case rep.Min == 1:
		return &Loop{Child: child()}
	default:
		children := make([]Shape, rep.Min)
		for i := 0; i < int(rep.Min)-1; i++ {
			children[i] = child()
		}
		children[rep.Min-1] = &Loop{Child: child()}
		return &Sequence{Children: children}
	}
}
